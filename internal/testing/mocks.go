package testing

import (
	"context"
	"sync"

	"github.com/imamik/onboard/internal/onboarding"
)

// RecordingDeliverer records every delivered form. Err, when set, is
// returned from each delivery after recording.
type RecordingDeliverer struct {
	Err error

	mu    sync.Mutex
	forms []onboarding.FormState
}

var _ onboarding.Deliverer = (*RecordingDeliverer)(nil)

// Deliver implements onboarding.Deliverer.
func (r *RecordingDeliverer) Deliver(_ context.Context, form onboarding.FormState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forms = append(r.forms, form)
	return r.Err
}

// Forms returns a copy of the delivered forms.
func (r *RecordingDeliverer) Forms() []onboarding.FormState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]onboarding.FormState(nil), r.forms...)
}

// Count returns the number of deliveries.
func (r *RecordingDeliverer) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}
