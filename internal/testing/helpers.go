package testing

import (
	"context"
	"testing"
	"time"

	"github.com/imamik/onboard/internal/onboarding"
)

// TestContext returns a context with a reasonable timeout for tests.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// NoSleep makes submissions return without the pacing delay.
func NoSleep() onboarding.Option {
	return onboarding.WithSleep(func(time.Duration) {})
}

// WizardAt returns a wizard already moved forward to step, which must not
// lie after FINANCE.
func WizardAt(t *testing.T, step onboarding.Step, d onboarding.Deliverer, opts ...onboarding.Option) *onboarding.Wizard {
	t.Helper()
	if onboarding.IndexOf(step) > onboarding.IndexOf(onboarding.StepFinance) {
		t.Fatalf("cannot walk to %s without submitting", step)
	}
	w := onboarding.NewWizard(d, append([]onboarding.Option{NoSleep()}, opts...)...)
	for w.Step() != step {
		w.Advance(context.Background())
	}
	return w
}
