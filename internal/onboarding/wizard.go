package onboarding

import (
	"context"
	"sync"
	"time"

	"github.com/go-logr/logr"
)

// DefaultSubmitDelay is the pause between sending the form and showing the
// success step.
const DefaultSubmitDelay = 2 * time.Second

// Deliverer hands a finished form to the outside world. Errors are logged by
// the wizard and never change the outcome of a submission.
type Deliverer interface {
	Deliver(ctx context.Context, form FormState) error
}

// DelivererFunc adapts a function to Deliverer.
type DelivererFunc func(ctx context.Context, form FormState) error

// Deliver implements Deliverer.
func (f DelivererFunc) Deliver(ctx context.Context, form FormState) error {
	return f(ctx, form)
}

// Phase is the submission lifecycle of a wizard.
type Phase string

// Submission phases.
const (
	PhaseIdle     Phase = "idle"
	PhaseSyncing  Phase = "syncing"
	PhaseTerminal Phase = "terminal"
)

// Direction of a step transition.
type Direction string

// Transition directions reported to hooks.
const (
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
	DirectionSubmit   Direction = "submit"
)

// TransitionHook observes every step change.
type TransitionHook func(from, to Step, dir Direction)

// State is a point-in-time copy of a wizard.
type State struct {
	Index   int
	Step    Step
	Syncing bool
	Form    FormState
}

// Phase derives the submission phase from the snapshot.
func (s State) Phase() Phase {
	switch {
	case s.Syncing:
		return PhaseSyncing
	case s.Step.Terminal():
		return PhaseTerminal
	default:
		return PhaseIdle
	}
}

// Progress is the fraction of the sequence behind the current step.
func (s State) Progress() float64 {
	return float64(s.Index) / float64(LastIndex())
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithSubmitDelay overrides DefaultSubmitDelay.
func WithSubmitDelay(d time.Duration) Option {
	return func(w *Wizard) {
		w.delay = d
	}
}

// WithLogger sets the logger used for swallowed delivery failures.
func WithLogger(log logr.Logger) Option {
	return func(w *Wizard) {
		w.log = log
	}
}

// WithSleep replaces the pacing timer. Tests use it to skip the delay.
func WithSleep(sleep func(time.Duration)) Option {
	return func(w *Wizard) {
		w.sleep = sleep
	}
}

// WithTransitionHook registers a hook called after each step change.
func WithTransitionHook(hook TransitionHook) Option {
	return func(w *Wizard) {
		w.hooks = append(w.hooks, hook)
	}
}

// WithInitialForm seeds the wizard with previously collected answers.
func WithInitialForm(form FormState) Option {
	return func(w *Wizard) {
		w.form = form
	}
}

// Wizard owns the step index and form state of one onboarding session.
// It is safe for use from multiple goroutines; delivery runs without
// holding the lock.
type Wizard struct {
	mu      sync.Mutex
	index   int
	form    FormState
	syncing bool

	deliverer Deliverer
	delay     time.Duration
	sleep     func(time.Duration)
	log       logr.Logger
	hooks     []TransitionHook
}

// NewWizard creates a wizard at INTRO with an empty form. A nil deliverer
// discards submissions.
func NewWizard(d Deliverer, opts ...Option) *Wizard {
	w := &Wizard{
		deliverer: d,
		delay:     DefaultSubmitDelay,
		sleep:     time.Sleep,
		log:       logr.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// State returns a snapshot of the wizard.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stateLocked()
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return stepOrder[w.index]
}

// Form returns a copy of the collected answers.
func (w *Wizard) Form() FormState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form
}

// Syncing reports whether a submission is in flight.
func (w *Wizard) Syncing() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.syncing
}

// Advance moves one step forward. On FINANCE it runs the whole submission
// and returns once the wizard is on SUCCESS. It does nothing while syncing
// or on the terminal step.
func (w *Wizard) Advance(ctx context.Context) {
	w.mu.Lock()
	if w.syncing || w.index >= LastIndex() {
		w.mu.Unlock()
		return
	}
	if stepOrder[w.index] == StepFinance {
		form := w.beginSubmitLocked()
		w.mu.Unlock()
		w.Deliver(ctx, form)
		w.FinishSubmit()
		return
	}
	from := stepOrder[w.index]
	w.index++
	to := stepOrder[w.index]
	w.mu.Unlock()

	w.notify(from, to, DirectionForward)
}

// Retreat moves one step back. It is a no-op on INTRO and while syncing.
func (w *Wizard) Retreat() {
	w.mu.Lock()
	if w.syncing || w.index == 0 {
		w.mu.Unlock()
		return
	}
	from := stepOrder[w.index]
	w.index--
	to := stepOrder[w.index]
	w.mu.Unlock()

	w.notify(from, to, DirectionBackward)
}

// SetField replaces one top-level field.
func (w *Wizard) SetField(key FieldKey, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	next, err := w.form.withField(key, value)
	if err != nil {
		return err
	}
	w.form = next
	return nil
}

// SetProductField replaces one field of the selected product. Setting
// ProductImage stores value verbatim.
func (w *Wizard) SetProductField(which ProductKey, key ProductFieldKey, value string) error {
	return w.editProduct(which, func(p ProductState) (ProductState, error) {
		return p.withField(key, value)
	})
}

// SetProductImage stores an encoded image payload, or clears it when nil.
func (w *Wizard) SetProductImage(which ProductKey, image *string) error {
	return w.editProduct(which, func(p ProductState) (ProductState, error) {
		p.Image = image
		return p, nil
	})
}

// Set writes a field addressed by ref.
func (w *Wizard) Set(ref FieldRef, value string) error {
	if ref.Product == "" {
		return w.SetField(FieldKey(ref.Key), value)
	}
	return w.SetProductField(ref.Product, ProductFieldKey(ref.Key), value)
}

func (w *Wizard) editProduct(which ProductKey, edit func(ProductState) (ProductState, error)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	next, err := w.form.withProduct(which, edit)
	if err != nil {
		return err
	}
	w.form = next
	return nil
}

// Submit runs BeginSubmit, Deliver and FinishSubmit in sequence. It is a
// no-op when a submission is already in flight.
func (w *Wizard) Submit(ctx context.Context) {
	form, ok := w.BeginSubmit()
	if !ok {
		return
	}
	w.Deliver(ctx, form)
	w.FinishSubmit()
}

// BeginSubmit enters the syncing phase and returns the form to deliver.
// It reports false if a submission is already in flight or the wizard is
// already on SUCCESS.
func (w *Wizard) BeginSubmit() (FormState, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.syncing || stepOrder[w.index].Terminal() {
		return FormState{}, false
	}
	return w.beginSubmitLocked(), true
}

// beginSubmitLocked enters syncing. w.mu must be held.
func (w *Wizard) beginSubmitLocked() FormState {
	w.syncing = true
	return w.form
}

// Deliver sends form once and then waits out the pacing delay. Delivery
// errors are logged and dropped. It does not touch wizard state.
func (w *Wizard) Deliver(ctx context.Context, form FormState) {
	if w.deliverer != nil {
		if err := w.deliverer.Deliver(ctx, form); err != nil {
			w.log.Error(err, "form delivery failed, continuing", "business", form.BusinessName)
		} else {
			w.log.V(1).Info("form delivered", "business", form.BusinessName)
		}
	}
	if w.delay > 0 {
		w.sleep(w.delay)
	}
}

// FinishSubmit leaves the syncing phase and lands on SUCCESS.
func (w *Wizard) FinishSubmit() {
	w.mu.Lock()
	from := stepOrder[w.index]
	w.index = LastIndex()
	w.syncing = false
	w.mu.Unlock()

	w.notify(from, StepSuccess, DirectionSubmit)
}

func (w *Wizard) stateLocked() State {
	return State{
		Index:   w.index,
		Step:    stepOrder[w.index],
		Syncing: w.syncing,
		Form:    w.form,
	}
}

func (w *Wizard) notify(from, to Step, dir Direction) {
	for _, hook := range w.hooks {
		hook(from, to, dir)
	}
}
