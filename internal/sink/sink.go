package sink

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/imamik/onboard/internal/metrics"
	"github.com/imamik/onboard/internal/onboarding"
	"github.com/imamik/onboard/internal/util/async"
)

// Submission is one delivery of a finished form.
type Submission struct {
	ID      string
	At      time.Time
	Form    onboarding.FormState
	Payload []byte
}

// Sink is a single delivery destination.
type Sink interface {
	Name() string
	Send(ctx context.Context, sub *Submission) error
}

// FanoutOption configures a Fanout.
type FanoutOption func(*Fanout)

// WithMetrics records delivery outcomes on r.
func WithMetrics(r *metrics.Recorder) FanoutOption {
	return func(f *Fanout) {
		f.metrics = r
	}
}

// WithLogger sets the logger for per-sink results.
func WithLogger(log logr.Logger) FanoutOption {
	return func(f *Fanout) {
		f.log = log
	}
}

// WithClock overrides time.Now for submission timestamps.
func WithClock(now func() time.Time) FanoutOption {
	return func(f *Fanout) {
		f.now = now
	}
}

// Fanout sends each submission to every sink in parallel, once.
type Fanout struct {
	sinks   []Sink
	metrics *metrics.Recorder
	log     logr.Logger
	now     func() time.Time
}

var _ onboarding.Deliverer = (*Fanout)(nil)

// NewFanout creates a Fanout over sinks.
func NewFanout(sinks []Sink, opts ...FanoutOption) *Fanout {
	f := &Fanout{
		sinks: sinks,
		log:   logr.Discard(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Sinks returns the names of the configured sinks.
func (f *Fanout) Sinks() []string {
	names := make([]string, len(f.sinks))
	for i, s := range f.sinks {
		names[i] = s.Name()
	}
	return names
}

// Deliver implements onboarding.Deliverer. The returned error joins every
// failed sink; no sink is retried.
func (f *Fanout) Deliver(ctx context.Context, form onboarding.FormState) error {
	payload, err := form.Payload()
	if err != nil {
		f.metrics.Submission(err)
		return err
	}

	sub := &Submission{
		ID:      uuid.NewString(),
		At:      f.now().UTC(),
		Form:    form,
		Payload: payload,
	}

	tasks := make([]async.Task, len(f.sinks))
	for i, s := range f.sinks {
		tasks[i] = async.Task{
			Name: s.Name(),
			Func: func(ctx context.Context) error { return s.Send(ctx, sub) },
		}
	}

	results := async.Run(ctx, tasks)
	for _, r := range results {
		f.metrics.Delivery(r.Name, r.Err, r.Elapsed)
		f.log.V(1).Info("sink delivery", "submission", sub.ID, "sink", r.Name, "elapsed", r.Elapsed, "error", r.Err)
	}

	err = async.Join(results)
	f.metrics.Submission(err)
	return err
}
