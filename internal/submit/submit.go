// Package submit simulates the network round trip behind the registration
// and login forms: a one-shot completion fired after a fixed delay.
package submit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/feeportal/internal/log"
)

// Kind names the form being submitted.
type Kind string

const (
	KindLogin        Kind = "login"
	KindRegistration Kind = "registration"
)

// Default delays standing in for network latency.
const (
	DefaultLoginDelay        = 1500 * time.Millisecond
	DefaultRegistrationDelay = 2000 * time.Millisecond
)

// Outcome is the terminal result of a submission.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// SuccessMessage returns the alert text shown after a successful submission.
func SuccessMessage(k Kind) string {
	switch k {
	case KindLogin:
		return "Login successful! Welcome back."
	case KindRegistration:
		return "Registration successful! You can now login."
	}
	return "Done."
}

// ErrInFlight is returned when Submit is called while a submission is pending.
var ErrInFlight = errors.New("submission already in progress")

// Delays configures the per-kind completion delay.
type Delays struct {
	Login        time.Duration
	Registration time.Duration
}

// DefaultDelays returns the stock delays.
func DefaultDelays() Delays {
	return Delays{Login: DefaultLoginDelay, Registration: DefaultRegistrationDelay}
}

func (d Delays) forKind(k Kind) (time.Duration, error) {
	switch k {
	case KindLogin:
		return d.Login, nil
	case KindRegistration:
		return d.Registration, nil
	}
	return 0, fmt.Errorf("unknown submission kind %q", k)
}

// Simulator schedules simulated submissions, one at a time.
type Simulator struct {
	delays Delays
	tracer trace.Tracer

	mu      sync.Mutex
	pending *Pending
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithTracer overrides the tracer, which defaults to the global provider's.
func WithTracer(t trace.Tracer) Option {
	return func(s *Simulator) { s.tracer = t }
}

// New creates a Simulator with the given delays.
func New(delays Delays, opts ...Option) *Simulator {
	s := &Simulator{
		delays: delays,
		tracer: otel.Tracer("github.com/zjrosen/feeportal/internal/submit"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Loading reports whether a submission is pending.
func (s *Simulator) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Submit schedules a completion for kind. It fails with ErrInFlight while an
// earlier submission is pending. Cancelling ctx has the same effect as
// Pending.Cancel.
func (s *Simulator) Submit(ctx context.Context, kind Kind) (*Pending, error) {
	delay, err := s.delays.forKind(kind)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		log.Warn(log.CatSubmit, "Submit rejected, already loading", "kind", kind, "pending", s.pending.ID)
		return nil, ErrInFlight
	}

	spanCtx, span := s.tracer.Start(ctx, "submit."+string(kind), trace.WithAttributes(
		attribute.String("submit.kind", string(kind)),
		attribute.Int64("submit.delay_ms", delay.Milliseconds()),
	))

	p := &Pending{
		ID:   uuid.NewString(),
		Kind: kind,
		done: make(chan Outcome, 1),
		span: span,
		sim:  s,
	}
	s.pending = p
	span.SetAttributes(attribute.String("submit.id", p.ID))

	p.timer = time.AfterFunc(delay, func() { p.finish(OutcomeSuccess) })
	if spanCtx.Done() != nil {
		p.stopWatch = context.AfterFunc(spanCtx, p.Cancel)
	}

	log.Info(log.CatSubmit, "Submission scheduled", "kind", kind, "id", p.ID, "delay", delay)
	return p, nil
}

func (s *Simulator) release(p *Pending) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == p {
		s.pending = nil
	}
}

// Pending is a scheduled submission.
type Pending struct {
	ID   string
	Kind Kind

	done      chan Outcome
	timer     *time.Timer
	stopWatch func() bool
	span      trace.Span
	sim       *Simulator

	once sync.Once
}

// Done yields the outcome once and is then closed. A cancelled submission
// closes Done without sending.
func (p *Pending) Done() <-chan Outcome {
	return p.done
}

// Wait blocks until the submission resolves. ok is false if it was cancelled.
func (p *Pending) Wait() (Outcome, bool) {
	o, ok := <-p.done
	return o, ok
}

// Cancel stops the timer and suppresses the outcome. It is safe to call
// after completion and more than once.
func (p *Pending) Cancel() {
	p.once.Do(func() {
		p.timer.Stop()
		p.sim.release(p)
		p.span.SetStatus(codes.Error, "cancelled")
		p.span.End()
		if p.stopWatch != nil {
			p.stopWatch()
		}
		close(p.done)
		log.Info(log.CatSubmit, "Submission cancelled", "kind", p.Kind, "id", p.ID)
	})
}

func (p *Pending) finish(o Outcome) {
	p.once.Do(func() {
		p.sim.release(p)
		p.span.SetAttributes(attribute.String("submit.outcome", o.String()))
		p.span.End()
		if p.stopWatch != nil {
			p.stopWatch()
		}
		p.done <- o
		close(p.done)
		log.Info(log.CatSubmit, "Submission finished", "kind", p.Kind, "id", p.ID, "outcome", o)
	})
}
