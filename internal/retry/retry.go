package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Default policy: one retry after a one second pause.
const (
	DefaultMaxAttempts = 2
	DefaultDelay       = time.Second
)

// ErrExhausted matches every *ExhaustedError via errors.Is.
var ErrExhausted = errors.New("retries exhausted")

// Policy bounds how many times an operation runs and how long to pause between runs.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration // fixed, no backoff, no jitter
}

// DefaultPolicy returns the gateway's standard policy.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: DefaultMaxAttempts, Delay: DefaultDelay}
}

func (p Policy) normalized() Policy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.Delay < 0 {
		p.Delay = 0
	}
	return p
}

// Attempt describes a single run of an operation. Observers receive one per run.
type Attempt struct {
	Operation string
	OpID      string
	Number    int // 1-based
	Max       int
	Err       error // nil on success
	Elapsed   time.Duration
}

// Succeeded reports whether this run returned without error.
func (a Attempt) Succeeded() bool { return a.Err == nil }

// Final reports whether no further run follows this one.
func (a Attempt) Final() bool { return a.Err == nil || a.Number >= a.Max }

// Observer receives attempt events. It must not block and cannot influence retries.
type Observer func(Attempt)

// ExhaustedError is returned once every attempt failed. Err is the last failure, verbatim.
type ExhaustedError struct {
	Operation string
	Attempts  int
	Err       error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s: %d attempts failed: %v", e.Operation, e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }

func (e *ExhaustedError) Is(target error) bool { return target == ErrExhausted }

// Operation is a unit of work that may fail transiently.
type Operation[T any] func(ctx context.Context) (T, error)

// Executor applies a Policy to operations.
type Executor struct {
	policy    Policy
	observers []Observer
	sleep     func(time.Duration)
}

// Option configures an Executor.
type Option func(*Executor)

// WithObserver registers an attempt observer.
func WithObserver(o Observer) Option {
	return func(e *Executor) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

// WithSleep replaces time.Sleep, mainly for tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(e *Executor) {
		if sleep != nil {
			e.sleep = sleep
		}
	}
}

// NewExecutor builds an executor for the given policy.
func NewExecutor(p Policy, opts ...Option) *Executor {
	e := &Executor{policy: p.normalized(), sleep: time.Sleep}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the effective (normalized) policy.
func (e *Executor) Policy() Policy { return e.policy }

// Do runs op until it succeeds or the policy's attempts are used up.
// Attempts run sequentially; the pause happens only between attempts.
// The pause is not interrupted by ctx: once issued, an operation runs to completion.
func Do[T any](ctx context.Context, e *Executor, name string, op Operation[T]) (T, error) {
	var zero T
	opID := uuid.NewString()
	p := e.policy

	var lastErr error
	for n := 1; n <= p.MaxAttempts; n++ {
		start := time.Now()
		v, err := op(ctx)
		e.notify(Attempt{
			Operation: name,
			OpID:      opID,
			Number:    n,
			Max:       p.MaxAttempts,
			Err:       err,
			Elapsed:   time.Since(start),
		})
		if err == nil {
			return v, nil
		}
		lastErr = err
		if n < p.MaxAttempts && p.Delay > 0 {
			e.sleep(p.Delay)
		}
	}
	return zero, &ExhaustedError{Operation: name, Attempts: p.MaxAttempts, Err: lastErr}
}

func (e *Executor) notify(a Attempt) {
	for _, o := range e.observers {
		o(a)
	}
}
