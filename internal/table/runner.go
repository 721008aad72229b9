// Package table runs a blackjack session off the terminal: a serial job
// Runner stands in for the single UI thread and a clock-driven Surface
// completes animations after a fixed delay.
package table

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrStopped is returned once the runner has exited
var ErrStopped = errors.New("table runner stopped")

// Runner executes posted jobs one at a time on its own goroutine. All
// game state for a table is only touched from inside jobs.
type Runner struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	done    chan struct{}
	stopped bool
	logger  *log.Logger
}

// NewRunner creates an idle runner. Call Run to start draining jobs.
func NewRunner(logger *log.Logger) *Runner {
	return &Runner{
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		logger: logger.WithPrefix("runner"),
	}
}

// Post queues job and reports whether it was accepted. It never blocks,
// so jobs may post follow-up jobs.
func (r *Runner) Post(job func()) bool {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return false
	}
	r.queue = append(r.queue, job)
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
	return true
}

// Do runs fn on the runner and waits for it to finish
func (r *Runner) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !r.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrStopped
	}

	select {
	case <-finished:
		return nil
	case <-r.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when Run returns
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Run drains jobs until ctx is cancelled or a job panics. A panic ends
// the table: it is logged and returned as an error wrapping the panic
// value when that value is an error.
func (r *Runner) Run(ctx context.Context) (err error) {
	defer func() {
		r.mu.Lock()
		r.stopped = true
		r.queue = nil
		r.mu.Unlock()
		close(r.done)
	}()

	for {
		job, ok := r.next()
		if !ok {
			select {
			case <-ctx.Done():
				return nil
			case <-r.wake:
				continue
			}
		}

		if err := r.safely(job); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}

func (r *Runner) next() (func(), bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) == 0 {
		return nil, false
	}
	job := r.queue[0]
	r.queue = r.queue[1:]
	return job, true
}

func (r *Runner) safely(job func()) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Table job panicked", "panic", rec)
			if perr, ok := rec.(error); ok {
				err = fmt.Errorf("table job panicked: %w", perr)
			} else {
				err = fmt.Errorf("table job panicked: %v", rec)
			}
		}
	}()
	job()
	return nil
}
