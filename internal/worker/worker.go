// Package worker runs a unit of work on its own goroutine and hands back a
// handle the caller may join or ignore.
package worker

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/numreport/internal/logging"
)

// Tracker is notified when a worker starts and stops.
type Tracker interface {
	WorkerStarted()
	WorkerStopped()
}

// Option configures a Task before it starts.
type Option func(*Task)

// WithLogger logs the task lifecycle at debug level.
func WithLogger(l logging.Logger) Option {
	return func(t *Task) { t.logger = l }
}

// WithTracker reports the task lifecycle to tr.
func WithTracker(tr Tracker) Option {
	return func(t *Task) { t.tracker = tr }
}

// Task is a handle on a running unit of work.
type Task struct {
	name    string
	done    chan struct{}
	err     error
	logger  logging.Logger
	tracker Tracker
}

// Go starts fn on a new goroutine and returns immediately. fn receives a
// context derived from ctx. A panic inside fn is recovered and returned by
// Wait as an error.
//
// Dropping the returned Task is a fire-and-forget launch: nothing then keeps
// the process alive until fn returns.
func Go(ctx context.Context, name string, fn func(context.Context) error, opts ...Option) *Task {
	t := &Task{name: name, done: make(chan struct{}), logger: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(t)
	}

	g, gctx := errgroup.WithContext(ctx)
	if t.tracker != nil {
		t.tracker.WorkerStarted()
	}
	start := time.Now()
	t.logger.Debug("worker started", logging.String("worker", name))

	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("worker %q panicked: %v", name, r)
			}
		}()
		return fn(gctx)
	})

	go func() {
		t.err = g.Wait()
		if t.tracker != nil {
			t.tracker.WorkerStopped()
		}
		if t.err != nil {
			t.logger.Error("worker failed", t.err, logging.String("worker", name))
		} else {
			t.logger.Debug("worker finished",
				logging.String("worker", name), logging.Duration("elapsed", time.Since(start)))
		}
		close(t.done)
	}()

	return t
}

// Name returns the name given to Go.
func (t *Task) Name() string { return t.name }

// Done is closed once the task has returned.
func (t *Task) Done() <-chan struct{} { return t.done }

// Wait blocks until the task returns and reports its error.
func (t *Task) Wait() error {
	<-t.done
	return t.err
}
