// Package animate runs the recurring work behind lumenviz's live effects.
//
// A [Task] is a ticker owned by exactly one renderer. It stops when its
// context is cancelled or when Stop is called, and Stop does not return until
// the ticker goroutine has exited, so no tick can fire after a renderer is
// closed.
package animate

import (
	"context"
	"time"
)

// Task is a cancellable recurring job.
type Task struct {
	interval time.Duration
	fn       func(time.Time)
	cancel   context.CancelFunc
	stopped  chan struct{}
}

// Every starts fn on a ticker of the given interval. fn runs on the task's
// goroutine; calls never overlap. A non-positive interval yields a task that
// never fires.
func Every(ctx context.Context, interval time.Duration, fn func(time.Time)) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		interval: interval,
		fn:       fn,
		cancel:   cancel,
		stopped:  make(chan struct{}),
	}
	go t.run(ctx)
	return t
}

func (t *Task) run(ctx context.Context) {
	defer close(t.stopped)
	if t.interval <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			// a tick can race with cancellation; prefer cancellation
			if ctx.Err() != nil {
				return
			}
			t.fn(now)
		}
	}
}

// Stop cancels the task and waits for its goroutine to exit.
// It is safe to call more than once and from multiple goroutines.
func (t *Task) Stop() {
	if t == nil {
		return
	}
	t.cancel()
	<-t.stopped
}

// Done is closed once the task has fully stopped.
func (t *Task) Done() <-chan struct{} {
	return t.stopped
}

// Active reports whether the task's goroutine is still running. A nil task
// is not active.
func (t *Task) Active() bool {
	if t == nil {
		return false
	}
	select {
	case <-t.stopped:
		return false
	default:
		return true
	}
}

// Interval reports the tick interval.
func (t *Task) Interval() time.Duration { return t.interval }
