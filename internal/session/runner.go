package session

import (
	"context"
	"errors"
	"time"

	"snake-grid/internal/core"
	"snake-grid/internal/snake"
	"snake-grid/internal/view"
)

// ErrStopped is returned when an event is sent to a Runner that has exited.
var ErrStopped = errors.New("session stopped")

// Runner drives a Controller from one goroutine. Ticks, key presses and
// resets are handled strictly one at a time, so a key processed before a tick
// is always visible to that tick.
type Runner struct {
	ctrl     *Controller
	sched    core.Scheduler
	interval time.Duration

	keys   chan snake.Key
	resets chan struct{}
	done   chan struct{}
}

// NewRunner returns a Runner ticking ctrl every interval via sched.
func NewRunner(ctrl *Controller, sched core.Scheduler, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = core.DefaultInterval
	}
	return &Runner{
		ctrl:     ctrl,
		sched:    sched,
		interval: interval,
		keys:     make(chan snake.Key),
		resets:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run processes events until ctx is cancelled. publish is called with a fresh
// frame on start and after every change visible on screen. The scheduler is
// armed while a game runs and always disarmed when Run returns.
func (r *Runner) Run(ctx context.Context, publish func(view.Frame)) error {
	defer close(r.done)
	defer r.sched.Stop()

	if !r.ctrl.GameOver() {
		r.sched.Start(r.interval)
	}
	publish(r.ctrl.Frame())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case k := <-r.keys:
			r.ctrl.Key(k)
		case <-r.resets:
			r.sched.Stop()
			r.ctrl.Reset()
			r.sched.Start(r.interval)
			publish(r.ctrl.Frame())
		case <-r.sched.C():
			out := r.ctrl.Step()
			if out == snake.Idle {
				continue
			}
			if out.Collided() {
				r.sched.Stop()
			}
			publish(r.ctrl.Frame())
		}
	}
}

// Key queues a key press for the next tick.
func (r *Runner) Key(ctx context.Context, k snake.Key) error {
	select {
	case r.keys <- k:
		return nil
	case <-r.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reset asks the runner to start a fresh game.
func (r *Runner) Reset(ctx context.Context) error {
	select {
	case r.resets <- struct{}{}:
		return nil
	case <-r.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once Run has returned.
func (r *Runner) Done() <-chan struct{} { return r.done }
