package jar

import (
	"context"
	"errors"
	"time"

	"github.com/existflow/notejar/internal/catalog"
)

// ErrLoopStopped is returned by Do once the loop has exited
var ErrLoopStopped = errors.New("jar loop stopped")

// Loop runs a Controller on a single goroutine. Requests submitted with Do
// and timer events are processed one at a time, in arrival order.
type Loop struct {
	ctrl *Controller
	ops  chan func(*Controller)
	done chan struct{}
}

// NewLoop creates a loop around a new controller. Options.Scheduler is
// replaced by the loop's timer scheduler.
func NewLoop(cat *catalog.Catalog, opts Options) *Loop {
	l := &Loop{
		ops:  make(chan func(*Controller)),
		done: make(chan struct{}),
	}
	opts.Scheduler = SchedulerFunc(l.schedule)
	l.ctrl = New(cat, opts)
	return l
}

// schedule arms a timer that posts ev back onto the loop. Timers are not
// stopped on reset; a reveal can still arrive after it.
func (l *Loop) schedule(delay time.Duration, ev Event) {
	time.AfterFunc(delay, func() {
		select {
		case l.ops <- func(c *Controller) { c.Handle(ev) }:
		case <-l.done:
		}
	})
}

// Run processes requests until ctx is cancelled
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case op := <-l.ops:
			op(l.ctrl)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Do runs fn on the loop goroutine and waits for it to finish
func (l *Loop) Do(ctx context.Context, fn func(*Controller)) error {
	finished := make(chan struct{})
	op := func(c *Controller) {
		defer close(finished)
		fn(c)
	}

	select {
	case l.ops <- op:
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	// Once accepted the op always runs to completion.
	<-finished
	return nil
}
