package preview

import (
	"context"
	"time"
)

// Executor runs posted work. Implementations must run items one at a time,
// in the order they were posted.
type Executor interface {
	Post(fn func())
}

// Loop is an Executor backed by one goroutine, the equivalent of a
// browser's main thread.
type Loop struct {
	queue chan func()
}

// NewLoop returns a Loop that buffers up to size pending items.
func NewLoop(size int) *Loop {
	if size < 1 {
		size = 1
	}
	return &Loop{queue: make(chan func(), size)}
}

// Post enqueues fn. It blocks only when the buffer is full.
func (l *Loop) Post(fn func()) {
	l.queue <- fn
}

// Run executes posted items until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

// Inline runs each item immediately on the caller's goroutine. It is only
// correct when every event and timer callback arrives on the same goroutine,
// which is the case in tests driven by a manual Scheduler.
type Inline struct{}

// Post runs fn.
func (Inline) Post(fn func()) { fn() }

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler creates one-shot delayed callbacks.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// SystemScheduler schedules callbacks on the runtime timer.
var SystemScheduler Scheduler = systemScheduler{}
