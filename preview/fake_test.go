package preview

import (
	"context"
	"sort"
	"sync"
	"time"
)

// fakePage records everything the controller writes.
type fakePage struct {
	mu       sync.Mutex
	values   map[Field]string
	location string

	sources   []string
	shown     []Outputs
	selected  []Field
	navigated []string
	clipboard []string
	clipErr   error
}

func newFakePage() *fakePage {
	return &fakePage{
		values:   map[Field]string{FieldBackground: "dirt"},
		location: "https://x.test/",
	}
}

func (p *fakePage) Value(f Field) string { return p.values[f] }
func (p *fakePage) Select(f Field)       { p.selected = append(p.selected, f) }
func (p *fakePage) SetSource(u string)   { p.sources = append(p.sources, u) }
func (p *fakePage) Location() string     { return p.location }
func (p *fakePage) Navigate(u string)    { p.navigated = append(p.navigated, u) }

func (p *fakePage) Show(o Outputs) {
	p.shown = append(p.shown, o)
	p.values[FieldURL] = o.URL
	p.values[FieldHTML] = o.HTML
	p.values[FieldBBCode] = o.BBCode
}

func (p *fakePage) WriteText(_ context.Context, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clipboard = append(p.clipboard, text)
	return p.clipErr
}

// manualScheduler fires callbacks only when the test advances its clock.
type manualScheduler struct {
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	t := &manualTimer{at: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward by d and fires due timers in order.
func (s *manualScheduler) Advance(d time.Duration) {
	s.now += d
	due := make([]*manualTimer, 0, len(s.timers))
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= s.now {
			due = append(due, t)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.fired = true
		t.fn()
	}
}

// active counts timers that are scheduled and not yet fired or stopped.
func (s *manualScheduler) active() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// queueExecutor holds posted work until the test drains it, to reproduce
// a timer callback landing behind a newer input event.
type queueExecutor struct {
	queue []func()
}

func (q *queueExecutor) Post(fn func()) { q.queue = append(q.queue, fn) }

func (q *queueExecutor) drain() {
	for len(q.queue) > 0 {
		fn := q.queue[0]
		q.queue = q.queue[1:]
		fn()
	}
}
