package services

import (
	"context"
	"sync"
	"time"
)

// fakeClock is a manual clock. Timers fire only from Advance/FireNext, on
// the caller's goroutine. Sleep moves time forward without firing timers.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	timers  []*fakeTimer
	sleeps  []time.Duration
	onSleep func(d time.Duration)
}

type fakeTimer struct {
	c       *fakeClock
	at      time.Time
	every   time.Duration
	f       func()
	stopped bool
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (t *fakeTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{c: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) NewTicker(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{c: c, at: c.now.Add(d), every: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	hook := c.onSleep
	c.mu.Unlock()

	if hook != nil {
		hook(d)
	}
	return ctx.Err()
}

// Advance moves time forward by d, firing due timers in order. Tickers fire
// at most once per call.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()
	c.advanceTo(target)
}

func (c *fakeClock) advanceTo(target time.Time) {
	for {
		c.mu.Lock()
		var next *fakeTimer
		live := c.timers[:0]
		for _, t := range c.timers {
			if t.stopped {
				continue
			}
			live = append(live, t)
			if t.at.After(target) {
				continue
			}
			if next == nil || t.at.Before(next.at) {
				next = t
			}
		}
		c.timers = live
		if next == nil {
			if target.After(c.now) {
				c.now = target
			}
			c.mu.Unlock()
			return
		}
		fireAt := next.at
		if next.every > 0 {
			// coalesce missed ticks into the last one due
			fireAt = next.at.Add(target.Sub(next.at) / next.every * next.every)
			next.at = fireAt.Add(next.every)
		} else {
			next.stopped = true
		}
		if fireAt.After(c.now) {
			c.now = fireAt
		}
		f := next.f
		c.mu.Unlock()

		f()
	}
}

// FireNext advances to the earliest pending one-shot timer and fires it.
// It reports false when nothing is armed.
func (c *fakeClock) FireNext() bool {
	c.mu.Lock()
	var next *fakeTimer
	for _, t := range c.timers {
		if t.stopped || t.every > 0 {
			continue
		}
		if next == nil || t.at.Before(next.at) {
			next = t
		}
	}
	c.mu.Unlock()
	if next == nil {
		return false
	}
	c.advanceTo(next.at)
	return true
}

// PendingOneShots counts armed, unfired one-shot timers.
func (c *fakeClock) PendingOneShots() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && t.every == 0 {
			n++
		}
	}
	return n
}

func (c *fakeClock) ActiveTickers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && t.every > 0 {
			n++
		}
	}
	return n
}

func (c *fakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}
