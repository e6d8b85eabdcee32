package services

import (
	"context"
	"sync"
	"time"
)

// Timer is a cancellable one-shot or periodic callback.
type Timer interface {
	Stop() bool
}

// Clock is the runner's only source of time. Production code uses
// SystemClock; tests drive a manual clock.
type Clock interface {
	Now() time.Time
	// AfterFunc runs f once, d from now, on its own goroutine.
	AfterFunc(d time.Duration, f func()) Timer
	// NewTicker runs f every d until stopped.
	NewTicker(d time.Duration, f func()) Timer
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (SystemClock) NewTicker(d time.Duration, f func()) Timer {
	t := &systemTicker{
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}
	go t.loop(f)
	return t
}

func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type systemTicker struct {
	ticker *time.Ticker
	once   sync.Once
	done   chan struct{}
}

func (t *systemTicker) loop(f func()) {
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			f()
		}
	}
}

func (t *systemTicker) Stop() bool {
	stopped := false
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
		stopped = true
	})
	return stopped
}
