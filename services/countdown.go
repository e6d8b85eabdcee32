package services

import (
	"fmt"
	"sync"
	"time"
)

const (
	countdownInterval = time.Second
	countdownDueLabel = "Distributing..."
)

// FormatRemaining renders d as "{h}h {m}m {s}s", each part floored. It
// returns the due label when d is not positive.
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return countdownDueLabel
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%dh %dm %ds", total/3600, (total%3600)/60, total%60)
}

// Countdown keeps a display label for the time left until a target instant,
// refreshed once a second. It is display only; the runner's one-shot timer
// decides when a cycle actually starts.
type Countdown struct {
	clock Clock

	mu     sync.Mutex
	ticker Timer
	target time.Time
	label  string
}

func NewCountdown(clock Clock) *Countdown {
	return &Countdown{clock: clock}
}

// Reset points the countdown at a new target, replacing any running ticker.
func (c *Countdown) Reset(target time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ticker != nil {
		c.ticker.Stop()
	}
	c.target = target
	c.label = FormatRemaining(target.Sub(c.clock.Now()))
	c.ticker = c.clock.NewTicker(countdownInterval, func() { c.tick(target) })
}

func (c *Countdown) tick(target time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// a tick from a replaced ticker may still be in flight
	if !c.target.Equal(target) || c.ticker == nil {
		return
	}
	c.label = FormatRemaining(target.Sub(c.clock.Now()))
}

// Stop tears the ticker down and clears the label.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
	c.target = time.Time{}
	c.label = ""
}

func (c *Countdown) Label() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.label
}

func (c *Countdown) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticker != nil
}
