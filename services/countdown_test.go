package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "3h 5m 9s", FormatRemaining(3*time.Hour+5*time.Minute+9*time.Second+900*time.Millisecond))
	assert.Equal(t, "0h 0m 1s", FormatRemaining(1500*time.Millisecond))
	assert.Equal(t, "26h 0m 0s", FormatRemaining(26*time.Hour))
	assert.Equal(t, "0h 0m 0s", FormatRemaining(10*time.Millisecond))
	assert.Equal(t, countdownDueLabel, FormatRemaining(0))
	assert.Equal(t, countdownDueLabel, FormatRemaining(-time.Minute))
}

func TestCountdownTicksAndStops(t *testing.T) {
	clock := newFakeClock(at(2026, 3, 10, 11, 59, 50))
	c := NewCountdown(clock)

	c.Reset(at(2026, 3, 10, 12, 0, 0))
	assert.Equal(t, "0h 0m 10s", c.Label())
	assert.Equal(t, 1, clock.ActiveTickers())

	clock.Advance(4 * time.Second)
	assert.Equal(t, "0h 0m 6s", c.Label())

	clock.Advance(30 * time.Second)
	assert.Equal(t, countdownDueLabel, c.Label())

	c.Stop()
	assert.Empty(t, c.Label())
	assert.False(t, c.Active())
	assert.Equal(t, 0, clock.ActiveTickers())
}

func TestCountdownResetReplacesTicker(t *testing.T) {
	clock := newFakeClock(at(2026, 3, 10, 10, 0, 0))
	c := NewCountdown(clock)

	c.Reset(at(2026, 3, 10, 12, 0, 0))
	c.Reset(at(2026, 3, 10, 11, 0, 0))

	assert.Equal(t, 1, clock.ActiveTickers())
	clock.Advance(time.Second)
	assert.Equal(t, "0h 59m 59s", c.Label())
}
