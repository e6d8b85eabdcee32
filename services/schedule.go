package services

import (
	"strconv"
	"strings"
	"time"

	"SocialStream/models"

	"github.com/robfig/cron/v3"
)

// NextRun returns the earliest instant strictly after now whose hour-of-day
// (in loc) is one of hours, on the hour. If every slot today has passed, it
// returns min(hours) on the next calendar day. hours must be non-empty.
func NextRun(now time.Time, hours []int, loc *time.Location) time.Time {
	if loc == nil {
		loc = now.Location()
	}
	local := now.In(loc)
	y, m, d := local.Date()

	var best time.Time
	for _, h := range hours {
		candidate := time.Date(y, m, d, h, 0, 0, 0, loc)
		if !candidate.After(now) {
			continue
		}
		if best.IsZero() || candidate.Before(best) {
			best = candidate
		}
	}
	if !best.IsZero() {
		return best
	}

	// d+1 is normalised by time.Date, so month and year roll over.
	return time.Date(y, m, d+1, minHour(hours), 0, 0, 0, loc)
}

func minHour(hours []int) int {
	lowest := hours[0]
	for _, h := range hours[1:] {
		if h < lowest {
			lowest = h
		}
	}
	return lowest
}

// HourSchedule fires at the top of each configured hour. It satisfies
// cron.Schedule.
type HourSchedule struct {
	Hours    []int
	Location *time.Location
}

var _ cron.Schedule = HourSchedule{}

func NewHourSchedule(hours []int, loc *time.Location) HourSchedule {
	if loc == nil {
		loc = time.Local
	}
	return HourSchedule{Hours: models.NormalizeHours(hours), Location: loc}
}

func (s HourSchedule) Next(t time.Time) time.Time {
	if len(s.Hours) == 0 {
		return time.Time{}
	}
	return NextRun(t, s.Hours, s.Location)
}

// Spec renders the equivalent five-field cron expression.
func (s HourSchedule) Spec() string {
	parts := make([]string, len(s.Hours))
	for i, h := range s.Hours {
		parts[i] = strconv.Itoa(h)
	}
	return "0 " + strings.Join(parts, ",") + " * * *"
}
