package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var errUnknownPlatform = errors.New("unknown platform")

// Validate checks the settings without modifying them.
func (s AutomationSettings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.SourceIdentity, validation.Required, validation.Length(1, 64)),
		validation.Field(&s.RewriteInstruction, validation.Length(0, 2000)),
		validation.Field(&s.ScheduleHours,
			validation.Required.Error("at least one schedule hour is required"),
			validation.Each(validation.Min(0), validation.Max(23)),
		),
		validation.Field(&s.Platforms, validation.By(validatePlatforms)),
	)
}

func validatePlatforms(value interface{}) error {
	platforms, _ := value.(map[Platform]bool)
	for p := range platforms {
		if !p.Valid() {
			return fmt.Errorf("%w: %q", errUnknownPlatform, p)
		}
	}
	return nil
}

// Normalize trims the identity, strips a leading "@", sorts and dedups the
// schedule hours and fills in missing platform flags as disabled.
func (s AutomationSettings) Normalize() AutomationSettings {
	out := s.Clone()
	out.SourceIdentity = strings.TrimPrefix(strings.TrimSpace(out.SourceIdentity), "@")
	out.RewriteInstruction = strings.TrimSpace(out.RewriteInstruction)
	out.ScheduleHours = NormalizeHours(out.ScheduleHours)
	for _, p := range AllPlatforms {
		if _, ok := out.Platforms[p]; !ok {
			out.Platforms[p] = false
		}
	}
	return out
}

// NormalizeHours returns the hours sorted ascending with duplicates removed.
func NormalizeHours(hours []int) []int {
	if len(hours) == 0 {
		return nil
	}
	sorted := append([]int(nil), hours...)
	sort.Ints(sorted)
	out := sorted[:1]
	for _, h := range sorted[1:] {
		if h != out[len(out)-1] {
			out = append(out, h)
		}
	}
	return out
}
