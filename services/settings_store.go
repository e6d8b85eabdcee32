package services

import (
	"fmt"
	"sync"

	"SocialStream/models"
)

// SettingsStore holds the current AutomationSettings. Readers get copies;
// the runner reads once per scheduling decision, so edits apply from the
// next computed run.
type SettingsStore struct {
	mu       sync.RWMutex
	settings models.AutomationSettings
}

func NewSettingsStore(initial models.AutomationSettings) (*SettingsStore, error) {
	s := &SettingsStore{}
	if err := s.Update(initial); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SettingsStore) Get() models.AutomationSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Clone()
}

// Update normalises and validates next before replacing the current settings.
func (s *SettingsStore) Update(next models.AutomationSettings) error {
	next = next.Normalize()
	if err := next.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	s.mu.Lock()
	s.settings = next
	s.mu.Unlock()
	return nil
}

// ToggleHour adds hour to the schedule, or removes it if present. Removing
// the last remaining hour is rejected.
func (s *SettingsStore) ToggleHour(hour int) (models.AutomationSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.settings.Clone()
	kept := next.ScheduleHours[:0]
	removed := false
	for _, h := range next.ScheduleHours {
		if h == hour {
			removed = true
			continue
		}
		kept = append(kept, h)
	}
	if removed {
		next.ScheduleHours = kept
	} else {
		next.ScheduleHours = append(kept, hour)
	}

	next = next.Normalize()
	if err := next.Validate(); err != nil {
		return s.settings.Clone(), fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	s.settings = next
	return next.Clone(), nil
}

// SetPlatform enables or disables one platform.
func (s *SettingsStore) SetPlatform(p models.Platform, enabled bool) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPlatform, p)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.settings.Clone()
	next.Platforms[p] = enabled
	s.settings = next
	return nil
}
