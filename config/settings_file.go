package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"SocialStream/models"
	"SocialStream/utils"

	"github.com/fsnotify/fsnotify"
	"go.yaml.in/yaml/v3"
)

const settingsDebounce = 300 * time.Millisecond

// LoadSettingsFile reads AutomationSettings from a YAML file. Fields the
// file omits keep their defaults.
func LoadSettingsFile(path string) (models.AutomationSettings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return models.AutomationSettings{}, err
	}
	return ParseSettings(b)
}

func ParseSettings(b []byte) (models.AutomationSettings, error) {
	settings := models.DefaultSettings()
	// the yaml decoder merges into existing maps; start platforms empty so the
	// file fully describes them when it names any
	defaults := settings.Platforms
	settings.Platforms = nil

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&settings); err != nil && !errors.Is(err, io.EOF) {
		return models.AutomationSettings{}, fmt.Errorf("parse settings: %w", err)
	}
	if settings.Platforms == nil {
		settings.Platforms = defaults
	}

	settings = settings.Normalize()
	if err := settings.Validate(); err != nil {
		return models.AutomationSettings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// WatchSettingsFile calls apply with freshly parsed settings each time the
// file changes. Bursts of events are debounced; files that fail to parse or
// validate are logged and skipped. It blocks until ctx is done.
func WatchSettingsFile(ctx context.Context, path string, apply func(models.AutomationSettings) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// watch the directory: editors often replace the file via rename
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return err
	}
	target := filepath.Clean(path)

	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	reload := func() {
		settings, err := LoadSettingsFile(path)
		if err != nil {
			utils.Warnf("settings reload skipped path=%s err=%v", path, err)
			return
		}
		if err := apply(settings); err != nil {
			utils.Warnf("settings reload rejected path=%s err=%v", path, err)
			return
		}
		utils.Infof("settings reloaded path=%s hours=%v", path, settings.ScheduleHours)
	}
	debounce := func() {
		timerMu.Lock()
		defer timerMu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(settingsDebounce, reload)
	}
	defer func() {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timerMu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				debounce()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			utils.Warnf("settings watch error path=%s err=%v", path, err)
		}
	}
}
