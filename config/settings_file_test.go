package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"SocialStream/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettingsMergesDefaults(t *testing.T) {
	settings, err := ParseSettings([]byte("schedule_hours: [21, 6, 6]\nsource_identity: \"@nasa\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "nasa", settings.SourceIdentity)
	assert.Equal(t, []int{6, 21}, settings.ScheduleHours)
	assert.Equal(t, models.DefaultSettings().RewriteInstruction, settings.RewriteInstruction)
	assert.True(t, settings.Platforms[models.TikTok])
}

func TestParseSettingsPlatformsReplaceDefaults(t *testing.T) {
	settings, err := ParseSettings([]byte("platforms:\n  facebook: true\n"))
	require.NoError(t, err)

	assert.True(t, settings.Platforms[models.Facebook])
	assert.False(t, settings.Platforms[models.TikTok])
}

func TestParseSettingsEmptyFileGivesDefaults(t *testing.T) {
	settings, err := ParseSettings(nil)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 9, 12}, settings.ScheduleHours)
}

func TestParseSettingsRejectsInvalid(t *testing.T) {
	_, err := ParseSettings([]byte("schedule_hours: [25]\n"))
	assert.Error(t, err)

	_, err = ParseSettings([]byte("unknown_key: 1\n"))
	assert.Error(t, err)
}

func TestWatchSettingsFileAppliesChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schedule_hours: [6]\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	applied := make(chan models.AutomationSettings, 4)
	go WatchSettingsFile(ctx, path, func(s models.AutomationSettings) error {
		applied <- s
		return nil
	})

	// give the watcher a moment to register before writing
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("schedule_hours: [18, 21]\n"), 0o600))

	select {
	case s := <-applied:
		assert.Equal(t, []int{18, 21}, s.ScheduleHours)
	case <-time.After(5 * time.Second):
		t.Fatal("settings change was not applied")
	}
}
