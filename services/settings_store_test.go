package services

import (
	"testing"

	"SocialStream/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsStoreRejectsInvalid(t *testing.T) {
	store, err := NewSettingsStore(models.DefaultSettings())
	require.NoError(t, err)

	bad := models.DefaultSettings()
	bad.ScheduleHours = []int{}
	err = store.Update(bad)
	assert.ErrorIs(t, err, ErrInvalidSettings)
	assert.Equal(t, []int{6, 9, 12}, store.Get().ScheduleHours)
}

func TestSettingsStoreNormalizes(t *testing.T) {
	s := models.DefaultSettings()
	s.ScheduleHours = []int{12, 6, 12}
	store, err := NewSettingsStore(s)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 12}, store.Get().ScheduleHours)
}

func TestSettingsStoreGetReturnsCopy(t *testing.T) {
	store, err := NewSettingsStore(models.DefaultSettings())
	require.NoError(t, err)

	got := store.Get()
	got.Platforms[models.Facebook] = true
	got.ScheduleHours[0] = 23

	fresh := store.Get()
	assert.False(t, fresh.Platforms[models.Facebook])
	assert.Equal(t, 6, fresh.ScheduleHours[0])
}

func TestSettingsStoreToggleHour(t *testing.T) {
	store, err := NewSettingsStore(models.DefaultSettings())
	require.NoError(t, err)

	got, err := store.ToggleHour(18)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 9, 12, 18}, got.ScheduleHours)

	got, err = store.ToggleHour(9)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 12, 18}, got.ScheduleHours)
}

func TestSettingsStoreToggleLastHourRejected(t *testing.T) {
	s := models.DefaultSettings()
	s.ScheduleHours = []int{6}
	store, err := NewSettingsStore(s)
	require.NoError(t, err)

	_, err = store.ToggleHour(6)
	assert.ErrorIs(t, err, ErrInvalidSettings)
	assert.Equal(t, []int{6}, store.Get().ScheduleHours)

	_, err = store.ToggleHour(24)
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestSettingsStoreSetPlatform(t *testing.T) {
	store, err := NewSettingsStore(models.DefaultSettings())
	require.NoError(t, err)

	require.NoError(t, store.SetPlatform(models.Facebook, true))
	assert.True(t, store.Get().Platforms[models.Facebook])
	assert.ErrorIs(t, store.SetPlatform("myspace", true), ErrUnknownPlatform)
}
