package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaintenanceRegistersJobs(t *testing.T) {
	m := NewMaintenance()
	states := NewOAuthStateService(newFakeClock(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)))

	require.NoError(t, m.PurgeOAuthStates(states, 10*time.Minute))
	require.NoError(t, m.Every(3*time.Minute, "limiter_cleanup", func() {}))
	assert.Equal(t, 2, m.Jobs())
}

func TestMaintenanceRunsJobs(t *testing.T) {
	m := NewMaintenance()
	ran := make(chan struct{}, 1)
	require.NoError(t, m.Every(time.Second, "tick", func() {
		select {
		case ran <- struct{}{}:
		default:
		}
	}))

	m.Start()
	defer m.Stop()

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("maintenance job did not run")
	}
}
