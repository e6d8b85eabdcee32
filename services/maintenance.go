package services

import (
	"context"
	"fmt"
	"time"

	"SocialStream/utils"

	"github.com/robfig/cron/v3"
)

// Maintenance runs housekeeping jobs on a cron schedule, separate from the
// automation loop.
type Maintenance struct {
	cron *cron.Cron
}

func NewMaintenance() *Maintenance {
	return &Maintenance{
		cron: cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
	}
}

// Every registers job to run at a fixed interval.
func (m *Maintenance) Every(interval time.Duration, name string, job func()) error {
	_, err := m.cron.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		utils.Debugf("maintenance job started name=%s", name)
		job()
	})
	if err != nil {
		return fmt.Errorf("schedule maintenance job %s: %w", name, err)
	}
	return nil
}

// PurgeOAuthStates registers the expired-state sweep for states.
func (m *Maintenance) PurgeOAuthStates(states *OAuthStateService, interval time.Duration) error {
	return m.Every(interval, "oauth_state_purge", func() {
		if n := states.PurgeExpired(); n > 0 {
			utils.Infof("purged expired oauth states count=%d", n)
		}
	})
}

func (m *Maintenance) Jobs() int {
	return len(m.cron.Entries())
}

func (m *Maintenance) Start() {
	m.cron.Start()
	utils.Infof("maintenance scheduler started jobs=%d", m.Jobs())
}

// Stop halts the scheduler and returns a context that is done once running
// jobs have finished.
func (m *Maintenance) Stop() context.Context {
	return m.cron.Stop()
}
