package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"SocialStream/models"
	"SocialStream/utils"
)

const (
	systemSourceURL     = "N/A"
	noLinkedAccountsMsg = "Post skipped: No linked accounts found. Please link your socials in the left panel."
)

// errSuperseded ends a cycle whose generation was stopped or replaced.
var errSuperseded = errors.New("cycle superseded")

// PostPublisher publishes one post to one platform.
type PostPublisher interface {
	PublishPost(ctx context.Context, post *models.Post, platform models.Platform) (models.PublishResult, error)
}

type RunnerConfig struct {
	Clock     Clock
	Location  *time.Location
	Settings  *SettingsStore
	Accounts  *AccountLinkManager
	Fetcher   Fetcher
	Rewriter  CaptionRewriter
	Publisher PostPublisher
	Feed      *ContentFeed
	IDs       IDGenerator
	Metrics   *Metrics
}

// CycleRunner owns the automation loop: it arms a one-shot timer for the
// next scheduled hour and, when it fires, runs fetch, rewrite and post
// before re-arming itself.
//
// Every arm bumps gen. A fired timer or an in-flight cycle only acts while
// its generation is current, so Stop and restarts invalidate it without
// having to wait for it.
type CycleRunner struct {
	clock     Clock
	loc       *time.Location
	settings  *SettingsStore
	accounts  *AccountLinkManager
	fetcher   Fetcher
	rewriter  CaptionRewriter
	publisher PostPublisher
	feed      *ContentFeed
	ids       IDGenerator
	metrics   *Metrics
	countdown *Countdown

	mu        sync.Mutex
	status    models.CycleStatus
	running   bool
	gen       uint64
	timer     Timer
	cancel    context.CancelFunc
	baseCtx   context.Context
	nextRun   time.Time
	lastError string
}

func NewCycleRunner(cfg RunnerConfig) *CycleRunner {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.IDs == nil {
		cfg.IDs = UUIDGenerator{}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics()
	}
	return &CycleRunner{
		clock:     cfg.Clock,
		loc:       cfg.Location,
		settings:  cfg.Settings,
		accounts:  cfg.Accounts,
		fetcher:   cfg.Fetcher,
		rewriter:  cfg.Rewriter,
		publisher: cfg.Publisher,
		feed:      cfg.Feed,
		ids:       cfg.IDs,
		metrics:   cfg.Metrics,
		countdown: NewCountdown(cfg.Clock),
		status:    models.StatusIdle,
		baseCtx:   context.Background(),
	}
}

// Start arms the loop for the next scheduled hour. ctx bounds every cycle
// run by this start. Starting while running is rejected; starting from
// ERROR is the manual restart.
func (r *CycleRunner) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return fmt.Errorf("%w: automation is already running (%s)", ErrInvalidState, r.status)
	}
	r.running = true
	r.lastError = ""
	r.baseCtx = ctx
	r.armLocked()

	utils.Infof("automation started next_run=%s", r.nextRun.Format(time.RFC3339))
	return nil
}

// Stop disarms every timer, cancels any in-flight wait and returns to IDLE.
// Stopping an idle runner does nothing.
func (r *CycleRunner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running && r.status == models.StatusIdle {
		return
	}
	r.gen++
	r.running = false
	r.lastError = ""
	r.disarmLocked()
	r.setStatusLocked(models.StatusIdle)
	utils.Infof("automation stopped")
}

// Snapshot is what the control API reports.
func (r *CycleRunner) Snapshot() models.RunnerSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := models.RunnerSnapshot{
		Status:    r.status,
		Running:   r.running,
		Countdown: r.countdown.Label(),
		LastError: r.lastError,
	}
	if !r.nextRun.IsZero() {
		next := r.nextRun
		snap.NextRun = &next
	}
	return snap
}

// armLocked computes the next run from now and arms the one-shot timer and
// the countdown for it.
func (r *CycleRunner) armLocked() {
	r.gen++
	gen := r.gen

	now := r.clock.Now()
	hours := r.settings.Get().ScheduleHours
	next := NextRun(now, hours, r.loc)

	r.nextRun = next
	r.setStatusLocked(models.StatusWaitingForSchedule)
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = r.clock.AfterFunc(next.Sub(now), func() { r.runCycle(gen) })
	r.countdown.Reset(next)
	r.metrics.NextRun.Set(float64(next.Unix()))

	utils.Debugf("automation armed gen=%d next_run=%s in=%s", gen, next.Format(time.RFC3339), next.Sub(now))
}

func (r *CycleRunner) disarmLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.countdown.Stop()
	r.nextRun = time.Time{}
	r.metrics.NextRun.Set(0)
}

func (r *CycleRunner) setStatusLocked(status models.CycleStatus) {
	r.status = status
	r.metrics.SetStatus(status)
}

// advance moves to status if gen is still current.
func (r *CycleRunner) advance(gen uint64, status models.CycleStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running || gen != r.gen {
		return errSuperseded
	}
	r.setStatusLocked(status)
	return nil
}

// record appends entry to the feed if gen is still current.
func (r *CycleRunner) record(gen uint64, entry models.ContentLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running || gen != r.gen {
		return errSuperseded
	}
	r.feed.Append(entry)
	return nil
}

// runCycle is the timer callback for generation gen.
func (r *CycleRunner) runCycle(gen uint64) {
	r.mu.Lock()
	if !r.running || gen != r.gen {
		r.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(r.baseCtx)
	r.cancel = cancel
	r.timer = nil
	r.setStatusLocked(models.StatusFetching)
	settings := r.settings.Get()
	r.mu.Unlock()
	defer cancel()

	utils.Infof("automation cycle started gen=%d source=%s", gen, settings.SourceIdentity)
	err := r.cycle(ctx, gen, settings)

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running || gen != r.gen {
		utils.Infof("automation cycle abandoned gen=%d", gen)
		return
	}
	r.cancel = nil

	switch {
	case err == nil:
		r.armLocked()
	case r.baseCtx.Err() != nil:
		// the owner of the start context is shutting down
		r.gen++
		r.running = false
		r.disarmLocked()
		r.setStatusLocked(models.StatusIdle)
		utils.Infof("automation cycle cancelled gen=%d", gen)
	default:
		r.gen++
		r.running = false
		r.lastError = err.Error()
		r.disarmLocked()
		r.setStatusLocked(models.StatusError)
		r.metrics.Cycles.WithLabelValues("failed").Inc()
		utils.Errorf("automation cycle failed gen=%d err=%v", gen, err)
	}
}

func (r *CycleRunner) cycle(ctx context.Context, gen uint64, settings models.AutomationSettings) error {
	source, err := r.fetcher.Fetch(ctx, settings.SourceIdentity)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: fetch from %s: %v", ErrCycleFailed, settings.SourceIdentity, err)
	}

	if err := r.advance(gen, models.StatusRewriting); err != nil {
		return err
	}
	caption, err := r.rewriter.Rewrite(ctx, source.Caption, settings.RewriteInstruction)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		utils.Warnf("caption rewrite failed, using fallback err=%v", err)
		caption = FailedCaptionFallback
		r.metrics.CaptionFallbacks.Inc()
	}

	if err := r.advance(gen, models.StatusPosting); err != nil {
		return err
	}
	active := r.accounts.ActivePlatforms(settings.EnabledPlatforms())
	if len(active) == 0 {
		if err := r.record(gen, models.ContentLogEntry{
			ID:        r.ids.NewID(),
			Timestamp: r.clock.Now(),
			Platform:  models.SystemPlatform,
			SourceURL: systemSourceURL,
			Caption:   noLinkedAccountsMsg,
			Status:    models.OutcomeFailed,
		}); err != nil {
			return err
		}
		utils.Warnf("automation post skipped: %v", ErrNoLinkedAccounts)
		r.metrics.Cycles.WithLabelValues("skipped").Inc()
		return nil
	}

	post := &models.Post{
		ID:        r.ids.NewID(),
		Source:    source,
		Caption:   caption,
		CreatedAt: r.clock.Now(),
	}
	for _, platform := range active {
		// an unlink can land between two posts of the same cycle
		if !r.accounts.IsLinked(platform) {
			utils.Warnf("post skipped platform=%s reason=unlinked", platform)
			continue
		}
		result, err := r.publisher.PublishPost(ctx, post, platform)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, ErrInvalidState) && !r.accounts.IsLinked(platform) {
				utils.Warnf("post skipped platform=%s reason=unlinked err=%v", platform, err)
				continue
			}
			return fmt.Errorf("%w: publish to %s: %v", ErrCycleFailed, platform, err)
		}

		if err := r.record(gen, models.ContentLogEntry{
			ID:             r.ids.NewID(),
			Timestamp:      r.clock.Now(),
			Platform:       string(platform),
			SourceURL:      source.URL,
			Caption:        caption,
			Status:         models.OutcomeSuccess,
			ExternalPostID: result.PostID,
		}); err != nil {
			return err
		}
		r.metrics.Posts.WithLabelValues(string(platform)).Inc()
		utils.Infof("post published platform=%s post_id=%s", platform, result.PostID)
	}

	r.metrics.Cycles.WithLabelValues("success").Inc()
	return nil
}
