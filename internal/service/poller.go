package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/talup-bot/internal/domain/entities"
)

// ProfileFetcher loads the learner profile.
type ProfileFetcher interface {
	Profile(ctx context.Context, token string) (entities.Profile, error)
}

// ProfilePoller refreshes lives from the profile on a fixed interval while a
// lesson is running. It is owned by exactly one lesson and stopped with it.
type ProfilePoller struct {
	api      ProfileFetcher
	token    string
	interval time.Duration
	onChange func(entities.Lives)
	logger   *zap.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	cancel  context.CancelFunc
	last    entities.Lives
	hasLast bool
}

// NewProfilePoller creates a stopped poller. onChange is called when lives differ
// from the previous poll.
func NewProfilePoller(
	api ProfileFetcher,
	token string,
	interval time.Duration,
	onChange func(entities.Lives),
	logger *zap.Logger,
) *ProfilePoller {
	return &ProfilePoller{
		api:      api,
		token:    token,
		interval: interval,
		onChange: onChange,
		logger:   logger,
	}
}

// Start schedules the poll job. Starting twice is a no-op.
func (p *ProfilePoller) Start(initial entities.Lives) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cron != nil {
		return nil
	}
	if p.interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", p.interval)
	}

	p.last = initial
	p.hasLast = true
	ctx, cancel := context.WithCancel(context.Background())

	c := cron.New()
	if _, err := c.AddFunc("@every "+p.interval.String(), func() { p.Poll(ctx) }); err != nil {
		cancel()
		return fmt.Errorf("add poll job: %w", err)
	}
	c.Start()
	p.cron = c
	p.cancel = cancel

	p.logger.Debug("profile poller started", zap.Duration("interval", p.interval))
	return nil
}

// Poll fetches the profile once.
func (p *ProfilePoller) Poll(ctx context.Context) {
	profile, err := p.api.Profile(ctx, p.token)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("profile poll failed", zap.Error(err))
		}
		return
	}

	p.mu.Lock()
	changed := !p.hasLast || p.last != profile.Lives
	p.last = profile.Lives
	p.hasLast = true
	p.mu.Unlock()

	if changed && p.onChange != nil {
		p.onChange(profile.Lives)
	}
}

// Stop cancels in-flight polls and removes the job. Safe to call more than once.
func (p *ProfilePoller) Stop() {
	p.mu.Lock()
	c := p.cron
	cancel := p.cancel
	p.cron = nil
	p.mu.Unlock()

	if c == nil {
		return
	}
	cancel()
	<-c.Stop().Done()

	p.logger.Debug("profile poller stopped")
}

// Running reports whether the job is scheduled.
func (p *ProfilePoller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cron != nil
}
