package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	appnotif "github.com/stokku/backend/internal/application/notification"
	apptenant "github.com/stokku/backend/internal/application/tenant"
	"github.com/stokku/backend/internal/domain/shared"
	"github.com/stokku/backend/internal/domain/tenant"
	"go.uber.org/zap"
)

// ErrSchedulerNotRunning is returned when a manual trigger hits a stopped scheduler
var ErrSchedulerNotRunning = errors.New("scheduler is not running")

// Config holds background job settings
type Config struct {
	// Enabled determines if background jobs run at all
	Enabled bool

	// AlertRefreshInterval is how often stock alerts are rederived per tenant
	AlertRefreshInterval time.Duration

	// SubscriptionSweep is how often lapsed subscriptions are downgraded
	SubscriptionSweep time.Duration

	// JobTimeout is the maximum duration of one job run
	JobTimeout time.Duration
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() Config {
	return Config{
		Enabled:              true,
		AlertRefreshInterval: 15 * time.Minute,
		SubscriptionSweep:    time.Hour,
		JobTimeout:           5 * time.Minute,
	}
}

// Scheduler runs the periodic background jobs: alert regeneration for every
// tenant and the subscription expiry sweep. Jobs run sequentially inside their
// loop; a slow run delays the next tick rather than overlapping it.
type Scheduler struct {
	alerts        *appnotif.AlertService
	subscriptions *apptenant.SubscriptionService
	businessRepo  tenant.BusinessRepository
	logger        *zap.Logger
	config        Config

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// New creates a new Scheduler
func New(
	alerts *appnotif.AlertService,
	subscriptions *apptenant.SubscriptionService,
	businessRepo tenant.BusinessRepository,
	logger *zap.Logger,
	config Config,
) *Scheduler {
	return &Scheduler{
		alerts:        alerts,
		subscriptions: subscriptions,
		businessRepo:  businessRepo,
		logger:        logger,
		config:        config,
	}
}

// Start launches the background loops. Calling Start on a running scheduler
// is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Background scheduler is disabled")
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(2)
	go s.runAlertRefresh(ctx)
	go s.runSubscriptionSweep(ctx)

	s.logger.Info("Background scheduler started",
		zap.Duration("alert_refresh_interval", s.config.AlertRefreshInterval),
		zap.Duration("subscription_sweep", s.config.SubscriptionSweep),
	)

	return nil
}

// Stop gracefully stops the scheduler, waiting for in-flight runs until ctx
// expires.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Background scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Background scheduler stop timed out")
		return ctx.Err()
	}
}

// IsRunning returns whether the scheduler is running
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// TriggerAlertRefresh runs an immediate alert regeneration pass without
// waiting for the next tick.
func (s *Scheduler) TriggerAlertRefresh(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		s.refreshAllTenants(ctx)
	}()

	return nil
}

// runAlertRefresh rederives stock alerts for every tenant on an interval
func (s *Scheduler) runAlertRefresh(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.AlertRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Alert refresh loop stopping")
			return
		case <-ticker.C:
			s.refreshAllTenants(ctx)
		}
	}
}

// runSubscriptionSweep downgrades lapsed subscriptions on an interval
func (s *Scheduler) runSubscriptionSweep(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.SubscriptionSweep)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Subscription sweep loop stopping")
			return
		case <-ticker.C:
			s.sweepSubscriptions(ctx)
		}
	}
}

// refreshAllTenants regenerates the alert set of each business. One failing
// tenant does not stop the pass.
func (s *Scheduler) refreshAllTenants(ctx context.Context) {
	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	start := time.Now()

	businesses, err := s.businessRepo.FindAll(jobCtx, shared.Filter{})
	if err != nil {
		s.logger.Error("Alert refresh failed to list businesses", zap.Error(err))
		return
	}

	var failed int
	for i := range businesses {
		if err := s.alerts.Regenerate(jobCtx, businesses[i].ID, nil); err != nil {
			failed++
			s.logger.Error("Alert refresh failed for tenant",
				zap.String("tenant_id", businesses[i].ID.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("Alert refresh completed",
		zap.Int("tenants", len(businesses)),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(start)),
	)
}

// sweepSubscriptions downgrades businesses whose subscription lapsed
func (s *Scheduler) sweepSubscriptions(ctx context.Context) {
	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	start := time.Now()

	downgraded, err := s.subscriptions.SweepExpired(jobCtx)
	if err != nil {
		s.logger.Error("Subscription sweep failed",
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("Subscription sweep completed",
		zap.Int("downgraded", downgraded),
		zap.Duration("duration", time.Since(start)),
	)
}
