package background

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultAuditRetention is how long login audit rows are kept
const DefaultAuditRetention = 90 * 24 * time.Hour

// AttemptSweeper evicts expired lockout records
type AttemptSweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// AuditPruner deletes old login audit rows
type AuditPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// CleanupManager periodically sweeps expired attempt records and prunes the login audit log.
// Lockout correctness never depends on it; expired records are ignored on read anyway.
type CleanupManager struct {
	attempts  AttemptSweeper
	audit     AuditPruner
	retention time.Duration
	logger    *slog.Logger
	interval  time.Duration
	now       func() time.Time
	stopCh    chan struct{}
	stopOnce  sync.Once
}

// NewCleanupManager creates a new cleanup manager. audit may be nil.
func NewCleanupManager(
	attempts AttemptSweeper,
	audit AuditPruner,
	logger *slog.Logger,
	interval time.Duration,
) *CleanupManager {
	return &CleanupManager{
		attempts:  attempts,
		audit:     audit,
		retention: DefaultAuditRetention,
		logger:    logger,
		interval:  interval,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}
}

// Start runs the cleanup immediately and then on every tick until stopped.
// A non-positive interval disables the manager.
func (cm *CleanupManager) Start(ctx context.Context) {
	if cm.interval <= 0 {
		cm.logger.Info("login sweeper disabled")
		return
	}

	ticker := time.NewTicker(cm.interval)
	defer ticker.Stop()

	cm.RunOnce(ctx)

	for {
		select {
		case <-ticker.C:
			cm.RunOnce(ctx)
		case <-cm.stopCh:
			cm.logger.Info("cleanup manager stopped")
			return
		case <-ctx.Done():
			cm.logger.Info("cleanup manager context cancelled")
			return
		}
	}
}

// RunOnce performs a single sweep
func (cm *CleanupManager) RunOnce(ctx context.Context) {
	cleanupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	evicted, err := cm.attempts.Sweep(cleanupCtx)
	if err != nil {
		cm.logger.Error("failed to sweep expired attempt records", slog.Any("error", err))
	} else if evicted > 0 {
		cm.logger.Info("expired attempt records swept", slog.Int("evicted", evicted))
	}

	if cm.audit == nil {
		return
	}
	rows, err := cm.audit.DeleteOlderThan(cleanupCtx, cm.now().Add(-cm.retention))
	if err != nil {
		cm.logger.Error("failed to prune login audit log", slog.Any("error", err))
		return
	}
	if rows > 0 {
		cm.logger.Info("login audit log pruned", slog.Int64("rows_deleted", rows))
	}
}

// Stop signals the cleanup manager to stop
func (cm *CleanupManager) Stop() {
	cm.stopOnce.Do(func() { close(cm.stopCh) })
}
