package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/BradenHooton/heavyprofile/internal/models"
	"github.com/BradenHooton/heavyprofile/internal/repositories"
)

// RateLimitService decides whether a client may attempt an admin login.
// All state lives in the AttemptStore; the service only applies the policy.
type RateLimitService struct {
	store  repositories.AttemptStore
	policy models.LockoutPolicy
	logger *slog.Logger
	now    func() time.Time
}

// NewRateLimitService creates a new RateLimitService
func NewRateLimitService(store repositories.AttemptStore, policy models.LockoutPolicy, logger *slog.Logger) *RateLimitService {
	return &RateLimitService{
		store:  store,
		policy: policy,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the time source, used by tests.
func (s *RateLimitService) WithClock(now func() time.Time) *RateLimitService {
	s.now = now
	return s
}

// CheckStatus reports whether id is currently locked out.
// On a store error the returned decision allows the attempt with a full budget.
func (s *RateLimitService) CheckStatus(ctx context.Context, id string) (models.RateLimitDecision, error) {
	now := s.now()

	if evicted, err := s.store.SweepExpired(ctx, now); err != nil {
		s.logger.Debug("attempt sweep failed", slog.Any("error", err))
	} else if evicted > 0 {
		s.logger.Debug("evicted expired login attempt records", slog.Int("count", evicted))
	}

	rec, err := s.store.Get(ctx, id, now)
	if err != nil {
		return s.allowed(0), err
	}
	if rec == nil {
		return s.allowed(0), nil
	}
	if rec.IsBlockedAt(now) {
		return blocked(rec, false), nil
	}
	return s.allowed(rec.Count), nil
}

// OnFailure records a failed credential check for id.
// Callers must not invoke it while CheckStatus reports id as blocked.
func (s *RateLimitService) OnFailure(ctx context.Context, id string) (models.RateLimitDecision, error) {
	now := s.now()

	rec, transitioned, err := s.store.RecordFailure(ctx, id, now)
	if err != nil {
		return models.RateLimitDecision{}, err
	}

	if rec.IsBlockedAt(now) {
		if transitioned {
			s.logger.Warn("client locked out",
				slog.String("client_id", id),
				slog.Int("failed_attempts", rec.Count),
				slog.Time("blocked_until", *rec.BlockedUntil),
			)
		}
		return blocked(rec, transitioned), nil
	}
	return s.allowed(rec.Count), nil
}

// OnSuccess clears all attempt state for id. It is safe to call when no record exists.
func (s *RateLimitService) OnSuccess(ctx context.Context, id string) error {
	return s.store.Reset(ctx, id)
}

// Sweep evicts expired records; it never affects lockout decisions.
func (s *RateLimitService) Sweep(ctx context.Context) (int, error) {
	return s.store.SweepExpired(ctx, s.now())
}

func (s *RateLimitService) allowed(count int) models.RateLimitDecision {
	remaining := s.policy.MaxAttempts - count
	if remaining < 0 {
		remaining = 0
	}
	return models.RateLimitDecision{RemainingAttempts: remaining}
}

func blocked(rec *models.AttemptRecord, justBlocked bool) models.RateLimitDecision {
	until := *rec.BlockedUntil
	return models.RateLimitDecision{
		Blocked:      true,
		BlockedUntil: &until,
		JustBlocked:  justBlocked,
	}
}
