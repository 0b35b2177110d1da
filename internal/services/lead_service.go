package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BradenHooton/heavyprofile/internal/models"
)

// LeadNotifier delivers a lead somewhere a human will read it
type LeadNotifier interface {
	Notify(ctx context.Context, lead *models.Lead) error
}

// LeadService forwards contact form submissions. The primary notifier decides the outcome;
// the copy notifier is best effort.
type LeadService struct {
	primary LeadNotifier
	copy    LeadNotifier
	logger  *slog.Logger
	now     func() time.Time
}

// NewLeadService creates a new LeadService. Either notifier may be nil.
func NewLeadService(primary, copy LeadNotifier, logger *slog.Logger) *LeadService {
	return &LeadService{
		primary: primary,
		copy:    copy,
		logger:  logger,
		now:     time.Now,
	}
}

// Submit forwards the lead
func (s *LeadService) Submit(ctx context.Context, lead *models.Lead) error {
	if s.primary == nil {
		s.logger.Error("lead received but no notifier is configured")
		return models.ErrNotifierNotConfigured
	}

	if lead.ReceivedAt.IsZero() {
		lead.ReceivedAt = s.now()
	}

	if err := s.primary.Notify(ctx, lead); err != nil {
		s.logger.Error("failed to deliver lead", slog.Any("error", err))
		return fmt.Errorf("%w: %v", models.ErrNotificationFailed, err)
	}

	if s.copy != nil {
		if err := s.copy.Notify(ctx, lead); err != nil {
			s.logger.Warn("failed to send lead copy", slog.Any("error", err))
		}
	}
	return nil
}
