package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/BradenHooton/heavyprofile/internal/models"
	pkgauth "github.com/BradenHooton/heavyprofile/pkg/auth"
)

// AdminCredentialRepository defines the admin record operations used by the services
type AdminCredentialRepository interface {
	Get(ctx context.Context) (*models.AdminCredentials, error)
	Update(ctx context.Context, id string, username, password *string) error
}

// CredentialService checks submitted credentials against the single admin record
type CredentialService struct {
	repo    AdminCredentialRepository
	timeout time.Duration
	logger  *slog.Logger
}

// NewCredentialService creates a new CredentialService. A non-positive timeout disables the lookup deadline.
func NewCredentialService(repo AdminCredentialRepository, timeout time.Duration, logger *slog.Logger) *CredentialService {
	return &CredentialService{
		repo:    repo,
		timeout: timeout,
		logger:  logger,
	}
}

// Verify reports whether username and password match the stored admin.
// It returns ErrCredentialStoreUnavailable when the store cannot be read or holds no admin row.
func (s *CredentialService) Verify(ctx context.Context, username, password string) (bool, error) {
	admin, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	usernameOK := pkgauth.ConstantTimeEqual(admin.EffectiveUsername(), username)
	passwordOK := pkgauth.VerifyPassword(admin.Password, password)
	return usernameOK && passwordOK, nil
}

// Admin returns the stored admin record, with the same error contract as Verify.
func (s *CredentialService) Admin(ctx context.Context) (*models.AdminCredentials, error) {
	return s.load(ctx)
}

func (s *CredentialService) load(ctx context.Context) (*models.AdminCredentials, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	admin, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Error("admin record missing from credential store")
			return nil, fmt.Errorf("%w: no admin record", models.ErrCredentialStoreUnavailable)
		}
		s.logger.Error("failed to read admin credentials", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", models.ErrCredentialStoreUnavailable, err)
	}
	return admin, nil
}
