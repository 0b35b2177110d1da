package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BradenHooton/heavyprofile/internal/models"
	pkgauth "github.com/BradenHooton/heavyprofile/pkg/auth"
	pkglogger "github.com/BradenHooton/heavyprofile/pkg/logger"
)

// AdminStatus is what the admin panel shows about the stored credentials
type AdminStatus struct {
	Username string `json:"username"`
	Exists   bool   `json:"exists"`
}

// CredentialChange is a request to change the admin username and/or password
type CredentialChange struct {
	Username        string
	Password        string
	CurrentPassword string
	ClientIP        string
}

// CredentialChangeResult reports which fields were updated
type CredentialChangeResult struct {
	UsernameChanged bool
	PasswordChanged bool
}

// AdminService manages the admin credentials
type AdminService struct {
	repo        AdminCredentialRepository
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

// NewAdminService creates a new AdminService
func NewAdminService(repo AdminCredentialRepository, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *AdminService {
	return &AdminService{
		repo:        repo,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// Status returns the effective username and whether a password is set
func (s *AdminService) Status(ctx context.Context) (*AdminStatus, error) {
	admin, err := s.get(ctx)
	if err != nil {
		return nil, err
	}
	return &AdminStatus{
		Username: admin.EffectiveUsername(),
		Exists:   admin.Password != "",
	}, nil
}

// ChangeCredentials updates the admin record after checking the current password.
// A new password is stored in the same format as the current one.
func (s *AdminService) ChangeCredentials(ctx context.Context, change CredentialChange) (*CredentialChangeResult, error) {
	admin, err := s.get(ctx)
	if err != nil {
		return nil, err
	}

	if change.CurrentPassword == "" || !pkgauth.VerifyPassword(admin.Password, change.CurrentPassword) {
		s.logger.Warn("credential change rejected: current password mismatch")
		s.auditLogger.LogCredentialChange(change.ClientIP, false, false, false)
		return nil, models.ErrInvalidCurrentPassword
	}

	username := strings.TrimSpace(change.Username)
	if username == "" && change.Password == "" {
		return nil, fmt.Errorf("%w: nothing to update", models.ErrBadRequest)
	}

	var newUsername, newPassword *string
	if username != "" {
		newUsername = &username
	}
	if change.Password != "" {
		if err := pkgauth.ValidatePassword(change.Password); err != nil {
			return nil, err
		}
		stored := change.Password
		if pkgauth.IsBcryptHash(admin.Password) {
			if stored, err = pkgauth.HashPassword(change.Password); err != nil {
				s.logger.Error("failed to hash new admin password", slog.Any("error", err))
				return nil, models.ErrInternalServer
			}
		}
		newPassword = &stored
	}

	if err := s.repo.Update(ctx, admin.ID, newUsername, newPassword); err != nil {
		s.logger.Error("failed to update admin credentials", slog.Any("error", err))
		s.auditLogger.LogCredentialChange(change.ClientIP, newUsername != nil, newPassword != nil, false)
		return nil, fmt.Errorf("%w: %v", models.ErrCredentialStoreUnavailable, err)
	}

	result := &CredentialChangeResult{
		UsernameChanged: newUsername != nil,
		PasswordChanged: newPassword != nil,
	}
	s.logger.Info("admin credentials updated",
		slog.Bool("username_changed", result.UsernameChanged),
		slog.Bool("password_changed", result.PasswordChanged))
	s.auditLogger.LogCredentialChange(change.ClientIP, result.UsernameChanged, result.PasswordChanged, true)
	return result, nil
}

func (s *AdminService) get(ctx context.Context) (*models.AdminCredentials, error) {
	admin, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: no admin record", models.ErrCredentialStoreUnavailable)
		}
		s.logger.Error("failed to read admin credentials", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", models.ErrCredentialStoreUnavailable, err)
	}
	return admin, nil
}
