package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Login errors
	ErrCredentialStoreUnavailable = errors.New("credential store unavailable")
	ErrAttemptStoreUnavailable    = errors.New("attempt store unavailable")
	ErrInvalidCurrentPassword     = errors.New("current password does not match")

	// Upload errors
	ErrInvalidFileType      = errors.New("invalid file type")
	ErrFileTooLarge         = errors.New("file too large")
	ErrStorageNotConfigured = errors.New("upload storage not configured")

	// Lead notification errors
	ErrNotifierNotConfigured = errors.New("lead notifier not configured")
	ErrNotificationFailed    = errors.New("lead notification failed")
)
