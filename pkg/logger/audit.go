package logger

import (
	"context"
	"log/slog"
)

// Audit event types
const (
	EventLoginSuccess     = "login_success"
	EventLoginFailed      = "login_failed"
	EventLoginBlocked     = "login_blocked"
	EventLoginLockedOut   = "login_locked_out"
	EventCredentialChange = "credential_change"
)

// AuditEvent is one security relevant event
type AuditEvent struct {
	EventType     string
	Username      string
	IPAddress     string
	UserAgent     string
	Success       bool
	FailureReason string
	Metadata      map[string]string
}

// AuditLogger writes "audit" records through slog. Submitted usernames pass through
// RedactedAttr so they only appear in development logs; passwords are never accepted.
type AuditLogger struct {
	logger *slog.Logger
	env    string
}

func NewAuditLogger(logger *slog.Logger, env string) *AuditLogger {
	return &AuditLogger{
		logger: logger.With(slog.String("component", "audit")),
		env:    env,
	}
}

// LogAuthAttempt records a decided admin login attempt
func (al *AuditLogger) LogAuthAttempt(event AuditEvent) {
	attrs := []slog.Attr{
		slog.String("audit_type", "auth"),
		slog.String("event_type", event.EventType),
		slog.Bool("success", event.Success),
	}
	if event.Username != "" {
		attrs = append(attrs, RedactedAttr("username", event.Username, al.env))
	}
	attrs = appendNonEmpty(attrs, "ip_address", event.IPAddress)
	attrs = appendNonEmpty(attrs, "user_agent", event.UserAgent)
	attrs = appendNonEmpty(attrs, "failure_reason", event.FailureReason)
	attrs = appendMetadata(attrs, event.Metadata)

	al.emit(event.Success, attrs)
}

// LogCredentialChange records an admin username or password change
func (al *AuditLogger) LogCredentialChange(ipAddress string, usernameChanged, passwordChanged, success bool) {
	attrs := []slog.Attr{
		slog.String("audit_type", "credentials"),
		slog.String("event_type", EventCredentialChange),
		slog.Bool("success", success),
		slog.Bool("username_changed", usernameChanged),
		slog.Bool("password_changed", passwordChanged),
	}
	attrs = appendNonEmpty(attrs, "ip_address", ipAddress)

	al.emit(success, attrs)
}

// LogAdminAction records a content change made from the admin panel
func (al *AuditLogger) LogAdminAction(eventType, ipAddress string, metadata map[string]string) {
	attrs := []slog.Attr{
		slog.String("audit_type", "admin"),
		slog.String("event_type", eventType),
	}
	attrs = appendNonEmpty(attrs, "ip_address", ipAddress)
	attrs = appendMetadata(attrs, metadata)

	al.emit(true, attrs)
}

// emit logs failures at warn so they stand out in the default info stream
func (al *AuditLogger) emit(success bool, attrs []slog.Attr) {
	level := slog.LevelInfo
	if !success {
		level = slog.LevelWarn
	}
	al.logger.LogAttrs(context.Background(), level, "audit", attrs...)
}

func appendNonEmpty(attrs []slog.Attr, key, value string) []slog.Attr {
	if value == "" {
		return attrs
	}
	return append(attrs, slog.String(key, value))
}

func appendMetadata(attrs []slog.Attr, metadata map[string]string) []slog.Attr {
	for key, val := range metadata {
		attrs = append(attrs, slog.String(key, val))
	}
	return attrs
}
