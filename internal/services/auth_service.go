package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/BradenHooton/heavyprofile/internal/models"
	pkglogger "github.com/BradenHooton/heavyprofile/pkg/logger"
)

// Login outcomes, also used as metric labels
const (
	OutcomeSuccess          = "success"
	OutcomeInvalid          = "invalid"
	OutcomeBlocked          = "blocked"
	OutcomeLockedOut        = "locked_out"
	OutcomeStoreUnavailable = "store_unavailable"
	OutcomeBadRequest       = "bad_request"
)

const auditWriteTimeout = 5 * time.Second

// CredentialVerifier checks a username/password pair against the credential store
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (bool, error)
}

// SessionIssuer creates a signed admin session
type SessionIssuer interface {
	Issue(username string) (string, time.Time, error)
}

// LoginAttemptRecorder persists the login audit trail
type LoginAttemptRecorder interface {
	RecordAttempt(ctx context.Context, attempt *models.LoginAttempt) error
}

// LoginMetrics counts login outcomes
type LoginMetrics interface {
	ObserveLogin(outcome string)
}

// FailureDelay slows down failed attempts
type FailureDelay interface {
	WaitFrom(ctx context.Context, start time.Time, success bool)
}

// LoginRequest is a single admin login attempt
type LoginRequest struct {
	ClientID  string
	Username  string
	Password  string
	UserAgent string
}

// LoginResult describes how an attempt was decided
type LoginResult struct {
	Outcome           string
	RemainingAttempts int
	BlockedUntil      *time.Time
	SessionToken      string
	SessionExpiresAt  time.Time
}

// AuthService runs the admin login flow: rate limit check, credential check, then bookkeeping
type AuthService struct {
	limiter     *RateLimitService
	verifier    CredentialVerifier
	sessions    SessionIssuer
	recorder    LoginAttemptRecorder
	metrics     LoginMetrics
	delay       FailureDelay
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger

	pending sync.WaitGroup
}

// NewAuthService creates a new AuthService. recorder, metrics and delay may be nil.
func NewAuthService(
	limiter *RateLimitService,
	verifier CredentialVerifier,
	sessions SessionIssuer,
	recorder LoginAttemptRecorder,
	metrics LoginMetrics,
	delay FailureDelay,
	logger *slog.Logger,
	auditLogger *pkglogger.AuditLogger,
) *AuthService {
	return &AuthService{
		limiter:     limiter,
		verifier:    verifier,
		sessions:    sessions,
		recorder:    recorder,
		metrics:     metrics,
		delay:       delay,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// Login decides one attempt. Callers validate that username and password are present first.
// The returned error is non-nil only for a credential store outage or a session signing failure;
// the result is still populated in the former case.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	start := time.Now()

	pre, err := s.limiter.CheckStatus(ctx, req.ClientID)
	if err != nil {
		s.logger.Error("attempt store unavailable, allowing login attempt",
			slog.String("client_id", req.ClientID),
			slog.Any("error", err))
	}

	if pre.Blocked {
		s.logger.Info("login rejected: client locked out", slog.String("client_id", req.ClientID))
		s.finish(req, OutcomeBlocked, "locked_out")
		return &LoginResult{Outcome: OutcomeBlocked, BlockedUntil: pre.BlockedUntil}, nil
	}

	valid, err := s.verifier.Verify(ctx, req.Username, req.Password)
	if err != nil {
		s.logger.Error("credential check failed", slog.Any("error", err))
		s.observe(OutcomeStoreUnavailable)
		s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     pkglogger.EventLoginFailed,
			Username:      req.Username,
			IPAddress:     req.ClientID,
			UserAgent:     req.UserAgent,
			FailureReason: "credential_store_unavailable",
		})
		return &LoginResult{Outcome: OutcomeStoreUnavailable}, err
	}

	if valid {
		return s.succeed(ctx, req)
	}

	post, err := s.limiter.OnFailure(ctx, req.ClientID)
	if err != nil {
		s.logger.Error("failed to record login failure",
			slog.String("client_id", req.ClientID),
			slog.Any("error", err))
		remaining := pre.RemainingAttempts - 1
		if remaining < 0 {
			remaining = 0
		}
		post = models.RateLimitDecision{RemainingAttempts: remaining}
	}

	if s.delay != nil {
		s.delay.WaitFrom(ctx, start, false)
	}

	if post.Blocked {
		s.finish(req, OutcomeLockedOut, "too_many_attempts")
		return &LoginResult{Outcome: OutcomeLockedOut, BlockedUntil: post.BlockedUntil}, nil
	}

	s.logger.Info("login failed: invalid credentials",
		slog.String("client_id", req.ClientID),
		slog.Int("remaining_attempts", post.RemainingAttempts))
	s.finish(req, OutcomeInvalid, "invalid_credentials")
	return &LoginResult{Outcome: OutcomeInvalid, RemainingAttempts: post.RemainingAttempts}, nil
}

func (s *AuthService) succeed(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if err := s.limiter.OnSuccess(ctx, req.ClientID); err != nil {
		s.logger.Error("failed to reset login attempts",
			slog.String("client_id", req.ClientID),
			slog.Any("error", err))
	}

	token, expiresAt, err := s.sessions.Issue(req.Username)
	if err != nil {
		s.logger.Error("failed to issue admin session", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", models.ErrInternalServer, err)
	}

	s.logger.Info("admin logged in", slog.String("client_id", req.ClientID))
	s.finish(req, OutcomeSuccess, "")
	return &LoginResult{
		Outcome:          OutcomeSuccess,
		SessionToken:     token,
		SessionExpiresAt: expiresAt,
	}, nil
}

// ObserveRejected counts an attempt rejected before the login flow, such as a missing field.
func (s *AuthService) ObserveRejected() {
	s.observe(OutcomeBadRequest)
}

// Drain waits for pending audit writes, used on shutdown and in tests.
func (s *AuthService) Drain() {
	s.pending.Wait()
}

func (s *AuthService) finish(req LoginRequest, outcome, failureReason string) {
	success := outcome == OutcomeSuccess
	blocked := outcome == OutcomeBlocked || outcome == OutcomeLockedOut

	s.observe(outcome)

	eventType := pkglogger.EventLoginSuccess
	switch {
	case outcome == OutcomeLockedOut:
		eventType = pkglogger.EventLoginLockedOut
	case blocked:
		eventType = pkglogger.EventLoginBlocked
	case !success:
		eventType = pkglogger.EventLoginFailed
	}
	s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
		EventType:     eventType,
		Username:      req.Username,
		IPAddress:     req.ClientID,
		UserAgent:     req.UserAgent,
		Success:       success,
		FailureReason: failureReason,
	})

	if s.recorder == nil {
		return
	}

	attempt := &models.LoginAttempt{
		IPAddress:   req.ClientID,
		Username:    req.Username,
		AttemptedAt: time.Now().UTC(),
		Success:     success,
		Blocked:     blocked,
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		defer cancel()
		if err := s.recorder.RecordAttempt(ctx, attempt); err != nil {
			s.logger.Warn("failed to record login attempt", slog.Any("error", err))
		}
	}()
}

func (s *AuthService) observe(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveLogin(outcome)
	}
}

// IsStoreUnavailable reports whether err came from a credential store outage.
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, models.ErrCredentialStoreUnavailable)
}
