package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/BradenHooton/heavyprofile/internal/auth"
	"github.com/BradenHooton/heavyprofile/internal/models"
	"github.com/BradenHooton/heavyprofile/internal/services"
	pkghttp "github.com/BradenHooton/heavyprofile/pkg/http"
)

// LoginServiceInterface defines the admin login flow used by AuthHandler
type LoginServiceInterface interface {
	Login(ctx context.Context, req services.LoginRequest) (*services.LoginResult, error)
	ObserveRejected()
}

// SessionValidator validates admin session tokens
type SessionValidator interface {
	Validate(token string) (*models.SessionClaims, error)
}

// AuthHandler handles admin login, session status and logout
type AuthHandler struct {
	service  LoginServiceInterface
	sessions SessionValidator
	ipConfig *pkghttp.IPConfig
	cookies  auth.CookieConfig
	policy   models.LockoutPolicy
	now      func() time.Time
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(
	service LoginServiceInterface,
	sessions SessionValidator,
	ipConfig *pkghttp.IPConfig,
	cookies auth.CookieConfig,
	policy models.LockoutPolicy,
) *AuthHandler {
	return &AuthHandler{
		service:  service,
		sessions: sessions,
		ipConfig: ipConfig,
		cookies:  cookies,
		policy:   policy,
		now:      time.Now,
	}
}

// LoginRequest represents the request body for admin login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the body of every login response
type LoginResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message,omitempty"`
	RemainingAttempts *int   `json:"remainingAttempts,omitempty"`
	Blocked           bool   `json:"blocked,omitempty"`
	BlockedUntil      int64  `json:"blockedUntil,omitempty"` // epoch milliseconds
}

// SessionStatusResponse reports whether the caller holds a valid admin session
type SessionStatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

const (
	msgCredentialsRequired = "Логин и пароль обязательны"
	msgAuthFailed          = "Ошибка аутентификации"
	msgStoreUnavailable    = "Ошибка аутентификации. Проверьте, что таблица admin существует и содержит данные."
)

// Login handles POST /api/admin/auth.
// Missing fields are rejected before the rate limiter is consulted, so they never use up an attempt.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.service.ObserveRejected()
		writeLogin(w, http.StatusBadRequest, LoginResponse{Message: msgCredentialsRequired})
		return
	}
	if err := ValidateRequest(req); err != nil {
		h.service.ObserveRejected()
		writeLogin(w, http.StatusBadRequest, LoginResponse{Message: msgCredentialsRequired})
		return
	}

	result, err := h.service.Login(r.Context(), services.LoginRequest{
		ClientID:  pkghttp.ExtractClientIP(r, h.ipConfig),
		Username:  req.Username,
		Password:  req.Password,
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		msg := msgAuthFailed
		if services.IsStoreUnavailable(err) {
			msg = msgStoreUnavailable
		}
		writeLogin(w, http.StatusInternalServerError, LoginResponse{Message: msg})
		return
	}

	switch result.Outcome {
	case services.OutcomeSuccess:
		auth.SetSessionCookie(w, result.SessionToken, result.SessionExpiresAt, h.cookies)
		writeLogin(w, http.StatusOK, LoginResponse{Success: true})

	case services.OutcomeBlocked:
		until := *result.BlockedUntil
		writeLogin(w, http.StatusTooManyRequests, LoginResponse{
			Message: fmt.Sprintf("Слишком много попыток входа. Доступ заблокирован на %s. Осталось: %s",
				lockoutPhrase(h.policy.LockoutDuration), FormatTimeRemaining(until.Sub(h.now()))),
			Blocked:      true,
			BlockedUntil: until.UnixMilli(),
		})

	case services.OutcomeLockedOut:
		until := *result.BlockedUntil
		writeLogin(w, http.StatusTooManyRequests, LoginResponse{
			Message: fmt.Sprintf("Превышено количество попыток (%d). Доступ заблокирован на %s. Осталось: %s",
				h.policy.MaxAttempts, lockoutPhrase(h.policy.LockoutDuration), FormatTimeRemaining(until.Sub(h.now()))),
			Blocked:      true,
			BlockedUntil: until.UnixMilli(),
		})

	default:
		remaining := result.RemainingAttempts
		writeLogin(w, http.StatusUnauthorized, LoginResponse{
			Message:           fmt.Sprintf("Неверный логин или пароль. Осталось попыток: %d", remaining),
			RemainingAttempts: &remaining,
		})
	}
}

// Status handles GET /api/admin/auth
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	token := auth.TokenFromRequest(r)
	if token == "" {
		pkghttp.WriteJSON(w, http.StatusOK, SessionStatusResponse{})
		return
	}

	claims, err := h.sessions.Validate(token)
	if err != nil {
		pkghttp.WriteJSON(w, http.StatusOK, SessionStatusResponse{})
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, SessionStatusResponse{Authenticated: true, Username: claims.Username})
}

// Logout handles POST /api/admin/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.cookies)
	pkghttp.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeLogin(w http.ResponseWriter, status int, resp LoginResponse) {
	pkghttp.WriteJSON(w, status, resp)
}

// FormatTimeRemaining renders d as "<h> ч. <m> мин.", or "<m> мин." under an hour
func FormatTimeRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	if hours > 0 {
		return fmt.Sprintf("%d ч. %d мин.", hours, minutes)
	}
	return fmt.Sprintf("%d мин.", minutes)
}

// lockoutPhrase renders the lockout duration for the 429 message, e.g. "24 часа"
func lockoutPhrase(d time.Duration) string {
	if d%time.Hour != 0 {
		return FormatTimeRemaining(d)
	}
	h := int(d / time.Hour)
	switch {
	case h%10 == 1 && h%100 != 11:
		return fmt.Sprintf("%d час", h)
	case h%10 >= 2 && h%10 <= 4 && (h%100 < 12 || h%100 > 14):
		return fmt.Sprintf("%d часа", h)
	default:
		return fmt.Sprintf("%d часов", h)
	}
}
