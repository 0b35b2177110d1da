package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/BradenHooton/heavyprofile/internal/models"
	"github.com/BradenHooton/heavyprofile/internal/services"
	pkgauth "github.com/BradenHooton/heavyprofile/pkg/auth"
	pkghttp "github.com/BradenHooton/heavyprofile/pkg/http"
)

// AdminServiceInterface defines admin credential management
type AdminServiceInterface interface {
	Status(ctx context.Context) (*services.AdminStatus, error)
	ChangeCredentials(ctx context.Context, change services.CredentialChange) (*services.CredentialChangeResult, error)
}

// LoginAttemptLister lists the login audit trail
type LoginAttemptLister interface {
	ListRecent(ctx context.Context, limit int) ([]*models.LoginAttempt, error)
}

// AdminHandler handles admin credential and audit endpoints
type AdminHandler struct {
	service  AdminServiceInterface
	attempts LoginAttemptLister
	ipConfig *pkghttp.IPConfig
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(service AdminServiceInterface, attempts LoginAttemptLister, ipConfig *pkghttp.IPConfig) *AdminHandler {
	return &AdminHandler{
		service:  service,
		attempts: attempts,
		ipConfig: ipConfig,
	}
}

// ChangeCredentialsRequest represents the body of POST /api/admin/password
type ChangeCredentialsRequest struct {
	Username        string `json:"username" validate:"max=100"`
	Password        string `json:"password"`
	CurrentPassword string `json:"currentPassword" validate:"required"`
}

// GetCredentials handles GET /api/admin/password
func (h *AdminHandler) GetCredentials(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context())
	if err != nil {
		pkghttp.WriteMessage(w, http.StatusInternalServerError, "Error reading admin config")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, status)
}

// ChangeCredentials handles POST /api/admin/password
func (h *AdminHandler) ChangeCredentials(w http.ResponseWriter, r *http.Request) {
	var req ChangeCredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteMessage(w, http.StatusBadRequest, "Некорректный запрос")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteMessage(w, http.StatusUnauthorized, "Неверный текущий пароль")
		return
	}

	result, err := h.service.ChangeCredentials(r.Context(), services.CredentialChange{
		Username:        req.Username,
		Password:        req.Password,
		CurrentPassword: req.CurrentPassword,
		ClientIP:        pkghttp.ExtractClientIP(r, h.ipConfig),
	})
	if err != nil {
		var pvErr *pkgauth.PasswordValidationError
		switch {
		case errors.Is(err, models.ErrInvalidCurrentPassword):
			pkghttp.WriteMessage(w, http.StatusUnauthorized, "Неверный текущий пароль")
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteMessage(w, http.StatusBadRequest, "Нет данных для обновления")
		case errors.As(err, &pvErr):
			pkghttp.WriteMessage(w, http.StatusBadRequest,
				"Пароль должен содержать минимум "+strconv.Itoa(pkgauth.MinPasswordLen)+" символов")
		case errors.Is(err, models.ErrCredentialStoreUnavailable):
			pkghttp.WriteMessage(w, http.StatusInternalServerError, "Ошибка получения данных администратора")
		default:
			pkghttp.WriteMessage(w, http.StatusInternalServerError, "Ошибка обновления данных")
		}
		return
	}

	pkghttp.WriteMessage(w, http.StatusOK, credentialChangeMessage(result))
}

// credentialChangeMessage builds e.g. "пароль и логин успешно обновлены"
func credentialChangeMessage(res *services.CredentialChangeResult) string {
	var fields []string
	if res.PasswordChanged {
		fields = append(fields, "пароль")
	}
	if res.UsernameChanged {
		fields = append(fields, "логин")
	}
	verb := "обновлен"
	if len(fields) > 1 {
		verb = "обновлены"
	}
	return strings.Join(fields, " и ") + " успешно " + verb
}

const (
	defaultAttemptLimit = 50
	maxAttemptLimit     = 500
)

// ListLoginAttempts handles GET /api/admin/login-attempts?limit=N
func (h *AdminHandler) ListLoginAttempts(w http.ResponseWriter, r *http.Request) {
	limit := defaultAttemptLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			pkghttp.WriteBadRequest(w, "limit must be a positive integer")
			return
		}
		limit = min(n, maxAttemptLimit)
	}

	attempts, err := h.attempts.ListRecent(r.Context(), limit)
	if err != nil {
		pkghttp.WriteInternalError(w, "Failed to list login attempts")
		return
	}
	if attempts == nil {
		attempts = []*models.LoginAttempt{}
	}
	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": attempts})
}
