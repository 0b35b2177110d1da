package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/BradenHooton/heavyprofile/internal/models"
	pkghttp "github.com/BradenHooton/heavyprofile/pkg/http"
)

// LeadServiceInterface forwards contact form submissions
type LeadServiceInterface interface {
	Submit(ctx context.Context, lead *models.Lead) error
}

// LeadHandler handles POST /api/telegram
type LeadHandler struct {
	service LeadServiceInterface
}

func NewLeadHandler(service LeadServiceInterface) *LeadHandler {
	return &LeadHandler{service: service}
}

func (h *LeadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var lead models.Lead
	if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
		pkghttp.WriteMessageError(w, http.StatusBadRequest, "Имя и телефон обязательны")
		return
	}
	lead.Name = strings.TrimSpace(lead.Name)
	lead.Phone = strings.TrimSpace(lead.Phone)
	lead.Message = strings.TrimSpace(lead.Message)

	if err := ValidateRequest(lead); err != nil {
		pkghttp.WriteMessageError(w, http.StatusBadRequest, "Имя и телефон обязательны")
		return
	}

	if err := h.service.Submit(r.Context(), &lead); err != nil {
		if errors.Is(err, models.ErrNotifierNotConfigured) {
			pkghttp.WriteMessageError(w, http.StatusInternalServerError, "Сервис временно недоступен")
			return
		}
		pkghttp.WriteMessageError(w, http.StatusInternalServerError, "Ошибка отправки сообщения")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, successResponse{Success: true})
}
