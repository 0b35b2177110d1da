package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/BradenHooton/heavyprofile/internal/models"
	"github.com/BradenHooton/heavyprofile/internal/services"
	pkghttp "github.com/BradenHooton/heavyprofile/pkg/http"
	pkglogger "github.com/BradenHooton/heavyprofile/pkg/logger"
)

// ContentServiceInterface defines CRUD over one kind of list content
type ContentServiceInterface[T services.ContentItem] interface {
	Kind() string
	List(ctx context.Context) ([]*T, error)
	Create(ctx context.Context, item *T) (*T, error)
	Update(ctx context.Context, item *T) (*T, error)
	Delete(ctx context.Context, id string) error
}

// ContentHandler serves /api/admin/{portfolio,services,faq}
type ContentHandler[T services.ContentItem] struct {
	service     ContentServiceInterface[T]
	auditLogger *pkglogger.AuditLogger
	ipConfig    *pkghttp.IPConfig
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler[T services.ContentItem](service ContentServiceInterface[T], auditLogger *pkglogger.AuditLogger, ipConfig *pkghttp.IPConfig) *ContentHandler[T] {
	return &ContentHandler[T]{
		service:     service,
		auditLogger: auditLogger,
		ipConfig:    ipConfig,
	}
}

type itemsResponse[T any] struct {
	Items []*T `json:"items"`
}

type itemResponse[T any] struct {
	Success bool `json:"success"`
	Item    *T   `json:"item"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type deleteRequest struct {
	ID string `json:"id"`
}

// List handles GET
func (h *ContentHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		pkghttp.WriteMessageError(w, http.StatusInternalServerError, "Failed to read items")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, itemsResponse[T]{Items: items})
}

// Create handles POST
func (h *ContentHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	item, ok := decodeItem[T](w, r)
	if !ok {
		return
	}

	created, err := h.service.Create(r.Context(), item)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			pkghttp.WriteMessageError(w, http.StatusConflict, "Item already exists")
			return
		}
		pkghttp.WriteMessageError(w, http.StatusInternalServerError, "Failed to create item")
		return
	}

	h.audit(r, "created")
	pkghttp.WriteJSON(w, http.StatusOK, itemResponse[T]{Success: true, Item: created})
}

// Update handles PUT; the id travels in the body
func (h *ContentHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	item, ok := decodeItem[T](w, r)
	if !ok {
		return
	}

	updated, err := h.service.Update(r.Context(), item)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteMessageError(w, http.StatusNotFound, "Item not found")
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteMessageError(w, http.StatusBadRequest, "Item id is required")
		default:
			pkghttp.WriteMessageError(w, http.StatusInternalServerError, "Failed to update item")
		}
		return
	}

	h.audit(r, "updated")
	pkghttp.WriteJSON(w, http.StatusOK, itemResponse[T]{Success: true, Item: updated})
}

// Delete handles DELETE with body {"id": "..."}; unknown ids succeed
func (h *ContentHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteMessageError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.Delete(r.Context(), req.ID); err != nil {
		if errors.Is(err, models.ErrBadRequest) {
			pkghttp.WriteMessageError(w, http.StatusBadRequest, "Item id is required")
			return
		}
		pkghttp.WriteMessageError(w, http.StatusInternalServerError, "Failed to delete item")
		return
	}

	h.audit(r, "deleted")
	pkghttp.WriteJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *ContentHandler[T]) audit(r *http.Request, action string) {
	if h.auditLogger == nil {
		return
	}
	h.auditLogger.LogAdminAction(h.service.Kind()+"_"+action, pkghttp.ExtractClientIP(r, h.ipConfig), nil)
}

func decodeItem[T services.ContentItem](w http.ResponseWriter, r *http.Request) (*T, bool) {
	item := new(T)
	if err := json.NewDecoder(r.Body).Decode(item); err != nil {
		pkghttp.WriteMessageError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if err := ValidateRequest(item); err != nil {
		pkghttp.WriteMessageError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return item, true
}
