package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/BradenHooton/heavyprofile/internal/models"
	pkghttp "github.com/BradenHooton/heavyprofile/pkg/http"
	pkglogger "github.com/BradenHooton/heavyprofile/pkg/logger"
)

// SiteContentServiceInterface defines settings and legal documents access
type SiteContentServiceInterface interface {
	Settings(ctx context.Context) models.SiteSettings
	SaveSettings(ctx context.Context, settings *models.SiteSettings) error
	Documents(ctx context.Context) (models.Documents, error)
	SaveDocuments(ctx context.Context, docs *models.Documents) error
}

// SiteHandler serves site settings and legal documents
type SiteHandler struct {
	service     SiteContentServiceInterface
	auditLogger *pkglogger.AuditLogger
	ipConfig    *pkghttp.IPConfig
}

func NewSiteHandler(service SiteContentServiceInterface, auditLogger *pkglogger.AuditLogger, ipConfig *pkghttp.IPConfig) *SiteHandler {
	return &SiteHandler{
		service:     service,
		auditLogger: auditLogger,
		ipConfig:    ipConfig,
	}
}

// GetSettings handles GET /api/admin/settings. It always answers with usable settings.
func (h *SiteHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	pkghttp.WriteJSON(w, http.StatusOK, h.service.Settings(r.Context()))
}

// PutSettings handles PUT /api/admin/settings
func (h *SiteHandler) PutSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.SiteSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		pkghttp.WriteMessageError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.SaveSettings(r.Context(), &settings); err != nil {
		pkghttp.WriteMessageError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	h.auditLogger.LogAdminAction("settings_updated", pkghttp.ExtractClientIP(r, h.ipConfig), nil)
	pkghttp.WriteJSON(w, http.StatusOK, successResponse{Success: true})
}

// GetDocuments handles GET /api/documents and GET /api/admin/documents.
// With ?type=privacy or ?type=offer only that document is returned.
func (h *SiteHandler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.Documents(r.Context())
	if err != nil {
		pkghttp.WriteMessage(w, http.StatusInternalServerError, "Error reading documents")
		return
	}

	if doc, ok := docs.ByType(r.URL.Query().Get("type")); ok {
		pkghttp.WriteJSON(w, http.StatusOK, doc)
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, docs)
}

// PutDocuments handles PUT /api/admin/documents
func (h *SiteHandler) PutDocuments(w http.ResponseWriter, r *http.Request) {
	docs := models.DefaultDocuments()
	if err := json.NewDecoder(r.Body).Decode(&docs); err != nil {
		pkghttp.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.SaveDocuments(r.Context(), &docs); err != nil {
		pkghttp.WriteMessage(w, http.StatusInternalServerError, "Error updating documents")
		return
	}

	h.auditLogger.LogAdminAction("documents_updated", pkghttp.ExtractClientIP(r, h.ipConfig), nil)
	pkghttp.WriteMessage(w, http.StatusOK, "Documents updated successfully")
}
