package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BradenHooton/heavyprofile/internal/handlers"
	"github.com/BradenHooton/heavyprofile/internal/models"
	pkglogger "github.com/BradenHooton/heavyprofile/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSiteHandler(svc handlers.SiteContentServiceInterface) *handlers.SiteHandler {
	return handlers.NewSiteHandler(svc, pkglogger.NewAuditLogger(discardLogger(), "test"), nil)
}

func TestGetSettings(t *testing.T) {
	settings := models.DefaultSiteSettings()
	settings.Contacts.Phone = "+7 (999) 000-00-00"

	w := httptest.NewRecorder()
	newSiteHandler(&handlers.MockSiteContentService{SettingsValue: settings}).
		GetSettings(w, httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil))

	var resp models.SiteSettings
	handlers.AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, settings, resp)
}

func TestPutSettings(t *testing.T) {
	var saved *models.SiteSettings
	svc := &handlers.MockSiteContentService{
		SaveSettingsFunc: func(ctx context.Context, s *models.SiteSettings) error {
			saved = s
			return nil
		},
	}

	w := httptest.NewRecorder()
	newSiteHandler(svc).PutSettings(w, httptest.NewRequest(http.MethodPut, "/api/admin/settings",
		strings.NewReader(`{"company":{"name":"Тяжёлый Профиль"},"blocks":{"faq":true}}`)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	require.NotNil(t, saved)
	assert.Equal(t, "Тяжёлый Профиль", saved.Company.Name)
	assert.True(t, saved.Blocks.FAQ)
}

func TestPutSettings_Errors(t *testing.T) {
	w := httptest.NewRecorder()
	newSiteHandler(&handlers.MockSiteContentService{}).
		PutSettings(w, httptest.NewRequest(http.MethodPut, "/api/admin/settings", strings.NewReader(`[`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc := &handlers.MockSiteContentService{
		SaveSettingsFunc: func(ctx context.Context, s *models.SiteSettings) error { return errors.New("db down") },
	}
	w = httptest.NewRecorder()
	newSiteHandler(svc).PutSettings(w, httptest.NewRequest(http.MethodPut, "/api/admin/settings", strings.NewReader(`{}`)))
	handlers.AssertMessageError(t, w, http.StatusInternalServerError, "Failed to update settings")
}

func TestGetDocuments(t *testing.T) {
	docs := models.DefaultDocuments()
	docs.Privacy.Sections = []models.DocumentSection{{Title: "1. Общие положения", Content: []string{"Текст"}}}
	svc := &handlers.MockSiteContentService{
		DocumentsFunc: func(ctx context.Context) (models.Documents, error) { return docs, nil },
	}
	h := newSiteHandler(svc)

	w := httptest.NewRecorder()
	h.GetDocuments(w, httptest.NewRequest(http.MethodGet, "/api/documents", nil))
	var all models.Documents
	handlers.AssertJSONResponse(t, w, http.StatusOK, &all)
	assert.Equal(t, docs, all)

	w = httptest.NewRecorder()
	h.GetDocuments(w, httptest.NewRequest(http.MethodGet, "/api/documents?type=privacy", nil))
	var one models.Document
	handlers.AssertJSONResponse(t, w, http.StatusOK, &one)
	assert.Equal(t, docs.Privacy, one)

	w = httptest.NewRecorder()
	h.GetDocuments(w, httptest.NewRequest(http.MethodGet, "/api/documents?type=offer", nil))
	assert.JSONEq(t, `{"sections":[]}`, w.Body.String())
}

func TestGetDocuments_Error(t *testing.T) {
	svc := &handlers.MockSiteContentService{
		DocumentsFunc: func(ctx context.Context) (models.Documents, error) {
			return models.Documents{}, errors.New("db down")
		},
	}

	w := httptest.NewRecorder()
	newSiteHandler(svc).GetDocuments(w, httptest.NewRequest(http.MethodGet, "/api/documents", nil))

	var resp messageBody
	handlers.AssertJSONResponse(t, w, http.StatusInternalServerError, &resp)
	assert.Equal(t, "Error reading documents", resp.Message)
}

func TestPutDocuments(t *testing.T) {
	var saved *models.Documents
	svc := &handlers.MockSiteContentService{
		SaveDocumentsFunc: func(ctx context.Context, d *models.Documents) error {
			saved = d
			return nil
		},
	}

	w := httptest.NewRecorder()
	newSiteHandler(svc).PutDocuments(w, httptest.NewRequest(http.MethodPut, "/api/admin/documents",
		strings.NewReader(`{"offer":{"sections":[{"title":"Предмет","content":["a","b"]}]}}`)))

	var resp messageBody
	handlers.AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, "Documents updated successfully", resp.Message)
	require.NotNil(t, saved)
	require.Len(t, saved.Offer.Sections, 1)
	assert.Equal(t, []string{"a", "b"}, saved.Offer.Sections[0].Content)
	assert.NotNil(t, saved.Privacy.Sections)
}
