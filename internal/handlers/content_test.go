package handlers_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BradenHooton/heavyprofile/internal/handlers"
	"github.com/BradenHooton/heavyprofile/internal/models"
	"github.com/BradenHooton/heavyprofile/internal/services"
	pkglogger "github.com/BradenHooton/heavyprofile/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newFaqHandler(repo *services.MockContentRepository[models.FaqItem]) *handlers.ContentHandler[models.FaqItem] {
	logger := discardLogger()
	return handlers.NewContentHandler[models.FaqItem](
		services.NewFaqService(repo, logger),
		pkglogger.NewAuditLogger(logger, "test"),
		nil,
	)
}

func TestContentList(t *testing.T) {
	repo := &services.MockContentRepository[models.FaqItem]{
		ListFunc: func(ctx context.Context) ([]*models.FaqItem, error) {
			return []*models.FaqItem{{ID: "f1", Question: "Сроки?", Answer: "От 1 дня"}}, nil
		},
	}

	w := httptest.NewRecorder()
	newFaqHandler(repo).List(w, httptest.NewRequest(http.MethodGet, "/api/admin/faq", nil))

	var resp struct {
		Items []models.FaqItem `json:"items"`
	}
	handlers.AssertJSONResponse(t, w, http.StatusOK, &resp)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "f1", resp.Items[0].ID)
}

func TestContentList_EmptyAndError(t *testing.T) {
	w := httptest.NewRecorder()
	newFaqHandler(&services.MockContentRepository[models.FaqItem]{}).List(w, httptest.NewRequest(http.MethodGet, "/api/admin/faq", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[]}`, w.Body.String())

	failing := &services.MockContentRepository[models.FaqItem]{
		ListFunc: func(ctx context.Context) ([]*models.FaqItem, error) {
			return nil, errors.New("db down")
		},
	}
	w = httptest.NewRecorder()
	newFaqHandler(failing).List(w, httptest.NewRequest(http.MethodGet, "/api/admin/faq", nil))
	handlers.AssertMessageError(t, w, http.StatusInternalServerError, "Failed to read items")
}

func TestContentCreate_AssignsID(t *testing.T) {
	var stored *models.FaqItem
	repo := &services.MockContentRepository[models.FaqItem]{
		CreateFunc: func(ctx context.Context, item *models.FaqItem) (*models.FaqItem, error) {
			stored = item
			return item, nil
		},
	}

	req := handlers.NewTestRequest(t, http.MethodPost, "/api/admin/faq", models.FaqItem{Question: "Оплата?", Answer: "Безнал"})
	w := httptest.NewRecorder()
	newFaqHandler(repo).Create(w, req)

	var resp struct {
		Success bool           `json:"success"`
		Item    models.FaqItem `json:"item"`
	}
	handlers.AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.True(t, resp.Success)
	require.NotNil(t, stored)
	assert.NotEmpty(t, resp.Item.ID)
	assert.Equal(t, stored.ID, resp.Item.ID)
}

func TestContentCreate_Rejected(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		createErr  error
		wantStatus int
	}{
		{"invalid json", `{`, nil, http.StatusBadRequest},
		{"missing answer", `{"question":"Q"}`, nil, http.StatusBadRequest},
		{"duplicate id", `{"id":"f1","question":"Q","answer":"A"}`, models.ErrConflict, http.StatusConflict},
		{"store failure", `{"question":"Q","answer":"A"}`, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &services.MockContentRepository[models.FaqItem]{
				CreateFunc: func(ctx context.Context, item *models.FaqItem) (*models.FaqItem, error) {
					return nil, tt.createErr
				},
			}

			w := httptest.NewRecorder()
			newFaqHandler(repo).Create(w, httptest.NewRequest(http.MethodPost, "/api/admin/faq", strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestContentUpdate(t *testing.T) {
	repo := &services.MockContentRepository[models.FaqItem]{
		UpdateFunc: func(ctx context.Context, item *models.FaqItem) (*models.FaqItem, error) {
			if item.ID != "f1" {
				return nil, models.ErrNotFound
			}
			return item, nil
		},
	}
	h := newFaqHandler(repo)

	w := httptest.NewRecorder()
	h.Update(w, handlers.NewTestRequest(t, http.MethodPut, "/api/admin/faq", models.FaqItem{ID: "f1", Question: "Q", Answer: "A2"}))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.Update(w, handlers.NewTestRequest(t, http.MethodPut, "/api/admin/faq", models.FaqItem{ID: "missing", Question: "Q", Answer: "A"}))
	handlers.AssertMessageError(t, w, http.StatusNotFound, "Item not found")

	w = httptest.NewRecorder()
	h.Update(w, handlers.NewTestRequest(t, http.MethodPut, "/api/admin/faq", models.FaqItem{Question: "Q", Answer: "A"}))
	handlers.AssertMessageError(t, w, http.StatusBadRequest, "Item id is required")
}

func TestContentDelete(t *testing.T) {
	var deleted []string
	repo := &services.MockContentRepository[models.FaqItem]{
		DeleteFunc: func(ctx context.Context, id string) error {
			deleted = append(deleted, id)
			return nil
		},
	}
	h := newFaqHandler(repo)

	w := httptest.NewRecorder()
	h.Delete(w, httptest.NewRequest(http.MethodDelete, "/api/admin/faq", strings.NewReader(`{"id":"f1"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	assert.Equal(t, []string{"f1"}, deleted)

	w = httptest.NewRecorder()
	h.Delete(w, httptest.NewRequest(http.MethodDelete, "/api/admin/faq", strings.NewReader(`{}`)))
	handlers.AssertMessageError(t, w, http.StatusBadRequest, "Item id is required")
	assert.Len(t, deleted, 1)
}
