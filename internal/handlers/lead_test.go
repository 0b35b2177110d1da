package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BradenHooton/heavyprofile/internal/handlers"
	"github.com/BradenHooton/heavyprofile/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadSubmit(t *testing.T) {
	svc := &handlers.MockLeadService{}

	w := httptest.NewRecorder()
	handlers.NewLeadHandler(svc).Submit(w, httptest.NewRequest(http.MethodPost, "/api/telegram",
		strings.NewReader(`{"name":"  Иван ","phone":" +7 900 000-00-00 ","message":"Нужны 5 грузчиков"}`)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	require.Len(t, svc.Submitted, 1)
	assert.Equal(t, "Иван", svc.Submitted[0].Name)
	assert.Equal(t, "+7 900 000-00-00", svc.Submitted[0].Phone)
	assert.Equal(t, "Нужны 5 грузчиков", svc.Submitted[0].Message)
}

func TestLeadSubmit_MissingFields(t *testing.T) {
	for _, body := range []string{`{"name":"Иван"}`, `{"phone":"+7"}`, `{"name":"   ","phone":"+7"}`, `nope`} {
		svc := &handlers.MockLeadService{}

		w := httptest.NewRecorder()
		handlers.NewLeadHandler(svc).Submit(w, httptest.NewRequest(http.MethodPost, "/api/telegram", strings.NewReader(body)))

		handlers.AssertMessageError(t, w, http.StatusBadRequest, "Имя и телефон обязательны")
		assert.Empty(t, svc.Submitted, body)
	}
}

func TestLeadSubmit_ServiceErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"not configured", models.ErrNotifierNotConfigured, "Сервис временно недоступен"},
		{"delivery failed", fmt.Errorf("%w: telegram returned 502", models.ErrNotificationFailed), "Ошибка отправки сообщения"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &handlers.MockLeadService{
				SubmitFunc: func(ctx context.Context, lead *models.Lead) error { return tt.err },
			}

			w := httptest.NewRecorder()
			handlers.NewLeadHandler(svc).Submit(w, httptest.NewRequest(http.MethodPost, "/api/telegram",
				strings.NewReader(`{"name":"Иван","phone":"+7"}`)))

			handlers.AssertMessageError(t, w, http.StatusInternalServerError, tt.wantMsg)
		})
	}
}
