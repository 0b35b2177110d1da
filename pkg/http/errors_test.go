package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	pkghttp "github.com/BradenHooton/heavyprofile/pkg/http"
	"github.com/stretchr/testify/assert"
)

func TestBodyShapes(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		body   string
	}{
		{
			name:   "error body",
			write:  func(w http.ResponseWriter) { pkghttp.WriteMessageError(w, http.StatusNotFound, "Item not found") },
			status: http.StatusNotFound,
			body:   `{"error":"Item not found"}`,
		},
		{
			name:   "message body",
			write:  func(w http.ResponseWriter) { pkghttp.WriteMessage(w, http.StatusOK, "Documents updated successfully") },
			status: http.StatusOK,
			body:   `{"message":"Documents updated successfully"}`,
		},
		{
			name:   "bad request",
			write:  func(w http.ResponseWriter) { pkghttp.WriteBadRequest(w, "limit must be a positive integer") },
			status: http.StatusBadRequest,
			body:   `{"error":"bad_request","message":"limit must be a positive integer"}`,
		},
		{
			name:   "internal",
			write:  func(w http.ResponseWriter) { pkghttp.WriteInternalError(w, "boom") },
			status: http.StatusInternalServerError,
			body:   `{"error":"internal_error","message":"boom"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestWriteJSON_Cyrillic(t *testing.T) {
	w := httptest.NewRecorder()
	pkghttp.WriteMessage(w, http.StatusUnauthorized, "Неверный текущий пароль")

	assert.Contains(t, w.Body.String(), "Неверный текущий пароль")
}
