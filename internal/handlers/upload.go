package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/BradenHooton/heavyprofile/internal/models"
	pkghttp "github.com/BradenHooton/heavyprofile/pkg/http"
)

// multipartOverhead leaves room for boundaries and headers around the file part
const multipartOverhead = 64 * 1024

// UploadServiceInterface stores validated image uploads
type UploadServiceInterface interface {
	Upload(ctx context.Context, declaredType string, size int64, body io.Reader) (string, error)
	MaxBytes() int64
}

// UploadHandler handles POST /api/upload
type UploadHandler struct {
	service UploadServiceInterface
}

func NewUploadHandler(service UploadServiceInterface) *UploadHandler {
	return &UploadHandler{service: service}
}

type uploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	maxBytes := h.service.MaxBytes()
	tooLarge := fmt.Sprintf("File too large. Maximum size is %dMB.", maxBytes/(1024*1024))

	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var mbErr *http.MaxBytesError
		if errors.As(err, &mbErr) {
			pkghttp.WriteMessageError(w, http.StatusBadRequest, tooLarge)
			return
		}
		pkghttp.WriteMessageError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		pkghttp.WriteMessageError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	url, err := h.service.Upload(r.Context(), header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrStorageNotConfigured):
			pkghttp.WriteMessageError(w, http.StatusServiceUnavailable, "Сервис загрузки файлов не настроен")
		case errors.Is(err, models.ErrInvalidFileType):
			pkghttp.WriteMessageError(w, http.StatusBadRequest, "Invalid file type. Only JPEG, PNG, WebP and GIF are allowed.")
		case errors.Is(err, models.ErrFileTooLarge):
			pkghttp.WriteMessageError(w, http.StatusBadRequest, tooLarge)
		default:
			pkghttp.WriteMessageError(w, http.StatusInternalServerError, "Ошибка загрузки файла")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, uploadResponse{Success: true, URL: url})
}
