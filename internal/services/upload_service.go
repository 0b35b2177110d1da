package services

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/BradenHooton/heavyprofile/internal/models"
	"github.com/google/uuid"
)

// ObjectStorage stores uploaded files and returns their public URL
type ObjectStorage interface {
	Put(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error)
}

var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// UploadService validates and stores admin image uploads
type UploadService struct {
	storage  ObjectStorage
	maxBytes int64
	logger   *slog.Logger
	now      func() time.Time
}

// NewUploadService creates a new UploadService. A nil storage disables uploads.
func NewUploadService(storage ObjectStorage, maxBytes int64, logger *slog.Logger) *UploadService {
	return &UploadService{
		storage:  storage,
		maxBytes: maxBytes,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// Upload checks the declared type, the size and the sniffed content type, then stores the file.
func (s *UploadService) Upload(ctx context.Context, declaredType string, size int64, body io.Reader) (string, error) {
	if s.storage == nil {
		return "", models.ErrStorageNotConfigured
	}

	ext, ok := allowedImageTypes[declaredType]
	if !ok {
		return "", fmt.Errorf("%w: %q", models.ErrInvalidFileType, declaredType)
	}
	if size > s.maxBytes {
		return "", fmt.Errorf("%w: %d bytes", models.ErrFileTooLarge, size)
	}

	br := bufio.NewReaderSize(body, 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if sniffed := http.DetectContentType(head); sniffed != declaredType {
		return "", fmt.Errorf("%w: declared %s, content is %s", models.ErrInvalidFileType, declaredType, sniffed)
	}

	name := fmt.Sprintf("%d-%s.%s", s.now().UnixMilli(), uuid.NewString()[:8], ext)
	url, err := s.storage.Put(ctx, name, declaredType, io.LimitReader(br, s.maxBytes), size)
	if err != nil {
		s.logger.Error("failed to store upload", slog.String("name", name), slog.Any("error", err))
		return "", err
	}

	s.logger.Info("file uploaded", slog.String("name", name), slog.Int64("size", size))
	return url, nil
}
