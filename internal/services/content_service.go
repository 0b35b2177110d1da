package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/BradenHooton/heavyprofile/internal/models"
	"github.com/google/uuid"
)

// ContentItem is implemented by the editable list content types
type ContentItem interface {
	models.PortfolioItem | models.ServiceItem | models.FaqItem
}

// ContentRepository is the CRUD surface of one content table
type ContentRepository[T ContentItem] interface {
	List(ctx context.Context) ([]*T, error)
	Create(ctx context.Context, item *T) (*T, error)
	Update(ctx context.Context, item *T) (*T, error)
	Delete(ctx context.Context, id string) error
}

// ContentService manages one kind of list content
type ContentService[T ContentItem] struct {
	kind   string
	repo   ContentRepository[T]
	idOf   func(*T) *string
	logger *slog.Logger
}

func NewPortfolioService(repo ContentRepository[models.PortfolioItem], logger *slog.Logger) *ContentService[models.PortfolioItem] {
	return &ContentService[models.PortfolioItem]{
		kind:   "portfolio",
		repo:   repo,
		idOf:   func(i *models.PortfolioItem) *string { return &i.ID },
		logger: logger,
	}
}

func NewServiceCatalogService(repo ContentRepository[models.ServiceItem], logger *slog.Logger) *ContentService[models.ServiceItem] {
	return &ContentService[models.ServiceItem]{
		kind:   "services",
		repo:   repo,
		idOf:   func(i *models.ServiceItem) *string { return &i.ID },
		logger: logger,
	}
}

func NewFaqService(repo ContentRepository[models.FaqItem], logger *slog.Logger) *ContentService[models.FaqItem] {
	return &ContentService[models.FaqItem]{
		kind:   "faq",
		repo:   repo,
		idOf:   func(i *models.FaqItem) *string { return &i.ID },
		logger: logger,
	}
}

// Kind names the content type, for logs and audit records.
func (s *ContentService[T]) Kind() string {
	return s.kind
}

func (s *ContentService[T]) List(ctx context.Context) ([]*T, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list content", slog.String("kind", s.kind), slog.Any("error", err))
		return nil, err
	}
	if items == nil {
		items = []*T{}
	}
	return items, nil
}

// Create stores a new item, assigning a UUID when the client did not send an id.
func (s *ContentService[T]) Create(ctx context.Context, item *T) (*T, error) {
	if id := s.idOf(item); *id == "" {
		*id = uuid.NewString()
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		s.logger.Error("failed to create content", slog.String("kind", s.kind), slog.Any("error", err))
		return nil, err
	}
	return created, nil
}

// Update replaces an existing item. Unknown ids return ErrNotFound.
func (s *ContentService[T]) Update(ctx context.Context, item *T) (*T, error) {
	if *s.idOf(item) == "" {
		return nil, fmt.Errorf("%w: id is required", models.ErrBadRequest)
	}

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.logger.Error("failed to update content", slog.String("kind", s.kind), slog.Any("error", err))
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes an item. Deleting an unknown id succeeds.
func (s *ContentService[T]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", models.ErrBadRequest)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete content", slog.String("kind", s.kind), slog.Any("error", err))
		return err
	}
	return nil
}

// JSONDocumentStore persists one JSON document
type JSONDocumentStore interface {
	Get(ctx context.Context) (json.RawMessage, error)
	Put(ctx context.Context, data json.RawMessage) error
}

// SiteContentService serves the single-document content: site settings and legal documents
type SiteContentService struct {
	settings  JSONDocumentStore
	documents JSONDocumentStore
	logger    *slog.Logger
}

func NewSiteContentService(settings, documents JSONDocumentStore, logger *slog.Logger) *SiteContentService {
	return &SiteContentService{
		settings:  settings,
		documents: documents,
		logger:    logger,
	}
}

// Settings returns the saved settings, or the defaults when none are saved or the store fails.
func (s *SiteContentService) Settings(ctx context.Context) models.SiteSettings {
	settings := models.DefaultSiteSettings()
	if err := s.load(ctx, s.settings, &settings); err != nil {
		s.logger.Error("failed to read settings, serving defaults", slog.Any("error", err))
		return models.DefaultSiteSettings()
	}
	return settings
}

func (s *SiteContentService) SaveSettings(ctx context.Context, settings *models.SiteSettings) error {
	return s.save(ctx, s.settings, settings)
}

// Documents returns the saved legal documents, or empty ones when none are saved.
func (s *SiteContentService) Documents(ctx context.Context) (models.Documents, error) {
	docs := models.DefaultDocuments()
	if err := s.load(ctx, s.documents, &docs); err != nil {
		s.logger.Error("failed to read documents", slog.Any("error", err))
		return models.Documents{}, err
	}
	if docs.Privacy.Sections == nil {
		docs.Privacy.Sections = []models.DocumentSection{}
	}
	if docs.Offer.Sections == nil {
		docs.Offer.Sections = []models.DocumentSection{}
	}
	return docs, nil
}

func (s *SiteContentService) SaveDocuments(ctx context.Context, docs *models.Documents) error {
	return s.save(ctx, s.documents, docs)
}

// load decodes the stored document over dst. A missing document leaves dst untouched.
func (s *SiteContentService) load(ctx context.Context, store JSONDocumentStore, dst any) error {
	raw, err := store.Get(ctx)
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode stored document: %w", err)
	}
	return nil
}

func (s *SiteContentService) save(ctx context.Context, store JSONDocumentStore, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := store.Put(ctx, data); err != nil {
		s.logger.Error("failed to save document", slog.Any("error", err))
		return err
	}
	return nil
}
