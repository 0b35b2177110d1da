package repositories

import (
	"context"
	"fmt"

	"github.com/BradenHooton/heavyprofile/internal/database"
	"github.com/BradenHooton/heavyprofile/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// rowScanner interface for scanning rows (supports both single row and multiple rows)
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanAll iterates through rows and scans each with scan
func scanAll[T any](rows pgx.Rows, scan func(rowScanner) (*T, error)) ([]*T, error) {
	defer rows.Close()

	items := make([]*T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return items, nil
}

// PortfolioRepository

type PortfolioRepository struct {
	pool *pgxpool.Pool
}

func NewPortfolioRepository(db *database.DB) *PortfolioRepository {
	return &PortfolioRepository{pool: db.Pool}
}

const portfolioColumns = `id, title, description, image, category, client, duration, workers, created_at`

func scanPortfolioRow(s rowScanner) (*models.PortfolioItem, error) {
	var item models.PortfolioItem
	err := s.Scan(&item.ID, &item.Title, &item.Description, &item.Image, &item.Category,
		&item.Client, &item.Duration, &item.Workers, &item.CreatedAt)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &item, nil
}

func (r *PortfolioRepository) List(ctx context.Context) ([]*models.PortfolioItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+portfolioColumns+` FROM portfolio ORDER BY created_at DESC`)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return scanAll(rows, scanPortfolioRow)
}

func (r *PortfolioRepository) Create(ctx context.Context, item *models.PortfolioItem) (*models.PortfolioItem, error) {
	query := `
		INSERT INTO portfolio (id, title, description, image, category, client, duration, workers)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + portfolioColumns
	return scanPortfolioRow(r.pool.QueryRow(ctx, query,
		item.ID, item.Title, item.Description, item.Image, item.Category,
		item.Client, item.Duration, item.Workers,
	))
}

func (r *PortfolioRepository) Update(ctx context.Context, item *models.PortfolioItem) (*models.PortfolioItem, error) {
	query := `
		UPDATE portfolio
		SET title = $1, description = $2, image = $3, category = $4, client = $5, duration = $6, workers = $7
		WHERE id = $8
		RETURNING ` + portfolioColumns
	return scanPortfolioRow(r.pool.QueryRow(ctx, query,
		item.Title, item.Description, item.Image, item.Category,
		item.Client, item.Duration, item.Workers, item.ID,
	))
}

func (r *PortfolioRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM portfolio WHERE id = $1`, id)
	return database.MapPostgresError(err)
}

// ServiceRepository

type ServiceRepository struct {
	pool *pgxpool.Pool
}

func NewServiceRepository(db *database.DB) *ServiceRepository {
	return &ServiceRepository{pool: db.Pool}
}

const serviceColumns = `id, title, description, icon, features, order_index, created_at`

func scanServiceRow(s rowScanner) (*models.ServiceItem, error) {
	var item models.ServiceItem
	err := s.Scan(&item.ID, &item.Title, &item.Description, &item.Icon,
		&item.Features, &item.OrderIndex, &item.CreatedAt)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	if item.Features == nil {
		item.Features = []string{}
	}
	return &item, nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]*models.ServiceItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY order_index ASC, created_at ASC`)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return scanAll(rows, scanServiceRow)
}

func (r *ServiceRepository) Create(ctx context.Context, item *models.ServiceItem) (*models.ServiceItem, error) {
	query := `
		INSERT INTO services (id, title, description, icon, features, order_index)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + serviceColumns
	return scanServiceRow(r.pool.QueryRow(ctx, query,
		item.ID, item.Title, item.Description, item.Icon, nonNilFeatures(item.Features), item.OrderIndex,
	))
}

func (r *ServiceRepository) Update(ctx context.Context, item *models.ServiceItem) (*models.ServiceItem, error) {
	query := `
		UPDATE services
		SET title = $1, description = $2, icon = $3, features = $4, order_index = $5
		WHERE id = $6
		RETURNING ` + serviceColumns
	return scanServiceRow(r.pool.QueryRow(ctx, query,
		item.Title, item.Description, item.Icon, nonNilFeatures(item.Features), item.OrderIndex, item.ID,
	))
}

func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	return database.MapPostgresError(err)
}

func nonNilFeatures(f []string) []string {
	if f == nil {
		return []string{}
	}
	return f
}

// FaqRepository

type FaqRepository struct {
	pool *pgxpool.Pool
}

func NewFaqRepository(db *database.DB) *FaqRepository {
	return &FaqRepository{pool: db.Pool}
}

const faqColumns = `id, question, answer, order_index, created_at`

func scanFaqRow(s rowScanner) (*models.FaqItem, error) {
	var item models.FaqItem
	if err := s.Scan(&item.ID, &item.Question, &item.Answer, &item.OrderIndex, &item.CreatedAt); err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &item, nil
}

func (r *FaqRepository) List(ctx context.Context) ([]*models.FaqItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+faqColumns+` FROM faq ORDER BY order_index ASC, created_at ASC`)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return scanAll(rows, scanFaqRow)
}

func (r *FaqRepository) Create(ctx context.Context, item *models.FaqItem) (*models.FaqItem, error) {
	query := `
		INSERT INTO faq (id, question, answer, order_index)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + faqColumns
	return scanFaqRow(r.pool.QueryRow(ctx, query, item.ID, item.Question, item.Answer, item.OrderIndex))
}

func (r *FaqRepository) Update(ctx context.Context, item *models.FaqItem) (*models.FaqItem, error) {
	query := `
		UPDATE faq
		SET question = $1, answer = $2, order_index = $3
		WHERE id = $4
		RETURNING ` + faqColumns
	return scanFaqRow(r.pool.QueryRow(ctx, query, item.Question, item.Answer, item.OrderIndex, item.ID))
}

func (r *FaqRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM faq WHERE id = $1`, id)
	return database.MapPostgresError(err)
}
