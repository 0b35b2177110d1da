package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BradenHooton/heavyprofile/internal/database"
	"github.com/jackc/pgx/v5"
)

// JSONDocumentRepository stores a single JSONB document in a one-row table.
// Used for site settings and legal documents.
type JSONDocumentRepository struct {
	db    *database.DB
	table string
}

func NewSettingsRepository(db *database.DB) *JSONDocumentRepository {
	return &JSONDocumentRepository{db: db, table: "settings"}
}

func NewDocumentsRepository(db *database.DB) *JSONDocumentRepository {
	return &JSONDocumentRepository{db: db, table: "documents"}
}

// Get returns the stored document. ErrNotFound means nothing has been saved yet.
func (r *JSONDocumentRepository) Get(ctx context.Context) (json.RawMessage, error) {
	query := fmt.Sprintf(`SELECT data FROM %s ORDER BY id LIMIT 1`, r.table)

	var data []byte
	if err := r.db.Pool.QueryRow(ctx, query).Scan(&data); err != nil {
		return nil, database.MapPostgresError(err)
	}
	return json.RawMessage(data), nil
}

// Put replaces the stored document, creating the row on first save.
func (r *JSONDocumentRepository) Put(ctx context.Context, data json.RawMessage) error {
	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		var id int64
		err := tx.QueryRow(ctx, fmt.Sprintf(`SELECT id FROM %s ORDER BY id LIMIT 1 FOR UPDATE`, r.table)).Scan(&id)
		switch {
		case err == nil:
			_, err = tx.Exec(ctx,
				fmt.Sprintf(`UPDATE %s SET data = $1, updated_at = NOW() WHERE id = $2`, r.table),
				data, id)
		case errors.Is(err, pgx.ErrNoRows):
			_, err = tx.Exec(ctx, fmt.Sprintf(`INSERT INTO %s (data) VALUES ($1)`, r.table), data)
		}
		return database.MapPostgresError(err)
	})
}
