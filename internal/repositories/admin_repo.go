package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/BradenHooton/heavyprofile/internal/database"
	"github.com/BradenHooton/heavyprofile/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminRepository reads and updates the single admin credential row.
type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(db *database.DB) *AdminRepository {
	return &AdminRepository{pool: db.Pool}
}

// Get returns the admin row. ErrNotFound means the table is empty.
func (r *AdminRepository) Get(ctx context.Context) (*models.AdminCredentials, error) {
	query := `SELECT id::text, COALESCE(username, ''), password FROM admin ORDER BY id LIMIT 1`

	var admin models.AdminCredentials
	err := r.pool.QueryRow(ctx, query).Scan(&admin.ID, &admin.Username, &admin.Password)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &admin, nil
}

// Update sets the given fields on the admin row. Nil fields are left unchanged.
func (r *AdminRepository) Update(ctx context.Context, id string, username, password *string) error {
	sets := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)

	if username != nil {
		args = append(args, *username)
		sets = append(sets, fmt.Sprintf("username = $%d", len(args)))
	}
	if password != nil {
		args = append(args, *password)
		sets = append(sets, fmt.Sprintf("password = $%d", len(args)))
	}
	if len(sets) == 0 {
		return models.ErrBadRequest
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE admin SET %s WHERE id::text = $%d", strings.Join(sets, ", "), len(args))

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Create inserts the admin row if the table is empty. It reports whether a row was inserted.
func (r *AdminRepository) Create(ctx context.Context, username, password string) (bool, error) {
	query := `
		INSERT INTO admin (username, password)
		SELECT $1, $2
		WHERE NOT EXISTS (SELECT 1 FROM admin)
	`
	tag, err := r.pool.Exec(ctx, query, username, password)
	if err != nil {
		return false, database.MapPostgresError(err)
	}
	return tag.RowsAffected() == 1, nil
}
