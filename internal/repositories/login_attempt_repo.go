package repositories

import (
	"context"
	"time"

	"github.com/BradenHooton/heavyprofile/internal/database"
	"github.com/BradenHooton/heavyprofile/internal/models"
)

// LoginAttemptRepository stores the admin login audit trail
type LoginAttemptRepository struct {
	db *database.DB
}

// NewLoginAttemptRepository creates a new LoginAttemptRepository
func NewLoginAttemptRepository(db *database.DB) *LoginAttemptRepository {
	return &LoginAttemptRepository{db: db}
}

// RecordAttempt records a login attempt in the database
func (r *LoginAttemptRepository) RecordAttempt(ctx context.Context, attempt *models.LoginAttempt) error {
	query := `
		INSERT INTO login_attempts (ip_address, username, attempted_at, success, blocked)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		attempt.IPAddress,
		attempt.Username,
		attempt.AttemptedAt,
		attempt.Success,
		attempt.Blocked,
	)

	return database.MapPostgresError(err)
}

// ListRecent returns the latest attempts, newest first
func (r *LoginAttemptRepository) ListRecent(ctx context.Context, limit int) ([]*models.LoginAttempt, error) {
	query := `
		SELECT id::text, ip_address, COALESCE(username, ''), attempted_at, success, blocked
		FROM login_attempts
		ORDER BY attempted_at DESC
		LIMIT $1
	`

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	defer rows.Close()

	attempts := make([]*models.LoginAttempt, 0)
	for rows.Next() {
		var a models.LoginAttempt
		if err := rows.Scan(&a.ID, &a.IPAddress, &a.Username, &a.AttemptedAt, &a.Success, &a.Blocked); err != nil {
			return nil, database.MapPostgresError(err)
		}
		attempts = append(attempts, &a)
	}
	return attempts, rows.Err()
}

// DeleteOlderThan removes audit rows recorded before cutoff
func (r *LoginAttemptRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM login_attempts WHERE attempted_at < $1`, cutoff)
	if err != nil {
		return 0, database.MapPostgresError(err)
	}
	return tag.RowsAffected(), nil
}
