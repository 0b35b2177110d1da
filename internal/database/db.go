package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/BradenHooton/heavyprofile/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapPostgresError translates driver errors into model sentinel errors.
// Anything unrecognised is returned unchanged.
func MapPostgresError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case "23505": // unique_violation
		return fmt.Errorf("%w: %s", models.ErrConflict, pgErr.ConstraintName)
	case "23503", "23502", "23514": // foreign_key, not_null, check
		return fmt.Errorf("%w: %s", models.ErrBadRequest, pgErr.Message)
	case "22001", "22P02": // value too long, invalid text representation
		return fmt.Errorf("%w: %s", models.ErrBadRequest, pgErr.Message)
	case "42P01": // undefined_table
		return fmt.Errorf("schema not migrated: %w", err)
	}
	return err
}

// WithTransaction runs fn in a transaction, committing when it returns nil.
func (db *DB) WithTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return MapPostgresError(err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = MapPostgresError(tx.Commit(ctx))
	}()

	return fn(tx)
}
