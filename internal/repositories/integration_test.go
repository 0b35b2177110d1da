//go:build integration

package repositories_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/BradenHooton/heavyprofile/internal/database"
	"github.com/BradenHooton/heavyprofile/internal/models"
	"github.com/BradenHooton/heavyprofile/internal/repositories"
	"github.com/BradenHooton/heavyprofile/migrations"
)

var testDB *database.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("heavyprofile"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		panic(err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		panic(err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		_ = container.Terminate(ctx)
		panic(err)
	}

	// goose needs a database/sql handle
	sqlDB := stdlib.OpenDB(*pool.Config().ConnConfig)
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		panic(err)
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		panic(err)
	}
	_ = sqlDB.Close()

	testDB = database.FromPool(pool, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	code := m.Run()

	pool.Close()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func truncate(t *testing.T, tables ...string) {
	t.Helper()
	for _, table := range tables {
		_, err := testDB.Pool.Exec(context.Background(), "TRUNCATE TABLE "+table+" RESTART IDENTITY CASCADE")
		require.NoError(t, err)
	}
}

func TestAdminRepository_Integration(t *testing.T) {
	truncate(t, "admin")
	repo := repositories.NewAdminRepository(testDB)
	ctx := context.Background()

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, models.ErrNotFound)

	created, err := repo.Create(ctx, "admin", "initial")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Create(ctx, "other", "ignored")
	require.NoError(t, err)
	assert.False(t, created)

	admin, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)
	assert.Equal(t, "initial", admin.Password)

	newPassword := "changed"
	require.NoError(t, repo.Update(ctx, admin.ID, nil, &newPassword))

	admin, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)
	assert.Equal(t, "changed", admin.Password)

	assert.ErrorIs(t, repo.Update(ctx, admin.ID, nil, nil), models.ErrBadRequest)
	assert.ErrorIs(t, repo.Update(ctx, "999", nil, &newPassword), models.ErrNotFound)
}

func TestLoginAttemptRepository_Integration(t *testing.T) {
	truncate(t, "login_attempts")
	repo := repositories.NewLoginAttemptRepository(testDB)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	require.NoError(t, repo.RecordAttempt(ctx, &models.LoginAttempt{
		IPAddress: "203.0.113.9", Username: "admin", AttemptedAt: now.Add(-100 * 24 * time.Hour),
	}))
	require.NoError(t, repo.RecordAttempt(ctx, &models.LoginAttempt{
		IPAddress: "203.0.113.9", AttemptedAt: now, Success: true,
	}))

	recent, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.True(t, recent[0].Success)
	assert.Empty(t, recent[0].Username)

	deleted, err := repo.DeleteOlderThan(ctx, now.Add(-90*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestServiceRepository_Integration(t *testing.T) {
	truncate(t, "services")
	repo := repositories.NewServiceRepository(testDB)
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.ServiceItem{ID: "b", Title: "Монтаж", OrderIndex: 2})
	require.NoError(t, err)
	created, err := repo.Create(ctx, &models.ServiceItem{ID: "a", Title: "Склад", Features: []string{"Погрузка", "Разгрузка"}, OrderIndex: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Погрузка", "Разгрузка"}, created.Features)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, []string{}, items[1].Features)

	_, err = repo.Update(ctx, &models.ServiceItem{ID: "missing", Title: "x"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "a"))
	items, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestPortfolioAndFaqRepository_Integration(t *testing.T) {
	truncate(t, "portfolio", "faq")
	ctx := context.Background()

	portfolio := repositories.NewPortfolioRepository(testDB)
	item, err := portfolio.Create(ctx, &models.PortfolioItem{ID: "p1", Title: "Склад", Workers: 12})
	require.NoError(t, err)
	assert.False(t, item.CreatedAt.IsZero())

	_, err = portfolio.Create(ctx, &models.PortfolioItem{ID: "p1", Title: "dup"})
	assert.ErrorIs(t, err, models.ErrConflict)

	item.Workers = 20
	updated, err := portfolio.Update(ctx, item)
	require.NoError(t, err)
	assert.Equal(t, 20, updated.Workers)

	faq := repositories.NewFaqRepository(testDB)
	_, err = faq.Create(ctx, &models.FaqItem{ID: "f1", Question: "Q?", Answer: "A."})
	require.NoError(t, err)
	items, err := faq.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestJSONDocumentRepository_Integration(t *testing.T) {
	truncate(t, "settings")
	repo := repositories.NewSettingsRepository(testDB)
	ctx := context.Background()

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, repo.Put(ctx, json.RawMessage(`{"company":{"name":"A"}}`)))
	require.NoError(t, repo.Put(ctx, json.RawMessage(`{"company":{"name":"B"}}`)))

	data, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"company":{"name":"B"}}`, string(data))

	var count int
	require.NoError(t, testDB.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM settings").Scan(&count))
	assert.Equal(t, 1, count)
}
