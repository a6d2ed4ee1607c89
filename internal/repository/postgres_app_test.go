package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/bjarke-xyz/applications-api/internal/domain"
	"github.com/bjarke-xyz/applications-api/internal/repository"
)

func initDatabaseContainer(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	postgresC, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("applications"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, postgresC)
	require.NoError(t, err)

	connStr, err := postgresC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(repository.MigrateUp, connStr))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestPostgresApplications(t *testing.T) {
	pool := initDatabaseContainer(t)
	repo := repository.NewPostgresApp(pool, repository.WithStatementTimeout(10*time.Second))
	ctx := context.Background()

	alice, err := repo.Create(ctx, domain.ApplicationCreate{UserName: "Alice", Description: "first"})
	require.NoError(t, err)

	t.Run("create_generates_id_and_created_at", func(t *testing.T) {
		assert.NotEqual(t, uuid.Nil, alice.ID)
		assert.False(t, alice.CreatedAt.IsZero())
		assert.Equal(t, "Alice", alice.UserName)
		assert.Equal(t, "first", alice.Description)
	})

	t.Run("create_keeps_caller_supplied_values", func(t *testing.T) {
		id := uuid.New()
		createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		app, err := repo.Create(ctx, domain.ApplicationCreate{
			ID:          &id,
			UserName:    "carol",
			Description: "explicit",
			CreatedAt:   &createdAt,
		})
		require.NoError(t, err)
		assert.Equal(t, id, app.ID)
		assert.True(t, createdAt.Equal(app.CreatedAt))
	})

	t.Run("create_with_existing_id_is_a_conflict", func(t *testing.T) {
		_, err := repo.Create(ctx, domain.ApplicationCreate{ID: &alice.ID, UserName: "dup", Description: "dup"})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("user_name_filter_is_case_insensitive_substring", func(t *testing.T) {
		apps, err := repo.GetMulti(ctx, domain.NewApplicationQuery("lic", nil, nil))
		require.NoError(t, err)
		require.Len(t, apps, 1)
		assert.Equal(t, alice.ID, apps[0].ID)
	})

	t.Run("no_match_returns_empty_slice", func(t *testing.T) {
		apps, err := repo.GetMulti(ctx, domain.NewApplicationQuery("nobody", nil, nil))
		require.NoError(t, err)
		assert.Empty(t, apps)
	})

	t.Run("offset_skips_rows", func(t *testing.T) {
		all, err := repo.GetMulti(ctx, domain.NewApplicationQuery("", nil, nil))
		require.NoError(t, err)
		require.Len(t, all, 2)

		q := domain.ApplicationQuery{Size: 1, Offset: lo.ToPtr(1)}
		apps, err := repo.GetMulti(ctx, q)
		require.NoError(t, err)
		require.Len(t, apps, 1)
		assert.Equal(t, all[1].ID, apps[0].ID)
	})

	t.Run("get_by_id", func(t *testing.T) {
		app, err := repo.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.UserName, app.UserName)

		_, err = repo.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("delete_removes_row", func(t *testing.T) {
		require.NoError(t, repo.DeleteByID(ctx, alice.ID))
		_, err := repo.GetByID(ctx, alice.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("delete_of_unknown_id_is_not_an_error", func(t *testing.T) {
		assert.NoError(t, repo.DeleteByID(ctx, uuid.New()))
	})
}
