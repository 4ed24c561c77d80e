package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/Yoon-jae-min/busalert/internal/repository/postgres"
	"github.com/Yoon-jae-min/busalert/internal/repository/postgres/testhelpers"
)

func setupFavoriteRepo(t *testing.T) (*testhelpers.TestDB, *postgres.DB) {
	t.Helper()

	tdb := testhelpers.SetupTestDB(t)
	t.Cleanup(tdb.Close)

	require.NoError(t, testhelpers.ApplyMigrations(tdb.DB.DB, "../../../migrations"))
	tdb.Truncate(t, "favorites")

	return tdb, postgres.NewDBForTest(tdb.DB, tdb.Logger)
}

func ptrString(s string) *string { return &s }

func TestFavoriteRepository(t *testing.T) {
	_, db := setupFavoriteRepo(t)
	repo := postgres.NewFavoriteRepository(db)
	ctx := context.Background()

	gangnam := domain.BusStop{
		ID:        "121000213",
		Name:      "강남역",
		Number:    ptrString("23284"),
		Latitude:  37.4979,
		Longitude: 127.0276,
		CityCode:  "11",
	}

	t.Run("save and list", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, gangnam))

		favorites, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, favorites, 1)
		assert.Equal(t, "강남역", favorites[0].Stop.Name)
		require.NotNil(t, favorites[0].Stop.Number)
		assert.Equal(t, "23284", *favorites[0].Stop.Number)
		assert.False(t, favorites[0].CreatedAt.IsZero())
	})

	t.Run("saving twice keeps one row", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, gangnam))

		favorites, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, favorites, 1)
	})

	t.Run("exists", func(t *testing.T) {
		exists, err := repo.Exists(ctx, "121000213")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.Exists(ctx, "unknown")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, repo.Remove(ctx, "121000213"))

		exists, err := repo.Exists(ctx, "121000213")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
