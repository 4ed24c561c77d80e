package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/Yoon-jae-min/busalert/internal/repository/postgres"
	"github.com/Yoon-jae-min/busalert/internal/repository/postgres/testhelpers"
)

func setupAlertRepo(t *testing.T) *postgres.DB {
	t.Helper()

	tdb := testhelpers.SetupTestDB(t)
	t.Cleanup(tdb.Close)

	require.NoError(t, testhelpers.ApplyMigrations(tdb.DB.DB, "../../../migrations"))
	tdb.Truncate(t, "alert_history")

	return postgres.NewDBForTest(tdb.DB, tdb.Logger)
}

func historyItem(stopName string, createdAt time.Time) domain.AlertHistoryItem {
	return domain.AlertHistoryItem{
		ID:        uuid.New(),
		StopID:    "121000213",
		StopName:  stopName,
		RouteName: "146",
		DepartAt:  createdAt.Add(5 * time.Minute),
		CreatedAt: createdAt,
	}
}

func TestAlertRepository(t *testing.T) {
	db := setupAlertRepo(t)
	repo := postgres.NewAlertRepository(db)
	ctx := context.Background()

	t.Run("add and read back newest first", func(t *testing.T) {
		now := time.Now().Truncate(time.Second)
		older := historyItem("강남역", now.Add(-time.Hour))
		newer := historyItem("역삼역", now)

		require.NoError(t, repo.Add(ctx, older))
		require.NoError(t, repo.Add(ctx, newer))

		items, err := repo.History(ctx, 10)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "역삼역", items[0].StopName)
		assert.Equal(t, "강남역", items[1].StopName)
	})

	t.Run("limit applies", func(t *testing.T) {
		items, err := repo.History(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("mark completed", func(t *testing.T) {
		item := historyItem("선릉역", time.Now())
		require.NoError(t, repo.Add(ctx, item))
		require.NoError(t, repo.MarkCompleted(ctx, item.ID))

		items, err := repo.History(ctx, 10)
		require.NoError(t, err)
		for _, got := range items {
			if got.ID == item.ID {
				assert.True(t, got.Completed)
				return
			}
		}
		t.Fatalf("alert %s not found in history", item.ID)
	})

	t.Run("history is capped", func(t *testing.T) {
		base := time.Now().Add(-24 * time.Hour)
		for i := 0; i < domain.AlertHistoryCap+5; i++ {
			item := historyItem(fmt.Sprintf("정류장-%d", i), base.Add(time.Duration(i)*time.Minute))
			require.NoError(t, repo.Add(ctx, item))
		}

		items, err := repo.History(ctx, domain.AlertHistoryCap+10)
		require.NoError(t, err)
		assert.Len(t, items, domain.AlertHistoryCap)
	})
}
