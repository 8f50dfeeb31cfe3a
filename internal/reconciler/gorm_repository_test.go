package reconciler

import (
	"context"
	"testing"
	"time"

	"github.com/gdg-garage/trip-planner/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTrip(t *testing.T, repo *GormRepository, owner uint, dest string, status models.TripStatus, total int64, created, updated time.Time) models.Trip {
	t.Helper()
	trip := models.Trip{
		ID:          uuid.NewString(),
		OwnerID:     owner,
		Destination: dest,
		Status:      status,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}
	trip.TotalCost = decimal.NewFromInt(total)
	require.NoError(t, repo.db.Create(&trip).Error)
	return trip
}

func tripIDs(trips []models.Trip) []string {
	ids := make([]string, 0, len(trips))
	for _, tr := range trips {
		ids = append(ids, tr.ID)
	}
	return ids
}

func TestListFiltersAndSorts(t *testing.T) {
	repo := NewGormRepository(newTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	blr := seedTrip(t, repo, 1, "bengaluru", models.TripStatusConfirmed, 18300, base, base.Add(3*time.Hour))
	che := seedTrip(t, repo, 1, "chennai", models.TripStatusConfirmed, 25000, base.Add(time.Hour), base.Add(time.Hour))
	ker := seedTrip(t, repo, 1, "kerala", models.TripStatusDraft, 9000, base.Add(2*time.Hour), base.Add(2*time.Hour))
	seedTrip(t, repo, 2, "bengaluru", models.TripStatusConfirmed, 1000, base, base)

	t.Run("DefaultSortIsUpdatedAtDesc", func(t *testing.T) {
		trips, err := repo.List(ctx, 1, ListFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{blr.ID, ker.ID, che.ID}, tripIDs(trips))
	})

	t.Run("StatusFilter", func(t *testing.T) {
		trips, err := repo.List(ctx, 1, ListFilter{Status: models.TripStatusConfirmed})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{blr.ID, che.ID}, tripIDs(trips))
	})

	t.Run("SortByTotalCost", func(t *testing.T) {
		trips, err := repo.List(ctx, 1, ListFilter{Sort: SortTotalCost})
		require.NoError(t, err)
		assert.Equal(t, []string{che.ID, blr.ID, ker.ID}, tripIDs(trips))
	})

	t.Run("SortByCreatedAt", func(t *testing.T) {
		trips, err := repo.List(ctx, 1, ListFilter{Sort: SortCreatedAt})
		require.NoError(t, err)
		assert.Equal(t, []string{ker.ID, che.ID, blr.ID}, tripIDs(trips))
	})

	t.Run("SortByDestination", func(t *testing.T) {
		trips, err := repo.List(ctx, 1, ListFilter{Sort: SortDestination})
		require.NoError(t, err)
		assert.Equal(t, []string{blr.ID, che.ID, ker.ID}, tripIDs(trips))
	})

	t.Run("Search", func(t *testing.T) {
		trips, err := repo.List(ctx, 1, ListFilter{Search: "NNA"})
		require.NoError(t, err)
		assert.Equal(t, []string{che.ID}, tripIDs(trips))
	})

	t.Run("DestinationAndLimit", func(t *testing.T) {
		trips, err := repo.List(ctx, 1, ListFilter{Destination: "bengaluru", Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, []string{blr.ID}, tripIDs(trips))

		trips, err = repo.List(ctx, 1, ListFilter{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, trips, 1)
	})

	t.Run("UnknownSortFallsBack", func(t *testing.T) {
		trips, err := repo.List(ctx, 1, ListFilter{Sort: "id; DROP TABLE trips"})
		require.NoError(t, err)
		assert.Len(t, trips, 3)
	})
}

func TestRevisionsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormRepository(db)
	rec := New(repo)
	ctx := context.Background()

	res, err := rec.Save(ctx, 1, bengaluruDraft(), "")
	require.NoError(t, err)
	_, err = rec.Confirm(ctx, 1, bengaluruDraft(), res.ID)
	require.NoError(t, err)

	revs, err := repo.Revisions(ctx, 1, res.ID)
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, models.RevisionConfirm, revs[0].Action)
	assert.Equal(t, models.TripStatusConfirmed, revs[0].Status)
	assert.Equal(t, models.RevisionSave, revs[1].Action)
	assert.Equal(t, models.TripStatusDraft, revs[1].Status)
	assert.True(t, revs[1].TotalCost.Equal(decimal.NewFromInt(18300)))
}

func TestDeleteRemovesRevisions(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormRepository(db)
	rec := New(repo)
	ctx := context.Background()

	res, err := rec.Save(ctx, 1, bengaluruDraft(), "")
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, 1, res.ID))

	var count int64
	db.Model(&models.TripRevision{}).Where("trip_id = ?", res.ID).Count(&count)
	assert.Zero(t, count)
}
