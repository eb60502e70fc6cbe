package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/packup/packup/internal/domain"
	"github.com/packup/packup/internal/repo"
	"github.com/packup/packup/testutil"
)

// newTestTx opens a transaction against the test database. The transaction is
// automatically rolled back when the test finishes, giving free per-test
// isolation. All repos under test share this one transaction so FK references
// between fixtures resolve.
//
// Requires TEST_DATABASE_URL to be set; skips otherwise.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test — no cleanup SQL needed.
		_ = tx.Rollback(context.Background())
	})
	return tx
}

// tripFixture returns a domain.Trip with sensible defaults.
// Callers can override individual fields after calling this function.
func tripFixture() domain.Trip {
	return domain.Trip{
		Name:           "Summer Tour",
		StartDate:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Transportation: domain.TransportCar,
		Accommodation:  domain.AccommodationCamping,
		Destination:    &domain.Location{Name: "Yosemite", Latitude: 37.86, Longitude: -119.54},
	}
}

// createTrip persists a trip fixture and returns it.
func createTrip(t *testing.T, tx pgx.Tx) domain.Trip {
	t.Helper()
	trip, err := repo.NewTripRepo(tx).Create(context.Background(), tripFixture())
	require.NoError(t, err)
	return trip
}

// createList persists a list attached to trip and returns it.
func createList(t *testing.T, tx pgx.Tx, trip domain.Trip, name string) domain.PackingList {
	t.Helper()
	list, err := repo.NewListRepo(tx).Create(context.Background(), domain.PackingList{
		Name:     name,
		ListType: domain.ListTypePacking,
		TripID:   &trip.ID,
	})
	require.NoError(t, err)
	return list
}

// createItem persists an item under list and returns it.
func createItem(t *testing.T, tx pgx.Tx, list domain.PackingList, name string, sortOrder int) domain.Item {
	t.Helper()
	item, err := repo.NewItemRepo(tx).Create(context.Background(), domain.Item{
		ListID:           list.ID,
		Name:             name,
		Count:            1,
		SortOrder:        sortOrder,
		UnifiedSortOrder: sortOrder,
	})
	require.NoError(t, err)
	return item
}
