package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"officespace/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "officespace.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newReservation(workspaceID string, start time.Time, d time.Duration) *models.Reservation {
	return &models.Reservation{
		ID:            uuid.NewString(),
		WorkspaceID:   workspaceID,
		WorkspaceName: "Рабочее место A1",
		Start:         start,
		End:           start.Add(d),
		Duration:      models.DurationOneHour,
		Notes:         "у окна",
		Status:        models.StatusConfirmed,
	}
}

func TestCreateAndGetReservation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	start := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	res := newReservation("1", start, time.Hour)
	require.NoError(t, db.CreateReservation(ctx, res))
	assert.False(t, res.CreatedAt.IsZero())

	got, err := db.GetReservation(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.WorkspaceID, got.WorkspaceID)
	assert.Equal(t, res.WorkspaceName, got.WorkspaceName)
	assert.True(t, got.Start.Equal(start))
	assert.True(t, got.End.Equal(start.Add(time.Hour)))
	assert.Equal(t, models.DurationOneHour, got.Duration)
	assert.Equal(t, "у окна", got.Notes)
	assert.Equal(t, models.StatusConfirmed, got.Status)
}

func TestGetReservationNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetReservation(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCreateReservationOverlap(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	start := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	require.NoError(t, db.CreateReservation(ctx, newReservation("1", start, time.Hour)))

	t.Run("SameWindow", func(t *testing.T) {
		err := db.CreateReservation(ctx, newReservation("1", start, time.Hour))
		assert.ErrorIs(t, err, ErrWindowTaken)
	})

	t.Run("PartialOverlap", func(t *testing.T) {
		err := db.CreateReservation(ctx, newReservation("1", start.Add(30*time.Minute), time.Hour))
		assert.ErrorIs(t, err, ErrWindowTaken)
	})

	t.Run("ContainingWindow", func(t *testing.T) {
		err := db.CreateReservation(ctx, newReservation("1", start.Add(-time.Hour), 4*time.Hour))
		assert.ErrorIs(t, err, ErrWindowTaken)
	})

	t.Run("AdjacentWindowAllowed", func(t *testing.T) {
		assert.NoError(t, db.CreateReservation(ctx, newReservation("1", start.Add(time.Hour), time.Hour)))
	})

	t.Run("OtherWorkspaceAllowed", func(t *testing.T) {
		assert.NoError(t, db.CreateReservation(ctx, newReservation("2", start, time.Hour)))
	})
}

func TestCancelledReservationDoesNotBlockWindow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	start := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	first := newReservation("1", start, time.Hour)
	require.NoError(t, db.CreateReservation(ctx, first))
	require.NoError(t, db.UpdateReservationStatus(ctx, first.ID, models.StatusCancelled))

	assert.NoError(t, db.CreateReservation(ctx, newReservation("1", start, time.Hour)))
}

func TestUpdateReservationStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	res := newReservation("1", time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), time.Hour)
	res.Status = models.StatusPending
	require.NoError(t, db.CreateReservation(ctx, res))

	require.NoError(t, db.UpdateReservationStatus(ctx, res.ID, models.StatusConfirmed))

	got, err := db.GetReservation(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, got.Status)

	t.Run("NotFound", func(t *testing.T) {
		err := db.UpdateReservationStatus(ctx, "missing", models.StatusFailed)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestGetReservationsByRange(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, db.CreateReservation(ctx, newReservation("1", day.Add(9*time.Hour), time.Hour)))
	require.NoError(t, db.CreateReservation(ctx, newReservation("2", day.Add(11*time.Hour), time.Hour)))
	require.NoError(t, db.CreateReservation(ctx, newReservation("3", day.Add(36*time.Hour), time.Hour))) // next day

	list, err := db.GetReservationsByRange(ctx, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Ordered by start time.
	assert.Equal(t, "1", list[0].WorkspaceID)
	assert.Equal(t, "2", list[1].WorkspaceID)

	t.Run("EmptyRange", func(t *testing.T) {
		list, err := db.GetReservationsByRange(ctx, day.Add(-48*time.Hour), day.Add(-24*time.Hour))
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
