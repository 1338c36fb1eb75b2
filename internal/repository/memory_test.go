package repository

import (
	"context"
	"testing"
	"time"

	"officespace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot(id string) *models.SessionSnapshot {
	return &models.SessionSnapshot{
		ID:          id,
		WorkspaceID: "1",
		State:       "selecting_duration",
		Duration:    models.DurationOneHour,
		Notes:       "у окна",
		UpdatedAt:   time.Now(),
	}
}

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository(time.Hour)

	t.Run("SaveAndGet", func(t *testing.T) {
		snap := testSnapshot("sess-1")
		require.NoError(t, repo.SaveSession(ctx, snap))

		got, err := repo.GetSession(ctx, "sess-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, snap.WorkspaceID, got.WorkspaceID)
		assert.Equal(t, snap.State, got.State)
		assert.Equal(t, snap.Duration, got.Duration)
	})

	t.Run("GetMissing", func(t *testing.T) {
		got, err := repo.GetSession(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		snap := testSnapshot("sess-2")
		require.NoError(t, repo.SaveSession(ctx, snap))

		snap2 := testSnapshot("sess-2")
		snap2.State = "confirmed"
		require.NoError(t, repo.SaveSession(ctx, snap2))

		got, err := repo.GetSession(ctx, "sess-2")
		require.NoError(t, err)
		assert.Equal(t, "confirmed", got.State)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.SaveSession(ctx, testSnapshot("sess-3")))
		require.NoError(t, repo.DeleteSession(ctx, "sess-3"))

		got, err := repo.GetSession(ctx, "sess-3")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestMemorySessionRepositoryTTL(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository(10 * time.Millisecond)

	require.NoError(t, repo.SaveSession(ctx, testSnapshot("sess-ttl")))

	time.Sleep(30 * time.Millisecond)

	got, err := repo.GetSession(ctx, "sess-ttl")
	require.NoError(t, err)
	assert.Nil(t, got, "expired snapshot must not be returned")
}
