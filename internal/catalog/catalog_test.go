package catalog

import (
	"testing"

	"officespace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWorkspaces() []models.Workspace {
	return []models.Workspace{
		{ID: "1", Name: "Рабочее место A1", Floor: 1, Capacity: 1, Available: true},
		{ID: "2", Name: "Рабочее место A2", Floor: 1, Capacity: 1, Available: false, NextAvailable: "14:30"},
		{ID: "3", Name: "Рабочее место B1", Floor: 2, Capacity: 1, Available: true},
		{ID: "4", Name: "Рабочее место C1", Floor: 3, Capacity: 1, Available: false, NextAvailable: "16:00"},
	}
}

func TestCatalogList(t *testing.T) {
	cat := New(testWorkspaces())

	list := cat.List()
	require.Len(t, list, 4)

	// Order is preserved.
	assert.Equal(t, "1", list[0].ID)
	assert.Equal(t, "4", list[3].ID)

	// Mutating the returned slice must not affect the catalog.
	list[0].Name = "mutated"
	fresh := cat.List()
	assert.Equal(t, "Рабочее место A1", fresh[0].Name)
}

func TestCatalogGet(t *testing.T) {
	cat := New(testWorkspaces())

	t.Run("Found", func(t *testing.T) {
		ws, err := cat.Get("2")
		require.NoError(t, err)
		assert.Equal(t, "Рабочее место A2", ws.Name)
		assert.False(t, ws.Available)
		assert.Equal(t, "14:30", ws.NextAvailable)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := cat.Get("99")
		assert.ErrorIs(t, err, ErrWorkspaceNotFound)
	})

	t.Run("EmptyID", func(t *testing.T) {
		_, err := cat.Get("")
		assert.ErrorIs(t, err, ErrWorkspaceNotFound)
	})
}

func TestCatalogStats(t *testing.T) {
	cat := New(testWorkspaces())

	assert.Equal(t, 2, cat.AvailableCount())
	assert.Equal(t, 4, cat.Len())
	assert.Equal(t, []int{1, 2, 3}, cat.Floors())
}

func TestCatalogEmpty(t *testing.T) {
	cat := New(nil)

	assert.Empty(t, cat.List())
	assert.Equal(t, 0, cat.AvailableCount())
	assert.Empty(t, cat.Floors())

	_, err := cat.Get("1")
	assert.ErrorIs(t, err, ErrWorkspaceNotFound)
}
