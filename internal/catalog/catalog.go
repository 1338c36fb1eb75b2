package catalog

import (
	"errors"
	"sort"

	"officespace/internal/models"
)

// ErrWorkspaceNotFound is returned when an id does not match any entry.
// The caller must treat it as fatal to the booking attempt, not retryable.
var ErrWorkspaceNotFound = errors.New("workspace not found")

// Catalog holds the immutable list of bookable workspaces. Population and
// refresh are external concerns; once built, a Catalog never changes and is
// therefore safe to share without locking.
type Catalog struct {
	ordered []models.Workspace
	byID    map[string]models.Workspace
}

// New builds a catalog from the configured workspace list, preserving order.
func New(workspaces []models.Workspace) *Catalog {
	ordered := make([]models.Workspace, len(workspaces))
	copy(ordered, workspaces)

	byID := make(map[string]models.Workspace, len(ordered))
	for _, ws := range ordered {
		byID[ws.ID] = ws
	}

	return &Catalog{ordered: ordered, byID: byID}
}

// List returns the full ordered set of workspaces.
func (c *Catalog) List() []models.Workspace {
	out := make([]models.Workspace, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Get returns the workspace with the given id or ErrWorkspaceNotFound.
func (c *Catalog) Get(id string) (models.Workspace, error) {
	ws, ok := c.byID[id]
	if !ok {
		return models.Workspace{}, ErrWorkspaceNotFound
	}
	return ws, nil
}

// AvailableCount returns how many workspaces are currently bookable.
func (c *Catalog) AvailableCount() int {
	count := 0
	for _, ws := range c.ordered {
		if ws.Available {
			count++
		}
	}
	return count
}

// Floors returns the distinct floors in ascending order.
func (c *Catalog) Floors() []int {
	seen := make(map[int]bool)
	for _, ws := range c.ordered {
		seen[ws.Floor] = true
	}

	floors := make([]int, 0, len(seen))
	for floor := range seen {
		floors = append(floors, floor)
	}
	sort.Ints(floors)
	return floors
}

// Len returns the total number of workspaces.
func (c *Catalog) Len() int {
	return len(c.ordered)
}
