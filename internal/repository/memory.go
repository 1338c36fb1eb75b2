package repository

import (
	"context"
	"sync"
	"time"

	"officespace/internal/models"
)

// MemorySessionRepository keeps session snapshots in process memory. Used as
// the fallback when Redis is unavailable and in tests.
type MemorySessionRepository struct {
	sessions sync.Map
	ttl      time.Duration
}

type memoryEntry struct {
	snap      *models.SessionSnapshot
	expiresAt time.Time
}

func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{ttl: ttl}
}

func (r *MemorySessionRepository) GetSession(ctx context.Context, id string) (*models.SessionSnapshot, error) {
	val, ok := r.sessions.Load(id)
	if !ok {
		return nil, nil
	}

	entry := val.(*memoryEntry)
	if r.ttl > 0 && time.Now().After(entry.expiresAt) {
		r.sessions.Delete(id)
		return nil, nil
	}
	return entry.snap, nil
}

func (r *MemorySessionRepository) SaveSession(ctx context.Context, snap *models.SessionSnapshot) error {
	r.sessions.Store(snap.ID, &memoryEntry{
		snap:      snap,
		expiresAt: time.Now().Add(r.ttl),
	})
	return nil
}

func (r *MemorySessionRepository) DeleteSession(ctx context.Context, id string) error {
	r.sessions.Delete(id)
	return nil
}
