package repository

import (
	"context"
	"sync/atomic"
	"time"

	"officespace/internal/domain"
	"officespace/internal/models"

	"github.com/rs/zerolog"
)

const recoveryInterval = time.Minute

// FailoverSessionRepository serves from a primary repository and falls back
// to a secondary one when the primary errors, probing the primary again after
// a recovery interval.
type FailoverSessionRepository struct {
	primary   domain.SessionRepository
	fallback  domain.SessionRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverSessionRepository(primary, fallback domain.SessionRepository, logger *zerolog.Logger) *FailoverSessionRepository {
	return &FailoverSessionRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverSessionRepository) GetSession(ctx context.Context, id string) (*models.SessionSnapshot, error) {
	if r.primaryUsable() {
		snap, err := r.primary.GetSession(ctx, id)
		if err == nil {
			r.isDown.Store(false)
			return snap, nil
		}
		r.markDown(err)
	}
	return r.fallback.GetSession(ctx, id)
}

func (r *FailoverSessionRepository) SaveSession(ctx context.Context, snap *models.SessionSnapshot) error {
	if r.primaryUsable() {
		if err := r.primary.SaveSession(ctx, snap); err == nil {
			r.isDown.Store(false)
			return nil
		} else {
			r.markDown(err)
		}
	}
	return r.fallback.SaveSession(ctx, snap)
}

func (r *FailoverSessionRepository) DeleteSession(ctx context.Context, id string) error {
	if r.primaryUsable() {
		if err := r.primary.DeleteSession(ctx, id); err == nil {
			r.isDown.Store(false)
			return nil
		} else {
			r.markDown(err)
		}
	}
	return r.fallback.DeleteSession(ctx, id)
}

func (r *FailoverSessionRepository) primaryUsable() bool {
	if !r.isDown.Load() {
		return true
	}
	// Probe the primary again once the recovery interval has passed.
	last := time.Unix(0, r.lastCheck.Load())
	return time.Since(last) > recoveryInterval
}

func (r *FailoverSessionRepository) markDown(err error) {
	if r.logger != nil {
		r.logger.Error().Err(err).Msg("primary session repository failed, falling back to memory")
	}
	r.isDown.Store(true)
	r.lastCheck.Store(time.Now().UnixNano())
}
