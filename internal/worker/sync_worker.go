package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"officespace/internal/domain"
	"officespace/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const TaskAppendReservation = "append_reservation"

// SyncWorker mirrors confirmed reservations into the external spreadsheet.
// Tasks flow through an in-memory queue; when Redis is configured, overflow
// and exhausted tasks are parked in Redis lists so they survive restarts.
type SyncWorker struct {
	sheets        domain.SheetsWriter
	redis         *redis.Client
	retryPolicy   RetryPolicy
	queue         chan models.SyncTask
	redisQueueKey string
	deadLetterKey string
	pollInterval  time.Duration
	logger        zerolog.Logger
}

// NewSyncWorker builds a worker with sane defaults.
func NewSyncWorker(sheets domain.SheetsWriter, redisClient *redis.Client, retry RetryPolicy, logger *zerolog.Logger) *SyncWorker {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 5
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = 1 * time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}

	base := zerolog.Nop()
	if logger != nil {
		base = logger.With().Str("component", "sync-worker").Logger()
	}

	return &SyncWorker{
		sheets:        sheets,
		redis:         redisClient,
		retryPolicy:   retry,
		queue:         make(chan models.SyncTask, models.WorkerQueueSize),
		redisQueueKey: "sheets:queue",
		deadLetterKey: "sheets:deadletter",
		pollInterval:  2 * time.Second,
		logger:        base,
	}
}

// EnqueueReservation schedules a reservation for the spreadsheet.
func (w *SyncWorker) EnqueueReservation(ctx context.Context, res *models.Reservation) error {
	if res == nil || res.ID == "" {
		return errors.New("reservation id is required")
	}

	payload, err := json.Marshal(res)
	if err != nil {
		return err
	}

	task := models.SyncTask{
		ID:            uuid.NewString(),
		TaskType:      TaskAppendReservation,
		ReservationID: res.ID,
		Payload:       string(payload),
		CreatedAt:     time.Now(),
	}

	select {
	case w.queue <- task:
		return nil
	default:
	}

	// Queue full; park the task in Redis if we have it.
	if w.redis != nil {
		raw, err := json.Marshal(task)
		if err != nil {
			return err
		}
		return w.redis.LPush(ctx, w.redisQueueKey, raw).Err()
	}
	return errors.New("sync queue is full")
}

// Start runs the worker loop until ctx is cancelled.
func (w *SyncWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info().Msg("sync worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("sync worker stopped")
			return
		case task := <-w.queue:
			w.process(ctx, task)
		case <-ticker.C:
			w.drainRedis(ctx)
		}
	}
}

func (w *SyncWorker) drainRedis(ctx context.Context) {
	if w.redis == nil {
		return
	}

	for {
		raw, err := w.redis.RPop(ctx, w.redisQueueKey).Result()
		if err == redis.Nil {
			return
		}
		if err != nil {
			w.logger.Warn().Err(err).Msg("redis queue pop failed")
			return
		}

		var task models.SyncTask
		if err := json.Unmarshal([]byte(raw), &task); err != nil {
			w.logger.Error().Err(err).Msg("malformed task in redis queue")
			continue
		}
		w.process(ctx, task)
	}
}

func (w *SyncWorker) process(ctx context.Context, task models.SyncTask) {
	var res models.Reservation
	if err := json.Unmarshal([]byte(task.Payload), &res); err != nil {
		w.logger.Error().Err(err).Str("task_id", task.ID).Msg("malformed task payload")
		return
	}

	var lastErr error
	for attempt := 1; attempt <= w.retryPolicy.MaxRetries; attempt++ {
		lastErr = w.sheets.AppendReservation(ctx, &res)
		if lastErr == nil {
			w.logger.Debug().
				Str("task_id", task.ID).
				Str("reservation_id", task.ReservationID).
				Msg("reservation synced")
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.retryPolicy.NextDelay(attempt)):
		}
	}

	w.logger.Error().Err(lastErr).
		Str("task_id", task.ID).
		Str("reservation_id", task.ReservationID).
		Int("attempts", w.retryPolicy.MaxRetries).
		Msg("sync task exhausted retries")
	w.deadLetter(ctx, task)
}

func (w *SyncWorker) deadLetter(ctx context.Context, task models.SyncTask) {
	if w.redis == nil {
		return
	}

	raw, err := json.Marshal(task)
	if err != nil {
		return
	}
	if err := w.redis.LPush(ctx, w.deadLetterKey, raw).Err(); err != nil {
		w.logger.Warn().Err(err).Str("task_id", task.ID).Msg("dead letter push failed")
	}
}
