package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"officespace/internal/models"
)

// CreateReservation inserts a reservation, rejecting windows that overlap an
// active (pending or confirmed) reservation for the same workspace. The check
// and insert run inside one transaction so two writers cannot both pass it.
func (db *DB) CreateReservation(ctx context.Context, res *models.Reservation) error {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var overlapping int
	query := `SELECT COUNT(*) FROM reservations
        WHERE workspace_id = ? AND status IN (?, ?) AND start_at < ? AND end_at > ?`
	err = tx.QueryRowContext(ctx, query,
		res.WorkspaceID,
		models.StatusPending,
		models.StatusConfirmed,
		res.End.Format(time.RFC3339),
		res.Start.Format(time.RFC3339),
	).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("failed to check window overlap: %w", err)
	}
	if overlapping > 0 {
		return ErrWindowTaken
	}

	now := time.Now()
	insert := `INSERT INTO reservations (
                id, workspace_id, workspace_name, start_at, end_at,
                duration, notes, status, created_at, updated_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, insert,
		res.ID,
		res.WorkspaceID,
		res.WorkspaceName,
		res.Start.Format(time.RFC3339),
		res.End.Format(time.RFC3339),
		string(res.Duration),
		res.Notes,
		res.Status,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reservation: %w", err)
	}

	res.CreatedAt = now
	res.UpdatedAt = now
	return nil
}

// UpdateReservationStatus sets the status for an existing reservation.
func (db *DB) UpdateReservationStatus(ctx context.Context, id string, status string) error {
	query := `UPDATE reservations SET status = ?, updated_at = ? WHERE id = ?`
	result, err := db.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// GetReservation loads a single reservation by id.
func (db *DB) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	query := `SELECT id, workspace_id, workspace_name, start_at, end_at,
                duration, notes, status, created_at, updated_at
            FROM reservations WHERE id = ?`

	res, err := scanReservation(db.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return res, nil
}

// GetReservationsByRange returns reservations whose start falls in [start, end).
func (db *DB) GetReservationsByRange(ctx context.Context, start, end time.Time) ([]*models.Reservation, error) {
	query := `SELECT id, workspace_id, workspace_name, start_at, end_at,
                duration, notes, status, created_at, updated_at
            FROM reservations
            WHERE start_at >= ? AND start_at < ?
            ORDER BY start_at, workspace_id`

	rows, err := db.db.QueryContext(ctx, query, start.Format(time.RFC3339), end.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*models.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*models.Reservation, error) {
	var (
		res              models.Reservation
		startRaw, endRaw string
		duration         string
		notes            sql.NullString
	)

	err := row.Scan(
		&res.ID,
		&res.WorkspaceID,
		&res.WorkspaceName,
		&startRaw,
		&endRaw,
		&duration,
		&notes,
		&res.Status,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if res.Start, err = time.Parse(time.RFC3339, startRaw); err != nil {
		return nil, fmt.Errorf("bad start_at %q: %w", startRaw, err)
	}
	if res.End, err = time.Parse(time.RFC3339, endRaw); err != nil {
		return nil, fmt.Errorf("bad end_at %q: %w", endRaw, err)
	}
	res.Duration = models.Duration(duration)
	res.Notes = notes.String
	return &res, nil
}
