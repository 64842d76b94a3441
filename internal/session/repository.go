package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrTrainerNotFound    = errors.New("trainer not found")
	ErrTrainerUnavailable = errors.New("trainer not available")
	ErrSlotTaken          = errors.New("time slot already booked")
	ErrSessionNotFound    = errors.New("session not found")
	ErrNotCancellable     = errors.New("session is not cancellable")
)

const sessionColumns = `s.id, s.user_id, s.trainer_id, s.type, s.status, s.scheduled_at,
	s.duration_minutes, s.price, s.currency, s.notes, s.created_at, s.updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Book(ctx context.Context, userID, trainerID int, scheduledAt time.Time, durationMinutes int, sessionType, notes string) (*WithTrainer, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var trainerRow struct {
		ID          int     `db:"id"`
		HourlyRate  float64 `db:"hourly_rate"`
		Currency    string  `db:"currency"`
		IsAvailable bool    `db:"is_available"`
	}
	err = tx.GetContext(ctx, &trainerRow,
		`SELECT id, hourly_rate, currency, is_available FROM trainer_profiles WHERE id = $1 FOR UPDATE`,
		trainerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		return nil, fmt.Errorf("locking trainer: %w", err)
	}
	if !trainerRow.IsAvailable {
		return nil, ErrTrainerUnavailable
	}

	// A slot conflicts when an active session starts within the two hours
	// before the requested start, or between the requested start and end.
	windowStart := scheduledAt.Add(-conflictWindowBefore)
	windowEnd := scheduledAt.Add(time.Duration(durationMinutes) * time.Minute)

	var conflicts int
	err = tx.GetContext(ctx, &conflicts,
		`SELECT COUNT(*) FROM training_sessions
		WHERE trainer_id = $1
		  AND status IN ('SCHEDULED', 'IN_PROGRESS')
		  AND ((scheduled_at >= $2 AND scheduled_at <= $3)
		    OR (scheduled_at >= $3 AND scheduled_at <= $4))`,
		trainerID, windowStart, scheduledAt, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("checking conflicts: %w", err)
	}
	if conflicts > 0 {
		return nil, ErrSlotTaken
	}

	price := Price(trainerRow.HourlyRate, durationMinutes)

	var session WithTrainer
	err = tx.GetContext(ctx, &session.Session,
		`INSERT INTO training_sessions
			(user_id, trainer_id, type, status, scheduled_at, duration_minutes, price, currency, notes)
		VALUES ($1, $2, $3, 'SCHEDULED', $4, $5, $6, $7, $8)
		RETURNING id, user_id, trainer_id, type, status, scheduled_at,
			duration_minutes, price, currency, notes, created_at, updated_at`,
		userID, trainerID, sessionType, scheduledAt, durationMinutes, price, trainerRow.Currency, notes)
	if err != nil {
		return nil, fmt.Errorf("inserting session: %w", err)
	}

	err = tx.QueryRowxContext(ctx,
		`SELECT u.name, u.avatar FROM trainer_profiles t JOIN users u ON u.id = t.user_id WHERE t.id = $1`,
		trainerID).Scan(&session.TrainerName, &session.TrainerAvatar)
	if err != nil {
		return nil, fmt.Errorf("resolving trainer identity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing booking: %w", err)
	}
	return &session, nil
}

func (r *repository) ListByUser(ctx context.Context, filter ListFilter) ([]WithTrainer, error) {
	query := fmt.Sprintf(`SELECT %s, u.name AS trainer_name, u.avatar AS trainer_avatar
		FROM training_sessions s
		JOIN trainer_profiles t ON t.id = s.trainer_id
		JOIN users u ON u.id = t.user_id
		WHERE s.user_id = $1`, sessionColumns)
	args := []interface{}{filter.UserID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND s.status = $%d", len(args))
	}
	if filter.Upcoming {
		query += " AND s.scheduled_at >= NOW() AND s.status = 'SCHEDULED'"
	}
	query += " ORDER BY s.scheduled_at DESC"

	sessions := []WithTrainer{}
	if err := r.db.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*WithTrainer, error) {
	query := fmt.Sprintf(`SELECT %s, u.name AS trainer_name, u.avatar AS trainer_avatar
		FROM training_sessions s
		JOIN trainer_profiles t ON t.id = s.trainer_id
		JOIN users u ON u.id = t.user_id
		WHERE s.id = $1`, sessionColumns)

	var session WithTrainer
	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// Cancel flips a SCHEDULED session to CANCELLED. The status guard makes the
// update a no-op if another request already changed the session.
func (r *repository) Cancel(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE training_sessions SET status = 'CANCELLED', updated_at = NOW()
		WHERE id = $1 AND status = 'SCHEDULED'`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotCancellable
	}
	return nil
}
