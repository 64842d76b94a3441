package session

import (
	"context"
	"time"
)

type Repository interface {
	// Book atomically checks trainer availability and slot conflicts and
	// inserts the session. It locks the trainer row for the duration of
	// the transaction so concurrent bookings serialize.
	Book(ctx context.Context, userID, trainerID int, scheduledAt time.Time, durationMinutes int, sessionType, notes string) (*WithTrainer, error)
	ListByUser(ctx context.Context, filter ListFilter) ([]WithTrainer, error)
	GetByID(ctx context.Context, id int) (*WithTrainer, error)
	Cancel(ctx context.Context, id int) error
}
