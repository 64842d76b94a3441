package session

import (
	"context"
	"errors"
	"time"

	"disciplix/internal/logger"
	"disciplix/internal/metrics"
	"disciplix/internal/user"
)

var (
	ErrNotOwner        = errors.New("session belongs to another user")
	ErrNotScheduled    = errors.New("only scheduled sessions can be cancelled")
	ErrTooLateToCancel = errors.New("sessions must be cancelled at least 24 hours in advance")
)

// cancelNotice is the minimum lead time for a cancellation. A session
// starting exactly this far ahead is still cancellable.
const cancelNotice = 24 * time.Hour

type Mailer interface {
	SendBookingConfirmation(ctx context.Context, to, name, trainerName string, scheduledAt time.Time, durationMinutes int) error
	SendCancellationNotice(ctx context.Context, to, name, trainerName string, scheduledAt time.Time) error
}

// UserDirectory resolves the booking client for notification emails.
type UserDirectory interface {
	FindByID(ctx context.Context, id int) (*user.User, error)
}

type Service interface {
	Book(ctx context.Context, userID, trainerID int, req BookRequest) (*WithTrainer, error)
	ListByUser(ctx context.Context, filter ListFilter) ([]WithTrainer, error)
	Cancel(ctx context.Context, userID, sessionID int) (*WithTrainer, error)
}

type service struct {
	repo   Repository
	users  UserDirectory
	mailer Mailer
	now    func() time.Time
}

func NewService(repo Repository, users UserDirectory, mailer Mailer) Service {
	return &service{repo: repo, users: users, mailer: mailer, now: time.Now}
}

func (s *service) Book(ctx context.Context, userID, trainerID int, req BookRequest) (*WithTrainer, error) {
	sessionType := req.Type
	if sessionType == "" {
		sessionType = TypeVirtual
	}

	session, err := s.repo.Book(ctx, userID, trainerID, req.ScheduledAt.UTC(), req.DurationMinutes, sessionType, req.Notes)
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			metrics.RecordBookingConflict()
		}
		return nil, err
	}
	metrics.RecordSessionBooked(session.Type)

	s.notifyBooked(ctx, session)
	return session, nil
}

func (s *service) ListByUser(ctx context.Context, filter ListFilter) ([]WithTrainer, error) {
	return s.repo.ListByUser(ctx, filter)
}

func (s *service) Cancel(ctx context.Context, userID, sessionID int) (*WithTrainer, error) {
	session, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrNotOwner
	}
	if session.Status != StatusScheduled {
		return nil, ErrNotScheduled
	}
	if session.ScheduledAt.Sub(s.now()) < cancelNotice {
		return nil, ErrTooLateToCancel
	}

	if err := s.repo.Cancel(ctx, sessionID); err != nil {
		return nil, err
	}
	metrics.RecordSessionCancellation()
	session.Status = StatusCancelled

	s.notifyCancelled(ctx, session)
	return session, nil
}

// Email failures never fail the request; the booking is already committed.
func (s *service) notifyBooked(ctx context.Context, session *WithTrainer) {
	client, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		logger.Error("resolving client for booking email failed", "user_id", session.UserID, "error", err)
		return
	}
	if err := s.mailer.SendBookingConfirmation(ctx, client.Email, client.Name, session.TrainerName, session.ScheduledAt, session.DurationMinutes); err != nil {
		logger.Error("queueing booking confirmation failed", "session_id", session.ID, "error", err)
	}
}

func (s *service) notifyCancelled(ctx context.Context, session *WithTrainer) {
	client, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		logger.Error("resolving client for cancellation email failed", "user_id", session.UserID, "error", err)
		return
	}
	if err := s.mailer.SendCancellationNotice(ctx, client.Email, client.Name, session.TrainerName, session.ScheduledAt); err != nil {
		logger.Error("queueing cancellation notice failed", "session_id", session.ID, "error", err)
	}
}
