package session

import "time"

// Session statuses. RESCHEDULED exists in the data model but no endpoint
// sets it yet; rescheduling is still client-side cancel-and-rebook.
const (
	StatusScheduled   = "SCHEDULED"
	StatusInProgress  = "IN_PROGRESS"
	StatusCompleted   = "COMPLETED"
	StatusCancelled   = "CANCELLED"
	StatusRescheduled = "RESCHEDULED"
)

const (
	TypeInPerson = "IN_PERSON"
	TypeVirtual  = "VIRTUAL"
	TypeHybrid   = "HYBRID"
)

const (
	MinDurationMinutes = 30
	MaxDurationMinutes = 180
)

// conflictWindowBefore is how far back an existing booking's start time
// blocks a new one, independent of the existing booking's own duration.
const conflictWindowBefore = 2 * time.Hour

type Session struct {
	ID              int       `db:"id" json:"id"`
	UserID          int       `db:"user_id" json:"user_id"`
	TrainerID       int       `db:"trainer_id" json:"trainer_id"`
	Type            string    `db:"type" json:"type"`
	Status          string    `db:"status" json:"status"`
	ScheduledAt     time.Time `db:"scheduled_at" json:"scheduled_at"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Price           float64   `db:"price" json:"price"`
	Currency        string    `db:"currency" json:"currency"`
	Notes           string    `db:"notes" json:"notes"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// WithTrainer is a session row joined with the trainer's display identity.
type WithTrainer struct {
	Session
	TrainerName   string  `db:"trainer_name" json:"trainer_name"`
	TrainerAvatar *string `db:"trainer_avatar" json:"trainer_avatar,omitempty"`
}

type BookRequest struct {
	ScheduledAt     time.Time `json:"scheduledAt" binding:"required"`
	DurationMinutes int       `json:"duration" binding:"required,min=30,max=180"`
	Type            string    `json:"type" binding:"omitempty,oneof=IN_PERSON VIRTUAL HYBRID"`
	Notes           string    `json:"notes" binding:"max=1000"`
}

type ListFilter struct {
	UserID   int
	Status   string
	Upcoming bool
}

// Price converts an hourly rate into the charge for a session of the given
// length, rounded to cents. The result is snapshotted on the session row so
// later rate changes never reprice existing bookings.
func Price(hourlyRate float64, durationMinutes int) float64 {
	raw := hourlyRate * float64(durationMinutes) / 60
	return float64(int64(raw*100+0.5)) / 100
}
