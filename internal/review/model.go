package review

import "time"

// Review is attached to a completed session. Submission endpoints are not
// wired yet; rows exist through seeds and feed the trainer aggregates.
type Review struct {
	ID        int       `db:"id" json:"id"`
	SessionID int       `db:"session_id" json:"session_id"`
	UserID    int       `db:"user_id" json:"user_id"`
	TrainerID int       `db:"trainer_id" json:"trainer_id"`
	Rating    int       `db:"rating" json:"rating"`
	Comment   string    `db:"comment" json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type ReviewWithUser struct {
	Review
	UserName   string  `db:"user_name" json:"user_name"`
	UserAvatar *string `db:"user_avatar" json:"user_avatar,omitempty"`
}
