package review

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	ListRecentByTrainer(ctx context.Context, trainerID, limit int) ([]ReviewWithUser, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListRecentByTrainer(ctx context.Context, trainerID, limit int) ([]ReviewWithUser, error) {
	query := `SELECT r.id, r.session_id, r.user_id, r.trainer_id, r.rating, r.comment, r.created_at,
		u.name AS user_name, u.avatar AS user_avatar
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.trainer_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2`

	reviews := []ReviewWithUser{}
	if err := r.db.SelectContext(ctx, &reviews, query, trainerID, limit); err != nil {
		return nil, err
	}
	return reviews, nil
}
