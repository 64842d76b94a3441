package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrTokenNotFound = errors.New("token not found or expired")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const userColumns = `id, email, password_hash, name, verified, avatar, created_at, updated_at`

// Create inserts the user together with its FREE subscription row. The two
// inserts share a transaction so a user never exists without a subscription.
func (r *repository) Create(ctx context.Context, name, email, passwordHash, verificationToken string) (*User, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var user User
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO users (name, email, password_hash, verification_token)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		name, email, passwordHash, verificationToken,
	).StructScan(&user)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO subscriptions (user_id, tier, status)
		VALUES ($1, 'FREE', 'ACTIVE')`,
		user.ID,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.GetContext(ctx, &user, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*User, error) {
	var user User
	err := r.db.GetContext(ctx, &user, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) IsVerified(ctx context.Context, userID int) (bool, error) {
	var verified bool
	err := r.db.GetContext(ctx, &verified, `SELECT verified FROM users WHERE id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrUserNotFound
		}
		return false, err
	}

	return verified, nil
}

// VerifyByToken flips the verified flag once and burns the token.
func (r *repository) VerifyByToken(ctx context.Context, token string) (*User, error) {
	var user User
	err := r.db.QueryRowxContext(ctx, `
		UPDATE users
		SET verified = TRUE, verification_token = NULL, updated_at = NOW()
		WHERE verification_token = $1 AND verified = FALSE
		RETURNING `+userColumns,
		token,
	).StructScan(&user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *repository) SetResetToken(ctx context.Context, email, token string, expires time.Time) (*User, error) {
	var user User
	err := r.db.QueryRowxContext(ctx, `
		UPDATE users
		SET reset_token = $2, reset_token_expires = $3, updated_at = NOW()
		WHERE email = $1
		RETURNING `+userColumns,
		email, token, expires,
	).StructScan(&user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *repository) ResetPasswordByToken(ctx context.Context, token, passwordHash string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET password_hash = $2, reset_token = NULL, reset_token_expires = NULL, updated_at = NOW()
		WHERE reset_token = $1 AND reset_token_expires > NOW()`,
		token, passwordHash,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrTokenNotFound
	}

	return nil
}
