package user

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, name, email, passwordHash, verificationToken string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	IsVerified(ctx context.Context, userID int) (bool, error)
	VerifyByToken(ctx context.Context, token string) (*User, error)
	SetResetToken(ctx context.Context, email, token string, expires time.Time) (*User, error)
	ResetPasswordByToken(ctx context.Context, token, passwordHash string) error
}
