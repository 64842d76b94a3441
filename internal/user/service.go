package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"disciplix/internal/auth"
	"disciplix/internal/logger"
)

var (
	ErrEmailExists        = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("email address not verified")
)

const resetTokenTTL = time.Hour

// Mailer is the outbox surface the service needs; satisfied by email.Service.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, name, clientURL, token string) error
	SendPasswordResetEmail(ctx context.Context, to, name, clientURL, token string) error
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*User, string, string, error)
	GetByID(ctx context.Context, userID int) (*User, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, *User, error)
	VerifyEmail(ctx context.Context, token string) (*User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

type service struct {
	repo          Repository
	mailer        Mailer
	accessSecret  string
	refreshSecret string
	clientURL     string
}

func NewService(repo Repository, mailer Mailer, accessSecret, refreshSecret, clientURL string) Service {
	return &service{
		repo:          repo,
		mailer:        mailer,
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		clientURL:     clientURL,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	verificationToken, err := generateToken()
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, req.Name, req.Email, passwordHash, verificationToken)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendVerificationEmail(ctx, user.Email, user.Name, s.clientURL, verificationToken); err != nil {
		// Registration already succeeded; the user can request a resend.
		logger.Errorf("Failed to queue verification email for %s: %v", user.Email, err)
	}

	return user, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*User, string, string, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, "", "", ErrInvalidCredentials
	}

	if !user.Verified {
		return nil, "", "", ErrNotVerified
	}

	accessToken, refreshToken, err := auth.GenerateTokens(user.ID, user.Email, s.accessSecret, s.refreshSecret)
	if err != nil {
		return nil, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

func (s *service) GetByID(ctx context.Context, userID int) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, *User, error) {
	_, claims, err := auth.RefreshAccessToken(refreshToken, s.refreshSecret, s.accessSecret)
	if err != nil {
		return "", nil, err
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", nil, ErrUserNotFound
	}

	newAccessToken, err := auth.GenerateAccessToken(user.ID, user.Email, s.accessSecret)
	if err != nil {
		return "", nil, err
	}

	return newAccessToken, user, nil
}

func (s *service) VerifyEmail(ctx context.Context, token string) (*User, error) {
	return s.repo.VerifyByToken(ctx, token)
}

// ForgotPassword never reveals whether the email exists: the unknown-account
// case returns nil just like the happy path.
func (s *service) ForgotPassword(ctx context.Context, email string) error {
	token, err := generateToken()
	if err != nil {
		return err
	}

	user, err := s.repo.SetResetToken(ctx, email, token, time.Now().Add(resetTokenTTL))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		return err
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, user.Name, s.clientURL, token); err != nil {
		logger.Errorf("Failed to queue password reset email for %s: %v", user.Email, err)
	}

	return nil
}

func (s *service) ResetPassword(ctx context.Context, token, password string) error {
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	return s.repo.ResetPasswordByToken(ctx, token, passwordHash)
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
