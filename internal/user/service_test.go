package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"disciplix/internal/auth"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, name, email, passwordHash, verificationToken string) (*User, error) {
	args := m.Called(ctx, name, email, passwordHash, verificationToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id int) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepo) IsVerified(ctx context.Context, userID int) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepo) VerifyByToken(ctx context.Context, token string) (*User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) SetResetToken(ctx context.Context, email, token string, expires time.Time) (*User, error) {
	args := m.Called(ctx, email, token, expires)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) ResetPasswordByToken(ctx context.Context, token, passwordHash string) error {
	return m.Called(ctx, token, passwordHash).Error(0)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) SendVerificationEmail(ctx context.Context, to, name, clientURL, token string) error {
	return m.Called(ctx, to, name, clientURL, token).Error(0)
}

func (m *MockMailer) SendPasswordResetEmail(ctx context.Context, to, name, clientURL, token string) error {
	return m.Called(ctx, to, name, clientURL, token).Error(0)
}

func newTestService(repo Repository, mailer Mailer) Service {
	return NewService(repo, mailer, "access-secret", "refresh-secret", "http://localhost:3000")
}

func TestService_Register(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		repo := new(MockUserRepo)
		mailer := new(MockMailer)

		repo.On("EmailExists", mock.Anything, "new@example.com").Return(false, nil)
		repo.On("Create", mock.Anything, "New User", "new@example.com", mock.Anything, mock.Anything).
			Return(&User{ID: 1, Email: "new@example.com", Name: "New User"}, nil)
		mailer.On("SendVerificationEmail", mock.Anything, "new@example.com", "New User", "http://localhost:3000", mock.Anything).
			Return(nil)

		svc := newTestService(repo, mailer)
		user, err := svc.Register(context.Background(), RegisterRequest{
			Email:    "new@example.com",
			Password: "password123",
			Name:     "New User",
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, user.ID)
		repo.AssertExpectations(t)
		mailer.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockUserRepo)
		mailer := new(MockMailer)

		repo.On("EmailExists", mock.Anything, "taken@example.com").Return(true, nil)

		svc := newTestService(repo, mailer)
		user, err := svc.Register(context.Background(), RegisterRequest{
			Email:    "taken@example.com",
			Password: "password123",
			Name:     "Someone",
		})

		assert.Equal(t, ErrEmailExists, err)
		assert.Nil(t, user)
		mailer.AssertNotCalled(t, "SendVerificationEmail")
	})

	t.Run("email failure does not fail registration", func(t *testing.T) {
		repo := new(MockUserRepo)
		mailer := new(MockMailer)

		repo.On("EmailExists", mock.Anything, "new@example.com").Return(false, nil)
		repo.On("Create", mock.Anything, "New User", "new@example.com", mock.Anything, mock.Anything).
			Return(&User{ID: 1, Email: "new@example.com", Name: "New User"}, nil)
		mailer.On("SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(assert.AnError)

		svc := newTestService(repo, mailer)
		user, err := svc.Register(context.Background(), RegisterRequest{
			Email:    "new@example.com",
			Password: "password123",
			Name:     "New User",
		})

		assert.NoError(t, err)
		assert.NotNil(t, user)
	})
}

func TestService_Login(t *testing.T) {
	passwordHash, err := auth.HashPassword("correct-password")
	require.NoError(t, err)

	verifiedUser := &User{
		ID:           2,
		Email:        "user@example.com",
		Name:         "User",
		PasswordHash: passwordHash,
		Verified:     true,
	}

	t.Run("successful login", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("FindByEmail", mock.Anything, "user@example.com").Return(verifiedUser, nil)

		svc := newTestService(repo, new(MockMailer))
		user, accessToken, refreshToken, err := svc.Login(context.Background(), LoginRequest{
			Email:    "user@example.com",
			Password: "correct-password",
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, user.ID)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("FindByEmail", mock.Anything, "user@example.com").Return(verifiedUser, nil)

		svc := newTestService(repo, new(MockMailer))
		_, _, _, err := svc.Login(context.Background(), LoginRequest{
			Email:    "user@example.com",
			Password: "wrong",
		})

		assert.Equal(t, ErrInvalidCredentials, err)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, ErrUserNotFound)

		svc := newTestService(repo, new(MockMailer))
		_, _, _, err := svc.Login(context.Background(), LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})

		assert.Equal(t, ErrInvalidCredentials, err)
	})

	t.Run("unverified user rejected", func(t *testing.T) {
		unverified := *verifiedUser
		unverified.Verified = false

		repo := new(MockUserRepo)
		repo.On("FindByEmail", mock.Anything, "user@example.com").Return(&unverified, nil)

		svc := newTestService(repo, new(MockMailer))
		_, _, _, err := svc.Login(context.Background(), LoginRequest{
			Email:    "user@example.com",
			Password: "correct-password",
		})

		assert.Equal(t, ErrNotVerified, err)
	})
}

func TestService_RefreshToken(t *testing.T) {
	t.Run("valid refresh token", func(t *testing.T) {
		refreshToken, err := auth.GenerateRefreshToken(3, "user@example.com", "refresh-secret")
		require.NoError(t, err)

		repo := new(MockUserRepo)
		repo.On("FindByID", mock.Anything, 3).Return(&User{ID: 3, Email: "user@example.com"}, nil)

		svc := newTestService(repo, new(MockMailer))
		accessToken, user, err := svc.RefreshToken(context.Background(), refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.Equal(t, 3, user.ID)
	})

	t.Run("user deleted since issue", func(t *testing.T) {
		refreshToken, err := auth.GenerateRefreshToken(3, "user@example.com", "refresh-secret")
		require.NoError(t, err)

		repo := new(MockUserRepo)
		repo.On("FindByID", mock.Anything, 3).Return(nil, ErrUserNotFound)

		svc := newTestService(repo, new(MockMailer))
		_, _, err = svc.RefreshToken(context.Background(), refreshToken)

		assert.Equal(t, ErrUserNotFound, err)
	})

	t.Run("access token rejected", func(t *testing.T) {
		accessToken, err := auth.GenerateAccessToken(3, "user@example.com", "refresh-secret")
		require.NoError(t, err)

		svc := newTestService(new(MockUserRepo), new(MockMailer))
		_, _, err = svc.RefreshToken(context.Background(), accessToken)

		assert.Error(t, err)
	})
}

func TestService_ForgotPassword(t *testing.T) {
	t.Run("known email queues reset", func(t *testing.T) {
		repo := new(MockUserRepo)
		mailer := new(MockMailer)

		repo.On("SetResetToken", mock.Anything, "user@example.com", mock.Anything, mock.Anything).
			Return(&User{ID: 4, Email: "user@example.com", Name: "User"}, nil)
		mailer.On("SendPasswordResetEmail", mock.Anything, "user@example.com", "User", "http://localhost:3000", mock.Anything).
			Return(nil)

		svc := newTestService(repo, mailer)
		err := svc.ForgotPassword(context.Background(), "user@example.com")

		assert.NoError(t, err)
		mailer.AssertExpectations(t)
	})

	t.Run("unknown email is indistinguishable from success", func(t *testing.T) {
		repo := new(MockUserRepo)
		mailer := new(MockMailer)

		repo.On("SetResetToken", mock.Anything, "nobody@example.com", mock.Anything, mock.Anything).
			Return(nil, ErrUserNotFound)

		svc := newTestService(repo, mailer)
		err := svc.ForgotPassword(context.Background(), "nobody@example.com")

		assert.NoError(t, err)
		mailer.AssertNotCalled(t, "SendPasswordResetEmail")
	})
}

func TestService_VerifyEmail(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("VerifyByToken", mock.Anything, "goodtoken").
		Return(&User{ID: 5, Verified: true}, nil)
	repo.On("VerifyByToken", mock.Anything, "badtoken").
		Return(nil, ErrTokenNotFound)

	svc := newTestService(repo, new(MockMailer))

	user, err := svc.VerifyEmail(context.Background(), "goodtoken")
	assert.NoError(t, err)
	assert.True(t, user.Verified)

	_, err = svc.VerifyEmail(context.Background(), "badtoken")
	assert.Equal(t, ErrTokenNotFound, err)
}
