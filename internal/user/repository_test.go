package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "verified", "avatar", "created_at", "updated_at"})
}

func TestCreateUserWithSubscription(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (name, email, password_hash, verification_token) VALUES ($1, $2, $3, $4)")).
		WithArgs("Alice", "alice@example.com", "hash", "vtok").
		WillReturnRows(userRows().AddRow(1, "alice@example.com", "hash", "Alice", false, nil, now, now))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO subscriptions (user_id, tier, status) VALUES ($1, 'FREE', 'ACTIVE')")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	u, err := repo.Create(context.Background(), "Alice", "alice@example.com", "hash", "vtok")
	require.NoError(t, err)
	require.Equal(t, 1, u.ID)
	require.False(t, u.Verified)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserRollsBackOnSubscriptionFailure(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("Alice", "alice@example.com", "hash", "vtok").
		WillReturnRows(userRows().AddRow(1, "alice@example.com", "hash", "Alice", false, nil, now, now))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO subscriptions")).
		WithArgs(1).
		WillReturnError(sqlmock.ErrCancelled)
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), "Alice", "alice@example.com", "hash", "vtok")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmail(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, name, verified, avatar, created_at, updated_at FROM users WHERE email = $1")).
		WithArgs("alice@example.com").
		WillReturnRows(userRows().AddRow(1, "alice@example.com", "hash", "Alice", true, nil, now, now))

	u, err := repo.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "Alice", u.Name)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, name, verified, avatar, created_at, updated_at FROM users WHERE email = $1")).
		WithArgs("nobody@example.com").
		WillReturnRows(userRows())

	_, err = repo.FindByEmail(context.Background(), "nobody@example.com")
	require.Equal(t, ErrUserNotFound, err)
}

func TestIsVerified(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT verified FROM users WHERE id = $1")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"verified"}).AddRow(true))

	ok, err := repo.IsVerified(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, ok)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT verified FROM users WHERE id = $1")).
		WithArgs(8).
		WillReturnRows(sqlmock.NewRows([]string{"verified"}))

	_, err = repo.IsVerified(context.Background(), 8)
	require.Equal(t, ErrUserNotFound, err)
}

func TestVerifyByToken(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET verified = TRUE, verification_token = NULL, updated_at = NOW() WHERE verification_token = $1 AND verified = FALSE")).
		WithArgs("vtok").
		WillReturnRows(userRows().AddRow(1, "alice@example.com", "hash", "Alice", true, nil, now, now))

	u, err := repo.VerifyByToken(context.Background(), "vtok")
	require.NoError(t, err)
	require.True(t, u.Verified)

	// reused token finds nothing
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET verified = TRUE")).
		WithArgs("vtok").
		WillReturnRows(userRows())

	_, err = repo.VerifyByToken(context.Background(), "vtok")
	require.Equal(t, ErrTokenNotFound, err)
}

func TestResetPasswordByToken(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password_hash = $2, reset_token = NULL, reset_token_expires = NULL, updated_at = NOW() WHERE reset_token = $1 AND reset_token_expires > NOW()")).
		WithArgs("rtok", "newhash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ResetPasswordByToken(context.Background(), "rtok", "newhash")
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password_hash = $2")).
		WithArgs("expired", "newhash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.ResetPasswordByToken(context.Background(), "expired", "newhash")
	require.Equal(t, ErrTokenNotFound, err)
}
