package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/budgetbook/internal/auth"
	"github.com/mmynk/budgetbook/internal/models"
	"github.com/mmynk/budgetbook/internal/storage"
)

// CreateUser hashes password with a fresh salt and inserts a new user.
func (s *SQLiteStore) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	if err := storage.ValidateCredentials(username, password); err != nil {
		return nil, err
	}

	hash, salt, err := auth.NewCredentials(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, password_salt) VALUES (?, ?, ?)",
		username, hash, salt,
	)
	if isUniqueViolation(err) {
		return nil, storage.ErrUsernameTaken
	}
	if err != nil {
		return nil, storage.Wrap("create user", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, storage.Wrap("read user id", err)
	}

	slog.InfoContext(ctx, "User created", "user_id", id, "username", username)
	return &models.User{
		ID:           id,
		Username:     username,
		PasswordHash: hash,
		PasswordSalt: salt,
	}, nil
}

// GetUserByUsername retrieves a user by exact, case-sensitive username.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, password_salt
		FROM users
		WHERE username = ?
	`

	user := &models.User{}
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.PasswordSalt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, storage.Wrap("get user by username", err)
	}

	return user, nil
}

// ValidateLogin checks a username/password pair against the stored hash.
func (s *SQLiteStore) ValidateLogin(ctx context.Context, username, password string) (bool, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}

	ok, err := auth.Verify(user, password)
	if err != nil {
		// A stored salt that does not decode is a corrupt dataset.
		return false, storage.Wrap("verify password", err)
	}
	return ok, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlitedrv.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
