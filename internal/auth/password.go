package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/mmynk/budgetbook/internal/models"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the number of random bytes in a password salt.
	SaltSize = 16

	// KeySize is the length of the derived password key in bytes.
	KeySize = 32

	// Iterations is the PBKDF2 work factor.
	Iterations = 100_000
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmptyCredential    = errors.New("username and password are required")
)

// CreateSalt returns a fresh random salt, base64 encoded for storage.
func CreateSalt() (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// HashPassword derives a PBKDF2-HMAC-SHA256 key from password and the base64
// salt and returns it base64 encoded.
func HashPassword(password, salt string) (string, error) {
	rawSalt, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("failed to decode salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), rawSalt, Iterations, KeySize, sha256.New)
	return base64.StdEncoding.EncodeToString(key), nil
}

// FixedTimeEquals compares two encoded hashes without stopping at the first
// differing byte.
//
// Inputs of different length are rejected immediately, which leaks the length.
// Stored hashes all have the same encoded length, so this cannot happen for a
// genuine hash.
func FixedTimeEquals(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	var diff byte
	for i := 0; i < len(a); i++ {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}

// NewCredentials creates a salt and the matching hash for password.
func NewCredentials(password string) (hash, salt string, err error) {
	salt, err = CreateSalt()
	if err != nil {
		return "", "", err
	}
	hash, err = HashPassword(password, salt)
	if err != nil {
		return "", "", err
	}
	return hash, salt, nil
}

// Verify reports whether password matches the stored credentials of user.
func Verify(user *models.User, password string) (bool, error) {
	candidate, err := HashPassword(password, user.PasswordSalt)
	if err != nil {
		return false, err
	}
	return FixedTimeEquals(user.PasswordHash, candidate), nil
}

// UserStorage defines the interface for user persistence operations.
// This allows the authenticator to be independent of the storage implementation.
type UserStorage interface {
	CreateUser(ctx context.Context, username, password string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// PasswordAuthenticator implements password-based authentication using PBKDF2.
type PasswordAuthenticator struct {
	storage UserStorage
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
	}
}

// ValidateCredential checks that the password is usable.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if credential == "" {
		return ErrEmptyCredential
	}
	return nil
}

// Register provisions a new account. A duplicate username surfaces the
// storage's storage.ErrUsernameTaken.
func (a *PasswordAuthenticator) Register(ctx context.Context, username, credential string) (*models.User, error) {
	if username == "" {
		return nil, ErrEmptyCredential
	}
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	user, err := a.storage.CreateUser(ctx, username, credential)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies the username and password, returning the user if valid.
// An unknown username and a wrong password both yield ErrInvalidCredentials.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username, credential string) (*models.User, error) {
	user, err := a.storage.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := Verify(user, credential)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
