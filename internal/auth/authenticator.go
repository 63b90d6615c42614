package auth

import (
	"context"

	"github.com/mmynk/budgetbook/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// The API service depends on it rather than on PasswordAuthenticator so that
// tests can substitute a fake.
type Authenticator interface {
	// Register provisions a new account with the given username and credential.
	Register(ctx context.Context, username, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the user if successful.
	// Failure is always ErrInvalidCredentials, whatever the cause.
	Authenticate(ctx context.Context, username, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}

var _ Authenticator = (*PasswordAuthenticator)(nil)
