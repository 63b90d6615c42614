package service

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/mmynk/budgetbook/internal/auth"
	"github.com/mmynk/budgetbook/internal/storage"
)

var errInternal = errors.New("internal error")

// toConnectError maps core errors onto Connect codes. Storage failures are
// logged and replaced by a generic message.
func toConnectError(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrValidation):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrUsernameTaken):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	default:
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, errInternal)
	}
}
