package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-call identifier back to the client.
const RequestIDHeader = "X-Request-Id"

// callInfo collects facts learned by inner interceptors for the log line.
type callInfo struct {
	userID int64
}

type callInfoKey struct{}

// noteUserID records the authenticated user on the call's log entry, if any.
func noteUserID(ctx context.Context, userID int64) {
	if info, ok := ctx.Value(callInfoKey{}).(*callInfo); ok {
		info.userID = userID
	}
}

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// It logs the procedure name, request ID, user ID, duration, and any error codes/messages.
// Install it outside RequireAuth so rejected calls are logged too; the user ID
// is 0 for calls that were never authenticated.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure
			requestID := uuid.NewString()
			info := &callInfo{}

			resp, err := next(context.WithValue(ctx, callInfoKey{}, info), req)

			duration := time.Since(start).Milliseconds()
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					connectErr.Meta().Set(RequestIDHeader, requestID)
					slog.WarnContext(ctx, "RPC error",
						"procedure", procedure,
						"request_id", requestID,
						"user_id", info.userID,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"duration_ms", duration,
					)
				} else {
					slog.ErrorContext(ctx, "RPC error",
						"procedure", procedure,
						"request_id", requestID,
						"user_id", info.userID,
						"error", err,
						"duration_ms", duration,
					)
				}
				return resp, err
			}

			resp.Header().Set(RequestIDHeader, requestID)
			slog.InfoContext(ctx, "RPC ok",
				"procedure", procedure,
				"request_id", requestID,
				"user_id", info.userID,
				"duration_ms", duration,
			)
			return resp, nil
		}
	}
}
