package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/budgetbook/internal/auth"
	"github.com/mmynk/budgetbook/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type ping struct{}

func okHandler(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
	return connect.NewResponse(&ping{}), nil
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"Bearer a b", "", false},
	}
	for _, tt := range tests {
		got, ok := bearerToken(tt.header)
		if got != tt.want || ok != tt.ok {
			t.Errorf("bearerToken(%q) = %q, %v; want %q, %v", tt.header, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret-key-0123456789", time.Hour)
	token, err := jwtManager.Generate(&models.User{ID: 7, Username: "admin"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var gotID int64
	var gotName string
	next := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		gotID = GetUserID(ctx)
		gotName = GetUsername(ctx)
		return connect.NewResponse(&ping{}), nil
	}
	handler := RequireAuth(jwtManager)(next)

	t.Run("valid token", func(t *testing.T) {
		req := connect.NewRequest(&ping{})
		req.Header().Set("Authorization", "Bearer "+token)
		if _, err := handler(context.Background(), req); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if gotID != 7 || gotName != "admin" {
			t.Errorf("context not populated: id=%d name=%q", gotID, gotName)
		}
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic " + token},
		{"garbage token", "Bearer garbage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := connect.NewRequest(&ping{})
			if tt.header != "" {
				req.Header().Set("Authorization", tt.header)
			}
			_, err := handler(context.Background(), req)
			if connect.CodeOf(err) != connect.CodeUnauthenticated {
				t.Errorf("expected unauthenticated, got %v", err)
			}
		})
	}
}

func TestGetUserIDMissing(t *testing.T) {
	if id := GetUserID(context.Background()); id != 0 {
		t.Errorf("expected 0, got %d", id)
	}
	if name := GetUsername(context.Background()); name != "" {
		t.Errorf("expected empty username, got %q", name)
	}
}

func TestLoggingInterceptorSetsRequestID(t *testing.T) {
	handler := LoggingInterceptor()(okHandler)

	resp, err := handler(context.Background(), connect.NewRequest(&ping{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Header().Get(RequestIDHeader) == "" {
		t.Error("expected a request id header on success")
	}

	failing := LoggingInterceptor()(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("missing"))
	})
	_, err = failing(context.Background(), connect.NewRequest(&ping{}))
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect error, got %v", err)
	}
	if connectErr.Meta().Get(RequestIDHeader) == "" {
		t.Error("expected a request id in error metadata")
	}
}

func TestLoggingInterceptorLogsUserID(t *testing.T) {
	var buf bytes.Buffer
	orig := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(orig) })

	jwtManager := auth.NewJWTManager("test-secret-key-0123456789", time.Hour)
	token, err := jwtManager.Generate(&models.User{ID: 42, Username: "admin"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	handler := LoggingInterceptor()(RequireAuth(jwtManager)(okHandler))

	req := connect.NewRequest(&ping{})
	req.Header().Set("Authorization", "Bearer "+token)
	if _, err := handler(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "user_id=42") {
		t.Errorf("expected user_id=42 in log, got %q", buf.String())
	}

	buf.Reset()
	_, _ = handler(context.Background(), connect.NewRequest(&ping{}))
	if !strings.Contains(buf.String(), "user_id=0") {
		t.Errorf("expected user_id=0 for a rejected call, got %q", buf.String())
	}
}

func TestMetricsInterceptor(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	ok := m.Interceptor()(okHandler)
	failing := m.Interceptor()(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("bad"))
	})

	for i := 0; i < 3; i++ {
		if _, err := ok(context.Background(), connect.NewRequest(&ping{})); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	_, _ = failing(context.Background(), connect.NewRequest(&ping{}))

	// Requests built outside a handler carry an empty procedure.
	if got := testutil.ToFloat64(m.requests.WithLabelValues("", "ok")); got != 3 {
		t.Errorf("expected 3 ok calls, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("", "invalid_argument")); got != 1 {
		t.Errorf("expected 1 failed call, got %v", got)
	}
	if n := testutil.CollectAndCount(m.duration); n != 1 {
		t.Errorf("expected 1 histogram series, got %d", n)
	}
}
