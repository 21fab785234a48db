package retry

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"
)

func TestIsRetryableHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{"too many requests", http.StatusTooManyRequests, true},
		{"internal server error", http.StatusInternalServerError, true},
		{"bad gateway", http.StatusBadGateway, true},
		{"request timeout", http.StatusRequestTimeout, true},
		{"ok", http.StatusOK, false},
		{"bad request", http.StatusBadRequest, false},
		{"unauthorized", http.StatusUnauthorized, false},
		{"not found", http.StatusNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryableHTTPStatus(tt.status); got != tt.want {
				t.Errorf("IsRetryableHTTPStatus(%d) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestIsRetryableError(t *testing.T) {
	if IsRetryableError(nil) {
		t.Error("nil error should not be retryable")
	}
	if IsRetryableError(context.Canceled) {
		t.Error("context.Canceled should not be retryable")
	}
	if IsRetryableError(context.DeadlineExceeded) {
		t.Error("context.DeadlineExceeded should not be retryable")
	}
	if IsRetryableError(errors.New("some random error")) {
		t.Error("plain errors should not be retryable")
	}
	if !IsRetryableError(&net.DNSError{IsTemporary: true}) {
		t.Error("transient DNS errors should be retryable")
	}
	if IsRetryableError(&net.DNSError{IsNotFound: true}) {
		t.Error("NXDOMAIN should not be retryable")
	}
}

func TestWithBackoffHTTPStopsOnSuccess(t *testing.T) {
	cfg := BackoffConfig{
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
		MaxRetries:      3,
		Multiplier:      1.0,
	}

	calls := 0
	err := WithBackoffHTTP(context.Background(), cfg, func() (int, error) {
		calls++
		if calls < 3 {
			return http.StatusServiceUnavailable, nil
		}
		return http.StatusOK, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestWithBackoffHTTPRetriesStatusDespiteError(t *testing.T) {
	cfg := BackoffConfig{
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
		MaxRetries:      3,
		Multiplier:      1.0,
	}

	// Callers wrap non-2xx responses in an error carrying the API body.
	// The status, not the wrapping error, decides retryability.
	calls := 0
	err := WithBackoffHTTP(context.Background(), cfg, func() (int, error) {
		calls++
		if calls == 1 {
			return http.StatusServiceUnavailable, errors.New("API error: 503 Service Unavailable")
		}
		return http.StatusOK, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestWithBackoffHTTPNonRetryable(t *testing.T) {
	cfg := HTTPConfig()
	cfg.InitialInterval = time.Millisecond

	calls := 0
	err := WithBackoffHTTP(context.Background(), cfg, func() (int, error) {
		calls++
		return http.StatusBadRequest, nil
	})
	if err == nil {
		t.Fatal("expected error for non-retryable status")
	}
	if calls != 1 {
		t.Errorf("expected a single call, got %d", calls)
	}
}

func TestWithBackoffHTTPExhaustsBudget(t *testing.T) {
	cfg := BackoffConfig{
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
		MaxRetries:      2,
		Multiplier:      1.0,
	}

	calls := 0
	err := WithBackoffHTTP(context.Background(), cfg, func() (int, error) {
		calls++
		return http.StatusInternalServerError, nil
	})
	if err == nil {
		t.Fatal("expected error after retries exhausted")
	}
	if calls != 3 {
		t.Errorf("expected 3 calls (1 + 2 retries), got %d", calls)
	}
}
