package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestResilienceExecuteSuccess(t *testing.T) {
	r := NewResilience(ResilienceConfig{RetryAttempts: 3, RetryInitialWait: time.Millisecond, RetryMaxWait: 10 * time.Millisecond})
	defer r.Close()

	result, err := r.Execute(context.Background(), func(ctx context.Context) (string, error) {
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Errorf("result = %q, want ok", result)
	}
}

func TestResilienceRetriesTransientErrors(t *testing.T) {
	r := NewResilience(ResilienceConfig{RetryAttempts: 3, RetryInitialWait: time.Millisecond, RetryMaxWait: 5 * time.Millisecond})
	defer r.Close()

	attempts := 0
	result, err := r.Execute(context.Background(), func(ctx context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", fmt.Errorf("503 service unavailable")
		}
		return "recovered", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "recovered" {
		t.Errorf("result = %q, want recovered", result)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestResilienceNilReceiver(t *testing.T) {
	var r *Resilience
	result, err := r.Execute(context.Background(), func(ctx context.Context) (string, error) {
		return "direct", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "direct" {
		t.Errorf("result = %q, want direct", result)
	}
	if r.CircuitBreakerState() != "disabled" {
		t.Error("nil resilience should report disabled circuit breaker")
	}
	if !r.RateLimitAvailable() {
		t.Error("nil resilience should always allow")
	}
	if r.Close() != nil {
		t.Error("nil resilience Close should be nil")
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
		{"rate limit", errors.New("429 too many requests"), true},
		{"server error", errors.New("502 bad gateway"), true},
		{"network", errors.New("connection refused"), true},
		{"unauthorized", errors.New("401 unauthorized"), false},
		{"not found", errors.New("404 not found"), false},
		{"unknown", errors.New("something odd"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.want {
				t.Errorf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsRetryableHTTPStatus(t *testing.T) {
	retryable := []int{http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout}
	for _, code := range retryable {
		if !IsRetryableHTTPStatus(code) {
			t.Errorf("status %d should be retryable", code)
		}
	}
	for _, code := range []int{http.StatusOK, http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound} {
		if IsRetryableHTTPStatus(code) {
			t.Errorf("status %d should not be retryable", code)
		}
	}
}
