package ai

import (
	"context"
	"testing"
	"time"
)

func TestDefaultServiceConfig(t *testing.T) {
	cfg := DefaultServiceConfig()

	if cfg.Provider != "openai" {
		t.Errorf("Default Provider = %v, want openai", cfg.Provider)
	}
	if cfg.Model != "gpt-4" {
		t.Errorf("Default Model = %v, want gpt-4", cfg.Model)
	}
	if cfg.MaxTokens != 2048 {
		t.Errorf("Default MaxTokens = %v, want 2048", cfg.MaxTokens)
	}
	if cfg.Temperature != 0.2 {
		t.Errorf("Default Temperature = %v, want 0.2", cfg.Temperature)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Default Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.RetryAttempts != 3 {
		t.Errorf("Default RetryAttempts = %v, want 3", cfg.RetryAttempts)
	}
	if cfg.RateLimitRPM != 60 {
		t.Errorf("Default RateLimitRPM = %v, want 60", cfg.RateLimitRPM)
	}
}

func TestServiceOptions(t *testing.T) {
	cfg := DefaultServiceConfig()
	opts := []ServiceOption{
		WithProvider("anthropic"),
		WithAPIKey("test-key"),
		WithBaseURL("https://example.com"),
		WithAPIVersion("2024-02-01"),
		WithModel("claude-sonnet-4-20250514"),
		WithMaxTokens(1024),
		WithTemperature(0.5),
		WithTimeout(10 * time.Second),
		WithRetryAttempts(5),
		WithRateLimit(30),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %v, want anthropic", cfg.Provider)
	}
	if cfg.APIKey != "test-key" {
		t.Errorf("APIKey = %v, want test-key", cfg.APIKey)
	}
	if cfg.BaseURL != "https://example.com" {
		t.Errorf("BaseURL = %v, want https://example.com", cfg.BaseURL)
	}
	if cfg.APIVersion != "2024-02-01" {
		t.Errorf("APIVersion = %v, want 2024-02-01", cfg.APIVersion)
	}
	if cfg.Model != "claude-sonnet-4-20250514" {
		t.Errorf("Model = %v", cfg.Model)
	}
	if cfg.MaxTokens != 1024 {
		t.Errorf("MaxTokens = %v, want 1024", cfg.MaxTokens)
	}
	if cfg.Temperature != 0.5 {
		t.Errorf("Temperature = %v, want 0.5", cfg.Temperature)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout)
	}
	if cfg.RetryAttempts != 5 {
		t.Errorf("RetryAttempts = %v, want 5", cfg.RetryAttempts)
	}
	if cfg.RateLimitRPM != 30 {
		t.Errorf("RateLimitRPM = %v, want 30", cfg.RateLimitRPM)
	}
}

func TestNewServiceWithoutAPIKey(t *testing.T) {
	// No API key yields the noop service, not an error
	providers := []string{"openai", "anthropic", "gemini", ""}
	for _, provider := range providers {
		name := provider
		if name == "" {
			name = "default"
		}
		t.Run(name, func(t *testing.T) {
			svc, err := NewService(WithProvider(provider))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if svc.IsAvailable() {
				t.Error("service without API key should not be available")
			}
		})
	}
}

func TestNewServiceInvalidKeyFormats(t *testing.T) {
	tests := []struct {
		provider string
		key      string
	}{
		{"openai", "not-a-key"},
		{"anthropic", "sk-wrong-prefix-1234567890abcdefghij"},
		{"gemini", "not-AIza"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			if _, err := NewService(WithProvider(tt.provider), WithAPIKey(tt.key)); err == nil {
				t.Error("expected key format validation error")
			}
		})
	}
}

func TestNewOllamaServiceDefaults(t *testing.T) {
	// Ollama needs no API key and is always available
	svc, err := NewService(WithProvider("ollama"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !svc.IsAvailable() {
		t.Error("ollama service should be available without an API key")
	}
}

func TestNoopService(t *testing.T) {
	svc := NewNoopService()
	if svc.IsAvailable() {
		t.Error("noop service should not be available")
	}
	out, err := svc.Complete(context.Background(), "system", "user")
	if err != nil {
		t.Errorf("noop Complete error: %v", err)
	}
	if out != "" {
		t.Errorf("noop Complete = %q, want empty", out)
	}
}
