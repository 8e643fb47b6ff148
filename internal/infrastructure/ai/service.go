// Package ai provides LLM-backed behavioral analysis for apidrift.
package ai

import (
	"context"
	"time"
)

// Service defines the interface for AI completion operations.
type Service interface {
	// Complete sends a system and user prompt to the model and returns
	// the raw text response.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// IsAvailable returns true if the AI service is configured and usable.
	IsAvailable() bool
}

// ServiceConfig configures the AI service.
type ServiceConfig struct {
	// Provider is the AI provider (openai, anthropic, gemini, ollama, azure-openai).
	Provider string
	// APIKey is the API key for the provider.
	APIKey string
	// BaseURL is the base URL for the API (for custom endpoints).
	BaseURL string
	// APIVersion is the API version (required for Azure OpenAI).
	APIVersion string
	// Model is the model to use.
	Model string
	// MaxTokens is the maximum tokens for responses.
	MaxTokens int
	// Temperature controls randomness (0.0-2.0).
	Temperature float64
	// Timeout is the request timeout.
	Timeout time.Duration
	// RetryAttempts is the number of retry attempts.
	RetryAttempts int
	// RateLimitRPM is the rate limit in requests per minute (0 = no limit).
	RateLimitRPM int
}

// DefaultServiceConfig returns the default service configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Provider:      "openai",
		Model:         "gpt-4",
		MaxTokens:     2048,
		Temperature:   0.2,
		Timeout:       30 * time.Second,
		RetryAttempts: 3,
		RateLimitRPM:  60,
	}
}

// ServiceOption configures the AI service.
type ServiceOption func(*ServiceConfig)

// WithProvider sets the AI provider.
func WithProvider(provider string) ServiceOption {
	return func(cfg *ServiceConfig) {
		cfg.Provider = provider
	}
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) ServiceOption {
	return func(cfg *ServiceConfig) {
		cfg.APIKey = key
	}
}

// WithBaseURL sets the base URL.
func WithBaseURL(url string) ServiceOption {
	return func(cfg *ServiceConfig) {
		cfg.BaseURL = url
	}
}

// WithAPIVersion sets the API version (required for Azure OpenAI).
func WithAPIVersion(version string) ServiceOption {
	return func(cfg *ServiceConfig) {
		cfg.APIVersion = version
	}
}

// WithModel sets the model.
func WithModel(model string) ServiceOption {
	return func(cfg *ServiceConfig) {
		cfg.Model = model
	}
}

// WithMaxTokens sets the maximum tokens.
func WithMaxTokens(tokens int) ServiceOption {
	return func(cfg *ServiceConfig) {
		cfg.MaxTokens = tokens
	}
}

// WithTemperature sets the temperature.
func WithTemperature(temp float64) ServiceOption {
	return func(cfg *ServiceConfig) {
		cfg.Temperature = temp
	}
}

// WithTimeout sets the timeout.
func WithTimeout(timeout time.Duration) ServiceOption {
	return func(cfg *ServiceConfig) {
		cfg.Timeout = timeout
	}
}

// WithRetryAttempts sets the retry attempts.
func WithRetryAttempts(attempts int) ServiceOption {
	return func(cfg *ServiceConfig) {
		cfg.RetryAttempts = attempts
	}
}

// WithRateLimit sets the rate limit in requests per minute.
func WithRateLimit(rpm int) ServiceOption {
	return func(cfg *ServiceConfig) {
		cfg.RateLimitRPM = rpm
	}
}

// NewService creates a new AI service based on the configuration.
func NewService(opts ...ServiceOption) (Service, error) {
	cfg := DefaultServiceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	switch cfg.Provider {
	case "openai", "azure-openai":
		return NewOpenAIService(cfg)
	case "ollama":
		return NewOllamaService(cfg)
	case "anthropic", "claude":
		return NewAnthropicService(cfg)
	case "gemini":
		return NewGeminiService(cfg)
	default:
		return NewOpenAIService(cfg)
	}
}

// noopService is a no-op implementation used when AI is not configured.
// Analysis falls back to the static detector when this is in play.
type noopService struct{}

// Complete returns an empty response when AI is not available.
func (s *noopService) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return "", nil
}

// IsAvailable returns false for the noop service.
func (s *noopService) IsAvailable() bool {
	return false
}

// NewNoopService returns a service that is never available. Useful for
// tests and for callers that want AI wiring without a provider.
func NewNoopService() Service {
	return &noopService{}
}
