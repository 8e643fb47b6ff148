package ai

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/apidrift/apidrift/internal/errors"
)

// Default Ollama configuration values.
const (
	// DefaultOllamaBaseURL is the default Ollama API endpoint.
	DefaultOllamaBaseURL = "http://localhost:11434/v1"
	// DefaultOllamaModel is the default model for Ollama.
	DefaultOllamaModel = "llama3.2"
)

// ollamaService implements the AI Service interface using Ollama's
// OpenAI-compatible API.
type ollamaService struct {
	client     *openai.Client
	config     ServiceConfig
	resilience *Resilience
}

// NewOllamaService creates a new Ollama-based AI service.
// Ollama exposes an OpenAI-compatible API, so we reuse the openai client.
func NewOllamaService(cfg ServiceConfig) (Service, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultOllamaBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultOllamaModel
	}
	cfg.Model = model

	// Ollama doesn't require an API key, but the client expects one
	clientConfig := openai.DefaultConfig("ollama")
	clientConfig.BaseURL = baseURL

	clientConfig.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	client := openai.NewClientWithConfig(clientConfig)

	// Local services trip the breaker faster and back off longer.
	resilienceCfg := resilienceFromService(cfg)
	resilienceCfg.RetryInitialWait = 500 * time.Millisecond
	resilienceCfg.CircuitBreakerThreshold = 3

	svc := &ollamaService{
		client:     client,
		config:     cfg,
		resilience: NewResilience(resilienceCfg),
	}

	return svc, nil
}

// IsAvailable returns true if the Ollama service is available.
func (s *ollamaService) IsAvailable() bool {
	return s.client != nil
}

// CheckConnection verifies that Ollama is running and accessible.
func (s *ollamaService) CheckConnection(ctx context.Context) error {
	baseURL := s.config.BaseURL
	if baseURL == "" {
		baseURL = DefaultOllamaBaseURL
	}

	// Remove /v1 suffix for the health check endpoint
	healthURL := strings.TrimSuffix(baseURL, "/v1")
	healthURL = strings.TrimSuffix(healthURL, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
	if err != nil {
		return errors.AIWrap(err, "CheckConnection", "failed to create health check request")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return errors.AI("CheckConnection", fmt.Sprintf("Ollama is not running at %s: %v", healthURL, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.AI("CheckConnection", fmt.Sprintf("Ollama returned status %d", resp.StatusCode))
	}

	return nil
}

// Complete sends a completion request to Ollama using Fortify resilience patterns.
func (s *ollamaService) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	result, err := s.resilience.Execute(ctx, func(ctx context.Context) (string, error) {
		resp, err := s.client.CreateChatCompletion(
			ctx,
			openai.ChatCompletionRequest{
				Model: s.config.Model,
				Messages: []openai.ChatCompletionMessage{
					{
						Role:    openai.ChatMessageRoleSystem,
						Content: systemPrompt,
					},
					{
						Role:    openai.ChatMessageRoleUser,
						Content: userPrompt,
					},
				},
				MaxTokens:   s.config.MaxTokens,
				Temperature: float32(s.config.Temperature),
			},
		)
		if err != nil {
			return "", err
		}

		if len(resp.Choices) == 0 {
			return "", errors.AI("Complete", "no response from Ollama model")
		}

		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	})

	if err != nil {
		return "", errors.AIWrapSafe(err, "Complete", "completion request failed (is Ollama running?)")
	}

	return result, nil
}

// OllamaConnectionChecker provides methods to check Ollama availability.
type OllamaConnectionChecker interface {
	CheckConnection(ctx context.Context) error
}
