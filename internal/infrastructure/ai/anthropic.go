package ai

import (
	"context"
	"regexp"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/apidrift/apidrift/internal/errors"
)

// DefaultAnthropicModel is the default model for Anthropic.
const DefaultAnthropicModel = "claude-sonnet-4-20250514"

// Pre-compiled regex for API key validation.
// Anthropic keys start with "sk-ant-" followed by alphanumeric characters.
var anthropicKeyPattern = regexp.MustCompile(`^sk-ant-[a-zA-Z0-9_-]{20,}$`)

// anthropicService implements the AI Service interface using Anthropic Claude.
type anthropicService struct {
	client     *anthropic.Client
	config     ServiceConfig
	resilience *Resilience
}

// NewAnthropicService creates a new Anthropic-based AI service.
func NewAnthropicService(cfg ServiceConfig) (Service, error) {
	if cfg.APIKey == "" {
		return &noopService{}, nil
	}

	// Validate key format to fail fast and avoid leaking invalid keys in error messages
	if !anthropicKeyPattern.MatchString(cfg.APIKey) {
		return nil, errors.AI("NewAnthropicService", "invalid Anthropic API key format (expected sk-ant-...)")
	}

	model := cfg.Model
	if model == "" {
		model = DefaultAnthropicModel
	}
	cfg.Model = model

	var clientOptions []anthropic.ClientOption
	if cfg.BaseURL != "" {
		clientOptions = append(clientOptions, anthropic.WithBaseURL(cfg.BaseURL))
	}

	client := anthropic.NewClient(cfg.APIKey, clientOptions...)

	svc := &anthropicService{
		client:     client,
		config:     cfg,
		resilience: NewResilience(resilienceFromService(cfg)),
	}

	return svc, nil
}

// IsAvailable returns true if the Anthropic service is available.
func (s *anthropicService) IsAvailable() bool {
	return s.client != nil && s.config.APIKey != ""
}

// Complete sends a completion request to Anthropic using Fortify resilience patterns.
func (s *anthropicService) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	result, err := s.resilience.Execute(ctx, func(ctx context.Context) (string, error) {
		resp, err := s.client.CreateMessages(
			ctx,
			anthropic.MessagesRequest{
				Model:     anthropic.Model(s.config.Model),
				MaxTokens: s.config.MaxTokens,
				System:    systemPrompt,
				Messages: []anthropic.Message{
					anthropic.NewUserTextMessage(userPrompt),
				},
				Temperature: toFloatPtr(s.config.Temperature),
			},
		)
		if err != nil {
			return "", err
		}

		if len(resp.Content) == 0 {
			return "", errors.AI("Complete", "no response from Anthropic model")
		}

		return strings.TrimSpace(resp.GetFirstContentText()), nil
	})

	if err != nil {
		return "", errors.AIWrapSafe(err, "Complete", "completion request failed")
	}

	return result, nil
}

// toFloatPtr converts a float64 to a *float32 for the Anthropic API.
func toFloatPtr(f float64) *float32 {
	f32 := float32(f)
	return &f32
}
