package ai

import (
	"context"
	"regexp"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/apidrift/apidrift/internal/errors"
)

// Pre-compiled regex for API key validation.
// OpenAI keys start with "sk-" followed by alphanumeric characters.
// Also supports newer project-scoped keys (sk-proj-) and service account keys.
var openaiKeyPattern = regexp.MustCompile(`^sk-(?:proj-)?[a-zA-Z0-9_-]{20,}$`)

// openAIService implements the AI Service interface using OpenAI.
type openAIService struct {
	client     *openai.Client
	config     ServiceConfig
	resilience *Resilience
}

// NewOpenAIService creates a new OpenAI-based AI service. It also serves
// Azure OpenAI when the config names the azure-openai provider.
func NewOpenAIService(cfg ServiceConfig) (Service, error) {
	if cfg.APIKey == "" {
		return &noopService{}, nil
	}

	var clientConfig openai.ClientConfig
	if cfg.Provider == "azure-openai" {
		// Azure keys have their own format; only the endpoint is required.
		if cfg.BaseURL == "" {
			return nil, errors.AI("NewOpenAIService", "azure-openai requires a base URL")
		}
		clientConfig = openai.DefaultAzureConfig(cfg.APIKey, cfg.BaseURL)
		if cfg.APIVersion != "" {
			clientConfig.APIVersion = cfg.APIVersion
		}
	} else {
		// Validate key format to fail fast and avoid leaking invalid keys in error messages
		if !openaiKeyPattern.MatchString(cfg.APIKey) {
			return nil, errors.AI("NewOpenAIService", "invalid OpenAI API key format")
		}
		clientConfig = openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientConfig.BaseURL = cfg.BaseURL
		}
	}

	client := openai.NewClientWithConfig(clientConfig)

	svc := &openAIService{
		client:     client,
		config:     cfg,
		resilience: NewResilience(resilienceFromService(cfg)),
	}

	return svc, nil
}

// IsAvailable returns true if the OpenAI service is available.
func (s *openAIService) IsAvailable() bool {
	return s.client != nil && s.config.APIKey != ""
}

// Complete sends a completion request to OpenAI using Fortify resilience patterns.
func (s *openAIService) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
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
			return "", errors.AI("Complete", "no response from AI model")
		}

		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	})

	if err != nil {
		return "", errors.AIWrapSafe(err, "Complete", "completion request failed")
	}

	return result, nil
}
