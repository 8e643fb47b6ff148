package ai

import (
	"context"
	"regexp"
	"strings"

	"google.golang.org/genai"

	"github.com/apidrift/apidrift/internal/errors"
)

// DefaultGeminiModel is the default model for Gemini.
const DefaultGeminiModel = "gemini-2.0-flash-exp"

// Pre-compiled regex for API key validation.
// Gemini keys start with "AIza" followed by alphanumeric, hyphen, or underscore characters.
var geminiKeyPattern = regexp.MustCompile(`^AIza[a-zA-Z0-9_-]{35,}$`)

// geminiService implements the AI Service interface using Google Gemini.
type geminiService struct {
	client     *genai.Client
	config     ServiceConfig
	resilience *Resilience
}

// NewGeminiService creates a new Gemini-based AI service.
func NewGeminiService(cfg ServiceConfig) (Service, error) {
	if cfg.APIKey == "" {
		return &noopService{}, nil
	}

	// Validate key format to fail fast and avoid leaking invalid keys in error messages
	if !geminiKeyPattern.MatchString(cfg.APIKey) {
		return nil, errors.AI("NewGeminiService", "invalid Gemini API key format (expected AIza...)")
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	cfg.Model = model

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		// AIWrapSafe redacts any keys the SDK echoes back in error messages
		return nil, errors.AIWrapSafe(err, "NewGeminiService", "failed to create Gemini client")
	}

	svc := &geminiService{
		client:     client,
		config:     cfg,
		resilience: NewResilience(resilienceFromService(cfg)),
	}

	return svc, nil
}

// IsAvailable returns true if the Gemini service is available.
func (s *geminiService) IsAvailable() bool {
	return s.client != nil && s.config.APIKey != ""
}

// Complete sends a completion request to Gemini using Fortify resilience patterns.
func (s *geminiService) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	result, err := s.resilience.Execute(ctx, func(ctx context.Context) (string, error) {
		// Gemini takes a single prompt; fold the system prompt in front.
		fullPrompt := systemPrompt + "\n\n" + userPrompt

		parts := []*genai.Part{
			{Text: fullPrompt},
		}

		temperature := float32(s.config.Temperature)

		resp, err := s.client.Models.GenerateContent(
			ctx,
			s.config.Model,
			[]*genai.Content{{Parts: parts}},
			&genai.GenerateContentConfig{
				Temperature:     &temperature,
				MaxOutputTokens: int32(s.config.MaxTokens),
			},
		)
		if err != nil {
			return "", err
		}

		if len(resp.Candidates) == 0 {
			return "", errors.AI("Complete", "no response from Gemini model")
		}

		candidate := resp.Candidates[0]
		if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
			return "", errors.AI("Complete", "empty response from Gemini model")
		}

		var resultText strings.Builder
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				resultText.WriteString(part.Text)
			}
		}

		if resultText.Len() == 0 {
			return "", errors.AI("Complete", "no text in response from Gemini model")
		}

		return strings.TrimSpace(resultText.String()), nil
	})

	if err != nil {
		return "", errors.AIWrapSafe(err, "Complete", "completion request failed")
	}

	return result, nil
}
