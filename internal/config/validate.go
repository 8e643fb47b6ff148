package config

import (
	"fmt"

	aderrors "github.com/apidrift/apidrift/internal/errors"
)

// validFailOn lists the accepted CI gating modes.
var validFailOn = map[string]bool{
	"critical": true,
	"major":    true,
	"any":      true,
	"never":    true,
}

// validProviders lists the accepted AI providers.
var validProviders = map[string]bool{
	"openai":       true,
	"azure-openai": true,
	"anthropic":    true,
	"claude":       true,
	"gemini":       true,
	"ollama":       true,
}

// validOutputFormats lists the accepted output formats.
var validOutputFormats = map[string]bool{
	"text": true,
	"json": true,
}

// validLogLevels lists the accepted log levels.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	const op = "config.Validate"

	if !validFailOn[c.Analysis.FailOn] {
		return aderrors.Config(op, fmt.Sprintf("invalid analysis.fail_on %q (want critical, major, any, or never)", c.Analysis.FailOn))
	}
	if c.Analysis.MaxFileSize <= 0 {
		return aderrors.Config(op, "analysis.max_file_size must be positive")
	}

	if c.AI.Enabled {
		if !validProviders[c.AI.Provider] {
			return aderrors.Config(op, fmt.Sprintf("invalid ai.provider %q", c.AI.Provider))
		}
		if c.AI.Provider == "azure-openai" && c.AI.BaseURL == "" {
			return aderrors.Config(op, "ai.base_url is required for azure-openai")
		}
		if c.AI.MaxTokens <= 0 {
			return aderrors.Config(op, "ai.max_tokens must be positive")
		}
		if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
			return aderrors.Config(op, "ai.temperature must be between 0.0 and 2.0")
		}
		if c.AI.Timeout <= 0 {
			return aderrors.Config(op, "ai.timeout must be positive")
		}
		if c.AI.RetryAttempts < 0 {
			return aderrors.Config(op, "ai.retry_attempts must not be negative")
		}
		if c.AI.RateLimitRPM < 0 {
			return aderrors.Config(op, "ai.rate_limit_rpm must not be negative")
		}
	}

	if !validOutputFormats[c.Output.Format] {
		return aderrors.Config(op, fmt.Sprintf("invalid output.format %q (want text or json)", c.Output.Format))
	}
	if !validLogLevels[c.Output.LogLevel] {
		return aderrors.Config(op, fmt.Sprintf("invalid output.log_level %q", c.Output.LogLevel))
	}

	if c.Docs.Enabled && c.Docs.Path == "" {
		return aderrors.Config(op, "docs.path is required when docs impact analysis is enabled")
	}
	if c.Storage.Enabled && c.Storage.Path == "" {
		return aderrors.Config(op, "storage.path is required when report storage is enabled")
	}

	return nil
}
