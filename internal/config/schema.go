// Package config provides configuration management for apidrift.
package config

import (
	"time"
)

// ConfigFileNames are the base names searched for configuration files.
var ConfigFileNames = []string{".apidrift", "apidrift"}

// ConfigFileExtensions are the supported config file extensions.
var ConfigFileExtensions = []string{"yaml", "yml", "json"}

// Config is the root configuration for apidrift.
type Config struct {
	// Analysis configures surface extraction and diffing.
	Analysis AnalysisConfig `mapstructure:"analysis" json:"analysis"`
	// Docs configures documentation impact analysis.
	Docs DocsConfig `mapstructure:"docs" json:"docs"`
	// AI configures the behavioral change enhancer.
	AI AIConfig `mapstructure:"ai" json:"ai"`
	// Output configures CLI output.
	Output OutputConfig `mapstructure:"output" json:"output"`
	// Storage configures report persistence.
	Storage StorageConfig `mapstructure:"storage" json:"storage"`
}

// AnalysisConfig configures surface extraction and diffing.
type AnalysisConfig struct {
	// Include lists glob patterns of source files to analyze.
	Include []string `mapstructure:"include" json:"include,omitempty"`
	// Exclude lists glob patterns of source files to skip.
	Exclude []string `mapstructure:"exclude" json:"exclude,omitempty"`
	// MaxFileSize is the largest source file analyzed, in bytes.
	MaxFileSize int64 `mapstructure:"max_file_size" json:"max_file_size"`
	// FailOn gates CI: "critical", "major", "any", or "never".
	FailOn string `mapstructure:"fail_on" json:"fail_on"`
}

// DocsConfig configures documentation impact analysis.
type DocsConfig struct {
	// Enabled toggles documentation impact analysis.
	Enabled bool `mapstructure:"enabled" json:"enabled"`
	// Path is the documentation directory to scan.
	Path string `mapstructure:"path" json:"path"`
}

// AIConfig configures the behavioral change enhancer.
type AIConfig struct {
	// Enabled indicates whether the AI enhancer is enabled.
	Enabled bool `mapstructure:"enabled" json:"enabled"`
	// Provider is the AI provider (openai, ollama, anthropic, gemini, azure-openai).
	Provider string `mapstructure:"provider" json:"provider"`
	// Model is the model to use. For Azure OpenAI, use your deployment name.
	Model string `mapstructure:"model" json:"model"`
	// APIKey is the API key (supports environment variable expansion).
	APIKey string `mapstructure:"api_key" json:"api_key,omitempty"`
	// BaseURL is the API base URL (for custom endpoints).
	// For Ollama, defaults to "http://localhost:11434/v1".
	BaseURL string `mapstructure:"base_url" json:"base_url,omitempty"`
	// APIVersion is the API version (required for Azure OpenAI).
	APIVersion string `mapstructure:"api_version" json:"api_version,omitempty"`
	// MaxTokens is the maximum tokens for AI responses.
	MaxTokens int `mapstructure:"max_tokens" json:"max_tokens"`
	// Temperature controls randomness (0.0-2.0).
	Temperature float64 `mapstructure:"temperature" json:"temperature"`
	// Timeout is the request timeout in seconds.
	Timeout int `mapstructure:"timeout" json:"timeout"`
	// RetryAttempts is the number of retries for failed requests.
	RetryAttempts int `mapstructure:"retry_attempts" json:"retry_attempts"`
	// RateLimitRPM is the request rate limit per minute (0 = no limit).
	RateLimitRPM int `mapstructure:"rate_limit_rpm" json:"rate_limit_rpm"`
}

// TimeoutDuration returns the AI timeout as a duration.
func (a *AIConfig) TimeoutDuration() time.Duration {
	return time.Duration(a.Timeout) * time.Second
}

// OutputConfig configures CLI output.
type OutputConfig struct {
	// Format is the output format (text, json).
	Format string `mapstructure:"format" json:"format"`
	// Color enables colored output.
	Color bool `mapstructure:"color" json:"color"`
	// Verbose enables verbose output.
	Verbose bool `mapstructure:"verbose" json:"verbose"`
	// Quiet suppresses non-essential output.
	Quiet bool `mapstructure:"quiet" json:"quiet"`
	// LogLevel is the log level (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level" json:"log_level"`
}

// StorageConfig configures report persistence.
type StorageConfig struct {
	// Enabled toggles saving analysis reports.
	Enabled bool `mapstructure:"enabled" json:"enabled"`
	// Path is the directory reports are stored in.
	Path string `mapstructure:"path" json:"path"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Include:     []string{"**/*.ts", "**/*.tsx", "**/*.js", "**/*.mjs"},
			Exclude:     []string{"**/node_modules/**", "**/*.test.*", "**/*.spec.*", "**/dist/**"},
			MaxFileSize: 10 << 20,
			FailOn:      "major",
		},
		Docs: DocsConfig{
			Enabled: true,
			Path:    "docs",
		},
		AI: AIConfig{
			Enabled:       false,
			Provider:      "openai",
			Model:         "gpt-4",
			MaxTokens:     2048,
			Temperature:   0.2,
			Timeout:       30,
			RetryAttempts: 3,
			RateLimitRPM:  60,
		},
		Output: OutputConfig{
			Format:   "text",
			Color:    true,
			LogLevel: "info",
		},
		Storage: StorageConfig{
			Enabled: false,
			Path:    ".apidrift/reports",
		},
	}
}
