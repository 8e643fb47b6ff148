package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	aderrors "github.com/apidrift/apidrift/internal/errors"
)

// Pre-compiled regex patterns for environment variable expansion.
var (
	// envVarPattern matches ${VAR} or ${VAR:-default} syntax
	envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)
	// simpleEnvVarPattern matches $VAR syntax
	simpleEnvVarPattern = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// Loader handles configuration loading and merging.
type Loader struct {
	v           *viper.Viper
	configPath  string
	searchPaths []string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix("APIDRIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return &Loader{
		v:           v,
		searchPaths: []string{"."},
	}
}

// WithConfigPath sets an explicit config file path.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithSearchPaths adds directories to search for config files.
func (l *Loader) WithSearchPaths(paths ...string) *Loader {
	l.searchPaths = append(l.searchPaths, paths...)
	return l
}

// Load loads the configuration: defaults, then file, then environment,
// then env-var expansion of sensitive fields.
func (l *Loader) Load() (*Config, error) {
	const op = "config.Load"

	l.setDefaults()

	// Zero-config AI: detect provider keys in the environment when no
	// config file pins a provider.
	if !l.configFileExists() {
		l.autoDetectAI()
	}

	if err := l.loadConfigFile(); err != nil {
		return nil, aderrors.ConfigWrap(err, op, "failed to load config file")
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, aderrors.ConfigWrap(err, op, "failed to unmarshal config")
	}

	l.expandEnvVars(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults sets default values using Viper.
func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("analysis.include", defaults.Analysis.Include)
	l.v.SetDefault("analysis.exclude", defaults.Analysis.Exclude)
	l.v.SetDefault("analysis.max_file_size", defaults.Analysis.MaxFileSize)
	l.v.SetDefault("analysis.fail_on", defaults.Analysis.FailOn)

	l.v.SetDefault("docs.enabled", defaults.Docs.Enabled)
	l.v.SetDefault("docs.path", defaults.Docs.Path)

	l.v.SetDefault("ai.enabled", defaults.AI.Enabled)
	l.v.SetDefault("ai.provider", defaults.AI.Provider)
	l.v.SetDefault("ai.model", defaults.AI.Model)
	l.v.SetDefault("ai.max_tokens", defaults.AI.MaxTokens)
	l.v.SetDefault("ai.temperature", defaults.AI.Temperature)
	l.v.SetDefault("ai.timeout", defaults.AI.Timeout)
	l.v.SetDefault("ai.retry_attempts", defaults.AI.RetryAttempts)
	l.v.SetDefault("ai.rate_limit_rpm", defaults.AI.RateLimitRPM)

	l.v.SetDefault("output.format", defaults.Output.Format)
	l.v.SetDefault("output.color", defaults.Output.Color)
	l.v.SetDefault("output.verbose", defaults.Output.Verbose)
	l.v.SetDefault("output.quiet", defaults.Output.Quiet)
	l.v.SetDefault("output.log_level", defaults.Output.LogLevel)

	l.v.SetDefault("storage.enabled", defaults.Storage.Enabled)
	l.v.SetDefault("storage.path", defaults.Storage.Path)
}

// configFileExists checks if a config file exists in search paths.
func (l *Loader) configFileExists() bool {
	if l.configPath != "" {
		_, err := os.Stat(l.configPath)
		return err == nil
	}

	for _, searchPath := range l.searchPaths {
		for _, name := range ConfigFileNames {
			for _, ext := range ConfigFileExtensions {
				if _, err := os.Stat(filepath.Join(searchPath, name+"."+ext)); err == nil {
					return true
				}
			}
		}
	}

	return false
}

// autoDetectAI detects AI provider API keys in the environment and sets
// sensible defaults, enabling zero-config AI usage.
func (l *Loader) autoDetectAI() {
	detectedProviders := []string{}

	if os.Getenv("OPENAI_API_KEY") != "" {
		detectedProviders = append(detectedProviders, "openai (OPENAI_API_KEY)")
	}
	if os.Getenv("ANTHROPIC_API_KEY") != "" {
		detectedProviders = append(detectedProviders, "anthropic (ANTHROPIC_API_KEY)")
	}
	if os.Getenv("GEMINI_API_KEY") != "" {
		detectedProviders = append(detectedProviders, "gemini (GEMINI_API_KEY)")
	}
	if os.Getenv("AZURE_OPENAI_KEY") != "" && os.Getenv("AZURE_OPENAI_ENDPOINT") != "" {
		detectedProviders = append(detectedProviders, "azure-openai (AZURE_OPENAI_KEY + AZURE_OPENAI_ENDPOINT)")
	}
	if os.Getenv("OLLAMA_HOST") != "" {
		detectedProviders = append(detectedProviders, "ollama (OLLAMA_HOST)")
	}

	if len(detectedProviders) == 0 {
		return
	}

	selectedProvider := ""

	if os.Getenv("OPENAI_API_KEY") != "" {
		l.v.SetDefault("ai.enabled", true)
		l.v.SetDefault("ai.provider", "openai")
		l.v.SetDefault("ai.api_key", "${OPENAI_API_KEY}")
		if l.v.GetString("ai.model") == "" {
			l.v.SetDefault("ai.model", "gpt-4o-mini")
		}
		selectedProvider = "openai"
	} else if os.Getenv("ANTHROPIC_API_KEY") != "" {
		l.v.SetDefault("ai.enabled", true)
		l.v.SetDefault("ai.provider", "anthropic")
		l.v.SetDefault("ai.api_key", "${ANTHROPIC_API_KEY}")
		if l.v.GetString("ai.model") == "" {
			l.v.SetDefault("ai.model", "claude-sonnet-4")
		}
		selectedProvider = "anthropic"
	} else if os.Getenv("GEMINI_API_KEY") != "" {
		l.v.SetDefault("ai.enabled", true)
		l.v.SetDefault("ai.provider", "gemini")
		l.v.SetDefault("ai.api_key", "${GEMINI_API_KEY}")
		if l.v.GetString("ai.model") == "" {
			l.v.SetDefault("ai.model", "gemini-2.0-flash-exp")
		}
		selectedProvider = "gemini"
	} else if os.Getenv("AZURE_OPENAI_KEY") != "" && os.Getenv("AZURE_OPENAI_ENDPOINT") != "" {
		l.v.SetDefault("ai.enabled", true)
		l.v.SetDefault("ai.provider", "azure-openai")
		l.v.SetDefault("ai.api_key", "${AZURE_OPENAI_KEY}")
		l.v.SetDefault("ai.base_url", "${AZURE_OPENAI_ENDPOINT}")
		if l.v.GetString("ai.model") == "" {
			// deployment name must come from the user
			l.v.SetDefault("ai.model", "gpt-4")
		}
		selectedProvider = "azure-openai"
	} else if os.Getenv("OLLAMA_HOST") != "" {
		l.v.SetDefault("ai.enabled", true)
		l.v.SetDefault("ai.provider", "ollama")
		l.v.SetDefault("ai.base_url", "${OLLAMA_HOST}")
		if l.v.GetString("ai.model") == "" {
			l.v.SetDefault("ai.model", "llama3.2")
		}
		selectedProvider = "ollama"
	}

	// These warnings go to stderr directly: they must be visible to CLI
	// users regardless of log level.
	if len(detectedProviders) > 1 && selectedProvider != "" {
		fmt.Fprintf(os.Stderr, `⚠️  Multiple AI provider API keys detected: %s
   Auto-selected '%s' based on priority order.
   To use a different provider, configure ai.provider in your config file.
`, strings.Join(detectedProviders, ", "), selectedProvider)
	}
}

// loadConfigFile loads the configuration file, if any.
func (l *Loader) loadConfigFile() error {
	if l.configPath != "" {
		l.v.SetConfigFile(l.configPath)
		if err := l.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", l.configPath, err)
		}
		return nil
	}

	for _, searchPath := range l.searchPaths {
		for _, name := range ConfigFileNames {
			for _, ext := range ConfigFileExtensions {
				configFile := filepath.Join(searchPath, name+"."+ext)
				if _, err := os.Stat(configFile); err == nil {
					l.v.SetConfigFile(configFile)
					if err := l.v.ReadInConfig(); err != nil {
						return fmt.Errorf("reading config file %s: %w", configFile, err)
					}
					return nil
				}
			}
		}
	}

	// No config file found - defaults apply
	return nil
}

// expandEnvVars expands environment variables in sensitive fields.
func (l *Loader) expandEnvVars(cfg *Config) {
	cfg.AI.APIKey = expandEnvVar(cfg.AI.APIKey)
	cfg.AI.BaseURL = expandEnvVar(cfg.AI.BaseURL)
	cfg.Docs.Path = expandEnvVar(cfg.Docs.Path)
	cfg.Storage.Path = expandEnvVar(cfg.Storage.Path)
}

// expandEnvVar expands environment variables in a string.
// Supports both ${VAR} (with :-default) and $VAR syntax.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		submatch := envVarPattern.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}

		varName := submatch[1]
		defaultValue := ""
		if len(submatch) > 2 {
			defaultValue = submatch[2]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})

	result = simpleEnvVarPattern.ReplaceAllStringFunc(result, func(match string) string {
		varName := match[1:]
		if value := os.Getenv(varName); value != "" {
			return value
		}
		return match
	})

	return result
}

// GetConfigPath returns the path to the loaded config file, if any.
func (l *Loader) GetConfigPath() string {
	return l.v.ConfigFileUsed()
}

// WriteConfig writes a configuration to a file.
func WriteConfig(cfg *Config, path string) error {
	const op = "config.WriteConfig"

	v := viper.New()
	v.Set("analysis", cfg.Analysis)
	v.Set("docs", cfg.Docs)
	v.Set("ai", cfg.AI)
	v.Set("output", cfg.Output)
	v.Set("storage", cfg.Storage)

	if err := v.WriteConfigAs(path); err != nil {
		return aderrors.ConfigWrap(err, op, "failed to write config file")
	}
	return nil
}

// WriteDefaultConfig writes the default configuration to a file.
func WriteDefaultConfig(path string) error {
	return WriteConfig(DefaultConfig(), path)
}

// LoadFromFile loads configuration from a specific file.
func LoadFromFile(path string) (*Config, error) {
	return NewLoader().WithConfigPath(path).Load()
}

// LoadFromDirectory loads configuration from a directory.
func LoadFromDirectory(dir string) (*Config, error) {
	return NewLoader().WithSearchPaths(dir).Load()
}

// FindConfigFile searches for a config file and returns its path.
func FindConfigFile(searchPaths ...string) (string, error) {
	if len(searchPaths) == 0 {
		searchPaths = []string{"."}
	}

	for _, searchPath := range searchPaths {
		for _, name := range ConfigFileNames {
			for _, ext := range ConfigFileExtensions {
				configFile := filepath.Join(searchPath, name+"."+ext)
				if _, err := os.Stat(configFile); err == nil {
					return configFile, nil
				}
			}
		}
	}

	return "", aderrors.NotFound("config.FindConfigFile", "no config file found")
}

// ConfigExists returns true if a config file exists in the given directory.
func ConfigExists(dir string) bool {
	_, err := FindConfigFile(dir)
	return err == nil
}
