// Package cli provides the command-line interface for apidrift.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apidrift/apidrift/internal/config"
)

var (
	// Version information set by main.
	versionInfo struct {
		Version string
		Commit  string
		Date    string
	}

	// Global flags
	cfgFile    string
	verbose    bool
	outputJSON bool
	noColor    bool
	logLevel   string
	modelFlag  string // --model flag for AI provider/model selection
	ciMode     bool   // --ci flag: non-interactive, JSON output

	// Global config
	cfg *config.Config

	// Logger
	logger *log.Logger

	// Styles
	styles = struct {
		Title    lipgloss.Style
		Success  lipgloss.Style
		Error    lipgloss.Style
		Warning  lipgloss.Style
		Info     lipgloss.Style
		Subtle   lipgloss.Style
		Bold     lipgloss.Style
		Critical lipgloss.Style
	}{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Subtle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Bold:     lipgloss.NewStyle().Bold(true),
		Critical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
)

// SetVersionInfo sets the version information from main.
func SetVersionInfo(version, commit, date string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.Date = date
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "apidrift",
	Short: "API surface extraction and breaking-change detection for TypeScript/JavaScript",
	Long: `apidrift extracts the exported API surface of TypeScript and JavaScript
files and detects breaking changes between two versions.

It classifies every change, ranks its severity, suggests a semantic
version bump, and cross-references your documentation to show what
needs updating. An optional AI enhancer finds behavioral breaking
changes the static diff cannot see.

Key features:
  • Exported function, interface, type alias and re-export extraction
  • Classified breaking-change diff with migration hints
  • Deterministic semver bump suggestions
  • Documentation impact analysis
  • Optional LLM-powered behavioral analysis

Get started with 'apidrift init' to set up your project.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init and version work without a loaded config
		if cmd.Name() == "init" || cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		return initConfig()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a context for graceful shutdown.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		ReportCaller:    false,
	})

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: .apidrift.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output results as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "AI model to use (format: provider/model, e.g., ollama/llama3.2, openai/gpt-4, anthropic/claude-sonnet-4)")
	rootCmd.PersistentFlags().BoolVar(&ciMode, "ci", false, "CI mode: JSON output, no colors, non-interactive")

	viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("output.log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(docsImpactCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(reportsCmd)
}

// loadAndValidateConfig loads and validates the configuration.
func loadAndValidateConfig() error {
	loader := config.NewLoader()

	if cfgFile != "" {
		loader.WithConfigPath(cfgFile)
	}

	var err error
	cfg, err = loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	return nil
}

// applyGlobalFlags applies global CLI flags to the configuration.
func applyGlobalFlags() {
	if verbose {
		cfg.Output.Verbose = true
	}

	if noColor {
		cfg.Output.Color = false
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// applyModelFlag applies the --model flag to the configuration.
func applyModelFlag() {
	if modelFlag == "" {
		return
	}

	provider, model := parseModelFlag(modelFlag)
	if provider != "" {
		cfg.AI.Provider = provider
		cfg.AI.Enabled = true
	}
	if model != "" {
		cfg.AI.Model = model
	}
}

// applyCIModeFlag applies the --ci flag settings.
func applyCIModeFlag() {
	if !ciMode {
		return
	}

	outputJSON = true
	noColor = true
	lipgloss.SetColorProfile(termenv.Ascii)
}

// configureLoggerFormat configures the logger format based on settings.
func configureLoggerFormat() {
	if outputJSON || cfg.Output.Format == "json" {
		logger.SetFormatter(log.JSONFormatter)
		logger.SetReportTimestamp(true)
		logger.SetReportCaller(true)
	} else if !cfg.Output.Color || noColor {
		logger.SetFormatter(log.TextFormatter)
	}
}

// configureLogLevel sets the logger level based on configuration.
func configureLogLevel() {
	switch cfg.Output.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	if cfg.Output.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	if err := loadAndValidateConfig(); err != nil {
		return err
	}

	applyGlobalFlags()
	applyModelFlag()
	applyCIModeFlag()

	configureLoggerFormat()
	configureLogLevel()

	return nil
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("apidrift %s\n", versionInfo.Version)
		if verbose {
			fmt.Printf("  commit: %s\n", versionInfo.Commit)
			fmt.Printf("  built:  %s\n", versionInfo.Date)
		}
	},
}

// Helper functions for output

func printSuccess(msg string) {
	fmt.Println(styles.Success.Render("✓ " + msg))
}

func printError(msg string) {
	fmt.Println(styles.Error.Render("✗ " + msg))
}

func printWarning(msg string) {
	fmt.Println(styles.Warning.Render("⚠ " + msg))
}

func printInfo(msg string) {
	fmt.Println(styles.Info.Render("ℹ " + msg))
}

func printTitle(msg string) {
	fmt.Println(styles.Title.Render(msg))
}

func printSubtle(msg string) {
	fmt.Println(styles.Subtle.Render(msg))
}

// parseModelFlag parses the --model flag in the format provider/model.
// Supported formats:
//   - "provider/model" (e.g., "ollama/llama3.2", "openai/gpt-4")
//   - "local/model" (alias for "ollama/model")
//   - "model" (uses default provider from config)
//
// Returns the provider and model name.
func parseModelFlag(flag string) (provider, model string) {
	flag = strings.TrimSpace(flag)
	if flag == "" {
		return "", ""
	}

	parts := strings.SplitN(flag, "/", 2)
	if len(parts) == 2 {
		provider = strings.ToLower(parts[0])
		model = parts[1]

		// "local" is an alias for "ollama"
		if provider == "local" {
			provider = "ollama"
		}
	} else {
		model = flag
	}

	return provider, model
}
