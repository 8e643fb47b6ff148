package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apidrift/apidrift/internal/analyzer"
	"github.com/apidrift/apidrift/internal/docs"
	"github.com/apidrift/apidrift/internal/domain/change"
	"github.com/apidrift/apidrift/internal/fileutil"
	"github.com/apidrift/apidrift/internal/infrastructure/ai"
	"github.com/apidrift/apidrift/internal/infrastructure/persistence"
)

var (
	analyzeDocsPath       string
	analyzeUseAI          bool
	analyzePRTitle        string
	analyzePRBody         string
	analyzeSave           bool
	analyzeCurrentVersion string
	analyzeFailOn         string
	analyzeLabel          string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze OLD_FILE NEW_FILE",
	Short: "Detect breaking changes between two versions of a source file",
	Long: `Analyze two versions of a TypeScript or JavaScript file and report
breaking changes, a suggested version bump, and affected documentation.

The exit status reflects the configured gate (analysis.fail_on): the
command fails when the report crosses the gate, so it can guard CI.`,
	Args: cobra.ExactArgs(2),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeDocsPath, "docs", "", "documentation directory to cross-reference (overrides config)")
	analyzeCmd.Flags().BoolVar(&analyzeUseAI, "ai", false, "run the AI behavioral enhancer (requires a configured provider)")
	analyzeCmd.Flags().StringVar(&analyzePRTitle, "pr-title", "", "pull request title, passed to the AI enhancer as context")
	analyzeCmd.Flags().StringVar(&analyzePRBody, "pr-body", "", "pull request description, passed to the AI enhancer as context")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "persist the report to the report store")
	analyzeCmd.Flags().StringVar(&analyzeCurrentVersion, "current-version", "", "current semantic version; prints the suggested next version")
	analyzeCmd.Flags().StringVar(&analyzeFailOn, "fail-on", "", "CI gate: critical, major, any, or never (overrides config)")
	analyzeCmd.Flags().StringVar(&analyzeLabel, "label", "", "file path recorded in the report (defaults to NEW_FILE)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	oldPath, newPath := args[0], args[1]

	oldCode, err := fileutil.ReadFileLimited(oldPath, cfg.Analysis.MaxFileSize)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", oldPath, err)
	}
	newCode, err := fileutil.ReadFileLimited(newPath, cfg.Analysis.MaxFileSize)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", newPath, err)
	}

	corpus, err := loadDocsCorpus()
	if err != nil {
		return err
	}

	a, err := buildAnalyzer()
	if err != nil {
		return err
	}

	label := analyzeLabel
	if label == "" {
		label = newPath
	}

	req := analyzer.Request{
		OldCode:  string(oldCode),
		NewCode:  string(newCode),
		FilePath: label,
		PRTitle:  analyzePRTitle,
		PRBody:   analyzePRBody,
		Docs:     corpus,
	}

	var report *change.Report
	if useAI() {
		report = a.AnalyzeWithAI(ctx, req)
	} else {
		report = a.Analyze(req)
	}

	if analyzeSave || cfg.Storage.Enabled {
		if err := saveReport(ctx, label, oldPath, newPath, report); err != nil {
			return err
		}
	}

	if err := renderReport(report); err != nil {
		return err
	}

	return applyFailGate(report)
}

// useAI reports whether the enhancer should run for this invocation.
func useAI() bool {
	return analyzeUseAI || cfg.AI.Enabled
}

// loadDocsCorpus loads the documentation corpus per flags and config.
// A missing docs directory is not an error unless explicitly requested.
func loadDocsCorpus() (*docs.Corpus, error) {
	path := analyzeDocsPath
	explicit := path != ""
	if path == "" {
		if !cfg.Docs.Enabled {
			return nil, nil
		}
		path = cfg.Docs.Path
	}

	if _, err := os.Stat(path); err != nil {
		if explicit {
			return nil, fmt.Errorf("documentation directory %s: %w", path, err)
		}
		logger.Debug("documentation directory not found, skipping impact analysis", "path", path)
		return nil, nil
	}

	corpus, err := docs.LoadCorpus(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded documentation corpus", "path", path, "documents", corpus.Len())
	return corpus, nil
}

// buildAnalyzer wires the analyzer with the configured AI service.
func buildAnalyzer() (*analyzer.Analyzer, error) {
	opts := []analyzer.Option{analyzer.WithLogger(logger)}

	if useAI() {
		svc, err := ai.NewService(
			ai.WithProvider(cfg.AI.Provider),
			ai.WithAPIKey(cfg.AI.APIKey),
			ai.WithBaseURL(cfg.AI.BaseURL),
			ai.WithAPIVersion(cfg.AI.APIVersion),
			ai.WithModel(cfg.AI.Model),
			ai.WithMaxTokens(cfg.AI.MaxTokens),
			ai.WithTemperature(cfg.AI.Temperature),
			ai.WithTimeout(cfg.AI.TimeoutDuration()),
			ai.WithRetryAttempts(cfg.AI.RetryAttempts),
			ai.WithRateLimit(cfg.AI.RateLimitRPM),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to configure AI service: %w", err)
		}
		if !svc.IsAvailable() {
			printWarning("AI requested but no provider is configured; running static analysis only")
		}
		opts = append(opts, analyzer.WithAI(svc))
	}

	return analyzer.New(opts...), nil
}

// saveReport persists the report to the configured store.
func saveReport(ctx context.Context, label, oldPath, newPath string, report *change.Report) error {
	repo, err := persistence.NewFileReportRepository(cfg.Storage.Path)
	if err != nil {
		return err
	}

	stored := &persistence.StoredReport{
		FilePath:   label,
		OldVersion: oldPath,
		NewVersion: newPath,
		Report:     report,
	}
	if err := repo.Save(ctx, stored); err != nil {
		return err
	}
	logger.Info("report saved", "id", stored.ID, "path", cfg.Storage.Path)
	return nil
}

// applyFailGate turns the report into an exit error per analysis.fail_on.
func applyFailGate(report *change.Report) error {
	gate := analyzeFailOn
	if gate == "" {
		gate = cfg.Analysis.FailOn
	}

	switch gate {
	case "never":
		return nil
	case "any":
		if report.HasBreakingChanges || len(report.NonBreakingChanges) > 0 {
			return fmt.Errorf("%d change(s) detected", len(report.BreakingChanges)+len(report.NonBreakingChanges))
		}
	case "critical":
		if n := report.CriticalCount(); n > 0 {
			return fmt.Errorf("%d critical breaking change(s) detected", n)
		}
	default: // "major"
		if report.HasBreakingChanges {
			return fmt.Errorf("%d breaking change(s) detected", len(report.BreakingChanges))
		}
	}
	return nil
}

// renderReport prints the report as JSON or styled text.
func renderReport(report *change.Report) error {
	if outputJSON || cfg.Output.Format == "json" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	renderTextReport(report)
	return nil
}

// renderTextReport prints the human-readable report.
func renderTextReport(report *change.Report) {
	printTitle("API Change Report")
	fmt.Println()

	if !report.HasBreakingChanges && len(report.NonBreakingChanges) == 0 {
		printSuccess("No API changes detected")
	}

	if report.HasBreakingChanges {
		printError(fmt.Sprintf("%d breaking change(s)", len(report.BreakingChanges)))
		for i := range report.BreakingChanges {
			c := &report.BreakingChanges[i]
			marker := styles.Warning.Render(string(c.Severity))
			if c.Severity == change.SeverityCritical {
				marker = styles.Critical.Render(string(c.Severity))
			}
			fmt.Printf("  [%s] %s\n", marker, c.Description)
			if c.LineNumber > 0 {
				printSubtle(fmt.Sprintf("      at %s:%d", c.FilePath, c.LineNumber))
			}
			if c.MigrationHint != "" {
				printSubtle("      hint: " + c.MigrationHint)
			}
			for _, doc := range c.AffectedDocumentation {
				printSubtle("      docs: " + doc)
			}
		}
		fmt.Println()
	}

	if len(report.NonBreakingChanges) > 0 {
		printInfo(fmt.Sprintf("%d non-breaking change(s)", len(report.NonBreakingChanges)))
		for _, s := range report.NonBreakingChanges {
			fmt.Printf("  • %s\n", s)
		}
		fmt.Println()
	}

	if len(report.AffectedDocumentation) > 0 {
		printWarning("Documentation mentioning changed symbols:")
		for _, doc := range report.AffectedDocumentation {
			fmt.Printf("  • %s\n", doc)
		}
		fmt.Println()
	}

	fmt.Printf("%s %s\n", styles.Bold.Render("Suggested version bump:"), string(report.SuggestedVersionBump))

	if analyzeCurrentVersion != "" {
		next, err := change.NextVersion(analyzeCurrentVersion, report.SuggestedVersionBump)
		if err != nil {
			printWarning(err.Error())
		} else {
			fmt.Printf("%s %s → %s\n", styles.Bold.Render("Next version:"), analyzeCurrentVersion, next)
		}
	}

	if report.MigrationGuide != "" {
		fmt.Println()
		printTitle("Migration Guide")
		fmt.Println(report.MigrationGuide)
	}
}
