package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apidrift/apidrift/internal/analyzer"
	"github.com/apidrift/apidrift/internal/fileutil"
)

var docsImpactCmd = &cobra.Command{
	Use:   "docs-impact OLD_FILE NEW_FILE",
	Short: "List documentation affected by API changes between two file versions",
	Long: `Run the static breaking-change analysis and report only the
documentation files that mention the changed symbols. Useful for
scoping a docs review before merging an API change.`,
	Args: cobra.ExactArgs(2),
	RunE: runDocsImpact,
}

func init() {
	docsImpactCmd.Flags().StringVar(&analyzeDocsPath, "docs", "", "documentation directory to cross-reference (overrides config)")
}

func runDocsImpact(cmd *cobra.Command, args []string) error {
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
	if corpus.Len() == 0 {
		return fmt.Errorf("no documentation found (set docs.path or pass --docs)")
	}

	a := analyzer.New(analyzer.WithLogger(logger))
	report := a.Analyze(analyzer.Request{
		OldCode:  string(oldCode),
		NewCode:  string(newCode),
		FilePath: newPath,
		Docs:     corpus,
	})

	if outputJSON || cfg.Output.Format == "json" {
		data, err := json.MarshalIndent(map[string]any{
			"affectedDocumentation": report.AffectedDocumentation,
			"breakingChanges":       len(report.BreakingChanges),
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(report.AffectedDocumentation) == 0 {
		printSuccess("No documentation mentions the changed symbols")
		return nil
	}

	printWarning(fmt.Sprintf("%d documentation file(s) mention changed symbols:", len(report.AffectedDocumentation)))
	for _, doc := range report.AffectedDocumentation {
		fmt.Printf("  • %s\n", doc)
	}
	return nil
}
