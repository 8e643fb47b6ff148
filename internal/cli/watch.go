package cli

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/apidrift/apidrift/internal/analyzer"
	"github.com/apidrift/apidrift/internal/fileutil"
)

// watchDebounce coalesces bursts of filesystem events into one re-run.
const watchDebounce = 300 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch BASELINE_FILE WATCHED_FILE",
	Short: "Re-analyze a file against a baseline on every change",
	Long: `Watch a source file and re-run the breaking-change analysis against a
fixed baseline whenever it changes. Useful while refactoring a public
module: the report updates live as you edit.

The watcher never fails the process on breaking changes; it only
reports them. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(2),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	baselinePath, watchedPath := args[0], args[1]

	baseline, err := fileutil.ReadFileLimited(baselinePath, cfg.Analysis.MaxFileSize)
	if err != nil {
		return err
	}

	corpus, err := loadDocsCorpus()
	if err != nil {
		return err
	}

	a, err := buildAnalyzer()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors replace files on save, which drops
	// a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(watchedPath)); err != nil {
		return err
	}

	analyze := func() {
		current, err := fileutil.ReadFileLimited(watchedPath, cfg.Analysis.MaxFileSize)
		if err != nil {
			logger.Warn("failed to read watched file", "path", watchedPath, "error", err)
			return
		}

		req := analyzer.Request{
			OldCode:  string(baseline),
			NewCode:  string(current),
			FilePath: watchedPath,
			Docs:     corpus,
		}

		report := a.Analyze(req)
		renderTextReport(report)
	}

	printInfo("Watching " + watchedPath + " against baseline " + baselinePath)
	analyze()

	var debounce *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pending:
			analyze()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(watchedPath) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}
