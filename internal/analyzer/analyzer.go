// Package analyzer orchestrates surface extraction, breaking-change
// detection, documentation impact and the optional AI behavioral
// enhancer into a single report.
package analyzer

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/apidrift/apidrift/internal/diff"
	"github.com/apidrift/apidrift/internal/docs"
	"github.com/apidrift/apidrift/internal/domain/change"
	"github.com/apidrift/apidrift/internal/errors"
	"github.com/apidrift/apidrift/internal/fileutil"
	"github.com/apidrift/apidrift/internal/infrastructure/ai"
	"github.com/apidrift/apidrift/internal/surface"
)

// Request carries one before/after source pair through an analysis.
type Request struct {
	// OldCode is the previous version of the source file.
	OldCode string
	// NewCode is the current version of the source file.
	NewCode string
	// FilePath identifies the file in change records and prompts.
	FilePath string
	// PRTitle and PRBody give the enhancer change-intent context.
	PRTitle string
	PRBody  string
	// Docs is the documentation corpus for impact analysis; may be nil.
	Docs *docs.Corpus
}

// Analyzer runs API surface analyses. The zero value is unusable; use New.
type Analyzer struct {
	ai     ai.Service
	logger *log.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithAI sets the AI service used by AnalyzeWithAI.
func WithAI(svc ai.Service) Option {
	return func(a *Analyzer) {
		a.ai = svc
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// New creates an Analyzer. Without WithAI, AnalyzeWithAI degrades to
// static analysis.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		ai:     ai.NewNoopService(),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze performs static analysis of a before/after source pair:
// extract both surfaces, diff them, apply the bump policy and
// cross-reference the documentation corpus.
func (a *Analyzer) Analyze(req Request) *change.Report {
	oldSurface := surface.Parse(req.OldCode, req.FilePath)
	newSurface := surface.Parse(req.NewCode, req.FilePath)

	breaking := diff.Detect(oldSurface, newSurface)
	nonBreaking := diff.Additions(oldSurface, newSurface)

	report := change.NewReport(breaking, nonBreaking)

	if req.Docs.Len() > 0 {
		docs.AnnotateChanges(report.BreakingChanges, req.Docs)
		if affected := docs.AnalyzeImpact(report.BreakingChanges, req.Docs); affected != nil {
			report.AffectedDocumentation = affected
		}
	}

	a.logger.Debug("static analysis complete",
		"file", req.FilePath,
		"breaking", len(report.BreakingChanges),
		"nonBreaking", len(report.NonBreakingChanges),
		"bump", report.SuggestedVersionBump)

	return report
}

// AnalyzeWithAI runs the static analysis and then the behavioral
// enhancer. Enhancer failures of any kind degrade silently to the
// static report; a missing or unavailable AI service does the same.
func (a *Analyzer) AnalyzeWithAI(ctx context.Context, req Request) *change.Report {
	report := a.Analyze(req)

	if a.ai == nil || !a.ai.IsAvailable() {
		return report
	}

	enhanced, err := a.enhance(ctx, req, report)
	if err != nil {
		a.logger.Warn("behavioral enhancer unavailable, using static report",
			"file", req.FilePath, "error", errors.RedactSensitive(err.Error()))
		return report
	}
	return enhanced
}

// FilePair names one before/after pair on disk for batch analysis.
type FilePair struct {
	OldPath string
	NewPath string
	// Label overrides the file path recorded in the report; defaults to
	// NewPath.
	Label string
}

// FileResult pairs a report with the file it describes.
type FileResult struct {
	Label  string
	Report *change.Report
}

// maxConcurrentFiles bounds the batch analysis fan-out.
const maxConcurrentFiles = 8

// AnalyzeFiles analyzes multiple before/after pairs concurrently.
// Results keep the order of the input pairs. A file that cannot be read
// fails the whole batch.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, pairs []FilePair, corpus *docs.Corpus, useAI bool) ([]FileResult, error) {
	results := make([]FileResult, len(pairs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFiles)

	for i, pair := range pairs {
		g.Go(func() error {
			oldCode, err := fileutil.ReadFileLimited(pair.OldPath, 0)
			if err != nil {
				return errors.IOWrap(err, "analyzer.AnalyzeFiles", fmt.Sprintf("failed to read %s", pair.OldPath))
			}
			newCode, err := fileutil.ReadFileLimited(pair.NewPath, 0)
			if err != nil {
				return errors.IOWrap(err, "analyzer.AnalyzeFiles", fmt.Sprintf("failed to read %s", pair.NewPath))
			}

			label := pair.Label
			if label == "" {
				label = pair.NewPath
			}

			req := Request{
				OldCode:  string(oldCode),
				NewCode:  string(newCode),
				FilePath: label,
				Docs:     corpus,
			}

			var report *change.Report
			if useAI {
				report = a.AnalyzeWithAI(ctx, req)
			} else {
				report = a.Analyze(req)
			}
			results[i] = FileResult{Label: label, Report: report}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
