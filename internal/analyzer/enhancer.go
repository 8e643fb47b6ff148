package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/apidrift/apidrift/internal/diff"
	"github.com/apidrift/apidrift/internal/docs"
	"github.com/apidrift/apidrift/internal/domain/change"
	"github.com/apidrift/apidrift/internal/errors"
)

// maxPromptCodeChars bounds each code snapshot embedded in the prompt.
const maxPromptCodeChars = 3000

const enhancerSystemPrompt = `You are an expert API compatibility reviewer for TypeScript and JavaScript libraries.
You receive the statically detected API changes between two versions of a source file, plus both versions of the code.
Identify BEHAVIORAL breaking changes the static diff cannot see: changed semantics, stricter validation, different error behavior, reordered side effects.
Respond with a single JSON object and nothing else:
{
  "additionalBreaking": [
    {"type": "function_signature_changed", "name": "symbolName", "description": "...", "severity": "major", "migrationHint": "..."}
  ],
  "nonBreaking": ["..."],
  "migrationGuide": "markdown migration guide, or empty string"
}
Only report findings you are confident about. Empty arrays are a valid answer.`

// aiFinding is one enhancer-reported breaking change.
type aiFinding struct {
	Type          string `json:"type"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Severity      string `json:"severity"`
	MigrationHint string `json:"migrationHint"`
}

// aiResponse is the JSON shape the enhancer prompt asks for.
type aiResponse struct {
	AdditionalBreaking []aiFinding `json:"additionalBreaking"`
	NonBreaking        []string    `json:"nonBreaking"`
	MigrationGuide     string      `json:"migrationGuide"`
}

// enhance asks the model for behavioral findings and merges them into a
// copy of the static report. Any failure is returned to the caller, who
// falls back to the static report.
func (a *Analyzer) enhance(ctx context.Context, req Request, static *change.Report) (*change.Report, error) {
	userPrompt := buildEnhancerPrompt(req, static)

	raw, err := a.ai.Complete(ctx, enhancerSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	payload := extractJSONObject(raw)
	if payload == "" {
		return nil, errors.AI("analyzer.enhance", "no JSON object in model response")
	}

	var resp aiResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return nil, errors.AIWrap(err, "analyzer.enhance", "malformed JSON in model response")
	}

	return mergeFindings(req, static, &resp), nil
}

// buildEnhancerPrompt renders the static findings and both code
// snapshots into the user prompt.
func buildEnhancerPrompt(req Request, static *change.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "File: %s\n", req.FilePath)
	if req.PRTitle != "" {
		fmt.Fprintf(&b, "PR title: %s\n", req.PRTitle)
	}
	if req.PRBody != "" {
		fmt.Fprintf(&b, "PR description:\n%s\n", truncate(req.PRBody, maxPromptCodeChars))
	}

	b.WriteString("\nStatically detected changes:\n")
	if len(static.BreakingChanges) == 0 && len(static.NonBreakingChanges) == 0 {
		b.WriteString("(none)\n")
	}
	for _, c := range static.BreakingChanges {
		fmt.Fprintf(&b, "- [%s/%s] %s\n", c.Type, c.Severity, c.Description)
	}
	for _, s := range static.NonBreakingChanges {
		fmt.Fprintf(&b, "- [non-breaking] %s\n", s)
	}

	fmt.Fprintf(&b, "\nPrevious version:\n```\n%s\n```\n", truncate(req.OldCode, maxPromptCodeChars))
	fmt.Fprintf(&b, "\nCurrent version:\n```\n%s\n```\n", truncate(req.NewCode, maxPromptCodeChars))

	return b.String()
}

// mergeFindings folds enhancer output into a copy of the static report
// and recomputes the bump. When the enhancer ran and nothing at all was
// found, the bump is none rather than patch.
func mergeFindings(req Request, static *change.Report, resp *aiResponse) *change.Report {
	breaking := make([]change.BreakingChange, len(static.BreakingChanges))
	copy(breaking, static.BreakingChanges)

	for _, f := range resp.AdditionalBreaking {
		if f.Name == "" || f.Description == "" {
			continue
		}
		c := change.BreakingChange{
			Type:          change.Type(f.Type),
			Name:          f.Name,
			Description:   f.Description,
			FilePath:      req.FilePath,
			MigrationHint: f.MigrationHint,
		}
		if !c.Type.IsValid() {
			// behavioral findings outside the static taxonomy
			c.Type = change.TypeFunctionSignatureChanged
		}
		if sev, err := change.ParseSeverity(f.Severity); err == nil {
			c.Severity = sev
		} else {
			c.Severity = diff.SeverityFor(c.Type)
		}
		breaking = append(breaking, c)
	}

	nonBreaking := make([]string, len(static.NonBreakingChanges))
	copy(nonBreaking, static.NonBreakingChanges)
	for _, s := range resp.NonBreaking {
		if s = strings.TrimSpace(s); s != "" {
			nonBreaking = append(nonBreaking, s)
		}
	}

	report := change.NewReport(breaking, nonBreaking)
	report.MigrationGuide = strings.TrimSpace(resp.MigrationGuide)
	report.AffectedDocumentation = static.AffectedDocumentation

	if len(breaking) == 0 && len(nonBreaking) == 0 {
		report.SuggestedVersionBump = change.BumpNone
	}

	// enhancer findings may mention symbols the static pass did not
	if req.Docs.Len() > 0 && len(breaking) > len(static.BreakingChanges) {
		docs.AnnotateChanges(report.BreakingChanges, req.Docs)
		if affected := docs.AnalyzeImpact(report.BreakingChanges, req.Docs); affected != nil {
			report.AffectedDocumentation = affected
		}
	}

	return report
}

// extractJSONObject returns the first balanced top-level {...} in s, or
// empty. Models often wrap JSON in prose or code fences; this strips both.
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// truncate cuts s to at most n characters, marking the cut.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "\n... (truncated)"
}
