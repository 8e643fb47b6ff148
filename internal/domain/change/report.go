package change

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Bump is the suggested semantic version bump for a report.
type Bump string

const (
	// BumpMajor indicates breaking changes.
	BumpMajor Bump = "major"
	// BumpMinor indicates additive, non-breaking changes.
	BumpMinor Bump = "minor"
	// BumpPatch indicates no surface-visible changes.
	BumpPatch Bump = "patch"
	// BumpNone indicates nothing at all was found to report.
	BumpNone Bump = "none"
)

// String returns the string representation of the bump.
func (b Bump) String() string {
	return string(b)
}

// IsValid returns true if the bump is recognized.
func (b Bump) IsValid() bool {
	switch b {
	case BumpMajor, BumpMinor, BumpPatch, BumpNone:
		return true
	default:
		return false
	}
}

// ParseBump parses a string into a Bump.
func ParseBump(s string) (Bump, error) {
	b := Bump(strings.ToLower(strings.TrimSpace(s)))
	if !b.IsValid() {
		return "", fmt.Errorf("invalid version bump: %q", s)
	}
	return b, nil
}

// Report is the full result of analyzing two versions of a file.
// Downstream consumers (changelog generation, PR gating, documentation
// impact) depend on SuggestedVersionBump being deterministic.
type Report struct {
	// HasBreakingChanges is true when at least one breaking change exists.
	HasBreakingChanges bool `json:"hasBreakingChanges"`
	// BreakingChanges lists all breaking changes, enriched with severity
	// and migration hints.
	BreakingChanges []BreakingChange `json:"breakingChanges"`
	// NonBreakingChanges lists additive or behavioral findings that do not
	// break existing callers.
	NonBreakingChanges []string `json:"nonBreakingChanges"`
	// SuggestedVersionBump is the deterministic semver bump suggestion.
	SuggestedVersionBump Bump `json:"suggestedVersionBump"`
	// AffectedDocumentation lists documentation paths mentioning any
	// changed symbol, deduplicated in first-match order.
	AffectedDocumentation []string `json:"affectedDocumentation"`
	// MigrationGuide is optional markdown produced by the behavioral
	// enhancer; empty on static-only reports.
	MigrationGuide string `json:"migrationGuide,omitempty"`
}

// SuggestBump computes the version bump for a set of findings.
//
// Policy: any critical change suggests a major bump; any breaking change
// at all suggests major; only non-breaking findings suggest minor; no
// findings suggest patch. BumpNone is reserved for the case where even
// the enhancer found nothing to report.
func SuggestBump(breaking []BreakingChange, nonBreaking []string) Bump {
	for _, c := range breaking {
		if c.Severity == SeverityCritical {
			return BumpMajor
		}
	}
	if len(breaking) > 0 {
		return BumpMajor
	}
	if len(nonBreaking) > 0 {
		return BumpMinor
	}
	return BumpPatch
}

// NewReport assembles a report from findings, applying the bump policy.
func NewReport(breaking []BreakingChange, nonBreaking []string) *Report {
	if breaking == nil {
		breaking = []BreakingChange{}
	}
	if nonBreaking == nil {
		nonBreaking = []string{}
	}
	return &Report{
		HasBreakingChanges:    len(breaking) > 0,
		BreakingChanges:       breaking,
		NonBreakingChanges:    nonBreaking,
		SuggestedVersionBump:  SuggestBump(breaking, nonBreaking),
		AffectedDocumentation: []string{},
	}
}

// CriticalCount returns the number of critical-severity changes.
func (r *Report) CriticalCount() int {
	n := 0
	for _, c := range r.BreakingChanges {
		if c.Severity == SeverityCritical {
			n++
		}
	}
	return n
}

// NextVersion applies a suggested bump to a current semantic version and
// returns the resulting version string. BumpNone returns the current
// version unchanged.
func NextVersion(current string, bump Bump) (string, error) {
	v, err := semver.NewVersion(current)
	if err != nil {
		return "", fmt.Errorf("invalid current version %q: %w", current, err)
	}

	var next semver.Version
	switch bump {
	case BumpMajor:
		next = v.IncMajor()
	case BumpMinor:
		next = v.IncMinor()
	case BumpPatch:
		next = v.IncPatch()
	case BumpNone:
		next = *v
	default:
		return "", fmt.Errorf("invalid version bump: %q", bump)
	}

	return next.String(), nil
}
