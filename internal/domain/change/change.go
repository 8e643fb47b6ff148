// Package change provides domain types for classified API surface
// differences: the breaking-change taxonomy, severities, reports and the
// suggested version bump policy they feed.
package change

import (
	"fmt"
	"strings"
)

// Type is the closed taxonomy of structural API changes.
type Type string

const (
	// TypeFunctionRemoved indicates an exported function disappeared.
	TypeFunctionRemoved Type = "function_removed"
	// TypeFunctionSignatureChanged indicates a function signature changed.
	TypeFunctionSignatureChanged Type = "function_signature_changed"
	// TypeParameterAddedRequired indicates a new required parameter.
	TypeParameterAddedRequired Type = "parameter_added_required"
	// TypeParameterRemoved indicates a parameter disappeared.
	TypeParameterRemoved Type = "parameter_removed"
	// TypeParameterTypeChanged indicates a parameter type changed.
	TypeParameterTypeChanged Type = "parameter_type_changed"
	// TypeReturnTypeChanged indicates a return type changed.
	TypeReturnTypeChanged Type = "return_type_changed"
	// TypeInterfaceRemoved indicates an exported interface disappeared.
	TypeInterfaceRemoved Type = "interface_removed"
	// TypeInterfacePropertyRemoved indicates an interface property disappeared.
	TypeInterfacePropertyRemoved Type = "interface_property_removed"
	// TypeInterfacePropertyTypeChanged indicates a property type changed.
	TypeInterfacePropertyTypeChanged Type = "interface_property_type_changed"
	// TypeInterfacePropertyRequired indicates an optional property became required.
	TypeInterfacePropertyRequired Type = "interface_property_required"
	// TypeTypeRemoved indicates an exported type alias disappeared.
	TypeTypeRemoved Type = "type_removed"
	// TypeTypeChanged indicates a type alias definition changed.
	TypeTypeChanged Type = "type_changed"
	// TypeExportRemoved indicates a named re-export disappeared.
	TypeExportRemoved Type = "export_removed"
)

// String returns the string representation of the change type.
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the change type is part of the taxonomy.
func (t Type) IsValid() bool {
	switch t {
	case TypeFunctionRemoved, TypeFunctionSignatureChanged,
		TypeParameterAddedRequired, TypeParameterRemoved,
		TypeParameterTypeChanged, TypeReturnTypeChanged,
		TypeInterfaceRemoved, TypeInterfacePropertyRemoved,
		TypeInterfacePropertyTypeChanged, TypeInterfacePropertyRequired,
		TypeTypeRemoved, TypeTypeChanged, TypeExportRemoved:
		return true
	default:
		return false
	}
}

// Severity classifies how disruptive a change is for existing callers.
type Severity string

const (
	// SeverityCritical marks removed symbols.
	SeverityCritical Severity = "critical"
	// SeverityMajor marks changed signatures or types.
	SeverityMajor Severity = "major"
	// SeverityMinor marks cosmetic or non-breaking changes.
	SeverityMinor Severity = "minor"
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// IsValid returns true if the severity is recognized.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityMajor, SeverityMinor:
		return true
	default:
		return false
	}
}

// ParseSeverity parses a string into a Severity.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	if !sev.IsValid() {
		return "", fmt.Errorf("invalid severity: %q", s)
	}
	return sev, nil
}

// BreakingChange is a single classified difference between two API
// surfaces. Instances are derived per diff call and never mutated after
// enrichment.
type BreakingChange struct {
	// Type is the taxonomy kind of the change.
	Type Type `json:"type"`
	// Name identifies the changed symbol. Nested members use dotted
	// names, e.g. "Config.timeout" or "fetchUser.id".
	Name string `json:"name"`
	// Description is a human-readable sentence describing the change.
	Description string `json:"description"`
	// FilePath is the analyzed file.
	FilePath string `json:"filePath"`
	// LineNumber is the 1-based line of the changed declaration, taken
	// from the new surface when available, else the old one.
	LineNumber int `json:"lineNumber"`
	// Severity classifies the disruption level.
	Severity Severity `json:"severity"`
	// PreviousValue snapshots the old shape, where applicable.
	PreviousValue string `json:"previousValue,omitempty"`
	// CurrentValue snapshots the new shape, where applicable.
	CurrentValue string `json:"currentValue,omitempty"`
	// MigrationHint is an actionable imperative for affected callers.
	MigrationHint string `json:"migrationHint,omitempty"`
	// AffectedDocumentation lists documentation paths mentioning the
	// changed symbol, filled by the documentation-impact analyzer.
	AffectedDocumentation []string `json:"affectedDocumentation,omitempty"`
}

// SearchTerms returns the documentation search-term set for the change:
// the full name plus each dot-separated segment, so "Foo.bar" also
// matches docs that mention only "Foo" or only "bar".
func (c *BreakingChange) SearchTerms() []string {
	terms := []string{c.Name}
	if strings.Contains(c.Name, ".") {
		for _, part := range strings.Split(c.Name, ".") {
			if part != "" {
				terms = append(terms, part)
			}
		}
	}
	return terms
}
