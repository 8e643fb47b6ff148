package diff

import (
	"fmt"
	"strings"

	"github.com/apidrift/apidrift/internal/domain/change"
)

// severityByType is the deterministic severity mapping: removed symbols
// are critical, everything else in the static taxonomy is major.
var severityByType = map[change.Type]change.Severity{
	change.TypeFunctionRemoved:              change.SeverityCritical,
	change.TypeFunctionSignatureChanged:     change.SeverityMajor,
	change.TypeParameterAddedRequired:       change.SeverityMajor,
	change.TypeParameterRemoved:             change.SeverityMajor,
	change.TypeParameterTypeChanged:         change.SeverityMajor,
	change.TypeReturnTypeChanged:            change.SeverityMajor,
	change.TypeInterfaceRemoved:             change.SeverityCritical,
	change.TypeInterfacePropertyRemoved:     change.SeverityMajor,
	change.TypeInterfacePropertyTypeChanged: change.SeverityMajor,
	change.TypeInterfacePropertyRequired:    change.SeverityMajor,
	change.TypeTypeRemoved:                  change.SeverityCritical,
	change.TypeTypeChanged:                  change.SeverityMajor,
	change.TypeExportRemoved:                change.SeverityCritical,
}

// SeverityFor returns the severity for a change type. Unknown types
// (enhancer-provided findings outside the static taxonomy) default to
// major.
func SeverityFor(t change.Type) change.Severity {
	if sev, ok := severityByType[t]; ok {
		return sev
	}
	return change.SeverityMajor
}

// enrich attaches severity and a migration hint to a change.
func enrich(c change.BreakingChange) change.BreakingChange {
	if c.Severity == "" {
		c.Severity = SeverityFor(c.Type)
	}
	if c.MigrationHint == "" {
		c.MigrationHint = migrationHint(c)
	}
	return c
}

// migrationHint produces an actionable imperative per change kind.
func migrationHint(c change.BreakingChange) string {
	symbol, member := splitName(c.Name)

	switch c.Type {
	case change.TypeFunctionRemoved:
		return fmt.Sprintf("Remove all calls to '%s' or replace them with the documented alternative.", symbol)
	case change.TypeFunctionSignatureChanged:
		return fmt.Sprintf("Update all call sites of '%s' to the new signature.", symbol)
	case change.TypeParameterAddedRequired:
		return fmt.Sprintf("Pass a value for the new '%s' parameter at every call site of '%s'.", member, symbol)
	case change.TypeParameterRemoved:
		return fmt.Sprintf("Stop passing '%s' to '%s'; the argument is no longer accepted.", member, symbol)
	case change.TypeParameterTypeChanged:
		return fmt.Sprintf("Convert the '%s' argument of '%s' from '%s' to '%s' at every call site.", member, symbol, c.PreviousValue, c.CurrentValue)
	case change.TypeReturnTypeChanged:
		return fmt.Sprintf("Update consumers of '%s' to handle the new return type '%s'.", symbol, c.CurrentValue)
	case change.TypeInterfaceRemoved:
		return fmt.Sprintf("Replace usages of interface '%s' with its successor, or inline the shape.", symbol)
	case change.TypeInterfacePropertyRemoved:
		return fmt.Sprintf("Remove reads of '%s' from '%s' values.", member, symbol)
	case change.TypeInterfacePropertyTypeChanged:
		return fmt.Sprintf("Update '%s.%s' producers and consumers from '%s' to '%s'.", symbol, member, c.PreviousValue, c.CurrentValue)
	case change.TypeInterfacePropertyRequired:
		return fmt.Sprintf("Always provide '%s' when constructing '%s' values.", member, symbol)
	case change.TypeTypeRemoved:
		return fmt.Sprintf("Replace references to type '%s' with its successor.", symbol)
	case change.TypeTypeChanged:
		return fmt.Sprintf("Review usages of type '%s' against its new definition.", symbol)
	case change.TypeExportRemoved:
		return fmt.Sprintf("Update imports of '%s'; the name is no longer re-exported from this module.", symbol)
	default:
		return fmt.Sprintf("Review usages of '%s'.", symbol)
	}
}

// splitName splits a dotted change name into symbol and member.
func splitName(name string) (symbol, member string) {
	if idx := strings.Index(name, "."); idx >= 0 {
		return name[:idx], name[idx+1:]
	}
	return name, ""
}
