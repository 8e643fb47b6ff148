// Package diff compares two extracted API surfaces and emits classified,
// severity-ranked breaking changes. Comparison is keyed by declared name;
// a renamed export shows up as one removal plus one addition, by design.
package diff

import (
	"fmt"

	"github.com/apidrift/apidrift/internal/domain/change"
	"github.com/apidrift/apidrift/internal/surface"
)

// Detect compares an old and a new surface and returns the breaking
// changes between them. Comparing a surface to itself returns nil.
func Detect(oldSurface, newSurface *surface.Surface) []change.BreakingChange {
	var changes []change.BreakingChange
	changes = append(changes, diffFunctions(oldSurface, newSurface)...)
	changes = append(changes, diffInterfaces(oldSurface, newSurface)...)
	changes = append(changes, diffTypes(oldSurface, newSurface)...)
	changes = append(changes, diffReExports(oldSurface, newSurface)...)
	return changes
}

// diffFunctions compares functions pairwise by name. Parameters are
// matched positionally-by-name, not by index: reordering alone is not a
// change, but a vanished name is a removal.
func diffFunctions(oldSurface, newSurface *surface.Surface) []change.BreakingChange {
	var changes []change.BreakingChange

	for i := range oldSurface.Functions {
		oldFn := &oldSurface.Functions[i]
		newFn := newSurface.Function(oldFn.Name)

		if newFn == nil {
			changes = append(changes, enrich(change.BreakingChange{
				Type:          change.TypeFunctionRemoved,
				Name:          oldFn.Name,
				Description:   fmt.Sprintf("Function '%s' was removed", oldFn.Name),
				FilePath:      oldSurface.FilePath,
				LineNumber:    oldFn.LineNumber,
				PreviousValue: FormatFunction(oldFn),
			}))
			continue
		}

		changes = append(changes, diffParameters(oldSurface.FilePath, oldFn, newFn)...)

		if !surface.TypesEqual(oldFn.ReturnType, newFn.ReturnType) {
			changes = append(changes, enrich(change.BreakingChange{
				Type:          change.TypeReturnTypeChanged,
				Name:          oldFn.Name,
				Description:   fmt.Sprintf("Return type of '%s' changed from '%s' to '%s'", oldFn.Name, displayType(oldFn.ReturnType), displayType(newFn.ReturnType)),
				FilePath:      newSurface.FilePath,
				LineNumber:    newFn.LineNumber,
				PreviousValue: oldFn.ReturnType,
				CurrentValue:  newFn.ReturnType,
			}))
		}
	}

	return changes
}

func diffParameters(filePath string, oldFn, newFn *surface.FunctionSignature) []change.BreakingChange {
	var changes []change.BreakingChange

	for i := range oldFn.Params {
		oldParam := &oldFn.Params[i]
		newParam := newFn.Param(oldParam.Name)

		if newParam == nil {
			changes = append(changes, enrich(change.BreakingChange{
				Type:          change.TypeParameterRemoved,
				Name:          oldFn.Name + "." + oldParam.Name,
				Description:   fmt.Sprintf("Parameter '%s' was removed from '%s'", oldParam.Name, oldFn.Name),
				FilePath:      filePath,
				LineNumber:    newFn.LineNumber,
				PreviousValue: oldParam.Type,
			}))
			continue
		}

		if !surface.TypesEqual(oldParam.Type, newParam.Type) {
			changes = append(changes, enrich(change.BreakingChange{
				Type:          change.TypeParameterTypeChanged,
				Name:          oldFn.Name + "." + oldParam.Name,
				Description:   fmt.Sprintf("Type of parameter '%s' in '%s' changed from '%s' to '%s'", oldParam.Name, oldFn.Name, displayType(oldParam.Type), displayType(newParam.Type)),
				FilePath:      filePath,
				LineNumber:    newFn.LineNumber,
				PreviousValue: oldParam.Type,
				CurrentValue:  newParam.Type,
			}))
		}
	}

	// new required parameters break existing call sites; optional ones never do
	for i := range newFn.Params {
		newParam := &newFn.Params[i]
		if newParam.Optional || oldFn.Param(newParam.Name) != nil {
			continue
		}
		changes = append(changes, enrich(change.BreakingChange{
			Type:         change.TypeParameterAddedRequired,
			Name:         newFn.Name + "." + newParam.Name,
			Description:  fmt.Sprintf("Required parameter '%s' was added to '%s'", newParam.Name, newFn.Name),
			FilePath:     filePath,
			LineNumber:   newFn.LineNumber,
			CurrentValue: newParam.Type,
		}))
	}

	return changes
}

// diffInterfaces flags removed interfaces and removed, retyped or
// newly-required properties. Added properties are additive and never
// flagged.
func diffInterfaces(oldSurface, newSurface *surface.Surface) []change.BreakingChange {
	var changes []change.BreakingChange

	for i := range oldSurface.Interfaces {
		oldIface := &oldSurface.Interfaces[i]
		newIface := newSurface.Interface(oldIface.Name)

		if newIface == nil {
			changes = append(changes, enrich(change.BreakingChange{
				Type:        change.TypeInterfaceRemoved,
				Name:        oldIface.Name,
				Description: fmt.Sprintf("Interface '%s' was removed", oldIface.Name),
				FilePath:    oldSurface.FilePath,
				LineNumber:  oldIface.LineNumber,
			}))
			continue
		}

		for j := range oldIface.Properties {
			oldProp := &oldIface.Properties[j]
			newProp := newIface.Property(oldProp.Name)
			name := oldIface.Name + "." + oldProp.Name

			switch {
			case newProp == nil:
				changes = append(changes, enrich(change.BreakingChange{
					Type:          change.TypeInterfacePropertyRemoved,
					Name:          name,
					Description:   fmt.Sprintf("Property '%s' was removed from interface '%s'", oldProp.Name, oldIface.Name),
					FilePath:      newSurface.FilePath,
					LineNumber:    newIface.LineNumber,
					PreviousValue: oldProp.Type,
				}))
			case !surface.TypesEqual(oldProp.Type, newProp.Type):
				changes = append(changes, enrich(change.BreakingChange{
					Type:          change.TypeInterfacePropertyTypeChanged,
					Name:          name,
					Description:   fmt.Sprintf("Type of property '%s' in '%s' changed from '%s' to '%s'", oldProp.Name, oldIface.Name, displayType(oldProp.Type), displayType(newProp.Type)),
					FilePath:      newSurface.FilePath,
					LineNumber:    newIface.LineNumber,
					PreviousValue: oldProp.Type,
					CurrentValue:  newProp.Type,
				}))
			case oldProp.Optional && !newProp.Optional:
				changes = append(changes, enrich(change.BreakingChange{
					Type:          change.TypeInterfacePropertyRequired,
					Name:          name,
					Description:   fmt.Sprintf("Property '%s' in '%s' is now required", oldProp.Name, oldIface.Name),
					FilePath:      newSurface.FilePath,
					LineNumber:    newIface.LineNumber,
					PreviousValue: oldProp.Name + "?: " + oldProp.Type,
					CurrentValue:  oldProp.Name + ": " + newProp.Type,
				}))
			}
		}
	}

	return changes
}

// diffTypes flags removed type aliases and changed definitions.
func diffTypes(oldSurface, newSurface *surface.Surface) []change.BreakingChange {
	var changes []change.BreakingChange

	for i := range oldSurface.Types {
		oldType := &oldSurface.Types[i]
		newType := newSurface.TypeAlias(oldType.Name)

		if newType == nil {
			changes = append(changes, enrich(change.BreakingChange{
				Type:          change.TypeTypeRemoved,
				Name:          oldType.Name,
				Description:   fmt.Sprintf("Type '%s' was removed", oldType.Name),
				FilePath:      oldSurface.FilePath,
				LineNumber:    oldType.LineNumber,
				PreviousValue: oldType.Definition,
			}))
			continue
		}

		if !surface.TypesEqual(oldType.Definition, newType.Definition) {
			changes = append(changes, enrich(change.BreakingChange{
				Type:          change.TypeTypeChanged,
				Name:          oldType.Name,
				Description:   fmt.Sprintf("Definition of type '%s' changed", oldType.Name),
				FilePath:      newSurface.FilePath,
				LineNumber:    newType.LineNumber,
				PreviousValue: oldType.Definition,
				CurrentValue:  newType.Definition,
			}))
		}
	}

	return changes
}

// diffReExports flags named re-exports that vanished without the symbol
// reappearing as a declaration in the new surface.
func diffReExports(oldSurface, newSurface *surface.Surface) []change.BreakingChange {
	var changes []change.BreakingChange

	for _, name := range oldSurface.Exports {
		if containsString(newSurface.Exports, name) {
			continue
		}
		if newSurface.Function(name) != nil || newSurface.Interface(name) != nil || newSurface.TypeAlias(name) != nil {
			continue
		}
		changes = append(changes, enrich(change.BreakingChange{
			Type:        change.TypeExportRemoved,
			Name:        name,
			Description: fmt.Sprintf("Export '%s' was removed", name),
			FilePath:    oldSurface.FilePath,
		}))
	}

	return changes
}

// FormatFunction renders a signature snapshot such as
// `foo(a: string, b?: number): void`.
func FormatFunction(fn *surface.FunctionSignature) string {
	sig := fn.Name + "("
	for i, p := range fn.Params {
		if i > 0 {
			sig += ", "
		}
		sig += p.Name
		if p.Optional {
			sig += "?"
		}
		if p.Type != "" {
			sig += ": " + p.Type
		}
	}
	sig += ")"
	if fn.ReturnType != "" {
		sig += ": " + fn.ReturnType
	}
	return sig
}

func displayType(t string) string {
	if t == "" {
		return "(none)"
	}
	return surface.NormalizeType(t)
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
