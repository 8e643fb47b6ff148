package diff

import (
	"fmt"

	"github.com/apidrift/apidrift/internal/surface"
)

// Additions lists the additive, non-breaking findings between two
// surfaces: newly exported functions, interfaces, type aliases and
// re-exports, plus optional parameters and properties added to symbols
// that already existed.
func Additions(oldSurface, newSurface *surface.Surface) []string {
	var findings []string

	for i := range newSurface.Functions {
		fn := &newSurface.Functions[i]
		old := oldSurface.Function(fn.Name)
		if old == nil {
			findings = append(findings, fmt.Sprintf("Function '%s' was added", fn.Name))
			continue
		}
		for j := range fn.Params {
			p := &fn.Params[j]
			if p.Optional && old.Param(p.Name) == nil {
				findings = append(findings, fmt.Sprintf("Optional parameter '%s' was added to '%s'", p.Name, fn.Name))
			}
		}
	}

	for i := range newSurface.Interfaces {
		iface := &newSurface.Interfaces[i]
		old := oldSurface.Interface(iface.Name)
		if old == nil {
			findings = append(findings, fmt.Sprintf("Interface '%s' was added", iface.Name))
			continue
		}
		for j := range iface.Properties {
			p := &iface.Properties[j]
			if old.Property(p.Name) == nil {
				findings = append(findings, fmt.Sprintf("Property '%s' was added to interface '%s'", p.Name, iface.Name))
			}
		}
	}

	for i := range newSurface.Types {
		td := &newSurface.Types[i]
		if oldSurface.TypeAlias(td.Name) == nil {
			findings = append(findings, fmt.Sprintf("Type '%s' was added", td.Name))
		}
	}

	for _, name := range newSurface.Exports {
		if !containsString(oldSurface.Exports, name) {
			findings = append(findings, fmt.Sprintf("Export '%s' was added", name))
		}
	}

	return findings
}
