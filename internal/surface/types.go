// Package surface extracts the exported API surface of TypeScript and
// JavaScript source files. It uses a tolerant, depth-tracking scanner
// rather than full AST parsing to avoid external dependencies: constructs
// outside the recognized grammar are skipped, never an error.
package surface

// Surface is the structural model of a file's exported API. It is built
// once per source snapshot and never mutated afterwards.
type Surface struct {
	// Functions lists exported function declarations and exported
	// arrow-function const bindings.
	Functions []FunctionSignature `json:"functions"`
	// Interfaces lists exported interface definitions.
	Interfaces []InterfaceDefinition `json:"interfaces"`
	// Types lists exported type aliases.
	Types []TypeDefinition `json:"types"`
	// Exports lists the local names of named re-exports (`export { a, b as c }`
	// records "a" and "b").
	Exports []string `json:"exports"`
	// FilePath is the path the surface was extracted from.
	FilePath string `json:"filePath"`
}

// FunctionSignature describes an exported function.
type FunctionSignature struct {
	Name   string      `json:"name"`
	Params []Parameter `json:"params"`
	// ReturnType is the raw return type annotation, or empty when absent.
	ReturnType string `json:"returnType"`
	Exported   bool   `json:"exported"`
	Async      bool   `json:"async"`
	// LineNumber is the 1-based line of the declaration.
	LineNumber int `json:"lineNumber"`
}

// Parameter is a single function parameter.
type Parameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
	// Optional is true when the parameter name carries a `?` marker.
	Optional bool `json:"optional"`
}

// InterfaceDefinition describes an exported interface.
type InterfaceDefinition struct {
	Name       string     `json:"name"`
	Properties []Property `json:"properties"`
	// Methods holds method-shaped members. Extraction is best effort:
	// property parsing takes priority and method signatures may be partial.
	Methods []FunctionSignature `json:"methods"`
	// Extends lists base interface names from the extends clause.
	Extends    []string `json:"extends"`
	Exported   bool     `json:"exported"`
	LineNumber int      `json:"lineNumber"`
}

// Property is a single interface property.
type Property struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Optional bool   `json:"optional"`
}

// TypeDefinition describes an exported type alias. Definition is the raw
// right-hand side; no generic instantiation or union expansion is applied.
type TypeDefinition struct {
	Name       string `json:"name"`
	Definition string `json:"definition"`
	Exported   bool   `json:"exported"`
	LineNumber int    `json:"lineNumber"`
}

// Function returns the first function with the given name, or nil.
// Duplicate declarations are not deduplicated at extraction time; lookups
// resolve to the first match.
func (s *Surface) Function(name string) *FunctionSignature {
	for i := range s.Functions {
		if s.Functions[i].Name == name {
			return &s.Functions[i]
		}
	}
	return nil
}

// Interface returns the first interface with the given name, or nil.
func (s *Surface) Interface(name string) *InterfaceDefinition {
	for i := range s.Interfaces {
		if s.Interfaces[i].Name == name {
			return &s.Interfaces[i]
		}
	}
	return nil
}

// TypeAlias returns the first type alias with the given name, or nil.
func (s *Surface) TypeAlias(name string) *TypeDefinition {
	for i := range s.Types {
		if s.Types[i].Name == name {
			return &s.Types[i]
		}
	}
	return nil
}

// Property returns the property with the given name, or nil.
func (d *InterfaceDefinition) Property(name string) *Property {
	for i := range d.Properties {
		if d.Properties[i].Name == name {
			return &d.Properties[i]
		}
	}
	return nil
}

// Param returns the parameter with the given name, or nil.
func (f *FunctionSignature) Param(name string) *Parameter {
	for i := range f.Params {
		if f.Params[i].Name == name {
			return &f.Params[i]
		}
	}
	return nil
}
