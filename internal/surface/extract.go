package surface

import (
	"regexp"
	"strings"
)

// Declaration head patterns. Heads are matched per line; parameter lists,
// interface bodies and alias definitions are then captured by depth
// scanning, so nested delimiters never truncate a span.
var (
	funcDeclRe = regexp.MustCompile(`(?m)^[ \t]*export\s+(async\s+)?function\s+([A-Za-z_$][\w$]*)`)
	arrowRe    = regexp.MustCompile(`(?m)^[ \t]*export\s+const\s+([A-Za-z_$][\w$]*)\s*(?::[^=\n]*)?=\s*(async\s+)?\(`)
	ifaceRe    = regexp.MustCompile(`(?m)^[ \t]*export\s+interface\s+([A-Za-z_$][\w$]*)`)
	aliasRe    = regexp.MustCompile(`(?m)^[ \t]*export\s+type\s+([A-Za-z_$][\w$]*)`)
	reExportRe = regexp.MustCompile(`(?m)^[ \t]*export\s*\{([^}]*)\}`)
)

// Parse extracts the exported API surface from source code. It never fails:
// unrecognized constructs are skipped and malformed spans degrade to
// truncated or empty captures.
func Parse(sourceCode, filePath string) *Surface {
	src := maskComments(sourceCode)

	s := &Surface{FilePath: filePath}
	s.Functions = extractFunctions(src)
	s.Interfaces = extractInterfaces(src)
	s.Types = extractTypeAliases(src)
	s.Exports = extractReExports(src)
	return s
}

// extractFunctions extracts `export [async] function name(...)` declarations
// and `export const name = [async] (...) =>` arrow bindings.
func extractFunctions(src string) []FunctionSignature {
	var fns []FunctionSignature

	for _, m := range funcDeclRe.FindAllStringSubmatchIndex(src, -1) {
		name := src[m[4]:m[5]]
		fn := FunctionSignature{
			Name:       name,
			Exported:   true,
			Async:      m[2] >= 0,
			LineNumber: lineNumberAt(src, m[0]),
		}

		i := skipGenerics(src, skipSpaces(src, m[5]))
		if i >= len(src) || src[i] != '(' {
			continue // not a recognized function shape
		}
		end := scanBalanced(src, i)
		fn.Params = parseParameters(src[i+1 : end-1])

		ret, _ := scanReturnType(src, end, "{")
		fn.ReturnType = ret

		fns = append(fns, fn)
	}

	for _, m := range arrowRe.FindAllStringSubmatchIndex(src, -1) {
		name := src[m[2]:m[3]]
		fn := FunctionSignature{
			Name:       name,
			Exported:   true,
			Async:      m[4] >= 0,
			LineNumber: lineNumberAt(src, m[0]),
		}

		i := m[1] - 1 // offset of the opening paren matched by the pattern
		end := scanBalanced(src, i)
		fn.Params = parseParameters(src[i+1 : end-1])

		ret, _ := scanReturnType(src, end, "=>")
		fn.ReturnType = ret

		fns = append(fns, fn)
	}

	return fns
}

// extractInterfaces extracts `export interface Name [extends A, B] { ... }`
// definitions with true brace-depth body matching.
func extractInterfaces(src string) []InterfaceDefinition {
	var ifaces []InterfaceDefinition

	for _, m := range ifaceRe.FindAllStringSubmatchIndex(src, -1) {
		def := InterfaceDefinition{
			Name:       src[m[2]:m[3]],
			Exported:   true,
			LineNumber: lineNumberAt(src, m[0]),
		}

		i := skipGenerics(src, skipSpaces(src, m[3]))
		open := strings.IndexByte(src[i:], '{')
		if open < 0 {
			continue
		}
		open += i

		head := strings.TrimSpace(src[i:open])
		if rest, ok := strings.CutPrefix(head, "extends"); ok {
			for _, base := range strings.Split(rest, ",") {
				if base = strings.TrimSpace(base); base != "" {
					def.Extends = append(def.Extends, base)
				}
			}
		}

		bodyEnd := scanBraceBody(src, open)
		body := src[open+1 : max(open+1, bodyEnd-1)]
		def.Properties, def.Methods = parseInterfaceBody(body)

		ifaces = append(ifaces, def)
	}

	return ifaces
}

// extractTypeAliases extracts `export type Name[<T>] = definition;` aliases.
// The right-hand side is captured raw, without further parsing.
func extractTypeAliases(src string) []TypeDefinition {
	var types []TypeDefinition

	for _, m := range aliasRe.FindAllStringSubmatchIndex(src, -1) {
		def := TypeDefinition{
			Name:       src[m[2]:m[3]],
			Exported:   true,
			LineNumber: lineNumberAt(src, m[0]),
		}

		i := skipGenerics(src, skipSpaces(src, m[3]))
		i = skipSpaces(src, i)
		if i >= len(src) || src[i] != '=' {
			continue
		}
		i++

		// the definition ends at a top-level `;`, or at the first blank
		// line when the semicolon is missing
		rhs := src[i:]
		semi := indexTopLevel(rhs, ';')
		blank := strings.Index(rhs, "\n\n")
		switch {
		case semi >= 0 && (blank < 0 || semi < blank):
			rhs = rhs[:semi]
		case blank >= 0:
			rhs = rhs[:blank]
		}
		def.Definition = strings.TrimSpace(rhs)

		types = append(types, def)
	}

	return types
}

// extractReExports extracts the local (pre-`as`) names from named
// re-export lists.
func extractReExports(src string) []string {
	var exports []string

	for _, m := range reExportRe.FindAllStringSubmatch(src, -1) {
		for _, part := range strings.Split(m[1], ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if idx := strings.Index(part, " as "); idx > 0 {
				part = strings.TrimSpace(part[:idx])
			}
			exports = append(exports, part)
		}
	}

	return exports
}

// scanReturnType captures an optional `: Type` annotation starting at
// offset i, ending at the given terminator (the function body `{` or the
// arrow `=>`) at depth zero. Returns the trimmed type and the end offset.
func scanReturnType(src string, i int, terminator string) (string, int) {
	i = skipSpaces(src, i)
	if i >= len(src) || src[i] != ':' {
		return "", i
	}
	i = skipSpaces(src, i+1)

	depth := 0
	start := i
	for j := i; j < len(src); j++ {
		c := src[j]
		switch {
		case depth == 0 && strings.HasPrefix(src[j:], terminator):
			// an object return type opens with the same `{` as a body;
			// only treat `{` as the terminator when some type text was seen
			if terminator != "{" || strings.TrimSpace(src[start:j]) != "" {
				return strings.TrimSpace(src[start:j]), j
			}
			depth++
		case isOpener(c):
			depth++
		case c == '>' && j > 0 && src[j-1] == '=':
		case isCloser(c):
			depth--
		case c == '\n' && depth == 0:
			return strings.TrimSpace(src[start:j]), j
		}
	}
	return strings.TrimSpace(src[start:]), len(src)
}

// skipSpaces returns the first offset at or after i that is not a space or
// tab.
func skipSpaces(src string, i int) int {
	for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	return i
}

// skipGenerics skips a `<...>` generic parameter list at offset i, if any.
func skipGenerics(src string, i int) int {
	if i < len(src) && src[i] == '<' {
		return scanBalanced(src, i)
	}
	return i
}

// maskComments replaces line and block comment content with spaces,
// preserving length and newlines so offsets and line numbers stay valid.
// String literals are tracked so `//` inside a string (URLs, string literal
// types) is not mistaken for a comment.
func maskComments(src string) string {
	const (
		code = iota
		lineComment
		blockComment
		stringLit
	)

	buf := []byte(src)
	state := code
	var quote byte

	for i := 0; i < len(buf); i++ {
		c := buf[i]
		switch state {
		case code:
			switch {
			case c == '/' && i+1 < len(buf) && buf[i+1] == '/':
				state = lineComment
				buf[i] = ' '
			case c == '/' && i+1 < len(buf) && buf[i+1] == '*':
				state = blockComment
				buf[i] = ' '
			case c == '\'' || c == '"' || c == '`':
				state = stringLit
				quote = c
			}
		case lineComment:
			if c == '\n' {
				state = code
			} else {
				buf[i] = ' '
			}
		case blockComment:
			if c == '*' && i+1 < len(buf) && buf[i+1] == '/' {
				buf[i] = ' '
				buf[i+1] = ' '
				i++
				state = code
			} else if c != '\n' {
				buf[i] = ' '
			}
		case stringLit:
			if c == '\\' {
				i++
			} else if c == quote {
				state = code
			} else if c == '\n' && quote != '`' {
				// unterminated single-line string; bail out of string state
				state = code
			}
		}
	}

	return string(buf)
}
