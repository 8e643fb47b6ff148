package surface

import "strings"

// parseParameters turns a raw parameter list (the text between the parens)
// into structured parameters. Empty lists yield nil, not an error.
func parseParameters(raw string) []Parameter {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var params []Parameter
	for _, segment := range SplitTopLevel(raw) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		params = append(params, parseParameter(segment))
	}
	return params
}

// parseParameter splits a single `name[?]: type [= default]` segment.
func parseParameter(segment string) Parameter {
	p := Parameter{}

	name := segment
	if idx := indexTopLevel(segment, ':'); idx >= 0 {
		name = segment[:idx]
		p.Type = strings.TrimSpace(segment[idx+1:])
	} else if idx := indexTopLevel(segment, '='); idx >= 0 {
		// untyped parameter with a default value
		name = segment[:idx]
	}

	// a default value is not part of the type
	if idx := indexTopLevel(p.Type, '='); idx >= 0 {
		p.Type = strings.TrimSpace(p.Type[:idx])
	}

	name = strings.TrimSpace(name)
	if strings.Contains(name, "?") {
		p.Optional = true
		name = strings.ReplaceAll(name, "?", "")
	}
	p.Name = name

	return p
}

// parseInterfaceBody parses interface members into properties and
// method-shaped members. Properties take priority; method extraction is
// best effort and may capture partial signatures.
func parseInterfaceBody(body string) ([]Property, []FunctionSignature) {
	var props []Property
	var methods []FunctionSignature

	for _, member := range splitMembers(body) {
		member = strings.TrimSpace(member)
		if member == "" {
			continue
		}

		if fn, ok := parseMethodMember(member); ok {
			methods = append(methods, fn)
			continue
		}

		idx := indexTopLevel(member, ':')
		if idx < 0 {
			continue // not a recognized member shape
		}

		prop := Property{Type: strings.TrimSpace(member[idx+1:])}
		name := strings.TrimSpace(member[:idx])
		if strings.Contains(name, "?") {
			prop.Optional = true
			name = strings.ReplaceAll(name, "?", "")
		}
		prop.Name = name
		if prop.Name == "" {
			continue
		}

		// an arrow type makes this a method-shaped member, not a property
		if strings.Contains(prop.Type, "=>") {
			methods = append(methods, FunctionSignature{
				Name:       prop.Name,
				Params:     parseArrowParams(prop.Type),
				ReturnType: arrowReturn(prop.Type),
			})
			continue
		}

		props = append(props, prop)
	}

	return props, methods
}

// parseMethodMember recognizes `name(params): ret` members.
func parseMethodMember(member string) (FunctionSignature, bool) {
	open := indexTopLevel(member, '(')
	if open <= 0 {
		return FunctionSignature{}, false
	}
	name := strings.TrimSpace(member[:open])
	if colon := indexTopLevel(name, ':'); colon >= 0 {
		// `name: (...) =>` is handled as an arrow-typed property
		return FunctionSignature{}, false
	}
	name = strings.TrimSuffix(name, "?")
	if !isIdentifier(name) {
		return FunctionSignature{}, false
	}

	end := scanBalanced(member, open)
	fn := FunctionSignature{
		Name:   name,
		Params: parseParameters(member[open+1 : max(open+1, end-1)]),
	}
	rest := strings.TrimSpace(member[min(end, len(member)):])
	if after, ok := strings.CutPrefix(rest, ":"); ok {
		fn.ReturnType = strings.TrimSpace(after)
	}
	return fn, true
}

// parseArrowParams extracts parameters from an arrow function type such as
// `(a: string, b?: number) => void`.
func parseArrowParams(arrowType string) []Parameter {
	open := strings.IndexByte(arrowType, '(')
	if open < 0 {
		return nil
	}
	end := scanBalanced(arrowType, open)
	return parseParameters(arrowType[open+1 : max(open+1, end-1)])
}

// arrowReturn extracts the return type from an arrow function type.
func arrowReturn(arrowType string) string {
	for i := 0; i+1 < len(arrowType); i++ {
		if arrowType[i] == '=' && arrowType[i+1] == '>' {
			return strings.TrimSpace(arrowType[i+2:])
		}
	}
	return ""
}

// splitMembers splits an interface body on `;`, `,` and newlines at depth
// zero, so members with inline object or generic types stay intact.
func splitMembers(body string) []string {
	var members []string
	depth := 0
	start := 0

	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case isOpener(c):
			depth++
		case c == '>' && i > 0 && body[i-1] == '=':
		case isCloser(c):
			depth--
		case (c == ';' || c == ',' || c == '\n') && depth == 0:
			members = append(members, body[start:i])
			start = i + 1
		}
	}
	members = append(members, body[start:])

	return members
}

// isIdentifier reports whether s is a plain identifier.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_', c == '$':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
