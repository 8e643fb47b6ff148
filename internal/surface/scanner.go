package surface

// isOpener reports whether c opens a nesting level.
func isOpener(c byte) bool {
	return c == '(' || c == '[' || c == '{' || c == '<'
}

// isCloser reports whether c closes a nesting level.
func isCloser(c byte) bool {
	return c == ')' || c == ']' || c == '}' || c == '>'
}

// SplitTopLevel splits s on commas that sit at nesting depth zero with
// respect to (), [], {} and <>. Commas inside generics (`Map<string, number>`)
// or inline object types (`{ a: string, b: number }`) are never separators.
//
// Unbalanced input is tolerated: depth may go negative and the result is a
// best-effort split rather than an error. The `>` of an arrow (`=>`) is not
// treated as a closer.
func SplitTopLevel(s string) []string {
	if s == "" {
		return nil
	}

	var parts []string
	depth := 0
	start := 0

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isOpener(c):
			depth++
		case c == '>' && i > 0 && s[i-1] == '=':
			// arrow, not a closing angle bracket
		case isCloser(c):
			depth--
		case c == ',' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])

	return parts
}

// scanBalanced returns the offset just past the closer matching the opener
// at s[start], counting all four bracket pairs. Returns len(s) when the
// input ends before the span balances (truncated, not an error).
func scanBalanced(s string, start int) int {
	depth := 0
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case isOpener(c):
			depth++
		case c == '>' && i > 0 && s[i-1] == '=':
		case isCloser(c):
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(s)
}

// scanBraceBody returns the offset just past the `}` matching the `{` at
// s[start], counting braces only. Used for interface bodies, where nested
// inline object types must not truncate the span early.
func scanBraceBody(s string, start int) int {
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(s)
}

// indexTopLevel returns the index of the first occurrence of c at depth
// zero in s, or -1.
func indexTopLevel(s string, c byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == c && depth == 0:
			// checked first so openers can be found at depth zero
			return i
		case isOpener(ch):
			depth++
		case ch == '>' && i > 0 && s[i-1] == '=':
		case isCloser(ch):
			depth--
		}
	}
	return -1
}

// lineNumberAt returns the 1-based line number of the byte offset in src.
func lineNumberAt(src string, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	line := 1
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
		}
	}
	return line
}
