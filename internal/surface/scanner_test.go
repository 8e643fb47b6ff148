package surface

import (
	"reflect"
	"testing"
)

func TestSplitTopLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "a: string", []string{"a: string"}},
		{"two params", "a: string, b: number", []string{"a: string", " b: number"}},
		{"generic comma", "m: Map<string, number>", []string{"m: Map<string, number>"}},
		{"object comma", "o: { a: string, b: number }", []string{"o: { a: string, b: number }"}},
		{"arrow in generic", "f: Wrapped<(x: number) => void>, n: number",
			[]string{"f: Wrapped<(x: number) => void>", " n: number"}},
		{"unbalanced tolerated", "a: string)", []string{"a: string)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitTopLevel(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitTopLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestScanBalanced(t *testing.T) {
	tests := []struct {
		name  string
		input string
		start int
		want  int
	}{
		{"simple parens", "(a, b)", 0, 6},
		{"nested", "(a: (x) => y, b)", 0, 16},
		{"generic", "<T extends Map<K, V>>", 0, 21},
		{"truncated", "(a, b", 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scanBalanced(tt.input, tt.start); got != tt.want {
				t.Errorf("scanBalanced(%q, %d) = %d, want %d", tt.input, tt.start, got, tt.want)
			}
		})
	}
}

func TestIndexTopLevel(t *testing.T) {
	tests := []struct {
		input string
		c     byte
		want  int
	}{
		{"a: string", ':', 1},
		{"o: { k: v }", ':', 1},
		{"{ k: v }: x", ':', 8},
		{"name(a: b): c", '(', 4},
		{"no colon", ':', -1},
	}

	for _, tt := range tests {
		if got := indexTopLevel(tt.input, tt.c); got != tt.want {
			t.Errorf("indexTopLevel(%q, %q) = %d, want %d", tt.input, tt.c, got, tt.want)
		}
	}
}

func TestLineNumberAt(t *testing.T) {
	src := "a\nb\nc"
	tests := []struct {
		offset int
		want   int
	}{
		{0, 1},
		{2, 2},
		{4, 3},
		{99, 3}, // clamped to len(src)
	}
	for _, tt := range tests {
		if got := lineNumberAt(src, tt.offset); got != tt.want {
			t.Errorf("lineNumberAt(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}
