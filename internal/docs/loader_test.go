package docs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func findDocument(c *Corpus, path string) *Document {
	for i := range c.Documents {
		if c.Documents[i].Path == path {
			return &c.Documents[i]
		}
	}
	return nil
}

func TestLoadCorpus(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "README.md", "# Project")
	writeDoc(t, dir, "guides/setup.mdx", "Run the installer.")
	writeDoc(t, dir, "api/users.md", "fetchUser returns a User.")
	writeDoc(t, dir, "notes.txt", "not documentation")
	writeDoc(t, dir, "node_modules/dep/README.md", "vendored")
	writeDoc(t, dir, ".hidden/secret.md", "skipped")

	corpus, err := LoadCorpus(dir)
	if err != nil {
		t.Fatalf("LoadCorpus: %v", err)
	}
	if corpus.Len() != 3 {
		t.Fatalf("Len = %d, want 3: %+v", corpus.Len(), corpus.Documents)
	}

	if d := findDocument(corpus, "README.md"); d == nil || d.Type != "readme" {
		t.Errorf("README = %+v, want type readme", d)
	}
	if d := findDocument(corpus, "guides/setup.mdx"); d == nil || d.Type != "guide" {
		t.Errorf("setup = %+v, want type guide", d)
	}
	if d := findDocument(corpus, "api/users.md"); d == nil || d.Type != "reference" {
		t.Errorf("users = %+v, want type reference", d)
	}
}

func TestLoadCorpusMissingDir(t *testing.T) {
	if _, err := LoadCorpus(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestLoadCorpusFrontMatter(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "tuning.md", "---\ntype: Guide\ntitle: Tuning\n---\nAdjust the pool size.")

	corpus, err := LoadCorpus(dir)
	if err != nil {
		t.Fatalf("LoadCorpus: %v", err)
	}
	d := findDocument(corpus, "tuning.md")
	if d == nil {
		t.Fatal("tuning.md not loaded")
	}
	if d.Type != "guide" {
		t.Errorf("type = %q, want guide (lowered from front matter)", d.Type)
	}
	if d.Content != "Adjust the pool size." {
		t.Errorf("content = %q, front matter not stripped", d.Content)
	}
}

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantBody string
		wantType string
	}{
		{"no header", "plain body", "plain body", ""},
		{"typed header", "---\ntype: reference\n---\nbody", "body", "reference"},
		{"header without type", "---\ntitle: X\n---\nbody", "body", ""},
		{"unterminated header", "---\ntype: guide\nbody", "---\ntype: guide\nbody", ""},
		{"malformed yaml", "---\n\t:bad\n---\nbody", "---\n\t:bad\n---\nbody", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, docType := splitFrontMatter(tt.input)
			if body != tt.wantBody || docType != tt.wantType {
				t.Errorf("splitFrontMatter = (%q, %q), want (%q, %q)", body, docType, tt.wantBody, tt.wantType)
			}
		})
	}
}

func TestClassifyPath(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"README.md", "readme"},
		{"docs/readme.markdown", "readme"},
		{"guides/quickstart.md", "guide"},
		{"api/users.md", "reference"},
		{"reference/types.md", "reference"},
		{"changelog.md", "markdown"},
	}
	for _, tt := range tests {
		if got := classifyPath(tt.rel); got != tt.want {
			t.Errorf("classifyPath(%q) = %q, want %q", tt.rel, got, tt.want)
		}
	}
}
