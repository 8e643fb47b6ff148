package docs

import (
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/apidrift/apidrift/internal/errors"
	"github.com/apidrift/apidrift/internal/fileutil"
)

// MaxDocumentSize is the maximum documentation file size loaded into a
// corpus (1MB). Larger files are skipped rather than failing the load.
const MaxDocumentSize = 1 << 20

// markdownExtensions lists the file extensions treated as documentation.
var markdownExtensions = map[string]bool{
	".md":       true,
	".mdx":      true,
	".markdown": true,
}

// frontMatter is the optional YAML header of a documentation file.
type frontMatter struct {
	Type  string `yaml:"type"`
	Title string `yaml:"title"`
}

// LoadCorpus walks a documentation directory and loads all markdown files
// into a corpus. Paths in the corpus are relative to dir. Unreadable or
// oversized files are skipped; only a missing root directory is an error.
func LoadCorpus(dir string) (*Corpus, error) {
	const op = "docs.LoadCorpus"

	var documents []Document
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == dir {
				return walkErr
			}
			return nil // skip unreadable entries below the root
		}
		if d.IsDir() {
			if d.Name() == "node_modules" || strings.HasPrefix(d.Name(), ".") && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if !markdownExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		data, readErr := fileutil.ReadFileLimited(path, MaxDocumentSize)
		if readErr != nil {
			return nil
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}

		content, docType := splitFrontMatter(string(data))
		if docType == "" {
			docType = classifyPath(rel)
		}

		documents = append(documents, Document{
			Path:    filepath.ToSlash(rel),
			Content: content,
			Type:    docType,
		})
		return nil
	})
	if err != nil {
		return nil, errors.IOWrap(err, op, "failed to walk documentation directory")
	}

	return NewCorpus(documents), nil
}

// splitFrontMatter strips an optional `---` delimited YAML header and
// returns the body plus the declared document type, if any. Malformed
// front matter is left in place and ignored.
func splitFrontMatter(content string) (body, docType string) {
	if !strings.HasPrefix(content, "---\n") {
		return content, ""
	}
	rest := content[4:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return content, ""
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return content, ""
	}

	body = rest[end+4:]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	}
	return body, strings.ToLower(strings.TrimSpace(fm.Type))
}

// classifyPath derives a document type from its path.
func classifyPath(rel string) string {
	lower := strings.ToLower(rel)
	switch {
	case strings.HasPrefix(filepath.Base(lower), "readme"):
		return "readme"
	case strings.Contains(lower, "guide"):
		return "guide"
	case strings.Contains(lower, "api") || strings.Contains(lower, "reference"):
		return "reference"
	default:
		return "markdown"
	}
}
