// Package docs cross-references API changes against a read-only
// documentation corpus. Matching is plain substring containment: no
// tokenization, stemming or word boundaries, accepting false positives on
// short or common names in exchange for a contract that is trivial to
// explain to reviewers.
package docs

import (
	"strings"

	"github.com/apidrift/apidrift/internal/domain/change"
)

// Document is a single documentation file in the corpus.
type Document struct {
	// Path identifies the document, e.g. "docs/api/users.md".
	Path string `json:"path"`
	// Content is the raw document text.
	Content string `json:"content"`
	// Type classifies the document (guide, reference, readme, ...).
	Type string `json:"type"`
}

// Corpus is an immutable snapshot of documentation files.
type Corpus struct {
	Documents []Document
}

// NewCorpus builds a corpus from documents.
func NewCorpus(documents []Document) *Corpus {
	return &Corpus{Documents: documents}
}

// Len returns the number of documents in the corpus.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Documents)
}

// AnalyzeImpact returns the paths of documents whose content mentions any
// changed symbol. For a change named "Foo.bar" the terms are "Foo.bar",
// "Foo" and "bar". Paths are deduplicated; order of first match is
// preserved.
func AnalyzeImpact(changes []change.BreakingChange, corpus *Corpus) []string {
	if corpus == nil || len(changes) == 0 {
		return nil
	}

	var affected []string
	seen := make(map[string]bool)

	for i := range changes {
		terms := changes[i].SearchTerms()
		for _, doc := range corpus.Documents {
			if seen[doc.Path] {
				continue
			}
			if mentionsAny(doc.Content, terms) {
				seen[doc.Path] = true
				affected = append(affected, doc.Path)
			}
		}
	}

	return affected
}

// AnnotateChanges fills each change's AffectedDocumentation with the
// documents that mention that change's symbol.
func AnnotateChanges(changes []change.BreakingChange, corpus *Corpus) {
	if corpus == nil {
		return
	}
	for i := range changes {
		terms := changes[i].SearchTerms()
		for _, doc := range corpus.Documents {
			if mentionsAny(doc.Content, terms) {
				changes[i].AffectedDocumentation = append(changes[i].AffectedDocumentation, doc.Path)
			}
		}
	}
}

// mentionsAny reports whether content contains any term as a substring.
func mentionsAny(content string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(content, term) {
			return true
		}
	}
	return false
}
