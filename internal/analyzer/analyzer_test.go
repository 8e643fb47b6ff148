package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/apidrift/apidrift/internal/docs"
	"github.com/apidrift/apidrift/internal/domain/change"
)

// stubAI is a scripted AI service for enhancer tests.
type stubAI struct {
	response  string
	err       error
	available bool
	calls     int
}

func (s *stubAI) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.calls++
	return s.response, s.err
}

func (s *stubAI) IsAvailable() bool {
	return s.available
}

func findChange(t *testing.T, report *change.Report, typ change.Type, name string) *change.BreakingChange {
	t.Helper()
	for i := range report.BreakingChanges {
		c := &report.BreakingChanges[i]
		if c.Type == typ && c.Name == name {
			return c
		}
	}
	t.Fatalf("no %s change for %q in %+v", typ, name, report.BreakingChanges)
	return nil
}

func TestAnalyzeRemovedFunction(t *testing.T) {
	a := New()
	report := a.Analyze(Request{
		OldCode:  "export function greet(name: string): string { return name; }",
		NewCode:  "const x = 1;",
		FilePath: "src/index.ts",
	})

	if !report.HasBreakingChanges {
		t.Fatal("expected breaking changes")
	}
	c := findChange(t, report, change.TypeFunctionRemoved, "greet")
	if c.Severity != change.SeverityCritical {
		t.Errorf("severity = %v, want critical", c.Severity)
	}
	if c.MigrationHint == "" {
		t.Error("expected a migration hint")
	}
	if report.SuggestedVersionBump != change.BumpMajor {
		t.Errorf("bump = %v, want major", report.SuggestedVersionBump)
	}
}

func TestAnalyzeRequiredParameterAdded(t *testing.T) {
	a := New()
	report := a.Analyze(Request{
		OldCode:  "export function fetchUser(id: string): Promise<User> { }",
		NewCode:  "export function fetchUser(id: string, options: FetchOptions): Promise<User> { }",
		FilePath: "src/api.ts",
	})

	c := findChange(t, report, change.TypeParameterAddedRequired, "fetchUser.options")
	if c.Severity != change.SeverityMajor {
		t.Errorf("severity = %v, want major", c.Severity)
	}
	if report.SuggestedVersionBump != change.BumpMajor {
		t.Errorf("bump = %v, want major", report.SuggestedVersionBump)
	}
}

func TestAnalyzeOptionalParameterAddedIsNonBreaking(t *testing.T) {
	a := New()
	report := a.Analyze(Request{
		OldCode:  "export function fetchUser(id: string): Promise<User> { }",
		NewCode:  "export function fetchUser(id: string, options?: FetchOptions): Promise<User> { }",
		FilePath: "src/api.ts",
	})

	if report.HasBreakingChanges {
		t.Fatalf("expected no breaking changes, got %+v", report.BreakingChanges)
	}
	if len(report.NonBreakingChanges) == 0 {
		t.Fatal("expected a non-breaking finding for the optional parameter")
	}
	if report.SuggestedVersionBump != change.BumpMinor {
		t.Errorf("bump = %v, want minor", report.SuggestedVersionBump)
	}
}

func TestAnalyzeReturnTypeChanged(t *testing.T) {
	a := New()
	report := a.Analyze(Request{
		OldCode:  "export function load(id: string): User { }",
		NewCode:  "export function load(id: string): Promise<User> { }",
		FilePath: "src/api.ts",
	})

	c := findChange(t, report, change.TypeReturnTypeChanged, "load")
	if c.PreviousValue != "User" || c.CurrentValue != "Promise<User>" {
		t.Errorf("values = %q -> %q", c.PreviousValue, c.CurrentValue)
	}
}

func TestAnalyzeInterfaceChanges(t *testing.T) {
	oldCode := `export interface User {
  id: string;
  email?: string;
  age: number;
}`
	newCode := `export interface User {
  id: number;
  email: string;
}`

	a := New()
	report := a.Analyze(Request{OldCode: oldCode, NewCode: newCode, FilePath: "src/types.ts"})

	findChange(t, report, change.TypeInterfacePropertyTypeChanged, "User.id")
	findChange(t, report, change.TypeInterfacePropertyRequired, "User.email")
	findChange(t, report, change.TypeInterfacePropertyRemoved, "User.age")
}

func TestAnalyzeTypeAliasChanged(t *testing.T) {
	a := New()
	report := a.Analyze(Request{
		OldCode:  "export type Status = 'active' | 'inactive';",
		NewCode:  "export type Status = 'active' | 'inactive' | 'pending';",
		FilePath: "src/types.ts",
	})

	findChange(t, report, change.TypeTypeChanged, "Status")
}

func TestAnalyzeIdenticalCode(t *testing.T) {
	code := "export function greet(name: string): string { return name; }"
	a := New()
	report := a.Analyze(Request{OldCode: code, NewCode: code, FilePath: "src/index.ts"})

	if report.HasBreakingChanges {
		t.Errorf("unexpected breaking changes: %+v", report.BreakingChanges)
	}
	if len(report.NonBreakingChanges) != 0 {
		t.Errorf("unexpected non-breaking changes: %v", report.NonBreakingChanges)
	}
	if report.SuggestedVersionBump != change.BumpPatch {
		t.Errorf("bump = %v, want patch", report.SuggestedVersionBump)
	}
}

func TestAnalyzeDocsImpact(t *testing.T) {
	corpus := docs.NewCorpus([]docs.Document{
		{Path: "docs/api.md", Content: "Call greet(name) to say hello.", Type: "reference"},
		{Path: "docs/other.md", Content: "Nothing relevant here.", Type: "guide"},
	})

	a := New()
	report := a.Analyze(Request{
		OldCode:  "export function greet(name: string): string { }",
		NewCode:  "",
		FilePath: "src/index.ts",
		Docs:     corpus,
	})

	if len(report.AffectedDocumentation) != 1 || report.AffectedDocumentation[0] != "docs/api.md" {
		t.Errorf("affected docs = %v, want [docs/api.md]", report.AffectedDocumentation)
	}
	c := findChange(t, report, change.TypeFunctionRemoved, "greet")
	if len(c.AffectedDocumentation) != 1 {
		t.Errorf("change affected docs = %v", c.AffectedDocumentation)
	}
}

func TestAnalyzeWithAIMergesFindings(t *testing.T) {
	stub := &stubAI{
		available: true,
		response: "Here is my analysis:\n```json\n" +
			`{"additionalBreaking":[{"type":"function_signature_changed","name":"save","description":"save now throws on duplicate IDs","severity":"major","migrationHint":"Catch DuplicateError at call sites."}],"nonBreaking":["Logging output changed"],"migrationGuide":"## Migration\nCatch DuplicateError."}` +
			"\n```",
	}

	a := New(WithAI(stub))
	report := a.AnalyzeWithAI(context.Background(), Request{
		OldCode:  "export function save(user: User): void { }",
		NewCode:  "export function save(user: User): void { /* throws */ }",
		FilePath: "src/store.ts",
		PRTitle:  "Reject duplicate IDs",
	})

	if stub.calls != 1 {
		t.Fatalf("expected one AI call, got %d", stub.calls)
	}
	c := findChange(t, report, change.TypeFunctionSignatureChanged, "save")
	if c.MigrationHint != "Catch DuplicateError at call sites." {
		t.Errorf("migration hint = %q", c.MigrationHint)
	}
	if report.MigrationGuide == "" {
		t.Error("expected migration guide")
	}
	if len(report.NonBreakingChanges) != 1 {
		t.Errorf("non-breaking = %v", report.NonBreakingChanges)
	}
	if report.SuggestedVersionBump != change.BumpMajor {
		t.Errorf("bump = %v, want major", report.SuggestedVersionBump)
	}
}

func TestAnalyzeWithAIDegradesOnError(t *testing.T) {
	stub := &stubAI{available: true, err: context.DeadlineExceeded}

	a := New(WithAI(stub))
	report := a.AnalyzeWithAI(context.Background(), Request{
		OldCode:  "export function greet(name: string): string { }",
		NewCode:  "",
		FilePath: "src/index.ts",
	})

	// static findings survive the enhancer failure
	findChange(t, report, change.TypeFunctionRemoved, "greet")
	if report.MigrationGuide != "" {
		t.Error("expected no migration guide on fallback")
	}
}

func TestAnalyzeWithAIDegradesOnGarbage(t *testing.T) {
	stub := &stubAI{available: true, response: "I could not find any JSON to give you."}

	a := New(WithAI(stub))
	report := a.AnalyzeWithAI(context.Background(), Request{
		OldCode:  "export function greet(name: string): string { }",
		NewCode:  "",
		FilePath: "src/index.ts",
	})

	findChange(t, report, change.TypeFunctionRemoved, "greet")
}

func TestAnalyzeWithAIEmptyFindingsSuggestsNone(t *testing.T) {
	stub := &stubAI{
		available: true,
		response:  `{"additionalBreaking":[],"nonBreaking":[],"migrationGuide":""}`,
	}

	code := "export function greet(name: string): string { }"
	a := New(WithAI(stub))
	report := a.AnalyzeWithAI(context.Background(), Request{
		OldCode:  code,
		NewCode:  code,
		FilePath: "src/index.ts",
	})

	if report.SuggestedVersionBump != change.BumpNone {
		t.Errorf("bump = %v, want none", report.SuggestedVersionBump)
	}
}

func TestAnalyzeWithAISkipsUnavailableService(t *testing.T) {
	stub := &stubAI{available: false, response: `{"additionalBreaking":[]}`}

	a := New(WithAI(stub))
	a.AnalyzeWithAI(context.Background(), Request{OldCode: "", NewCode: "", FilePath: "f.ts"})

	if stub.calls != 0 {
		t.Errorf("expected no AI calls, got %d", stub.calls)
	}
}

func TestAnalyzeFiles(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.ts")
	newPath := filepath.Join(dir, "new.ts")
	if err := os.WriteFile(oldPath, []byte("export function a(): void {}"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(newPath, []byte("export function b(): void {}"), 0o600); err != nil {
		t.Fatal(err)
	}

	a := New()
	results, err := a.AnalyzeFiles(context.Background(), []FilePair{
		{OldPath: oldPath, NewPath: newPath, Label: "src/mod.ts"},
	}, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].Label != "src/mod.ts" {
		t.Errorf("label = %q", results[0].Label)
	}
	if !results[0].Report.HasBreakingChanges {
		t.Error("expected breaking changes for removed function")
	}
}

func TestAnalyzeFilesMissingFile(t *testing.T) {
	a := New()
	_, err := a.AnalyzeFiles(context.Background(), []FilePair{
		{OldPath: "/nonexistent/old.ts", NewPath: "/nonexistent/new.ts"},
	}, nil, false)
	if err == nil {
		t.Fatal("expected error for missing files")
	}
}
