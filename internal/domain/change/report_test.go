package change

import "testing"

func TestSuggestBump(t *testing.T) {
	critical := BreakingChange{Type: TypeFunctionRemoved, Severity: SeverityCritical}
	major := BreakingChange{Type: TypeReturnTypeChanged, Severity: SeverityMajor}

	tests := []struct {
		name        string
		breaking    []BreakingChange
		nonBreaking []string
		want        Bump
	}{
		{"critical change", []BreakingChange{critical}, nil, BumpMajor},
		{"major change", []BreakingChange{major}, nil, BumpMajor},
		{"major beats additive", []BreakingChange{major}, []string{"added"}, BumpMajor},
		{"additive only", nil, []string{"Function 'x' was added"}, BumpMinor},
		{"nothing found", nil, nil, BumpPatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuggestBump(tt.breaking, tt.nonBreaking); got != tt.want {
				t.Errorf("SuggestBump = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewReport(t *testing.T) {
	r := NewReport(nil, nil)
	if r.HasBreakingChanges {
		t.Error("empty report has breaking changes")
	}
	if r.BreakingChanges == nil || r.NonBreakingChanges == nil || r.AffectedDocumentation == nil {
		t.Error("slices must be non-nil for stable JSON output")
	}
	if r.SuggestedVersionBump != BumpPatch {
		t.Errorf("bump = %s, want patch", r.SuggestedVersionBump)
	}

	r = NewReport([]BreakingChange{{Type: TypeTypeRemoved, Severity: SeverityCritical}}, nil)
	if !r.HasBreakingChanges || r.SuggestedVersionBump != BumpMajor {
		t.Errorf("breaking report = %+v", r)
	}
}

func TestCriticalCount(t *testing.T) {
	r := NewReport([]BreakingChange{
		{Severity: SeverityCritical},
		{Severity: SeverityMajor},
		{Severity: SeverityCritical},
	}, nil)
	if got := r.CriticalCount(); got != 2 {
		t.Errorf("CriticalCount = %d, want 2", got)
	}
}

func TestParseBump(t *testing.T) {
	tests := []struct {
		input   string
		want    Bump
		wantErr bool
	}{
		{"major", BumpMajor, false},
		{"MINOR", BumpMinor, false},
		{" patch ", BumpPatch, false},
		{"none", BumpNone, false},
		{"huge", "", true},
	}
	for _, tt := range tests {
		got, err := ParseBump(tt.input)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseBump(%q) = (%q, %v), want (%q, wantErr=%v)", tt.input, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestNextVersion(t *testing.T) {
	tests := []struct {
		current string
		bump    Bump
		want    string
		wantErr bool
	}{
		{"1.2.3", BumpMajor, "2.0.0", false},
		{"1.2.3", BumpMinor, "1.3.0", false},
		{"1.2.3", BumpPatch, "1.2.4", false},
		{"1.2.3", BumpNone, "1.2.3", false},
		{"v1.2.3", BumpMajor, "2.0.0", false},
		{"1.2.3-beta.1", BumpPatch, "1.2.3", false},
		{"not-a-version", BumpMajor, "", true},
		{"1.2.3", Bump("huge"), "", true},
	}

	for _, tt := range tests {
		got, err := NextVersion(tt.current, tt.bump)
		if (err != nil) != tt.wantErr {
			t.Errorf("NextVersion(%q, %s) err = %v, wantErr %v", tt.current, tt.bump, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("NextVersion(%q, %s) = %q, want %q", tt.current, tt.bump, got, tt.want)
		}
	}
}
