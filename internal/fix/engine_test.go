package fix

import (
	"os"
	"path/filepath"
	"testing"

	"fstrify/internal/diag"
	"fstrify/internal/source"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test file: %v", err)
	}
	return path
}

func TestGatherCandidatesSkipsEmptyFix(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte("x = 1\n"))
	span := source.Span{File: fileID, Start: 0, End: 1}

	diagnostics := []diag.Diagnostic{{
		Code:    diag.RwrSiteConvertible,
		Message: "site is convertible",
		Primary: span,
		Fixes:   []diag.Fix{{Title: "empty fix"}},
	}}

	candidates, skips := gatherCandidates(diagnostics)

	if len(candidates) != 0 {
		t.Fatalf("expected 0 candidates, got %d", len(candidates))
	}
	if len(skips) != 1 {
		t.Fatalf("expected 1 skipped fix, got %d", len(skips))
	}
	if skips[0].Reason != "fix has no edits" {
		t.Fatalf("expected no-edits reason, got %q", skips[0].Reason)
	}
}

// TestGatherCandidatesSkipsDuplicateFixIDs проверяет, что два одинаковых
// диагноза с одинаковым span не дают два кандидата с одним id.
func TestGatherCandidatesSkipsDuplicateFixIDs(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte("x = 1\n"))
	span := source.Span{File: fileID, Start: 0, End: 1}

	mk := func(title string) diag.Diagnostic {
		return diag.NewInfo(diag.RwrSiteConvertible, span, "site is convertible").
			WithFix(title, diag.FixEdit{Span: span, NewText: "y"})
	}
	diagnostics := []diag.Diagnostic{mk("first"), mk("second")}

	candidates, skips := gatherCandidates(diagnostics)

	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if len(skips) != 1 {
		t.Fatalf("expected 1 skipped fix, got %d", len(skips))
	}
	if skips[0].Reason != "duplicate fix id" {
		t.Fatalf("expected duplicate fix reason, got %q", skips[0].Reason)
	}
}

func TestApplyRewritesFileInPlace(t *testing.T) {
	path := writeTestFile(t, "sample.py", "x = '%s' % name\n")

	fs := source.NewFileSet()
	fs.SetBaseDir(filepath.Dir(path))
	fileID, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	site := source.Span{File: fileID, Start: 4, End: 15} // '%s' % name
	d := diag.NewInfo(diag.RwrSiteConvertible, site, "site is convertible").
		WithFixSuggestion(ReplaceSpan("convert to f-string", site, "f'{name}'"))

	result, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyAll})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if len(result.Applied) != 1 {
		t.Fatalf("expected 1 applied fix, got %d", len(result.Applied))
	}
	if len(result.FileChanges) != 1 {
		t.Fatalf("expected 1 file change, got %d", len(result.FileChanges))
	}
	if result.FileChanges[0].EditCount != 1 {
		t.Fatalf("expected 1 edit, got %d", result.FileChanges[0].EditCount)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "x = f'{name}'\n" {
		t.Fatalf("unexpected file content: %q", got)
	}
}

// TestApplyAllShiftsLaterSpans проверяет пересчёт смещений: первый fix меняет
// длину текста, второй задан в координатах исходного файла.
func TestApplyAllShiftsLaterSpans(t *testing.T) {
	path := writeTestFile(t, "sample.py", "a = '%s' % x\nb = '%s' % y\n")

	fs := source.NewFileSet()
	fs.SetBaseDir(filepath.Dir(path))
	fileID, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	first := source.Span{File: fileID, Start: 4, End: 12}   // '%s' % x
	second := source.Span{File: fileID, Start: 17, End: 25} // '%s' % y
	diags := []diag.Diagnostic{
		diag.NewInfo(diag.RwrSiteConvertible, first, "site is convertible").
			WithFixSuggestion(ReplaceSpan("convert to f-string", first, "f'{x}'")),
		diag.NewInfo(diag.RwrSiteConvertible, second, "site is convertible").
			WithFixSuggestion(ReplaceSpan("convert to f-string", second, "f'{y}'")),
	}

	result, err := Apply(fs, diags, ApplyOptions{Mode: ApplyAll})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(result.Applied) != 2 {
		t.Fatalf("expected 2 applied fixes, got %d", len(result.Applied))
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "a = f'{x}'\nb = f'{y}'\n" {
		t.Fatalf("unexpected file content: %q", got)
	}
}

func TestApplyFirstAppliesOnlyFirst(t *testing.T) {
	path := writeTestFile(t, "sample.py", "a = '%s' % x\nb = '%s' % y\n")

	fs := source.NewFileSet()
	fs.SetBaseDir(filepath.Dir(path))
	fileID, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	first := source.Span{File: fileID, Start: 4, End: 12}
	second := source.Span{File: fileID, Start: 17, End: 25}
	diags := []diag.Diagnostic{
		diag.NewInfo(diag.RwrSiteConvertible, first, "site is convertible").
			WithFixSuggestion(ReplaceSpan("convert to f-string", first, "f'{x}'")),
		diag.NewInfo(diag.RwrSiteConvertible, second, "site is convertible").
			WithFixSuggestion(ReplaceSpan("convert to f-string", second, "f'{y}'")),
	}

	result, err := Apply(fs, diags, ApplyOptions{Mode: ApplyFirst})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(result.Applied) != 1 {
		t.Fatalf("expected 1 applied fix, got %d", len(result.Applied))
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "a = f'{x}'\nb = '%s' % y\n" {
		t.Fatalf("unexpected file content: %q", got)
	}
}

func TestApplyByID(t *testing.T) {
	path := writeTestFile(t, "sample.py", "a = '%s' % x\nb = '%s' % y\n")

	fs := source.NewFileSet()
	fs.SetBaseDir(filepath.Dir(path))
	fileID, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	first := source.Span{File: fileID, Start: 4, End: 12}
	second := source.Span{File: fileID, Start: 17, End: 25}
	secondDiag := diag.NewInfo(diag.RwrSiteConvertible, second, "site is convertible").
		WithFixSuggestion(ReplaceSpan("convert to f-string", second, "f'{y}'"))
	diags := []diag.Diagnostic{
		diag.NewInfo(diag.RwrSiteConvertible, first, "site is convertible").
			WithFixSuggestion(ReplaceSpan("convert to f-string", first, "f'{x}'")),
		secondDiag,
	}

	result, err := Apply(fs, diags, ApplyOptions{Mode: ApplyByID, TargetID: FixID(secondDiag, 0)})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(result.Applied) != 1 {
		t.Fatalf("expected 1 applied fix, got %d", len(result.Applied))
	}
	if result.Applied[0].ID != FixID(secondDiag, 0) {
		t.Fatalf("applied wrong fix: %s", result.Applied[0].ID)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "a = '%s' % x\nb = f'{y}'\n" {
		t.Fatalf("unexpected file content: %q", got)
	}
}

func TestApplyByIDNotFound(t *testing.T) {
	path := writeTestFile(t, "sample.py", "a = '%s' % x\n")

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	span := source.Span{File: fileID, Start: 4, End: 12}
	diags := []diag.Diagnostic{
		diag.NewInfo(diag.RwrSiteConvertible, span, "site is convertible").
			WithFixSuggestion(ReplaceSpan("convert to f-string", span, "f'{x}'")),
	}

	result, err := Apply(fs, diags, ApplyOptions{Mode: ApplyByID, TargetID: "no-such-id"})
	if err != ErrNoFixes {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Reason != "fix id not found" {
		t.Fatalf("expected id-not-found skip, got %+v", result.Skipped)
	}
}

func TestApplySkipsVirtualFile(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("<stdin>", []byte("a = '%s' % x\n"))

	span := source.Span{File: fileID, Start: 4, End: 12}
	diags := []diag.Diagnostic{
		diag.NewInfo(diag.RwrSiteConvertible, span, "site is convertible").
			WithFixSuggestion(ReplaceSpan("convert to f-string", span, "f'{x}'")),
	}

	result, err := Apply(fs, diags, ApplyOptions{Mode: ApplyAll})
	if err != ErrNoFixes {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Reason != "target file is virtual" {
		t.Fatalf("expected virtual-file skip, got %+v", result.Skipped)
	}
}

// TestApplySkipsConflictingFix проверяет, что пересекающийся fix пропускается,
// а не накладывается поверх уже применённого.
func TestApplySkipsConflictingFix(t *testing.T) {
	path := writeTestFile(t, "sample.py", "a = '%s' % x\n")

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	span := source.Span{File: fileID, Start: 4, End: 12}
	overlapping := source.Span{File: fileID, Start: 6, End: 10}
	diags := []diag.Diagnostic{
		diag.NewInfo(diag.RwrSiteConvertible, span, "site is convertible").
			WithFixSuggestion(ReplaceSpan("convert to f-string", span, "f'{x}'")),
		diag.NewInfo(diag.RwrSiteConvertible, overlapping, "site is convertible").
			WithFixSuggestion(ReplaceSpan("convert to f-string", overlapping, "oops")),
	}

	result, err := Apply(fs, diags, ApplyOptions{Mode: ApplyAll})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(result.Applied) != 1 {
		t.Fatalf("expected 1 applied fix, got %d", len(result.Applied))
	}
	if len(result.Skipped) != 1 {
		t.Fatalf("expected 1 skipped fix, got %d", len(result.Skipped))
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "a = f'{x}'\n" {
		t.Fatalf("unexpected file content: %q", got)
	}
}

func TestApplyPreservesFileMode(t *testing.T) {
	path := writeTestFile(t, "sample.py", "a = '%s' % x\n")
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	span := source.Span{File: fileID, Start: 4, End: 12}
	diags := []diag.Diagnostic{
		diag.NewInfo(diag.RwrSiteConvertible, span, "site is convertible").
			WithFixSuggestion(ReplaceSpan("convert to f-string", span, "f'{x}'")),
	}

	if _, err := Apply(fs, diags, ApplyOptions{Mode: ApplyAll}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected mode 0600, got %v", info.Mode().Perm())
	}
}

func TestSpansConflict(t *testing.T) {
	mk := func(start, end uint32) diag.FixEdit {
		return diag.FixEdit{Span: source.Span{File: 1, Start: start, End: end}}
	}

	tests := []struct {
		name string
		a, b diag.FixEdit
		want bool
	}{
		{"disjoint", mk(0, 2), mk(5, 7), false},
		{"touching ends", mk(0, 5), mk(5, 7), false},
		{"overlap", mk(0, 5), mk(3, 7), true},
		{"nested", mk(0, 10), mk(3, 5), true},
		{"two inserts at same point", mk(3, 3), mk(3, 3), false},
		{"insert inside span", mk(2, 6), mk(4, 4), true},
		{"insert at span start", mk(2, 6), mk(2, 2), true},
		{"insert at span end", mk(2, 6), mk(6, 6), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := spansConflict(tt.a, tt.b); got != tt.want {
				t.Errorf("spansConflict = %v, want %v", got, tt.want)
			}
			if got := spansConflict(tt.b, tt.a); got != tt.want {
				t.Errorf("spansConflict reversed = %v, want %v", got, tt.want)
			}
		})
	}
}
