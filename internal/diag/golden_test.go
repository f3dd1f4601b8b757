package diag

import (
	"testing"

	"fstrify/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	mainFile := fs.Add("/workspace/app/main.py", []byte("a\nb\n"), 0)
	utilFile := fs.Add("/workspace/app/util.py", []byte("x\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: mainFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: utilFile, Start: 0, End: 1}, Msg: "declared here"},
				{Span: source.Span{File: mainFile, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevInfo,
			Code:     RwrSkipArity,
			Message:  "another",
			Primary:  source.Span{File: mainFile, Start: 2, End: 3},
		},
	}

	expected := "error SYN2001 app/main.py:1:1 first line second\n" +
		"info RWR3002 app/main.py:2:1 another\n" +
		"note SYN2001 app/main.py:2:1 note line\n" +
		"note SYN2001 app/util.py:1:1 declared here"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatShortDiagnosticsSkipsNotes(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	file := fs.Add("/workspace/m.py", []byte("a\n"), 0)
	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     IOCacheError,
			Message:  "cache miss",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes:    []Note{{Span: source.Span{File: file, Start: 0, End: 1}, Msg: "extra"}},
		},
	}

	expected := "warning IO4003 m.py:1:1 cache miss"
	if got := FormatShortDiagnostics(diags, fs, false); got != expected {
		t.Fatalf("notes must be excluded:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatShortDiagnosticsEmpty(t *testing.T) {
	fs := source.NewFileSet()
	if got := FormatShortDiagnostics(nil, fs, true); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
	if got := FormatShortDiagnostics([]Diagnostic{{}}, nil, true); got != "" {
		t.Fatalf("expected empty string for nil fileset, got %q", got)
	}
}
