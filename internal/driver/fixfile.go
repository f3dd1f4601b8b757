package driver

import (
	"fstrify/internal/diag"
	"fstrify/internal/fix"
)

// FixOptions configures FixFile.
type FixOptions struct {
	// MaxDiagnostics ограничивает мешок, как в ScanOptions.
	MaxDiagnostics int
	// FirstLine/LastLine — включительные 1-based границы окна; нулевая
	// пара означает весь файл.
	FirstLine uint32
	LastLine  uint32
	// All применяет все фиксы; по умолчанию применяется только первый.
	All bool
	// FixID выбирает один фикс по идентификатору.
	FixID string
	// DryRun собирает кандидатов, но файлы не трогает.
	DryRun bool
}

// FixResult carries the scan that produced the fix candidates and, unless
// the run was dry, the outcome of applying them.
type FixResult struct {
	Scan *ScanResult
	// Candidates are the fix-bearing diagnostics that were (or would be)
	// handed to the engine, in document order.
	Candidates []diag.Diagnostic
	Apply      *fix.ApplyResult
}

// FixFile scans path and applies the generated f-string fixes to it on
// disk. Sites ending past LastLine are never candidates: fix does not
// modify lines outside the requested window. Selection follows opts:
// FixID picks one fix, All picks every candidate, otherwise only the
// first candidate is applied.
func FixFile(path string, opts FixOptions) (*FixResult, error) {
	scan, err := ScanFile(path, ScanOptions{
		MaxDiagnostics: opts.MaxDiagnostics,
		FirstLine:      opts.FirstLine,
		LastLine:       opts.LastLine,
	})
	if err != nil {
		return nil, err
	}
	result := &FixResult{Scan: scan}

	for i := range scan.Sites {
		site := &scan.Sites[i]
		if !site.Convertible() {
			continue
		}
		if opts.LastLine > 0 && site.EndLine > opts.LastLine {
			continue
		}
		result.Candidates = append(result.Candidates, convertibleDiagnostic(site))
	}

	if opts.DryRun {
		return result, nil
	}

	mode := fix.ApplyFirst
	if opts.All {
		mode = fix.ApplyAll
	}
	if opts.FixID != "" {
		mode = fix.ApplyByID
	}
	applied, err := fix.Apply(scan.FileSet, result.Candidates, fix.ApplyOptions{
		Mode:     mode,
		TargetID: opts.FixID,
	})
	result.Apply = applied
	if err != nil {
		return result, err
	}
	return result, nil
}
