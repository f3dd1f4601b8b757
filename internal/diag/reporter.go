package diag

import "fstrify/internal/source"

// Reporter принимает диагностики от фаз: лексер и парсер не знают про Bag,
// только про этот контракт. Реализации: BagReporter, DedupReporter.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix)
}

// BagReporter folds reported diagnostics into a Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
		Fixes:    fixes,
	})
}

// ReportBuilder collects the parts of one diagnostic and hands it to a
// Reporter exactly once. Цепочка на nil-приёмнике — no-op, так что
// диагностику можно собирать условно.
type ReportBuilder struct {
	to      Reporter
	diag    Diagnostic
	emitted bool
}

func builderFor(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{
		to:   r,
		diag: New(sev, code, primary, msg),
	}
}

// ReportError starts an error diagnostic bound to r.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return builderFor(r, SevError, code, primary, msg)
}

// ReportWarning starts a warning diagnostic bound to r.
func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return builderFor(r, SevWarning, code, primary, msg)
}

// ReportInfo starts an info diagnostic bound to r.
func ReportInfo(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return builderFor(r, SevInfo, code, primary, msg)
}

// WithNote attaches secondary context.
func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b != nil {
		b.diag = b.diag.WithNote(sp, msg)
	}
	return b
}

// WithFix attaches a suggested correction built from the edits.
func (b *ReportBuilder) WithFix(title string, edits ...FixEdit) *ReportBuilder {
	if b != nil {
		b.diag = b.diag.WithFix(title, edits...)
	}
	return b
}

// Emit reports the accumulated diagnostic; repeated calls do nothing.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted || b.to == nil {
		return
	}
	b.emitted = true
	b.to.Report(b.diag.Code, b.diag.Severity, b.diag.Primary, b.diag.Message, b.diag.Notes, b.diag.Fixes)
}

// Diagnostic returns the accumulated value without emitting it.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}
