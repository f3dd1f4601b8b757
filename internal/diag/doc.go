// Package diag defines the diagnostic model shared by all pipeline phases.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures for findings
//     produced by the lexer, the parser and the percent-format scanner.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting layers.
//   - Model rewrite suggestions as structured span edits that the fix engine
//     can apply to the original file bytes.
//
// # Scope
//
// Package diag performs no formatting, IO or CLI integration. Rendering lives
// in internal/diagfmt; applying fixes lives in internal/fix and the driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//   - Fixes – optional Fix records describing how to address the problem.
//
// A Fix carries a Title and a list of FixEdit span replacements. Edits are
// expressed over the original file bytes, which is what lets the rewriter
// guarantee that untouched regions stay byte-identical.
//
// # Emitting diagnostics
//
// Phases use a diag.Reporter to decouple emission from storage. A phase
// either calls Reporter.Report directly or builds a richer record through
// ReportBuilder (ReportError/ReportWarning/ReportInfo + WithNote/WithFix +
// Emit). BagReporter aggregates into a Bag, which supports a cap, sorting,
// and deduplication; DedupReporter filters repeats before they reach the Bag.
//
// Keep the data model deterministic: no side effects, no lazily computed
// fields, so results can be cached and compared in golden tests.
package diag
