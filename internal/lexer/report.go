package lexer

import (
	"fstrify/internal/diag"
	"fstrify/internal/source"
)

// Reporter — тонкий контракт ошибок лексера, чтобы не тянуть diag в ядро
// сканера. Лексер только вызывает Report; перевод в диагностические коды
// делает ReporterAdapter.
type Reporter interface {
	Report(kind string, span source.Span, msg string)
}

type Options struct {
	Reporter Reporter // nil — ошибки глотаем, но лексинг продолжается
}

func (lx *Lexer) report(kind string, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(kind, sp, msg)
	}
}

// kindToCode переводит строковые виды ошибок лексера в диагностические коды.
var kindToCode = map[string]diag.Code{
	"UnknownChar":        diag.LexUnknownChar,
	"UnterminatedString": diag.LexUnterminatedString,
	"BadNumber":          diag.LexBadNumber,
	"TokenTooLong":       diag.LexTokenTooLong,
	"BadDedent":          diag.LexBadDedent,
	"TabError":           diag.LexTabError,
	"BadContinuation":    diag.LexBadContinuation,
}

// ReporterAdapter реализует Reporter поверх diag.Bag.
type ReporterAdapter struct {
	Bag *diag.Bag
}

func (r *ReporterAdapter) Report(kind string, span source.Span, msg string) {
	if r == nil || r.Bag == nil {
		return
	}
	code, ok := kindToCode[kind]
	if !ok {
		code = diag.LexInfo
	}
	r.Bag.Add(diag.NewError(code, span, msg))
}
