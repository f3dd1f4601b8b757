package diag

import "fstrify/internal/source"

// DedupReporter suppresses exact repeats before they reach the next
// Reporter. Повторная ошибка в той же точке с тем же текстом — шум
// восстановления парсера, а не новая проблема.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

// Span встраивается целиком: ключ — сравнимая структура, не строка.
type dedupKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

// NewDedupReporter wraps next with duplicate filtering.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r == nil || r.next == nil {
		return
	}
	key := dedupKey{code: code, sev: sev, span: primary, msg: msg}
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	r.next.Report(code, sev, primary, msg, notes, fixes)
}
