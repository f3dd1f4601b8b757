package lexer

import (
	"fstrify/internal/token"
)

// scanString сканирует строковый литерал целиком, префикс и кавычки включая:
// '...', "...", '''...''', """...""" и любые префиксы (r/b/u/f и сочетания).
// start — метка начала литерала (до префикса); курсор стоит на кавычке.
// Token.Text — ровно исходный срез; раскодирование тела живёт в pystr.
// Backslash экранирует следующий символ и в raw-строках: для ГРАНИЦ литерала
// это правило CPython (r'\'' — завершённая строка).
func (lx *Lexer) scanString(start Mark) token.Token {
	quote := lx.cursor.Bump() // открывающая ' или "
	triple := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == quote && b1 == quote {
		lx.cursor.Bump()
		lx.cursor.Bump()
		triple = true
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()

		if b == '\\' {
			// съесть '\' и следующий символ; '\' + CRLF — как пару
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			if lx.cursor.Peek() == '\r' {
				lx.cursor.Bump()
				lx.cursor.Eat('\n')
				continue
			}
			lx.cursor.Bump()
			continue
		}

		if b == quote {
			lx.cursor.Bump()
			if !triple {
				sp := lx.cursor.SpanFrom(start)
				return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
			}
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == quote && b1 == quote {
				lx.cursor.Bump()
				lx.cursor.Bump()
				sp := lx.cursor.SpanFrom(start)
				return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
			}
			continue
		}

		if !triple && (b == '\n' || b == '\r') {
			sp := lx.cursor.SpanFrom(start)
			lx.report("UnterminatedString", sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}

		lx.cursor.Bump()
	}

	// EOF без закрывающей кавычки
	sp := lx.cursor.SpanFrom(start)
	lx.report("UnterminatedString", sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
