package lexer

import (
	"fstrify/internal/token"
)

// Поддержка: 0, 123, 0b..., 0o..., 0x..., 1.0, .5, 1., 1e-3, мнимые 1j/2.5J.
// '_' между цифрами разрешаем мягко (остаётся в Token.Text); грубые ошибки
// (пустая база, пустая экспонента) — репорт в opts.Reporter и Invalid.
// В Python точка после цифр — всегда дробная часть: "1..x" это "1." "." "x".
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	switch {
	case lx.cursor.Peek() == '.':
		// ".digits" (вызвано после isNumberAfterDot)
		lx.cursor.Bump()
		kind = token.FloatLit
		lx.eatDecDigits()

	case lx.cursor.Peek() == '0' && lx.hasBasePrefix():
		lx.cursor.Bump() // '0'
		base := lx.cursor.Bump()
		digits := 0
		isDigit := isHex // 'x' / 'X'
		switch base {
		case 'b', 'B':
			isDigit = isBin
		case 'o', 'O':
			isDigit = isOct
		}
		for {
			b := lx.cursor.Peek()
			if isDigit(b) {
				digits++
			} else if b != '_' {
				break
			}
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		if digits == 0 {
			lx.report("BadNumber", sp, "missing digits after base prefix")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		return token.Token{Kind: token.IntLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}

	default:
		// десятичная целая часть
		lx.eatDecDigits()
		// дробная часть; "1." допустимо
		if lx.cursor.Peek() == '.' {
			lx.cursor.Bump()
			kind = token.FloatLit
			lx.eatDecDigits()
		}
	}

	// экспонента
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		kind = token.FloatLit
		if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.report("BadNumber", sp, "expected digit after exponent")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.eatDecDigits()
	}

	// мнимый суффикс
	if b := lx.cursor.Peek(); b == 'j' || b == 'J' {
		lx.cursor.Bump()
		kind = token.ImagLit
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// "0" + b/o/x?
func (lx *Lexer) hasBasePrefix() bool {
	_, b1, ok := lx.cursor.Peek2()
	if !ok {
		return false
	}
	switch b1 {
	case 'b', 'B', 'o', 'O', 'x', 'X':
		return true
	}
	return false
}

func (lx *Lexer) eatDecDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}
