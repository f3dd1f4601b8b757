package lexer

import (
	"fstrify/internal/pystr"
	"fstrify/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Идентификатор, за которым сразу идёт кавычка и который является допустимым
// строковым префиксом (r, b, u, f и их сочетания), продолжается как строковый
// литерал. Token.Text — ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
	}
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			// fallback на оператор
			return lx.scanOperatorOrPunct()
		}
	} else if !isIdentStartRune(r) {
		return lx.scanOperatorOrPunct()
	}
	lx.bumpBy(sz)

	// Хвост: ASCII-байты по быстрой ветке, остальное декодируем. Смешанные
	// имена вроде x_привет — один идентификатор, не два.
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpBy(sz2)
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	// строковый префикс: r'...', rb"...", f'...' и т.д.
	if b := lx.cursor.Peek(); (b == '\'' || b == '"') && pystr.ValidPrefix(text) {
		return lx.scanString(start)
	}

	// Проверка на ключевое слово (регистрозависимо; match/case/type/_ — Ident)
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}

	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
