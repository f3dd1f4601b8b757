package lexer

import (
	"fstrify/internal/token"
)

// collectInlineTrivia собирает trivia внутри логической строки:
//   - ' ', '\t', '\f' коалесцируются в один TriviaSpace
//   - '#'-комментарий до конца строки -> TriviaComment
//   - '\' перед переводом строки -> TriviaContinuation (строка продолжается)
//   - переводы строк при depth > 0 -> TriviaNewline (скобки гасят Newline)
func (lx *Lexer) collectInlineTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' || b == '\f' {
			start := lx.cursor.Mark()
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\f' {
					break
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaSpace,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
			continue
		}

		if b == '#' {
			lx.scanCommentIntoHold()
			continue
		}

		if b == '\\' {
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '\\' && (b1 == '\n' || b1 == '\r') {
				start := lx.cursor.Mark()
				lx.cursor.Bump() // '\'
				lx.eatLineTerminator()
				sp := lx.cursor.SpanFrom(start)
				lx.hold = append(lx.hold, token.Trivia{
					Kind: token.TriviaContinuation,
					Span: sp,
					Text: string(lx.file.Content[sp.Start:sp.End]),
				})
				continue
			}
			// одиночный '\' — ошибку выдаст scanOperatorOrPunct
			break
		}

		if (b == '\n' || b == '\r') && lx.depth > 0 {
			lx.scanNewlineIntoHold()
			continue
		}

		break
	}
}

// '#'-комментарий: до конца строки, сам перевод строки не входит.
func (lx *Lexer) scanCommentIntoHold() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' || b == '\r' {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: token.TriviaComment,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

// Перевод строки как trivia: пустые строки, строки внутри скобок.
func (lx *Lexer) scanNewlineIntoHold() {
	start := lx.cursor.Mark()
	lx.eatLineTerminator()
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: token.TriviaNewline,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

// eatLineTerminator съедает '\n', '\r\n' или одиночный '\r'.
func (lx *Lexer) eatLineTerminator() {
	if lx.cursor.Eat('\r') {
		lx.cursor.Eat('\n')
		return
	}
	lx.cursor.Eat('\n')
}
