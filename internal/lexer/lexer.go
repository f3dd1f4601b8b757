package lexer

import (
	"fstrify/internal/source"
	"fstrify/internal/token"
)

// Токены длиннее этого лимита обрываем: защита от убежавшего сканера.
const maxTokenLength = 1 << 20

// Ширина табуляции при измерении отступов (правило CPython).
const tabSize = 8

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	look    *token.Token   // 1 элементный буфер для токена
	hold    []token.Trivia // накопленные leading trivia
	pending []token.Token  // очередь структурных токенов (Indent/Dedent/Newline)

	indents    []uint32 // стек отступов (табуляция = 8)
	altIndents []uint32 // стек отступов (табуляция = 1) для проверки табов

	depth        int  // глубина открытых скобок: внутри них Newline — trivia
	atLineStart  bool // отступ следующей логической строки ещё не измерен
	eofFlushed   bool
	lineHasToken bool // на текущей логической строке уже был значимый токен
}

func New(file *source.File, opts Options) *Lexer {
	lx := &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts,
		indents:     []uint32{0},
		altIndents:  []uint32{0},
		atLineStart: true,
	}
	// BOM остаётся в Content; лексим после него
	lx.cursor.Off = file.ContentStart()
	return lx
}

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// Структурные токены (Newline в конце логической строки, Indent, Dedent)
// тоже значимые; после EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	// 1) Если есть look — вернуть его и очистить
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	for {
		// 2) Очередь структурных токенов (Leading к ним не клеим)
		if len(lx.pending) > 0 {
			tok := lx.pending[0]
			lx.pending = lx.pending[1:]
			return tok
		}

		// 3) Начало физической строки вне скобок: измерить отступ
		if lx.atLineStart && lx.depth == 0 {
			lx.scanLineStart()
			continue
		}

		// 4) Trivia внутри строки: пробелы, комментарий, continuation
		lx.collectInlineTrivia()

		if lx.cursor.EOF() {
			lx.flushAtEOF()
			if len(lx.pending) > 0 {
				continue
			}
			// trivia хвоста файла приклеивается к EOF
			tok := token.Token{Kind: token.EOF, Span: lx.emptySpan()}
			tok.Leading = lx.hold
			lx.hold = nil
			return tok
		}

		ch := lx.cursor.Peek()

		// 5) Конец логической строки (depth == 0; в скобках съедено как trivia)
		if ch == '\n' || ch == '\r' {
			if !lx.lineHasToken {
				// логическая строка без единого токена — Newline не нужен
				lx.scanNewlineIntoHold()
				lx.atLineStart = true
				continue
			}
			start := lx.cursor.Mark()
			lx.eatLineTerminator()
			sp := lx.cursor.SpanFrom(start)
			lx.atLineStart = true
			lx.lineHasToken = false
			tok := token.Token{Kind: token.Newline, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
			tok.Leading = lx.hold
			lx.hold = nil
			return tok
		}

		// 6) Выбрать сканер по первому байту
		tok := lx.scanToken(ch)

		if tok.Span.Len() > maxTokenLength {
			lx.report("TokenTooLong", tok.Span, "token too long")
			lx.cursor.Off = lx.cursor.Limit
			tok.Kind = token.Invalid
		}

		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			lx.depth++
		case token.RParen, token.RBracket, token.RBrace:
			if lx.depth > 0 {
				lx.depth--
			}
		}

		lx.lineHasToken = true
		tok.Leading = lx.hold
		lx.hold = nil
		return tok
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) scanToken(ch byte) token.Token {
	switch {
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		// буква, '_' или Unicode → scanIdentOrKeyword() разберётся;
		// строковый префикс (r'...', f"...") тоже начинается здесь
		return lx.scanIdentOrKeyword()

	case isDec(ch):
		return lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		// .5 → число
		return lx.scanNumber()

	case ch == '\'' || ch == '"':
		return lx.scanString(lx.cursor.Mark())

	default:
		return lx.scanOperatorOrPunct()
	}
}

// scanLineStart измеряет отступ очередной физической строки (вне скобок).
// Пустые и комментарные строки целиком уходят в trivia, отступ для них не
// считается; для значимой строки отступ сравнивается со стеком и Indent или
// Dedent(ы) встают в очередь pending.
func (lx *Lexer) scanLineStart() {
	for {
		start := lx.cursor.Mark()
		col, altCol := uint32(0), uint32(0)
	measure:
		for {
			switch lx.cursor.Peek() {
			case ' ':
				col++
				altCol++
			case '\t':
				col = col/tabSize*tabSize + tabSize
				altCol++
			case '\f':
				// formfeed сбрасывает счёт (правило CPython)
				col, altCol = 0, 0
			default:
				break measure
			}
			lx.cursor.Bump()
		}
		if sp := lx.cursor.SpanFrom(start); !sp.Empty() {
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaSpace,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
		}

		if lx.cursor.EOF() {
			lx.atLineStart = false
			return
		}
		b := lx.cursor.Peek()
		if b == '#' {
			lx.scanCommentIntoHold()
			if lx.cursor.EOF() {
				lx.atLineStart = false
				return
			}
			b = lx.cursor.Peek()
		}
		if b == '\n' || b == '\r' {
			// пустая или комментарная строка
			lx.scanNewlineIntoHold()
			continue
		}

		lx.compareIndent(col, altCol, lx.cursor.SpanFrom(start))
		lx.atLineStart = false
		return
	}
}

// compareIndent сверяет отступ значимой строки со стеком уровней.
// Несогласованные табы ловим двойным счётом: tabSize 8 и tabSize 1 должны
// упорядочивать уровни одинаково.
func (lx *Lexer) compareIndent(col, altCol uint32, sp source.Span) {
	top := lx.indents[len(lx.indents)-1]
	altTop := lx.altIndents[len(lx.altIndents)-1]

	switch {
	case col == top:
		if altCol != altTop {
			lx.report("TabError", sp, "inconsistent use of tabs and spaces in indentation")
		}

	case col > top:
		if altCol <= altTop {
			lx.report("TabError", sp, "inconsistent use of tabs and spaces in indentation")
		}
		lx.indents = append(lx.indents, col)
		lx.altIndents = append(lx.altIndents, altCol)
		lx.pending = append(lx.pending, token.Token{Kind: token.Indent, Span: lx.emptySpan()})

	default:
		for len(lx.indents) > 1 && col < lx.indents[len(lx.indents)-1] {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.altIndents = lx.altIndents[:len(lx.altIndents)-1]
			lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: lx.emptySpan()})
		}
		if col != lx.indents[len(lx.indents)-1] {
			lx.report("BadDedent", sp, "unindent does not match any outer indentation level")
			// восстановление: строка считается на ближайшем внешнем уровне
		} else if altCol != lx.altIndents[len(lx.altIndents)-1] {
			lx.report("TabError", sp, "inconsistent use of tabs and spaces in indentation")
		}
	}
}

// flushAtEOF дочищает конец файла: синтетический Newline, если последняя
// логическая строка не была завершена, и Dedent на каждый открытый уровень.
func (lx *Lexer) flushAtEOF() {
	if lx.eofFlushed {
		return
	}
	lx.eofFlushed = true
	if lx.lineHasToken {
		lx.pending = append(lx.pending, token.Token{Kind: token.Newline, Span: lx.emptySpan()})
		lx.lineHasToken = false
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.altIndents = lx.altIndents[:len(lx.altIndents)-1]
		lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: lx.emptySpan()})
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
