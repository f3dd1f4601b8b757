package parser

import (
	"slices"

	"fstrify/internal/ast"
	"fstrify/internal/diag"
	"fstrify/internal/lexer"
	"fstrify/internal/source"
	"fstrify/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser — состояние парсера на один файл.
type Parser struct {
	lx        *lexer.Lexer    // поток токенов
	buf       []token.Token   // заглянутые вперёд токены (peekAt)
	arenas    *ast.Builder    // построитель аренных узлов
	file      ast.FileID      // текущий FileID (в AST)
	fs        *source.FileSet // нужен для спанов/путей при надобности
	opts      Options
	lastSpan  source.Span // span последнего съеденного токена для лучшей диагностики
	inPattern bool        // внутри образца case: разрешает 'as' и запрещает тернарный if
}

// ParseFile — входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	firstSpan := lx.Peek().Span
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.NewFile(source.Span{File: firstSpan.File, Start: firstSpan.Start, End: firstSpan.Start}),
		fs:       fs,
		opts:     opts,
		lastSpan: source.Span{File: firstSpan.File, Start: firstSpan.Start, End: firstSpan.Start},
	}

	p.parseModule()
	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{
		File: p.file,
		Bag:  bag,
	}
}

// peek возвращает текущий токен, не съедая его.
func (p *Parser) peek() token.Token {
	return p.peekAt(0)
}

// peekAt заглядывает на n токенов вперёд (0 — текущий). Буфер нужен
// для мягких ключевых слов: у match решение принимается по следующему
// токену.
func (p *Parser) peekAt(n int) token.Token {
	for len(p.buf) <= n {
		p.buf = append(p.buf, p.lx.Next())
	}
	return p.buf[n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) at_or(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseModule — основной цикл верхнего уровня: пока не EOF — parseStatement.
func (p *Parser) parseModule() {
	startSpan := p.peek().Span
	var line []ast.StmtID
	for !p.at(token.EOF) {
		line = line[:0]
		if !p.parseStatement(&line) {
			p.resyncLine()
			continue
		}
		for _, id := range line {
			p.arenas.PushTop(p.file, id)
		}
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.lastSpan)
}

// resyncLine — восстановление после ошибки: прокручиваем до конца логической
// строки. Вложенные блоки после точки ошибки пропускаются целиком, чтобы не
// рассинхронизировать Indent/Dedent.
func (p *Parser) resyncLine() {
	depth := 0
	for {
		switch p.peek().Kind {
		case token.EOF:
			return
		case token.Indent:
			depth++
			p.advance()
		case token.Dedent:
			if depth == 0 {
				return
			}
			depth--
			p.advance()
			if depth == 0 {
				return
			}
		case token.Newline:
			p.advance()
			if depth == 0 && !p.at(token.Indent) {
				return
			}
		default:
			p.advance()
		}
	}
}

// resyncUntil прокручивает токены до одного из стоп-токенов (не съедая его).
// EOF, Newline, Indent и Dedent останавливают всегда.
func (p *Parser) resyncUntil(stop ...token.Kind) {
	for {
		k := p.peek().Kind
		if k == token.EOF || k == token.Newline || k == token.Indent || k == token.Dedent {
			return
		}
		if slices.Contains(stop, k) {
			return
		}
		p.advance()
	}
}

// parseIdent — утилита: ожидает Ident и интернирует его, возвращает source.StringID.
// На ошибке — репорт SynExpectIdentifier.
func (p *Parser) parseIdent() (source.StringID, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.arenas.InternName(tok.Text), true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got \""+p.peek().Text+"\"")
	return source.NoStringID, false
}

// atSoftKeyword проверяет, что текущий токен — Ident с данным текстом.
func (p *Parser) atSoftKeyword(text string) bool {
	tok := p.peek()
	return tok.Kind == token.Ident && tok.Text == text
}

// matchStmtAhead решает, начинает ли Ident "match" оператор match.
// `match(...)` и `match[...]` вплотную к имени — обращение к переменной;
// со следующим токеном, который не может продолжать имя, — оператор.
func (p *Parser) matchStmtAhead() bool {
	next := p.peekAt(1)
	switch next.Kind {
	case token.Ident, token.IntLit, token.FloatLit, token.ImagLit, token.StringLit,
		token.KwTrue, token.KwFalse, token.KwNone,
		token.KwNot, token.KwLambda, token.KwAwait,
		token.Minus, token.Plus, token.Tilde, token.LBrace, token.Star:
		return true
	case token.LParen, token.LBracket:
		return next.Span.Start != p.peek().Span.End
	default:
		return false
	}
}
