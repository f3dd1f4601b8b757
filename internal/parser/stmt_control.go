package parser

import (
	"fstrify/internal/ast"
	"fstrify/internal/diag"
	"fstrify/internal/source"
	"fstrify/internal/token"
)

// parseIfStmt — if/elif/else. Цепочка elif хранится по-питоновски:
// ветка Else содержит один вложенный if.
func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	ifTok := p.advance() // 'if' либо 'elif'

	cond, ok := p.parseNamedExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, okColon := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after condition"); !okColon {
		return ast.NoStmtID, false
	}
	then, okThen := p.parseBlock()
	if !okThen {
		return ast.NoStmtID, false
	}

	var orElse []ast.StmtID
	switch {
	case p.at(token.KwElif):
		nested, okNested := p.parseIfStmt()
		if !okNested {
			return ast.NoStmtID, false
		}
		orElse = []ast.StmtID{nested}
	case p.at(token.KwElse):
		p.advance()
		if _, okColon := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after 'else'"); !okColon {
			return ast.NoStmtID, false
		}
		orElse, ok = p.parseBlock()
		if !ok {
			return ast.NoStmtID, false
		}
	}

	span := ifTok.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewIf(span, cond, then, orElse), true
}

// parseWhileStmt — while с необязательным else.
func (p *Parser) parseWhileStmt() (ast.StmtID, bool) {
	whileTok := p.advance()

	cond, ok := p.parseNamedExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, okColon := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after condition"); !okColon {
		return ast.NoStmtID, false
	}
	body, okBody := p.parseBlock()
	if !okBody {
		return ast.NoStmtID, false
	}

	orElse, okElse := p.parseOptionalElse()
	if !okElse {
		return ast.NoStmtID, false
	}
	span := whileTok.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewWhile(span, cond, body, orElse), true
}

// parseForStmt — for с необязательным else; ключевые слова for (и async)
// уже съедены, startSpan указывает на первое из них.
func (p *Parser) parseForStmt(startSpan source.Span, isAsync bool) (ast.StmtID, bool) {
	target, ok := p.parseTargetList()
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.checkAssignTarget(target) {
		return ast.NoStmtID, false
	}
	if _, okIn := p.expect(token.KwIn, diag.SynExpectIn, "expected 'in' after for target"); !okIn {
		return ast.NoStmtID, false
	}
	iter, okIter := p.parseExprList()
	if !okIter {
		return ast.NoStmtID, false
	}
	if _, okColon := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after for clause"); !okColon {
		return ast.NoStmtID, false
	}
	body, okBody := p.parseBlock()
	if !okBody {
		return ast.NoStmtID, false
	}
	orElse, okElse := p.parseOptionalElse()
	if !okElse {
		return ast.NoStmtID, false
	}
	span := startSpan.Cover(p.lastSpan)
	return p.arenas.Stmts.NewFor(span, target, iter, body, orElse, isAsync), true
}

// parseOptionalElse — блок else после циклов и try.
func (p *Parser) parseOptionalElse() ([]ast.StmtID, bool) {
	if !p.at(token.KwElse) {
		return nil, true
	}
	p.advance()
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after 'else'"); !ok {
		return nil, false
	}
	return p.parseBlock()
}

// parseWithStmt — with; ключевые слова уже съедены. Скобочная форма
// списка элементов `with (a as x, b as y):` распознаётся заглядыванием:
// открывающая скобка считается обёрткой списка, если до парной закрытия
// на глубине 1 встречается 'as' или за закрытием идёт ':'.
func (p *Parser) parseWithStmt(startSpan source.Span, isAsync bool) (ast.StmtID, bool) {
	var items []ast.WithItem
	if p.at(token.LParen) && p.withItemsParenthesized() {
		p.advance() // '('
		for {
			item, okItem := p.parseWithItem()
			if !okItem {
				return ast.NoStmtID, false
			}
			items = append(items, item)
			if p.at(token.Comma) {
				p.advance()
				if p.at(token.RParen) {
					break
				}
				continue
			}
			break
		}
		if _, okClose := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after with items"); !okClose {
			return ast.NoStmtID, false
		}
	} else {
		for {
			item, okItem := p.parseWithItem()
			if !okItem {
				return ast.NoStmtID, false
			}
			items = append(items, item)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}

	if _, okColon := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after with items"); !okColon {
		return ast.NoStmtID, false
	}
	body, okBody := p.parseBlock()
	if !okBody {
		return ast.NoStmtID, false
	}
	span := startSpan.Cover(p.lastSpan)
	return p.arenas.Stmts.NewWith(span, items, body, isAsync), true
}

// withItemsParenthesized заглядывает за открывающую скобку: элементы
// в скобках отличает 'as' на глубине 1 либо ':' сразу за парной ')'.
func (p *Parser) withItemsParenthesized() bool {
	depth := 0
	for i := 0; ; i++ {
		tok := p.peekAt(i)
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				return p.peekAt(i + 1).Kind == token.Colon
			}
		case token.RBracket, token.RBrace:
			depth--
		case token.KwAs:
			if depth == 1 {
				return true
			}
		case token.EOF, token.Newline:
			return false
		}
	}
}

// parseWithItem — `контекст [as цель]`.
func (p *Parser) parseWithItem() (ast.WithItem, bool) {
	context, ok := p.parseExpr()
	if !ok {
		return ast.WithItem{}, false
	}
	item := ast.WithItem{Context: context}
	if p.at(token.KwAs) {
		p.advance()
		target, okTarget := p.parsePostfixExpr()
		if !okTarget {
			p.err(diag.SynExpectExpression, "expected target after 'as'")
			return ast.WithItem{}, false
		}
		if !p.checkAssignTarget(target) {
			return ast.WithItem{}, false
		}
		item.Target = target
	}
	return item, true
}

// parseTryStmt — try/except/except*/else/finally. Смешение обычных и
// групповых except запрещено; else требует хотя бы одного except.
func (p *Parser) parseTryStmt() (ast.StmtID, bool) {
	tryTok := p.advance()
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after 'try'"); !ok {
		return ast.NoStmtID, false
	}
	body, okBody := p.parseBlock()
	if !okBody {
		return ast.NoStmtID, false
	}

	var handlers []ast.ExceptHandler
	sawStar := false
	sawPlain := false
	for p.at(token.KwExcept) {
		exceptTok := p.advance()
		star := false
		if p.at(token.Star) {
			p.advance()
			star = true
			sawStar = true
		} else {
			sawPlain = true
		}

		handler := ast.ExceptHandler{}
		if !p.at(token.Colon) {
			excType, okType := p.parseExpr()
			if !okType {
				return ast.NoStmtID, false
			}
			handler.Type = excType
			if p.at(token.KwAs) {
				p.advance()
				name, okName := p.parseIdent()
				if !okName {
					return ast.NoStmtID, false
				}
				handler.Name = name
			}
		} else if star {
			p.err(diag.SynExpectExpression, "expected exception type after 'except*'")
			return ast.NoStmtID, false
		}

		if _, okColon := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after except clause"); !okColon {
			return ast.NoStmtID, false
		}
		hBody, okH := p.parseBlock()
		if !okH {
			return ast.NoStmtID, false
		}
		handler.Body = hBody
		handler.Span = exceptTok.Span.Cover(p.lastSpan)
		handlers = append(handlers, handler)
	}
	if sawStar && sawPlain {
		p.report(diag.SynUnexpectedToken, diag.SevError, tryTok.Span, "cannot mix 'except' and 'except*' in the same try")
		return ast.NoStmtID, false
	}

	var orElse []ast.StmtID
	if p.at(token.KwElse) {
		if len(handlers) == 0 {
			p.err(diag.SynUnexpectedToken, "'else' requires at least one 'except' clause")
			return ast.NoStmtID, false
		}
		var okElse bool
		orElse, okElse = p.parseOptionalElse()
		if !okElse {
			return ast.NoStmtID, false
		}
	}

	var finally []ast.StmtID
	if p.at(token.KwFinally) {
		p.advance()
		if _, okColon := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after 'finally'"); !okColon {
			return ast.NoStmtID, false
		}
		var okFin bool
		finally, okFin = p.parseBlock()
		if !okFin {
			return ast.NoStmtID, false
		}
	}

	if len(handlers) == 0 && len(finally) == 0 {
		p.err(diag.SynUnexpectedToken, "expected 'except' or 'finally' block")
		return ast.NoStmtID, false
	}

	span := tryTok.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewTry(span, body, handlers, orElse, finally, sawStar), true
}
