package parser

import (
	"fstrify/internal/ast"
	"fstrify/internal/diag"
	"fstrify/internal/source"
	"fstrify/internal/token"
)

// parseAtomExpr — атомы: имена, литералы, константы и скобочные формы.
func (p *Parser) parseAtomExpr() (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.arenas.Exprs.NewName(tok.Span, p.arenas.InternName(tok.Text)), true
	case token.IntLit:
		p.advance()
		return p.arenas.Exprs.NewNum(tok.Span, ast.NumInt, p.arenas.Strings.Intern(tok.Text)), true
	case token.FloatLit:
		p.advance()
		return p.arenas.Exprs.NewNum(tok.Span, ast.NumFloat, p.arenas.Strings.Intern(tok.Text)), true
	case token.ImagLit:
		p.advance()
		return p.arenas.Exprs.NewNum(tok.Span, ast.NumImag, p.arenas.Strings.Intern(tok.Text)), true
	case token.StringLit:
		return p.parseStringAtom()
	case token.KwTrue:
		p.advance()
		return p.arenas.Exprs.NewConst(tok.Span, ast.ConstTrue), true
	case token.KwFalse:
		p.advance()
		return p.arenas.Exprs.NewConst(tok.Span, ast.ConstFalse), true
	case token.KwNone:
		p.advance()
		return p.arenas.Exprs.NewConst(tok.Span, ast.ConstNone), true
	case token.Ellipsis:
		p.advance()
		return p.arenas.Exprs.NewConst(tok.Span, ast.ConstEllipsis), true
	case token.LParen:
		return p.parseParenAtom()
	case token.LBracket:
		return p.parseListAtom()
	case token.LBrace:
		if p.inPattern {
			return p.parseMappingPattern()
		}
		return p.parseBraceAtom()
	default:
		p.err(diag.SynExpectExpression, "expected expression, got \""+tok.Text+"\"")
		return ast.NoExprID, false
	}
}

// parseStringAtom — строковый литерал с неявной конкатенацией соседних
// частей: 'a' "b" становится одним узлом с двумя частями.
func (p *Parser) parseStringAtom() (ast.ExprID, bool) {
	first := p.advance()
	parts := []source.Span{first.Span}
	span := first.Span
	for p.at(token.StringLit) {
		tok := p.advance()
		parts = append(parts, tok.Span)
		span = span.Cover(tok.Span)
	}
	return p.arenas.Exprs.NewStr(span, parts), true
}

// parseParenAtom — круглые скобки: пустой кортеж, группировка,
// кортеж с запятыми, генератор или (yield ...).
func (p *Parser) parseParenAtom() (ast.ExprID, bool) {
	open := p.advance()

	if p.at(token.RParen) {
		closeTok := p.advance()
		return p.arenas.Exprs.NewTuple(open.Span.Cover(closeTok.Span), nil), true
	}

	if p.at(token.KwYield) && !p.inPattern {
		inner, ok := p.parseYieldExpr()
		if !ok {
			return ast.NoExprID, false
		}
		closeTok, okClose := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'")
		if !okClose {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewGroup(open.Span.Cover(closeTok.Span), inner), true
	}

	first, ok := p.parseParenElement()
	if !ok {
		return ast.NoExprID, false
	}

	if p.atCompFor() {
		clauses, okClauses := p.parseCompClauses()
		if !okClauses {
			return ast.NoExprID, false
		}
		closeTok, okClose := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after generator expression")
		if !okClose {
			return ast.NoExprID, false
		}
		span := open.Span.Cover(closeTok.Span)
		return p.arenas.Exprs.NewComp(span, ast.CompGenerator, ast.NoExprID, first, clauses), true
	}

	if p.at(token.Comma) {
		elements := []ast.ExprID{first}
		for p.at(token.Comma) {
			p.advance()
			if p.at(token.RParen) {
				break
			}
			element, okElement := p.parseParenElement()
			if !okElement {
				return ast.NoExprID, false
			}
			elements = append(elements, element)
		}
		closeTok, okClose := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'")
		if !okClose {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewTuple(open.Span.Cover(closeTok.Span), elements), true
	}

	closeTok, okClose := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'")
	if !okClose {
		return ast.NoExprID, false
	}
	if _, isStarred := p.arenas.Exprs.Starred(first); isStarred {
		p.report(diag.SynBadStarExpr, diag.SevError, p.exprSpan(first), "cannot use starred expression here")
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewGroup(open.Span.Cover(closeTok.Span), first), true
}

// parseParenElement — элемент круглых скобок: в режиме образца это
// вложенный образец, иначе выражение со звёздочкой или walrus.
func (p *Parser) parseParenElement() (ast.ExprID, bool) {
	if p.inPattern {
		return p.parsePatternElement()
	}
	return p.parseStarOrNamed()
}

// parseStarOrNamed — *expr или выражение с возможным walrus.
func (p *Parser) parseStarOrNamed() (ast.ExprID, bool) {
	if p.at(token.Star) {
		return p.parseStarOrExpr()
	}
	return p.parseNamedExpr()
}

// atCompFor — начало хвоста генератора: for или async for.
func (p *Parser) atCompFor() bool {
	if p.inPattern {
		return false
	}
	if p.at(token.KwFor) {
		return true
	}
	return p.at(token.KwAsync) && p.peekAt(1).Kind == token.KwFor
}

// parseListAtom — списочный дисплей или list comprehension.
func (p *Parser) parseListAtom() (ast.ExprID, bool) {
	open := p.advance()

	if p.at(token.RBracket) {
		closeTok := p.advance()
		return p.arenas.Exprs.NewList(open.Span.Cover(closeTok.Span), nil), true
	}

	first, ok := p.parseListElement()
	if !ok {
		return ast.NoExprID, false
	}

	if p.atCompFor() {
		if _, isStarred := p.arenas.Exprs.Starred(first); isStarred {
			p.report(diag.SynBadStarExpr, diag.SevError, p.exprSpan(first), "iterable unpacking cannot be used in comprehension")
			return ast.NoExprID, false
		}
		clauses, okClauses := p.parseCompClauses()
		if !okClauses {
			return ast.NoExprID, false
		}
		closeTok, okClose := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' after comprehension")
		if !okClose {
			return ast.NoExprID, false
		}
		span := open.Span.Cover(closeTok.Span)
		return p.arenas.Exprs.NewComp(span, ast.CompList, ast.NoExprID, first, clauses), true
	}

	elements := []ast.ExprID{first}
	for p.at(token.Comma) {
		p.advance()
		if p.at(token.RBracket) {
			break
		}
		element, okElement := p.parseListElement()
		if !okElement {
			return ast.NoExprID, false
		}
		elements = append(elements, element)
	}
	closeTok, okClose := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']'")
	if !okClose {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewList(open.Span.Cover(closeTok.Span), elements), true
}

// parseListElement — элемент квадратных скобок.
func (p *Parser) parseListElement() (ast.ExprID, bool) {
	if p.inPattern {
		return p.parsePatternElement()
	}
	return p.parseStarOrNamed()
}

// parseBraceAtom — словарь, множество или их comprehension-формы.
// Пустые фигурные скобки — всегда словарь.
func (p *Parser) parseBraceAtom() (ast.ExprID, bool) {
	open := p.advance()

	if p.at(token.RBrace) {
		closeTok := p.advance()
		return p.arenas.Exprs.NewDict(open.Span.Cover(closeTok.Span), nil), true
	}

	if p.at(token.StarStar) {
		entry, ok := p.parseDoubleStarEntry()
		if !ok {
			return ast.NoExprID, false
		}
		return p.parseDictTail(open, []ast.DictEntry{entry})
	}

	first, ok := p.parseStarOrNamed()
	if !ok {
		return ast.NoExprID, false
	}

	if p.at(token.Colon) {
		if _, isStarred := p.arenas.Exprs.Starred(first); isStarred {
			p.report(diag.SynBadStarExpr, diag.SevError, p.exprSpan(first), "cannot use starred expression as dict key")
			return ast.NoExprID, false
		}
		p.advance()
		value, okValue := p.parseExpr()
		if !okValue {
			p.err(diag.SynExpectExpression, "expected value after ':' in dict")
			return ast.NoExprID, false
		}

		if p.atCompFor() {
			clauses, okClauses := p.parseCompClauses()
			if !okClauses {
				return ast.NoExprID, false
			}
			closeTok, okClose := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' after comprehension")
			if !okClose {
				return ast.NoExprID, false
			}
			span := open.Span.Cover(closeTok.Span)
			return p.arenas.Exprs.NewComp(span, ast.CompDict, first, value, clauses), true
		}

		return p.parseDictTail(open, []ast.DictEntry{{Key: first, Value: value}})
	}

	// Множество
	if p.atCompFor() {
		if _, isStarred := p.arenas.Exprs.Starred(first); isStarred {
			p.report(diag.SynBadStarExpr, diag.SevError, p.exprSpan(first), "iterable unpacking cannot be used in comprehension")
			return ast.NoExprID, false
		}
		clauses, okClauses := p.parseCompClauses()
		if !okClauses {
			return ast.NoExprID, false
		}
		closeTok, okClose := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' after comprehension")
		if !okClose {
			return ast.NoExprID, false
		}
		span := open.Span.Cover(closeTok.Span)
		return p.arenas.Exprs.NewComp(span, ast.CompSet, ast.NoExprID, first, clauses), true
	}

	elements := []ast.ExprID{first}
	for p.at(token.Comma) {
		p.advance()
		if p.at(token.RBrace) {
			break
		}
		element, okElement := p.parseStarOrNamed()
		if !okElement {
			return ast.NoExprID, false
		}
		elements = append(elements, element)
	}
	closeTok, okClose := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}'")
	if !okClose {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewSet(open.Span.Cover(closeTok.Span), elements), true
}

// parseDictTail — оставшиеся записи словаря после первой, до '}'.
func (p *Parser) parseDictTail(open token.Token, entries []ast.DictEntry) (ast.ExprID, bool) {
	for p.at(token.Comma) {
		p.advance()
		if p.at(token.RBrace) {
			break
		}
		if p.at(token.StarStar) {
			entry, ok := p.parseDoubleStarEntry()
			if !ok {
				return ast.NoExprID, false
			}
			entries = append(entries, entry)
			continue
		}
		key, ok := p.parseExpr()
		if !ok {
			p.err(diag.SynExpectExpression, "expected dict key")
			return ast.NoExprID, false
		}
		if _, okColon := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after dict key"); !okColon {
			return ast.NoExprID, false
		}
		value, okValue := p.parseExpr()
		if !okValue {
			p.err(diag.SynExpectExpression, "expected value after ':' in dict")
			return ast.NoExprID, false
		}
		entries = append(entries, ast.DictEntry{Key: key, Value: value})
	}
	closeTok, okClose := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}'")
	if !okClose {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewDict(open.Span.Cover(closeTok.Span), entries), true
}

// parseDoubleStarEntry — запись **mapping; ключ пустой.
// Операнд ** ограничен уровнем битового | по грамматике.
func (p *Parser) parseDoubleStarEntry() (ast.DictEntry, bool) {
	p.advance()
	value, ok := p.parseBinaryExpr(precBitwiseOr)
	if !ok {
		p.err(diag.SynExpectExpression, "expected expression after '**'")
		return ast.DictEntry{}, false
	}
	return ast.DictEntry{Key: ast.NoExprID, Value: value}, true
}
