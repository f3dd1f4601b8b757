package parser

import (
	"fstrify/internal/ast"
	"fstrify/internal/diag"
	"fstrify/internal/token"
)

// parseMatchStmt — match/case. match — мягкое ключевое слово: сюда
// попадаем только когда matchStmtAhead решил, что это оператор.
// Образцы разбираются структурно, теми же узлами выражений: or-образец —
// BinaryBitOr, захват `as` — ExprAs, классовый образец — ExprCall.
func (p *Parser) parseMatchStmt() (ast.StmtID, bool) {
	matchTok := p.advance() // Ident "match"

	subject, ok := p.parseMatchSubject()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, okColon := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after match subject"); !okColon {
		return ast.NoStmtID, false
	}
	if _, okNl := p.expect(token.Newline, diag.SynExpectNewline, "expected end of line after ':'"); !okNl {
		return ast.NoStmtID, false
	}
	if !p.at(token.Indent) {
		p.err(diag.SynExpectIndent, "expected an indented block of case clauses")
		return ast.NoStmtID, false
	}
	p.advance() // Indent

	var cases []ast.MatchCase
	for !p.at(token.Dedent) && !p.at(token.EOF) {
		matchCase, okCase := p.parseCaseClause()
		if !okCase {
			p.resyncLine()
			continue
		}
		cases = append(cases, matchCase)
	}
	if p.at(token.Dedent) {
		p.advance()
	}
	if len(cases) == 0 {
		p.report(diag.SynExpectMatchCase, diag.SevError, matchTok.Span, "match statement must have at least one case clause")
		return ast.NoStmtID, false
	}

	span := matchTok.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewMatch(span, subject, cases), true
}

// parseMatchSubject — субъект match: одно выражение (walrus допустим)
// либо кортеж без скобок `match x, y:`.
func (p *Parser) parseMatchSubject() (ast.ExprID, bool) {
	first, ok := p.parseStarOrNamed()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.Comma) {
		return first, true
	}
	elements := []ast.ExprID{first}
	for p.at(token.Comma) {
		p.advance()
		if p.at(token.Colon) {
			break
		}
		element, okElement := p.parseStarOrNamed()
		if !okElement {
			return ast.NoExprID, false
		}
		elements = append(elements, element)
	}
	span := p.exprSpan(elements[0]).Cover(p.lastSpan)
	return p.arenas.Exprs.NewTuple(span, elements), true
}

// parseCaseClause — `case образец [if условие]:` и тело.
func (p *Parser) parseCaseClause() (ast.MatchCase, bool) {
	if !p.atSoftKeyword("case") {
		p.err(diag.SynExpectMatchCase, "expected 'case' clause, got \""+p.peek().Text+"\"")
		return ast.MatchCase{}, false
	}
	caseTok := p.advance()

	p.inPattern = true
	pattern, ok := p.parseOpenSequencePattern()
	p.inPattern = false
	if !ok {
		return ast.MatchCase{}, false
	}

	guard := ast.NoExprID
	if p.at(token.KwIf) {
		p.advance()
		cond, okGuard := p.parseNamedExpr()
		if !okGuard {
			p.err(diag.SynExpectExpression, "expected guard condition after 'if'")
			return ast.MatchCase{}, false
		}
		guard = cond
	}

	if _, okColon := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after case pattern"); !okColon {
		return ast.MatchCase{}, false
	}
	body, okBody := p.parseBlock()
	if !okBody {
		return ast.MatchCase{}, false
	}

	return ast.MatchCase{
		Pattern: pattern,
		Guard:   guard,
		Body:    body,
		Span:    caseTok.Span.Cover(p.lastSpan),
	}, true
}

// parseOpenSequencePattern — образец верхнего уровня: `case a, b:` без
// скобок — кортежный образец.
func (p *Parser) parseOpenSequencePattern() (ast.ExprID, bool) {
	first, ok := p.parsePatternElement()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.Comma) {
		return first, true
	}
	elements := []ast.ExprID{first}
	for p.at(token.Comma) {
		p.advance()
		if p.at_or(token.Colon, token.KwIf) {
			break
		}
		element, okElement := p.parsePatternElement()
		if !okElement {
			return ast.NoExprID, false
		}
		elements = append(elements, element)
	}
	span := p.exprSpan(elements[0]).Cover(p.lastSpan)
	return p.arenas.Exprs.NewTuple(span, elements), true
}

// parsePatternElement — элемент образца-последовательности: `*rest`
// либо обычный образец.
func (p *Parser) parsePatternElement() (ast.ExprID, bool) {
	if p.at(token.Star) {
		star := p.advance()
		operand, ok := p.parseBinaryExpr(precBitwiseOr)
		if !ok {
			p.err(diag.SynExpectExpression, "expected capture name after '*'")
			return ast.NoExprID, false
		}
		span := star.Span.Cover(p.exprSpan(operand))
		return p.arenas.Exprs.NewStarred(span, operand), true
	}
	return p.parsePattern()
}

// parsePattern — or-образец с необязательным захватом `as имя`.
// Альтернативы `p1 | p2` естественно ложатся на уровень битового |.
func (p *Parser) parsePattern() (ast.ExprID, bool) {
	expr, ok := p.parseBinaryExpr(precBitwiseOr)
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.KwAs) {
		p.advance()
		name, okName := p.parseIdent()
		if !okName {
			return ast.NoExprID, false
		}
		span := p.exprSpan(expr).Cover(p.lastSpan)
		expr = p.arenas.Exprs.NewAs(span, expr, name)
	}
	return expr, true
}

// parseMappingPattern — образец-отображение `{ключ: образец, **rest}`.
// Вызывается из parseAtomExpr вместо обычного словаря, когда inPattern.
func (p *Parser) parseMappingPattern() (ast.ExprID, bool) {
	open := p.advance()

	if p.at(token.RBrace) {
		closeTok := p.advance()
		return p.arenas.Exprs.NewDict(open.Span.Cover(closeTok.Span), nil), true
	}

	var entries []ast.DictEntry
	for {
		if p.at(token.StarStar) {
			p.advance()
			rest, ok := p.parseBinaryExpr(precBitwiseOr)
			if !ok {
				p.err(diag.SynExpectExpression, "expected capture name after '**'")
				return ast.NoExprID, false
			}
			entries = append(entries, ast.DictEntry{Key: ast.NoExprID, Value: rest})
		} else {
			key, ok := p.parseBinaryExpr(precBitwiseOr)
			if !ok {
				p.err(diag.SynExpectExpression, "expected mapping pattern key")
				return ast.NoExprID, false
			}
			if _, okColon := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after mapping pattern key"); !okColon {
				return ast.NoExprID, false
			}
			value, okValue := p.parsePattern()
			if !okValue {
				return ast.NoExprID, false
			}
			entries = append(entries, ast.DictEntry{Key: key, Value: value})
		}
		if p.at(token.Comma) {
			p.advance()
			if p.at(token.RBrace) {
				break
			}
			continue
		}
		break
	}

	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' after mapping pattern")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewDict(open.Span.Cover(closeTok.Span), entries), true
}
