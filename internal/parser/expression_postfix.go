package parser

import (
	"fstrify/internal/ast"
	"fstrify/internal/diag"
	"fstrify/internal/source"
	"fstrify/internal/token"
)

// parsePostfixExpr — цепочка постфиксов над атомом: вызовы f(...),
// индексация a[...], атрибуты a.b. Левоассоциативно, как в исходнике.
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parseAtomExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		switch p.peek().Kind {
		case token.LParen:
			expr, ok = p.parseCallExpr(expr)
		case token.LBracket:
			expr, ok = p.parseSubscriptExpr(expr)
		case token.Dot:
			expr, ok = p.parseAttrExpr(expr)
		default:
			return expr, true
		}
		if !ok {
			return ast.NoExprID, false
		}
	}
}

// parseCallExpr — вызов: открывающая скобка ещё не съедена.
func (p *Parser) parseCallExpr(fn ast.ExprID) (ast.ExprID, bool) {
	p.advance()
	args, closeTok, ok := p.parseCallArgs()
	if !ok {
		return ast.NoExprID, false
	}
	span := p.exprSpan(fn).Cover(closeTok.Span)
	return p.arenas.Exprs.NewCall(span, fn, args), true
}

// parseCallArgs — список аргументов после уже съеденной '('. Возвращает
// аргументы и закрывающий токен. Используется и вызовами, и списком
// баз класса.
func (p *Parser) parseCallArgs() ([]ast.CallArg, token.Token, bool) {
	var args []ast.CallArg
	if p.at(token.RParen) {
		return args, p.advance(), true
	}
	for {
		arg, ok := p.parseCallArg()
		if !ok {
			return nil, token.Token{}, false
		}

		// Генераторный аргумент без скобок: f(x for x in xs).
		// Допустим только как единственный позиционный аргумент.
		if len(args) == 0 && arg.Name == source.NoStringID && arg.Star == ast.StarNone && p.atCompFor() {
			clauses, okClauses := p.parseCompClauses()
			if !okClauses {
				return nil, token.Token{}, false
			}
			compSpan := p.exprSpan(arg.Value).Cover(p.lastSpan)
			arg.Value = p.arenas.Exprs.NewComp(compSpan, ast.CompGenerator, ast.NoExprID, arg.Value, clauses)
			args = append(args, arg)
			closeTok, okClose := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after generator expression")
			return args, closeTok, okClose
		}

		args = append(args, arg)
		if p.at(token.Comma) {
			p.advance()
			if p.at(token.RParen) {
				break
			}
			continue
		}
		break
	}
	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' in argument list")
	if !ok {
		return nil, token.Token{}, false
	}
	return args, closeTok, true
}

// parseCallArg — один аргумент: позиционный, именованный name=value,
// *args или **kwargs. В режиме образца значением служит вложенный образец
// (классовые образцы вида Point(x=0)).
func (p *Parser) parseCallArg() (ast.CallArg, bool) {
	switch {
	case p.at(token.StarStar):
		p.advance()
		value, ok := p.parseExpr()
		if !ok {
			p.err(diag.SynExpectExpression, "expected expression after '**'")
			return ast.CallArg{}, false
		}
		return ast.CallArg{Star: ast.StarDouble, Value: value}, true
	case p.at(token.Star):
		p.advance()
		value, ok := p.parseExpr()
		if !ok {
			p.err(diag.SynExpectExpression, "expected expression after '*'")
			return ast.CallArg{}, false
		}
		return ast.CallArg{Star: ast.StarSingle, Value: value}, true
	case p.at(token.Ident) && p.peekAt(1).Kind == token.Assign:
		nameTok := p.advance()
		p.advance()
		value, ok := p.parseCallArgValue()
		if !ok {
			p.err(diag.SynExpectExpression, "expected expression after '='")
			return ast.CallArg{}, false
		}
		return ast.CallArg{Name: p.arenas.InternName(nameTok.Text), Value: value}, true
	default:
		value, ok := p.parseCallArgValue()
		if !ok {
			return ast.CallArg{}, false
		}
		return ast.CallArg{Value: value}, true
	}
}

func (p *Parser) parseCallArgValue() (ast.ExprID, bool) {
	if p.inPattern {
		return p.parsePattern()
	}
	return p.parseNamedExpr()
}

// parseSubscriptExpr — индексация: a[i], срезы a[i:j:k], кортежные
// индексы a[i, j]. Открывающая скобка ещё не съедена.
func (p *Parser) parseSubscriptExpr(value ast.ExprID) (ast.ExprID, bool) {
	p.advance()
	if p.at(token.RBracket) {
		p.err(diag.SynExpectExpression, "expected expression inside '[]'")
		return ast.NoExprID, false
	}

	first, ok := p.parseSubscriptItem()
	if !ok {
		return ast.NoExprID, false
	}

	index := first
	if p.at(token.Comma) {
		items := []ast.ExprID{first}
		for p.at(token.Comma) {
			p.advance()
			if p.at(token.RBracket) {
				break
			}
			item, okItem := p.parseSubscriptItem()
			if !okItem {
				return ast.NoExprID, false
			}
			items = append(items, item)
		}
		tupleSpan := p.exprSpan(items[0]).Cover(p.lastSpan)
		index = p.arenas.Exprs.NewTuple(tupleSpan, items)
	}

	closeTok, okClose := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']'")
	if !okClose {
		return ast.NoExprID, false
	}
	span := p.exprSpan(value).Cover(closeTok.Span)
	return p.arenas.Exprs.NewSubscript(span, value, index), true
}

// parseSubscriptItem — элемент индекса: срез, *expr или выражение.
// Голый индекс допускает walrus (a[b := f()]), границы среза — нет.
func (p *Parser) parseSubscriptItem() (ast.ExprID, bool) {
	if p.at(token.Star) {
		return p.parseStarOrExpr()
	}

	lower := ast.NoExprID
	var startSpan source.Span
	if p.at(token.Colon) {
		startSpan = p.peek().Span
	} else {
		expr, ok := p.parseNamedExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if !p.at(token.Colon) {
			return expr, true
		}
		lower = expr
		startSpan = p.exprSpan(expr)
	}
	p.advance() // первое ':'

	upper := ast.NoExprID
	if !p.at_or(token.Colon, token.Comma, token.RBracket) {
		expr, ok := p.parseExpr()
		if !ok {
			p.err(diag.SynExpectExpression, "expected slice upper bound")
			return ast.NoExprID, false
		}
		upper = expr
	}

	step := ast.NoExprID
	if p.at(token.Colon) {
		p.advance()
		if !p.at_or(token.Comma, token.RBracket) {
			expr, ok := p.parseExpr()
			if !ok {
				p.err(diag.SynExpectExpression, "expected slice step")
				return ast.NoExprID, false
			}
			step = expr
		}
	}

	span := startSpan.Cover(p.lastSpan)
	return p.arenas.Exprs.NewSlice(span, lower, upper, step), true
}

// parseAttrExpr — доступ к атрибуту: точка ещё не съедена.
func (p *Parser) parseAttrExpr(value ast.ExprID) (ast.ExprID, bool) {
	p.advance()
	if !p.at(token.Ident) {
		p.err(diag.SynExpectIdentifier, "expected attribute name after '.'")
		return ast.NoExprID, false
	}
	nameTok := p.advance()
	span := p.exprSpan(value).Cover(nameTok.Span)
	return p.arenas.Exprs.NewAttr(span, value, p.arenas.InternName(nameTok.Text)), true
}
