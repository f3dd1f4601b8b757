package parser

import (
	"fstrify/internal/ast"
	"fstrify/internal/diag"
	"fstrify/internal/token"
)

// parseCompClauses — хвост комприхеншена: цепочка `for цель in итератор`
// с фильтрами `if`. Вызывающий уже проверил atCompFor. Итератор и фильтры
// ограничены уровнем or-test, чтобы `if` фильтра не съедался тернарной
// формой.
func (p *Parser) parseCompClauses() ([]ast.CompClause, bool) {
	var clauses []ast.CompClause
	for p.atCompFor() {
		var clause ast.CompClause
		if p.at(token.KwAsync) {
			p.advance()
			clause.IsAsync = true
		}
		p.advance() // 'for'

		target, ok := p.parseTargetList()
		if !ok {
			return nil, false
		}
		clause.Target = target

		if _, okIn := p.expect(token.KwIn, diag.SynExpectIn, "expected 'in' after comprehension target"); !okIn {
			return nil, false
		}
		iter, okIter := p.parseOrTest()
		if !okIter {
			p.err(diag.SynExpectExpression, "expected iterable after 'in'")
			return nil, false
		}
		clause.Iter = iter

		for p.at(token.KwIf) {
			p.advance()
			cond, okCond := p.parseOrTest()
			if !okCond {
				p.err(diag.SynExpectExpression, "expected condition after 'if'")
				return nil, false
			}
			clause.Ifs = append(clause.Ifs, cond)
		}
		clauses = append(clauses, clause)
	}
	return clauses, true
}

// parseTargetList — цели присваивания в for и комприхеншенах:
// `x`, `x, y`, `*rest, last`. Запятая делает кортеж, без запятой —
// одиночная цель как есть.
func (p *Parser) parseTargetList() (ast.ExprID, bool) {
	first, ok := p.parseStarOrExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.Comma) {
		return first, true
	}
	elements := []ast.ExprID{first}
	for p.at(token.Comma) {
		p.advance()
		if p.targetListStops() {
			break
		}
		element, okElement := p.parseStarOrExpr()
		if !okElement {
			return ast.NoExprID, false
		}
		elements = append(elements, element)
	}
	span := p.exprSpan(elements[0]).Cover(p.lastSpan)
	return p.arenas.Exprs.NewTuple(span, elements), true
}

func (p *Parser) targetListStops() bool {
	switch p.peek().Kind {
	case token.KwIn, token.Assign, token.Colon, token.Newline, token.EOF,
		token.RParen, token.RBracket, token.RBrace:
		return true
	default:
		return false
	}
}
