package parser

import (
	"fstrify/internal/ast"
	"fstrify/internal/diag"
	"fstrify/internal/source"
	"fstrify/internal/token"
)

// atSimpleStmtEnd — конец простого оператора: даёт ли следующий токен
// право опустить необязательную часть (return без значения и т.п.).
func (p *Parser) atSimpleStmtEnd() bool {
	return p.at_or(token.Newline, token.EOF, token.Semicolon)
}

func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	kw := p.advance()
	if p.atSimpleStmtEnd() {
		return p.arenas.Stmts.NewReturn(kw.Span, ast.NoExprID), true
	}
	value, ok := p.parseExprList()
	if !ok {
		return ast.NoStmtID, false
	}
	span := kw.Span.Cover(p.exprSpan(value))
	return p.arenas.Stmts.NewReturn(span, value), true
}

func (p *Parser) parseRaiseStmt() (ast.StmtID, bool) {
	kw := p.advance()
	if p.atSimpleStmtEnd() {
		return p.arenas.Stmts.NewRaise(kw.Span, ast.NoExprID, ast.NoExprID), true
	}
	exc, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	from := ast.NoExprID
	span := kw.Span.Cover(p.exprSpan(exc))
	if p.at(token.KwFrom) {
		p.advance()
		from, ok = p.parseExpr()
		if !ok {
			p.err(diag.SynExpectExpression, "expected expression after 'from'")
			return ast.NoStmtID, false
		}
		span = span.Cover(p.exprSpan(from))
	}
	return p.arenas.Stmts.NewRaise(span, exc, from), true
}

func (p *Parser) parseDelStmt() (ast.StmtID, bool) {
	kw := p.advance()
	var targets []ast.ExprID
	for {
		target, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		targets = append(targets, target)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
		if p.atSimpleStmtEnd() {
			break
		}
	}
	span := kw.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewDel(span, targets), true
}

// parseGlobalStmt обслуживает и global, и nonlocal: грамматика одна,
// различается только вид узла.
func (p *Parser) parseGlobalStmt(kind ast.StmtKind) (ast.StmtID, bool) {
	kw := p.advance()
	var names []source.StringID
	for {
		name, ok := p.parseIdent()
		if !ok {
			return ast.NoStmtID, false
		}
		names = append(names, name)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	span := kw.Span.Cover(p.lastSpan)
	if kind == ast.StmtNonlocal {
		return p.arenas.Stmts.NewNonlocal(span, names), true
	}
	return p.arenas.Stmts.NewGlobal(span, names), true
}

func (p *Parser) parseAssertStmt() (ast.StmtID, bool) {
	kw := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	msg := ast.NoExprID
	span := kw.Span.Cover(p.exprSpan(cond))
	if p.at(token.Comma) {
		p.advance()
		msg, ok = p.parseExpr()
		if !ok {
			p.err(diag.SynExpectExpression, "expected assertion message after ','")
			return ast.NoStmtID, false
		}
		span = span.Cover(p.exprSpan(msg))
	}
	return p.arenas.Stmts.NewAssert(span, cond, msg), true
}

// parseExprLine — строка, начинающаяся с выражения: оператор-выражение,
// присваивание (цепочное, аннотированное или составное).
func (p *Parser) parseExprLine() (ast.StmtID, bool) {
	first, ok := p.parseExprList()
	if !ok {
		return ast.NoStmtID, false
	}

	if p.at(token.Colon) {
		return p.parseAnnAssignTail(first)
	}
	if p.at(token.Assign) {
		return p.parseAssignTail(first)
	}
	if op, isAug := p.getAugAssignOperator(p.peek().Kind); isAug {
		if !p.checkSingleTarget(first) {
			return ast.NoStmtID, false
		}
		p.advance()
		value, okValue := p.parseAssignValue()
		if !okValue {
			return ast.NoStmtID, false
		}
		span := p.exprSpan(first).Cover(p.exprSpan(value))
		return p.arenas.Stmts.NewAugAssign(span, first, op, value), true
	}
	return p.arenas.Stmts.NewExprStmt(p.exprSpan(first), first), true
}

// parseAnnAssignTail — `target: annotation [= value]`, двоеточие ещё не
// съедено. Кортежную цель аннотировать нельзя.
func (p *Parser) parseAnnAssignTail(target ast.ExprID) (ast.StmtID, bool) {
	if !p.checkSingleTarget(target) {
		return ast.NoStmtID, false
	}
	p.advance() // ':'
	annotation, ok := p.parseExpr()
	if !ok {
		p.err(diag.SynExpectExpression, "expected annotation after ':'")
		return ast.NoStmtID, false
	}
	value := ast.NoExprID
	span := p.exprSpan(target).Cover(p.exprSpan(annotation))
	if p.at(token.Assign) {
		p.advance()
		value, ok = p.parseAssignValue()
		if !ok {
			return ast.NoStmtID, false
		}
		span = span.Cover(p.exprSpan(value))
	}
	return p.arenas.Stmts.NewAnnAssign(span, target, annotation, value), true
}

// parseAssignTail — цепочка `t1 = t2 = ... = value`, первое '=' ещё не
// съедено. Каждая промежуточная часть становится целью.
func (p *Parser) parseAssignTail(first ast.ExprID) (ast.StmtID, bool) {
	if !p.checkAssignTarget(first) {
		return ast.NoStmtID, false
	}
	targets := []ast.ExprID{first}
	for {
		p.advance() // '='
		value, ok := p.parseAssignValue()
		if !ok {
			return ast.NoStmtID, false
		}
		if !p.at(token.Assign) {
			span := p.exprSpan(targets[0]).Cover(p.exprSpan(value))
			return p.arenas.Stmts.NewAssign(span, targets, value), true
		}
		if !p.checkAssignTarget(value) {
			return ast.NoStmtID, false
		}
		targets = append(targets, value)
	}
}

// parseAssignValue — правая часть присваивания: yield-форма или список
// выражений.
func (p *Parser) parseAssignValue() (ast.ExprID, bool) {
	if p.at(token.KwYield) {
		return p.parseYieldExpr()
	}
	return p.parseExprList()
}

// checkAssignTarget — цель присваивания: имя, атрибут, индекс, а также
// кортеж/список/звёздочка из таких целей. Остальное — ошибка.
func (p *Parser) checkAssignTarget(id ast.ExprID) bool {
	expr := p.arenas.Exprs.Get(id)
	if expr == nil {
		return true
	}
	switch expr.Kind {
	case ast.ExprName, ast.ExprAttr, ast.ExprSubscript:
		return true
	case ast.ExprStarred:
		data, _ := p.arenas.Exprs.Starred(id)
		return p.checkAssignTarget(data.Value)
	case ast.ExprGroup:
		data, _ := p.arenas.Exprs.Group(id)
		return p.checkAssignTarget(data.Inner)
	case ast.ExprTuple:
		data, _ := p.arenas.Exprs.Tuple(id)
		for _, element := range data.Elements {
			if !p.checkAssignTarget(element) {
				return false
			}
		}
		return true
	case ast.ExprList:
		data, _ := p.arenas.Exprs.List(id)
		for _, element := range data.Elements {
			if !p.checkAssignTarget(element) {
				return false
			}
		}
		return true
	default:
		p.report(diag.SynBadAssignTarget, diag.SevError, expr.Span, "cannot assign to this expression")
		return false
	}
}

// checkSingleTarget — одиночная цель для составного или аннотированного
// присваивания: кортежи и списки не годятся.
func (p *Parser) checkSingleTarget(id ast.ExprID) bool {
	expr := p.arenas.Exprs.Get(id)
	if expr == nil {
		return true
	}
	switch expr.Kind {
	case ast.ExprName, ast.ExprAttr, ast.ExprSubscript:
		return true
	default:
		p.report(diag.SynBadAssignTarget, diag.SevError, expr.Span, "cannot assign to this expression")
		return false
	}
}
