package parser

import (
	"fstrify/internal/ast"
	"fstrify/internal/diag"
	"fstrify/internal/token"
)

// Лестница приоритетов сверху вниз:
//
//	parseNamedExpr   walrus :=
//	parseExpr        lambda, тернарный if-else
//	parseOrTest      or
//	parseAndTest     and
//	parseNotTest     not
//	parseComparison  цепочки < <= > >= == != in, not in, is, is not
//	parseBinaryExpr  Pratt-ядро: | ^ & << >> + - * @ / // %
//	parseUnaryExpr   префиксные + - ~
//	parsePowerExpr   ** (правоассоциативно)
//	parseAwaitExpr   await
//	parsePostfixExpr вызовы, индексация, атрибуты
//	parseAtomExpr    имена, литералы, скобочные формы

// parseNamedExpr — выражение с возможным walrus-присваиванием.
// Допустим в условиях, аргументах вызова и элементах отображений.
func (p *Parser) parseNamedExpr() (ast.ExprID, bool) {
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.ColonAssign) {
		return expr, true
	}
	p.advance()
	if _, isName := p.arenas.Exprs.Name(expr); !isName {
		p.err(diag.SynBadAssignTarget, "cannot use assignment expression with this target")
		return ast.NoExprID, false
	}
	value, okValue := p.parseExpr()
	if !okValue {
		p.err(diag.SynExpectExpression, "expected expression after ':='")
		return ast.NoExprID, false
	}
	span := p.exprSpan(expr).Cover(p.exprSpan(value))
	return p.arenas.Exprs.NewNamed(span, expr, value), true
}

// parseExpr - главная точка входа для парсинга выражений
// Возвращает ExprID и флаг успеха
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	if p.at(token.KwLambda) {
		return p.parseLambdaExpr()
	}
	body, ok := p.parseOrTest()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.KwIf) {
		return body, true
	}
	// Тернарная форма: body if cond else orElse
	p.advance()
	cond, okCond := p.parseOrTest()
	if !okCond {
		p.err(diag.SynExpectExpression, "expected condition after 'if'")
		return ast.NoExprID, false
	}
	if _, okElse := p.expect(token.KwElse, diag.SynUnexpectedToken, "expected 'else' in conditional expression"); !okElse {
		return ast.NoExprID, false
	}
	orElse, okOrElse := p.parseExpr()
	if !okOrElse {
		p.err(diag.SynExpectExpression, "expected expression after 'else'")
		return ast.NoExprID, false
	}
	span := p.exprSpan(body).Cover(p.exprSpan(orElse))
	return p.arenas.Exprs.NewIfElse(span, body, cond, orElse), true
}

// parseLambdaExpr — lambda [параметры] : тело.
// Аннотации в параметрах лямбды запрещены грамматикой.
func (p *Parser) parseLambdaExpr() (ast.ExprID, bool) {
	kw := p.advance()
	var params []ast.Param
	if !p.at(token.Colon) {
		var ok bool
		params, ok = p.parseParamList(paramsLambda)
		if !ok {
			return ast.NoExprID, false
		}
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after lambda parameters"); !ok {
		return ast.NoExprID, false
	}
	body, ok := p.parseExpr()
	if !ok {
		p.err(diag.SynExpectExpression, "expected lambda body")
		return ast.NoExprID, false
	}
	span := kw.Span.Cover(p.exprSpan(body))
	return p.arenas.Exprs.NewLambda(span, params, body), true
}

// parseOrTest — цепочка or, сплющенная в один BoolOp.
func (p *Parser) parseOrTest() (ast.ExprID, bool) {
	left, ok := p.parseAndTest()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.KwOr) {
		return left, true
	}
	values := []ast.ExprID{left}
	for p.at(token.KwOr) {
		p.advance()
		value, okValue := p.parseAndTest()
		if !okValue {
			p.err(diag.SynExpectExpression, "expected expression after 'or'")
			return ast.NoExprID, false
		}
		values = append(values, value)
	}
	span := p.exprSpan(values[0]).Cover(p.exprSpan(values[len(values)-1]))
	return p.arenas.Exprs.NewBoolOp(span, ast.BoolOr, values), true
}

// parseAndTest — цепочка and, сплющенная в один BoolOp.
func (p *Parser) parseAndTest() (ast.ExprID, bool) {
	left, ok := p.parseNotTest()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.KwAnd) {
		return left, true
	}
	values := []ast.ExprID{left}
	for p.at(token.KwAnd) {
		p.advance()
		value, okValue := p.parseNotTest()
		if !okValue {
			p.err(diag.SynExpectExpression, "expected expression after 'and'")
			return ast.NoExprID, false
		}
		values = append(values, value)
	}
	span := p.exprSpan(values[0]).Cover(p.exprSpan(values[len(values)-1]))
	return p.arenas.Exprs.NewBoolOp(span, ast.BoolAnd, values), true
}

// parseNotTest — префиксный not. Связывает слабее сравнений:
// not a == b читается как not (a == b).
func (p *Parser) parseNotTest() (ast.ExprID, bool) {
	if !p.at(token.KwNot) {
		return p.parseComparison()
	}
	tok := p.advance()
	operand, ok := p.parseNotTest()
	if !ok {
		p.err(diag.SynExpectExpression, "expected expression after 'not'")
		return ast.NoExprID, false
	}
	span := tok.Span.Cover(p.exprSpan(operand))
	return p.arenas.Exprs.NewUnary(span, ast.UnaryNot, operand), true
}

// parseComparison — цепочка сравнений: a < b <= c хранится одним узлом
// с левым операндом и параллельными списками операторов и операндов.
func (p *Parser) parseComparison() (ast.ExprID, bool) {
	left, ok := p.parseBinaryExpr(precBitwiseOr)
	if !ok {
		return ast.NoExprID, false
	}
	var ops []ast.CompareOp
	var comparators []ast.ExprID
	for {
		op, found := p.takeCompareOp()
		if !found {
			break
		}
		right, okRight := p.parseBinaryExpr(precBitwiseOr)
		if !okRight {
			p.err(diag.SynExpectExpression, "expected expression after comparison operator")
			return ast.NoExprID, false
		}
		ops = append(ops, op)
		comparators = append(comparators, right)
	}
	if len(ops) == 0 {
		return left, true
	}
	span := p.exprSpan(left).Cover(p.exprSpan(comparators[len(comparators)-1]))
	return p.arenas.Exprs.NewCompare(span, left, ops, comparators), true
}

// takeCompareOp съедает оператор сравнения, включая двухсловные
// формы not in и is not. Одиночный not оператором сравнения не является.
func (p *Parser) takeCompareOp() (ast.CompareOp, bool) {
	tok := p.peek()
	if op, ok := p.getCompareOperator(tok.Kind); ok {
		p.advance()
		return op, true
	}
	switch tok.Kind {
	case token.KwIn:
		p.advance()
		return ast.CompareIn, true
	case token.KwIs:
		p.advance()
		if p.at(token.KwNot) {
			p.advance()
			return ast.CompareIsNot, true
		}
		return ast.CompareIs, true
	case token.KwNot:
		if p.peekAt(1).Kind == token.KwIn {
			p.advance()
			p.advance()
			return ast.CompareNotIn, true
		}
	}
	return 0, false
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		tok := p.peek()
		prec := p.getBinaryOperatorPrec(tok.Kind)
		if prec == 0 || prec < minPrec {
			break
		}

		opTok := p.advance()

		// Все уровни Pratt-ядра левоассоциативны
		right, okRight := p.parseBinaryExpr(prec + 1)
		if !okRight {
			p.err(diag.SynExpectExpression, "expected expression after binary operator")
			return ast.NoExprID, false
		}

		op := p.tokenKindToBinaryOp(opTok.Kind)
		finalSpan := p.exprSpan(left).Cover(p.exprSpan(right))
		left = p.arenas.Exprs.NewBinary(finalSpan, op, left, right)
	}

	return left, true
}

// parseUnaryExpr обрабатывает префиксные + - ~.
// Операнд — снова factor, поэтому -x ** 2 означает -(x ** 2).
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	op, isUnary := p.getUnaryOperator(p.peek().Kind)
	if !isUnary {
		return p.parsePowerExpr()
	}
	opTok := p.advance()
	operand, ok := p.parseUnaryExpr()
	if !ok {
		p.err(diag.SynExpectExpression, "expected expression after unary operator")
		return ast.NoExprID, false
	}
	span := opTok.Span.Cover(p.exprSpan(operand))
	return p.arenas.Exprs.NewUnary(span, op, operand), true
}

// parsePowerExpr — правоассоциативная степень. Правый операнд — factor,
// так что 2 ** -1 разрешён.
func (p *Parser) parsePowerExpr() (ast.ExprID, bool) {
	base, ok := p.parseAwaitExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.StarStar) {
		return base, true
	}
	p.advance()
	right, okRight := p.parseUnaryExpr()
	if !okRight {
		p.err(diag.SynExpectExpression, "expected expression after '**'")
		return ast.NoExprID, false
	}
	span := p.exprSpan(base).Cover(p.exprSpan(right))
	return p.arenas.Exprs.NewBinary(span, ast.BinaryPow, base, right), true
}

// parseAwaitExpr — await связывает постфиксную цепочку:
// await x ** 2 означает (await x) ** 2.
func (p *Parser) parseAwaitExpr() (ast.ExprID, bool) {
	if !p.at(token.KwAwait) {
		return p.parsePostfixExpr()
	}
	kw := p.advance()
	value, ok := p.parsePostfixExpr()
	if !ok {
		p.err(diag.SynExpectExpression, "expected expression after 'await'")
		return ast.NoExprID, false
	}
	span := kw.Span.Cover(p.exprSpan(value))
	return p.arenas.Exprs.NewAwait(span, value), true
}

// parseYieldExpr — yield [from x | значения]. Вызывается только из позиций,
// где yield допустим: оператор-выражение, правая часть присваивания, скобки.
func (p *Parser) parseYieldExpr() (ast.ExprID, bool) {
	kw := p.advance()
	if p.at(token.KwFrom) {
		p.advance()
		value, ok := p.parseExpr()
		if !ok {
			p.err(diag.SynExpectExpression, "expected expression after 'yield from'")
			return ast.NoExprID, false
		}
		span := kw.Span.Cover(p.exprSpan(value))
		return p.arenas.Exprs.NewYield(span, value, true), true
	}
	if p.yieldStops() {
		return p.arenas.Exprs.NewYield(kw.Span, ast.NoExprID, false), true
	}
	value, ok := p.parseExprList()
	if !ok {
		return ast.NoExprID, false
	}
	span := kw.Span.Cover(p.exprSpan(value))
	return p.arenas.Exprs.NewYield(span, value, false), true
}

// yieldStops — голый yield без значения: дальше идёт закрывающий токен.
func (p *Parser) yieldStops() bool {
	switch p.peek().Kind {
	case token.Newline, token.EOF, token.Semicolon,
		token.RParen, token.RBracket, token.RBrace,
		token.Comma, token.Colon, token.Assign:
		return true
	default:
		return false
	}
}

// parseExprList — выражения через запятую: одиночное выражение либо кортеж
// без скобок (return a, b или x = 1, 2). Звёздочка в элементах допустима.
func (p *Parser) parseExprList() (ast.ExprID, bool) {
	first, ok := p.parseStarOrExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.Comma) {
		return first, true
	}
	// Запятая есть: это кортеж без скобок, даже одноэлементный `x,`.
	elements := []ast.ExprID{first}
	for p.at(token.Comma) {
		p.advance()
		if p.exprListStops() {
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

func (p *Parser) exprListStops() bool {
	switch p.peek().Kind {
	case token.Newline, token.EOF, token.Semicolon, token.Assign, token.Colon,
		token.RParen, token.RBracket, token.RBrace:
		return true
	default:
		return false
	}
}

// parseStarOrExpr — элемент списка выражений: *expr или обычное выражение.
// Операнд звёздочки ограничен уровнем битового | по грамматике.
func (p *Parser) parseStarOrExpr() (ast.ExprID, bool) {
	if !p.at(token.Star) {
		return p.parseExpr()
	}
	star := p.advance()
	operand, ok := p.parseBinaryExpr(precBitwiseOr)
	if !ok {
		p.err(diag.SynExpectExpression, "expected expression after '*'")
		return ast.NoExprID, false
	}
	span := star.Span.Cover(p.exprSpan(operand))
	return p.arenas.Exprs.NewStarred(span, operand), true
}
