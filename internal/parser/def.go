package parser

import (
	"fstrify/internal/ast"
	"fstrify/internal/diag"
	"fstrify/internal/source"
	"fstrify/internal/token"
)

// parseFuncDef — определение функции; ключевые слова def (и async) уже
// съедены, startSpan указывает на первое из них либо на первый декоратор.
func (p *Parser) parseFuncDef(startSpan source.Span, isAsync bool, decorators []ast.ExprID) (ast.StmtID, bool) {
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	nameSpan := p.lastSpan

	if _, okOpen := p.expect(token.LParen, diag.SynUnclosedDelimiter, "expected '(' after function name"); !okOpen {
		return ast.NoStmtID, false
	}
	params, okParams := p.parseParamList(paramsDef)
	if !okParams {
		return ast.NoStmtID, false
	}
	if _, okClose := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after parameters"); !okClose {
		return ast.NoStmtID, false
	}

	returns := ast.NoExprID
	if p.at(token.Arrow) {
		p.advance()
		annotation, okAnn := p.parseExpr()
		if !okAnn {
			p.err(diag.SynExpectExpression, "expected return annotation after '->'")
			return ast.NoStmtID, false
		}
		returns = annotation
	}

	if _, okColon := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after function signature"); !okColon {
		return ast.NoStmtID, false
	}
	body, okBody := p.parseBlock()
	if !okBody {
		return ast.NoStmtID, false
	}

	span := startSpan.Cover(p.lastSpan)
	return p.arenas.Stmts.NewFuncDef(span, ast.StmtFuncDefData{
		Name:       name,
		NameSpan:   nameSpan,
		Params:     params,
		Returns:    returns,
		Body:       body,
		Decorators: decorators,
		IsAsync:    isAsync,
	}), true
}

// parseClassDef — определение класса; ключевое слово class уже съедено.
// Список баз разбирается как аргументы вызова: metaclass= и **kwargs
// сохраняют написание.
func (p *Parser) parseClassDef(startSpan source.Span, decorators []ast.ExprID) (ast.StmtID, bool) {
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	nameSpan := p.lastSpan

	var bases []ast.CallArg
	if p.at(token.LParen) {
		p.advance()
		var okBases bool
		bases, _, okBases = p.parseCallArgs()
		if !okBases {
			return ast.NoStmtID, false
		}
	}

	if _, okColon := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after class header"); !okColon {
		return ast.NoStmtID, false
	}
	body, okBody := p.parseBlock()
	if !okBody {
		return ast.NoStmtID, false
	}

	span := startSpan.Cover(p.lastSpan)
	return p.arenas.Stmts.NewClassDef(span, ast.StmtClassDefData{
		Name:       name,
		NameSpan:   nameSpan,
		Bases:      bases,
		Body:       body,
		Decorators: decorators,
	}), true
}

// parseDecorated — список декораторов перед def, async def или class.
// Каждый декоратор занимает собственную строку.
func (p *Parser) parseDecorated() (ast.StmtID, bool) {
	firstAt := p.peek().Span
	var decorators []ast.ExprID
	for p.at(token.At) {
		p.advance()
		decorator, ok := p.parseNamedExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		decorators = append(decorators, decorator)
		if _, okNl := p.expect(token.Newline, diag.SynExpectNewline, "expected end of line after decorator"); !okNl {
			return ast.NoStmtID, false
		}
	}

	switch p.peek().Kind {
	case token.KwDef:
		p.advance()
		return p.parseFuncDef(firstAt, false, decorators)
	case token.KwClass:
		p.advance()
		return p.parseClassDef(firstAt, decorators)
	case token.KwAsync:
		if p.peekAt(1).Kind == token.KwDef {
			p.advance()
			p.advance()
			return p.parseFuncDef(firstAt, true, decorators)
		}
	}
	p.err(diag.SynUnexpectedToken, "expected function or class definition after decorators")
	return ast.NoStmtID, false
}
