package parser

import (
	"fstrify/internal/ast"
	"fstrify/internal/diag"
	"fstrify/internal/token"
)

// parseStatement разбирает один составной оператор либо одну логическую
// строку простых операторов. Строка может нести несколько операторов
// через ';' — все попадают в out. Пустой out при true — строка-пустышка
// (лишний Newline или Dedent после восстановления).
func (p *Parser) parseStatement(out *[]ast.StmtID) bool {
	switch p.peek().Kind {
	case token.Newline, token.Dedent:
		// Остатки после восстановления: молча съедаем и идём дальше.
		p.advance()
		return true
	case token.Indent:
		p.err(diag.SynUnexpectedToken, "unexpected indent")
		return false
	case token.KwIf:
		stmt, ok := p.parseIfStmt()
		return p.appendStmt(out, stmt, ok)
	case token.KwWhile:
		stmt, ok := p.parseWhileStmt()
		return p.appendStmt(out, stmt, ok)
	case token.KwFor:
		tok := p.advance()
		stmt, ok := p.parseForStmt(tok.Span, false)
		return p.appendStmt(out, stmt, ok)
	case token.KwTry:
		stmt, ok := p.parseTryStmt()
		return p.appendStmt(out, stmt, ok)
	case token.KwWith:
		tok := p.advance()
		stmt, ok := p.parseWithStmt(tok.Span, false)
		return p.appendStmt(out, stmt, ok)
	case token.KwDef:
		tok := p.advance()
		stmt, ok := p.parseFuncDef(tok.Span, false, nil)
		return p.appendStmt(out, stmt, ok)
	case token.KwClass:
		tok := p.advance()
		stmt, ok := p.parseClassDef(tok.Span, nil)
		return p.appendStmt(out, stmt, ok)
	case token.KwAsync:
		stmt, ok := p.parseAsyncStmt()
		return p.appendStmt(out, stmt, ok)
	case token.At:
		stmt, ok := p.parseDecorated()
		return p.appendStmt(out, stmt, ok)
	case token.Ident:
		if p.atSoftKeyword("match") && p.matchStmtAhead() {
			stmt, ok := p.parseMatchStmt()
			return p.appendStmt(out, stmt, ok)
		}
	}
	return p.parseSimpleLine(out)
}

func (p *Parser) appendStmt(out *[]ast.StmtID, id ast.StmtID, ok bool) bool {
	if !ok {
		return false
	}
	*out = append(*out, id)
	return true
}

// parseAsyncStmt — async def / async for / async with.
func (p *Parser) parseAsyncStmt() (ast.StmtID, bool) {
	asyncTok := p.advance()
	switch p.peek().Kind {
	case token.KwDef:
		p.advance()
		return p.parseFuncDef(asyncTok.Span, true, nil)
	case token.KwFor:
		p.advance()
		return p.parseForStmt(asyncTok.Span, true)
	case token.KwWith:
		p.advance()
		return p.parseWithStmt(asyncTok.Span, true)
	default:
		p.err(diag.SynUnexpectedToken, "expected 'def', 'for' or 'with' after 'async'")
		return ast.NoStmtID, false
	}
}

// parseSimpleLine — простые операторы до конца логической строки,
// разделённые ';'. Завершающая ';' перед Newline допустима.
func (p *Parser) parseSimpleLine(out *[]ast.StmtID) bool {
	for {
		stmt, ok := p.parseSimpleStmt()
		if !ok {
			return false
		}
		*out = append(*out, stmt)
		if !p.at(token.Semicolon) {
			break
		}
		p.advance()
		if p.at(token.Newline) || p.at(token.EOF) {
			break
		}
	}
	return p.expectEndOfLine()
}

// expectEndOfLine — логическая строка должна закончиться: Newline или EOF.
func (p *Parser) expectEndOfLine() bool {
	switch p.peek().Kind {
	case token.Newline:
		p.advance()
		return true
	case token.EOF:
		return true
	default:
		p.err(diag.SynExpectNewline, "unexpected token after statement: \""+p.peek().Text+"\"")
		return false
	}
}

// parseSimpleStmt — один простой оператор без завершающего Newline.
func (p *Parser) parseSimpleStmt() (ast.StmtID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.KwPass:
		p.advance()
		return p.arenas.Stmts.NewSimple(ast.StmtPass, tok.Span), true
	case token.KwBreak:
		p.advance()
		return p.arenas.Stmts.NewSimple(ast.StmtBreak, tok.Span), true
	case token.KwContinue:
		p.advance()
		return p.arenas.Stmts.NewSimple(ast.StmtContinue, tok.Span), true
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwRaise:
		return p.parseRaiseStmt()
	case token.KwDel:
		return p.parseDelStmt()
	case token.KwGlobal:
		return p.parseGlobalStmt(ast.StmtGlobal)
	case token.KwNonlocal:
		return p.parseGlobalStmt(ast.StmtNonlocal)
	case token.KwAssert:
		return p.parseAssertStmt()
	case token.KwImport:
		return p.parseImportStmt()
	case token.KwFrom:
		return p.parseFromImportStmt()
	case token.KwYield:
		expr, ok := p.parseYieldExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewExprStmt(p.exprSpan(expr), expr), true
	default:
		return p.parseExprLine()
	}
}

// parseBlock — тело составного оператора после двоеточия: либо простые
// операторы на той же строке, либо Newline Indent операторы Dedent.
// Двоеточие съедает вызывающий — у него сообщение точнее.
func (p *Parser) parseBlock() ([]ast.StmtID, bool) {
	if !p.at(token.Newline) {
		// Однострочное тело: if x: a(); b()
		var stmts []ast.StmtID
		if !p.parseSimpleLine(&stmts) {
			return nil, false
		}
		if len(stmts) == 0 {
			p.err(diag.SynExpectExpression, "expected statement after ':'")
			return nil, false
		}
		return stmts, true
	}
	p.advance() // Newline

	if !p.at(token.Indent) {
		p.err(diag.SynExpectIndent, "expected an indented block")
		return nil, false
	}
	p.advance() // Indent

	var stmts []ast.StmtID
	var line []ast.StmtID
	for !p.at(token.Dedent) && !p.at(token.EOF) {
		line = line[:0]
		if !p.parseStatement(&line) {
			p.resyncLine()
			continue
		}
		stmts = append(stmts, line...)
	}
	if p.at(token.Dedent) {
		p.advance()
	}
	return stmts, true
}
