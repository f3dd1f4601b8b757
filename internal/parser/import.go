package parser

import (
	"strings"

	"fstrify/internal/ast"
	"fstrify/internal/diag"
	"fstrify/internal/source"
	"fstrify/internal/token"
)

// parseImportStmt — `import a.b.c as x, d`.
func (p *Parser) parseImportStmt() (ast.StmtID, bool) {
	kw := p.advance()
	var names []ast.ImportAlias
	for {
		alias, ok := p.parseImportAlias(true)
		if !ok {
			return ast.NoStmtID, false
		}
		names = append(names, alias)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	span := kw.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewImport(span, names), true
}

// parseFromImportStmt — `from ...module import имена`: точки относительного
// импорта, сам модуль (может отсутствовать), затем `*`, скобочный или
// голый список имён.
func (p *Parser) parseFromImportStmt() (ast.StmtID, bool) {
	kw := p.advance()

	dots := 0
	for {
		switch p.peek().Kind {
		case token.Dot:
			p.advance()
			dots++
			continue
		case token.Ellipsis:
			// Лексер жадный: '...' — один токен, но здесь это три точки.
			p.advance()
			dots += 3
			continue
		}
		break
	}

	module := source.NoStringID
	if p.at(token.Ident) {
		var ok bool
		module, _, ok = p.parseDottedName()
		if !ok {
			return ast.NoStmtID, false
		}
	} else if dots == 0 {
		p.err(diag.SynExpectIdentifier, "expected module name after 'from'")
		return ast.NoStmtID, false
	}

	if _, ok := p.expect(token.KwImport, diag.SynUnexpectedToken, "expected 'import' in from-import"); !ok {
		return ast.NoStmtID, false
	}

	if p.at(token.Star) {
		p.advance()
		span := kw.Span.Cover(p.lastSpan)
		return p.arenas.Stmts.NewImportFrom(span, module, dots, nil, true), true
	}

	var names []ast.ImportAlias
	if p.at(token.LParen) {
		p.advance()
		for {
			alias, ok := p.parseImportAlias(false)
			if !ok {
				return ast.NoStmtID, false
			}
			names = append(names, alias)
			if p.at(token.Comma) {
				p.advance()
				if p.at(token.RParen) {
					break
				}
				continue
			}
			break
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after import names"); !ok {
			return ast.NoStmtID, false
		}
	} else {
		for {
			alias, ok := p.parseImportAlias(false)
			if !ok {
				return ast.NoStmtID, false
			}
			names = append(names, alias)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}

	span := kw.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewImportFrom(span, module, dots, names, false), true
}

// parseImportAlias — `имя [as псевдоним]`; в import имя может быть
// точечным, в from-import — только простым.
func (p *Parser) parseImportAlias(dotted bool) (ast.ImportAlias, bool) {
	var path source.StringID
	var pathSpan source.Span
	if dotted {
		var ok bool
		path, pathSpan, ok = p.parseDottedName()
		if !ok {
			return ast.ImportAlias{}, false
		}
	} else {
		name, ok := p.parseIdent()
		if !ok {
			return ast.ImportAlias{}, false
		}
		path = name
		pathSpan = p.lastSpan
	}

	alias := ast.ImportAlias{Path: path, Span: pathSpan}
	if p.at(token.KwAs) {
		p.advance()
		asname, ok := p.parseIdent()
		if !ok {
			return ast.ImportAlias{}, false
		}
		alias.Asname = asname
		alias.Span = pathSpan.Cover(p.lastSpan)
	}
	return alias, true
}

// parseDottedName — `a.b.c` как одно интернированное имя с общим спаном.
func (p *Parser) parseDottedName() (source.StringID, source.Span, bool) {
	first, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected module name")
	if !ok {
		return source.NoStringID, source.Span{}, false
	}
	span := first.Span

	var sb strings.Builder
	sb.WriteString(first.Text)
	for p.at(token.Dot) && p.peekAt(1).Kind == token.Ident {
		p.advance() // '.'
		part := p.advance()
		sb.WriteByte('.')
		sb.WriteString(part.Text)
		span = span.Cover(part.Span)
	}
	return p.arenas.Strings.Intern(sb.String()), span, true
}
