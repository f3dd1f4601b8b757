package parser

import (
	"fstrify/internal/ast"
	"fstrify/internal/diag"
	"fstrify/internal/source"
	"fstrify/internal/token"
)

// paramsMode различает контексты списка параметров: у def параметры
// закрываются скобкой и допускают аннотации, у lambda список кончается
// двоеточием и аннотации запрещены грамматикой.
type paramsMode uint8

const (
	paramsDef paramsMode = iota
	paramsLambda
)

func (m paramsMode) stops(p *Parser) bool {
	if m == paramsLambda {
		return p.at_or(token.Colon, token.Newline, token.EOF)
	}
	return p.at_or(token.RParen, token.Newline, token.EOF)
}

// parseParamList — список параметров def или lambda в порядке исходника,
// включая маркеры '/' и '*'. Закрывающий токен не съедается.
func (p *Parser) parseParamList(mode paramsMode) ([]ast.Param, bool) {
	var params []ast.Param
	sawStar := false      // '*' или '*args' уже был
	sawSlash := false     // '/' уже был
	sawKwargs := false    // '**kwargs' уже был
	sawDefault := false   // параметр со значением по умолчанию уже был
	namedAfterStar := 0   // именованные параметры после голой '*'
	bareStarIndex := -1   // позиция голой '*', для проверки хвоста

	for !mode.stops(p) {
		param, ok := p.parseParam(mode)
		if !ok {
			return nil, false
		}

		if sawKwargs {
			p.report(diag.SynUnexpectedToken, diag.SevError, param.Span, "no parameters allowed after '**' parameter")
			return nil, false
		}

		switch param.Kind {
		case ast.ParamDoubleStar:
			sawKwargs = true
		case ast.ParamStarArgs:
			if sawStar {
				p.report(diag.SynUnexpectedToken, diag.SevError, param.Span, "'*' parameter may appear only once")
				return nil, false
			}
			sawStar = true
		case ast.ParamStarMarker:
			if sawStar {
				p.report(diag.SynUnexpectedToken, diag.SevError, param.Span, "'*' parameter may appear only once")
				return nil, false
			}
			sawStar = true
			bareStarIndex = len(params)
		case ast.ParamSlashMarker:
			if sawSlash {
				p.report(diag.SynUnexpectedToken, diag.SevError, param.Span, "'/' may appear only once")
				return nil, false
			}
			if len(params) == 0 {
				p.report(diag.SynUnexpectedToken, diag.SevError, param.Span, "at least one parameter must precede '/'")
				return nil, false
			}
			if sawStar {
				p.report(diag.SynUnexpectedToken, diag.SevError, param.Span, "'/' must precede '*'")
				return nil, false
			}
			sawSlash = true
		case ast.ParamNormal:
			if sawStar {
				namedAfterStar++
			}
			if param.Default.IsValid() {
				sawDefault = true
			} else if sawDefault && !sawStar {
				p.report(diag.SynUnexpectedToken, diag.SevError, param.Span, "parameter without a default follows parameter with a default")
				return nil, false
			}
		}
		params = append(params, param)

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	if !mode.stops(p) {
		if mode == paramsLambda {
			p.err(diag.SynUnexpectedToken, "expected ',' or ':' in lambda parameters")
		} else {
			p.err(diag.SynUnexpectedToken, "expected ',' or ')' in parameter list")
		}
		return nil, false
	}
	if bareStarIndex >= 0 && namedAfterStar == 0 && !sawKwargs {
		p.report(diag.SynUnexpectedToken, diag.SevError, params[bareStarIndex].Span, "named parameter must follow bare '*'")
		return nil, false
	}
	return params, true
}

// parseParam — один параметр: имя с необязательной аннотацией и значением
// по умолчанию, либо *args / **kwargs / маркер.
func (p *Parser) parseParam(mode paramsMode) (ast.Param, bool) {
	switch p.peek().Kind {
	case token.Slash:
		tok := p.advance()
		return ast.Param{Kind: ast.ParamSlashMarker, Span: tok.Span}, true
	case token.StarStar:
		tok := p.advance()
		return p.parseNamedParam(mode, ast.ParamDoubleStar, tok.Span)
	case token.Star:
		tok := p.advance()
		if p.at(token.Comma) || mode.stops(p) {
			return ast.Param{Kind: ast.ParamStarMarker, Span: tok.Span}, true
		}
		return p.parseNamedParam(mode, ast.ParamStarArgs, tok.Span)
	default:
		return p.parseNamedParam(mode, ast.ParamNormal, source.Span{})
	}
}

// parseNamedParam — именная часть параметра после уже съеденных звёздочек.
// starSpan пуст для обычного параметра.
func (p *Parser) parseNamedParam(mode paramsMode, kind ast.ParamKind, starSpan source.Span) (ast.Param, bool) {
	name, ok := p.parseIdent()
	if !ok {
		return ast.Param{}, false
	}
	param := ast.Param{Kind: kind, Name: name}
	span := p.lastSpan
	if !starSpan.Empty() {
		span = starSpan.Cover(span)
	}

	if mode == paramsDef && p.at(token.Colon) {
		p.advance()
		annotation, okAnn := p.parseExpr()
		if !okAnn {
			p.err(diag.SynExpectExpression, "expected annotation after ':'")
			return ast.Param{}, false
		}
		param.Annotation = annotation
		span = span.Cover(p.exprSpan(annotation))
	}

	if p.at(token.Assign) {
		if kind != ast.ParamNormal {
			p.err(diag.SynUnexpectedToken, "star parameter cannot have a default value")
			return ast.Param{}, false
		}
		p.advance()
		value, okValue := p.parseExpr()
		if !okValue {
			p.err(diag.SynExpectExpression, "expected default value after '='")
			return ast.Param{}, false
		}
		param.Default = value
		span = span.Cover(p.exprSpan(value))
	}

	param.Span = span
	return param, true
}
