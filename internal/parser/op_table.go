package parser

import (
	"fstrify/internal/ast"
	"fstrify/internal/token"
)

// Таблица приоритетов для бинарных операторов Pratt-ядра.
// Чем больше число, тем выше приоритет. Всё, что связывает слабее
// битового | (цепочки сравнений, not/and/or, тернарный if-else, lambda),
// разбирается отдельными уровнями в expression.go; правоассоциативная
// степень ** живёт в parsePowerExpr.
const (
	precBitwiseOr      = 1 // |
	precBitwiseXor     = 2 // ^
	precBitwiseAnd     = 3 // &
	precShift          = 4 // << >>
	precAdditive       = 5 // + -
	precMultiplicative = 6 // * @ / // %
)

// getBinaryOperatorPrec возвращает приоритет бинарного оператора
// или 0, если токен не бинарный оператор.
func (p *Parser) getBinaryOperatorPrec(kind token.Kind) int {
	switch kind {
	case token.Pipe:
		return precBitwiseOr
	case token.Caret:
		return precBitwiseXor
	case token.Amp:
		return precBitwiseAnd
	case token.Shl, token.Shr:
		return precShift
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.At, token.Slash, token.SlashSlash, token.Percent:
		return precMultiplicative
	default:
		return 0
	}
}

// tokenKindToBinaryOp конвертирует токен в бинарный оператор AST.
func (p *Parser) tokenKindToBinaryOp(kind token.Kind) ast.BinaryOp {
	switch kind {
	case token.Pipe:
		return ast.BinaryBitOr
	case token.Caret:
		return ast.BinaryBitXor
	case token.Amp:
		return ast.BinaryBitAnd
	case token.Shl:
		return ast.BinaryLShift
	case token.Shr:
		return ast.BinaryRShift
	case token.Plus:
		return ast.BinaryAdd
	case token.Minus:
		return ast.BinarySub
	case token.Star:
		return ast.BinaryMul
	case token.At:
		return ast.BinaryMatMul
	case token.Slash:
		return ast.BinaryDiv
	case token.SlashSlash:
		return ast.BinaryFloorDiv
	case token.Percent:
		return ast.BinaryMod
	case token.StarStar:
		return ast.BinaryPow
	default:
		return ast.BinaryAdd
	}
}

// getUnaryOperator возвращает унарный оператор для токена-префикса.
// not не входит: он связывает слабее сравнений и живёт в parseNotTest.
func (p *Parser) getUnaryOperator(kind token.Kind) (ast.UnaryOp, bool) {
	switch kind {
	case token.Plus:
		return ast.UnaryPos, true
	case token.Minus:
		return ast.UnaryNeg, true
	case token.Tilde:
		return ast.UnaryInvert, true
	default:
		return 0, false
	}
}

// getCompareOperator возвращает односимвольный оператор сравнения.
// Двухсловные формы (in, not in, is, is not) собирает parseComparison.
func (p *Parser) getCompareOperator(kind token.Kind) (ast.CompareOp, bool) {
	switch kind {
	case token.Lt:
		return ast.CompareLt, true
	case token.Gt:
		return ast.CompareGt, true
	case token.LtEq:
		return ast.CompareLtEq, true
	case token.GtEq:
		return ast.CompareGtEq, true
	case token.EqEq:
		return ast.CompareEq, true
	case token.BangEq:
		return ast.CompareNotEq, true
	default:
		return 0, false
	}
}

// getAugAssignOperator возвращает оператор составного присваивания.
func (p *Parser) getAugAssignOperator(kind token.Kind) (ast.BinaryOp, bool) {
	switch kind {
	case token.PlusAssign:
		return ast.BinaryAdd, true
	case token.MinusAssign:
		return ast.BinarySub, true
	case token.StarAssign:
		return ast.BinaryMul, true
	case token.AtAssign:
		return ast.BinaryMatMul, true
	case token.SlashAssign:
		return ast.BinaryDiv, true
	case token.SlashSlashAssign:
		return ast.BinaryFloorDiv, true
	case token.PercentAssign:
		return ast.BinaryMod, true
	case token.StarStarAssign:
		return ast.BinaryPow, true
	case token.ShlAssign:
		return ast.BinaryLShift, true
	case token.ShrAssign:
		return ast.BinaryRShift, true
	case token.AmpAssign:
		return ast.BinaryBitAnd, true
	case token.PipeAssign:
		return ast.BinaryBitOr, true
	case token.CaretAssign:
		return ast.BinaryBitXor, true
	default:
		return 0, false
	}
}
