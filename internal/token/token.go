package token

import (
	"fstrify/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, ImagLit, StringLit:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case Plus, Minus, Star, StarStar, Slash, SlashSlash, Percent, At,
		Shl, Shr, Amp, Pipe, Caret, Tilde, Lt, Gt, LtEq, GtEq, EqEq, BangEq,
		LParen, RParen, LBracket, RBracket, LBrace, RBrace,
		Comma, Colon, ColonAssign, Dot, Ellipsis, Semicolon, Assign, Arrow,
		PlusAssign, MinusAssign, StarAssign, SlashAssign, SlashSlashAssign,
		PercentAssign, AtAssign, AmpAssign, PipeAssign, CaretAssign,
		ShrAssign, ShlAssign, StarStarAssign:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
// Soft keywords (match, case, type, _) are identifiers, not keywords.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwFalse && t.Kind <= KwYield
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsAugAssign reports whether the token is an augmented assignment operator.
func (t Token) IsAugAssign() bool {
	switch t.Kind {
	case PlusAssign, MinusAssign, StarAssign, SlashAssign, SlashSlashAssign,
		PercentAssign, AtAssign, AmpAssign, PipeAssign, CaretAssign,
		ShrAssign, ShlAssign, StarStarAssign:
		return true
	default:
		return false
	}
}

// ClosesLine reports whether the token can end a logical line.
func (t Token) ClosesLine() bool {
	return t.Kind == Newline || t.Kind == EOF
}
