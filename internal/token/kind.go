package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Newline marks the end of a logical line. Newlines inside open
	// brackets or after a backslash continuation are trivia, not tokens.
	Newline
	// Indent opens an indentation block at the start of a logical line.
	Indent
	// Dedent closes one indentation block. Several may be emitted in a row.
	Dedent

	// Ident represents an identifier token (including soft keywords like 'match').
	Ident

	// KwFalse represents the 'False' keyword.
	KwFalse // False
	// KwNone represents the 'None' keyword.
	KwNone // None
	// KwTrue represents the 'True' keyword.
	KwTrue // True
	// KwAnd represents the 'and' keyword.
	KwAnd // and
	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwAssert represents the 'assert' keyword.
	KwAssert // assert
	// KwAsync represents the 'async' keyword.
	KwAsync // async
	// KwAwait represents the 'await' keyword.
	KwAwait // await
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwClass represents the 'class' keyword.
	KwClass // class
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwDef represents the 'def' keyword.
	KwDef // def
	// KwDel represents the 'del' keyword.
	KwDel // del
	// KwElif represents the 'elif' keyword.
	KwElif // elif
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwExcept represents the 'except' keyword.
	KwExcept // except
	// KwFinally represents the 'finally' keyword.
	KwFinally // finally
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwFrom represents the 'from' keyword.
	KwFrom // from
	// KwGlobal represents the 'global' keyword.
	KwGlobal // global
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwIs represents the 'is' keyword.
	KwIs // is
	// KwLambda represents the 'lambda' keyword.
	KwLambda // lambda
	// KwNonlocal represents the 'nonlocal' keyword.
	KwNonlocal // nonlocal
	// KwNot represents the 'not' keyword.
	KwNot // not
	// KwOr represents the 'or' keyword.
	KwOr // or
	// KwPass represents the 'pass' keyword.
	KwPass // pass
	// KwRaise represents the 'raise' keyword.
	KwRaise // raise
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwTry represents the 'try' keyword.
	KwTry // try
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwWith represents the 'with' keyword.
	KwWith // with
	// KwYield represents the 'yield' keyword.
	KwYield // yield

	// IntLit represents an integer literal token.
	IntLit
	// FloatLit represents a float literal token.
	FloatLit
	// ImagLit represents an imaginary literal token (1j).
	ImagLit
	// StringLit represents any string or bytes literal, every prefix and
	// quote style included. Prefix classification lives in pystr.
	StringLit

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// StarStar represents the power operator token.
	StarStar // **
	// Slash represents the slash operator token.
	Slash // /
	// SlashSlash represents the floor-division operator token.
	SlashSlash // //
	// Percent represents the percent operator token.
	Percent // %
	// At represents the at operator token (decorators, matrix multiply).
	At // @
	// Shl represents the left-shift operator token.
	Shl // <<
	// Shr represents the right-shift operator token.
	Shr // >>
	// Amp represents the bitwise-and operator token.
	Amp // &
	// Pipe represents the bitwise-or operator token.
	Pipe // |
	// Caret represents the bitwise-xor operator token.
	Caret // ^
	// Tilde represents the bitwise-not operator token.
	Tilde // ~
	// Lt represents the less-than operator token.
	Lt // <
	// Gt represents the greater-than operator token.
	Gt // >
	// LtEq represents the less-or-equal operator token.
	LtEq // <=
	// GtEq represents the greater-or-equal operator token.
	GtEq // >=
	// EqEq represents the equality operator token.
	EqEq // ==
	// BangEq represents the inequality operator token.
	BangEq // !=

	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// Comma represents the comma token.
	Comma // ,
	// Colon represents the colon token.
	Colon // :
	// ColonAssign represents the walrus operator token.
	ColonAssign // :=
	// Dot represents the dot token.
	Dot // .
	// Ellipsis represents the ellipsis token.
	Ellipsis // ...
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// Assign represents the assignment token.
	Assign // =
	// Arrow represents the return-annotation arrow token.
	Arrow // ->

	// PlusAssign represents the augmented plus-assign token.
	PlusAssign // +=
	// MinusAssign represents the augmented minus-assign token.
	MinusAssign // -=
	// StarAssign represents the augmented star-assign token.
	StarAssign // *=
	// SlashAssign represents the augmented slash-assign token.
	SlashAssign // /=
	// SlashSlashAssign represents the augmented floor-division-assign token.
	SlashSlashAssign // //=
	// PercentAssign represents the augmented percent-assign token.
	PercentAssign // %=
	// AtAssign represents the augmented at-assign token.
	AtAssign // @=
	// AmpAssign represents the augmented and-assign token.
	AmpAssign // &=
	// PipeAssign represents the augmented or-assign token.
	PipeAssign // |=
	// CaretAssign represents the augmented xor-assign token.
	CaretAssign // ^=
	// ShrAssign represents the augmented right-shift-assign token.
	ShrAssign // >>=
	// ShlAssign represents the augmented left-shift-assign token.
	ShlAssign // <<=
	// StarStarAssign represents the augmented power-assign token.
	StarStarAssign // **=
)

var kindNames = [...]string{
	Invalid:          "Invalid",
	EOF:              "EOF",
	Newline:          "Newline",
	Indent:           "Indent",
	Dedent:           "Dedent",
	Ident:            "Ident",
	KwFalse:          "KwFalse",
	KwNone:           "KwNone",
	KwTrue:           "KwTrue",
	KwAnd:            "KwAnd",
	KwAs:             "KwAs",
	KwAssert:         "KwAssert",
	KwAsync:          "KwAsync",
	KwAwait:          "KwAwait",
	KwBreak:          "KwBreak",
	KwClass:          "KwClass",
	KwContinue:       "KwContinue",
	KwDef:            "KwDef",
	KwDel:            "KwDel",
	KwElif:           "KwElif",
	KwElse:           "KwElse",
	KwExcept:         "KwExcept",
	KwFinally:        "KwFinally",
	KwFor:            "KwFor",
	KwFrom:           "KwFrom",
	KwGlobal:         "KwGlobal",
	KwIf:             "KwIf",
	KwImport:         "KwImport",
	KwIn:             "KwIn",
	KwIs:             "KwIs",
	KwLambda:         "KwLambda",
	KwNonlocal:       "KwNonlocal",
	KwNot:            "KwNot",
	KwOr:             "KwOr",
	KwPass:           "KwPass",
	KwRaise:          "KwRaise",
	KwReturn:         "KwReturn",
	KwTry:            "KwTry",
	KwWhile:          "KwWhile",
	KwWith:           "KwWith",
	KwYield:          "KwYield",
	IntLit:           "IntLit",
	FloatLit:         "FloatLit",
	ImagLit:          "ImagLit",
	StringLit:        "StringLit",
	Plus:             "Plus",
	Minus:            "Minus",
	Star:             "Star",
	StarStar:         "StarStar",
	Slash:            "Slash",
	SlashSlash:       "SlashSlash",
	Percent:          "Percent",
	At:               "At",
	Shl:              "Shl",
	Shr:              "Shr",
	Amp:              "Amp",
	Pipe:             "Pipe",
	Caret:            "Caret",
	Tilde:            "Tilde",
	Lt:               "Lt",
	Gt:               "Gt",
	LtEq:             "LtEq",
	GtEq:             "GtEq",
	EqEq:             "EqEq",
	BangEq:           "BangEq",
	LParen:           "LParen",
	RParen:           "RParen",
	LBracket:         "LBracket",
	RBracket:         "RBracket",
	LBrace:           "LBrace",
	RBrace:           "RBrace",
	Comma:            "Comma",
	Colon:            "Colon",
	ColonAssign:      "ColonAssign",
	Dot:              "Dot",
	Ellipsis:         "Ellipsis",
	Semicolon:        "Semicolon",
	Assign:           "Assign",
	Arrow:            "Arrow",
	PlusAssign:       "PlusAssign",
	MinusAssign:      "MinusAssign",
	StarAssign:       "StarAssign",
	SlashAssign:      "SlashAssign",
	SlashSlashAssign: "SlashSlashAssign",
	PercentAssign:    "PercentAssign",
	AtAssign:         "AtAssign",
	AmpAssign:        "AmpAssign",
	PipeAssign:       "PipeAssign",
	CaretAssign:      "CaretAssign",
	ShrAssign:        "ShrAssign",
	ShlAssign:        "ShlAssign",
	StarStarAssign:   "StarStarAssign",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
