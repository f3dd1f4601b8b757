package ast

import (
	"fstrify/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprName represents an identifier expression.
	ExprName ExprKind = iota
	// ExprNum represents a numeric literal (int, float or imaginary).
	ExprNum
	// ExprStr represents a string literal, possibly built from several
	// adjacent literal tokens (implicit concatenation).
	ExprStr
	// ExprConst represents True, False, None or Ellipsis.
	ExprConst
	// ExprGroup represents a parenthesized expression.
	ExprGroup
	ExprTuple
	ExprList
	ExprSet
	ExprDict
	ExprComp
	ExprStarred
	ExprUnary
	ExprBinary
	ExprBoolOp
	ExprCompare
	ExprLambda
	ExprIfElse
	ExprCall
	ExprAttr
	ExprSubscript
	ExprSlice
	ExprAwait
	ExprYield
	ExprNamed
	// ExprAs is a match-pattern capture: `pattern as name`.
	ExprAs
)

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// BinaryOp enumerates binary arithmetic and bitwise operator kinds.
// (and/or живут в ExprBoolOp, сравнения — в ExprCompare.)
type BinaryOp uint8

const (
	// BinaryAdd represents the addition operator (+).
	BinaryAdd BinaryOp = iota
	// BinarySub represents the subtraction operator (-).
	BinarySub
	// BinaryMul represents the multiplication operator (*).
	BinaryMul
	// BinaryMatMul represents the matrix multiplication operator (@).
	BinaryMatMul
	// BinaryDiv represents the true division operator (/).
	BinaryDiv
	// BinaryFloorDiv represents the floor division operator (//).
	BinaryFloorDiv
	// BinaryMod represents the modulo operator (%). A modulo whose left
	// operand is a string literal is what the rewriter looks for.
	BinaryMod
	// BinaryPow represents the power operator (**).
	BinaryPow

	// Битовые

	BinaryLShift
	BinaryRShift
	BinaryBitAnd
	BinaryBitOr
	BinaryBitXor
)

// String returns the symbol representation of a binary operator.
func (op BinaryOp) String() string {
	switch op {
	case BinaryAdd:
		return "+"
	case BinarySub:
		return "-"
	case BinaryMul:
		return "*"
	case BinaryMatMul:
		return "@"
	case BinaryDiv:
		return "/"
	case BinaryFloorDiv:
		return "//"
	case BinaryMod:
		return "%"
	case BinaryPow:
		return "**"
	case BinaryLShift:
		return "<<"
	case BinaryRShift:
		return ">>"
	case BinaryBitAnd:
		return "&"
	case BinaryBitOr:
		return "|"
	case BinaryBitXor:
		return "^"
	default:
		return "?"
	}
}

// UnaryOp enumerates unary operator kinds.
type UnaryOp uint8

const (
	// UnaryPos represents the unary plus operator (+).
	UnaryPos UnaryOp = iota
	// UnaryNeg represents the unary minus operator (-).
	UnaryNeg
	// UnaryInvert represents the bitwise complement operator (~).
	UnaryInvert
	// UnaryNot represents the logical `not` operator.
	UnaryNot
)

// String returns the symbol representation of a unary operator.
func (op UnaryOp) String() string {
	switch op {
	case UnaryPos:
		return "+"
	case UnaryNeg:
		return "-"
	case UnaryInvert:
		return "~"
	case UnaryNot:
		return "not"
	default:
		return "?"
	}
}

// BoolOp enumerates the short-circuit operators.
type BoolOp uint8

const (
	BoolAnd BoolOp = iota
	BoolOr
)

func (op BoolOp) String() string {
	if op == BoolAnd {
		return "and"
	}
	return "or"
}

// CompareOp enumerates comparison operator kinds.
type CompareOp uint8

const (
	CompareEq CompareOp = iota
	CompareNotEq
	CompareLt
	CompareLtEq
	CompareGt
	CompareGtEq
	CompareIs
	CompareIsNot
	CompareIn
	CompareNotIn
)

// String returns the source spelling of a comparison operator.
func (op CompareOp) String() string {
	switch op {
	case CompareEq:
		return "=="
	case CompareNotEq:
		return "!="
	case CompareLt:
		return "<"
	case CompareLtEq:
		return "<="
	case CompareGt:
		return ">"
	case CompareGtEq:
		return ">="
	case CompareIs:
		return "is"
	case CompareIsNot:
		return "is not"
	case CompareIn:
		return "in"
	case CompareNotIn:
		return "not in"
	default:
		return "?"
	}
}

// NumKind distinguishes numeric literal flavors.
type NumKind uint8

const (
	NumInt NumKind = iota
	NumFloat
	NumImag
)

// ConstKind distinguishes keyword constants.
type ConstKind uint8

const (
	ConstTrue ConstKind = iota
	ConstFalse
	ConstNone
	ConstEllipsis
)

// String returns the source spelling of a keyword constant.
func (k ConstKind) String() string {
	switch k {
	case ConstTrue:
		return "True"
	case ConstFalse:
		return "False"
	case ConstNone:
		return "None"
	case ConstEllipsis:
		return "..."
	default:
		return "?"
	}
}

// ExprNameData holds identifier expression details.
type ExprNameData struct {
	Ident source.StringID
}

// ExprNumData holds numeric literal details. Text is the raw spelling.
type ExprNumData struct {
	Kind NumKind
	Text source.StringID
}

// ExprStrData holds string literal details. Parts are the spans of the
// adjacent literal tokens in source order; a plain literal has exactly
// one part. Текст достаётся срезом содержимого файла по Span.
type ExprStrData struct {
	Parts []source.Span
}

// ExprConstData holds keyword constant details.
type ExprConstData struct {
	Kind ConstKind
}

// ExprGroupData holds parenthesized expression details.
type ExprGroupData struct {
	Inner ExprID
}

// ExprTupleData holds tuple display details. Elements may include
// ExprStarred nodes.
type ExprTupleData struct {
	Elements []ExprID
}

// ExprListData holds list display details.
type ExprListData struct {
	Elements []ExprID
}

// ExprSetData holds set display details.
type ExprSetData struct {
	Elements []ExprID
}

// DictEntry represents one `key: value` pair in a dict display.
// Key is NoExprID for a `**mapping` expansion.
type DictEntry struct {
	Key   ExprID
	Value ExprID
}

// ExprDictData holds dict display details.
type ExprDictData struct {
	Entries []DictEntry
}

// CompKind distinguishes comprehension flavors.
type CompKind uint8

const (
	CompList CompKind = iota
	CompSet
	CompDict
	CompGenerator
)

// CompClause is one `for target in iter` clause with its `if` filters.
type CompClause struct {
	IsAsync bool
	Target  ExprID
	Iter    ExprID
	Ifs     []ExprID
}

// ExprCompData holds comprehension details. Key is set for dict
// comprehensions only; Value carries the element (or dict value).
type ExprCompData struct {
	Kind    CompKind
	Key     ExprID
	Value   ExprID
	Clauses []CompClause
}

// ExprStarredData holds `*expr` details.
type ExprStarredData struct {
	Value ExprID
}

// ExprUnaryData holds unary operation expression details.
type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

// ExprBinaryData holds binary operation expression details.
type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

// ExprBoolOpData holds an `and`/`or` chain. CPython flattens
// `a and b and c` into one node with three values; so do we.
type ExprBoolOpData struct {
	Op     BoolOp
	Values []ExprID
}

// ExprCompareData holds a chained comparison: `a < b <= c` keeps one
// Left plus parallel Ops/Comparators lists.
type ExprCompareData struct {
	Left        ExprID
	Ops         []CompareOp
	Comparators []ExprID
}

// ExprLambdaData holds lambda details.
type ExprLambdaData struct {
	Params []Param
	Body   ExprID
}

// ExprIfElseData represents a conditional expression
// `body if cond else orelse`.
type ExprIfElseData struct {
	Body   ExprID
	Cond   ExprID
	OrElse ExprID
}

// StarKind marks how a call argument is passed.
type StarKind uint8

const (
	StarNone StarKind = iota
	StarSingle
	StarDouble
)

// CallArg represents a call argument: positional, keyword (Name set),
// `*args` or `**kwargs`.
type CallArg struct {
	Name  source.StringID // NoStringID для позиционных
	Star  StarKind
	Value ExprID
}

// ExprCallData holds call expression details.
type ExprCallData struct {
	Func ExprID
	Args []CallArg
}

// ExprAttrData holds attribute access details.
type ExprAttrData struct {
	Value ExprID
	Attr  source.StringID
}

// ExprSubscriptData holds subscript details. Index may itself be an
// ExprSlice or ExprTuple node.
type ExprSubscriptData struct {
	Value ExprID
	Index ExprID
}

// ExprSliceData holds slice details; absent bounds stay NoExprID.
type ExprSliceData struct {
	Lower ExprID
	Upper ExprID
	Step  ExprID
}

// ExprAwaitData holds await expression details.
type ExprAwaitData struct {
	Value ExprID
}

// ExprYieldData holds `yield` and `yield from` details. Value is
// NoExprID for a bare yield.
type ExprYieldData struct {
	Value  ExprID
	IsFrom bool
}

// ExprNamedData holds a walrus assignment `target := value`.
type ExprNamedData struct {
	Target ExprID
	Value  ExprID
}

// ExprAsData holds a match-pattern capture `pattern as name`.
type ExprAsData struct {
	Value ExprID
	Name  source.StringID
}
