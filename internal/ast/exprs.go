package ast

import (
	"fstrify/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena      *Arena[Expr]
	Names      *Arena[ExprNameData]
	Nums       *Arena[ExprNumData]
	Strs       *Arena[ExprStrData]
	Consts     *Arena[ExprConstData]
	Groups     *Arena[ExprGroupData]
	Tuples     *Arena[ExprTupleData]
	Lists      *Arena[ExprListData]
	Sets       *Arena[ExprSetData]
	Dicts      *Arena[ExprDictData]
	Comps      *Arena[ExprCompData]
	Starreds   *Arena[ExprStarredData]
	Unaries    *Arena[ExprUnaryData]
	Binaries   *Arena[ExprBinaryData]
	BoolOps    *Arena[ExprBoolOpData]
	Compares   *Arena[ExprCompareData]
	Lambdas    *Arena[ExprLambdaData]
	IfElses    *Arena[ExprIfElseData]
	Calls      *Arena[ExprCallData]
	Attrs      *Arena[ExprAttrData]
	Subscripts *Arena[ExprSubscriptData]
	Slices     *Arena[ExprSliceData]
	Awaits     *Arena[ExprAwaitData]
	Yields     *Arena[ExprYieldData]
	Nameds     *Arena[ExprNamedData]
	Ases       *Arena[ExprAsData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using
// capHint as the initial capacity. Zero falls back to 1<<8.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:      NewArena[Expr](capHint),
		Names:      NewArena[ExprNameData](capHint),
		Nums:       NewArena[ExprNumData](capHint),
		Strs:       NewArena[ExprStrData](capHint),
		Consts:     NewArena[ExprConstData](capHint),
		Groups:     NewArena[ExprGroupData](capHint),
		Tuples:     NewArena[ExprTupleData](capHint),
		Lists:      NewArena[ExprListData](capHint),
		Sets:       NewArena[ExprSetData](capHint),
		Dicts:      NewArena[ExprDictData](capHint),
		Comps:      NewArena[ExprCompData](capHint),
		Starreds:   NewArena[ExprStarredData](capHint),
		Unaries:    NewArena[ExprUnaryData](capHint),
		Binaries:   NewArena[ExprBinaryData](capHint),
		BoolOps:    NewArena[ExprBoolOpData](capHint),
		Compares:   NewArena[ExprCompareData](capHint),
		Lambdas:    NewArena[ExprLambdaData](capHint),
		IfElses:    NewArena[ExprIfElseData](capHint),
		Calls:      NewArena[ExprCallData](capHint),
		Attrs:      NewArena[ExprAttrData](capHint),
		Subscripts: NewArena[ExprSubscriptData](capHint),
		Slices:     NewArena[ExprSliceData](capHint),
		Awaits:     NewArena[ExprAwaitData](capHint),
		Yields:     NewArena[ExprYieldData](capHint),
		Nameds:     NewArena[ExprNamedData](capHint),
		Ases:       NewArena[ExprAsData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// NewName creates a new identifier expression.
func (e *Exprs) NewName(span source.Span, ident source.StringID) ExprID {
	payload := e.Names.Allocate(ExprNameData{Ident: ident})
	return e.new(ExprName, span, PayloadID(payload))
}

// Name returns the identifier data for the given expression ID.
func (e *Exprs) Name(id ExprID) (*ExprNameData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprName {
		return nil, false
	}
	return e.Names.Get(uint32(expr.Payload)), true
}

// NewNum creates a new numeric literal expression.
func (e *Exprs) NewNum(span source.Span, kind NumKind, text source.StringID) ExprID {
	payload := e.Nums.Allocate(ExprNumData{Kind: kind, Text: text})
	return e.new(ExprNum, span, PayloadID(payload))
}

// Num returns the numeric literal data for the given expression ID.
func (e *Exprs) Num(id ExprID) (*ExprNumData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprNum {
		return nil, false
	}
	return e.Nums.Get(uint32(expr.Payload)), true
}

// NewStr creates a new string literal expression from one or more
// adjacent literal token spans.
func (e *Exprs) NewStr(span source.Span, parts []source.Span) ExprID {
	payload := e.Strs.Allocate(ExprStrData{
		Parts: append([]source.Span(nil), parts...),
	})
	return e.new(ExprStr, span, PayloadID(payload))
}

// Str returns the string literal data for the given expression ID.
func (e *Exprs) Str(id ExprID) (*ExprStrData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprStr {
		return nil, false
	}
	return e.Strs.Get(uint32(expr.Payload)), true
}

// NewConst creates a new keyword constant expression.
func (e *Exprs) NewConst(span source.Span, kind ConstKind) ExprID {
	payload := e.Consts.Allocate(ExprConstData{Kind: kind})
	return e.new(ExprConst, span, PayloadID(payload))
}

// Const returns the keyword constant data for the given expression ID.
func (e *Exprs) Const(id ExprID) (*ExprConstData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprConst {
		return nil, false
	}
	return e.Consts.Get(uint32(expr.Payload)), true
}

// NewGroup creates a new parenthesized expression.
func (e *Exprs) NewGroup(span source.Span, inner ExprID) ExprID {
	payload := e.Groups.Allocate(ExprGroupData{Inner: inner})
	return e.new(ExprGroup, span, PayloadID(payload))
}

// Group returns the group data for the given expression ID.
func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprGroup {
		return nil, false
	}
	return e.Groups.Get(uint32(expr.Payload)), true
}

// NewTuple creates a new tuple display expression.
func (e *Exprs) NewTuple(span source.Span, elements []ExprID) ExprID {
	payload := e.Tuples.Allocate(ExprTupleData{
		Elements: append([]ExprID(nil), elements...),
	})
	return e.new(ExprTuple, span, PayloadID(payload))
}

// Tuple returns the tuple data for the given expression ID.
func (e *Exprs) Tuple(id ExprID) (*ExprTupleData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprTuple {
		return nil, false
	}
	return e.Tuples.Get(uint32(expr.Payload)), true
}

// NewList creates a new list display expression.
func (e *Exprs) NewList(span source.Span, elements []ExprID) ExprID {
	payload := e.Lists.Allocate(ExprListData{
		Elements: append([]ExprID(nil), elements...),
	})
	return e.new(ExprList, span, PayloadID(payload))
}

// List returns the list data for the given expression ID.
func (e *Exprs) List(id ExprID) (*ExprListData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprList {
		return nil, false
	}
	return e.Lists.Get(uint32(expr.Payload)), true
}

// NewSet creates a new set display expression.
func (e *Exprs) NewSet(span source.Span, elements []ExprID) ExprID {
	payload := e.Sets.Allocate(ExprSetData{
		Elements: append([]ExprID(nil), elements...),
	})
	return e.new(ExprSet, span, PayloadID(payload))
}

// Set returns the set data for the given expression ID.
func (e *Exprs) Set(id ExprID) (*ExprSetData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprSet {
		return nil, false
	}
	return e.Sets.Get(uint32(expr.Payload)), true
}

// NewDict creates a new dict display expression.
func (e *Exprs) NewDict(span source.Span, entries []DictEntry) ExprID {
	payload := e.Dicts.Allocate(ExprDictData{
		Entries: append([]DictEntry(nil), entries...),
	})
	return e.new(ExprDict, span, PayloadID(payload))
}

// Dict returns the dict data for the given expression ID.
func (e *Exprs) Dict(id ExprID) (*ExprDictData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprDict {
		return nil, false
	}
	return e.Dicts.Get(uint32(expr.Payload)), true
}

// NewComp creates a new comprehension expression. key is NoExprID for
// everything except dict comprehensions.
func (e *Exprs) NewComp(span source.Span, kind CompKind, key, value ExprID, clauses []CompClause) ExprID {
	payload := e.Comps.Allocate(ExprCompData{
		Kind:    kind,
		Key:     key,
		Value:   value,
		Clauses: append([]CompClause(nil), clauses...),
	})
	return e.new(ExprComp, span, PayloadID(payload))
}

// Comp returns the comprehension data for the given expression ID.
func (e *Exprs) Comp(id ExprID) (*ExprCompData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprComp {
		return nil, false
	}
	return e.Comps.Get(uint32(expr.Payload)), true
}

// NewStarred creates a new `*expr` expression.
func (e *Exprs) NewStarred(span source.Span, value ExprID) ExprID {
	payload := e.Starreds.Allocate(ExprStarredData{Value: value})
	return e.new(ExprStarred, span, PayloadID(payload))
}

// Starred returns the starred data for the given expression ID.
func (e *Exprs) Starred(id ExprID) (*ExprStarredData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprStarred {
		return nil, false
	}
	return e.Starreds.Get(uint32(expr.Payload)), true
}

// NewUnary creates a new unary expression.
func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

// Unary returns the unary data for the given expression ID.
func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

// NewBinary creates a new binary expression.
func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

// Binary returns the binary data for the given expression ID.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

// NewBoolOp creates a new and/or chain expression.
func (e *Exprs) NewBoolOp(span source.Span, op BoolOp, values []ExprID) ExprID {
	payload := e.BoolOps.Allocate(ExprBoolOpData{
		Op:     op,
		Values: append([]ExprID(nil), values...),
	})
	return e.new(ExprBoolOp, span, PayloadID(payload))
}

// BoolOp returns the and/or chain data for the given expression ID.
func (e *Exprs) BoolOp(id ExprID) (*ExprBoolOpData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBoolOp {
		return nil, false
	}
	return e.BoolOps.Get(uint32(expr.Payload)), true
}

// NewCompare creates a new chained comparison expression.
func (e *Exprs) NewCompare(span source.Span, left ExprID, ops []CompareOp, comparators []ExprID) ExprID {
	payload := e.Compares.Allocate(ExprCompareData{
		Left:        left,
		Ops:         append([]CompareOp(nil), ops...),
		Comparators: append([]ExprID(nil), comparators...),
	})
	return e.new(ExprCompare, span, PayloadID(payload))
}

// Compare returns the comparison data for the given expression ID.
func (e *Exprs) Compare(id ExprID) (*ExprCompareData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCompare {
		return nil, false
	}
	return e.Compares.Get(uint32(expr.Payload)), true
}

// NewLambda creates a new lambda expression.
func (e *Exprs) NewLambda(span source.Span, params []Param, body ExprID) ExprID {
	payload := e.Lambdas.Allocate(ExprLambdaData{
		Params: append([]Param(nil), params...),
		Body:   body,
	})
	return e.new(ExprLambda, span, PayloadID(payload))
}

// Lambda returns the lambda data for the given expression ID.
func (e *Exprs) Lambda(id ExprID) (*ExprLambdaData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLambda {
		return nil, false
	}
	return e.Lambdas.Get(uint32(expr.Payload)), true
}

// NewIfElse creates a new conditional expression `body if cond else orelse`.
func (e *Exprs) NewIfElse(span source.Span, body, cond, orElse ExprID) ExprID {
	payload := e.IfElses.Allocate(ExprIfElseData{
		Body:   body,
		Cond:   cond,
		OrElse: orElse,
	})
	return e.new(ExprIfElse, span, PayloadID(payload))
}

// IfElse returns the conditional data for the given expression ID.
func (e *Exprs) IfElse(id ExprID) (*ExprIfElseData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIfElse {
		return nil, false
	}
	return e.IfElses.Get(uint32(expr.Payload)), true
}

// NewCall creates a new call expression.
func (e *Exprs) NewCall(span source.Span, fn ExprID, args []CallArg) ExprID {
	payload := e.Calls.Allocate(ExprCallData{
		Func: fn,
		Args: append([]CallArg(nil), args...),
	})
	return e.new(ExprCall, span, PayloadID(payload))
}

// Call returns the call data for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

// NewAttr creates a new attribute access expression.
func (e *Exprs) NewAttr(span source.Span, value ExprID, attr source.StringID) ExprID {
	payload := e.Attrs.Allocate(ExprAttrData{Value: value, Attr: attr})
	return e.new(ExprAttr, span, PayloadID(payload))
}

// Attr returns the attribute data for the given expression ID.
func (e *Exprs) Attr(id ExprID) (*ExprAttrData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprAttr {
		return nil, false
	}
	return e.Attrs.Get(uint32(expr.Payload)), true
}

// NewSubscript creates a new subscript expression.
func (e *Exprs) NewSubscript(span source.Span, value, index ExprID) ExprID {
	payload := e.Subscripts.Allocate(ExprSubscriptData{Value: value, Index: index})
	return e.new(ExprSubscript, span, PayloadID(payload))
}

// Subscript returns the subscript data for the given expression ID.
func (e *Exprs) Subscript(id ExprID) (*ExprSubscriptData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprSubscript {
		return nil, false
	}
	return e.Subscripts.Get(uint32(expr.Payload)), true
}

// NewSlice creates a new slice expression; absent bounds are NoExprID.
func (e *Exprs) NewSlice(span source.Span, lower, upper, step ExprID) ExprID {
	payload := e.Slices.Allocate(ExprSliceData{Lower: lower, Upper: upper, Step: step})
	return e.new(ExprSlice, span, PayloadID(payload))
}

// Slice returns the slice data for the given expression ID.
func (e *Exprs) Slice(id ExprID) (*ExprSliceData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprSlice {
		return nil, false
	}
	return e.Slices.Get(uint32(expr.Payload)), true
}

// NewAwait creates a new await expression.
func (e *Exprs) NewAwait(span source.Span, value ExprID) ExprID {
	payload := e.Awaits.Allocate(ExprAwaitData{Value: value})
	return e.new(ExprAwait, span, PayloadID(payload))
}

// Await returns the await data for the given expression ID.
func (e *Exprs) Await(id ExprID) (*ExprAwaitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprAwait {
		return nil, false
	}
	return e.Awaits.Get(uint32(expr.Payload)), true
}

// NewYield creates a new yield or yield-from expression.
func (e *Exprs) NewYield(span source.Span, value ExprID, isFrom bool) ExprID {
	payload := e.Yields.Allocate(ExprYieldData{Value: value, IsFrom: isFrom})
	return e.new(ExprYield, span, PayloadID(payload))
}

// Yield returns the yield data for the given expression ID.
func (e *Exprs) Yield(id ExprID) (*ExprYieldData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprYield {
		return nil, false
	}
	return e.Yields.Get(uint32(expr.Payload)), true
}

// NewNamed creates a new walrus assignment expression.
func (e *Exprs) NewNamed(span source.Span, target, value ExprID) ExprID {
	payload := e.Nameds.Allocate(ExprNamedData{Target: target, Value: value})
	return e.new(ExprNamed, span, PayloadID(payload))
}

// Named returns the walrus data for the given expression ID.
func (e *Exprs) Named(id ExprID) (*ExprNamedData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprNamed {
		return nil, false
	}
	return e.Nameds.Get(uint32(expr.Payload)), true
}

// NewAs creates a new match-pattern capture expression.
func (e *Exprs) NewAs(span source.Span, value ExprID, name source.StringID) ExprID {
	payload := e.Ases.Allocate(ExprAsData{Value: value, Name: name})
	return e.new(ExprAs, span, PayloadID(payload))
}

// As returns the capture data for the given expression ID.
func (e *Exprs) As(id ExprID) (*ExprAsData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprAs {
		return nil, false
	}
	return e.Ases.Get(uint32(expr.Payload)), true
}

// Unparen follows ExprGroup wrappers down to the first non-group
// expression. Скобки в исходнике не являются собственной структурой
// для переписывания.
func (e *Exprs) Unparen(id ExprID) ExprID {
	for {
		expr := e.Get(id)
		if expr == nil || expr.Kind != ExprGroup {
			return id
		}
		group := e.Groups.Get(uint32(expr.Payload))
		if group == nil || !group.Inner.IsValid() {
			return id
		}
		id = group.Inner
	}
}
