package ast

import (
	"fstrify/internal/source"
)

// StmtKind enumerates the different kinds of statements.
type StmtKind uint8

const (
	// StmtExpr represents a bare expression statement.
	StmtExpr StmtKind = iota
	// StmtAssign represents `a = b = value`.
	StmtAssign
	// StmtAugAssign represents `target op= value`.
	StmtAugAssign
	// StmtAnnAssign represents `target: annotation` with optional value.
	StmtAnnAssign
	StmtReturn
	StmtPass
	StmtBreak
	StmtContinue
	StmtDel
	StmtImport
	StmtImportFrom
	StmtGlobal
	StmtNonlocal
	StmtAssert
	StmtRaise
	StmtIf
	StmtWhile
	StmtFor
	StmtWith
	StmtTry
	StmtFuncDef
	StmtClassDef
	StmtMatch
)

// Stmt represents a statement node in the AST. Простые операторы без
// данных (pass, break, continue) живут с NoPayloadID.
type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// StmtExprData holds an expression statement.
type StmtExprData struct {
	Value ExprID
}

// StmtAssignData holds a chained assignment: every target gets the
// same value.
type StmtAssignData struct {
	Targets []ExprID
	Value   ExprID
}

// StmtAugAssignData holds an augmented assignment.
type StmtAugAssignData struct {
	Target ExprID
	Op     BinaryOp
	Value  ExprID
}

// StmtAnnAssignData holds an annotated assignment; Value is NoExprID
// for a bare declaration.
type StmtAnnAssignData struct {
	Target     ExprID
	Annotation ExprID
	Value      ExprID
}

// StmtReturnData holds a return statement; Value is NoExprID for a
// bare return.
type StmtReturnData struct {
	Value ExprID
}

// StmtDelData holds a del statement.
type StmtDelData struct {
	Targets []ExprID
}

// ImportAlias is one `name as asname` entry. Path keeps the dotted
// spelling as written; Asname is NoStringID without `as`.
type ImportAlias struct {
	Path   source.StringID
	Asname source.StringID
	Span   source.Span
}

// StmtImportData holds `import a.b, c as d`.
type StmtImportData struct {
	Names []ImportAlias
}

// StmtImportFromData holds `from ...mod import x as y, z`. Dots counts
// the leading relative dots; Wildcard is `import *`.
type StmtImportFromData struct {
	Module   source.StringID // NoStringID для чисто относительного импорта
	Dots     int
	Names    []ImportAlias
	Wildcard bool
}

// StmtGlobalData holds a global declaration.
type StmtGlobalData struct {
	Names []source.StringID
}

// StmtNonlocalData holds a nonlocal declaration.
type StmtNonlocalData struct {
	Names []source.StringID
}

// StmtAssertData holds an assert; Msg is NoExprID without a message.
type StmtAssertData struct {
	Cond ExprID
	Msg  ExprID
}

// StmtRaiseData holds a raise; both fields may be NoExprID.
type StmtRaiseData struct {
	Exc  ExprID
	From ExprID
}

// StmtIfData holds an if statement. An elif chain is represented the
// CPython way: Else contains a single nested StmtIf.
type StmtIfData struct {
	Cond ExprID
	Then []StmtID
	Else []StmtID
}

// StmtWhileData holds a while statement with its optional else block.
type StmtWhileData struct {
	Cond ExprID
	Body []StmtID
	Else []StmtID
}

// StmtForData holds a for statement with its optional else block.
type StmtForData struct {
	Target  ExprID
	Iter    ExprID
	Body    []StmtID
	Else    []StmtID
	IsAsync bool
}

// WithItem is one `context as target` entry; Target is NoExprID
// without `as`.
type WithItem struct {
	Context ExprID
	Target  ExprID
}

// StmtWithData holds a with statement.
type StmtWithData struct {
	Items   []WithItem
	Body    []StmtID
	IsAsync bool
}

// ExceptHandler is one except clause. Type is NoExprID for a bare
// except; Name is NoStringID without `as`.
type ExceptHandler struct {
	Type ExprID
	Name source.StringID
	Body []StmtID
	Span source.Span
}

// StmtTryData holds a try statement. Star marks `except*` groups.
type StmtTryData struct {
	Body     []StmtID
	Handlers []ExceptHandler
	Else     []StmtID
	Finally  []StmtID
	Star     bool
}

// StmtFuncDefData holds a function definition.
type StmtFuncDefData struct {
	Name       source.StringID
	NameSpan   source.Span
	Params     []Param
	Returns    ExprID // аннотация результата, NoExprID если нет
	Body       []StmtID
	Decorators []ExprID
	IsAsync    bool
}

// StmtClassDefData holds a class definition. Bases reuses CallArg so
// keyword arguments like metaclass= keep their spelling.
type StmtClassDefData struct {
	Name       source.StringID
	NameSpan   source.Span
	Bases      []CallArg
	Body       []StmtID
	Decorators []ExprID
}

// MatchCase is one case clause: pattern, optional guard, body.
type MatchCase struct {
	Pattern ExprID
	Guard   ExprID // NoExprID без if
	Body    []StmtID
	Span    source.Span
}

// StmtMatchData holds a match statement.
type StmtMatchData struct {
	Subject ExprID
	Cases   []MatchCase
}
