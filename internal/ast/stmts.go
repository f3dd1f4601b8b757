package ast

import (
	"fstrify/internal/source"
)

// Stmts manages allocation of statements.
type Stmts struct {
	Arena       *Arena[Stmt]
	ExprStmts   *Arena[StmtExprData]
	Assigns     *Arena[StmtAssignData]
	AugAssigns  *Arena[StmtAugAssignData]
	AnnAssigns  *Arena[StmtAnnAssignData]
	Returns     *Arena[StmtReturnData]
	Dels        *Arena[StmtDelData]
	Imports     *Arena[StmtImportData]
	ImportFroms *Arena[StmtImportFromData]
	Globals     *Arena[StmtGlobalData]
	Nonlocals   *Arena[StmtNonlocalData]
	Asserts     *Arena[StmtAssertData]
	Raises      *Arena[StmtRaiseData]
	Ifs         *Arena[StmtIfData]
	Whiles      *Arena[StmtWhileData]
	Fors        *Arena[StmtForData]
	Withs       *Arena[StmtWithData]
	Tries       *Arena[StmtTryData]
	FuncDefs    *Arena[StmtFuncDefData]
	ClassDefs   *Arena[StmtClassDefData]
	Matches     *Arena[StmtMatchData]
}

// NewStmts creates a new Stmts with per-kind arenas preallocated using
// capHint as the initial capacity. Zero falls back to 1<<8.
func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:       NewArena[Stmt](capHint),
		ExprStmts:   NewArena[StmtExprData](capHint),
		Assigns:     NewArena[StmtAssignData](capHint),
		AugAssigns:  NewArena[StmtAugAssignData](capHint),
		AnnAssigns:  NewArena[StmtAnnAssignData](capHint),
		Returns:     NewArena[StmtReturnData](capHint),
		Dels:        NewArena[StmtDelData](capHint),
		Imports:     NewArena[StmtImportData](capHint),
		ImportFroms: NewArena[StmtImportFromData](capHint),
		Globals:     NewArena[StmtGlobalData](capHint),
		Nonlocals:   NewArena[StmtNonlocalData](capHint),
		Asserts:     NewArena[StmtAssertData](capHint),
		Raises:      NewArena[StmtRaiseData](capHint),
		Ifs:         NewArena[StmtIfData](capHint),
		Whiles:      NewArena[StmtWhileData](capHint),
		Fors:        NewArena[StmtForData](capHint),
		Withs:       NewArena[StmtWithData](capHint),
		Tries:       NewArena[StmtTryData](capHint),
		FuncDefs:    NewArena[StmtFuncDefData](capHint),
		ClassDefs:   NewArena[StmtClassDefData](capHint),
		Matches:     NewArena[StmtMatchData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the statement with the given ID.
func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// NewSimple creates a statement that carries no payload:
// pass, break, continue.
func (s *Stmts) NewSimple(kind StmtKind, span source.Span) StmtID {
	return s.new(kind, span, NoPayloadID)
}

// NewExprStmt creates a new expression statement.
func (s *Stmts) NewExprStmt(span source.Span, value ExprID) StmtID {
	payload := s.ExprStmts.Allocate(StmtExprData{Value: value})
	return s.new(StmtExpr, span, PayloadID(payload))
}

// ExprStmt returns the expression statement data for the given ID.
func (s *Stmts) ExprStmt(id StmtID) (*StmtExprData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExpr {
		return nil, false
	}
	return s.ExprStmts.Get(uint32(stmt.Payload)), true
}

// NewAssign creates a new chained assignment statement.
func (s *Stmts) NewAssign(span source.Span, targets []ExprID, value ExprID) StmtID {
	payload := s.Assigns.Allocate(StmtAssignData{
		Targets: append([]ExprID(nil), targets...),
		Value:   value,
	})
	return s.new(StmtAssign, span, PayloadID(payload))
}

// Assign returns the assignment data for the given statement ID.
func (s *Stmts) Assign(id StmtID) (*StmtAssignData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtAssign {
		return nil, false
	}
	return s.Assigns.Get(uint32(stmt.Payload)), true
}

// NewAugAssign creates a new augmented assignment statement.
func (s *Stmts) NewAugAssign(span source.Span, target ExprID, op BinaryOp, value ExprID) StmtID {
	payload := s.AugAssigns.Allocate(StmtAugAssignData{Target: target, Op: op, Value: value})
	return s.new(StmtAugAssign, span, PayloadID(payload))
}

// AugAssign returns the augmented assignment data for the given ID.
func (s *Stmts) AugAssign(id StmtID) (*StmtAugAssignData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtAugAssign {
		return nil, false
	}
	return s.AugAssigns.Get(uint32(stmt.Payload)), true
}

// NewAnnAssign creates a new annotated assignment statement.
func (s *Stmts) NewAnnAssign(span source.Span, target, annotation, value ExprID) StmtID {
	payload := s.AnnAssigns.Allocate(StmtAnnAssignData{
		Target:     target,
		Annotation: annotation,
		Value:      value,
	})
	return s.new(StmtAnnAssign, span, PayloadID(payload))
}

// AnnAssign returns the annotated assignment data for the given ID.
func (s *Stmts) AnnAssign(id StmtID) (*StmtAnnAssignData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtAnnAssign {
		return nil, false
	}
	return s.AnnAssigns.Get(uint32(stmt.Payload)), true
}

// NewReturn creates a new return statement.
func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	payload := s.Returns.Allocate(StmtReturnData{Value: value})
	return s.new(StmtReturn, span, PayloadID(payload))
}

// Return returns the return data for the given statement ID.
func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtReturn {
		return nil, false
	}
	return s.Returns.Get(uint32(stmt.Payload)), true
}

// NewDel creates a new del statement.
func (s *Stmts) NewDel(span source.Span, targets []ExprID) StmtID {
	payload := s.Dels.Allocate(StmtDelData{
		Targets: append([]ExprID(nil), targets...),
	})
	return s.new(StmtDel, span, PayloadID(payload))
}

// Del returns the del data for the given statement ID.
func (s *Stmts) Del(id StmtID) (*StmtDelData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtDel {
		return nil, false
	}
	return s.Dels.Get(uint32(stmt.Payload)), true
}

// NewImport creates a new import statement.
func (s *Stmts) NewImport(span source.Span, names []ImportAlias) StmtID {
	payload := s.Imports.Allocate(StmtImportData{
		Names: append([]ImportAlias(nil), names...),
	})
	return s.new(StmtImport, span, PayloadID(payload))
}

// Import returns the import data for the given statement ID.
func (s *Stmts) Import(id StmtID) (*StmtImportData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtImport {
		return nil, false
	}
	return s.Imports.Get(uint32(stmt.Payload)), true
}

// NewImportFrom creates a new from-import statement.
func (s *Stmts) NewImportFrom(span source.Span, module source.StringID, dots int, names []ImportAlias, wildcard bool) StmtID {
	payload := s.ImportFroms.Allocate(StmtImportFromData{
		Module:   module,
		Dots:     dots,
		Names:    append([]ImportAlias(nil), names...),
		Wildcard: wildcard,
	})
	return s.new(StmtImportFrom, span, PayloadID(payload))
}

// ImportFrom returns the from-import data for the given statement ID.
func (s *Stmts) ImportFrom(id StmtID) (*StmtImportFromData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtImportFrom {
		return nil, false
	}
	return s.ImportFroms.Get(uint32(stmt.Payload)), true
}

// NewGlobal creates a new global declaration.
func (s *Stmts) NewGlobal(span source.Span, names []source.StringID) StmtID {
	payload := s.Globals.Allocate(StmtGlobalData{
		Names: append([]source.StringID(nil), names...),
	})
	return s.new(StmtGlobal, span, PayloadID(payload))
}

// Global returns the global declaration data for the given ID.
func (s *Stmts) Global(id StmtID) (*StmtGlobalData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtGlobal {
		return nil, false
	}
	return s.Globals.Get(uint32(stmt.Payload)), true
}

// NewNonlocal creates a new nonlocal declaration.
func (s *Stmts) NewNonlocal(span source.Span, names []source.StringID) StmtID {
	payload := s.Nonlocals.Allocate(StmtNonlocalData{
		Names: append([]source.StringID(nil), names...),
	})
	return s.new(StmtNonlocal, span, PayloadID(payload))
}

// Nonlocal returns the nonlocal declaration data for the given ID.
func (s *Stmts) Nonlocal(id StmtID) (*StmtNonlocalData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtNonlocal {
		return nil, false
	}
	return s.Nonlocals.Get(uint32(stmt.Payload)), true
}

// NewAssert creates a new assert statement.
func (s *Stmts) NewAssert(span source.Span, cond, msg ExprID) StmtID {
	payload := s.Asserts.Allocate(StmtAssertData{Cond: cond, Msg: msg})
	return s.new(StmtAssert, span, PayloadID(payload))
}

// Assert returns the assert data for the given statement ID.
func (s *Stmts) Assert(id StmtID) (*StmtAssertData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtAssert {
		return nil, false
	}
	return s.Asserts.Get(uint32(stmt.Payload)), true
}

// NewRaise creates a new raise statement.
func (s *Stmts) NewRaise(span source.Span, exc, from ExprID) StmtID {
	payload := s.Raises.Allocate(StmtRaiseData{Exc: exc, From: from})
	return s.new(StmtRaise, span, PayloadID(payload))
}

// Raise returns the raise data for the given statement ID.
func (s *Stmts) Raise(id StmtID) (*StmtRaiseData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtRaise {
		return nil, false
	}
	return s.Raises.Get(uint32(stmt.Payload)), true
}

// NewIf creates a new if statement.
func (s *Stmts) NewIf(span source.Span, cond ExprID, then, orElse []StmtID) StmtID {
	payload := s.Ifs.Allocate(StmtIfData{
		Cond: cond,
		Then: append([]StmtID(nil), then...),
		Else: append([]StmtID(nil), orElse...),
	})
	return s.new(StmtIf, span, PayloadID(payload))
}

// If returns the if data for the given statement ID.
func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtIf {
		return nil, false
	}
	return s.Ifs.Get(uint32(stmt.Payload)), true
}

// NewWhile creates a new while statement.
func (s *Stmts) NewWhile(span source.Span, cond ExprID, body, orElse []StmtID) StmtID {
	payload := s.Whiles.Allocate(StmtWhileData{
		Cond: cond,
		Body: append([]StmtID(nil), body...),
		Else: append([]StmtID(nil), orElse...),
	})
	return s.new(StmtWhile, span, PayloadID(payload))
}

// While returns the while data for the given statement ID.
func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtWhile {
		return nil, false
	}
	return s.Whiles.Get(uint32(stmt.Payload)), true
}

// NewFor creates a new for statement.
func (s *Stmts) NewFor(span source.Span, target, iter ExprID, body, orElse []StmtID, isAsync bool) StmtID {
	payload := s.Fors.Allocate(StmtForData{
		Target:  target,
		Iter:    iter,
		Body:    append([]StmtID(nil), body...),
		Else:    append([]StmtID(nil), orElse...),
		IsAsync: isAsync,
	})
	return s.new(StmtFor, span, PayloadID(payload))
}

// For returns the for data for the given statement ID.
func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtFor {
		return nil, false
	}
	return s.Fors.Get(uint32(stmt.Payload)), true
}

// NewWith creates a new with statement.
func (s *Stmts) NewWith(span source.Span, items []WithItem, body []StmtID, isAsync bool) StmtID {
	payload := s.Withs.Allocate(StmtWithData{
		Items:   append([]WithItem(nil), items...),
		Body:    append([]StmtID(nil), body...),
		IsAsync: isAsync,
	})
	return s.new(StmtWith, span, PayloadID(payload))
}

// With returns the with data for the given statement ID.
func (s *Stmts) With(id StmtID) (*StmtWithData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtWith {
		return nil, false
	}
	return s.Withs.Get(uint32(stmt.Payload)), true
}

// NewTry creates a new try statement.
func (s *Stmts) NewTry(span source.Span, body []StmtID, handlers []ExceptHandler, orElse, finally []StmtID, star bool) StmtID {
	payload := s.Tries.Allocate(StmtTryData{
		Body:     append([]StmtID(nil), body...),
		Handlers: append([]ExceptHandler(nil), handlers...),
		Else:     append([]StmtID(nil), orElse...),
		Finally:  append([]StmtID(nil), finally...),
		Star:     star,
	})
	return s.new(StmtTry, span, PayloadID(payload))
}

// Try returns the try data for the given statement ID.
func (s *Stmts) Try(id StmtID) (*StmtTryData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtTry {
		return nil, false
	}
	return s.Tries.Get(uint32(stmt.Payload)), true
}

// NewFuncDef creates a new function definition.
func (s *Stmts) NewFuncDef(span source.Span, data StmtFuncDefData) StmtID {
	data.Params = append([]Param(nil), data.Params...)
	data.Body = append([]StmtID(nil), data.Body...)
	data.Decorators = append([]ExprID(nil), data.Decorators...)
	payload := s.FuncDefs.Allocate(data)
	return s.new(StmtFuncDef, span, PayloadID(payload))
}

// FuncDef returns the function definition data for the given ID.
func (s *Stmts) FuncDef(id StmtID) (*StmtFuncDefData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtFuncDef {
		return nil, false
	}
	return s.FuncDefs.Get(uint32(stmt.Payload)), true
}

// NewClassDef creates a new class definition.
func (s *Stmts) NewClassDef(span source.Span, data StmtClassDefData) StmtID {
	data.Bases = append([]CallArg(nil), data.Bases...)
	data.Body = append([]StmtID(nil), data.Body...)
	data.Decorators = append([]ExprID(nil), data.Decorators...)
	payload := s.ClassDefs.Allocate(data)
	return s.new(StmtClassDef, span, PayloadID(payload))
}

// ClassDef returns the class definition data for the given ID.
func (s *Stmts) ClassDef(id StmtID) (*StmtClassDefData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtClassDef {
		return nil, false
	}
	return s.ClassDefs.Get(uint32(stmt.Payload)), true
}

// NewMatch creates a new match statement.
func (s *Stmts) NewMatch(span source.Span, subject ExprID, cases []MatchCase) StmtID {
	payload := s.Matches.Allocate(StmtMatchData{
		Subject: subject,
		Cases:   append([]MatchCase(nil), cases...),
	})
	return s.new(StmtMatch, span, PayloadID(payload))
}

// Match returns the match data for the given statement ID.
func (s *Stmts) Match(id StmtID) (*StmtMatchData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtMatch {
		return nil, false
	}
	return s.Matches.Get(uint32(stmt.Payload)), true
}
