package parser

import (
	"testing"

	"fstrify/internal/ast"
	"fstrify/internal/diag"
	"fstrify/internal/source"
)

func TestExpressionStatement(t *testing.T) {
	r := parseSource(t, "print('%s' % name)\n")
	r.requireClean(t)

	value := r.exprStmtValue(t, r.onlyStmt(t))
	if r.exprKind(t, value) != ast.ExprCall {
		t.Fatalf("expected call, got %v", r.exprKind(t, value))
	}
	if got := r.exprText(t, value); got != "print('%s' % name)" {
		t.Errorf("call span text = %q", got)
	}
}

func TestAssignStatement(t *testing.T) {
	r := parseSource(t, "x = 1\n")
	r.requireClean(t)

	data, ok := r.builder.Stmts.Assign(r.onlyStmt(t))
	if !ok {
		t.Fatal("expected assignment")
	}
	if len(data.Targets) != 1 {
		t.Fatalf("expected 1 target, got %d", len(data.Targets))
	}
	if r.exprKind(t, data.Targets[0]) != ast.ExprName {
		t.Errorf("target kind = %v", r.exprKind(t, data.Targets[0]))
	}
	if r.exprKind(t, data.Value) != ast.ExprNum {
		t.Errorf("value kind = %v", r.exprKind(t, data.Value))
	}
}

func TestChainedAssign(t *testing.T) {
	r := parseSource(t, "a = b = c = 0\n")
	r.requireClean(t)

	data, ok := r.builder.Stmts.Assign(r.onlyStmt(t))
	if !ok {
		t.Fatal("expected assignment")
	}
	if len(data.Targets) != 3 {
		t.Fatalf("expected 3 targets, got %d", len(data.Targets))
	}
}

func TestTupleUnpackAssign(t *testing.T) {
	r := parseSource(t, "a, *rest = values\n")
	r.requireClean(t)

	data, ok := r.builder.Stmts.Assign(r.onlyStmt(t))
	if !ok {
		t.Fatal("expected assignment")
	}
	target := data.Targets[0]
	if r.exprKind(t, target) != ast.ExprTuple {
		t.Fatalf("expected tuple target, got %v", r.exprKind(t, target))
	}
	tuple, _ := r.builder.Exprs.Tuple(target)
	if len(tuple.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(tuple.Elements))
	}
	if r.exprKind(t, tuple.Elements[1]) != ast.ExprStarred {
		t.Errorf("second element kind = %v", r.exprKind(t, tuple.Elements[1]))
	}
}

func TestAugAssign(t *testing.T) {
	tests := []struct {
		input string
		op    ast.BinaryOp
	}{
		{"x += 1\n", ast.BinaryAdd},
		{"x -= 1\n", ast.BinarySub},
		{"x *= 2\n", ast.BinaryMul},
		{"x //= 2\n", ast.BinaryFloorDiv},
		{"x %= 3\n", ast.BinaryMod},
		{"x **= 2\n", ast.BinaryPow},
		{"x <<= 1\n", ast.BinaryLShift},
		{"x |= m\n", ast.BinaryBitOr},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := parseSource(t, tt.input)
			r.requireClean(t)
			data, ok := r.builder.Stmts.AugAssign(r.onlyStmt(t))
			if !ok {
				t.Fatal("expected augmented assignment")
			}
			if data.Op != tt.op {
				t.Errorf("op = %v, want %v", data.Op, tt.op)
			}
		})
	}
}

func TestAnnAssign(t *testing.T) {
	r := parseSource(t, "count: int = 0\n")
	r.requireClean(t)

	data, ok := r.builder.Stmts.AnnAssign(r.onlyStmt(t))
	if !ok {
		t.Fatal("expected annotated assignment")
	}
	if got := r.exprText(t, data.Annotation); got != "int" {
		t.Errorf("annotation = %q", got)
	}
	if !data.Value.IsValid() {
		t.Error("expected value")
	}
}

func TestAnnAssignBare(t *testing.T) {
	r := parseSource(t, "name: str\n")
	r.requireClean(t)

	data, ok := r.builder.Stmts.AnnAssign(r.onlyStmt(t))
	if !ok {
		t.Fatal("expected annotated assignment")
	}
	if data.Value.IsValid() {
		t.Error("expected no value")
	}
}

func TestBadAssignTarget(t *testing.T) {
	tests := []string{
		"1 = x\n",
		"f() = x\n",
		"x + y = 1\n",
		"'s' = 1\n",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			r := parseSource(t, input)
			r.requireCode(t, diag.SynBadAssignTarget)
		})
	}
}

func TestSemicolonSeparatedStatements(t *testing.T) {
	r := parseSource(t, "a = 1; b = 2; c\n")
	r.requireClean(t)

	body := r.top(t)
	if len(body) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(body))
	}
	if r.stmtKind(t, body[2]) != ast.StmtExpr {
		t.Errorf("third statement kind = %v", r.stmtKind(t, body[2]))
	}
}

func TestTrailingSemicolon(t *testing.T) {
	r := parseSource(t, "x = 1;\n")
	r.requireClean(t)
	if got := len(r.top(t)); got != 1 {
		t.Fatalf("expected 1 statement, got %d", got)
	}
}

func TestReturnForms(t *testing.T) {
	input := "def f():\n    return\ndef g():\n    return 1, 2\n"
	r := parseSource(t, input)
	r.requireClean(t)

	body := r.top(t)
	if len(body) != 2 {
		t.Fatalf("expected 2 defs, got %d", len(body))
	}
	f, _ := r.builder.Stmts.FuncDef(body[0])
	ret, ok := r.builder.Stmts.Return(f.Body[0])
	if !ok {
		t.Fatal("expected return in f")
	}
	if ret.Value.IsValid() {
		t.Error("bare return must have no value")
	}
	g, _ := r.builder.Stmts.FuncDef(body[1])
	ret2, _ := r.builder.Stmts.Return(g.Body[0])
	if r.exprKind(t, ret2.Value) != ast.ExprTuple {
		t.Errorf("return value kind = %v", r.exprKind(t, ret2.Value))
	}
}

func TestRaiseForms(t *testing.T) {
	input := "try:\n    pass\nexcept ValueError:\n    raise\nexcept KeyError as e:\n    raise RuntimeError('bad') from e\n"
	r := parseSource(t, input)
	r.requireClean(t)

	data, ok := r.builder.Stmts.Try(r.onlyStmt(t))
	if !ok {
		t.Fatal("expected try statement")
	}
	if len(data.Handlers) != 2 {
		t.Fatalf("expected 2 handlers, got %d", len(data.Handlers))
	}

	bare, _ := r.builder.Stmts.Raise(data.Handlers[0].Body[0])
	if bare.Exc.IsValid() {
		t.Error("bare raise must have no exception")
	}
	if got := r.name(t, data.Handlers[1].Name); got != "e" {
		t.Errorf("handler name = %q", got)
	}
	chained, _ := r.builder.Stmts.Raise(data.Handlers[1].Body[0])
	if !chained.Exc.IsValid() || !chained.From.IsValid() {
		t.Error("expected both exception and cause")
	}
	if got := r.exprText(t, chained.From); got != "e" {
		t.Errorf("cause = %q", got)
	}
}

func TestDelStatement(t *testing.T) {
	r := parseSource(t, "del cache[key], self.tmp\n")
	r.requireClean(t)

	data, ok := r.builder.Stmts.Del(r.onlyStmt(t))
	if !ok {
		t.Fatal("expected del statement")
	}
	if len(data.Targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(data.Targets))
	}
	if r.exprKind(t, data.Targets[0]) != ast.ExprSubscript {
		t.Errorf("first target kind = %v", r.exprKind(t, data.Targets[0]))
	}
	if r.exprKind(t, data.Targets[1]) != ast.ExprAttr {
		t.Errorf("second target kind = %v", r.exprKind(t, data.Targets[1]))
	}
}

func TestGlobalNonlocal(t *testing.T) {
	r := parseSource(t, "def f():\n    global a, b\n    def g():\n        nonlocal a\n")
	r.requireClean(t)

	f, _ := r.builder.Stmts.FuncDef(r.onlyStmt(t))
	glob, ok := r.builder.Stmts.Global(f.Body[0])
	if !ok {
		t.Fatal("expected global statement")
	}
	if len(glob.Names) != 2 {
		t.Fatalf("expected 2 names, got %d", len(glob.Names))
	}
	inner, _ := r.builder.Stmts.FuncDef(f.Body[1])
	if _, ok := r.builder.Stmts.Nonlocal(inner.Body[0]); !ok {
		t.Fatal("expected nonlocal statement")
	}
}

func TestAssertStatement(t *testing.T) {
	r := parseSource(t, "assert x > 0, 'must be positive'\n")
	r.requireClean(t)

	data, ok := r.builder.Stmts.Assert(r.onlyStmt(t))
	if !ok {
		t.Fatal("expected assert statement")
	}
	if r.exprKind(t, data.Cond) != ast.ExprCompare {
		t.Errorf("condition kind = %v", r.exprKind(t, data.Cond))
	}
	if !data.Msg.IsValid() {
		t.Error("expected message")
	}
}

func TestImportStatement(t *testing.T) {
	r := parseSource(t, "import os.path, sys as system\n")
	r.requireClean(t)

	data, ok := r.builder.Stmts.Import(r.onlyStmt(t))
	if !ok {
		t.Fatal("expected import statement")
	}
	if len(data.Names) != 2 {
		t.Fatalf("expected 2 aliases, got %d", len(data.Names))
	}
	if got := r.name(t, data.Names[0].Path); got != "os.path" {
		t.Errorf("first path = %q", got)
	}
	if data.Names[0].Asname != source.NoStringID {
		t.Error("first alias must have no asname")
	}
	if got := r.name(t, data.Names[1].Asname); got != "system" {
		t.Errorf("second asname = %q", got)
	}
}

func TestFromImport(t *testing.T) {
	tests := []struct {
		input    string
		module   string
		dots     int
		names    int
		wildcard bool
	}{
		{"from os import path as p, sep\n", "os", 0, 2, false},
		{"from . import helpers\n", "", 1, 1, false},
		{"from ...pkg.sub import thing\n", "pkg.sub", 3, 1, false},
		{"from collections import *\n", "collections", 0, 0, true},
		{"from m import (a,\n    b,\n)\n", "m", 0, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := parseSource(t, tt.input)
			r.requireClean(t)
			data, ok := r.builder.Stmts.ImportFrom(r.onlyStmt(t))
			if !ok {
				t.Fatal("expected from-import statement")
			}
			if tt.module == "" {
				if data.Module != source.NoStringID {
					t.Errorf("expected no module, got %q", r.name(t, data.Module))
				}
			} else if got := r.name(t, data.Module); got != tt.module {
				t.Errorf("module = %q, want %q", got, tt.module)
			}
			if data.Dots != tt.dots {
				t.Errorf("dots = %d, want %d", data.Dots, tt.dots)
			}
			if len(data.Names) != tt.names {
				t.Errorf("names = %d, want %d", len(data.Names), tt.names)
			}
			if data.Wildcard != tt.wildcard {
				t.Errorf("wildcard = %v, want %v", data.Wildcard, tt.wildcard)
			}
		})
	}
}

func TestIfElifElse(t *testing.T) {
	input := "if a:\n    x = 1\nelif b:\n    x = 2\nelse:\n    x = 3\n"
	r := parseSource(t, input)
	r.requireClean(t)

	data, ok := r.builder.Stmts.If(r.onlyStmt(t))
	if !ok {
		t.Fatal("expected if statement")
	}
	if len(data.Then) != 1 {
		t.Fatalf("then block size = %d", len(data.Then))
	}
	if len(data.Else) != 1 {
		t.Fatalf("else block size = %d", len(data.Else))
	}
	nested, ok := r.builder.Stmts.If(data.Else[0])
	if !ok {
		t.Fatal("elif must become a nested if")
	}
	if len(nested.Else) != 1 {
		t.Fatalf("nested else size = %d", len(nested.Else))
	}
	if r.stmtKind(t, nested.Else[0]) != ast.StmtAssign {
		t.Errorf("final else kind = %v", r.stmtKind(t, nested.Else[0]))
	}
}

func TestIfSingleLineBody(t *testing.T) {
	r := parseSource(t, "if ready: start(); log()\n")
	r.requireClean(t)

	data, ok := r.builder.Stmts.If(r.onlyStmt(t))
	if !ok {
		t.Fatal("expected if statement")
	}
	if len(data.Then) != 2 {
		t.Fatalf("expected 2 body statements, got %d", len(data.Then))
	}
}

func TestWhileElse(t *testing.T) {
	input := "while n:\n    n -= 1\nelse:\n    done()\n"
	r := parseSource(t, input)
	r.requireClean(t)

	data, ok := r.builder.Stmts.While(r.onlyStmt(t))
	if !ok {
		t.Fatal("expected while statement")
	}
	if len(data.Body) != 1 || len(data.Else) != 1 {
		t.Fatalf("body=%d else=%d", len(data.Body), len(data.Else))
	}
}

func TestForStatement(t *testing.T) {
	input := "for key, value in table.items():\n    emit(key, value)\nelse:\n    flush()\n"
	r := parseSource(t, input)
	r.requireClean(t)

	data, ok := r.builder.Stmts.For(r.onlyStmt(t))
	if !ok {
		t.Fatal("expected for statement")
	}
	if r.exprKind(t, data.Target) != ast.ExprTuple {
		t.Errorf("target kind = %v", r.exprKind(t, data.Target))
	}
	if got := r.exprText(t, data.Iter); got != "table.items()" {
		t.Errorf("iter = %q", got)
	}
	if data.IsAsync {
		t.Error("unexpected async flag")
	}
	if len(data.Else) != 1 {
		t.Errorf("else size = %d", len(data.Else))
	}
}

func TestWithStatement(t *testing.T) {
	r := parseSource(t, "with open(path) as fh:\n    data = fh.read()\n")
	r.requireClean(t)

	data, ok := r.builder.Stmts.With(r.onlyStmt(t))
	if !ok {
		t.Fatal("expected with statement")
	}
	if len(data.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(data.Items))
	}
	if got := r.exprText(t, data.Items[0].Context); got != "open(path)" {
		t.Errorf("context = %q", got)
	}
	if got := r.exprText(t, data.Items[0].Target); got != "fh" {
		t.Errorf("target = %q", got)
	}
}

func TestWithParenthesizedItems(t *testing.T) {
	r := parseSource(t, "with (open(a) as f, open(b) as g):\n    pass\n")
	r.requireClean(t)

	data, ok := r.builder.Stmts.With(r.onlyStmt(t))
	if !ok {
		t.Fatal("expected with statement")
	}
	if len(data.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(data.Items))
	}
}

func TestWithGroupedContext(t *testing.T) {
	// скобки вокруг контекста без 'as' — обычное выражение
	r := parseSource(t, "with (lock):\n    pass\n")
	r.requireClean(t)

	data, _ := r.builder.Stmts.With(r.onlyStmt(t))
	if len(data.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(data.Items))
	}
	if data.Items[0].Target.IsValid() {
		t.Error("expected no target")
	}
}

func TestTryFull(t *testing.T) {
	input := "try:\n    work()\nexcept ValueError as e:\n    handle(e)\nexcept Exception:\n    pass\nelse:\n    ok()\nfinally:\n    cleanup()\n"
	r := parseSource(t, input)
	r.requireClean(t)

	data, ok := r.builder.Stmts.Try(r.onlyStmt(t))
	if !ok {
		t.Fatal("expected try statement")
	}
	if len(data.Handlers) != 2 {
		t.Fatalf("handlers = %d", len(data.Handlers))
	}
	if len(data.Else) != 1 || len(data.Finally) != 1 {
		t.Fatalf("else=%d finally=%d", len(data.Else), len(data.Finally))
	}
	if data.Star {
		t.Error("unexpected except* flag")
	}
	if !data.Handlers[0].Type.IsValid() || data.Handlers[0].Name == source.NoStringID {
		t.Error("first handler must have type and name")
	}
}

func TestTryExceptGroup(t *testing.T) {
	input := "try:\n    work()\nexcept* OSError:\n    pass\n"
	r := parseSource(t, input)
	r.requireClean(t)

	data, _ := r.builder.Stmts.Try(r.onlyStmt(t))
	if !data.Star {
		t.Error("expected except* flag")
	}
}

func TestTryWithoutHandlers(t *testing.T) {
	r := parseSource(t, "try:\n    pass\n")
	r.requireCode(t, diag.SynUnexpectedToken)
}

func TestTryFinallyOnly(t *testing.T) {
	r := parseSource(t, "try:\n    pass\nfinally:\n    pass\n")
	r.requireClean(t)
}

func TestFuncDef(t *testing.T) {
	input := "def render(template, /, name, *parts, sep=', ', **opts) -> str:\n    return sep.join(parts)\n"
	r := parseSource(t, input)
	r.requireClean(t)

	data, ok := r.builder.Stmts.FuncDef(r.onlyStmt(t))
	if !ok {
		t.Fatal("expected function definition")
	}
	if got := r.name(t, data.Name); got != "render" {
		t.Errorf("name = %q", got)
	}
	kinds := make([]ast.ParamKind, len(data.Params))
	for i, param := range data.Params {
		kinds[i] = param.Kind
	}
	want := []ast.ParamKind{
		ast.ParamNormal, ast.ParamSlashMarker, ast.ParamNormal,
		ast.ParamStarArgs, ast.ParamNormal, ast.ParamDoubleStar,
	}
	if len(kinds) != len(want) {
		t.Fatalf("param kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("param %d kind = %v, want %v", i, kinds[i], want[i])
		}
	}
	if !data.Params[4].Default.IsValid() {
		t.Error("sep must have a default")
	}
	if got := r.exprText(t, data.Returns); got != "str" {
		t.Errorf("returns = %q", got)
	}
}

func TestFuncDefKeywordOnly(t *testing.T) {
	r := parseSource(t, "def f(a, *, b):\n    pass\n")
	r.requireClean(t)

	data, _ := r.builder.Stmts.FuncDef(r.onlyStmt(t))
	if data.Params[1].Kind != ast.ParamStarMarker {
		t.Errorf("expected bare star marker, got %v", data.Params[1].Kind)
	}
}

func TestFuncDefAnnotations(t *testing.T) {
	r := parseSource(t, "def f(x: int, y: list[str] = []) -> None:\n    pass\n")
	r.requireClean(t)

	data, _ := r.builder.Stmts.FuncDef(r.onlyStmt(t))
	if got := r.exprText(t, data.Params[0].Annotation); got != "int" {
		t.Errorf("x annotation = %q", got)
	}
	if got := r.exprText(t, data.Params[1].Annotation); got != "list[str]" {
		t.Errorf("y annotation = %q", got)
	}
	if !data.Params[1].Default.IsValid() {
		t.Error("y must have a default")
	}
}

func TestParamOrderErrors(t *testing.T) {
	tests := []string{
		"def f(a=1, b):\n    pass\n",
		"def f(**kw, a):\n    pass\n",
		"def f(*a, *b):\n    pass\n",
		"def f(a, *):\n    pass\n",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			r := parseSource(t, input)
			r.requireCode(t, diag.SynUnexpectedToken)
		})
	}
}

func TestClassDef(t *testing.T) {
	input := "class Handler(Base, metaclass=Meta):\n    def run(self):\n        pass\n"
	r := parseSource(t, input)
	r.requireClean(t)

	data, ok := r.builder.Stmts.ClassDef(r.onlyStmt(t))
	if !ok {
		t.Fatal("expected class definition")
	}
	if got := r.name(t, data.Name); got != "Handler" {
		t.Errorf("name = %q", got)
	}
	if len(data.Bases) != 2 {
		t.Fatalf("bases = %d", len(data.Bases))
	}
	if data.Bases[1].Name == source.NoStringID {
		t.Error("second base must be a keyword argument")
	} else if got := r.name(t, data.Bases[1].Name); got != "metaclass" {
		t.Errorf("keyword base = %q", got)
	}
	if len(data.Body) != 1 {
		t.Fatalf("body = %d", len(data.Body))
	}
}

func TestDecorators(t *testing.T) {
	input := "@app.route('/health')\n@cached\ndef health():\n    return 'ok'\n"
	r := parseSource(t, input)
	r.requireClean(t)

	data, ok := r.builder.Stmts.FuncDef(r.onlyStmt(t))
	if !ok {
		t.Fatal("expected function definition")
	}
	if len(data.Decorators) != 2 {
		t.Fatalf("decorators = %d", len(data.Decorators))
	}
	if r.exprKind(t, data.Decorators[0]) != ast.ExprCall {
		t.Errorf("first decorator kind = %v", r.exprKind(t, data.Decorators[0]))
	}
}

func TestAsyncForms(t *testing.T) {
	input := "async def pump(queue):\n    async with session() as s:\n        async for item in s.stream():\n            await queue.put(item)\n"
	r := parseSource(t, input)
	r.requireClean(t)

	fn, ok := r.builder.Stmts.FuncDef(r.onlyStmt(t))
	if !ok || !fn.IsAsync {
		t.Fatal("expected async function")
	}
	with, ok := r.builder.Stmts.With(fn.Body[0])
	if !ok || !with.IsAsync {
		t.Fatal("expected async with")
	}
	loop, ok := r.builder.Stmts.For(with.Body[0])
	if !ok || !loop.IsAsync {
		t.Fatal("expected async for")
	}
	value := r.exprStmtValue(t, loop.Body[0])
	if r.exprKind(t, value) != ast.ExprAwait {
		t.Errorf("body kind = %v", r.exprKind(t, value))
	}
}

func TestMatchStatement(t *testing.T) {
	input := `match command:
    case "go", direction:
        move(direction)
    case Point(x=0, y=0) | None as origin if ready:
        reset(origin)
    case {"verb": verb, **rest}:
        run(verb)
    case [first, *others]:
        queue(first)
    case _:
        ignore()
`
	r := parseSource(t, input)
	r.requireClean(t)

	data, ok := r.builder.Stmts.Match(r.onlyStmt(t))
	if !ok {
		t.Fatal("expected match statement")
	}
	if len(data.Cases) != 5 {
		t.Fatalf("cases = %d", len(data.Cases))
	}

	if r.exprKind(t, data.Cases[0].Pattern) != ast.ExprTuple {
		t.Errorf("case 0 pattern kind = %v", r.exprKind(t, data.Cases[0].Pattern))
	}
	if r.exprKind(t, data.Cases[1].Pattern) != ast.ExprAs {
		t.Errorf("case 1 pattern kind = %v", r.exprKind(t, data.Cases[1].Pattern))
	}
	if !data.Cases[1].Guard.IsValid() {
		t.Error("case 1 must have a guard")
	}
	asData, _ := r.builder.Exprs.As(data.Cases[1].Pattern)
	if r.exprKind(t, asData.Value) != ast.ExprBinary {
		t.Errorf("or-pattern kind = %v", r.exprKind(t, asData.Value))
	}
	if r.exprKind(t, data.Cases[2].Pattern) != ast.ExprDict {
		t.Errorf("case 2 pattern kind = %v", r.exprKind(t, data.Cases[2].Pattern))
	}
	if r.exprKind(t, data.Cases[3].Pattern) != ast.ExprList {
		t.Errorf("case 3 pattern kind = %v", r.exprKind(t, data.Cases[3].Pattern))
	}
	if r.exprKind(t, data.Cases[4].Pattern) != ast.ExprName {
		t.Errorf("case 4 pattern kind = %v", r.exprKind(t, data.Cases[4].Pattern))
	}
}

func TestMatchAsCallNotStatement(t *testing.T) {
	// match(...) вплотную — обращение к имени, не оператор
	r := parseSource(t, "match(pattern, text)\n")
	r.requireClean(t)

	value := r.exprStmtValue(t, r.onlyStmt(t))
	if r.exprKind(t, value) != ast.ExprCall {
		t.Fatalf("expected call, got %v", r.exprKind(t, value))
	}
}

func TestMatchRequiresCase(t *testing.T) {
	r := parseSource(t, "match x:\n    pass\n")
	r.requireCode(t, diag.SynExpectMatchCase)
}

func TestMissingColon(t *testing.T) {
	r := parseSource(t, "if x\n    pass\n")
	r.requireCode(t, diag.SynExpectColon)
}

func TestMissingIndent(t *testing.T) {
	r := parseSource(t, "if x:\npass\n")
	r.requireCode(t, diag.SynExpectIndent)
}

func TestUnexpectedIndent(t *testing.T) {
	r := parseSource(t, "x = 1\n    y = 2\n")
	r.requireCode(t, diag.SynUnexpectedToken)
}

func TestTrailingGarbage(t *testing.T) {
	r := parseSource(t, "x = 1 2\n")
	r.requireCode(t, diag.SynExpectNewline)
}

func TestRecoveryAfterError(t *testing.T) {
	// ошибка в первой строке не мешает разобрать остальные
	input := "x = = 1\nok = 2\nalso = 3\n"
	r := parseSource(t, input)
	if !r.bag.HasErrors() {
		t.Fatal("expected diagnostics for the broken line")
	}
	body := r.top(t)
	if len(body) != 2 {
		t.Fatalf("expected 2 recovered statements, got %d", len(body))
	}
}

func TestRecoverySkipsBrokenBlock(t *testing.T) {
	input := "def broken(:\n    junk junk\nvalue = 1\n"
	r := parseSource(t, input)
	if !r.bag.HasErrors() {
		t.Fatal("expected diagnostics")
	}
	body := r.top(t)
	if len(body) != 1 {
		t.Fatalf("expected 1 recovered statement, got %d: %s", len(body), diagnosticsSummary(r.bag))
	}
	if r.stmtKind(t, body[0]) != ast.StmtAssign {
		t.Errorf("recovered kind = %v", r.stmtKind(t, body[0]))
	}
}

func TestMaxErrorsBudget(t *testing.T) {
	input := "x = = 1\nx = = 2\nx = = 3\nx = = 4\nx = = 5\n"
	r := parseSourceWithOptions(t, input, Options{MaxErrors: 2})
	if got := r.bag.Len(); got > 2 {
		t.Errorf("bag length %d exceeds budget", got)
	}
	if !r.bag.HasErrors() {
		t.Error("expected at least one reported error")
	}
}

func TestStatementSpans(t *testing.T) {
	input := "x = compute(a, b)\n"
	r := parseSource(t, input)
	r.requireClean(t)

	stmt := r.builder.Stmts.Get(r.onlyStmt(t))
	if got := stmt.Span.Text(r.content); got != "x = compute(a, b)" {
		t.Errorf("statement span text = %q", got)
	}
}
