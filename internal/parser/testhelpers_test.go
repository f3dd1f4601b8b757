package parser

import (
	"fmt"
	"strings"
	"testing"

	"fstrify/internal/ast"
	"fstrify/internal/diag"
	"fstrify/internal/lexer"
	"fstrify/internal/source"
)

// parseResult держит всё, что нужно проверкам: арены, корневой файл,
// мешок диагностик и исходный текст для сверки спанов.
type parseResult struct {
	builder *ast.Builder
	file    ast.FileID
	bag     *diag.Bag
	content []byte
}

func parseSource(t *testing.T, input string) parseResult {
	return parseSourceWithOptions(t, input, Options{})
}

func parseSourceWithOptions(t *testing.T, input string, opts Options) parseResult {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: &lexer.ReporterAdapter{Bag: bag}})
	builder := ast.NewBuilder(ast.Hints{})

	if opts.MaxErrors == 0 {
		opts.MaxErrors = 100
	}
	opts.Reporter = reporter

	result := ParseFile(fs, lx, builder, opts)
	if result.Bag == nil {
		result.Bag = bag
	}

	return parseResult{
		builder: builder,
		file:    result.File,
		bag:     result.Bag,
		content: file.Content,
	}
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// requireClean — разбор обязан пройти без диагностик-ошибок.
func (r parseResult) requireClean(t *testing.T) {
	t.Helper()
	if r.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(r.bag))
	}
}

// requireCode — среди диагностик обязан быть данный код.
func (r parseResult) requireCode(t *testing.T, code diag.Code) {
	t.Helper()
	for _, d := range r.bag.Items() {
		if d.Code == code {
			return
		}
	}
	t.Fatalf("expected %s diagnostic, got %s", code.ID(), diagnosticsSummary(r.bag))
}

// top возвращает операторы верхнего уровня.
func (r parseResult) top(t *testing.T) []ast.StmtID {
	t.Helper()
	file := r.builder.Files.Get(r.file)
	if file == nil {
		t.Fatal("file node not found")
	}
	return file.Body
}

// onlyStmt — разбор дал ровно один оператор верхнего уровня.
func (r parseResult) onlyStmt(t *testing.T) ast.StmtID {
	t.Helper()
	body := r.top(t)
	if len(body) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d (%s)", len(body), diagnosticsSummary(r.bag))
	}
	return body[0]
}

func (r parseResult) stmtKind(t *testing.T, id ast.StmtID) ast.StmtKind {
	t.Helper()
	stmt := r.builder.Stmts.Get(id)
	if stmt == nil {
		t.Fatal("statement not found in arena")
	}
	return stmt.Kind
}

func (r parseResult) exprKind(t *testing.T, id ast.ExprID) ast.ExprKind {
	t.Helper()
	expr := r.builder.Exprs.Get(id)
	if expr == nil {
		t.Fatal("expression not found in arena")
	}
	return expr.Kind
}

// exprText — текст выражения по его спану; так проверяем, что спаны
// попадают байт в байт.
func (r parseResult) exprText(t *testing.T, id ast.ExprID) string {
	t.Helper()
	expr := r.builder.Exprs.Get(id)
	if expr == nil {
		t.Fatal("expression not found in arena")
	}
	return expr.Span.Text(r.content)
}

func (r parseResult) name(t *testing.T, id source.StringID) string {
	t.Helper()
	text, ok := r.builder.Strings.Lookup(id)
	if !ok {
		t.Fatalf("string %d is not interned", id)
	}
	return text
}

// exprStmtValue — разворачивает оператор-выражение до его значения.
func (r parseResult) exprStmtValue(t *testing.T, id ast.StmtID) ast.ExprID {
	t.Helper()
	data, ok := r.builder.Stmts.ExprStmt(id)
	if !ok {
		t.Fatalf("expected expression statement, got %v", r.stmtKind(t, id))
	}
	return data.Value
}

// parseExprSource — разбирает вход из одного выражения-оператора.
func parseExprSource(t *testing.T, input string) (parseResult, ast.ExprID) {
	t.Helper()
	r := parseSource(t, input)
	r.requireClean(t)
	return r, r.exprStmtValue(t, r.onlyStmt(t))
}
