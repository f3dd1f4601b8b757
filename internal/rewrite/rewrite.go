// Package rewrite turns percent-format expressions into f-strings over a
// selected line range. The contract is Rewrite: parse the whole document,
// find every `str % args` site whose literal starts inside the range,
// replace the convertible ones and emit the requested lines with every
// other byte reproduced exactly. Sites that cannot be converted safely are
// left untouched without complaint: the policy lives in this package, the
// lexical ground work in pystr and pyfmt.
package rewrite

import (
	"fmt"

	"fortio.org/safecast"

	"fstrify/internal/ast"
	"fstrify/internal/diag"
	"fstrify/internal/lexer"
	"fstrify/internal/parser"
	"fstrify/internal/source"
)

// maxParseDiagnostics ограничивает мешок диагностик одного вызова Rewrite.
const maxParseDiagnostics = 64

// ParseError reports that the input is not syntactically valid. The bag
// carries the collected diagnostics and Files resolves their spans for
// rendering.
type ParseError struct {
	Bag   *diag.Bag
	Files *source.FileSet
}

func (e *ParseError) Error() string {
	n := 0
	if e.Bag != nil {
		n = e.Bag.Len()
	}
	if n == 1 {
		return "input is not valid Python: 1 diagnostic"
	}
	return fmt.Sprintf("input is not valid Python: %d diagnostics", n)
}

// RangeError reports line bounds that do not select a valid window of the
// document: out of range, inverted, or not positive.
type RangeError struct {
	First int
	Last  int
	Lines int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("line range %d:%d is not valid for a document of %d lines", e.First, e.Last, e.Lines)
}

// Rewrite converts percent-format sites inside [firstLine, lastLine] and
// returns exactly that line window of the result. Bounds are 1-based and
// inclusive. The whole document is parsed so that sites spanning lines are
// located correctly, but only the requested window is returned; lines
// outside it never change. On a syntax error it returns *ParseError, on
// bad bounds *RangeError, and in both cases no output.
func Rewrite(sourceText string, firstLine, lastLine int) (string, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("<input>", []byte(sourceText))
	file := fs.Get(fileID)

	first, last, err := checkRange(file, firstLine, lastLine)
	if err != nil {
		return "", err
	}

	builder, parseErr := parseDocument(fs, file)
	if parseErr != nil {
		return "", parseErr
	}

	sites := Scan(fs, builder, file)
	var edits []Edit
	for i := range sites {
		site := &sites[i]
		if !site.Convertible() || !site.InRange(first, last) {
			continue
		}
		if site.EndLine > last {
			// выражение тянется за границу окна: правка затронула бы
			// строки, которые мы обязаны вернуть нетронутыми
			continue
		}
		edits = append(edits, Edit{Span: site.Span, Text: site.Replacement})
	}

	window := file.WindowSpan(first, last)
	return string(splice(file.Content, window, edits)), nil
}

// Edit is one span replacement over the original bytes.
type Edit struct {
	Span source.Span
	Text string
}

// checkRange validates the bounds against the document and returns them
// as line numbers. Нарушение любой части контракта — RangeError.
func checkRange(file *source.File, firstLine, lastLine int) (first, last uint32, err error) {
	rangeErr := &RangeError{First: firstLine, Last: lastLine, Lines: int(file.LineCount())}
	first, errFirst := safecast.Conv[uint32](firstLine)
	last, errLast := safecast.Conv[uint32](lastLine)
	if errFirst != nil || errLast != nil {
		return 0, 0, rangeErr
	}
	if first < 1 || first > last || last > file.LineCount() {
		return 0, 0, rangeErr
	}
	return first, last, nil
}

// parseDocument lexes and parses one loaded file into a fresh builder.
func parseDocument(fs *source.FileSet, file *source.File) (*ast.Builder, *ParseError) {
	bag := diag.NewBag(maxParseDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: &lexer.ReporterAdapter{Bag: bag}})
	builder := ast.NewBuilder(ast.Hints{})
	parser.ParseFile(fs, lx, builder, parser.Options{
		MaxErrors: maxParseDiagnostics,
		Reporter:  &diag.BagReporter{Bag: bag},
	})
	if bag.HasErrors() {
		return nil, &ParseError{Bag: bag, Files: fs}
	}
	return builder, nil
}

// splice applies the edits to the window of content and returns the new
// bytes. Правки должны быть отсортированы по началу; правка, пересекающая
// уже применённую, отбрасывается.
func splice(content []byte, window source.Span, edits []Edit) []byte {
	out := make([]byte, 0, window.Len()+64)
	cursor := window.Start
	for _, e := range edits {
		if e.Span.Start < cursor || e.Span.End > window.End {
			continue
		}
		out = append(out, content[cursor:e.Span.Start]...)
		out = append(out, e.Text...)
		cursor = e.Span.End
	}
	return append(out, content[cursor:window.End]...)
}
