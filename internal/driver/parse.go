package driver

import (
	"fstrify/internal/ast"
	"fstrify/internal/diag"
	"fstrify/internal/lexer"
	"fstrify/internal/parser"
	"fstrify/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)

	builder, astFile, err := parseLoaded(fs, file, bag)
	if err != nil {
		return nil, err
	}

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		FileID:  astFile,
		Bag:     bag,
	}, nil
}

// parseLoaded лексит и парсит уже загруженный файл в свежий builder.
// Диагностики обеих фаз попадают в bag.
func parseLoaded(fs *source.FileSet, file *source.File, bag *diag.Bag) (*ast.Builder, ast.FileID, error) {
	lx := lexer.New(file, lexer.Options{Reporter: &lexer.ReporterAdapter{Bag: bag}})
	builder := ast.NewBuilder(ast.Hints{})

	opts := parser.Options{
		Reporter:  &diag.BagReporter{Bag: bag},
		MaxErrors: uint(bag.Cap()),
	}

	result := parser.ParseFile(fs, lx, builder, opts)

	return builder, result.File, nil
}
