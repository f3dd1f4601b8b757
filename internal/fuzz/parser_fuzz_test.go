package fuzztests

import (
	"testing"
	"time"

	"fstrify/internal/ast"
	"fstrify/internal/diag"
	"fstrify/internal/lexer"
	"fstrify/internal/parser"
	"fstrify/internal/source"
	"fstrify/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.py", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(128)
		lx := lexer.New(file, lexer.Options{Reporter: &lexer.ReporterAdapter{Bag: bag}})

		builder := ast.NewBuilder(ast.Hints{})
		opts := parser.Options{
			Reporter:  &diag.BagReporter{Bag: bag},
			MaxErrors: 128,
		}
		res := parser.ParseFile(fs, lx, builder, opts)

		// На чистом разборе дерево обязано держать спановые инварианты.
		if !bag.HasErrors() {
			if err := testkit.CheckSpanInvariants(builder, res.File, file); err != nil {
				t.Fatalf("span invariants violated: %v\ninput (%d bytes): %q",
					err, len(input), truncateForLog(input, 200))
			}
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
// It uses a timeout to detect infinite loops that could be caused by
// malformed input or edge cases in error recovery.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// Край случаи восстановления: незакрытые скобки, смешанные отступы,
	// мягкие ключевые слова в ролях имён, оборванные литералы.
	f.Add([]byte("def f(:\n"))
	f.Add([]byte("if x\n    pass\n"))
	f.Add([]byte("(((((((((("))
	f.Add([]byte("[[[[[[[[[[]]]]]]]]]]\n"))
	f.Add([]byte("match match:\n    case case:\n        pass\n"))
	f.Add([]byte("x = '''unterminated\n"))
	f.Add([]byte("\tif 1:\n\t\tpass\n"))
	f.Add([]byte("def f():\n pass\n  pass\n"))
	f.Add([]byte("a = (1,\n2,\n3\n"))
	f.Add([]byte("x = 1 \\\ny = 2\n"))
	f.Add([]byte("\\\n\\\n\\\n"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		done := make(chan struct{})
		go func() {
			defer close(done)

			fs := source.NewFileSet()
			fileID := fs.AddVirtual("fuzz.py", input)
			file := fs.Get(fileID)

			bag := diag.NewBag(128)
			lx := lexer.New(file, lexer.Options{Reporter: &lexer.ReporterAdapter{Bag: bag}})

			builder := ast.NewBuilder(ast.Hints{})
			opts := parser.Options{
				Reporter:  &diag.BagReporter{Bag: bag},
				MaxErrors: 128,
			}
			_ = parser.ParseFile(fs, lx, builder, opts)
		}()

		select {
		case <-done:
			// Parser completed
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
