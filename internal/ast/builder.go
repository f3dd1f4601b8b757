package ast

import (
	"golang.org/x/text/unicode/norm"

	"fstrify/internal/source"
)

type Hints struct{ Files, Stmts, Exprs uint }

// Builder owns the arenas of one parse and the identifier interner.
type Builder struct {
	Files   *Files
	Stmts   *Stmts
	Exprs   *Exprs
	Strings *source.Interner
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2 // обычно парсим один файл
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Files:   NewFiles(hints.Files),
		Stmts:   NewStmts(hints.Stmts),
		Exprs:   NewExprs(hints.Exprs),
		Strings: source.NewInterner(),
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

// PushTop appends a statement to the file's top-level body.
func (b *Builder) PushTop(file FileID, stmt StmtID) {
	f := b.Files.Get(file)
	f.Body = append(f.Body, stmt)
}

// InternName interns an identifier. Python treats NFKC-equivalent
// spellings as the same name, so normalize before interning; the
// IsNormalString check keeps the common ASCII case allocation-free.
func (b *Builder) InternName(text string) source.StringID {
	if !norm.NFKC.IsNormalString(text) {
		text = norm.NFKC.String(text)
	}
	return b.Strings.Intern(text)
}
