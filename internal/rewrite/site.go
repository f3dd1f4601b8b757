package rewrite

import (
	"cmp"
	"slices"

	"fstrify/internal/ast"
	"fstrify/internal/diag"
	"fstrify/internal/source"
)

// Site is one discovered percent-format occurrence: a binary `%` whose
// left operand is a string literal. A convertible site carries the ready
// replacement text for its whole span; a skipped one carries the reason.
type Site struct {
	Span    source.Span // всё выражение: литерал, '%' и аргументы
	LitSpan source.Span // строковый литерал слева
	Line    uint32      // строка начала литерала, 1-based
	EndLine uint32      // строка конца всего выражения

	Replacement string    // готовый f-литерал, если сайт конвертируем
	Skip        diag.Code // ноль — конвертируем, иначе RwrSkip*
	Reason      string    // пояснение для scan
}

// Convertible reports whether the site has a replacement.
func (s *Site) Convertible() bool {
	return s.Skip == 0
}

// InRange reports whether the literal starts inside [first, last].
func (s *Site) InRange(first, last uint32) bool {
	return s.Line >= first && s.Line <= last
}

// Scan walks every expression of a parsed document and returns its format
// sites in source order. Каждый сайт уже проанализирован: либо готовая
// замена, либо причина пропуска. Арена выражений хранит все узлы одного
// разбора, поэтому линейный проход по ней и есть обход каждого узла.
func Scan(fs *source.FileSet, b *ast.Builder, file *source.File) []Site {
	var sites []Site
	for raw := uint32(1); raw <= b.Exprs.Arena.Len(); raw++ {
		id := ast.ExprID(raw)
		bin, ok := b.Exprs.Binary(id)
		if !ok || bin.Op != ast.BinaryMod {
			continue
		}
		left := b.Exprs.Get(bin.Left)
		if left == nil || left.Kind != ast.ExprStr {
			continue
		}
		sites = append(sites, analyzeSite(fs, b, file, b.Exprs.Get(id).Span, bin))
	}
	// Вложенный сайт аллоцируется раньше объемлющего; наружу отдаём
	// исходный порядок.
	slices.SortFunc(sites, func(a, b Site) int {
		if c := cmp.Compare(a.Span.Start, b.Span.Start); c != 0 {
			return c
		}
		return cmp.Compare(b.Span.End, a.Span.End)
	})
	return sites
}
