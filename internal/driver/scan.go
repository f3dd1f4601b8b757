package driver

import (
	"fmt"

	"fstrify/internal/ast"
	"fstrify/internal/diag"
	"fstrify/internal/observ"
	"fstrify/internal/rewrite"
	"fstrify/internal/source"
)

// ScanOptions настраивает поиск сайтов %-форматирования.
type ScanOptions struct {
	MaxDiagnostics int
	// FirstLine/LastLine ограничивают выдачу сайтами, чей литерал начинается
	// в [FirstLine, LastLine]. Нулевая пара — весь файл.
	FirstLine     uint32
	LastLine      uint32
	EnableTimings bool
}

// ScanResult carries everything the scan produced for one file: the parse
// artifacts, the sites, and the diagnostics derived from them.
type ScanResult struct {
	FileSet *source.FileSet
	File    *source.File
	FileID  ast.FileID
	Builder *ast.Builder
	Bag     *diag.Bag
	Sites   []rewrite.Site
}

// ScanFile loads a file, parses it, and lists its percent-format sites.
// Every site becomes an info diagnostic: convertible ones carry a ready
// fix, skipped ones carry the reason. Parse errors are diagnostics too,
// not a returned error; only I/O failures abort.
func ScanFile(path string, opts ScanOptions) (*ScanResult, error) {
	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	begin := func(name string) int {
		if timer == nil {
			return -1
		}
		return timer.Begin(name)
	}
	end := func(idx int, note string) {
		if timer == nil || idx < 0 {
			return
		}
		timer.End(idx, note)
	}

	loadIdx := begin("load_file")
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	end(loadIdx, "")
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.MaxDiagnostics)

	parseIdx := begin("parse")
	builder, astFile, err := parseLoaded(fs, file, bag)
	parseNote := ""
	if timer != nil {
		parseNote = fmt.Sprintf("diags=%d", bag.Len())
	}
	end(parseIdx, parseNote)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{
		FileSet: fs,
		File:    file,
		FileID:  astFile,
		Builder: builder,
		Bag:     bag,
	}

	// Сайты имеют смысл только для синтаксически корректного документа.
	if !bag.HasErrors() {
		scanIdx := begin("scan")
		sites := rewrite.Scan(fs, builder, file)
		sites = filterSites(sites, opts.FirstLine, opts.LastLine)
		scanNote := ""
		if timer != nil {
			scanNote = fmt.Sprintf("sites=%d", len(sites))
		}
		end(scanIdx, scanNote)

		result.Sites = sites
		siteDiagnostics(bag, sites)
	}

	if timer != nil {
		report := timer.Report()
		appendTimingDiagnostic(bag, timingPayload{
			Kind:    "file",
			Path:    file.Path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}

	bag.Sort()
	return result, nil
}

// filterSites оставляет сайты, чей литерал начинается внутри [first, last].
// Нулевые границы — фильтра нет.
func filterSites(sites []rewrite.Site, first, last uint32) []rewrite.Site {
	if first == 0 && last == 0 {
		return sites
	}
	kept := make([]rewrite.Site, 0, len(sites))
	for i := range sites {
		if sites[i].InRange(first, last) {
			kept = append(kept, sites[i])
		}
	}
	return kept
}

// siteDiagnostics переводит сайты в диагностики мешка.
func siteDiagnostics(bag *diag.Bag, sites []rewrite.Site) {
	for i := range sites {
		site := &sites[i]
		if site.Convertible() {
			bag.Add(convertibleDiagnostic(site))
			continue
		}
		bag.Add(diag.NewInfo(site.Skip, site.Span, site.Reason))
	}
}

// convertibleDiagnostic строит диагностику с фиксом для конвертируемого
// сайта. Идентификатор фикса выводится из кода и спана, поэтому scan и
// fix обязаны строить диагностику одинаково.
func convertibleDiagnostic(site *rewrite.Site) diag.Diagnostic {
	d := diag.NewInfo(diag.RwrSiteConvertible, site.Span, "percent format can become an f-string")
	return d.WithFix("rewrite as f-string", diag.FixEdit{Span: site.Span, NewText: site.Replacement})
}
