package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"fstrify/internal/diag"
	"fstrify/internal/source"
)

var (
	prettyErrorColor   = color.New(color.FgRed, color.Bold)
	prettyWarningColor = color.New(color.FgYellow, color.Bold)
	prettyInfoColor    = color.New(color.FgCyan, color.Bold)
)

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return prettyErrorColor
	case diag.SevWarning:
		return prettyWarningColor
	default:
		return prettyInfoColor
	}
}

// paint раскрашивает строку, если цвет включён.
func paint(c *color.Color, on bool, s string) string {
	if !on {
		return s
	}
	return c.Sprint(s)
}

// Pretty formats diagnostics for humans. Items are printed in bag order
// (callers sort the bag first). Each diagnostic renders as
//
//	<path>:<line>:<col>: <SEVERITY> <CODE>: <message>
//
// followed by a source frame underlining the primary span with ^~~~,
// then notes and fixes when the options ask for them. Color applies to
// the severity label only.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	path := formatPath(fs, d.Primary.File, opts.PathMode)
	start, end := fs.Resolve(d.Primary)

	sev := paint(severityColor(d.Severity), opts.Color, d.Severity.String())
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sev, d.Code.ID(), d.Message)

	writeFrame(w, fs, d.Primary, start, end, opts)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			npath := formatPath(fs, note.Span.File, opts.PathMode)
			npos, _ := fs.Resolve(note.Span)
			fmt.Fprintf(w, "  note: %s:%d:%d: %s\n", npath, npos.Line, npos.Col, note.Msg)
		}
	}

	if opts.ShowFixes {
		for i, fx := range d.Fixes {
			fmt.Fprintf(w, "  fix #%d: %s\n", i+1, fx.Title)
			for _, edit := range fx.Edits {
				epath := formatPath(fs, edit.Span.File, opts.PathMode)
				epos, _ := fs.Resolve(edit.Span)
				fmt.Fprintf(w, "    %s:%d:%d: apply=%q\n", epath, epos.Line, epos.Col, edit.NewText)
				if opts.ShowPreview {
					writeEditPreview(w, fs, edit)
				}
			}
		}
	}
}

// writeFrame печатает строки, покрытые span, с подчёркиванием, плюс
// до opts.Context строк контекста вокруг.
func writeFrame(w io.Writer, fs *source.FileSet, span source.Span, start, end source.LineCol, opts PrettyOpts) {
	file := fs.Get(span.File)
	lineCount := file.LineCount()
	if lineCount == 0 || start.Line == 0 || start.Line > lineCount {
		return
	}

	firstSpanLine := start.Line
	lastSpanLine := min(end.Line, lineCount)
	if lastSpanLine < firstSpanLine {
		lastSpanLine = firstSpanLine
	}
	// span, кончающийся в первой колонке следующей строки, на ней ничего
	// не покрывает
	if lastSpanLine > firstSpanLine && end.Col == 1 {
		lastSpanLine--
	}

	ctx := uint32(0)
	if opts.Context > 0 {
		ctx = uint32(opts.Context)
	}
	frameFirst := uint32(1)
	if firstSpanLine > ctx {
		frameFirst = firstSpanLine - ctx
	}
	frameLast := min(lastSpanLine+ctx, lineCount)

	gutter := len(fmt.Sprintf("%d", frameLast))

	for n := frameFirst; n <= frameLast; n++ {
		lineText := file.GetLine(n)
		display, pad, width := underlineBounds(file, span, n, lineText)
		fmt.Fprintf(w, "  %*d | %s\n", gutter, n, clipLine(display, opts.Width))
		if n < firstSpanLine || n > lastSpanLine {
			continue
		}
		if width < 1 {
			width = 1 // точка вставки тоже получает каретку
		}
		caret := strings.Repeat(" ", pad) + "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "  %*s | %s\n", gutter, "", clipLine(caret, opts.Width))
	}
}

// underlineBounds возвращает строку для показа (с раскрытыми табами) и
// границы подчёркивания в экранных колонках.
func underlineBounds(file *source.File, span source.Span, n uint32, lineText string) (display string, pad, width int) {
	lineStart := file.LineStart(n)

	from := 0
	if span.Start > lineStart {
		from = min(int(span.Start-lineStart), len(lineText))
	}
	to := 0
	if span.End > lineStart {
		to = min(int(span.End-lineStart), len(lineText))
	}
	if to < from {
		to = from
	}

	prefix := expandTabs(lineText[:from])
	marked := expandTabs(lineText[from:to])
	rest := expandTabs(lineText[to:])

	return prefix + marked + rest, runewidth.StringWidth(prefix), runewidth.StringWidth(marked)
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", "    ")
}

// clipLine обрезает строку до max экранных колонок.
func clipLine(s string, maxCols uint8) string {
	if maxCols == 0 {
		return s
	}
	return runewidth.Truncate(s, int(maxCols), "…")
}

func writeEditPreview(w io.Writer, fs *source.FileSet, edit diag.FixEdit) {
	preview, err := buildFixEditPreview(fs, edit)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "      preview:\n")
	for _, line := range preview.before {
		fmt.Fprintf(w, "        - %s\n", line)
	}
	for _, line := range preview.after {
		fmt.Fprintf(w, "        + %s\n", line)
	}
}
