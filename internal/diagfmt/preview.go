package diagfmt

import (
	"fmt"
	"strings"

	"fstrify/internal/diag"
	"fstrify/internal/source"
)

type fixEditPreview struct {
	before []string
	after  []string
}

// buildFixEditPreview показывает строки, задетые правкой, до и после её
// применения. Окно — целые строки, которые пересекает спан правки.
func buildFixEditPreview(fs *source.FileSet, edit diag.FixEdit) (fixEditPreview, error) {
	if fs == nil {
		return fixEditPreview{}, fmt.Errorf("nil FileSet")
	}
	file := fs.Get(edit.Span.File)
	if file == nil {
		return fixEditPreview{}, fmt.Errorf("file %d not found in FileSet", edit.Span.File)
	}

	startPos, endPos := fs.Resolve(edit.Span)
	window := file.WindowSpan(startPos.Line, max(endPos.Line, startPos.Line))
	if edit.Span.Start < window.Start || edit.Span.End > window.End || edit.Span.End < edit.Span.Start {
		return fixEditPreview{}, fmt.Errorf("edit span %s does not fit its line window", edit.Span)
	}

	before := file.Content[window.Start:window.End]
	after := make([]byte, 0, int(window.Len())+len(edit.NewText))
	after = append(after, file.Content[window.Start:edit.Span.Start]...)
	after = append(after, edit.NewText...)
	after = append(after, file.Content[edit.Span.End:window.End]...)

	return fixEditPreview{
		before: splitPreviewLines(before),
		after:  splitPreviewLines(after),
	}, nil
}

func splitPreviewLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	// strings.Split оставил бы пустой хвост после завершающего \n,
	// поэтому срезаем его до разбиения
	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}
