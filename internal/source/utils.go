package source

import (
	"bytes"
	"path/filepath"
	"strings"
)

// hasBOM сообщает, начинается ли контент с UTF-8 BOM.
// Сам BOM не вырезаем: байтовая идентичность вывода важнее.
func hasBOM(content []byte) bool {
	return len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF
}

// hasCRLF сообщает, встречается ли в контенте хотя бы один \r\n.
func hasCRLF(content []byte) bool {
	return bytes.Contains(content, []byte{'\r', '\n'})
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, 64)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// Если LineIdx пустой, то весь файл - одна строка
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// бинпоиск: находим последний терминатор строго перед off;
	// смещение самого '\n' ещё принадлежит его строке.
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	line := hi // индекс последнего терминатора перед off (0-based)

	if line < 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	startOff := lineIdx[line] + 1 // следующая строка начинается после \n
	return LineCol{Line: uint32(line) + 2, Col: off - startOff + 1}
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath returns p as an absolute slash-separated path.
func AbsolutePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(abs), nil
}

// RelativePath returns p relative to baseDir, slash-separated.
// Paths that escape baseDir fall back to the absolute form: "../../x"
// in a diagnostic is worse than a long path.
func RelativePath(p, baseDir string) (string, error) {
	rel, err := filepath.Rel(baseDir, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return AbsolutePath(p)
	}
	return filepath.ToSlash(rel), nil
}

// BaseName returns the last element of p.
func BaseName(p string) string {
	return filepath.Base(p)
}
