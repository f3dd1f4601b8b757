package source

import (
	"os"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	// Добавляем файл первый раз
	id1 := fs.Add("test.py", []byte("hello world"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	latestID, exists := fs.GetLatest("test.py")
	if !exists {
		t.Error("Expected file to exist after Add")
	}
	if latestID != id1 {
		t.Errorf("Expected latest ID to be %d, got %d", id1, latestID)
	}

	// Добавляем тот же файл с новым содержимым
	id2 := fs.Add("test.py", []byte("hello universe"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latestID, exists = fs.GetLatest("test.py")
	if !exists {
		t.Error("Expected file to exist after second Add")
	}
	if latestID != id2 {
		t.Errorf("Expected latest ID to be %d, got %d", id2, latestID)
	}

	// Старая версия остаётся доступной
	file1 := fs.Get(id1)
	if string(file1.Content) != "hello world" {
		t.Errorf("Expected first file content to be 'hello world', got '%s'", string(file1.Content))
	}
	file2 := fs.Get(id2)
	if string(file2.Content) != "hello universe" {
		t.Errorf("Expected second file content to be 'hello universe', got '%s'", string(file2.Content))
	}
	if file1.Path != "test.py" || file2.Path != "test.py" {
		t.Error("Expected both files to have the same path")
	}
}

// TestAddVirtualLineIdx проверяет правильность построения LineIdx для AddVirtual
func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	// "a\nb\n" - должно быть LineIdx = [1,3]
	id := fs.AddVirtual("a.py", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3} // позиции символов \n
	if len(file.LineIdx) != len(expected) {
		t.Errorf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}

	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

// TestCRLFKeptRaw: CRLF не нормализуем — вывод должен быть байт-в-байт.
func TestCRLFKeptRaw(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("test.py", []byte("a\r\nb\r\n"))
	file := fs.Get(id)

	if string(file.Content) != "a\r\nb\r\n" {
		t.Errorf("Expected raw content to be kept, got %q", string(file.Content))
	}
	if file.Flags&FileHasCRLF == 0 {
		t.Error("Expected FileHasCRLF flag to be set")
	}
	// LineIdx указывает на '\n' обоих CRLF
	expected := []uint32{2, 5}
	if len(file.LineIdx) != 2 || file.LineIdx[0] != expected[0] || file.LineIdx[1] != expected[1] {
		t.Errorf("Expected LineIdx %v, got %v", expected, file.LineIdx)
	}
	// GetLine не включает \r
	if got := file.GetLine(1); got != "a" {
		t.Errorf("Expected GetLine(1) = 'a', got %q", got)
	}
}

// TestBOMKeptRaw: BOM остаётся в Content; лексер стартует после него.
func TestBOMKeptRaw(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("test.py", []byte{0xEF, 0xBB, 0xBF, 'x', '\n'})
	file := fs.Get(id)

	if file.Flags&FileHasBOM == 0 {
		t.Error("Expected FileHasBOM flag to be set")
	}
	if file.ContentStart() != 3 {
		t.Errorf("Expected ContentStart 3, got %d", file.ContentStart())
	}
	if len(file.Content) != 5 {
		t.Errorf("Expected BOM to be kept in content, len = %d", len(file.Content))
	}

	id2 := fs.AddVirtual("plain.py", []byte("x\n"))
	if fs.Get(id2).ContentStart() != 0 {
		t.Errorf("Expected ContentStart 0 without BOM, got %d", fs.Get(id2).ContentStart())
	}
}

// TestResolveUTF8 проверяет разрешение позиций в UTF-8 тексте
func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()

	content := []byte("α\n") // α = 2 байта, \n = 1 байт
	id := fs.AddVirtual("test.py", content)

	span := Span{File: id, Start: 0, End: 1}
	start, end := fs.Resolve(span)

	expectedStart := LineCol{Line: 1, Col: 1}
	expectedEnd := LineCol{Line: 1, Col: 2}

	if start != expectedStart {
		t.Errorf("Expected start %+v, got %+v", expectedStart, start)
	}
	if end != expectedEnd {
		t.Errorf("Expected end %+v, got %+v", expectedEnd, end)
	}
}

func TestResolveSecondLine(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("test.py", []byte("ab\ncd\n"))

	// 'c' — байт 3, строка 2 колонка 1
	start, _ := fs.Resolve(Span{File: id, Start: 3, End: 4})
	if start != (LineCol{Line: 2, Col: 1}) {
		t.Errorf("Expected {2 1}, got %+v", start)
	}

	// сам '\n' первой строки принадлежит строке 1
	start, _ = fs.Resolve(Span{File: id, Start: 2, End: 3})
	if start != (LineCol{Line: 1, Col: 3}) {
		t.Errorf("Expected {1 3}, got %+v", start)
	}
}

func TestLineCount(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    uint32
	}{
		{"empty", "", 0},
		{"one line no terminator", "hello", 1},
		{"one line terminated", "hello\n", 1},
		{"two lines", "a\nb", 2},
		{"two lines terminated", "a\nb\n", 2},
		{"only newline", "\n", 1},
		{"crlf", "a\r\nb\r\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewFileSet()
			file := fs.Get(fs.AddVirtual("t.py", []byte(tt.content)))
			if got := file.LineCount(); got != tt.want {
				t.Errorf("LineCount(%q) = %d, want %d", tt.content, got, tt.want)
			}
		})
	}
}

func TestWindowSpan(t *testing.T) {
	fs := NewFileSet()
	content := "one\ntwo\nthree\nfour"
	file := fs.Get(fs.AddVirtual("t.py", []byte(content)))

	tests := []struct {
		first, last uint32
		want        string
	}{
		{1, 1, "one\n"},
		{2, 3, "two\nthree\n"},
		{1, 4, content},
		{4, 4, "four"}, // последняя строка без терминатора
	}

	for _, tt := range tests {
		sp := file.WindowSpan(tt.first, tt.last)
		if got := sp.Text(file.Content); got != tt.want {
			t.Errorf("WindowSpan(%d,%d) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}

func TestWindowSpanCRLF(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("t.py", []byte("a\r\nb\r\nc\r\n")))

	// терминатор включается целиком, вместе с \r
	sp := file.WindowSpan(2, 2)
	if got := sp.Text(file.Content); got != "b\r\n" {
		t.Errorf("WindowSpan(2,2) = %q, want %q", got, "b\r\n")
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("t.py", []byte("one\ntwo\nthree")))

	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "one"},
		{2, "two"},
		{3, "three"},
		{4, ""},
	}
	for _, tt := range tests {
		if got := file.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

// TestEdgeCases проверяет граничные случаи
func TestEdgeCases(t *testing.T) {
	fs := NewFileSet()

	// Пустой файл
	id1 := fs.AddVirtual("empty.py", []byte{})
	file1 := fs.Get(id1)
	if len(file1.LineIdx) != 0 {
		t.Errorf("Expected empty LineIdx for empty file, got length %d", len(file1.LineIdx))
	}

	// Файл без переводов строк
	id2 := fs.AddVirtual("no_newlines.py", []byte("hello"))
	file2 := fs.Get(id2)
	if len(file2.LineIdx) != 0 {
		t.Errorf("Expected empty LineIdx for file without newlines, got length %d", len(file2.LineIdx))
	}

	// Файл только с переводом строки
	id3 := fs.AddVirtual("only_newline.py", []byte("\n"))
	file3 := fs.Get(id3)
	if len(file3.LineIdx) != 1 || file3.LineIdx[0] != 0 {
		t.Errorf("Expected LineIdx [0] for file with only newline, got %v", file3.LineIdx)
	}
}

func TestLoadKeepsBytes(t *testing.T) {
	fs := NewFileSet()
	tempFile, err := os.CreateTemp("", "testdata")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tempFile.Name())

	// CRLF и BOM должны пережить загрузку нетронутыми
	raw := "\xEF\xBB\xBFa\r\nb\n"
	if _, err = tempFile.WriteString(raw); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	if err = tempFile.Close(); err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}

	id, err := fs.Load(tempFile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != raw {
		t.Errorf("Expected raw bytes to be kept, got %q", string(file.Content))
	}
	if file.Flags&FileHasBOM == 0 {
		t.Error("Expected FileHasBOM flag to be set")
	}
	if file.Flags&FileHasCRLF == 0 {
		t.Error("Expected FileHasCRLF flag to be set")
	}
}
