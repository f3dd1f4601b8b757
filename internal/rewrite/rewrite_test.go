package rewrite

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// rewriteAll прогоняет Rewrite по всему документу и проверяет отсутствие ошибки.
func rewriteAll(t *testing.T, input string, first, last int) string {
	t.Helper()
	out, err := Rewrite(input, first, last)
	if err != nil {
		t.Fatalf("Rewrite(%q, %d, %d): %v", input, first, last, err)
	}
	return out
}

func TestRewriteSingleLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "two args with trailer calls",
			input: "'%s%s, %s!' % (greeting[0].upper(), greeting[1:], target)\n",
			want:  "f'{greeting[0].upper()}{greeting[1:]}, {target}!'\n",
		},
		{
			name:  "method call argument",
			input: "'%s, %s!' % (greeting.title(), target)\n",
			want:  "f'{greeting.title()}, {target}!'\n",
		},
		{
			name:  "repr inside call",
			input: "log('%r' % value)\n",
			want:  "log(f'{value!r}')\n",
		},
		{
			name:  "bare numeric",
			input: "msg = '%d of %d' % (done, total)\n",
			want:  "msg = f'{done} of {total}'\n",
		},
		{
			name:  "numeric width",
			input: "row = '%8d|%s' % (n, label)\n",
			want:  "row = f'{n:8d}|{label}'\n",
		},
		{
			name:  "float precision",
			input: "out = '%.3f' % ratio\n",
			want:  "out = f'{ratio:.3f}'\n",
		},
		{
			name:  "doubled percent",
			input: "p = '%d%% done' % pct\n",
			want:  "p = f'{pct}% done'\n",
		},
		{
			name:  "indent and comment survive",
			input: "    s = '%s' % v  # keep me\n",
			want:  "    s = f'{v}'  # keep me\n",
		},
		{
			name:  "no string on the left",
			input: "x = a % b\n",
			want:  "x = a % b\n",
		},
		{
			name:  "unknown verb stays verbatim",
			input: "t = '%x' % n\n",
			want:  "t = '%x' % n\n",
		},
		{
			name:  "mapping key stays verbatim",
			input: "'%(name)s' % {'name': x}\n",
			want:  "'%(name)s' % {'name': x}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rewriteAll(t, tt.input, 1, 1); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// twentyLines собирает документ из двадцати строк с сайтом на пятой.
func twentyLines() string {
	var doc strings.Builder
	for i := 1; i <= 20; i++ {
		if i == 5 {
			doc.WriteString("msg = '%s' % name\n")
			continue
		}
		fmt.Fprintf(&doc, "line%d = %d\n", i, i)
	}
	return doc.String()
}

func TestRewriteWindowSelection(t *testing.T) {
	doc := twentyLines()

	t.Run("range after the site", func(t *testing.T) {
		var want strings.Builder
		for i := 10; i <= 20; i++ {
			fmt.Fprintf(&want, "line%d = %d\n", i, i)
		}
		if got := rewriteAll(t, doc, 10, 20); got != want.String() {
			t.Errorf("got %q, want %q", got, want.String())
		}
	})
	t.Run("range on the site", func(t *testing.T) {
		if got := rewriteAll(t, doc, 5, 5); got != "msg = f'{name}'\n" {
			t.Errorf("got %q", got)
		}
	})
	t.Run("range before the site", func(t *testing.T) {
		want := "line1 = 1\nline2 = 2\nline3 = 3\nline4 = 4\n"
		if got := rewriteAll(t, doc, 1, 4); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

func TestRewriteLineIsolation(t *testing.T) {
	doc := "a = '%s' % x\nb = '%s' % y\nc = '%s' % z\n"

	if got := rewriteAll(t, doc, 2, 2); got != "b = f'{y}'\n" {
		t.Errorf("middle line: got %q", got)
	}
	want := "a = f'{x}'\nb = f'{y}'\nc = f'{z}'\n"
	if got := rewriteAll(t, doc, 1, 3); got != want {
		t.Errorf("full range: got %q, want %q", got, want)
	}
}

func TestRewriteIdempotent(t *testing.T) {
	doc := "a = '%s' % x\nb = '%d items' % n\nplain = 1\n"

	first := rewriteAll(t, doc, 1, 3)
	want := "a = f'{x}'\nb = f'{n} items'\nplain = 1\n"
	if first != want {
		t.Fatalf("first pass: got %q, want %q", first, want)
	}
	if second := rewriteAll(t, first, 1, 3); second != first {
		t.Errorf("second pass changed the text: %q -> %q", first, second)
	}
}

func TestRewriteSiteCrossingWindowEnd(t *testing.T) {
	doc := "m = '%s' % (\n    value)\nrest = 1\n"

	// сайт начинается в окне, но заканчивается за ним: трогать нельзя
	if got := rewriteAll(t, doc, 1, 1); got != "m = '%s' % (\n" {
		t.Errorf("clipped site: got %q", got)
	}
	// окно накрывает сайт целиком: правка схлопывает его в одну строку
	if got := rewriteAll(t, doc, 1, 2); got != "m = f'{value}'\n" {
		t.Errorf("covered site: got %q", got)
	}
	// хвост сайта без его начала остаётся как есть
	if got := rewriteAll(t, doc, 2, 2); got != "    value)\n" {
		t.Errorf("site tail: got %q", got)
	}
	if got := rewriteAll(t, doc, 3, 3); got != "rest = 1\n" {
		t.Errorf("after site: got %q", got)
	}
}

func TestRewriteNestedSite(t *testing.T) {
	// наружный сайт пропускается из-за кавычек в аргументе, внутренний конвертируется
	doc := "x = '%s' % ('%d' % n)\n"
	if got := rewriteAll(t, doc, 1, 1); got != "x = '%s' % (f'{n}')\n" {
		t.Errorf("got %q", got)
	}
}

func TestRewriteChainedPercent(t *testing.T) {
	// левоассоциативная цепочка: сайт — только внутренний '%s' % a
	doc := "y = '%s' % a % b\n"
	if got := rewriteAll(t, doc, 1, 1); got != "y = f'{a}' % b\n" {
		t.Errorf("got %q", got)
	}
}

func TestRewriteKeepsLineEndings(t *testing.T) {
	doc := "a = '%s' % x\r\nb = 2\r\n"

	if got := rewriteAll(t, doc, 1, 1); got != "a = f'{x}'\r\n" {
		t.Errorf("crlf site line: got %q", got)
	}
	if got := rewriteAll(t, doc, 2, 2); got != "b = 2\r\n" {
		t.Errorf("crlf plain line: got %q", got)
	}
}

func TestRewriteNoTrailingNewline(t *testing.T) {
	if got := rewriteAll(t, "out = '%s' % v", 1, 1); got != "out = f'{v}'" {
		t.Errorf("got %q", got)
	}
}

func TestRewriteKeepsBOM(t *testing.T) {
	doc := "\xef\xbb\xbfa = '%s' % x\n"
	if got := rewriteAll(t, doc, 1, 1); got != "\xef\xbb\xbfa = f'{x}'\n" {
		t.Errorf("got %q", got)
	}
}

func TestRewriteBlankLinesInWindow(t *testing.T) {
	doc := "\n\n'%s' % x\n"
	if got := rewriteAll(t, doc, 1, 3); got != "\n\nf'{x}'\n" {
		t.Errorf("got %q", got)
	}
}

func TestRewriteRangeErrors(t *testing.T) {
	doc := "a = 1\nb = 2\nc = 3\n"
	tests := []struct {
		name  string
		doc   string
		first int
		last  int
	}{
		{"inverted", doc, 2, 1},
		{"zero first", doc, 0, 1},
		{"negative first", doc, -1, 2},
		{"past the end", doc, 1, 4},
		{"entirely past the end", doc, 4, 4},
		{"empty document", "", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Rewrite(tt.doc, tt.first, tt.last)
			if out != "" {
				t.Errorf("output on error: %q", out)
			}
			var rangeErr *RangeError
			if !errors.As(err, &rangeErr) {
				t.Fatalf("err = %v, want *RangeError", err)
			}
			if rangeErr.First != tt.first || rangeErr.Last != tt.last {
				t.Errorf("bounds in error = %d:%d, want %d:%d",
					rangeErr.First, rangeErr.Last, tt.first, tt.last)
			}
		})
	}

	t.Run("line count in message", func(t *testing.T) {
		_, err := Rewrite(doc, 1, 9)
		var rangeErr *RangeError
		if !errors.As(err, &rangeErr) {
			t.Fatalf("err = %v, want *RangeError", err)
		}
		if rangeErr.Lines != 3 {
			t.Errorf("Lines = %d, want 3", rangeErr.Lines)
		}
		if !strings.Contains(err.Error(), "1:9") {
			t.Errorf("message %q does not name the range", err.Error())
		}
	})
}

func TestRewriteParseError(t *testing.T) {
	out, err := Rewrite("def broken(:\n", 1, 1)
	if out != "" {
		t.Errorf("output on error: %q", out)
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
	if parseErr.Bag == nil || !parseErr.Bag.HasErrors() {
		t.Error("ParseError without collected diagnostics")
	}
	if !strings.Contains(err.Error(), "not valid Python") {
		t.Errorf("message %q", err.Error())
	}
}

// Сломанный синтаксис вне окна всё равно валит вызов: парсится весь документ.
func TestRewriteParseErrorOutsideWindow(t *testing.T) {
	_, err := Rewrite("ok = '%s' % x\ndef broken(:\n", 1, 1)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
}
