package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"fstrify/internal/lexer"
	"fstrify/internal/source"
	"fstrify/internal/token"
)

// lexAll прогоняет лексер до EOF включительно.
func lexAll(t *testing.T, input string) ([]token.Token, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte(input))
	file := fs.Get(fileID)
	lx := lexer.New(file, lexer.Options{})
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, fs
}

func TestFormatTokensPretty(t *testing.T) {
	tokens, fs := lexAll(t, "x = 1\n")

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, tokens, fs); err != nil {
		t.Fatalf("FormatTokensPretty() error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"Ident", `"x"`, "Assign", "IntLit", `"1"`, "EOF"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "(leading: Space)") {
		t.Errorf("expected leading trivia on the operator token:\n%s", out)
	}
	if !strings.Contains(out, "at 1:1-1:2") {
		t.Errorf("expected position of the first token:\n%s", out)
	}
}

func TestFormatTokensJSON(t *testing.T) {
	tokens, _ := lexAll(t, "x = 1\n")

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, tokens); err != nil {
		t.Fatalf("FormatTokensJSON() error: %v", err)
	}

	var output []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}

	if len(output) == 0 {
		t.Fatal("no tokens in output")
	}
	if output[0].Kind != "Ident" || output[0].Text != "x" {
		t.Errorf("first token = %+v, want Ident \"x\"", output[0])
	}
	last := output[len(output)-1]
	if last.Kind != "EOF" {
		t.Errorf("last token = %+v, want EOF", last)
	}
}

func TestFormatTokensPrettyStopsAfterEOF(t *testing.T) {
	tokens, fs := lexAll(t, "pass\n")
	// Дублируем EOF: форматтер должен остановиться на первом
	tokens = append(tokens, tokens[len(tokens)-1])

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, tokens, fs); err != nil {
		t.Fatalf("FormatTokensPretty() error: %v", err)
	}
	if got := strings.Count(buf.String(), "EOF"); got != 1 {
		t.Errorf("EOF printed %d times, want 1:\n%s", got, buf.String())
	}
}
