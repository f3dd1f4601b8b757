package pystr

import "testing"

func TestValidPrefix(t *testing.T) {
	valid := []string{"", "r", "R", "b", "B", "u", "U", "f", "F", "br", "Rb", "BR", "fr", "rF", "FR"}
	for _, s := range valid {
		if !ValidPrefix(s) {
			t.Errorf("ValidPrefix(%q) = false, want true", s)
		}
	}
	invalid := []string{"x", "ur", "ru", "ub", "bf", "fb", "rr", "bb", "rbf", "bru", "спс"}
	for _, s := range invalid {
		if ValidPrefix(s) {
			t.Errorf("ValidPrefix(%q) = true, want false", s)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want Literal
	}{
		{`'abc'`, Literal{Prefix: "", Quote: '\'', Body: "abc"}},
		{`"abc"`, Literal{Prefix: "", Quote: '"', Body: "abc"}},
		{`''`, Literal{Prefix: "", Quote: '\'', Body: ""}},
		{`'%s: %d'`, Literal{Prefix: "", Quote: '\'', Body: "%s: %d"}},
		{`'it\'s'`, Literal{Prefix: "", Quote: '\'', Body: `it\'s`}},
		{`'"quoted"'`, Literal{Prefix: "", Quote: '\'', Body: `"quoted"`}},
		{`r'\d+'`, Literal{Prefix: "r", Quote: '\'', Body: `\d+`, Raw: true}},
		{`Rb'\x00'`, Literal{Prefix: "Rb", Quote: '\'', Body: `\x00`, Raw: true, Bytes: true}},
		{`b"data"`, Literal{Prefix: "b", Quote: '"', Body: "data", Bytes: true}},
		{`u'текст'`, Literal{Prefix: "u", Quote: '\'', Body: "текст", Unicode: true}},
		{`f'{x}'`, Literal{Prefix: "f", Quote: '\'', Body: "{x}", FString: true}},
		{`FR"{x}\n"`, Literal{Prefix: "FR", Quote: '"', Body: `{x}\n`, FString: true, Raw: true}},
		{`'''doc'''`, Literal{Prefix: "", Quote: '\'', Body: "doc", Triple: true}},
		{`"""a "b" c"""`, Literal{Prefix: "", Quote: '"', Body: `a "b" c`, Triple: true}},
		{`''''''`, Literal{Prefix: "", Quote: '\'', Body: "", Triple: true}},
		{"'''line\nline'''", Literal{Prefix: "", Quote: '\'', Body: "line\nline", Triple: true}},
	}
	for _, tt := range tests {
		got, ok := Classify(tt.text)
		if !ok {
			t.Errorf("Classify(%q): not recognized", tt.text)
			continue
		}
		if got != tt.want {
			t.Errorf("Classify(%q) = %+v, want %+v", tt.text, got, tt.want)
		}
	}
}

func TestClassifyRejects(t *testing.T) {
	bad := []string{
		"",
		"abc",      // нет кавычек
		"'abc",     // нет закрывающей
		"'",        // слишком коротко
		"'''",      // открытая triple-строка
		"''''",     // triple без полного закрытия
		"'abc\"",   // кавычки разного вида
		"x'abc'",   // неизвестный префикс
		"ur'abc'",  // запрещённое сочетание
		"rbf'abc'", // слишком длинный префикс
	}
	for _, s := range bad {
		if lit, ok := Classify(s); ok {
			t.Errorf("Classify(%q) = %+v, want rejection", s, lit)
		}
	}
}

func TestPlainStr(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{`'abc'`, true},
		{`"abc"`, true},
		{`u'abc'`, true},
		{`'''abc'''`, true},
		{`r'abc'`, false},
		{`b'abc'`, false},
		{`f'abc'`, false},
		{`rb'abc'`, false},
	}
	for _, tt := range tests {
		lit, ok := Classify(tt.text)
		if !ok {
			t.Fatalf("Classify(%q): not recognized", tt.text)
		}
		if got := lit.PlainStr(); got != tt.want {
			t.Errorf("PlainStr(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestOpeningLen(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{`'a'`, 1},
		{`r'a'`, 2},
		{`Rb'a'`, 3},
		{`'''a'''`, 3},
		{`f"""a"""`, 4},
	}
	for _, tt := range tests {
		lit, ok := Classify(tt.text)
		if !ok {
			t.Fatalf("Classify(%q): not recognized", tt.text)
		}
		if got := lit.OpeningLen(); got != tt.want {
			t.Errorf("OpeningLen(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
