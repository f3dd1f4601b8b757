package pyfmt

import "testing"

func TestScanPlainText(t *testing.T) {
	segs := Scan("no conversions here")
	if len(segs) != 1 || segs[0].Spec != nil || segs[0].Lit != "no conversions here" {
		t.Fatalf("Scan = %+v, want one literal run", segs)
	}
}

func TestScanEmpty(t *testing.T) {
	if segs := Scan(""); len(segs) != 0 {
		t.Fatalf("Scan(\"\") = %+v, want empty", segs)
	}
}

func TestScanSingleSpec(t *testing.T) {
	segs := Scan("%s")
	if len(segs) != 1 || segs[0].Spec == nil {
		t.Fatalf("Scan = %+v, want one spec", segs)
	}
	sp := segs[0].Spec
	if sp.Verb != 's' || sp.Text != "%s" || sp.HasKey || sp.Flags != "" || sp.Width != "" || sp.HasPrecision {
		t.Fatalf("spec = %+v", sp)
	}
}

func TestScanMixed(t *testing.T) {
	segs := Scan("%s%s, %s!")
	if len(segs) != 5 {
		t.Fatalf("got %d segments, want 5: %+v", len(segs), segs)
	}
	wantSpec := []bool{true, true, false, true, false}
	for i, w := range wantSpec {
		if (segs[i].Spec != nil) != w {
			t.Errorf("segment %d: spec=%v, want %v", i, segs[i].Spec != nil, w)
		}
	}
	if segs[2].Lit != ", " || segs[4].Lit != "!" {
		t.Errorf("literal runs = %q, %q", segs[2].Lit, segs[4].Lit)
	}
}

func TestScanPercentPair(t *testing.T) {
	segs := Scan("100%% done, %d left")
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3: %+v", len(segs), segs)
	}
	if segs[0].Lit != "100% done, " {
		t.Errorf("first run = %q, want %q", segs[0].Lit, "100% done, ")
	}
	if segs[1].Spec == nil || segs[1].Spec.Verb != 'd' {
		t.Errorf("second segment = %+v, want %%d spec", segs[1])
	}
	if segs[2].Lit != " left" {
		t.Errorf("last run = %q", segs[2].Lit)
	}
}

func TestScanWidthPrecision(t *testing.T) {
	tests := []struct {
		text string
		want Spec
	}{
		{"%5d", Spec{Text: "%5d", Width: "5", Verb: 'd'}},
		{"%5.2f", Spec{Text: "%5.2f", Width: "5", Precision: "2", HasPrecision: true, Verb: 'f'}},
		{"%.3f", Spec{Text: "%.3f", Precision: "3", HasPrecision: true, Verb: 'f'}},
		{"%*d", Spec{Text: "%*d", Width: "*", Verb: 'd'}},
		{"%.*f", Spec{Text: "%.*f", Precision: "*", HasPrecision: true, Verb: 'f'}},
		{"%10.5g", Spec{Text: "%10.5g", Width: "10", Precision: "5", HasPrecision: true, Verb: 'g'}},
		{"%ld", Spec{Text: "%ld", Length: 'l', Verb: 'd'}},
		{"%-10s", Spec{Text: "%-10s", Flags: "-", Width: "10", Verb: 's'}},
		{"%#0x", Spec{Text: "%#0x", Flags: "#0", Verb: 'x'}},
		{"%+d", Spec{Text: "%+d", Flags: "+", Verb: 'd'}},
	}
	for _, tt := range tests {
		segs := Scan(tt.text)
		if len(segs) != 1 || segs[0].Spec == nil {
			t.Errorf("Scan(%q) = %+v, want one spec", tt.text, segs)
			continue
		}
		if got := *segs[0].Spec; got != tt.want {
			t.Errorf("Scan(%q) spec = %+v, want %+v", tt.text, got, tt.want)
		}
	}
}

func TestScanMappingKey(t *testing.T) {
	segs := Scan("%(name)s is %(age)d")
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3: %+v", len(segs), segs)
	}
	first := segs[0].Spec
	if first == nil || !first.HasKey || first.Key != "name" || first.Verb != 's' {
		t.Errorf("first spec = %+v", first)
	}
	third := segs[2].Spec
	if third == nil || !third.HasKey || third.Key != "age" || third.Verb != 'd' {
		t.Errorf("third spec = %+v", third)
	}
}

func TestScanUnclosedKey(t *testing.T) {
	// без закрывающей скобки '(' становится verb
	segs := Scan("%(oops")
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2: %+v", len(segs), segs)
	}
	if segs[0].Spec == nil || segs[0].Spec.Verb != '(' || segs[0].Spec.HasKey {
		t.Errorf("spec = %+v, want verb '('", segs[0].Spec)
	}
	if segs[1].Lit != "oops" {
		t.Errorf("tail = %q", segs[1].Lit)
	}
}

func TestScanDanglingPercent(t *testing.T) {
	// обрывок без verb уходит в литеральный текст
	tests := []struct {
		text    string
		wantLit string
	}{
		{"50%", "50%"},
		{"%5", "%5"},
		{"a%\nb", "a%\nb"},
		{"%5.2\n", "%5.2\n"},
	}
	for _, tt := range tests {
		segs := Scan(tt.text)
		if len(segs) != 1 || segs[0].Spec != nil || segs[0].Lit != tt.wantLit {
			t.Errorf("Scan(%q) = %+v, want literal %q", tt.text, segs, tt.wantLit)
		}
	}
}

func TestScanDotWithoutDigits(t *testing.T) {
	// '.' без цифр и '*' после неё становится verb
	segs := Scan("%.f")
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2: %+v", len(segs), segs)
	}
	if segs[0].Spec == nil || segs[0].Spec.Verb != '.' || segs[0].Spec.HasPrecision {
		t.Errorf("spec = %+v, want verb '.'", segs[0].Spec)
	}
	if segs[1].Lit != "f" {
		t.Errorf("tail = %q", segs[1].Lit)
	}
}

func TestScanSpaceFlagEatsFollowingVerb(t *testing.T) {
	// пробел — флаг, поэтому "% o" это спецификатор с verb 'o'
	segs := Scan("50% off")
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3: %+v", len(segs), segs)
	}
	if segs[0].Lit != "50" || segs[2].Lit != "ff" {
		t.Errorf("literal runs = %q, %q", segs[0].Lit, segs[2].Lit)
	}
	sp := segs[1].Spec
	if sp == nil || sp.Flags != " " || sp.Verb != 'o' || sp.Text != "% o" {
		t.Errorf("spec = %+v, want flag ' ' verb 'o'", sp)
	}
}

func TestScanPercentVerbWithWidth(t *testing.T) {
	segs := Scan("%5%")
	if len(segs) != 1 || segs[0].Spec == nil {
		t.Fatalf("Scan = %+v, want one spec", segs)
	}
	sp := segs[0].Spec
	if sp.Verb != '%' || sp.Width != "5" {
		t.Errorf("spec = %+v, want width 5 verb '%%'", sp)
	}
}

func TestArgCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"plain", 0},
		{"%s", 1},
		{"%s %d %r", 3},
		{"100%%", 0},
		{"%5%", 0}, // verb '%' аргумент не потребляет
		{"%s%%%d", 2},
		{"50%", 0},
	}
	for _, tt := range tests {
		if got := ArgCount(Scan(tt.text)); got != tt.want {
			t.Errorf("ArgCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
