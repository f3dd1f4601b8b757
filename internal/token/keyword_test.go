package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"False":    KwFalse,
		"None":     KwNone,
		"True":     KwTrue,
		"and":      KwAnd,
		"await":    KwAwait,
		"def":      KwDef,
		"elif":     KwElif,
		"lambda":   KwLambda,
		"nonlocal": KwNonlocal,
		"not":      KwNot,
		"return":   KwReturn,
		"yield":    KwYield,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// Заведомо НЕ ключевые слова
	notKw := []string{
		"true", "none", "FALSE", // регистр важен
		"match", "case", "type", "_", // мягкие слова — Ident
		"print", "exec", // в Python 3 это обычные имена
		"identifier", "self",
	}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}
