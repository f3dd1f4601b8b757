// Package pystr classifies Python string literals: prefix letters, quote
// style and the body text between the quotes. It works on the exact source
// text of a literal and never decodes escapes — callers that splice literal
// bodies around rely on getting the author's spelling back byte for byte.
package pystr

import (
	"strings"
)

// Literal is one string literal split into its lexical parts.
type Literal struct {
	Prefix string // префикс как в исходнике: "", "r", "Rb", "f", ...
	Quote  byte   // ' или "
	Triple bool
	Body   string // точный текст между кавычками, без раскодирования

	Raw     bool
	Bytes   bool
	FString bool
	Unicode bool // явный префикс u/U
}

// ValidPrefix reports whether s is a legal string-literal prefix.
// Регистр не важен; 'u' ни с чем не сочетается.
func ValidPrefix(s string) bool {
	if len(s) > 2 {
		return false
	}
	switch strings.ToLower(s) {
	case "", "r", "b", "u", "f", "br", "rb", "fr", "rf":
		return true
	}
	return false
}

// Classify splits the exact source text of a string literal.
// ok is false when text is not one complete literal (bad prefix, unmatched
// quotes, too short).
func Classify(text string) (Literal, bool) {
	i := 0
	for i < len(text) && text[i] != '\'' && text[i] != '"' {
		i++
	}
	if i >= len(text) {
		return Literal{}, false
	}
	prefix := text[:i]
	if !ValidPrefix(prefix) {
		return Literal{}, false
	}

	lit := Literal{Prefix: prefix, Quote: text[i]}
	for j := 0; j < len(prefix); j++ {
		switch prefix[j] {
		case 'r', 'R':
			lit.Raw = true
		case 'b', 'B':
			lit.Bytes = true
		case 'f', 'F':
			lit.FString = true
		case 'u', 'U':
			lit.Unicode = true
		}
	}

	rest := text[i:]
	q := lit.Quote
	if len(rest) >= 3 && rest[1] == q && rest[2] == q {
		// Две кавычки после открывающей всегда открывают triple-строку,
		// даже если закрытия не хватает ("'''" — не пустая строка плюс хвост).
		lit.Triple = true
		if len(rest) < 6 || rest[len(rest)-1] != q || rest[len(rest)-2] != q || rest[len(rest)-3] != q {
			return Literal{}, false
		}
		lit.Body = rest[3 : len(rest)-3]
		return lit, true
	}
	if len(rest) < 2 || rest[len(rest)-1] != q {
		return Literal{}, false
	}
	lit.Body = rest[1 : len(rest)-1]
	return lit, true
}

// PlainStr reports whether the literal is an ordinary str: no raw, bytes or
// f-string semantics. Явный 'u' считается plain — это тот же str.
func (l Literal) PlainStr() bool {
	return !l.Raw && !l.Bytes && !l.FString
}

// OpeningLen возвращает длину префикса и открывающих кавычек.
func (l Literal) OpeningLen() int {
	n := len(l.Prefix) + 1
	if l.Triple {
		n += 2
	}
	return n
}
