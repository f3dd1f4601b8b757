// Package pyfmt scans percent format strings. The cooked text of a str
// literal is split into literal runs and conversion specifiers following
// the printf-style grammar %[(key)][flags][width][.precision][length]verb.
// The scanner is purely lexical: it records what each specifier says and
// leaves the policy of which specifiers are convertible to the caller.
package pyfmt

import "strings"

// Spec is one conversion specifier.
type Spec struct {
	Text         string // точный текст спецификатора, включая '%'
	Key          string // ключ из %(name)s, без скобок
	HasKey       bool
	Flags        string // любые из "#0- +"
	Width        string // цифры или "*"
	Precision    string // цифры или "*" после точки
	HasPrecision bool
	Length       byte // h, l или L; 0 если нет
	Verb         byte // символ преобразования
}

// Segment is one piece of a scanned format string: either a literal run
// (Spec == nil) or one specifier. '%%' folds into the literal run as a
// single '%'.
type Segment struct {
	Lit  string
	Spec *Spec
}

const flagChars = "#0- +"

// Scan splits cooked format-string text into literal runs and specifiers.
// Процент, у которого спецификатор обрывается концом текста или переводом
// строки, спецификатором не считается: весь обрывок уходит в литеральный
// текст, как его трактует и рантайм-форматирование.
func Scan(text string) []Segment {
	var segs []Segment
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, Segment{Lit: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	for i < len(text) {
		c := text[i]
		if c != '%' {
			lit.WriteByte(c)
			i++
			continue
		}
		if i+1 < len(text) && text[i+1] == '%' {
			lit.WriteByte('%')
			i += 2
			continue
		}

		start := i
		i++
		var sp Spec

		// ключ-отображение: %(name)s; без закрывающей скобки '('
		// остаётся обычным символом и станет verb
		if i < len(text) && text[i] == '(' {
			if j := strings.IndexByte(text[i:], ')'); j >= 0 {
				sp.HasKey = true
				sp.Key = text[i+1 : i+j]
				i += j + 1
			}
		}
		fs := i
		for i < len(text) && strings.IndexByte(flagChars, text[i]) >= 0 {
			i++
		}
		sp.Flags = text[fs:i]
		if i < len(text) && text[i] == '*' {
			sp.Width = "*"
			i++
		} else {
			w := i
			for i < len(text) && text[i] >= '0' && text[i] <= '9' {
				i++
			}
			sp.Width = text[w:i]
		}
		// точка съедается только вместе с цифрами или '*'
		if i+1 < len(text) && text[i] == '.' &&
			(text[i+1] == '*' || (text[i+1] >= '0' && text[i+1] <= '9')) {
			sp.HasPrecision = true
			i++
			if text[i] == '*' {
				sp.Precision = "*"
				i++
			} else {
				p := i
				for i < len(text) && text[i] >= '0' && text[i] <= '9' {
					i++
				}
				sp.Precision = text[p:i]
			}
		}
		if i < len(text) && (text[i] == 'h' || text[i] == 'l' || text[i] == 'L') {
			sp.Length = text[i]
			i++
		}
		if i >= len(text) || text[i] == '\n' {
			// обрывок без verb: литеральный текст
			lit.WriteString(text[start:i])
			continue
		}
		sp.Verb = text[i]
		i++
		sp.Text = text[start:i]
		flush()
		segs = append(segs, Segment{Spec: &sp})
	}
	flush()
	return segs
}

// ArgCount reports how many positional arguments the scanned string
// consumes. Спецификатор с verb '%' аргумент не потребляет.
func ArgCount(segs []Segment) int {
	n := 0
	for _, seg := range segs {
		if seg.Spec != nil && seg.Spec.Verb != '%' {
			n++
		}
	}
	return n
}
