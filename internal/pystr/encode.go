package pystr

import (
	"fmt"
	"strings"
	"unicode"
)

// Encode renders cooked text as the body of a single-quoted literal:
// '\' и '\'' экранируются, '"' остаётся как есть, \t \n \r пишутся
// именованными последовательностями, прочие непечатаемые символы кодируются
// как \xHH, \uXXXX или \UXXXXXXXX по размеру code point'а. Печатаемый текст,
// включая не-ASCII, проходит насквозь.
func Encode(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			switch {
			case unicode.IsPrint(r):
				b.WriteRune(r)
			case r <= 0xFF:
				fmt.Fprintf(&b, `\x%02x`, r)
			case r <= 0xFFFF:
				fmt.Fprintf(&b, `\u%04x`, r)
			default:
				fmt.Fprintf(&b, `\U%08x`, r)
			}
		}
	}
	return b.String()
}
