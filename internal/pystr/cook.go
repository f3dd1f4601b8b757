package pystr

import "strings"

// Cook decodes the body of a str literal into its runtime value.
// Для raw-строк тело возвращается как есть. ok=false, когда тело содержит
// экранирование, которое нельзя раскодировать статически: \N{...} требует
// таблицу имён Unicode, оборванные \x/\u/\U и суррогатные code point'ы
// не представимы в результате.
func Cook(lit Literal) (string, bool) {
	if lit.Raw {
		return lit.Body, true
	}
	body := lit.Body
	if strings.IndexByte(body, '\\') < 0 {
		return body, true
	}

	var b strings.Builder
	b.Grow(len(body))
	i := 0
	for i < len(body) {
		c := body[i]
		if c != '\\' {
			// байты UTF-8 проходят насквозь
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(body) {
			// одиночный '\' на конце тела: такого не бывает в литерале,
			// который лексер принял как завершённый
			return "", false
		}
		e := body[i+1]
		i += 2
		switch e {
		case '\n':
			// перенос строки внутри литерала: пара исчезает
		case '\r':
			if i < len(body) && body[i] == '\n' {
				i++
			}
		case '\\':
			b.WriteByte('\\')
		case '\'':
			b.WriteByte('\'')
		case '"':
			b.WriteByte('"')
		case 'a':
			b.WriteByte(0x07)
		case 'b':
			b.WriteByte(0x08)
		case 'f':
			b.WriteByte(0x0c)
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte(0x0b)
		case '0', '1', '2', '3', '4', '5', '6', '7':
			// до трёх восьмеричных цифр; \777 даёт chr(511)
			v := rune(e - '0')
			for k := 0; k < 2 && i < len(body) && body[i] >= '0' && body[i] <= '7'; k++ {
				v = v*8 + rune(body[i]-'0')
				i++
			}
			b.WriteRune(v)
		case 'x':
			v, ok := hexEscape(body, i, 2)
			if !ok {
				return "", false
			}
			b.WriteRune(v)
			i += 2
		case 'u':
			v, ok := hexEscape(body, i, 4)
			if !ok || isSurrogate(v) {
				return "", false
			}
			b.WriteRune(v)
			i += 4
		case 'U':
			v, ok := hexEscape(body, i, 8)
			if !ok || isSurrogate(v) || v > 0x10FFFF {
				return "", false
			}
			b.WriteRune(v)
			i += 8
		case 'N':
			// \N{NAME}: без таблицы unicodedata не раскодировать
			return "", false
		default:
			// неизвестное экранирование Python сохраняет как два символа
			b.WriteByte('\\')
			b.WriteByte(e)
		}
	}
	return b.String(), true
}

func hexEscape(s string, i, n int) (rune, bool) {
	if i+n > len(s) {
		return 0, false
	}
	var v rune
	for k := 0; k < n; k++ {
		d, ok := hexDigit(s[i+k])
		if !ok {
			return 0, false
		}
		v = v*16 + rune(d)
	}
	return v, true
}

func hexDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}

func isSurrogate(r rune) bool {
	return r >= 0xD800 && r <= 0xDFFF
}
