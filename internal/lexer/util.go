package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
)

// ===== Руны поверх Cursor =====

// peekRune декодирует руну под курсором, не двигая его. Нулевой размер — EOF.
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	if b := lx.cursor.Peek(); b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
}

// bumpBy продвигает курсор на размер уже декодированной руны.
func (lx *Lexer) bumpBy(size int) {
	n, err := safecast.Conv[uint32](size)
	if err != nil {
		panic(fmt.Errorf("rune size overflow: %w", err))
	}
	lx.cursor.Off += n
}

// ===== Классификаторы =====

// ASCII fast-path; не-ASCII хвост идентификатора решают isIdentStartRune /
// isIdentContinueRune.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

// Идентификаторы следуют Unicode-классам XID (PEP 3131): старт — XID_Start
// плюс '_', продолжение добавляет цифры, комбинируемые знаки и соединительную
// пунктуацию. L ∪ Nl — рабочее приближение XID_Start; NFKC-эквивалентность
// имён обеспечивает интернер, не лексер.
func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.In(r, unicode.L, unicode.Nl)
}
func isIdentContinueRune(r rune) bool {
	return r == '_' || unicode.In(r, unicode.L, unicode.Nl, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }
func isBin(b byte) bool { return b == '0' || b == '1' }
func isOct(b byte) bool { return b >= '0' && b <= '7' }
func isHex(b byte) bool {
	lo := b | 0x20 // A-F и a-f совпадают после сброса регистра
	return isDec(b) || (lo >= 'a' && lo <= 'f')
}

// Кейс ".5": под курсором точка, сразу за ней цифра?
func (lx *Lexer) isNumberAfterDot() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '.' && isDec(b1)
}

// ===== Жадные матчеры операторов =====

// try2/try3 съедают 2/3 байта, только если совпали все.
func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Off += 2
	return true
}

func (lx *Lexer) try3(a, b, c byte) bool {
	b0, b1, b2, ok := lx.cursor.Peek3()
	if !ok || b0 != a || b1 != b || b2 != c {
		return false
	}
	lx.cursor.Off += 3
	return true
}
