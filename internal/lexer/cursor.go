package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"fstrify/internal/source"
)

// Cursor — байтовая позиция в файле. Off растёт до Limit; за границей
// читается нулевой байт, так что сканеры не проверяют EOF на каждом шаге.
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off.
	Limit uint32
}

// NewCursor positions a cursor at the start of the file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file too large for cursor: %w", err))
	}
	return Cursor{File: f, Limit: limit}
}

// EOF reports whether the cursor ran past the last byte.
func (c *Cursor) EOF() bool { return c.Off >= c.Limit }

// at читает байт в i позициях впереди; за границей — 0, false.
func (c *Cursor) at(i uint32) (byte, bool) {
	if c.Off+i >= c.Limit {
		return 0, false
	}
	return c.File.Content[c.Off+i], true
}

// Peek reads the current byte, 0 at EOF.
func (c *Cursor) Peek() byte {
	b, _ := c.at(0)
	return b
}

// Peek2 reads the current byte and the next one; ok only when both exist.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if b1, ok = c.at(1); !ok {
		return 0, 0, false
	}
	b0, _ = c.at(0)
	return b0, b1, true
}

// Peek3 reads three bytes ahead of the cursor; ok only when all exist.
func (c *Cursor) Peek3() (b0, b1, b2 byte, ok bool) {
	if b2, ok = c.at(2); !ok {
		return 0, 0, 0, false
	}
	b0, _ = c.at(0)
	b1, _ = c.at(1)
	return b0, b1, b2, true
}

// Bump consumes and returns the current byte, 0 at EOF.
func (c *Cursor) Bump() byte {
	b, ok := c.at(0)
	if !ok {
		return 0
	}
	c.Off++
	return b
}

// Eat consumes the current byte only if it equals b.
func (c *Cursor) Eat(b byte) bool {
	if got, ok := c.at(0); !ok || got != b {
		return false
	}
	c.Off++
	return true
}

// Mark — метка позиции для Span или отката.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

// SpanFrom builds the span from the mark to the current position.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

// Reset rolls the cursor back to the mark.
func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }
