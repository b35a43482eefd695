package balance

import "unicode/utf8"

// cursor walks UTF-8 source one character at a time while tracking
// line, column and byte offset.
type cursor struct {
	src      []byte
	filename string
	pos      int // Current byte position
	line     int // Current line (1-indexed)
	column   int // Current column (1-indexed)
}

func newCursor(filename string, src []byte) *cursor {
	return &cursor{
		src:      src,
		filename: filename,
		line:     1,
		column:   1,
	}
}

// position returns the location of the next character.
func (c *cursor) position() Position {
	return Position{
		Filename: c.filename,
		Offset:   c.pos,
		Line:     c.line,
		Column:   c.column,
	}
}

// next decodes the character under the cursor, returns it with its position
// and advances. "\r\n" and a lone "\r" are both reported as a single '\n'.
// The last result is false once the source is exhausted.
func (c *cursor) next() (rune, Position, bool) {
	if c.pos >= len(c.src) {
		return 0, c.position(), false
	}

	pos := c.position()
	ch, size := utf8.DecodeRune(c.src[c.pos:])
	c.pos += size

	if ch == '\r' {
		if c.pos < len(c.src) && c.src[c.pos] == '\n' {
			c.pos++
		}
		ch = '\n'
	}

	if ch == '\n' {
		c.line++
		c.column = 1
	} else {
		c.column++
	}

	return ch, pos, true
}
