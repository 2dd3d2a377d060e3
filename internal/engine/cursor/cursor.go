// Package cursor provides a rune reader that tracks 1-based line and column positions.
package cursor

import "unicode/utf8"

// EOF is returned by Peek when no input remains.
const EOF rune = -1

// Position is a 1-based line and column.
type Position struct {
	Line   int
	Column int
}

// Cursor reads runes from a byte slice one at a time.
// It supports backing up exactly one rune, restoring the position
// even when the rune was a newline.
type Cursor struct {
	src    []byte
	offset int
	pos    Position

	prevOffset int
	prevPos    Position
	canBackup  bool
}

// New returns a cursor positioned at line 1, column 1.
func New(src []byte) *Cursor {
	start := Position{Line: 1, Column: 1}
	return &Cursor{
		src:     src,
		pos:     start,
		prevPos: start,
	}
}

// Next consumes and returns the next rune. It returns false at end of input.
func (c *Cursor) Next() (rune, bool) {
	if c.offset >= len(c.src) {
		c.canBackup = false
		return EOF, false
	}

	r, width := utf8.DecodeRune(c.src[c.offset:])
	c.prevOffset = c.offset
	c.prevPos = c.pos
	c.canBackup = true

	c.offset += width
	if r == '\n' {
		c.pos.Line++
		c.pos.Column = 1
	} else {
		c.pos.Column++
	}
	return r, true
}

// Backup un-reads the rune returned by the last successful Next.
// Calling it twice in a row, or after Next reported end of input, is a no-op.
func (c *Cursor) Backup() {
	if !c.canBackup {
		return
	}
	c.offset = c.prevOffset
	c.pos = c.prevPos
	c.canBackup = false
}

// Peek returns the next rune without consuming it.
func (c *Cursor) Peek() rune {
	if c.offset >= len(c.src) {
		return EOF
	}
	r, _ := utf8.DecodeRune(c.src[c.offset:])
	return r
}

// Pos returns the position of the next rune to be read.
func (c *Cursor) Pos() Position {
	return c.pos
}

// Done reports whether all input has been consumed.
func (c *Cursor) Done() bool {
	return c.offset >= len(c.src)
}
