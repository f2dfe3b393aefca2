package lexer

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"apexdoc/internal/source"
)

// Cursor walks the bytes of one Apex snippet. Offsets are absolute within
// File, so every span it hands out resolves through the snippet's FileSet.
type Cursor struct {
	File *source.File
	Off  uint32
	end  uint32
}

// NewCursor positions a cursor at the start of f.
func NewCursor(f *source.File) Cursor {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("snippet %s: %w", f.Path, err))
	}
	return Cursor{File: f, end: end}
}

func (c *Cursor) EOF() bool {
	return c.Off >= c.end
}

// PeekAt returns the byte n positions ahead, or 0 past the end.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.end {
		return 0
	}
	return c.File.Content[c.Off+n]
}

func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// Bump consumes one byte and returns it; 0 at the end.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.File.Content[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

// Match consumes op if the input continues with it. Operators are matched
// longest first by the caller.
func (c *Cursor) Match(op string) bool {
	if !bytes.HasPrefix(c.File.Content[c.Off:c.end], []byte(op)) {
		return false
	}
	for range len(op) {
		c.Off++
	}
	return true
}

// PeekRune decodes the rune under the cursor. size is 0 at the end.
func (c *Cursor) PeekRune() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	if b := c.Peek(); b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.File.Content[c.Off:c.end])
}

// BumpRune consumes the rune under the cursor; an invalid byte counts as
// one rune.
func (c *Cursor) BumpRune() {
	_, sz := c.PeekRune()
	for range sz {
		c.Off++
	}
}

// Mark is a saved cursor offset.
type Mark uint32

func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom covers the bytes consumed since m.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

// Text is the source text under sp, which must come from this cursor.
func (c *Cursor) Text(sp source.Span) string {
	return string(c.File.Content[sp.Start:sp.End])
}

// Reset moves the cursor back to m.
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}
