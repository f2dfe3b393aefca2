package format

import (
	"strings"

	"apexdoc/internal/config"
	"apexdoc/internal/source"
)

// Writer accumulates formatted output and provides helpers for copying source
// fragments and emitting canonical whitespace.
type Writer struct {
	sf          *source.File
	opt         config.Options
	buf         []byte
	indentLevel int
	atLineStart bool
}

// NewWriter creates a new formatting writer.
func NewWriter(sf *source.File, opt config.Options) *Writer {
	size := 0
	if sf != nil {
		size = len(sf.Content)
	}
	return &Writer{
		sf:          sf,
		opt:         opt,
		buf:         make([]byte, 0, size),
		atLineStart: true,
	}
}

// Bytes returns the accumulated formatted output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Empty reports whether nothing has been written yet.
func (w *Writer) Empty() bool {
	return len(w.buf) == 0
}

// AtLineStart reports whether the next write starts a new line.
func (w *Writer) AtLineStart() bool {
	return w.atLineStart
}

// IndentString returns the indentation of the current level.
func (w *Writer) IndentString() string {
	return strings.Repeat(w.opt.IndentUnit(), w.indentLevel)
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	w.buf = append(w.buf, w.IndentString()...)
	w.atLineStart = false
}

// WriteString writes a string to the output, handling indentation.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
	w.updateLineState(s[len(s)-1])
}

// WriteByte writes a single byte to the output.
func (w *Writer) WriteByte(b byte) error {
	w.writeIndent()
	w.buf = append(w.buf, b)
	w.updateLineState(b)
	return nil
}

func (w *Writer) updateLineState(last byte) {
	w.atLineStart = last == '\n'
}

// Space writes a single space if the output doesn't already end with whitespace.
func (w *Writer) Space() {
	if len(w.buf) == 0 || w.atLineStart {
		return
	}
	last := w.buf[len(w.buf)-1]
	if last == ' ' || last == '\n' || last == '\t' {
		return
	}
	w.buf = append(w.buf, ' ')
}

// MaybeSpace writes a space if the condition is true.
func (w *Writer) MaybeSpace(cond bool) {
	if cond {
		w.Space()
	}
}

// Newline writes a newline if the output doesn't already end with one.
func (w *Writer) Newline() {
	if len(w.buf) == 0 {
		w.atLineStart = true
		return
	}
	w.trimTrailingSpace()
	if w.buf[len(w.buf)-1] != '\n' {
		w.buf = append(w.buf, '\n')
	}
	w.atLineStart = true
}

// BlankLine ends the current line and leaves exactly one empty line after it.
func (w *Writer) BlankLine() {
	if len(w.buf) == 0 {
		return
	}
	w.Newline()
	if len(w.buf) < 2 || w.buf[len(w.buf)-2] != '\n' {
		w.buf = append(w.buf, '\n')
	}
}

func (w *Writer) trimTrailingSpace() {
	for len(w.buf) > 0 {
		last := w.buf[len(w.buf)-1]
		if last != ' ' && last != '\t' {
			return
		}
		w.buf = w.buf[:len(w.buf)-1]
	}
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// CopySpan copies a span from the source file to the output.
func (w *Writer) CopySpan(sp source.Span) {
	if w.sf == nil || sp.File != w.sf.ID || sp.End <= sp.Start {
		return
	}
	w.CopyRange(int(sp.Start), int(sp.End))
}

// CopyRange copies a range of bytes from the source file to the output.
func (w *Writer) CopyRange(start, end int) {
	if w.sf == nil {
		return
	}
	if start < 0 {
		start = 0
	}
	if end > len(w.sf.Content) {
		end = len(w.sf.Content)
	}
	if start >= end {
		return
	}
	chunk := w.sf.Content[start:end]
	w.writeIndent()
	w.buf = append(w.buf, chunk...)
	w.updateLineState(chunk[len(chunk)-1])
}
