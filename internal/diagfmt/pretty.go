package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"apexdoc/internal/diag"
	"apexdoc/internal/source"
)

type palette struct {
	err, warn, info, path, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Ожидается, что diags уже отсортированы (bag.Sort()).
// Для каждой диагностики печатается
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строки контекста с подчёркиванием ^~~~ по Span и заметки.
func Pretty(w io.Writer, diags []*diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = 4
	}
	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(&b, "%s: %s %s: %s\n",
			p.path.Sprintf("%s:%d:%d", displayPath(fs, f, opts.PathMode), start.Line, start.Col),
			p.severity(d.Severity).Sprint(d.Severity.String()),
			d.Code.ID(),
			d.Message)
		writeSnippet(&b, f, d.Primary, start.Line, int(opts.Context), tabWidth, p)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(&b, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"), displayPath(fs, nf, opts.PathMode), ns.Line, ns.Col, n.Msg)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeSnippet(b *strings.Builder, f *source.File, span source.Span, line uint32, context, tabWidth int, p palette) {
	if f == nil || len(f.Content) == 0 {
		return
	}
	lines := strings.Split(strings.TrimSuffix(string(f.Content), "\n"), "\n")
	target := int(line) - 1
	if target < 0 || target >= len(lines) {
		return
	}
	first := max(target-context, 0)
	last := min(target+context, len(lines)-1)
	gutterWidth := len(strconv.Itoa(last + 1))

	for i := first; i <= last; i++ {
		text := expandTabs(lines[i], tabWidth)
		fmt.Fprintf(b, " %s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, i+1), text)
		if i != target {
			continue
		}
		lineStart := lineStartOffset(f, line)
		col := int(span.Start - lineStart)
		col = min(max(col, 0), len(lines[i]))
		endCol := int(span.End - lineStart)
		endCol = min(max(endCol, col+1), len(lines[i])+1)

		pad := runewidth.StringWidth(expandTabs(lines[i][:col], tabWidth))
		var underline string
		if col < len(lines[i]) {
			underline = expandTabs(lines[i][col:min(endCol, len(lines[i]))], tabWidth)
		}
		width := max(runewidth.StringWidth(underline), 1)
		marker := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(b, " %s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), p.caret.Sprint(marker))
	}
}

func lineStartOffset(f *source.File, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	idx := line - 2
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return n
}

func expandTabs(s string, tabWidth int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}
