package apexdoc

import (
	"strings"

	"apexdoc/internal/config"
)

type renderer struct {
	opts   config.Options
	indent string
	prefix string
	width  int // effective content width
}

func newRenderer(opts config.Options, indent string) *renderer {
	return &renderer{
		opts:   opts,
		indent: indent,
		prefix: indent + " * ",
		width:  EffectiveWidth(opts.PrintWidth, displayWidth(indent, opts.TabWidth)),
	}
}

// Render serializes tokens into a comment. The first line is "/**" with no
// indentation; every other line starts with indent. Empty lines are the
// bare "<indent> *" prefix, never a prefix with trailing space.
func Render(toks []Token, opts config.Options, indent string) string {
	r := newRenderer(opts, indent)
	bare := indent + " *"
	out := []string{"/**"}
	emitted := 0
	for _, tok := range toks {
		body := r.token(tok)
		if len(body) == 0 {
			continue
		}
		if tok.Blank() && emitted > 0 {
			out = append(out, bare)
		}
		for _, l := range body {
			if strings.TrimSpace(l) == "" {
				out = append(out, bare)
				continue
			}
			out = append(out, r.prefix+strings.TrimRight(l, " \t"))
		}
		emitted++
	}
	out = append(out, indent+" */")
	return strings.Join(out, "\n")
}

func (r *renderer) token(tok Token) []string {
	switch v := tok.(type) {
	case *TextToken:
		return r.prose(v.Lines)
	case *ParagraphToken:
		return r.paragraph(v.Lines)
	case *AnnotationToken:
		var lines []string
		if v.FollowingText != "" {
			lines = append(lines, wrapLine(v.FollowingText, r.width, r.opts.TabWidth)...)
		}
		return append(lines, wrapAnnotation(v, r.width, r.opts.TabWidth)...)
	case *CodeBlockToken:
		return r.code(v.Code())
	}
	return nil
}

func (r *renderer) prose(lines []string) []string {
	var out []string
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, wrapLine(strings.TrimRight(l, " \t"), r.width, r.opts.TabWidth)...)
	}
	return out
}

// paragraph re-flows a paragraph as a whole. Indented lines, list items
// and lines that open or continue a multi-line inline {@code region keep
// their own line breaks; the runs of plain lines between them are joined
// and filled greedily.
func (r *renderer) paragraph(lines []string) []string {
	var (
		out   []string
		words []string
		st    scanState
	)
	flush := func() {
		if len(words) > 0 {
			out = append(out, wrapWords(words, r.width, r.width, r.opts.TabWidth)...)
			words = nil
		}
	}
	masked := maskCode(lines)
	for i, l := range lines {
		open := st.inCode()
		st = st.next(l)
		l = strings.TrimRight(l, " \t")
		switch {
		case strings.TrimSpace(l) == "":
			flush()
		case open || st.inCode() || l[0] == ' ' || l[0] == '\t':
			flush()
			out = append(out, wrapLine(l, r.width, r.opts.TabWidth)...)
		default:
			ws := splitWords(l, masked[i])
			if listItem(ws[0]) {
				flush()
			}
			words = append(words, ws...)
		}
	}
	flush()
	return out
}

// splitWords splits line on the whitespace of its masked twin, so a
// closed inline {@code ...} region stays one word.
func splitWords(line, masked string) []string {
	var words []string
	start := -1
	for i := 0; i < len(line); i++ {
		if masked[i] == ' ' || masked[i] == '\t' {
			if start >= 0 {
				words = append(words, line[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, line[start:])
	}
	return words
}

func listItem(word string) bool {
	switch word {
	case "-", "*", "+":
		return true
	}
	return strings.HasPrefix(word, "<")
}

func (r *renderer) code(code string) []string {
	if code == "" {
		return []string{codeTag + "}"}
	}
	if !strings.Contains(code, "\n") {
		compact := codeTag + " " + code + " }"
		if displayWidth(compact, r.opts.TabWidth) <= r.opts.PrintWidth-displayWidth(r.prefix, r.opts.TabWidth) {
			return []string{compact}
		}
	}
	lines := []string{codeTag}
	lines = append(lines, strings.Split(code, "\n")...)
	return append(lines, "}")
}
