package apexdoc

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// bodyIndent is the class-body indentation the host applies to top-level
// comments after they are formatted.
const bodyIndent = 2

// EffectiveWidth is the column budget for comment content at the given
// indentation width.
func EffectiveWidth(printWidth, indentWidth int) int {
	w := printWidth - (indentWidth + len("* "))
	if indentWidth == 0 {
		w -= bodyIndent
	}
	return w
}

// displayWidth measures s in terminal columns, tabs expanded to tabWidth.
func displayWidth(s string, tabWidth int) int {
	if !strings.Contains(s, "\t") {
		return runewidth.StringWidth(s)
	}
	w := 0
	for _, part := range strings.SplitAfter(s, "\t") {
		if strings.HasSuffix(part, "\t") {
			w += runewidth.StringWidth(part[:len(part)-1]) + tabWidth
			continue
		}
		w += runewidth.StringWidth(part)
	}
	return w
}

// glueWords attaches words that must not open a line to their
// predecessor: a line starting with '@' or "{@code" would be read back as
// a tag or a code block.
func glueWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if len(out) > 0 && (strings.HasPrefix(w, "@") || strings.HasPrefix(w, codeTag)) {
			out[len(out)-1] += " " + w
			continue
		}
		out = append(out, w)
	}
	return out
}

// wrapWords fills lines greedily. The first line holds at most first
// columns, the rest at most rest. A word wider than its budget gets a line
// of its own.
func wrapWords(words []string, first, rest, tabWidth int) []string {
	var (
		lines []string
		cur   string
	)
	budget := first
	for _, w := range glueWords(words) {
		switch {
		case cur == "":
			cur = w
		case displayWidth(cur+" "+w, tabWidth) <= budget:
			cur += " " + w
		default:
			lines = append(lines, cur)
			cur, budget = w, rest
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// wrapLine re-flows one prose line. A line that fits is returned as is;
// otherwise its leading whitespace hangs on every produced line.
func wrapLine(line string, width, tabWidth int) []string {
	if displayWidth(line, tabWidth) <= width {
		return []string{line}
	}
	lead := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	budget := width - displayWidth(lead, tabWidth)
	if budget <= 0 {
		return []string{line}
	}
	lines := wrapWords(strings.Fields(line), budget, budget, tabWidth)
	for i := range lines {
		lines[i] = lead + lines[i]
	}
	return lines
}

// wrapAnnotation renders "@name content" within width. The first line
// also carries "@name ", continuation lines get the whole width.
func wrapAnnotation(a *AnnotationToken, width, tabWidth int) []string {
	head := "@" + a.Name
	if a.Content == "" {
		return []string{head}
	}
	full := head + " " + a.Content
	first := width - displayWidth(head+" ", tabWidth)
	if first <= 0 || displayWidth(full, tabWidth) <= width {
		return []string{full}
	}
	lines := wrapWords(strings.Fields(a.Content), first, width, tabWidth)
	lines[0] = head + " " + lines[0]
	for len(lines) > 1 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
