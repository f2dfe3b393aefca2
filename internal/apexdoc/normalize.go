package apexdoc

import (
	"regexp"
	"strings"
)

var (
	openerRun = regexp.MustCompile(`^(\s*)/\*{2,}`)
	closerRun = regexp.MustCompile(`\*{2,}/`)
)

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}

// Normalize canonicalizes the structural markers of a raw doc comment:
// the opener becomes "/**", a closer "*/", and every interior line gets
// the "<indent> * " prefix. Whitespace after the single space that follows
// the asterisks is kept, so indented code survives.
func Normalize(comment, indent string) string {
	lines := splitLines(comment)
	if len(lines) == 1 {
		return normalizeSingleLine(lines[0])
	}
	out := make([]string, len(lines))
	out[0] = strings.TrimRight(openerRun.ReplaceAllString(lines[0], "$1/**"), " \t")
	for i := 1; i < len(lines)-1; i++ {
		out[i] = prefixed(indent, lineContent(lines[i]))
	}
	last := lines[len(lines)-1]
	if idx := strings.LastIndex(closerRun.ReplaceAllString(last, "*/"), "*/"); idx >= 0 {
		last = closerRun.ReplaceAllString(last, "*/")
		before := lineContent(last[:idx])
		if before == "" {
			out[len(out)-1] = indent + " */"
		} else {
			out[len(out)-1] = indent + " * " + before + " */"
		}
	} else {
		out[len(out)-1] = prefixed(indent, lineContent(last))
	}
	return strings.Join(out, "\n")
}

func normalizeSingleLine(line string) string {
	line = openerRun.ReplaceAllString(line, "$1/**")
	if strings.HasSuffix(strings.TrimRight(line, " \t"), "*/") && len(strings.TrimSpace(line)) > len("/**/") {
		head := strings.TrimRight(line, " \t")
		head = strings.TrimRight(head[:len(head)-1], "*")
		line = head + "*/"
	}
	return line
}

func prefixed(indent, content string) string {
	if content == "" {
		return indent + " *"
	}
	return indent + " * " + content
}

// lineContent strips the leading whitespace, the asterisk run and at most
// one space from an interior line. Lines without an asterisk lose their
// leading whitespace.
func lineContent(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "*") {
		trimmed = strings.TrimLeft(trimmed, "*")
		trimmed = strings.TrimPrefix(trimmed, " ")
	}
	return strings.TrimRight(trimmed, " \t")
}

// Body returns the content lines of a multi-line comment: delimiters and
// line prefixes removed. Text sharing a line with the opener or the
// closer becomes a body line of its own.
func Body(comment string) []string {
	lines := splitLines(comment)
	if len(lines) < 2 {
		return nil
	}
	var body []string
	if first := strings.TrimSpace(openerRun.ReplaceAllString(lines[0], "")); first != "" {
		body = append(body, first)
	}
	for _, line := range lines[1 : len(lines)-1] {
		body = append(body, lineContent(line))
	}
	last := closerRun.ReplaceAllString(lines[len(lines)-1], "*/")
	if idx := strings.LastIndex(last, "*/"); idx >= 0 {
		if c := lineContent(last[:idx]); c != "" {
			body = append(body, c)
		}
	} else {
		body = append(body, lineContent(last))
	}
	return body
}

// isSingleLine reports whether the comment opens and closes on one line.
func isSingleLine(comment string) bool {
	return !strings.Contains(comment, "\n")
}
