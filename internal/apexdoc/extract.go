package apexdoc

import "strings"

// ExtractCode extracts the payload of the {@code ...} block whose tag
// starts at tagIdx in content. It returns the cleaned payload and the
// offset just past the closing brace.
//
// Braces are counted from one, the tag's own brace. When content ends
// with braces still open, the last '}' seen closes the block. ok is false
// only when no '}' follows the tag at all, or tagIdx does not point at a
// well-formed tag.
func ExtractCode(content string, tagIdx int) (code string, end int, ok bool) {
	if tagIdx < 0 || !strings.HasPrefix(content[min(tagIdx, len(content)):], codeTag) {
		return "", 0, false
	}
	pos := tagIdx + len(codeTag)
	if pos < len(content) {
		switch content[pos] {
		case ' ', '\t', '\n', '\r', '}':
		default:
			return "", 0, false
		}
	}
	for pos < len(content) && (content[pos] == ' ' || content[pos] == '\t') {
		pos++
	}
	if pos < len(content) && content[pos] == '\n' {
		pos++
	}
	codeStart := pos

	braces, lastClose := 1, -1
	for i := codeStart; i < len(content); i++ {
		switch content[i] {
		case '{':
			braces++
		case '}':
			braces--
			lastClose = i
			if braces == 0 {
				return cleanPayload(content[codeStart:i]), i + 1, true
			}
		}
	}
	if lastClose < 0 {
		return "", 0, false
	}
	return cleanPayload(content[codeStart:lastClose]), lastClose + 1, true
}

// cleanPayload strips leftover comment-asterisk prefixes and trims blank
// edge lines. Interior blank lines and indentation are kept.
func cleanPayload(raw string) string {
	lines := strings.Split(raw, "\n")
	if strings.Contains(raw, "*") && carriesPrefixes(lines) {
		for i, l := range lines {
			t := strings.TrimLeft(l, " \t")
			if !strings.HasPrefix(t, "*") {
				continue
			}
			lines[i] = strings.TrimPrefix(t[1:], " ")
		}
	}
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t\r")
	}
	start, stop := 0, len(lines)
	for start < stop && lines[start] == "" {
		start++
	}
	for stop > start && lines[stop-1] == "" {
		stop--
	}
	return strings.Join(lines[start:stop], "\n")
}

func carriesPrefixes(lines []string) bool {
	seen := false
	for _, l := range lines[1:] {
		t := strings.TrimLeft(l, " \t")
		if t == "" {
			continue
		}
		if !strings.HasPrefix(t, "*") || strings.HasPrefix(t, "*/") {
			return false
		}
		seen = true
	}
	return seen
}
