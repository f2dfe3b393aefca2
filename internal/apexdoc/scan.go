package apexdoc

import "strings"

const codeTag = "{@code"

type scanMode uint8

const (
	modeProse scanMode = iota
	modeCode
)

// scanState tracks inline {@code ...} regions across the lines of one
// paragraph. In modeCode, braces counts the still-open braces, the tag's
// own brace included.
type scanState struct {
	mode   scanMode
	braces int
}

// next returns the state after consuming line. It never mutates s.
func (s scanState) next(line string) scanState {
	for i := 0; i < len(line); i++ {
		switch s.mode {
		case modeProse:
			if strings.HasPrefix(line[i:], codeTag) {
				s = scanState{mode: modeCode, braces: 1}
				i += len(codeTag) - 1
			}
		case modeCode:
			switch line[i] {
			case '{':
				s.braces++
			case '}':
				s.braces--
				if s.braces == 0 {
					s = scanState{mode: modeProse}
				}
			}
		}
	}
	return s
}

func (s scanState) inCode() bool { return s.mode == modeCode }

// maskCode replaces every byte that lies inside an inline code region
// with '#', so offsets into the masked lines match the originals.
func maskCode(lines []string) []string {
	out := make([]string, len(lines))
	var st scanState
	for li, line := range lines {
		b := []byte(line)
		for i := 0; i < len(b); i++ {
			if st.mode == modeProse {
				if strings.HasPrefix(line[i:], codeTag) {
					st = scanState{mode: modeCode, braces: 1}
					for j := i; j < i+len(codeTag); j++ {
						b[j] = '#'
					}
					i += len(codeTag) - 1
				}
				continue
			}
			switch b[i] {
			case '{':
				st.braces++
			case '}':
				st.braces--
			}
			b[i] = '#'
			if st.braces == 0 {
				st = scanState{mode: modeProse}
			}
		}
		out[li] = string(b)
	}
	return out
}
