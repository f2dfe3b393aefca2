package apexdoc

import (
	"strings"
	"unicode"
)

type tokenizer struct {
	lines   []string
	content string
	offsets []int

	toks  []Token
	para  []string
	st    scanState
	blank bool // an empty line precedes the next token
	cont  bool // the next paragraph directly follows a code block
}

// Tokenize splits comment body lines into paragraphs, code blocks and
// trailing text. A {@code block is carved out only when its tag opens a
// line; code-block offsets refer to the body lines joined by '\n'.
func Tokenize(lines []string) []Token {
	t := &tokenizer{
		lines:   lines,
		content: strings.Join(lines, "\n"),
		offsets: make([]int, len(lines)),
	}
	off := 0
	for i, l := range lines {
		t.offsets[i] = off
		off += len(l) + 1
	}
	t.run()
	if len(t.toks) == 0 {
		return []Token{&TextToken{Content: strings.TrimSpace(t.content), Lines: lines}}
	}
	return t.toks
}

func (t *tokenizer) run() {
	for i := 0; i < len(t.lines); i++ {
		line := t.lines[i]
		if strings.TrimSpace(line) == "" {
			t.flush()
			t.blank = len(t.toks) > 0
			t.cont = false
			continue
		}
		if !t.st.inCode() {
			lead := strings.TrimLeft(line, " \t")
			if strings.HasPrefix(lead, codeTag) {
				if j, ok := t.codeBlock(i, len(line)-len(lead)); ok {
					i = j
					continue
				}
			}
			if strings.HasPrefix(lead, "@") && len(t.para) > 0 {
				t.flush()
			}
		}
		t.para = append(t.para, line)
		t.st = t.st.next(line)
		if t.sentenceBreak(i) {
			t.flush()
		}
	}
	t.flush()
}

// codeBlock carves out the block whose tag starts at column col of line i
// and returns the index of the line holding its closing brace.
func (t *tokenizer) codeBlock(i, col int) (int, bool) {
	tagIdx := t.offsets[i] + col
	code, end, ok := ExtractCode(t.content, tagIdx)
	if !ok {
		return i, false
	}
	t.flush()
	t.emit(&CodeBlockToken{StartPos: tagIdx, EndPos: end, RawCode: code})
	j := t.lineAt(end - 1)
	if rest := strings.TrimSpace(t.content[end : t.offsets[j]+len(t.lines[j])]); rest != "" {
		t.emit(&TextToken{Content: rest, Lines: []string{rest}})
	}
	t.cont = true
	return j, true
}

func (t *tokenizer) lineAt(off int) int {
	for j := len(t.offsets) - 1; j > 0; j-- {
		if t.offsets[j] <= off {
			return j
		}
	}
	return 0
}

// sentenceBreak: line i ends a sentence and the next line starts with a
// capital letter. Annotation paragraphs never split this way.
func (t *tokenizer) sentenceBreak(i int) bool {
	if t.st.inCode() || i+1 >= len(t.lines) {
		return false
	}
	if strings.HasPrefix(strings.TrimLeft(t.para[0], " \t"), "@") {
		return false
	}
	line := strings.TrimRight(t.lines[i], " \t")
	if line == "" || !strings.ContainsRune(".!?", rune(line[len(line)-1])) {
		return false
	}
	for _, r := range t.lines[i+1] {
		if unicode.IsLetter(r) {
			return unicode.IsUpper(r)
		}
	}
	return false
}

func (t *tokenizer) emit(tok Token) {
	switch v := tok.(type) {
	case *TextToken:
		v.BlankBefore = t.blank
	case *ParagraphToken:
		v.BlankBefore = t.blank
	case *CodeBlockToken:
		v.BlankBefore = t.blank
	}
	t.blank = false
	t.toks = append(t.toks, tok)
}

func (t *tokenizer) flush() {
	if len(t.para) > 0 {
		t.emit(&ParagraphToken{
			Content:        strings.Join(t.para, "\n"),
			Lines:          t.para,
			IsContinuation: t.cont,
		})
		t.para = nil
	}
	t.cont = false
	t.st = scanState{}
}
