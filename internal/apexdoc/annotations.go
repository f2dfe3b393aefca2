package apexdoc

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var tagPattern = regexp.MustCompile(`(?:^|[ \t])@([A-Za-z_][A-Za-z0-9_]*)`)

// LineClassifier finds the annotation tags on one comment line. Classify
// returns the byte offsets of the '@' of every tag, in order. Bytes inside
// inline code are masked with '#' before the call.
type LineClassifier interface {
	Classify(line string) []int
}

// DefaultClassifier is the regular-expression classifier: a tag opening
// the line always counts; later tags count only when their name is
// recognized, so e-mail addresses and stray '@' survive as prose.
var DefaultClassifier LineClassifier = regexClassifier{}

type regexClassifier struct{}

func (regexClassifier) Classify(line string) []int {
	var offs []int
	for _, m := range tagPattern.FindAllStringSubmatchIndex(line, -1) {
		at := m[2] - 1
		name := line[m[2]:m[3]]
		if strings.TrimSpace(line[:at]) == "" || IsRecognized(name) {
			offs = append(offs, at)
		}
	}
	return offs
}

// DetectAnnotations converts @tags found in prose tokens into annotation
// tokens. Lines after a tag in the same paragraph continue its content;
// prose before a mid-line tag becomes the tag's FollowingText.
func DetectAnnotations(toks []Token, cl LineClassifier) []Token {
	if cl == nil {
		cl = DefaultClassifier
	}
	out := make([]Token, 0, len(toks))
	for _, tok := range toks {
		switch v := tok.(type) {
		case *ParagraphToken:
			out = append(out, splitAnnotations(v.Lines, v.BlankBefore, v.IsContinuation, false, cl)...)
		case *TextToken:
			if strings.TrimSpace(v.Content) == "" {
				out = append(out, v)
				continue
			}
			out = append(out, splitAnnotations(v.Lines, v.BlankBefore, false, true, cl)...)
		default:
			out = append(out, tok)
		}
	}
	return out
}

func splitAnnotations(lines []string, blank, cont, text bool, cl LineClassifier) []Token {
	masked := maskCode(lines)
	var (
		out   []Token
		prose []string
		cur   *AnnotationToken
	)
	push := func(tok Token) {
		if len(out) == 0 {
			switch v := tok.(type) {
			case *AnnotationToken:
				v.BlankBefore = blank
			case *ParagraphToken:
				v.BlankBefore, v.IsContinuation = blank, cont
			case *TextToken:
				v.BlankBefore = blank
			}
		} else if p, ok := tok.(*ParagraphToken); ok {
			p.IsContinuation = true
		}
		out = append(out, tok)
	}
	flushProse := func() {
		if len(prose) == 0 {
			return
		}
		content := strings.Join(prose, "\n")
		if text {
			push(&TextToken{Content: content, Lines: prose})
		} else {
			push(&ParagraphToken{Content: content, Lines: prose})
		}
		prose = nil
	}

	for i, line := range lines {
		offs := cl.Classify(masked[i])
		if len(offs) == 0 {
			if cur != nil {
				cur.Content = joinSpace(cur.Content, strings.TrimSpace(line))
			} else {
				prose = append(prose, line)
			}
			continue
		}
		hoist := ""
		if lead := strings.TrimSpace(line[:offs[0]]); lead != "" {
			switch {
			case cur != nil:
				cur.Content = joinSpace(cur.Content, lead)
			case tagPattern.MatchString(lead):
				prose = append(prose, lead)
			default:
				hoist = lead
			}
		}
		flushProse()
		for k, off := range offs {
			end := len(line)
			if k+1 < len(offs) {
				end = offs[k+1]
			}
			name, content := splitTag(line[off+1 : end])
			cur = &AnnotationToken{Name: name, Content: content}
			if k == 0 {
				cur.FollowingText = hoist
			}
			push(cur)
		}
	}
	flushProse()
	return out
}

func splitTag(s string) (name, content string) {
	i := 0
	for i < len(s) && isIdentByte(s[i]) {
		i++
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func isIdentByte(b byte) bool {
	return b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func joinSpace(a, b string) string {
	switch {
	case b == "":
		return a
	case a == "":
		return b
	}
	return a + " " + b
}

// NormalizeAnnotations lower-cases every tag name and fixes the casing of
// the first word of @group values. Unknown tags pass through lower-cased.
func NormalizeAnnotations(toks []Token) {
	for _, tok := range toks {
		a, ok := tok.(*AnnotationToken)
		if !ok {
			continue
		}
		a.Name = lower(a.Name)
		if a.Name != "group" || a.Content == "" {
			continue
		}
		first := a.Content
		if i := strings.IndexAny(first, " \t"); i >= 0 {
			first = first[:i]
		}
		if canon, ok := GroupName(first); ok {
			a.Content = canon + a.Content[len(first):]
		}
	}
}

// lower folds tag names. cases.Caser is not safe for concurrent use, so
// every call gets its own.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
