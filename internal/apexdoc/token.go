package apexdoc

// Kind tags the variant of a Token.
type Kind uint8

const (
	KindText Kind = iota + 1
	KindParagraph
	KindAnnotation
	KindCodeBlock
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindParagraph:
		return "paragraph"
	case KindAnnotation:
		return "annotation"
	case KindCodeBlock:
		return "code"
	default:
		return "unknown"
	}
}

// Token is one logical unit of a comment body. The concrete types are
// *TextToken, *ParagraphToken, *AnnotationToken and *CodeBlockToken.
type Token interface {
	Kind() Kind
	// Blank reports whether an empty line separated the token from the
	// previous one in the source.
	Blank() bool
}

// TextToken is prose not recognized as anything else: the text left on a
// line after a code block closes, or the whole body when it has no paragraphs.
type TextToken struct {
	Content     string
	Lines       []string
	BlankBefore bool
}

// ParagraphToken is a prose unit. IsContinuation marks a paragraph that
// directly follows an annotation or code block without a blank line.
type ParagraphToken struct {
	Content        string
	Lines          []string
	IsContinuation bool
	BlankBefore    bool
}

// AnnotationToken is an @name tag with its argument text. FollowingText is
// prose that preceded the tag on its source line; it renders on its own
// line above the tag.
type AnnotationToken struct {
	Name          string
	Content       string
	FollowingText string
	BlankBefore   bool
}

// CodeBlockToken is a {@code ...} region. StartPos and EndPos are byte
// offsets into the comment body (prefixes stripped, lines joined by '\n'),
// not into the source file.
type CodeBlockToken struct {
	StartPos      int
	EndPos        int
	RawCode       string
	FormattedCode string
	Formatted     bool
	BlankBefore   bool
}

func (t *TextToken) Kind() Kind       { return KindText }
func (t *ParagraphToken) Kind() Kind  { return KindParagraph }
func (t *AnnotationToken) Kind() Kind { return KindAnnotation }
func (t *CodeBlockToken) Kind() Kind  { return KindCodeBlock }

func (t *TextToken) Blank() bool       { return t.BlankBefore }
func (t *ParagraphToken) Blank() bool  { return t.BlankBefore }
func (t *AnnotationToken) Blank() bool { return t.BlankBefore }
func (t *CodeBlockToken) Blank() bool  { return t.BlankBefore }

// Code returns the formatted code once available, else the raw payload.
func (t *CodeBlockToken) Code() string {
	if t.Formatted {
		return t.FormattedCode
	}
	return t.RawCode
}
