package format

import (
	"context"
	"strings"

	"apexdoc/internal/diag"
	"apexdoc/internal/lexer"
	"apexdoc/internal/source"
	"apexdoc/internal/token"
)

type printer struct {
	ctx  context.Context
	sf   *source.File
	toks []token.Token
	eof  token.Token
	w    *Writer
	opt  Options

	match   map[int]int
	generic map[int]bool
	inline  map[int]bool
	unary   map[int]bool

	last        int  // index of the last printed token, -1 before any
	pendingLine bool // a line break is owed before the next token
	parenDepth  int
	inlineDepth int
	annotArgs   int // paren depth of annotation arguments; 0 outside
	annotLine   bool
	err         error
}

// FormatSource formats an Apex snippet with the entry point named in opt.Parser.
// A *SyntaxError is returned when the snippet does not lex or does not
// fit the entry point; the caller decides whether to retry another parser.
func FormatSource(ctx context.Context, src string, opt Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	opt = opt.withDefaults()

	fs := source.NewFileSetWithBase("")
	fid := fs.AddVirtual("snippet.apex", []byte(src))
	sf := fs.Get(fid)

	bag := diag.NewBag(16)
	lx := lexer.New(sf, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	all := lx.All()
	if bag.HasErrors() {
		d := bag.Items()[0]
		return "", &SyntaxError{Code: d.Code, Span: d.Primary, Parser: opt.Parser, Msg: d.Message}
	}
	toks, eof := all[:len(all)-1], all[len(all)-1]
	if len(toks) == 0 && !hasComments(eof.Leading) {
		return "", nil
	}

	var st structure
	if len(toks) > 0 {
		var serr *SyntaxError
		st, serr = balance(opt.Parser, toks)
		if serr == nil {
			switch opt.Parser {
			case ParserApex:
				serr = checkApex(toks, st)
			default:
				serr = checkAnonymous(toks, st)
			}
		}
		if serr != nil {
			return "", serr
		}
	}

	p := &printer{
		ctx:     ctx,
		sf:      sf,
		toks:    toks,
		eof:     eof,
		w:       NewWriter(sf, opt.Config),
		opt:     opt,
		match:   st.match,
		generic: markGenerics(toks),
		inline:  markInlineBraces(toks, st),
		unary:   markUnary(toks),
		last:    -1,
	}
	p.print()
	if p.err != nil {
		return "", p.err
	}
	out := strings.TrimRight(string(p.w.Bytes()), " \t\n")
	if out == "" {
		return "", nil
	}
	return out + "\n", nil
}

func hasComments(trivia []token.Trivia) bool {
	for _, tr := range trivia {
		if tr.IsComment() {
			return true
		}
	}
	return false
}

func (p *printer) print() {
	for i := 0; i < len(p.toks) && p.err == nil; i++ {
		i = p.printToken(i)
	}
	if p.err == nil {
		p.leading(p.eof)
	}
}

// breakLine owes a line break; it is paid before the next token or
// own-line comment, so a trailing comment can still join the line.
func (p *printer) breakLine() {
	p.pendingLine = true
}

func (p *printer) flushLine() {
	if p.pendingLine {
		p.w.Newline()
		p.pendingLine = false
	}
}

// canBlank reports whether a preserved blank line may go here.
func (p *printer) canBlank() bool {
	if p.w.Empty() || p.last < 0 {
		return false
	}
	prev := p.toks[p.last]
	return !(prev.Kind == token.LBrace && !p.inline[p.last])
}

// leading prints comments from the trivia and returns how many line breaks
// separate the last of them from the token.
func (p *printer) leading(tok token.Token) int {
	nl := 0
	for _, tr := range tok.Leading {
		switch tr.Kind {
		case token.TriviaNewline:
			nl += len(tr.Text)
			continue
		case token.TriviaSpace:
			continue
		}
		trailing := nl == 0 && !p.w.Empty() && (p.pendingLine || !p.w.AtLineStart())
		if trailing && tr.Kind != token.TriviaDocComment {
			p.w.Space()
			p.w.WriteString(tr.Text)
			if tr.Kind == token.TriviaLineComment {
				p.breakLine()
			}
			continue
		}
		if !p.w.AtLineStart() {
			p.breakLine()
		}
		p.flushLine()
		if nl >= 2 && p.canBlank() {
			p.w.BlankLine()
		}
		text := tr.Text
		if tr.Kind == token.TriviaDocComment && p.opt.Comments != nil {
			out, err := p.opt.Comments(p.ctx, tr.Text, p.w.IndentString())
			if err != nil {
				p.err = err
				return 0
			}
			text = out
		}
		p.w.WriteString(text)
		p.breakLine()
		nl = 0
	}
	return nl
}

// printToken prints toks[i] and returns the index of the last token consumed.
func (p *printer) printToken(i int) int {
	tok := p.toks[i]
	nl := p.leading(tok)
	if p.err != nil {
		return i
	}

	boundary := p.pendingLine || p.w.AtLineStart()
	if tok.Kind == token.RBrace && !p.inline[i] {
		p.breakLine()
		p.flushLine()
		p.w.IndentPop()
		p.w.WriteString("}")
		p.last = i
		p.afterBlockClose(i)
		return i
	}
	p.flushLine()
	if boundary && nl >= 2 && p.canBlank() {
		p.w.BlankLine()
	}
	if p.last >= 0 && !p.w.AtLineStart() && p.spaceBetween(p.last, i) {
		p.w.Space()
	}

	switch tok.Kind {
	case token.LBrace:
		return p.openBrace(i)
	case token.RBrace: // inline
		p.inlineDepth--
		p.w.WriteString("}")
	case token.LBracket:
		if closeIdx, ok := p.match[i]; ok && isQuery(p.toks, i) {
			p.w.CopyRange(int(tok.Span.Start), int(p.toks[closeIdx].Span.End))
			p.last = closeIdx
			return closeIdx
		}
		p.w.WriteString(tok.Text)
	case token.LParen:
		p.parenDepth++
		p.w.WriteString("(")
	case token.RParen:
		p.parenDepth--
		p.w.WriteString(")")
		if p.annotArgs > 0 && p.parenDepth < p.annotArgs {
			p.annotArgs = 0
			p.endAnnotation()
		}
	case token.Semicolon:
		p.w.WriteString(";")
		if p.parenDepth == 0 && p.inlineDepth == 0 {
			p.breakLine()
		}
	case token.At:
		return p.annotation(i)
	default:
		p.w.WriteString(tok.Text)
	}
	p.last = i
	return i
}

func (p *printer) openBrace(i int) int {
	closeIdx := p.match[i]
	if p.inline[i] {
		if closeIdx == i+1 && !hasComments(p.toks[closeIdx].Leading) {
			p.w.WriteString("{}")
			p.last = closeIdx
			return closeIdx
		}
		p.inlineDepth++
		p.w.WriteString("{")
		p.last = i
		return i
	}
	if closeIdx == i+1 && !hasComments(p.toks[closeIdx].Leading) {
		p.w.WriteString("{}")
		p.last = closeIdx
		p.afterBlockClose(closeIdx)
		return closeIdx
	}
	p.w.WriteString("{")
	p.w.IndentPush()
	p.breakLine()
	p.last = i
	return i
}

// afterBlockClose decides what follows a block's '}'.
func (p *printer) afterBlockClose(closeIdx int) {
	if closeIdx+1 >= len(p.toks) {
		p.breakLine()
		return
	}
	next := p.toks[closeIdx+1]
	switch next.Kind {
	case token.KwElse, token.KwCatch, token.KwFinally:
		return
	case token.KwWhile:
		if open, ok := p.match[closeIdx]; ok && open > 0 && p.toks[open-1].Kind == token.KwDo {
			return
		}
	case token.Semicolon, token.RParen, token.Comma, token.Dot:
		return
	}
	p.breakLine()
}

// annotation prints '@Name' and, when it opened the line, ends the line
// after the name or its argument list.
func (p *printer) annotation(i int) int {
	p.annotLine = p.w.AtLineStart()
	p.w.WriteString("@")
	p.last = i
	if i+1 >= len(p.toks) {
		return i
	}
	name := p.toks[i+1]
	if name.Kind != token.Ident && !name.IsKeyword() {
		return i
	}
	p.w.WriteString(CanonicalAnnotation(name.Text))
	p.last = i + 1
	if i+2 < len(p.toks) && p.toks[i+2].Kind == token.LParen {
		p.annotArgs = p.parenDepth + 1
		return i + 1
	}
	p.endAnnotation()
	return i + 1
}

func (p *printer) endAnnotation() {
	if p.annotLine && p.parenDepth == 0 {
		p.breakLine()
	}
	p.annotLine = false
}

// isQuery reports whether the bracket opens an inline SOQL/SOSL query,
// which is copied verbatim.
func isQuery(toks []token.Token, i int) bool {
	if i+1 >= len(toks) || toks[i+1].Kind != token.Ident {
		return false
	}
	switch strings.ToUpper(toks[i+1].Text) {
	case "SELECT", "FIND":
		return true
	}
	return false
}
