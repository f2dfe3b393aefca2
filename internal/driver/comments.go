package driver

import (
	"context"
	"os"

	"apexdoc/internal/apexdoc"
	"apexdoc/internal/config"
	"apexdoc/internal/diag"
	"apexdoc/internal/plugin"
	"apexdoc/internal/source"
)

// TokenDump is the printable form of one apexdoc token.
type TokenDump struct {
	Kind          string   `json:"kind"`
	Name          string   `json:"name,omitempty"`
	Content       string   `json:"content,omitempty"`
	Lines         []string `json:"lines,omitempty"`
	FollowingText string   `json:"following_text,omitempty"`
	Code          string   `json:"code,omitempty"`
	StartPos      int      `json:"start,omitempty"`
	EndPos        int      `json:"end,omitempty"`
	BlankBefore   bool     `json:"blank_before,omitempty"`
	Continuation  bool     `json:"continuation,omitempty"`
}

// CommentDump describes one doc comment of a file.
type CommentDump struct {
	Line      uint32      `json:"line"`
	Column    uint32      `json:"column"`
	Indent    string      `json:"indent"`
	Tokens    []TokenDump `json:"tokens"`
	Formatted string      `json:"formatted"`
}

// DumpComments parses every doc comment in path and returns its tokens
// with code blocks formatted, plus the rendered replacement.
func DumpComments(ctx context.Context, path string, cfg config.Options, bag *diag.Bag) ([]CommentDump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	sf := fs.Get(fs.Add(path, data, 0))

	p, err := plugin.New(cfg, &diag.SyncReporter{Next: diag.BagReporter{Bag: bag}})
	if err != nil {
		return nil, err
	}
	comments, err := docComments(sf, bag)
	if err != nil {
		return nil, err
	}

	run := p.NewRun(sf.ID)
	defer run.Close()
	out := make([]CommentDump, 0, len(comments))
	for _, c := range comments {
		fc := run.Context(c)
		toks := apexdoc.Parse(c.Text, fc)
		if err := apexdoc.FormatCodeBlocks(ctx, fc, toks, len(c.Text)); err != nil {
			return nil, err
		}
		formatted, err := run.FormatComment(ctx, c)
		if err != nil {
			return nil, err
		}
		start, _ := fs.Resolve(fc.Span)
		out = append(out, CommentDump{
			Line:      start.Line,
			Column:    start.Col,
			Indent:    c.Indent,
			Tokens:    DumpTokens(toks),
			Formatted: formatted,
		})
	}
	return out, nil
}

// DumpTokens converts tokens to their printable form.
func DumpTokens(toks []apexdoc.Token) []TokenDump {
	out := make([]TokenDump, 0, len(toks))
	for _, tok := range toks {
		d := TokenDump{Kind: tok.Kind().String(), BlankBefore: tok.Blank()}
		switch v := tok.(type) {
		case *apexdoc.TextToken:
			d.Content, d.Lines = v.Content, v.Lines
		case *apexdoc.ParagraphToken:
			d.Content, d.Lines, d.Continuation = v.Content, v.Lines, v.IsContinuation
		case *apexdoc.AnnotationToken:
			d.Name, d.Content, d.FollowingText = v.Name, v.Content, v.FollowingText
		case *apexdoc.CodeBlockToken:
			d.Content, d.Code = v.RawCode, v.Code()
			d.StartPos, d.EndPos = v.StartPos, v.EndPos
		}
		out = append(out, d)
	}
	return out
}
