package driver

import (
	"context"
	"errors"
	"fmt"

	"apexdoc/internal/diag"
	"apexdoc/internal/format"
	"apexdoc/internal/lexer"
	"apexdoc/internal/plugin"
	"apexdoc/internal/source"
	"apexdoc/internal/token"
	"apexdoc/internal/trace"
)

// ErrLex is returned when a file does not lex; nothing is rewritten.
var ErrLex = errors.New("format: lex errors present")

// docComments lexes sf and returns its doc comments in source order.
func docComments(sf *source.File, bag *diag.Bag) ([]plugin.Comment, error) {
	lx := lexer.New(sf, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	toks := lx.All()
	if bag.HasErrors() {
		return nil, ErrLex
	}
	var out []plugin.Comment
	for _, tok := range toks {
		for _, tr := range tok.Leading {
			if tr.Kind != token.TriviaDocComment {
				continue
			}
			start := int(tr.Span.Start)
			out = append(out, plugin.Comment{
				Text:   tr.Text,
				Indent: lineIndent(sf.Content, start),
				Offset: start,
			})
		}
	}
	return out, nil
}

// lineIndent returns the leading whitespace of the line holding off.
func lineIndent(content []byte, off int) string {
	start := off
	for start > 0 && content[start-1] != '\n' {
		start--
	}
	end := start
	for end < off && (content[end] == ' ' || content[end] == '\t') {
		end++
	}
	return string(content[start:end])
}

// FormatComments rewrites every doc comment of sf and leaves all other
// bytes untouched. The embedding pre-pass fills the run cache with every
// code block; the final pass renders comments from it.
func FormatComments(ctx context.Context, p *plugin.Plugin, sf *source.File, bag *diag.Bag) ([]byte, int, error) {
	comments, err := docComments(sf, bag)
	if err != nil {
		return nil, 0, err
	}
	if len(comments) == 0 {
		return append([]byte(nil), sf.Content...), 0, nil
	}

	ctx, sp := trace.Start(ctx, trace.ScopeFile, sf.Path)
	defer sp.End("")

	run := p.NewRun(sf.ID)
	defer run.Close()

	for _, c := range comments {
		if err := run.Prepare(ctx, c); err != nil {
			return nil, 0, err
		}
	}
	edits := make([]format.Edit, 0, len(comments))
	for _, c := range comments {
		out, err := run.FormatComment(ctx, c)
		if err != nil {
			return nil, 0, fmt.Errorf("%s:%d: %w", sf.Path, c.Offset, err)
		}
		edits = append(edits, format.Edit{Start: c.Offset, End: c.Offset + len(c.Text), Data: []byte(out)})
	}
	sp.WithExtra("comments", fmt.Sprint(len(comments))).WithExtra("blocks", fmt.Sprint(run.Cached()))
	return format.ApplyEdits(sf.Content, edits), len(comments), nil
}

// FormatWhole formats the entire file with the host formatter; doc
// comments go through the comment pipeline on the way.
func FormatWhole(ctx context.Context, p *plugin.Plugin, sf *source.File) ([]byte, error) {
	out, err := p.FormatScript(ctx, string(sf.Content), parserFor(sf.Path))
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
