package apexdoc

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"apexdoc/internal/trace"
)

// ErrNoHost is returned when a Context has no Host to format code with.
var ErrNoHost = errors.New("apexdoc: no host formatter")

// Parse runs the synchronous front half of the pipeline: normalization,
// tokenization, annotation detection and normalization.
func Parse(comment string, fc *Context) []Token {
	body := Body(Normalize(comment, fc.Indent))
	toks := Tokenize(body)
	toks = DetectAnnotations(toks, fc.classifier())
	NormalizeAnnotations(toks)
	return toks
}

func (fc *Context) check() error {
	if fc == nil || fc.Host == nil {
		return ErrNoHost
	}
	if err := fc.Options.Validate(); err != nil {
		return fmt.Errorf("apexdoc: %w", err)
	}
	return nil
}

// FormatComment rewrites one "/** ... */" comment. Malformed content never
// fails; errors mean invalid options, a missing host or cancellation.
func FormatComment(ctx context.Context, comment string, fc *Context) (string, error) {
	if err := fc.check(); err != nil {
		return "", err
	}
	if isSingleLine(comment) {
		return normalizeSingleLine(comment), nil
	}

	ctx, sp := trace.Start(ctx, trace.ScopeComment, "comment")
	sp.WithExtra("offset", strconv.Itoa(fc.Offset))

	toks := Parse(comment, fc)
	if err := FormatCodeBlocks(ctx, fc, toks, len(comment)); err != nil {
		sp.End("canceled")
		return "", err
	}
	out := Render(toks, fc.Options, fc.Indent)
	sp.WithExtra("tokens", strconv.Itoa(len(toks))).End("")
	return out, nil
}

// Prepare is the embedding pre-pass: it formats the comment's code blocks
// into fc.Cache without rendering, so the final pass only reads results.
func Prepare(ctx context.Context, comment string, fc *Context) error {
	if err := fc.check(); err != nil {
		return err
	}
	if isSingleLine(comment) || fc.Cache == nil {
		return nil
	}
	return FormatCodeBlocks(ctx, fc, Parse(comment, fc), len(comment))
}
