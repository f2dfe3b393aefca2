package format

import (
	"context"

	"apexdoc/internal/config"
)

// Parser names a grammar entry point.
type Parser string

const (
	// ParserAnonymous accepts a list of statements and member declarations.
	ParserAnonymous Parser = "anonymous"
	// ParserApex accepts only complete type declarations.
	ParserApex Parser = "apex"
)

// CommentHook rewrites one "/** ... */" comment printed at the given
// indentation. The returned text replaces the comment verbatim.
type CommentHook func(ctx context.Context, comment, indent string) (string, error)

type Options struct {
	Parser   Parser
	Config   config.Options
	Comments CommentHook
}

func (o Options) withDefaults() Options {
	if o.Parser == "" {
		o.Parser = ParserAnonymous
	}
	if o.Config.TabWidth <= 0 {
		o.Config.TabWidth = config.DefaultTabWidth
	}
	if o.Config.PrintWidth <= 0 {
		o.Config.PrintWidth = config.DefaultPrintWidth
	}
	return o
}
