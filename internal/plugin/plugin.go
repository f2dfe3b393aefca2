// Package plugin binds the ApexDoc comment pipeline to the Apex snippet
// formatter. The formatter calls back into the pipeline for every doc
// comment it prints, and the pipeline calls the formatter for every
// {@code} block; the binding lives here so neither package imports the
// other.
package plugin

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"apexdoc/internal/apexdoc"
	"apexdoc/internal/config"
	"apexdoc/internal/diag"
	"apexdoc/internal/format"
	"apexdoc/internal/source"
)

// Plugin is the formatting instance threaded through recursive calls.
// It holds no per-document state and is safe for concurrent use.
type Plugin struct {
	opts     config.Options
	reporter diag.Reporter
}

// New validates opts and returns a Plugin. rep may be nil; when set it
// must be goroutine-safe.
func New(opts config.Options, rep diag.Reporter) (*Plugin, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("plugin: %w", err)
	}
	return &Plugin{opts: opts, reporter: rep}, nil
}

func (p *Plugin) Options() config.Options { return p.opts }

// FormatCode implements apexdoc.Host.
func (p *Plugin) FormatCode(ctx context.Context, code string, parser apexdoc.Parser, opts config.Options) (string, error) {
	return format.FormatSource(ctx, code, format.Options{
		Parser:   format.Parser(parser),
		Config:   opts,
		Comments: p.hook(opts),
	})
}

// CanonicalAnnotation implements apexdoc.Host.
func (p *Plugin) CanonicalAnnotation(name string) string {
	return format.CanonicalAnnotation(name)
}

// hook formats doc comments nested in code the formatter prints. Nested
// comments bypass the run cache: their offsets belong to the snippet.
func (p *Plugin) hook(opts config.Options) format.CommentHook {
	return func(ctx context.Context, comment, indent string) (string, error) {
		return apexdoc.FormatComment(ctx, comment, &apexdoc.Context{
			Options:  opts,
			Indent:   indent,
			Host:     p,
			Reporter: p.reporter,
		})
	}
}

// FormatScript formats a whole Apex source with the host formatter, doc
// comments included.
func (p *Plugin) FormatScript(ctx context.Context, src string, parser apexdoc.Parser) (string, error) {
	return p.FormatCode(ctx, src, parser, p.opts)
}

// Run is one document-formatting pass. Its code-block cache hands results
// from Prepare to FormatComment and must not outlive the document.
type Run struct {
	p     *Plugin
	cache *apexdoc.MemoryCache
	file  source.FileID
}

// NewRun starts a run for the document identified by file.
func (p *Plugin) NewRun(file source.FileID) *Run {
	return &Run{p: p, cache: apexdoc.NewMemoryCache(), file: file}
}

// Comment locates one doc comment in the run's document.
type Comment struct {
	Text   string
	Indent string
	Offset int
}

// Context builds the formatting context for c within this run.
func (r *Run) Context(c Comment) *apexdoc.Context {
	return &apexdoc.Context{
		Options:  r.p.opts,
		Indent:   c.Indent,
		Host:     r.p,
		Cache:    r.cache,
		Reporter: r.p.reporter,
		Span:     r.span(c),
		Offset:   c.Offset,
	}
}

func (r *Run) span(c Comment) source.Span {
	start, err := safecast.Conv[uint32](c.Offset)
	if err != nil {
		return source.Span{File: r.file}
	}
	end, err := safecast.Conv[uint32](c.Offset + len(c.Text))
	if err != nil {
		return source.Span{File: r.file, Start: start, End: start}
	}
	return source.Span{File: r.file, Start: start, End: end}
}

// Prepare formats the comment's code blocks into the run cache.
func (r *Run) Prepare(ctx context.Context, c Comment) error {
	return apexdoc.Prepare(ctx, c.Text, r.Context(c))
}

// FormatComment returns the replacement text for c.
func (r *Run) FormatComment(ctx context.Context, c Comment) (string, error) {
	return apexdoc.FormatComment(ctx, c.Text, r.Context(c))
}

// Cached reports how many code blocks the run has formatted so far.
func (r *Run) Cached() int { return r.cache.Len() }

// Close drops the run cache.
func (r *Run) Close() { r.cache.Reset() }
