package apexdoc

import (
	"context"
	"sync"

	"apexdoc/internal/config"
	"apexdoc/internal/diag"
	"apexdoc/internal/source"
)

// Parser names the host grammar entry point used for a snippet.
type Parser string

const (
	// ParserAnonymous parses statement and member lists.
	ParserAnonymous Parser = "anonymous"
	// ParserApex parses complete type declarations.
	ParserApex Parser = "apex"

	// Not host parsers: how formatCode settled a block without one.
	parserAnnotation Parser = "annotation"
	parserRaw        Parser = "raw"
)

// Host is the formatter that owns the Apex grammar. FormatCode must be
// safe for concurrent use; a non-nil error means the snippet did not
// parse with the given parser.
type Host interface {
	FormatCode(ctx context.Context, code string, parser Parser, opts config.Options) (string, error)
	CanonicalAnnotation(name string) string
}

// Cache hands formatted code blocks from the embedding pre-pass to the
// final printing pass of one document run.
type Cache interface {
	CodeBlock(key string) (string, bool)
	SetCodeBlock(key, value string)
}

// MemoryCache is a write-once, goroutine-safe Cache. Create one per run.
type MemoryCache struct {
	mu sync.Mutex
	m  map[string]string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{m: make(map[string]string)}
}

func (c *MemoryCache) CodeBlock(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[key]
	return v, ok
}

// SetCodeBlock stores value unless key already has one.
func (c *MemoryCache) SetCodeBlock(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.m[key]; !ok {
		c.m[key] = value
	}
}

func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}

// Reset drops every entry; the next run starts empty.
func (c *MemoryCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.m)
}

// Context carries everything one comment needs besides its text. It is
// passed explicitly; the package keeps no global state.
type Context struct {
	Options config.Options
	// Indent is the whitespace that precedes "/**" on its line.
	Indent string
	Host   Host
	// Cache may be nil, then every block is formatted on demand.
	Cache Cache
	// Reporter receives warnings for blocks left unformatted. Blocks are
	// formatted concurrently, so it must be goroutine-safe.
	Reporter diag.Reporter
	// Span locates the comment in its file, for diagnostics.
	Span source.Span
	// Offset is the comment's byte offset in its document; it makes
	// cache keys unique across comments.
	Offset     int
	Classifier LineClassifier
}

func (fc *Context) classifier() LineClassifier {
	if fc.Classifier == nil {
		return DefaultClassifier
	}
	return fc.Classifier
}

func (fc *Context) report(code diag.Code, msg string) {
	if fc.Reporter == nil {
		return
	}
	fc.Reporter.Report(code, diag.SevWarning, fc.Span, msg, nil)
}
