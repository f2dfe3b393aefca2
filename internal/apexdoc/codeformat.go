package apexdoc

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"apexdoc/internal/diag"
	"apexdoc/internal/trace"
)

// bareAnnotationMax bounds the length of annotation-only payloads that
// skip the statement formatter.
const bareAnnotationMax = 50

var (
	bareAnnotation = regexp.MustCompile(`^@\w+\s*$`)
	declStart      = regexp.MustCompile(`^(@|(public|private|protected|static|final|global)\b)`)
)

// CacheKey identifies a code block within one document run.
func CacheKey(commentLen, tagOffset int) string {
	return fmt.Sprintf("%d-%d", commentLen, tagOffset)
}

// FormatCodeBlocks fills FormattedCode of every code block, one goroutine
// per block. Snippets the host rejects keep their raw text; only context
// cancellation is returned as an error.
func FormatCodeBlocks(ctx context.Context, fc *Context, toks []Token, commentLen int) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, tok := range toks {
		cb, ok := tok.(*CodeBlockToken)
		if !ok {
			continue
		}
		g.Go(func() error {
			return fc.formatBlock(gctx, cb, CacheKey(commentLen, fc.Offset+cb.StartPos))
		})
	}
	return g.Wait()
}

func (fc *Context) formatBlock(ctx context.Context, cb *CodeBlockToken, key string) error {
	ctx, sp := trace.Start(ctx, trace.ScopeBlock, fmt.Sprintf("@%d", fc.Offset+cb.StartPos))
	sp.WithExtra("key", key)
	if fc.Cache != nil {
		if v, ok := fc.Cache.CodeBlock(key); ok {
			cb.FormattedCode, cb.Formatted = v, true
			sp.Block("", trace.OutcomeCached).End("")
			return nil
		}
	}

	out, parser, err := fc.formatCode(ctx, cb.RawCode)
	if err != nil {
		sp.End("canceled")
		return err
	}
	cb.FormattedCode, cb.Formatted = out, true
	if fc.Cache != nil {
		fc.Cache.SetCodeBlock(key, out)
	}
	sp.Block(string(parser), blockOutcome(parser)).End("")
	return nil
}

func blockOutcome(p Parser) trace.Outcome {
	switch p {
	case parserAnnotation:
		return trace.OutcomeAnnotation
	case parserRaw:
		return trace.OutcomeUnformatted
	}
	return trace.OutcomeFormatted
}

// formatCode runs the fallback chain: anonymous snippet, then full
// declaration, then the raw text. It reports which parser succeeded.
func (fc *Context) formatCode(ctx context.Context, raw string) (string, Parser, error) {
	if raw == "" {
		return "", "", nil
	}
	if len(raw) < bareAnnotationMax && bareAnnotation.MatchString(raw) {
		name := strings.TrimSpace(raw)[1:]
		return "@" + fc.Host.CanonicalAnnotation(name), parserAnnotation, nil
	}

	opts := fc.Options
	opts.PrintWidth = max(1, opts.PrintWidth-displayWidth(fc.Indent+" * ", opts.TabWidth))

	var lastErr error
	for _, p := range []Parser{ParserAnonymous, ParserApex} {
		out, err := fc.Host.FormatCode(ctx, raw, p, opts)
		if err == nil {
			return spaceDeclarations(trimCode(out)), p, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", "", ctxErr
		}
		lastErr = err
	}
	fc.report(diag.FmtCodeBlockUnformatted, fmt.Sprintf("{@code} block left as written: %v", lastErr))
	return raw, parserRaw, nil
}

func trimCode(s string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t\r")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

// spaceDeclarations puts an empty line between a closing brace and a
// following annotation or modifier-led declaration.
func spaceDeclarations(code string) string {
	lines := strings.Split(code, "\n")
	out := make([]string, 0, len(lines))
	for i, l := range lines {
		out = append(out, l)
		if i+1 < len(lines) && strings.HasSuffix(strings.TrimSpace(l), "}") &&
			declStart.MatchString(strings.TrimLeft(lines[i+1], " \t")) {
			out = append(out, "")
		}
	}
	return strings.Join(out, "\n")
}
