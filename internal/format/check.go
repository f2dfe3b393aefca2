package format

import (
	"fmt"
	"strings"

	"apexdoc/internal/diag"
	"apexdoc/internal/source"
	"apexdoc/internal/token"
)

// SyntaxError is returned when a snippet does not fit the requested entry point.
type SyntaxError struct {
	Code   diag.Code
	Span   source.Span
	Parser Parser
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s parser: %s", e.Code.ID(), e.Parser, e.Msg)
}

// structure is what the checker learns about a token slice: matching
// brackets by index.
type structure struct {
	match map[int]int
}

func syntaxErr(p Parser, code diag.Code, tok token.Token, format string, args ...any) *SyntaxError {
	return &SyntaxError{Code: code, Span: tok.Span, Parser: p, Msg: fmt.Sprintf(format, args...)}
}

func closerFor(k token.Kind) token.Kind {
	switch k {
	case token.LParen:
		return token.RParen
	case token.LBracket:
		return token.RBracket
	default:
		return token.RBrace
	}
}

func unclosedCode(k token.Kind) diag.Code {
	switch k {
	case token.LParen:
		return diag.SynUnclosedParen
	case token.LBracket:
		return diag.SynUnclosedBracket
	default:
		return diag.SynUnclosedBrace
	}
}

// balance matches (), [] and {} pairs.
func balance(p Parser, toks []token.Token) (structure, *SyntaxError) {
	st := structure{match: make(map[int]int)}
	var stack []int
	for i, tok := range toks {
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			stack = append(stack, i)
		case token.RParen, token.RBracket, token.RBrace:
			if len(stack) == 0 {
				return st, syntaxErr(p, diag.SynUnexpectedCloser, tok, "unexpected %q", tok.Text)
			}
			open := stack[len(stack)-1]
			if closerFor(toks[open].Kind) != tok.Kind {
				return st, syntaxErr(p, diag.SynUnexpectedCloser, tok, "%q does not close %q", tok.Text, toks[open].Text)
			}
			stack = stack[:len(stack)-1]
			st.match[open] = i
			st.match[i] = open
		}
	}
	if len(stack) > 0 {
		open := toks[stack[len(stack)-1]]
		return st, syntaxErr(p, unclosedCode(open.Kind), open, "unclosed %q", open.Text)
	}
	return st, nil
}

func isTypeKeyword(k token.Kind) bool {
	return k == token.KwClass || k == token.KwInterface || k == token.KwEnum || k == token.KwTrigger
}

// checkAnonymous accepts statements and member declarations: every
// top-level construct ends in ';' or '}', and no type declaration appears
// at depth 0.
func checkAnonymous(toks []token.Token, st structure) *SyntaxError {
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		if isTypeKeyword(tok.Kind) {
			return syntaxErr(ParserAnonymous, diag.SynUnexpectedToken, tok, "type declaration is not allowed here")
		}
		if closeIdx, ok := st.match[i]; ok && closeIdx > i {
			i = closeIdx
		}
	}
	last := toks[len(toks)-1]
	if last.Kind != token.Semicolon && last.Kind != token.RBrace {
		return syntaxErr(ParserAnonymous, diag.SynExpectSemicolon, last, "expected ';' after %q", last.Text)
	}
	return nil
}

var sharingWords = map[string]bool{"with": true, "without": true, "inherited": true, "sharing": true}

// checkApex accepts a sequence of complete type declarations.
func checkApex(toks []token.Token, st structure) *SyntaxError {
	i := 0
	for i < len(toks) {
		// annotations and modifiers
		for i < len(toks) {
			tok := toks[i]
			if tok.Kind == token.At && i+1 < len(toks) {
				i += 2
				if i < len(toks) && toks[i].Kind == token.LParen {
					i = st.match[i] + 1
				}
				continue
			}
			if tok.IsModifier() || (tok.Kind == token.Ident && sharingWords[strings.ToLower(tok.Text)]) {
				i++
				continue
			}
			break
		}
		if i >= len(toks) || !isTypeKeyword(toks[i].Kind) {
			at := toks[len(toks)-1]
			if i < len(toks) {
				at = toks[i]
			}
			return syntaxErr(ParserApex, diag.SynExpectTypeDecl, at, "expected class, interface, enum or trigger")
		}
		for i < len(toks) && toks[i].Kind != token.LBrace {
			switch toks[i].Kind {
			case token.Semicolon, token.RBrace:
				return syntaxErr(ParserApex, diag.SynUnexpectedToken, toks[i], "unexpected %q in type header", toks[i].Text)
			case token.LParen, token.LBracket:
				i = st.match[i]
			}
			i++
		}
		if i >= len(toks) {
			return syntaxErr(ParserApex, diag.SynExpectTypeDecl, toks[len(toks)-1], "missing type body")
		}
		i = st.match[i] + 1
	}
	return nil
}
