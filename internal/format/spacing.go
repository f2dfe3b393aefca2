package format

import (
	"strings"

	"apexdoc/internal/token"
)

// operandEnd reports whether a token can end an operand, which makes a
// following '+', '-', '++' or '--' binary or postfix.
func operandEnd(t token.Token) bool {
	switch t.Kind {
	case token.Ident, token.IntLit, token.LongLit, token.DecimalLit, token.StringLit,
		token.RParen, token.RBracket, token.KwThis, token.KwSuper, token.KwNull,
		token.KwTrue, token.KwFalse:
		return true
	}
	return false
}

// markGenerics finds '<' ... '>' runs that only contain type names.
func markGenerics(toks []token.Token) map[int]bool {
	out := make(map[int]bool)
	for i, tok := range toks {
		if tok.Kind != token.Lt || i == 0 || toks[i-1].Kind != token.Ident || out[i] {
			continue
		}
		depth := 0
		var brackets []int
		ok := false
	scan:
		for j := i; j < len(toks); j++ {
			switch toks[j].Kind {
			case token.Lt:
				depth++
				brackets = append(brackets, j)
			case token.Gt:
				depth--
				brackets = append(brackets, j)
				if depth == 0 {
					ok = true
					break scan
				}
			case token.Ident, token.Comma, token.Dot, token.LBracket, token.RBracket:
			default:
				if toks[j].IsKeyword() && toks[j].Kind != token.KwNew {
					continue
				}
				break scan
			}
		}
		if ok {
			for _, j := range brackets {
				out[j] = true
			}
		}
	}
	return out
}

var accessorWords = map[string]bool{"get": true, "set": true}

// markInlineBraces finds braces printed on one line: collection
// initializers after '>' or ']', and property accessor lists.
func markInlineBraces(toks []token.Token, st structure) map[int]bool {
	out := make(map[int]bool)
	for i, tok := range toks {
		if tok.Kind != token.LBrace {
			continue
		}
		closeIdx := st.match[i]
		inline := false
		if i > 0 && (toks[i-1].Kind == token.Gt || toks[i-1].Kind == token.RBracket) {
			inline = true
		} else if closeIdx > i+1 {
			inline = true
			for _, inner := range toks[i+1 : closeIdx] {
				if inner.Kind == token.Semicolon || inner.IsModifier() {
					continue
				}
				if inner.Kind == token.Ident && accessorWords[strings.ToLower(inner.Text)] {
					continue
				}
				inline = false
				break
			}
		}
		if inline {
			out[i] = true
			out[closeIdx] = true
		}
	}
	return out
}

var spacedBeforeParen = map[token.Kind]bool{
	token.KwIf: true, token.KwFor: true, token.KwWhile: true, token.KwCatch: true,
	token.KwReturn: true, token.KwThrow: true, token.KwSwitch: true,
}

// spaceBetween decides whether a space separates two adjacent tokens on
// one line.
func (p *printer) spaceBetween(pi, ci int) bool {
	prev, cur := p.toks[pi], p.toks[ci]

	switch prev.Kind {
	case token.LParen, token.LBracket, token.Dot, token.QuestionDot, token.At, token.Bang, token.Tilde:
		return false
	case token.Plus, token.Minus, token.PlusPlus, token.MinusMinus:
		if p.unary[pi] {
			return false
		}
	case token.Lt:
		if p.generic[pi] {
			return false
		}
	case token.LBrace:
		return true
	}

	switch cur.Kind {
	case token.RParen, token.RBracket, token.Comma, token.Semicolon, token.Dot, token.QuestionDot:
		return false
	case token.PlusPlus, token.MinusMinus:
		if !p.unary[ci] {
			return false
		}
	case token.Lt, token.Gt:
		if p.generic[ci] {
			return false
		}
	case token.LBracket:
		if operandEnd(prev) || (prev.Kind == token.Gt && p.generic[pi]) {
			return false
		}
	case token.LParen:
		if prev.Kind == token.Ident || prev.Kind == token.KwThis || prev.Kind == token.KwSuper ||
			(prev.Kind == token.Gt && p.generic[pi]) {
			return false
		}
		if spaced, ok := spacedBeforeParen[prev.Kind]; ok {
			return spaced
		}
	case token.LBrace:
		if p.inline[ci] && (prev.Kind == token.Gt || prev.Kind == token.RBracket) {
			return false
		}
	}

	if p.annotArgs > 0 && (prev.Kind == token.Assign || cur.Kind == token.Assign) {
		return false
	}
	if prev.Kind == token.Gt && p.generic[pi] {
		return cur.Kind == token.Ident || cur.IsKeyword()
	}
	return true
}

// markUnary classifies '+', '-', '++' and '--' as prefix operators.
func markUnary(toks []token.Token) map[int]bool {
	out := make(map[int]bool)
	for i, tok := range toks {
		switch tok.Kind {
		case token.Plus, token.Minus, token.PlusPlus, token.MinusMinus:
			if i == 0 || !operandEnd(toks[i-1]) {
				out[i] = true
			}
		}
	}
	return out
}
