package token

import (
	"apexdoc/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, null, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, LongLit, DecimalLit, StringLit, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is an Apex keyword.
func (t Token) IsKeyword() bool {
	return t.Kind > keywordsBegin && t.Kind < keywordsEnd
}

// IsModifier reports whether the token is an access or declaration modifier.
func (t Token) IsModifier() bool {
	switch t.Kind {
	case KwPublic, KwPrivate, KwProtected, KwGlobal, KwStatic, KwFinal, KwAbstract,
		KwVirtual, KwOverride, KwTransient, KwTestMethod, KwWebService:
		return true
	default:
		return false
	}
}

// IsAssignOp reports whether the token is '=' or a compound assignment.
func (t Token) IsAssignOp() bool {
	switch t.Kind {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign, PercentAssign,
		AmpAssign, PipeAssign, CaretAssign, ShlAssign:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// NewlinesBefore counts line breaks in the leading trivia.
func (t Token) NewlinesBefore() int {
	n := 0
	for _, tr := range t.Leading {
		if tr.Kind == TriviaNewline {
			n += len(tr.Text)
		}
	}
	return n
}
