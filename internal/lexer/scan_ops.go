package lexer

import (
	"apexdoc/internal/diag"
	"apexdoc/internal/token"
)

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
// '>' никогда не склеивается в '>>': закрытие вложенных generic-типов
// (List<List<String>>) должно остаться двумя токенами.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{
			Kind: k,
			Span: sp,
			Text: lx.cursor.Text(sp),
		}
	}

	switch {
	case lx.cursor.Match("==="):
		return emit(token.EqEqEq)
	case lx.cursor.Match("!=="):
		return emit(token.BangEqEq)
	case lx.cursor.Match("<<="):
		return emit(token.ShlAssign)
	case lx.cursor.Match("?."):
		return emit(token.QuestionDot)
	case lx.cursor.Match("??"):
		return emit(token.QuestionQ)
	case lx.cursor.Match("=>"):
		return emit(token.FatArrow)
	case lx.cursor.Match("&&"):
		return emit(token.AndAnd)
	case lx.cursor.Match("||"):
		return emit(token.OrOr)
	case lx.cursor.Match("=="):
		return emit(token.EqEq)
	case lx.cursor.Match("!="):
		return emit(token.BangEq)
	case lx.cursor.Match("<="):
		return emit(token.LtEq)
	case lx.cursor.Match(">="):
		return emit(token.GtEq)
	case lx.cursor.Match("<<"):
		return emit(token.Shl)
	case lx.cursor.Match("++"):
		return emit(token.PlusPlus)
	case lx.cursor.Match("--"):
		return emit(token.MinusMinus)
	case lx.cursor.Match("+="):
		return emit(token.PlusAssign)
	case lx.cursor.Match("-="):
		return emit(token.MinusAssign)
	case lx.cursor.Match("*="):
		return emit(token.StarAssign)
	case lx.cursor.Match("/="):
		return emit(token.SlashAssign)
	case lx.cursor.Match("%="):
		return emit(token.PercentAssign)
	case lx.cursor.Match("&="):
		return emit(token.AmpAssign)
	case lx.cursor.Match("|="):
		return emit(token.PipeAssign)
	case lx.cursor.Match("^="):
		return emit(token.CaretAssign)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '%':
		return emit(token.Percent)
	case '=':
		return emit(token.Assign)
	case '!':
		return emit(token.Bang)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case '&':
		return emit(token.Amp)
	case '|':
		return emit(token.Pipe)
	case '^':
		return emit(token.Caret)
	case '~':
		return emit(token.Tilde)
	case '?':
		return emit(token.Question)
	case ':':
		return emit(token.Colon)
	case ';':
		return emit(token.Semicolon)
	case ',':
		return emit(token.Comma)
	case '.':
		return emit(token.Dot)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case '@':
		return emit(token.At)
	}

	lx.cursor.Reset(start)
	return lx.scanUnknown()
}

// scanUnknown consumes one rune that starts no token and reports it.
func (lx *Lexer) scanUnknown() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.BumpRune()
	if lx.cursor.Off == uint32(start) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.Text(sp)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character "+text)
	return token.Token{Kind: token.Invalid, Span: sp, Text: text}
}
