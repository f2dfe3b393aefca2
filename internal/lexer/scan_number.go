package lexer

import (
	"apexdoc/internal/diag"
	"apexdoc/internal/token"
)

// Поддержка: 0, 123, 10L, 1.5, .5, 1e3, 1.0e-10.
// Неверные формы - репорт в opts.Reporter, токен по возможности завершаем.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		kind = token.DecimalLit
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		// "1.5" - дробь; "list.size" после цифры не бывает, но "1.foo" оставляем точке
		if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
			lx.cursor.Bump()
			kind = token.DecimalLit
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.DecimalLit
		lx.cursor.Bump()
		if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.Text(sp)}
		}
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	switch lx.cursor.Peek() {
	case 'l', 'L':
		if kind == token.IntLit {
			lx.cursor.Bump()
			kind = token.LongLit
		}
	case 'd', 'D':
		lx.cursor.Bump()
		kind = token.DecimalLit
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.cursor.Text(sp)}
}
