package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"apexdoc/internal/diag"
	"apexdoc/internal/lexer"
	"apexdoc/internal/source"
	"apexdoc/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

// Report реализует интерфейс diag.Reporter
func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

// HasErrors возвращает true, если были зарегистрированы ошибки
func (r *testReporter) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

// ErrorCount возвращает количество ошибок
func (r *testReporter) ErrorCount() int {
	count := 0
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			count++
		}
	}
	return count
}

// ErrorMessages возвращает список сообщений об ошибках (для обратной совместимости с тестами)
func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cls", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{diagnostics: make([]diag.Diagnostic, 0)}
	opts := lexer.Options{Reporter: reporter}
	lx := lexer.New(file, opts)

	return lx, reporter
}

// collectAllTokens собирает все токены до EOF
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

// expectTokens проверяет последовательность токенов
func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)

	// убираем EOF из сравнения
	if len(tokens) > 0 && tokens[len(tokens)-1].Kind == token.EOF {
		tokens = tokens[:len(tokens)-1]
	}

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %v\nErrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.ErrorMessages())
	}

	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("Token %d: expected %v, got %v (text: %q)",
				i, expected[i], tok.Kind, tok.Text)
		}
	}
}

// expectSingleToken проверяет, что вход создаёт ровно один токен
func expectSingleToken(t *testing.T, input string, expectedKind token.Kind, expectedText string) {
	t.Helper()
	lx, _ := makeTestLexer(input)
	tok := lx.Next()

	if tok.Kind != expectedKind {
		t.Errorf("Expected kind %v, got %v", expectedKind, tok.Kind)
	}
	if tok.Text != expectedText {
		t.Errorf("Expected text %q, got %q", expectedText, tok.Text)
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ====== Тесты для scan_ident.go ======

func TestIdentifiers_ASCII(t *testing.T) {
	tests := []string{"foo", "Account", "my_var", "_private", "x1", "SObject"}
	for _, in := range tests {
		expectSingleToken(t, in, token.Ident, in)
	}
}

func TestKeywords_CaseInsensitive(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"public", token.KwPublic},
		{"PUBLIC", token.KwPublic},
		{"Public", token.KwPublic},
		{"testMethod", token.KwTestMethod},
		{"WebService", token.KwWebService},
		{"instanceOf", token.KwInstanceof},
		{"null", token.KwNull},
		{"TRUE", token.KwTrue},
	}
	for _, tt := range tests {
		// Text остаётся исходным, регистр не меняем
		expectSingleToken(t, tt.input, tt.kind, tt.input)
	}
}

func TestContextualWordsAreIdents(t *testing.T) {
	for _, in := range []string{"with", "sharing", "get", "set", "List", "Map"} {
		expectSingleToken(t, in, token.Ident, in)
	}
}

// ====== Тесты для scan_number.go ======

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"0", token.IntLit},
		{"42", token.IntLit},
		{"10L", token.LongLit},
		{"10l", token.LongLit},
		{"1.5", token.DecimalLit},
		{".5", token.DecimalLit},
		{"1e3", token.DecimalLit},
		{"2.5E-4", token.DecimalLit},
		{"3d", token.DecimalLit},
	}
	for _, tt := range tests {
		expectSingleToken(t, tt.input, tt.kind, tt.input)
	}
}

func TestNumbers_DotMethodCall(t *testing.T) {
	// "1.foo" - число, точка, идентификатор
	expectTokens(t, "1.foo", []token.Kind{token.IntLit, token.Dot, token.Ident})
}

func TestNumbers_InvalidExponent(t *testing.T) {
	lx, reporter := makeTestLexer("1e+")
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Errorf("Expected Invalid, got %v", tok.Kind)
	}
	if reporter.ErrorCount() != 1 {
		t.Errorf("Expected 1 error, got %v", reporter.ErrorMessages())
	}
}

// ====== Тесты для scan_string.go ======

func TestString_Simple(t *testing.T) {
	expectSingleToken(t, "'hello'", token.StringLit, "'hello'")
	expectSingleToken(t, "''", token.StringLit, "''")
}

func TestString_Escapes(t *testing.T) {
	expectSingleToken(t, `'it\'s'`, token.StringLit, `'it\'s'`)
	expectSingleToken(t, `'a\\'`, token.StringLit, `'a\\'`)
}

func TestString_DoubleQuoteIsNotString(t *testing.T) {
	lx, reporter := makeTestLexer(`"x"`)
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Errorf("Expected Invalid for '\"', got %v", tok.Kind)
	}
	if !reporter.HasErrors() {
		t.Error("Expected unknown character error")
	}
}

func TestString_Unterminated(t *testing.T) {
	lx, reporter := makeTestLexer("'abc")
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Errorf("Expected Invalid, got %v", tok.Kind)
	}
	if reporter.ErrorCount() != 1 {
		t.Fatalf("Expected 1 error, got %v", reporter.ErrorMessages())
	}
	if reporter.diagnostics[0].Code != diag.LexUnterminatedString {
		t.Errorf("Expected LexUnterminatedString, got %v", reporter.diagnostics[0].Code)
	}
}

func TestString_NewlineInString(t *testing.T) {
	lx, reporter := makeTestLexer("'abc\ndef'")
	_ = collectAllTokens(lx)
	if !reporter.HasErrors() {
		t.Error("Expected error for newline in string literal")
	}
}

// ====== Тесты для scan_ops.go ======

func TestOperators_Single(t *testing.T) {
	expectTokens(t, "+ - * / % = ! < > & | ^ ~ ? : ; , . ( ) { } [ ] @", []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent, token.Assign,
		token.Bang, token.Lt, token.Gt, token.Amp, token.Pipe, token.Caret, token.Tilde,
		token.Question, token.Colon, token.Semicolon, token.Comma, token.Dot,
		token.LParen, token.RParen, token.LBrace, token.RBrace, token.LBracket, token.RBracket,
		token.At,
	})
}

func TestOperators_Multi(t *testing.T) {
	expectTokens(t, "=== !== <<= ?. ?? => && || == != <= >= << ++ -- += -= *= /= %= &= |= ^=", []token.Kind{
		token.EqEqEq, token.BangEqEq, token.ShlAssign, token.QuestionDot, token.QuestionQ,
		token.FatArrow, token.AndAnd, token.OrOr, token.EqEq, token.BangEq, token.LtEq,
		token.GtEq, token.Shl, token.PlusPlus, token.MinusMinus, token.PlusAssign,
		token.MinusAssign, token.StarAssign, token.SlashAssign, token.PercentAssign,
		token.AmpAssign, token.PipeAssign, token.CaretAssign,
	})
}

func TestOperators_NestedGenericsNotShifted(t *testing.T) {
	expectTokens(t, "Map<Id, List<Account>>", []token.Kind{
		token.Ident, token.Lt, token.Ident, token.Comma, token.Ident, token.Lt,
		token.Ident, token.Gt, token.Gt,
	})
}

func TestOperators_SafeNavigation(t *testing.T) {
	expectTokens(t, "a?.b ?? c", []token.Kind{
		token.Ident, token.QuestionDot, token.Ident, token.QuestionQ, token.Ident,
	})
}

// ====== Тесты для trivia.go ======

func TestTrivia_Spaces(t *testing.T) {
	lx, _ := makeTestLexer("  \t  foo")
	tok := lx.Next()

	if tok.Kind != token.Ident {
		t.Fatalf("Expected Ident, got %v", tok.Kind)
	}
	if len(tok.Leading) != 1 {
		t.Fatalf("Expected 1 leading trivia, got %d", len(tok.Leading))
	}
	if tok.Leading[0].Kind != token.TriviaSpace {
		t.Errorf("Expected TriviaSpace, got %v", tok.Leading[0].Kind)
	}
}

func TestTrivia_Newlines(t *testing.T) {
	lx, _ := makeTestLexer("\n\n\nfoo")
	tok := lx.Next()

	if len(tok.Leading) != 1 {
		t.Fatalf("Expected 1 leading trivia (coalesced newlines), got %d", len(tok.Leading))
	}
	if tok.NewlinesBefore() != 3 {
		t.Errorf("Expected 3 newlines, got %d", tok.NewlinesBefore())
	}
}

func TestTrivia_LineComment(t *testing.T) {
	lx, _ := makeTestLexer("// this is a comment\nfoo")
	tok := lx.Next()

	if len(tok.Leading) != 2 {
		t.Fatalf("Expected 2 leading trivia, got %d", len(tok.Leading))
	}
	if tok.Leading[0].Kind != token.TriviaLineComment {
		t.Errorf("Expected TriviaLineComment, got %v", tok.Leading[0].Kind)
	}
	if tok.Leading[1].Kind != token.TriviaNewline {
		t.Errorf("Expected TriviaNewline, got %v", tok.Leading[1].Kind)
	}
}

func TestTrivia_DocComment(t *testing.T) {
	src := "/**\n * Returns the id.\n */\npublic Id getId() {}"
	lx, _ := makeTestLexer(src)
	tok := lx.Next()

	if tok.Kind != token.KwPublic {
		t.Fatalf("Expected KwPublic, got %v", tok.Kind)
	}
	if len(tok.Leading) != 2 {
		t.Fatalf("Expected 2 leading trivia, got %d", len(tok.Leading))
	}
	doc := tok.Leading[0]
	if doc.Kind != token.TriviaDocComment {
		t.Errorf("Expected TriviaDocComment, got %v", doc.Kind)
	}
	if doc.Text != "/**\n * Returns the id.\n */" {
		t.Errorf("unexpected doc text %q", doc.Text)
	}
	if doc.Span.Start != 0 || int(doc.Span.End) != len(doc.Text) {
		t.Errorf("unexpected doc span %v", doc.Span)
	}
}

func TestTrivia_EmptyBlockIsNotDoc(t *testing.T) {
	for _, in := range []string{"/**/foo", "/* x */foo"} {
		lx, _ := makeTestLexer(in)
		tok := lx.Next()
		if len(tok.Leading) != 1 || tok.Leading[0].Kind != token.TriviaBlockComment {
			t.Errorf("%q: expected a single TriviaBlockComment, got %+v", in, tok.Leading)
		}
	}
}

func TestTrivia_BlockCommentNotNested(t *testing.T) {
	// Apex не поддерживает вложенные комментарии: первый */ закрывает
	expectTokens(t, "/* a /* b */ x", []token.Kind{token.Ident})
}

func TestTrivia_UnterminatedBlockComment(t *testing.T) {
	lx, reporter := makeTestLexer("/* unterminated\nfoo")
	tok := lx.Next()

	if tok.Kind != token.EOF {
		t.Errorf("Expected EOF after unterminated block comment consuming all input, got %v", tok.Kind)
	}
	if !reporter.HasErrors() {
		t.Error("Expected error report for unterminated block comment")
	}
}

func TestTrivia_TrailingCommentAttachedToEOF(t *testing.T) {
	lx, _ := makeTestLexer("foo\n/** tail */\n")
	toks := lx.All()
	eof := toks[len(toks)-1]
	if eof.Kind != token.EOF {
		t.Fatalf("Expected EOF, got %v", eof.Kind)
	}
	found := false
	for _, tr := range eof.Leading {
		if tr.Kind == token.TriviaDocComment {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected doc comment in EOF leading trivia, got %+v", eof.Leading)
	}
}

// ====== Тесты для lexer.go ======

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	p := lx.Peek()
	n := lx.Next()
	if p.Kind != n.Kind || p.Text != n.Text {
		t.Errorf("Peek %v(%q) != Next %v(%q)", p.Kind, p.Text, n.Kind, n.Text)
	}
	if next := lx.Next(); next.Text != "b" {
		t.Errorf("Expected b, got %q", next.Text)
	}
}

func TestEOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("x")
	_ = lx.Next()
	for i := 0; i < 3; i++ {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("call %d: expected EOF, got %v", i, tok.Kind)
		}
	}
}

func TestApexSnippet(t *testing.T) {
	src := "@IsTest\nstatic void run() { Integer x = 10L + a?.b; }"
	want := []token.Kind{
		token.At, token.Ident, token.KwStatic, token.KwVoid, token.Ident, token.LParen,
		token.RParen, token.LBrace, token.Ident, token.Ident, token.Assign, token.LongLit,
		token.Plus, token.Ident, token.QuestionDot, token.Ident, token.Semicolon, token.RBrace,
	}
	lx, reporter := makeTestLexer(src)
	toks := collectAllTokens(lx)
	toks = toks[:len(toks)-1]
	if len(toks) != len(want) {
		t.Fatalf("got %s", tokensToString(toks))
	}
	for i := range want {
		if toks[i].Kind != want[i] {
			t.Errorf("token %d: want %v, got %v", i, want[i], toks[i].Kind)
		}
	}
	if reporter.HasErrors() {
		t.Errorf("unexpected errors: %v", reporter.ErrorMessages())
	}
}
