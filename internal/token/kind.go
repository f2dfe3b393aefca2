package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	keywordsBegin
	KwAbstract   // abstract
	KwBreak      // break
	KwCatch      // catch
	KwClass      // class
	KwContinue   // continue
	KwDo         // do
	KwElse       // else
	KwEnum       // enum
	KwExtends    // extends
	KwFalse      // false
	KwFinal      // final
	KwFinally    // finally
	KwFor        // for
	KwGlobal     // global
	KwIf         // if
	KwImplements // implements
	KwInstanceof // instanceof
	KwInterface  // interface
	KwNew        // new
	KwNull       // null
	KwOverride   // override
	KwPrivate    // private
	KwProtected  // protected
	KwPublic     // public
	KwReturn     // return
	KwStatic     // static
	KwSuper      // super
	KwSwitch     // switch
	KwTestMethod // testmethod
	KwThis       // this
	KwThrow      // throw
	KwTransient  // transient
	KwTrigger    // trigger
	KwTrue       // true
	KwTry        // try
	KwVirtual    // virtual
	KwVoid       // void
	KwWebService // webservice
	KwWhile      // while
	keywordsEnd

	// IntLit represents an integer literal.
	IntLit
	// LongLit represents a long literal (10L).
	LongLit
	// DecimalLit represents a decimal literal (1.5, .5, 1e3).
	DecimalLit
	// StringLit represents a single-quoted string literal.
	StringLit

	Plus          // +
	Minus         // -
	Star          // *
	Slash         // /
	Percent       // %
	Assign        // =
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	AmpAssign     // &=
	PipeAssign    // |=
	CaretAssign   // ^=
	ShlAssign     // <<=
	EqEq          // ==
	EqEqEq        // ===
	Bang          // !
	BangEq        // !=
	BangEqEq      // !==
	Lt            // <
	LtEq          // <=
	Gt            // >
	GtEq          // >=
	Shl           // <<
	Amp           // &
	Pipe          // |
	Caret         // ^
	Tilde         // ~
	AndAnd        // &&
	OrOr          // ||
	Question      // ?
	QuestionDot   // ?.
	QuestionQ     // ??
	Colon         // :
	Semicolon     // ;
	Comma         // ,
	Dot           // .
	FatArrow      // =>
	PlusPlus      // ++
	MinusMinus    // --
	LParen        // (
	RParen        // )
	LBrace        // {
	RBrace        // }
	LBracket      // [
	RBracket      // ]
	At            // @
)

var kindNames = map[Kind]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	IntLit:     "IntLit",
	LongLit:    "LongLit",
	DecimalLit: "DecimalLit",
	StringLit:  "StringLit",
}

var punctText = map[Kind]string{
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", Assign: "=",
	PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", SlashAssign: "/=",
	PercentAssign: "%=", AmpAssign: "&=", PipeAssign: "|=", CaretAssign: "^=",
	ShlAssign: "<<=", EqEq: "==", EqEqEq: "===", Bang: "!", BangEq: "!=",
	BangEqEq: "!==", Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=", Shl: "<<",
	Amp: "&", Pipe: "|", Caret: "^", Tilde: "~", AndAnd: "&&", OrOr: "||",
	Question: "?", QuestionDot: "?.", QuestionQ: "??", Colon: ":", Semicolon: ";",
	Comma: ",", Dot: ".", FatArrow: "=>", PlusPlus: "++", MinusMinus: "--",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[",
	RBracket: "]", At: "@",
}

// String returns a readable name: the keyword or punctuation text, or the kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	if text, ok := punctText[k]; ok {
		return text
	}
	if text, ok := keywordText[k]; ok {
		return "Kw(" + text + ")"
	}
	return "Kind(?)"
}
