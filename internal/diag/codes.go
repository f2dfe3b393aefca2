package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Host formatter (snippet parsing)
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynUnclosedBrace    Code = 2002
	SynUnclosedParen    Code = 2003
	SynUnclosedBracket  Code = 2004
	SynExpectSemicolon  Code = 2005
	SynExpectTypeDecl   Code = 2006
	SynUnexpectedCloser Code = 2007

	// Comment pipeline
	FmtInfo                 Code = 3000
	FmtCodeBlockUnformatted Code = 3001

	// I/O
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number literal",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedBrace:            "Unclosed brace",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBracket:          "Unclosed bracket",
	SynExpectSemicolon:          "Expected semicolon",
	SynExpectTypeDecl:           "Expected type declaration",
	SynUnexpectedCloser:         "Unexpected closing delimiter",
	FmtInfo:                     "Formatting information",
	FmtCodeBlockUnformatted:     "Code block left unformatted",
	IOLoadFileError:             "I/O load file error",
	IOWriteFileError:            "I/O write file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("FMT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
