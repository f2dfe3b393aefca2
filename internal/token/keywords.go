package token

import "strings"

var keywords = map[string]Kind{
	"abstract":   KwAbstract,
	"break":      KwBreak,
	"catch":      KwCatch,
	"class":      KwClass,
	"continue":   KwContinue,
	"do":         KwDo,
	"else":       KwElse,
	"enum":       KwEnum,
	"extends":    KwExtends,
	"false":      KwFalse,
	"final":      KwFinal,
	"finally":    KwFinally,
	"for":        KwFor,
	"global":     KwGlobal,
	"if":         KwIf,
	"implements": KwImplements,
	"instanceof": KwInstanceof,
	"interface":  KwInterface,
	"new":        KwNew,
	"null":       KwNull,
	"override":   KwOverride,
	"private":    KwPrivate,
	"protected":  KwProtected,
	"public":     KwPublic,
	"return":     KwReturn,
	"static":     KwStatic,
	"super":      KwSuper,
	"switch":     KwSwitch,
	"testmethod": KwTestMethod,
	"this":       KwThis,
	"throw":      KwThrow,
	"transient":  KwTransient,
	"trigger":    KwTrigger,
	"true":       KwTrue,
	"try":        KwTry,
	"virtual":    KwVirtual,
	"void":       KwVoid,
	"webservice": KwWebService,
	"while":      KwWhile,
}

var keywordText = func() map[Kind]string {
	out := make(map[Kind]string, len(keywords))
	for text, k := range keywords {
		out[k] = text
	}
	return out
}()

// LookupKeyword reports the keyword kind for ident. Apex keywords are
// case-insensitive, so "Public" and "PUBLIC" both resolve to KwPublic.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[strings.ToLower(ident)]
	return k, ok
}
