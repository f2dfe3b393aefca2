// Package token defines lexical token kinds and trivia for Apex source.
// Invariants:
//   - Token.Text is the exact source slice for the token.
//   - Token.Span matches Text exactly (Start..End).
//   - Keywords are case-insensitive (Apex semantics); Text keeps the original spelling.
//   - Annotations are lexed as '@' (Kind: At) + Ident; there are no per-annotation kinds.
//   - Comments never appear in the main token stream. They are leading Trivia;
//     "/** ... */" is TriviaDocComment so the printer can hand it to the ApexDoc hook.
//   - '>' is never merged into '>>' or '>>>'. The printer glues adjacent '>'
//     tokens back into a shift operator outside of type arguments.
package token
