// Package token defines lexical token kinds and trivia for Python source.
// Invariants:
//   - Token.Text is a copy of the exact original source slice.
//   - Token.Span matches Text exactly (Start..End), except for the
//     synthesized Indent/Dedent/EOF tokens, whose spans are empty.
//   - Comments and non-logical newlines never appear in the main token
//     stream; they are leading Trivia on the next token.
//   - String literals keep their prefix and quotes in Text; the lexer does
//     not cook them. Classification and unescaping live in pystr.
//   - Soft keywords (match, case, type, _) are plain Ident tokens; the
//     parser recognizes them by position.
package token
