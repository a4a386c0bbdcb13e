// Package token defines lexical token kinds and trivia for macro input.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Begin..End).
//   - There are no keywords. Words such as `in` or `seq` are identifiers and
//     get their meaning from the macro that consumes them.
//   - Comments and whitespace are leading Trivia and never appear in the
//     main token stream. A `//tool:name payload` comment becomes TriviaDirective.
package token
