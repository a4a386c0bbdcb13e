package token

import (
	"strings"

	"github.com/elk-cloner/proc-macro-workshop/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, string or char literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, RawStringLit, CharLit:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is punctuation, an operator or a delimiter.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind < kindCount
}

// IsDelim reports whether the token opens or closes a group.
func (t Token) IsDelim() bool {
	return t.Kind.IsOpenDelim() || t.Kind.IsCloseDelim()
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// HasNewlineBefore reports whether a line break separates the token from
// whatever precedes it.
func (t Token) HasNewlineBefore() bool {
	for _, tv := range t.Leading {
		if tv.Kind == TriviaNewline {
			return true
		}
		if tv.Kind == TriviaBlockComment && strings.Contains(tv.Text, "\n") {
			return true
		}
	}
	return false
}
