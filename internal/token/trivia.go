package token

import (
	"strings"

	"github.com/elk-cloner/proc-macro-workshop/internal/source"
)

// Directive is a structured `//tool:name payload` comment.
type Directive struct {
	Tool    string
	Name    string
	Payload string
}

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDirective
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaDirective:
		return "Directive"
	default:
		return "TriviaKind(?)"
	}
}

type Trivia struct {
	Kind      TriviaKind
	Span      source.Span
	Text      string
	Directive *Directive // only set when Kind == TriviaDirective
}

// ParseDirective recognizes the Go directive comment form `//tool:name payload`.
// There must be no space between `//` and the tool name.
func ParseDirective(comment string) (*Directive, bool) {
	body, ok := strings.CutPrefix(comment, "//")
	if !ok || body == "" || body[0] == ' ' || body[0] == '\t' {
		return nil, false
	}
	head, payload, _ := strings.Cut(body, " ")
	tool, name, ok := strings.Cut(head, ":")
	if !ok || !isDirectiveWord(tool) || !isDirectiveWord(name) {
		return nil, false
	}
	return &Directive{Tool: tool, Name: name, Payload: strings.TrimSpace(payload)}, true
}

func isDirectiveWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r == '_' || r == '-' || r == '.' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}
