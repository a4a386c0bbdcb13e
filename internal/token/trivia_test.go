package token_test

import (
	"testing"

	"github.com/elk-cloner/proc-macro-workshop/internal/source"
	"github.com/elk-cloner/proc-macro-workshop/internal/token"
)

func TestParseDirective(t *testing.T) {
	tests := []struct {
		in      string
		ok      bool
		tool    string
		name    string
		payload string
	}{
		{in: "//macrokit:derive Builder, CustomDebug", ok: true, tool: "macrokit", name: "derive", payload: "Builder, CustomDebug"},
		{in: "//go:generate", ok: true, tool: "go", name: "generate"},
		{in: "// macrokit:derive Builder", ok: false},
		{in: "//nolint", ok: false},
		{in: "/* macrokit:derive */", ok: false},
		{in: "//a b:c", ok: false},
	}
	for _, tt := range tests {
		d, ok := token.ParseDirective(tt.in)
		if ok != tt.ok {
			t.Fatalf("ParseDirective(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
		if !ok {
			continue
		}
		if d.Tool != tt.tool || d.Name != tt.name || d.Payload != tt.payload {
			t.Fatalf("ParseDirective(%q) = %+v", tt.in, d)
		}
	}
}

func TestHasNewlineBefore(t *testing.T) {
	plain := token.Token{Kind: token.Ident, Text: "x"}
	if plain.HasNewlineBefore() {
		t.Fatalf("token without trivia has no line break")
	}
	spaced := token.Token{Kind: token.Ident, Leading: []token.Trivia{{Kind: token.TriviaSpace, Text: " "}}}
	if spaced.HasNewlineBefore() {
		t.Fatalf("space is not a line break")
	}
	broken := token.Token{
		Kind: token.Ident,
		Leading: []token.Trivia{
			{Kind: token.TriviaSpace, Span: source.Span{Start: 0, End: 1}, Text: " "},
			{Kind: token.TriviaNewline, Span: source.Span{Start: 1, End: 2}, Text: "\n"},
		},
	}
	if !broken.HasNewlineBefore() {
		t.Fatalf("expected line break")
	}
}
