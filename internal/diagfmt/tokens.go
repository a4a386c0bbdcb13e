package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/elk-cloner/proc-macro-workshop/internal/source"
	"github.com/elk-cloner/proc-macro-workshop/internal/token"
	"github.com/elk-cloner/proc-macro-workshop/internal/tt"
)

type TokenOutput struct {
	Kind    string      `json:"kind" yaml:"kind"`
	Text    string      `json:"text,omitempty" yaml:"text,omitempty"`
	Span    source.Span `json:"span" yaml:"span,flow"`
	Leading []string    `json:"leading,omitempty" yaml:"leading,omitempty,flow"`
}

// TreeOutput mirrors tt.Tree for the json and yaml dumps.
type TreeOutput struct {
	Kind    string       `json:"kind" yaml:"kind"`
	Text    string       `json:"text,omitempty" yaml:"text,omitempty"`
	Spacing string       `json:"spacing,omitempty" yaml:"spacing,omitempty"`
	Delim   string       `json:"delim,omitempty" yaml:"delim,omitempty"`
	Span    source.Span  `json:"span" yaml:"span,flow"`
	Break   bool         `json:"break,omitempty" yaml:"break,omitempty"`
	Stream  []TreeOutput `json:"stream,omitempty" yaml:"stream,omitempty"`
}

func tokenOutputs(tokens []token.Token) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		to := TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Span: tok.Span}
		for _, trivia := range tok.Leading {
			to.Leading = append(to.Leading, trivia.Kind.String())
		}
		out = append(out, to)
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

// FormatTokensPretty writes one line per token with its position.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokenOutputs(tokens) {
		startPos, endPos := fs.Resolve(tok.Span)
		var b strings.Builder
		fmt.Fprintf(&b, "%3d: %-15s", i+1, tok.Kind)
		if tok.Text != "" {
			fmt.Fprintf(&b, " %q", tok.Text)
		}
		fmt.Fprintf(&b, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if len(tok.Leading) > 0 {
			fmt.Fprintf(&b, " (leading: %s)", strings.Join(tok.Leading, ", "))
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenOutputs(tokens))
}

func FormatTokensYAML(w io.Writer, tokens []token.Token) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tokenOutputs(tokens)); err != nil {
		return err
	}
	return enc.Close()
}

// TreeOutputs converts a stream for encoding.
func TreeOutputs(s tt.Stream) []TreeOutput {
	out := make([]TreeOutput, 0, len(s))
	for i := range s {
		t := &s[i]
		to := TreeOutput{Kind: t.Kind.String(), Span: t.Span, Break: t.Break}
		switch t.Kind {
		case tt.KindGroup:
			to.Delim = t.Delim.String()
			to.Stream = TreeOutputs(t.Stream)
		case tt.KindPunct:
			to.Text = t.Text
			to.Spacing = t.Spacing.String()
		default:
			to.Text = t.Text
		}
		out = append(out, to)
	}
	return out
}

// FormatTreesPretty writes an indented outline of the stream.
func FormatTreesPretty(w io.Writer, s tt.Stream, fs *source.FileSet) error {
	var b strings.Builder
	writeTrees(&b, s, fs, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTrees(b *strings.Builder, s tt.Stream, fs *source.FileSet, depth int) {
	indent := strings.Repeat("  ", depth)
	for i := range s {
		t := &s[i]
		pos, _ := fs.Resolve(t.Span)
		switch t.Kind {
		case tt.KindGroup:
			fmt.Fprintf(b, "%sGroup %s %s at %d:%d\n", indent, t.Delim, t.Delim.Open()+t.Delim.Close(), pos.Line, pos.Col)
			writeTrees(b, t.Stream, fs, depth+1)
		case tt.KindPunct:
			fmt.Fprintf(b, "%sPunct %q %s at %d:%d\n", indent, t.Text, t.Spacing, pos.Line, pos.Col)
		default:
			fmt.Fprintf(b, "%s%s %q at %d:%d\n", indent, t.Kind, t.Text, pos.Line, pos.Col)
		}
	}
}

func FormatTreesJSON(w io.Writer, s tt.Stream) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(TreeOutputs(s))
}

func FormatTreesYAML(w io.Writer, s tt.Stream) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(TreeOutputs(s)); err != nil {
		return err
	}
	return enc.Close()
}
