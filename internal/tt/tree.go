package tt

import (
	"strconv"

	"github.com/elk-cloner/proc-macro-workshop/internal/source"
	"github.com/elk-cloner/proc-macro-workshop/internal/token"
)

type Kind uint8

const (
	KindIdent Kind = iota
	KindLiteral
	KindPunct
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindIdent:
		return "Ident"
	case KindLiteral:
		return "Literal"
	case KindPunct:
		return "Punct"
	case KindGroup:
		return "Group"
	default:
		return "Kind(?)"
	}
}

// Delimiter is the bracket pair enclosing a Group.
type Delimiter uint8

const (
	DelimNone Delimiter = iota
	DelimParen
	DelimBrace
	DelimBracket
)

// Open returns the opening delimiter text, "" for DelimNone.
func (d Delimiter) Open() string {
	switch d {
	case DelimParen:
		return "("
	case DelimBrace:
		return "{"
	case DelimBracket:
		return "["
	default:
		return ""
	}
}

// Close returns the closing delimiter text, "" for DelimNone.
func (d Delimiter) Close() string {
	switch d {
	case DelimParen:
		return ")"
	case DelimBrace:
		return "}"
	case DelimBracket:
		return "]"
	default:
		return ""
	}
}

func (d Delimiter) String() string {
	switch d {
	case DelimParen:
		return "Parenthesis"
	case DelimBrace:
		return "Brace"
	case DelimBracket:
		return "Bracket"
	default:
		return "None"
	}
}

func delimFor(k token.Kind) Delimiter {
	switch k {
	case token.LParen, token.RParen:
		return DelimParen
	case token.LBrace, token.RBrace:
		return DelimBrace
	case token.LBracket, token.RBracket:
		return DelimBracket
	default:
		return DelimNone
	}
}

// Spacing tells whether a Punct is immediately followed by another Punct
// that belongs to the same operator.
type Spacing uint8

const (
	Alone Spacing = iota
	Joint
)

func (s Spacing) String() string {
	if s == Joint {
		return "Joint"
	}
	return "Alone"
}

// Tree is one token tree. Which fields are meaningful depends on Kind.
type Tree struct {
	Kind Kind
	Span source.Span

	Text    string     // Ident name, Literal text, Punct character
	Lit     token.Kind // Literal flavor: IntLit, FloatLit, StringLit, RawStringLit, CharLit
	Spacing Spacing    // Punct only

	Delim  Delimiter // Group only
	Stream Stream    // Group only

	Break      bool // a line break preceded the tree
	CloseBreak bool // Group only: a line break preceded the closing delimiter
}

// Stream is an ordered sequence of trees.
type Stream []Tree

func NewIdent(name string, sp source.Span) Tree {
	return Tree{Kind: KindIdent, Text: name, Span: sp}
}

func NewLiteral(lit token.Kind, text string, sp source.Span) Tree {
	return Tree{Kind: KindLiteral, Lit: lit, Text: text, Span: sp}
}

// NewInt returns an unsuffixed decimal integer literal.
func NewInt(n int64, sp source.Span) Tree {
	return NewLiteral(token.IntLit, strconv.FormatInt(n, 10), sp)
}

func NewPunct(ch byte, spacing Spacing, sp source.Span) Tree {
	return Tree{Kind: KindPunct, Text: string(ch), Spacing: spacing, Span: sp}
}

func NewGroup(delim Delimiter, stream Stream, sp source.Span) Tree {
	return Tree{Kind: KindGroup, Delim: delim, Stream: stream, Span: sp}
}

// IsIdent reports whether t is the identifier name.
func (t Tree) IsIdent(name string) bool {
	return t.Kind == KindIdent && t.Text == name
}

// IsPunct reports whether t is the punctuation character ch.
func (t Tree) IsPunct(ch byte) bool {
	return t.Kind == KindPunct && len(t.Text) == 1 && t.Text[0] == ch
}

// IsGroup reports whether t is a group with the given delimiter.
func (t Tree) IsGroup(delim Delimiter) bool {
	return t.Kind == KindGroup && t.Delim == delim
}

// WithSpan returns a copy of t positioned at sp with the given line-break hint.
func (t Tree) WithSpan(sp source.Span, breakBefore bool) Tree {
	t.Span = sp
	t.Break = breakBefore
	return t
}

// WithStream returns a copy of the group t holding a different stream.
func (t Tree) WithStream(s Stream) Tree {
	t.Stream = s
	return t
}

// OpenSpan is the span of the opening delimiter of a group built from source.
func (t Tree) OpenSpan() source.Span {
	if t.Span.Empty() {
		return t.Span
	}
	return source.Span{File: t.Span.File, Start: t.Span.Start, End: t.Span.Start + 1}
}

// CloseSpan is the span of the closing delimiter of a group built from source.
func (t Tree) CloseSpan() source.Span {
	if t.Span.Empty() {
		return t.Span
	}
	return source.Span{File: t.Span.File, Start: t.Span.End - 1, End: t.Span.End}
}

// Span returns the span covering the whole stream, or the zero span when empty.
func (s Stream) Span() source.Span {
	if len(s) == 0 {
		return source.Span{}
	}
	return s[0].Span.Cover(s[len(s)-1].Span)
}

func (s Stream) String() string {
	return Print(s, PrintOptions{})
}
