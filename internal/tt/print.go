package tt

import "strings"

type PrintOptions struct {
	// PreserveLines starts a new line, indented by group depth, before every
	// tree whose source token started a line.
	PreserveLines bool
}

// Print renders s as text. Trees are separated by one space except after a
// Joint punct and inside parenthesis or bracket delimiters. Brace groups are
// padded: `{ x }`.
func Print(s Stream, opts PrintOptions) string {
	p := printer{opts: opts, tight: true}
	p.stream(s)
	return p.sb.String()
}

type printer struct {
	sb    strings.Builder
	opts  PrintOptions
	depth int
	tight bool // suppress the separator before the next tree
}

func (p *printer) stream(s Stream) {
	for i := range s {
		p.tree(&s[i])
	}
}

func (p *printer) separate(breakBefore bool) {
	switch {
	case p.opts.PreserveLines && breakBefore && p.sb.Len() > 0:
		p.newline()
	case p.tight:
	default:
		p.sb.WriteByte(' ')
	}
	p.tight = false
}

func (p *printer) newline() {
	p.sb.WriteByte('\n')
	for range p.depth {
		p.sb.WriteByte('\t')
	}
}

func (p *printer) tree(t *Tree) {
	p.separate(t.Break)
	switch t.Kind {
	case KindIdent, KindLiteral:
		p.sb.WriteString(t.Text)
	case KindPunct:
		p.sb.WriteString(t.Text)
		p.tight = t.Spacing == Joint
	case KindGroup:
		p.group(t)
	}
}

func (p *printer) group(t *Tree) {
	if t.Delim == DelimNone {
		p.tight = true
		p.stream(t.Stream)
		return
	}
	p.sb.WriteString(t.Delim.Open())
	p.depth++
	p.tight = t.Delim != DelimBrace || len(t.Stream) == 0
	p.stream(t.Stream)
	p.depth--
	switch {
	case p.opts.PreserveLines && t.CloseBreak:
		p.newline()
	case t.Delim == DelimBrace && len(t.Stream) > 0:
		p.sb.WriteByte(' ')
	}
	p.sb.WriteString(t.Delim.Close())
	p.tight = false
}
