package seq

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/source"
	"github.com/elk-cloner/proc-macro-workshop/internal/token"
	"github.com/elk-cloner/proc-macro-workshop/internal/tt"
)

// parser walks the macro input positionally.
type parser struct {
	in   tt.Stream
	pos  int
	call source.Span
	r    diag.Reporter
}

// ParseInvocation reads `<ident> in <int> (.. | ..=) <int> { <body> }` from
// the argument stream of a call whose full span is call. On error it reports
// one diagnostic at the offending tree, or at the end of call when the input
// ran out, and returns false.
func ParseInvocation(input tt.Stream, call source.Span, r diag.Reporter) (Invocation, bool) {
	p := &parser{in: input, call: call, r: r}
	inv := Invocation{Span: call}

	v, ok := p.expect(func(t *tt.Tree) bool { return t.Kind == tt.KindIdent },
		diag.SynExpectIdent, "expected loop variable identifier")
	if !ok {
		return Invocation{}, false
	}
	inv.Var = v

	if _, ok = p.expect(func(t *tt.Tree) bool { return t.IsIdent("in") },
		diag.SynExpectIn, "expected `in`"); !ok {
		return Invocation{}, false
	}

	if inv.Start, ok = p.parseInt(); !ok {
		return Invocation{}, false
	}

	if inv.Inclusive, ok = p.parseRangeOp(); !ok {
		return Invocation{}, false
	}

	if inv.End, ok = p.parseInt(); !ok {
		return Invocation{}, false
	}

	body, ok := p.expect(func(t *tt.Tree) bool { return t.IsGroup(tt.DelimBrace) },
		diag.SynExpectBody, "expected `{` to open the body")
	if !ok {
		return Invocation{}, false
	}
	inv.Body = body.Stream
	inv.BodySpan = body.Span

	if extra := p.peek(); extra != nil {
		diag.ReportError(p.r, diag.SynTrailingTokens, extra.Span,
			fmt.Sprintf("unexpected %s after the body", describe(extra))).
			WithNote(body.Span, "body ends here").
			Emit()
		return Invocation{}, false
	}
	return inv, true
}

func (p *parser) peek() *tt.Tree {
	if p.pos < len(p.in) {
		return &p.in[p.pos]
	}
	return nil
}

func (p *parser) peekAt(off int) *tt.Tree {
	if p.pos+off < len(p.in) {
		return &p.in[p.pos+off]
	}
	return nil
}

// expect consumes one tree accepted by match, or reports code with msg.
func (p *parser) expect(match func(*tt.Tree) bool, code diag.Code, msg string) (tt.Tree, bool) {
	t := p.peek()
	if t == nil || !match(t) {
		p.errorAt(t, code, msg)
		return tt.Tree{}, false
	}
	p.pos++
	return *t, true
}

// errorAt reports at t, or at the closing delimiter of the call when t is nil.
func (p *parser) errorAt(t *tt.Tree, code diag.Code, msg string) {
	sp := p.endSpan()
	if t != nil {
		sp = t.Span
		msg = fmt.Sprintf("%s, found %s", msg, describe(t))
	} else {
		msg += ", found end of input"
	}
	diag.ReportError(p.r, code, sp, msg).Emit()
}

func (p *parser) endSpan() source.Span {
	if p.call.Empty() {
		return p.call
	}
	return source.Span{File: p.call.File, Start: p.call.End - 1, End: p.call.End}
}

func (p *parser) parseInt() (int64, bool) {
	t := p.peek()
	if t == nil || t.Kind != tt.KindLiteral || t.Lit != token.IntLit {
		p.errorAt(t, diag.SynExpectIntLit, "expected integer literal")
		return 0, false
	}
	n, err := ParseIntLiteral(t.Text)
	if err != nil {
		diag.ReportError(p.r, diag.SynBadIntLit, t.Span, err.Error()).Emit()
		return 0, false
	}
	p.pos++
	return n, true
}

// parseRangeOp reads `..` or `..=` and reports whether the range is inclusive.
// `..=` arrives as three Punct trees with the first two Joint.
func (p *parser) parseRangeOp() (inclusive, ok bool) {
	d1, d2 := p.peekAt(0), p.peekAt(1)
	if d1 == nil || !d1.IsPunct('.') || d1.Spacing != tt.Joint || d2 == nil || !d2.IsPunct('.') {
		p.errorAt(d1, diag.SynExpectRangeOp, "expected `..` or `..=`")
		return false, false
	}
	if eq := p.peekAt(2); d2.Spacing == tt.Joint && eq != nil && eq.IsPunct('=') {
		p.pos += 3
		return true, true
	}
	p.pos += 2
	return false, true
}

// ParseIntLiteral parses an unsuffixed, non-negative integer literal.
// Underscore separators and the 0x, 0o and 0b prefixes are accepted; a
// leading zero without prefix is still decimal.
func ParseIntLiteral(text string) (int64, error) {
	digits := strings.ReplaceAll(text, "_", "")
	base := 10
	if len(digits) > 2 && digits[0] == '0' {
		switch digits[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 10 {
			digits = digits[2:]
		}
	}
	n, err := strconv.ParseInt(digits, base, 64)
	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, strconv.ErrRange):
		return 0, fmt.Errorf("integer literal `%s` does not fit in 64 bits", text)
	default:
		return 0, fmt.Errorf("invalid integer literal `%s`: suffixes are not supported", text)
	}
}

func describe(t *tt.Tree) string {
	switch t.Kind {
	case tt.KindIdent:
		return fmt.Sprintf("identifier `%s`", t.Text)
	case tt.KindLiteral:
		switch t.Lit {
		case token.FloatLit:
			return fmt.Sprintf("float literal `%s`", t.Text)
		case token.StringLit, token.RawStringLit:
			return "string literal"
		case token.CharLit:
			return fmt.Sprintf("character literal %s", t.Text)
		}
		return fmt.Sprintf("literal `%s`", t.Text)
	case tt.KindPunct:
		return fmt.Sprintf("`%s`", t.Text)
	case tt.KindGroup:
		if t.Delim == tt.DelimNone {
			return "group"
		}
		return fmt.Sprintf("`%s`", t.Delim.Open())
	}
	return "token"
}
