package tt

import (
	"fmt"

	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/lexer"
	"github.com/elk-cloner/proc-macro-workshop/internal/source"
	"github.com/elk-cloner/proc-macro-workshop/internal/token"

	"fortio.org/safecast"
)

type frame struct {
	open  token.Token
	items Stream
}

// Build groups flat tokens into trees, splitting operators into Punct runs.
// EOF and Invalid tokens are skipped; the lexer already reported the latter.
// It returns false when delimiters do not balance.
func Build(toks []token.Token, r diag.Reporter) (Stream, bool) {
	ok := true
	stack := []frame{{}}
	top := func() *frame { return &stack[len(stack)-1] }

	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		switch {
		case tok.Kind == token.EOF || tok.Kind == token.Invalid:
			if tok.Kind == token.Invalid {
				ok = false
			}

		case tok.Kind.IsOpenDelim():
			stack = append(stack, frame{open: tok})

		case tok.Kind.IsCloseDelim():
			if len(stack) == 1 {
				diag.ReportError(r, diag.SynUnmatchedDelim, tok.Span,
					fmt.Sprintf("unexpected closing delimiter `%s`", tok.Text)).Emit()
				ok = false
				continue
			}
			f := top()
			if f.open.Kind.Closer() != tok.Kind {
				diag.ReportError(r, diag.SynUnmatchedDelim, tok.Span,
					fmt.Sprintf("mismatched closing delimiter `%s`", tok.Text)).
					WithNote(f.open.Span, fmt.Sprintf("unclosed delimiter `%s` opened here", f.open.Text)).
					Emit()
				ok = false
				continue
			}
			g := NewGroup(delimFor(tok.Kind), f.items, f.open.Span.Cover(tok.Span))
			g.Break = f.open.HasNewlineBefore()
			g.CloseBreak = tok.HasNewlineBefore()
			stack = stack[:len(stack)-1]
			top().items = append(top().items, g)

		case tok.IsPunctOrOp():
			top().items = appendPunct(top().items, tok, nextToken(toks, i))

		case tok.Kind == token.Ident:
			t := NewIdent(tok.Text, tok.Span)
			t.Break = tok.HasNewlineBefore()
			top().items = append(top().items, t)

		case tok.IsLiteral():
			t := NewLiteral(tok.Kind, tok.Text, tok.Span)
			t.Break = tok.HasNewlineBefore()
			top().items = append(top().items, t)
		}
	}

	// close whatever is still open so callers get a usable tree
	for len(stack) > 1 {
		f := stack[len(stack)-1]
		diag.ReportError(r, diag.SynUnclosedDelimiter, f.open.Span,
			fmt.Sprintf("unclosed delimiter `%s`", f.open.Text)).Emit()
		ok = false
		sp := f.open.Span
		if len(f.items) > 0 {
			sp = sp.Cover(f.items.Span())
		}
		g := NewGroup(delimFor(f.open.Kind), f.items, sp)
		g.Break = f.open.HasNewlineBefore()
		stack = stack[:len(stack)-1]
		top().items = append(top().items, g)
	}
	return stack[0].items, ok
}

func offset(j int) uint32 {
	off, err := safecast.Conv[uint32](j)
	if err != nil {
		panic(fmt.Errorf("punct offset overflow: %w", err))
	}
	return off
}

func nextToken(toks []token.Token, i int) *token.Token {
	if i+1 < len(toks) {
		return &toks[i+1]
	}
	return nil
}

// appendPunct splits an operator token into single characters. All but the
// last are Joint; the last is Joint only when another operator follows with
// no gap.
func appendPunct(out Stream, tok token.Token, next *token.Token) Stream {
	for j := 0; j < len(tok.Text); j++ {
		off := tok.Span.Start + offset(j)
		sp := source.Span{File: tok.Span.File, Start: off, End: off + 1}
		spacing := Joint
		if j == len(tok.Text)-1 {
			spacing = Alone
			if next != nil && next.IsPunctOrOp() && !next.IsDelim() && next.Span.Start == tok.Span.End && len(next.Leading) == 0 {
				spacing = Joint
			}
		}
		p := NewPunct(tok.Text[j], spacing, sp)
		p.Break = j == 0 && tok.HasNewlineBefore()
		out = append(out, p)
	}
	return out
}

// Lex tokenizes file and builds its token trees in one step.
func Lex(file *source.File, r diag.Reporter) (Stream, bool) {
	counter := &diag.CountingReporter{Next: r}
	lx := lexer.New(file, lexer.Options{Reporter: counter})
	var toks []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		toks = append(toks, tok)
	}
	stream, ok := Build(toks, r)
	return stream, ok && counter.Errors == 0
}
