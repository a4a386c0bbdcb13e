package seq

import (
	"fmt"

	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/tt"
)

// Lint warns about input that expands without error but probably not as
// intended:
//   - `X~` written without a space but not followed by the placeholder,
//     which Splice copies verbatim
//   - a bound variable that the body never mentions
func Lint(inv Invocation, r diag.Reporter) {
	lintSplices(inv.Body, inv.Name(), r)
	if !mentions(inv.Body, inv.Name()) {
		diag.ReportWarning(r, diag.SeqUnusedVariable, inv.Var.Span,
			fmt.Sprintf("`%s` is never used in the body; every copy is identical", inv.Name())).Emit()
	}
}

func lintSplices(stream tt.Stream, placeholder string, r diag.Reporter) {
	for i := range stream {
		t := &stream[i]
		if t.Kind == tt.KindGroup {
			lintSplices(t.Stream, placeholder, r)
			continue
		}
		if t.Kind != tt.KindIdent || i+1 >= len(stream) || !stream[i+1].IsPunct('~') {
			continue
		}
		tilde := stream[i+1]
		if t.Span.End != tilde.Span.Start || t.Span.File != tilde.Span.File {
			// `T ~int` is a type constraint, not a splice
			continue
		}
		if i+2 < len(stream) && stream[i+2].IsIdent(placeholder) {
			continue
		}
		edit := diag.FixEdit{Span: tilde.Span.ZeroideToEnd(), NewText: placeholder}
		if i+2 < len(stream) && stream[i+2].Kind == tt.KindIdent && stream[i+2].Span.Start == tilde.Span.End {
			edit.Span = stream[i+2].Span
		}
		diag.ReportWarning(r, diag.SeqIncompleteSplice, tilde.Span,
			fmt.Sprintf("`%s ~` is not followed by `%s` and is left as is", t.Text, placeholder)).
			WithNote(t.Span.Cover(tilde.Span), "write `"+t.Text+"~"+placeholder+"` to splice").
			WithFix("splice `"+placeholder+"`", edit).
			Emit()
	}
}

func mentions(stream tt.Stream, name string) bool {
	for i := range stream {
		if stream[i].IsIdent(name) {
			return true
		}
		if stream[i].Kind == tt.KindGroup && mentions(stream[i].Stream, name) {
			return true
		}
	}
	return false
}
