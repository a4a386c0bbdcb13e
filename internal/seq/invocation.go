package seq

import (
	"github.com/elk-cloner/proc-macro-workshop/internal/source"
	"github.com/elk-cloner/proc-macro-workshop/internal/tt"
)

// Invocation is a parsed `seq!` call. It is never modified after parsing.
type Invocation struct {
	Var       tt.Tree // the bound identifier
	Start     int64
	End       int64
	Inclusive bool
	Body      tt.Stream
	BodySpan  source.Span // includes the braces
	Span      source.Span // the whole call
}

// Name is the placeholder the body refers to.
func (inv Invocation) Name() string {
	return inv.Var.Text
}

// Range returns the half-open effective range. An inclusive range adds one to
// End; callers must reject End == MaxInt64 first (see ExpandMacro).
func (inv Invocation) Range() Range {
	end := inv.End
	if inv.Inclusive {
		end++
	}
	return Range{Start: inv.Start, End: end}
}

// Range is the half-open interval [Start, End) of values the body is expanded for.
type Range struct {
	Start int64
	End   int64
}

// Len returns the number of values in r; zero when End <= Start.
func (r Range) Len() int64 {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Empty reports whether r yields no values.
func (r Range) Empty() bool {
	return r.Len() == 0
}
