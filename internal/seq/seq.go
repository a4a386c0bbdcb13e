package seq

import (
	"fmt"
	"math"

	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/source"
	"github.com/elk-cloner/proc-macro-workshop/internal/tt"
)

const (
	DefaultMaxDepth      = 256
	DefaultMaxIterations = 65536
)

type Options struct {
	// MaxDepth bounds group nesting inside the body; <= 0 disables the check.
	MaxDepth int
	// MaxIterations bounds the number of values in the range; <= 0 disables the check.
	MaxIterations int64
	// Lint enables warnings for suspicious but valid input.
	Lint bool
}

func DefaultOptions() Options {
	return Options{
		MaxDepth:      DefaultMaxDepth,
		MaxIterations: DefaultMaxIterations,
		Lint:          true,
	}
}

// Expand produces the output of a parsed invocation. If the body contains a
// repetition marker anywhere, only the markers are expanded and the rest of
// the body appears once. Otherwise the whole body is spliced once per value
// and the copies are concatenated. An empty range always yields an empty stream.
func Expand(inv Invocation) tt.Stream {
	r := inv.Range()
	if r.Empty() {
		return tt.Stream{}
	}
	if out, found := ExpandRepetitions(inv.Body, inv.Name(), r); found {
		return out
	}
	out := make(tt.Stream, 0, len(inv.Body)*int(min(r.Len(), 1024)))
	for n := r.Start; n < r.End; n++ {
		out = append(out, Splice(inv.Body, inv.Name(), n)...)
	}
	return out
}

// ExpandMacro parses the argument stream of one `seq!` call, applies the
// configured guards and expands it. Diagnostics go to r; on error no output
// is produced.
func ExpandMacro(input tt.Stream, call source.Span, opts Options, r diag.Reporter) (tt.Stream, bool) {
	inv, ok := ParseInvocation(input, call, r)
	if !ok {
		return nil, false
	}
	if !checkInvocation(inv, opts, r) {
		return nil, false
	}
	if opts.Lint {
		Lint(inv, r)
	}
	return Expand(inv), true
}

func checkInvocation(inv Invocation, opts Options, r diag.Reporter) bool {
	if inv.Inclusive && inv.End == math.MaxInt64 {
		diag.ReportError(r, diag.SeqRangeOverflow, inv.Span,
			fmt.Sprintf("inclusive range end %d overflows 64-bit integers", inv.End)).Emit()
		return false
	}
	rng := inv.Range()
	if inv.Start > inv.End {
		diag.ReportWarning(r, diag.SeqReversedRange, inv.Span,
			fmt.Sprintf("range start %d is greater than its end; the expansion is empty", inv.Start)).Emit()
	}
	if opts.MaxIterations > 0 && rng.Len() > opts.MaxIterations {
		diag.ReportError(r, diag.SeqRangeTooLarge, inv.Span,
			fmt.Sprintf("range has %d values; the limit is %d", rng.Len(), opts.MaxIterations)).Emit()
		return false
	}
	if opts.MaxDepth > 0 {
		if depth := tt.Depth(inv.Body); depth > opts.MaxDepth {
			diag.ReportError(r, diag.SeqNestingTooDeep, inv.BodySpan,
				fmt.Sprintf("body nests %d groups deep; the limit is %d", depth, opts.MaxDepth)).Emit()
			return false
		}
	}
	return true
}
