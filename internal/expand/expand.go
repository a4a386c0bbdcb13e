package expand

import (
	"fmt"
	"slices"

	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/seq"
	"github.com/elk-cloner/proc-macro-workshop/internal/tt"
)

// DefaultMacros is the macro set used when none is configured.
var DefaultMacros = []string{"seq"}

type Options struct {
	// Macros lists the names recognized as `seq!` calls.
	Macros []string
	Seq    seq.Options
}

func DefaultOptions() Options {
	return Options{
		Macros: slices.Clone(DefaultMacros),
		Seq:    seq.DefaultOptions(),
	}
}

// Stats summarizes one pass over a file.
type Stats struct {
	Invocations int // calls found
	Failed      int // calls that reported an error
	Trees       int // trees in the output, groups included
}

// File expands every macro call in stream. The returned bool is false when
// any call failed; failed calls are left in the output unchanged and callers
// are expected to discard it.
func File(stream tt.Stream, opts Options, r diag.Reporter) (tt.Stream, Stats, bool) {
	if len(opts.Macros) == 0 {
		opts.Macros = DefaultMacros
	}
	e := expander{opts: opts, r: r}
	out := e.stream(stream)
	e.stats.Trees = tt.Count(out)
	return out, e.stats, e.stats.Failed == 0
}

type expander struct {
	opts  Options
	r     diag.Reporter
	stats Stats
}

func (e *expander) stream(s tt.Stream) tt.Stream {
	out := make(tt.Stream, 0, len(s))
	for i := 0; i < len(s); i++ {
		t := s[i]
		if e.isMacroName(s, i) {
			if i+2 >= len(s) || s[i+2].Kind != tt.KindGroup || s[i+2].Delim == tt.DelimNone {
				e.stats.Invocations++
				e.stats.Failed++
				at := s[i+1].Span
				if i+2 < len(s) {
					at = s[i+2].Span
				}
				diag.ReportError(e.r, diag.SynMacroNeedsGroup, at,
					fmt.Sprintf("`%s!` must be followed by `(`, `[` or `{`", t.Text)).Emit()
				out = append(out, t)
				continue
			}
			out = append(out, e.call(s[i:i+3])...)
			i += 2
			continue
		}
		if t.Kind == tt.KindGroup {
			t = t.WithStream(e.stream(t.Stream))
		}
		out = append(out, t)
	}
	return out
}

// isMacroName matches `<macro> !` at i. A Joint `!` belongs to `!=`.
func (e *expander) isMacroName(s tt.Stream, i int) bool {
	return s[i].Kind == tt.KindIdent &&
		slices.Contains(e.opts.Macros, s[i].Text) &&
		i+1 < len(s) &&
		s[i+1].IsPunct('!') &&
		s[i+1].Spacing == tt.Alone
}

// call expands the three trees `name ! (args)`.
func (e *expander) call(c tt.Stream) tt.Stream {
	e.stats.Invocations++
	args := c[2]
	span := c[0].Span.Cover(args.Span)
	out, ok := seq.ExpandMacro(args.Stream, span, e.opts.Seq, e.r)
	if !ok {
		e.stats.Failed++
		return c
	}
	if len(out) > 0 {
		out[0].Break = c[0].Break
	}
	return out
}
