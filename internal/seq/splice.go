package seq

import (
	"strconv"

	"github.com/elk-cloner/proc-macro-workshop/internal/tt"
)

// Splice substitutes n for the placeholder throughout stream:
//   - `X ~ placeholder` becomes the identifier X followed by n in decimal,
//     positioned at X
//   - a bare placeholder becomes the integer literal n, positioned at the
//     placeholder
//   - groups are rewritten recursively and keep their delimiter
//
// Everything else, including an incomplete `X ~` pair, is copied unchanged.
func Splice(stream tt.Stream, placeholder string, n int64) tt.Stream {
	out := make(tt.Stream, 0, len(stream))
	for i := 0; i < len(stream); i++ {
		t := stream[i]
		if isSplice(stream, i, placeholder) {
			fused := tt.NewIdent(t.Text+strconv.FormatInt(n, 10), t.Span)
			fused.Break = t.Break
			out = append(out, fused)
			i += 2
			continue
		}
		switch {
		case t.IsIdent(placeholder):
			lit := tt.NewInt(n, t.Span)
			lit.Break = t.Break
			out = append(out, lit)
		case t.Kind == tt.KindGroup:
			out = append(out, t.WithStream(Splice(t.Stream, placeholder, n)))
		default:
			out = append(out, t)
		}
	}
	return out
}

// isSplice matches the window `<ident> ~ <placeholder>` starting at i.
func isSplice(stream tt.Stream, i int, placeholder string) bool {
	return i+2 < len(stream) &&
		stream[i].Kind == tt.KindIdent &&
		stream[i+1].IsPunct('~') &&
		stream[i+2].IsIdent(placeholder)
}
