package seq

import (
	"github.com/elk-cloner/proc-macro-workshop/internal/tt"
)

// ExpandRepetitions replaces every `#( inner )*` marker in stream, at any
// depth, with Splice(inner, placeholder, n) for each n in r in increasing
// order. The marker trees are dropped. The boolean reports whether any marker
// was found.
func ExpandRepetitions(stream tt.Stream, placeholder string, r Range) (tt.Stream, bool) {
	out := make(tt.Stream, 0, len(stream))
	found := false
	for i := 0; i < len(stream); i++ {
		t := stream[i]
		if isRepetition(stream, i) {
			inner := stream[i+1].Stream
			for n := r.Start; n < r.End; n++ {
				copied := Splice(inner, placeholder, n)
				if len(copied) > 0 && t.Break {
					copied[0].Break = true
				}
				out = append(out, copied...)
			}
			found = true
			i += 2
			continue
		}
		if t.Kind == tt.KindGroup {
			sub, subFound := ExpandRepetitions(t.Stream, placeholder, r)
			out = append(out, t.WithStream(sub))
			found = found || subFound
			continue
		}
		out = append(out, t)
	}
	return out, found
}

// isRepetition matches the window `# (group) *` starting at i.
func isRepetition(stream tt.Stream, i int) bool {
	return i+2 < len(stream) &&
		stream[i].IsPunct('#') &&
		stream[i+1].IsGroup(tt.DelimParen) &&
		stream[i+2].IsPunct('*')
}

// HasRepetition reports whether stream contains a `#( ... )*` marker at any depth.
func HasRepetition(stream tt.Stream) bool {
	for i := range stream {
		if isRepetition(stream, i) {
			return true
		}
		if stream[i].Kind == tt.KindGroup && HasRepetition(stream[i].Stream) {
			return true
		}
	}
	return false
}
