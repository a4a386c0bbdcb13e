package tt

// Equal reports whether two streams have the same shape and text.
// Spans and line-break hints are ignored.
func Equal(a, b Stream) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalTree(&a[i], &b[i]) {
			return false
		}
	}
	return true
}

func equalTree(a, b *Tree) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindIdent:
		return a.Text == b.Text
	case KindLiteral:
		return a.Text == b.Text && a.Lit == b.Lit
	case KindPunct:
		return a.Text == b.Text && a.Spacing == b.Spacing
	case KindGroup:
		return a.Delim == b.Delim && Equal(a.Stream, b.Stream)
	}
	return false
}

// Depth returns the deepest group nesting in s. A stream without groups has depth 0.
func Depth(s Stream) int {
	deepest := 0
	for i := range s {
		if s[i].Kind == KindGroup {
			deepest = max(deepest, 1+Depth(s[i].Stream))
		}
	}
	return deepest
}

// Count returns the number of trees in s, counting groups and their contents.
func Count(s Stream) int {
	n := len(s)
	for i := range s {
		if s[i].Kind == KindGroup {
			n += Count(s[i].Stream)
		}
	}
	return n
}
