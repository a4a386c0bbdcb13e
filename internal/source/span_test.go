package source

import "testing"

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 12}
	if got := a.Cover(b); got != (Span{File: 1, Start: 5, End: 20}) {
		t.Fatalf("Cover = %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("Cover across files = %v, want %v", got, a)
	}
}

func TestSpanZeroide(t *testing.T) {
	s := Span{File: 3, Start: 4, End: 9}
	if got := s.ZeroideToStart(); got != (Span{File: 3, Start: 4, End: 4}) || !got.Empty() {
		t.Fatalf("ZeroideToStart = %v", got)
	}
	if got := s.ZeroideToEnd(); got != (Span{File: 3, Start: 9, End: 9}) {
		t.Fatalf("ZeroideToEnd = %v", got)
	}
	if s.Len() != 5 {
		t.Fatalf("Len = %d", s.Len())
	}
}

func TestSpanContains(t *testing.T) {
	outer := Span{File: 0, Start: 0, End: 10}
	if !outer.Contains(Span{File: 0, Start: 2, End: 10}) {
		t.Fatalf("expected containment")
	}
	if outer.Contains(Span{File: 0, Start: 2, End: 11}) {
		t.Fatalf("span past end must not be contained")
	}
	if outer.Contains(Span{File: 1, Start: 2, End: 3}) {
		t.Fatalf("span in another file must not be contained")
	}
}
