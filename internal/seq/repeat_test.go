package seq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elk-cloner/proc-macro-workshop/internal/seq"
	"github.com/elk-cloner/proc-macro-workshop/internal/testkit"
	"github.com/elk-cloner/proc-macro-workshop/internal/tt"
)

func TestExpandRepetitions(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		found bool
	}{
		{"single", "#( S~N; )*", "S0; S1; S2;", true},
		{"two markers", "a #( x~N )* b #( N )* c", "a x0 x1 x2 b 0 1 2 c", true},
		{"nested", "f { g ( #( N, )* ) }", "f { g ( 0, 1, 2, ) }", true},
		{"none", "a N b~N", "a N b~N", false},
		{"bracket is not a marker", "#[ N ]*", "#[ N ]*", false},
		{"missing star", "#( N )+", "#( N )+", false},
		{"spaced marker", "# ( ( N ) ) *", "( 0 ) ( 1 ) ( 2 )", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, found := seq.ExpandRepetitions(testkit.MustLex(t, tc.in), "N", seq.Range{Start: 0, End: 3})
			assert.Equal(t, tc.found, found)
			requireStream(t, tc.want, out)
		})
	}
}

func TestExpandRepetitionsSplitMarker(t *testing.T) {
	// `#` sits in a different group than `( N ) *`
	out, found := seq.ExpandRepetitions(testkit.MustLex(t, "{ # } ( N ) *"), "N", seq.Range{Start: 0, End: 2})
	assert.False(t, found)
	requireStream(t, "{ # } ( N ) *", out)
}

func TestHasRepetition(t *testing.T) {
	assert.True(t, seq.HasRepetition(testkit.MustLex(t, "a { b [ #( c )* ] }")))
	assert.False(t, seq.HasRepetition(testkit.MustLex(t, "a { b [ # c * ] }")))
}

func TestRepetitionCarriesLineBreak(t *testing.T) {
	in := testkit.MustLex(t, "{\n#( const C~N = N )*\n}")
	out, found := seq.ExpandRepetitions(in, "N", seq.Range{Start: 0, End: 2})
	assert.True(t, found)
	got := tt.Print(out, tt.PrintOptions{PreserveLines: true})
	assert.Equal(t, "{\n\tconst C0 = 0\n\tconst C1 = 1\n}", got)
}
