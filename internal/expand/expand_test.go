package expand_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/expand"
	"github.com/elk-cloner/proc-macro-workshop/internal/testkit"
	"github.com/elk-cloner/proc-macro-workshop/internal/tt"
)

func run(t *testing.T, src string, opts expand.Options) (tt.Stream, expand.Stats, bool, *diag.Bag) {
	t.Helper()
	in := testkit.MustLex(t, src)
	bag := diag.NewBag(0)
	out, stats, ok := expand.File(in, opts, diag.BagReporter{Bag: bag})
	return out, stats, ok, bag
}

func assertStream(t *testing.T, want string, got tt.Stream) {
	t.Helper()
	expected := testkit.MustLex(t, want)
	assert.Truef(t, tt.Equal(expected, got), "want: %s\n got: %s", expected, got)
}

func TestFileExpandsCalls(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"paren", "seq!(N in 0..2 { f~N(); })", "f0(); f1();"},
		{"bracket", "seq![N in 0..2 { N }]", "0 1"},
		{"brace", "seq!{N in 1..=2 { N }}", "1 2"},
		{"nested", "func init() { seq!(N in 0..2 { g~N(); }) }", "func init() { g0(); g1(); }"},
		{"two calls", "a seq!(N in 0..1 { x~N }) b seq!(M in 5..6 { y~M }) c", "a x0 b y5 c"},
		{"no calls", "x := a != b", "x := a != b"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, _, ok, bag := run(t, tc.src, expand.DefaultOptions())
			require.True(t, ok, "diagnostics: %v", bag.Items())
			assertStream(t, tc.want, got)
		})
	}
}

func TestFileStats(t *testing.T) {
	_, stats, ok, _ := run(t, "seq!(N in 0..2 { N }) { seq!(N in 0..1 { N }) }", expand.DefaultOptions())
	require.True(t, ok)
	assert.Equal(t, 2, stats.Invocations)
	assert.Zero(t, stats.Failed)
	assert.Equal(t, 4, stats.Trees)
}

func TestFileDoesNotExpandOutput(t *testing.T) {
	got, stats, ok, _ := run(t, "seq!(N in 0..1 { seq!(M in 0..2 { M }) })", expand.DefaultOptions())
	require.True(t, ok)
	assert.Equal(t, 1, stats.Invocations)
	assertStream(t, "seq!(M in 0..2 { M })", got)
}

func TestFileCustomMacros(t *testing.T) {
	opts := expand.DefaultOptions()
	opts.Macros = []string{"repeat"}
	got, _, ok, _ := run(t, "repeat!(I in 0..2 { I }) seq!(x)", opts)
	require.True(t, ok)
	assertStream(t, "0 1 seq!(x)", got)
}

func TestFileFailedCallKeepsSource(t *testing.T) {
	got, stats, ok, bag := run(t, "a seq!(N of 0..2 {}) seq!(N in 0..1 { N })", expand.DefaultOptions())
	require.False(t, ok)
	assert.Equal(t, 2, stats.Invocations)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, []diag.Code{diag.SynExpectIn}, testkit.Codes(bag))
	assertStream(t, "a seq!(N of 0..2 {}) 0", got)
}

func TestFileMacroNeedsGroup(t *testing.T) {
	_, _, ok, bag := run(t, "seq! N", expand.DefaultOptions())
	require.False(t, ok)
	assert.Equal(t, []diag.Code{diag.SynMacroNeedsGroup}, testkit.Codes(bag))

	_, _, ok, bag = run(t, "seq!", expand.DefaultOptions())
	require.False(t, ok)
	assert.Equal(t, []diag.Code{diag.SynMacroNeedsGroup}, testkit.Codes(bag))
}

func TestFileCarriesLineBreak(t *testing.T) {
	in := testkit.MustLex(t, "package p\nseq!(N in 0..2 { const C~N = N })\n")
	out, _, ok := expand.File(in, expand.DefaultOptions(), diag.NopReporter{})
	require.True(t, ok)
	got := tt.Print(out, tt.PrintOptions{PreserveLines: true})
	assert.Equal(t, "package p\nconst C0 = 0 const C1 = 1", got)
}

func TestFileSpansPointIntoBody(t *testing.T) {
	src := "seq!(N in 0..2 { v~N })"
	in, fs, _ := testkit.Lex(src)
	out, _, ok := expand.File(in, expand.DefaultOptions(), diag.NopReporter{})
	require.True(t, ok)
	require.Len(t, out, 2)
	for _, tr := range out {
		assert.Equal(t, "v", fs.Text(tr.Span))
	}
}
