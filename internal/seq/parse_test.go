package seq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/seq"
	"github.com/elk-cloner/proc-macro-workshop/internal/source"
	"github.com/elk-cloner/proc-macro-workshop/internal/testkit"
)

func TestParseInvocation(t *testing.T) {
	tests := []struct {
		args      string
		start     int64
		end       int64
		inclusive bool
		bodyLen   int
	}{
		{"N in 0..3 { N }", 0, 3, false, 1},
		{"N in 0..=3 {}", 0, 3, true, 0},
		{"idx in 0x10..0b1_1 { a b }", 16, 3, false, 2},
		{"_ in 007..08 { x }", 7, 8, false, 1},
	}
	for _, tc := range tests {
		t.Run(tc.args, func(t *testing.T) {
			input := testkit.MustLex(t, tc.args)
			bag := diag.NewBag(0)
			inv, ok := seq.ParseInvocation(input, input.Span(), diag.BagReporter{Bag: bag})
			require.True(t, ok, "diagnostics: %v", bag.Items())
			assert.Equal(t, input[0].Text, inv.Name())
			assert.Equal(t, tc.start, inv.Start)
			assert.Equal(t, tc.end, inv.End)
			assert.Equal(t, tc.inclusive, inv.Inclusive)
			assert.Len(t, inv.Body, tc.bodyLen)
			assert.Equal(t, input[len(input)-1].Span, inv.BodySpan)
		})
	}
}

func TestParseInvocationErrors(t *testing.T) {
	tests := []struct {
		args    string
		code    diag.Code
		at      string // source text under the primary span
		message string
	}{
		{"1 in 0..3 {}", diag.SynExpectIdent, "1", "expected loop variable identifier, found literal `1`"},
		{"N of 0..3 {}", diag.SynExpectIn, "of", "expected `in`, found identifier `of`"},
		{"N in a..3 {}", diag.SynExpectIntLit, "a", "expected integer literal, found identifier `a`"},
		{"N in 1.5..3 {}", diag.SynExpectIntLit, "1.5", "expected integer literal, found float literal `1.5`"},
		{"N in 0u8..3 {}", diag.SynBadIntLit, "0u8", "invalid integer literal `0u8`: suffixes are not supported"},
		{"N in 0..99999999999999999999 {}", diag.SynBadIntLit, "99999999999999999999", "integer literal `99999999999999999999` does not fit in 64 bits"},
		{"N in 0 3 {}", diag.SynExpectRangeOp, "3", "expected `..` or `..=`, found literal `3`"},
		{"N in 0 . . 3 {}", diag.SynExpectRangeOp, ".", "expected `..` or `..=`, found `.`"},
		{"N in 0..3 ( N )", diag.SynExpectBody, "( N )", "expected `{` to open the body, found `(`"},
		{"N in 0..3 {} extra", diag.SynTrailingTokens, "extra", "unexpected identifier `extra` after the body"},
	}
	for _, tc := range tests {
		t.Run(tc.args, func(t *testing.T) {
			input, fs, lexBag := testkit.Lex(tc.args)
			require.Zero(t, lexBag.Len())
			bag := diag.NewBag(0)
			inv, ok := seq.ParseInvocation(input, input.Span(), diag.BagReporter{Bag: bag})
			require.False(t, ok)
			assert.Zero(t, inv.Start)
			assert.Nil(t, inv.Body)
			require.Equal(t, 1, bag.Len())

			d := bag.Items()[0]
			assert.Equal(t, tc.code, d.Code)
			assert.Equal(t, diag.SevError, d.Severity)
			assert.Equal(t, tc.at, fs.Text(d.Primary))
			assert.Equal(t, tc.message, d.Message)
		})
	}
}

func TestParseInvocationEndOfInput(t *testing.T) {
	call := source.Span{File: 3, Start: 10, End: 30}
	for _, tc := range []struct {
		args string
		code diag.Code
	}{
		{"", diag.SynExpectIdent},
		{"N", diag.SynExpectIn},
		{"N in", diag.SynExpectIntLit},
		{"N in 0", diag.SynExpectRangeOp},
		{"N in 0..", diag.SynExpectIntLit},
		{"N in 0..3", diag.SynExpectBody},
	} {
		input := testkit.MustLex(t, tc.args)
		bag := diag.NewBag(0)
		_, ok := seq.ParseInvocation(input, call, diag.BagReporter{Bag: bag})
		require.False(t, ok, tc.args)
		require.Equal(t, 1, bag.Len(), tc.args)
		d := bag.Items()[0]
		assert.Equal(t, tc.code, d.Code, tc.args)
		assert.Equal(t, source.Span{File: 3, Start: 29, End: 30}, d.Primary, tc.args)
		assert.Contains(t, d.Message, "found end of input", tc.args)
	}
}

func TestParseIntLiteral(t *testing.T) {
	tests := []struct {
		text string
		want int64
		ok   bool
	}{
		{"0", 0, true},
		{"1_000", 1000, true},
		{"0xff", 255, true},
		{"0o17", 15, true},
		{"0B101", 5, true},
		{"010", 10, true},
		{"9223372036854775807", 9223372036854775807, true},
		{"9223372036854775808", 0, false},
		{"42i32", 0, false},
		{"0x", 0, false},
	}
	for _, tc := range tests {
		got, err := seq.ParseIntLiteral(tc.text)
		if tc.ok {
			require.NoError(t, err, tc.text)
			assert.Equal(t, tc.want, got, tc.text)
		} else {
			assert.Error(t, err, tc.text)
		}
	}
}

func TestRange(t *testing.T) {
	assert.Equal(t, int64(3), seq.Range{Start: 0, End: 3}.Len())
	assert.Equal(t, int64(0), seq.Range{Start: 3, End: 3}.Len())
	assert.True(t, seq.Range{Start: 5, End: 1}.Empty())
	assert.Equal(t, seq.Range{Start: 0, End: 4}, seq.Invocation{End: 3, Inclusive: true}.Range())
}
