package derive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/testkit"
)

func TestCustomDebug(t *testing.T) {
	src := "package cmd\n\n//macrokit:derive CustomDebug\ntype Field struct {\n\tname    string\n\tbitmask uint8 `debug:\"0b%08b\"`\n\tratio   float64 `debug:\"100%% of %.2f\"`\n}\n"
	res, ok, bag, _ := generate(t, src)
	require.True(t, ok, "diagnostics: %v", bag.Items())
	assert.Contains(t, flat(res.Code),
		`func (x Field) GoString() string { return fmt.Sprintf("Field{name: %#v, bitmask: 0b%08b, ratio: 100%% of %.2f}", x.name, x.bitmask, x.ratio) }`)
	typeCheck(t, src, res.Code)
}

func TestCustomDebugEmptyAndGeneric(t *testing.T) {
	res, ok, _, _ := generate(t, "package cmd\n\n//macrokit:derive CustomDebug\ntype Empty struct{}\n")
	require.True(t, ok)
	assert.Contains(t, flat(res.Code), `func (x Empty) GoString() string { return "Empty{}" }`)
	assert.NotContains(t, string(res.Code), "import")

	src := "package cmd\n\n//macrokit:derive Builder CustomDebug\ntype Box[T any] struct{ v T }\n"
	res, ok, _, _ = generate(t, src)
	require.True(t, ok)
	assert.Contains(t, flat(res.Code), "func (x Box[T]) GoString() string")
	assert.Contains(t, flat(res.Code), "type BoxBuilder[T any] struct")
	typeCheck(t, src, res.Code)
}

func TestCustomDebugReceiverAvoidsTypeParams(t *testing.T) {
	src := "package cmd\n\n//macrokit:derive CustomDebug\ntype Opt[x any] struct{ val x }\n"
	res, ok, bag, _ := generate(t, src)
	require.True(t, ok, "diagnostics: %v", bag.Items())
	assert.Contains(t, flat(res.Code), `func (x1 Opt[x]) GoString() string { return fmt.Sprintf("Opt{val: %#v}", x1.val) }`)
	typeCheck(t, src, res.Code)
}

func TestCustomDebugErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"no verb", "package cmd\n//macrokit:derive CustomDebug\ntype T struct {\n\tx int `debug:\"hex\"`\n}\n", diag.DrvBadDebugFormat},
		{"trailing percent", "package cmd\n//macrokit:derive CustomDebug\ntype T struct {\n\tx int `debug:\"%\"`\n}\n", diag.DrvBadDebugFormat},
		{"width without verb", "package cmd\n//macrokit:derive CustomDebug\ntype T struct {\n\tx int `debug:\"n=%08\"`\n}\n", diag.DrvBadDebugFormat},
		{"star width", "package cmd\n//macrokit:derive CustomDebug\ntype T struct {\n\tx int `debug:\"%*d\"`\n}\n", diag.DrvBadDebugFormat},
		{"type parameter named fmt", "package cmd\n//macrokit:derive CustomDebug\ntype T[fmt any] struct{ x fmt }\n", diag.DrvDuplicateMethod},
		{"two verbs", "package cmd\n//macrokit:derive CustomDebug\ntype T struct {\n\tx int `debug:\"%x %x\"`\n}\n", diag.DrvBadDebugFormat},
		{"existing GoString", "package cmd\n//macrokit:derive CustomDebug\ntype T struct{ x int }\n\nfunc (t *T) GoString() string { return \"\" }\n", diag.DrvDuplicateMethod},
		{"embedded", "package cmd\n//macrokit:derive CustomDebug\ntype T struct{ error }\n", diag.DrvUnsupportedShape},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, ok, bag, _ := generate(t, tc.src)
			require.False(t, ok)
			assert.Equal(t, []diag.Code{tc.code}, testkit.Codes(bag))
		})
	}
}
