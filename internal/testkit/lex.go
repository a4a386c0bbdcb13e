package testkit

import (
	"testing"

	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/source"
	"github.com/elk-cloner/proc-macro-workshop/internal/tt"
)

// Lex builds token trees from src held in a fresh virtual file.
func Lex(src string) (tt.Stream, *source.FileSet, *diag.Bag) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("input.seq", []byte(src)))
	bag := diag.NewBag(0)
	stream, _ := tt.Lex(file, diag.BagReporter{Bag: bag})
	return stream, fs, bag
}

// MustLex is Lex for well-formed input: any diagnostic fails the test.
func MustLex(tb testing.TB, src string) tt.Stream {
	tb.Helper()
	stream, fs, bag := Lex(src)
	if bag.Len() > 0 {
		tb.Fatalf("lexing %q:\n%s", src, diag.FormatShortDiagnostics(bag.Items(), fs, true))
	}
	return stream
}

// Codes lists the diagnostic codes in bag, in order.
func Codes(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}
