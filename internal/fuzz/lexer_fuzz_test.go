package fuzztests

import (
	"testing"

	"github.com/elk-cloner/proc-macro-workshop/internal/derive"
	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/expand"
	"github.com/elk-cloner/proc-macro-workshop/internal/lexer"
	"github.com/elk-cloner/proc-macro-workshop/internal/seq"
	"github.com/elk-cloner/proc-macro-workshop/internal/source"
	"github.com/elk-cloner/proc-macro-workshop/internal/testkit"
	"github.com/elk-cloner/proc-macro-workshop/internal/token"
	"github.com/elk-cloner/proc-macro-workshop/internal/tt"
)

const maxFuzzInput = 1 << 16

func load(input []byte, name string) *source.File {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual(name, append([]byte(nil), input...)))
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		file := load(input, "fuzz.seq")
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: diag.NewBag(64)}})
		for n := 0; ; n++ {
			if tok := lx.Next(); tok.Kind == token.EOF {
				break
			}
			if n > len(file.Content)+1 {
				t.Fatalf("lexer produced more tokens than input bytes")
			}
		}
	})
}

func FuzzTreeSpans(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		file := load(input, "fuzz.seq")
		stream, ok := tt.Lex(file, diag.NopReporter{})
		if !ok {
			return
		}
		if err := testkit.CheckSpanInvariants(stream, file); err != nil {
			t.Fatalf("span invariant: %v", err)
		}
	})
}

func FuzzExpandFile(f *testing.F) {
	addCorpusSeeds(f)
	opts := expand.Options{
		Macros: expand.DefaultMacros,
		Seq:    seq.Options{MaxDepth: 32, MaxIterations: 64, Lint: true},
	}
	f.Fuzz(func(t *testing.T, input []byte) {
		file := load(input, "fuzz.seq")
		stream, ok := tt.Lex(file, diag.NopReporter{})
		if !ok {
			return
		}
		bag := diag.NewBag(0)
		out, stats, ok := expand.File(stream, opts, diag.BagReporter{Bag: bag})
		if ok && bag.HasErrors() {
			t.Fatalf("expansion succeeded with errors: %v", bag.Items())
		}
		if !ok && stats.Failed == 0 {
			t.Fatalf("expansion failed without a failed call")
		}
		if stats.Trees != tt.Count(out) {
			t.Fatalf("stats report %d trees, output has %d", stats.Trees, tt.Count(out))
		}
		_ = tt.Print(out, tt.PrintOptions{PreserveLines: true})
	})
}

func FuzzDerive(f *testing.F) {
	f.Add([]byte("package p\n\n//macrokit:derive Builder, CustomDebug\ntype T struct {\n\tA int\n\tB []string `builder:\"each=b\"`\n}\n"))
	f.Add([]byte("package p\n\n//macrokit:derive CustomDebug\ntype T[K comparable] struct{ M map[K]int `debug:\"%v\"` }\n"))
	f.Add([]byte("package p\n//macrokit:derive Builder\ntype T int\n"))
	addTestdataSeeds(f, ".go")
	f.Fuzz(func(t *testing.T, input []byte) {
		file := load(input, "fuzz.go")
		bag := diag.NewBag(0)
		res, ok := derive.Generate(file, derive.DefaultOptions(), diag.BagReporter{Bag: bag})
		if !ok && res.Code != nil {
			t.Fatalf("failed derive returned code")
		}
		if ok && bag.HasErrors() {
			t.Fatalf("derive succeeded with errors: %v", bag.Items())
		}
	})
}
