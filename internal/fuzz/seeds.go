package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

// builtinSeeds cover each syntax the engine knows about.
var builtinSeeds = []string{
	"",
	"seq!(N in 0..3 { fn f~N() -> u8 { N } })",
	"seq!(N in 0..=2 { #( struct S~N; )* })",
	"seq!(N in 3..3 { x })",
	"seq!(N in 5..1 { x })",
	"seq!(N in 0..2 { a ~ N b~ N #(( N ))* })",
	"seq![N in 0..2 [ ]]",
	"package p\n\nseq!(N in 0..4 {\n\tconst C~N = N\n})\n",
	"seq!(N in 0..18446744073709551616 {})",
	"seq!(N in 0..2 { /* unterminated",
	"seq!(N in 0..2 { \"str\" 'c' `raw` 1.5e3 0x1f })",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f, ".seq", ".go")
}

// addTestdataSeeds adds every file under the repository testdata directory
// whose extension is listed.
func addTestdataSeeds(f *testing.F, exts ...string) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		for _, ext := range exts {
			if filepath.Ext(path) != ext {
				continue
			}
			// #nosec G304 -- path comes from the repository testdata walk
			if src, err := os.ReadFile(path); err == nil {
				f.Add(clampSeed(src))
			}
		}
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
