package driver

import (
	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/lexer"
	"github.com/elk-cloner/proc-macro-workshop/internal/source"
	"github.com/elk-cloner/proc-macro-workshop/internal/token"
	"github.com/elk-cloner/proc-macro-workshop/internal/tt"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token // ends with EOF
	Trees   tt.Stream     // best effort when the file has errors
	Bag     *diag.Bag
}

// Tokenize lexes path and builds its token trees.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return TokenizeFile(fs, fileID, maxDiagnostics), nil
}

func TokenizeFile(fs *source.FileSet, id source.FileID, maxDiagnostics int) *TokenizeResult {
	file := fs.Get(id)
	bag := diag.NewBag(maxDiagnostics)
	r := diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: r})
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	trees, _ := tt.Build(tokens, r)
	return &TokenizeResult{FileSet: fs, File: file, Tokens: tokens, Trees: trees, Bag: bag}
}
