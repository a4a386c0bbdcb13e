package diag

import (
	"testing"

	"github.com/elk-cloner/proc-macro-workshop/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	userFile := fs.Add("/workspace/testdata/golden/sample.go.seq", []byte("a\nb\n"), 0)
	otherFile := fs.Add("/workspace/testdata/golden/other.go.seq", []byte("x\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     SeqReversedRange,
			Message:  "another",
			Primary:  source.Span{File: userFile, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: otherFile, Start: 0, End: 0}, Msg: "defined here"},
				{Span: source.Span{File: source.FileID(99), Start: 0, End: 0}, Msg: "dangling"},
			},
		},
	}

	expected := "note SYN2001 testdata/golden/other.go.seq:1:1 defined here\n" +
		"error SYN2001 testdata/golden/sample.go.seq:1:1 first line second\n" +
		"warning SEQ3005 testdata/golden/sample.go.seq:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatShortKeepsOrder(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/w")
	id := fs.Add("/w/a.seq", []byte("ab\ncd"), 0)

	diags := []Diagnostic{
		NewError(SynExpectBody, source.Span{File: id, Start: 3, End: 4}, "expected `{`"),
		NewError(SynExpectIn, source.Span{File: id, Start: 0, End: 1}, "expected `in`"),
	}
	want := "error SYN2105 a.seq:2:1 expected `{`\n" +
		"error SYN2102 a.seq:1:1 expected `in`"
	if got := FormatShortDiagnostics(diags, fs, false); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
	if got := FormatShortDiagnostics(nil, fs, false); got != "" {
		t.Fatalf("empty input must render empty, got %q", got)
	}
}
