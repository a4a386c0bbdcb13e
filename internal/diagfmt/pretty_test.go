package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/lexer"
	"github.com/elk-cloner/proc-macro-workshop/internal/source"
	"github.com/elk-cloner/proc-macro-workshop/internal/testkit"
	"github.com/elk-cloner/proc-macro-workshop/internal/token"
)

const sample = "seq!(N of 0..2 {})\n"

func sampleDiag(t *testing.T) (*source.FileSet, []diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("input.seq", []byte(sample))
	d := diag.NewError(diag.SynExpectIn, source.Span{File: id, Start: 7, End: 9}, "expected `in`, found `of`").
		WithNote(source.Span{File: id, Start: 5, End: 6}, "loop variable").
		WithFix("replace with `in`", diag.FixEdit{Span: source.Span{File: id, Start: 7, End: 9}, NewText: "in"})
	return fs, []diag.Diagnostic{d}
}

func TestPrettyHeaderAndCaret(t *testing.T) {
	fs, diags := sampleDiag(t)
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, diags, fs, PrettyOpts{PathMode: PathModeBasename}))

	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "input.seq:1:8: ERROR SYN2102: expected `in`, found `of`", lines[0])
	assert.Equal(t, "  1 | seq!(N of 0..2 {})", lines[1])
	assert.Equal(t, "    |        ^~", lines[2])
	assert.NotContains(t, buf.String(), "note:")
	assert.NotContains(t, buf.String(), "fix:")
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs, diags := sampleDiag(t)
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, diags, fs, PrettyOpts{ShowNotes: true, ShowFixes: true}))

	out := buf.String()
	assert.Contains(t, out, "note: input.seq:1:6: loop variable")
	assert.Contains(t, out, "fix: replace with `in`")
	assert.Contains(t, out, "- seq!(N of 0..2 {})")
	assert.Contains(t, out, "+ seq!(N in 0..2 {})")
}

func TestPrettyColor(t *testing.T) {
	fs, diags := sampleDiag(t)
	var plain, colored bytes.Buffer
	require.NoError(t, Pretty(&plain, diags, fs, PrettyOpts{}))
	require.NoError(t, Pretty(&colored, diags, fs, PrettyOpts{Color: true}))

	assert.NotContains(t, plain.String(), "\x1b[")
	assert.Contains(t, colored.String(), "\x1b[")
}

func TestPrettyContextAndMax(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("input.seq", []byte("a\nb\nc\nd\n"))
	d := diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: 4, End: 5}, "unexpected `c`")
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, []diag.Diagnostic{d, d}, fs, PrettyOpts{Context: 1, Max: 1}))

	out := buf.String()
	assert.Contains(t, out, "  2 | b\n  3 | c\n    | ^\n  4 | d\n")
	assert.Contains(t, out, "... 1 more diagnostic(s) not shown")
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	src := "\"日本\" x\n"
	id := fs.AddVirtual("input.seq", []byte(src))
	start := uint32(strings.Index(src, "x"))
	d := diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: start, End: start + 1}, "unexpected `x`")
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{}))

	assert.Contains(t, buf.String(), "    |        ^\n")
}

func TestShort(t *testing.T) {
	fs, diags := sampleDiag(t)
	var buf bytes.Buffer
	require.NoError(t, Short(&buf, diags, fs, false))
	assert.Equal(t, "error SYN2102 input.seq:1:8 expected `in`, found `of`\n", buf.String())

	buf.Reset()
	require.NoError(t, Short(&buf, nil, fs, false))
	assert.Empty(t, buf.String())
}

func TestJSON(t *testing.T) {
	fs, diags := sampleDiag(t)
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, diags, fs, JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		IncludeFixes:     true,
		IncludePreviews:  true,
	}))

	var out DiagnosticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, 1, out.Count)
	assert.Equal(t, 1, out.Errors)

	d := out.Diagnostics[0]
	assert.Equal(t, "SYN2102", d.Code)
	assert.Equal(t, "ERROR", d.Severity)
	assert.Equal(t, "Expected `in`", d.Title)
	assert.Equal(t, LocationJSON{File: "input.seq", StartByte: 7, EndByte: 9, StartLine: 1, StartCol: 8, EndLine: 1, EndCol: 10}, d.Location)
	require.Len(t, d.Notes, 1)
	assert.Equal(t, "loop variable", d.Notes[0].Message)
	require.Len(t, d.Fixes, 1)
	edit := d.Fixes[0].Edits[0]
	assert.Equal(t, "of", edit.OldText)
	assert.Equal(t, "in", edit.NewText)
	assert.Equal(t, []string{"seq!(N in 0..2 {})"}, edit.AfterLines)
}

func TestJSONMaxAndDefaults(t *testing.T) {
	fs, diags := sampleDiag(t)
	out := BuildDiagnosticsOutput(append(diags, diags...), fs, JSONOpts{Max: 1})
	require.Equal(t, 1, out.Count)
	d := out.Diagnostics[0]
	assert.Zero(t, d.Location.StartLine)
	assert.Empty(t, d.Notes)
	assert.Empty(t, d.Fixes)
}

func TestTokenDumps(t *testing.T) {
	stream, fs, bag := testkit.Lex("f~N (a, 1)")
	require.Zero(t, bag.Len())

	var pretty bytes.Buffer
	require.NoError(t, FormatTreesPretty(&pretty, stream, fs))
	assert.Equal(t, strings.Join([]string{
		`Ident "f" at 1:1`,
		`Punct "~" Alone at 1:2`,
		`Ident "N" at 1:3`,
		`Group Parenthesis () at 1:5`,
		`  Ident "a" at 1:6`,
		`  Punct "," Alone at 1:7`,
		`  Literal "1" at 1:9`,
	}, "\n")+"\n", pretty.String())

	var js bytes.Buffer
	require.NoError(t, FormatTreesJSON(&js, stream))
	var trees []TreeOutput
	require.NoError(t, json.Unmarshal(js.Bytes(), &trees))
	require.Len(t, trees, 4)
	assert.Equal(t, "Parenthesis", trees[3].Delim)
	assert.Len(t, trees[3].Stream, 3)

	var ym bytes.Buffer
	require.NoError(t, FormatTreesYAML(&ym, stream))
	var back []TreeOutput
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &back))
	assert.Equal(t, trees, back)
}

func TestFlatTokenDumps(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("input.seq", []byte("x // c\ny")))
	lx := lexer.New(file, lexer.Options{})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	var pretty bytes.Buffer
	require.NoError(t, FormatTokensPretty(&pretty, toks, fs))
	lines := strings.Split(strings.TrimSpace(pretty.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `"x" at 1:1-1:2`)
	assert.Contains(t, lines[1], `"y" at 2:1-2:2`)
	assert.Contains(t, lines[1], "(leading: ")

	var js bytes.Buffer
	require.NoError(t, FormatTokensJSON(&js, toks))
	var out []TokenOutput
	require.NoError(t, json.Unmarshal(js.Bytes(), &out))
	require.Len(t, out, 3)
	assert.Equal(t, "y", out[1].Text)
	assert.NotEmpty(t, out[1].Leading)

	var ym bytes.Buffer
	require.NoError(t, FormatTokensYAML(&ym, toks))
	var back []TokenOutput
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &back))
	assert.Equal(t, out, back)
}
