package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/source"
)

type palette struct {
	err, warn, info, code, path, gutter, caret, note, fix *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		path:   color.New(color.FgWhite, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
		fix:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note, p.fix} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes diags in a human-readable form:
//
//	path:line:col: ERROR CODE: message
//	   3 | source line
//	     |   ^~~~
//
// followed by notes and fixes when enabled.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	var b strings.Builder
	for i := range diags {
		if opts.Max > 0 && i >= opts.Max {
			fmt.Fprintf(&b, "... %d more diagnostic(s) not shown\n", len(diags)-i)
			break
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		d := &diags[i]
		fmt.Fprintf(&b, "%s: %s %s: %s\n",
			p.path.Sprint(location(fs, d.Primary, opts.PathMode)),
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message)
		writeSnippet(&b, fs, d.Primary, opts.Context, p, p.caret)

		if opts.ShowNotes {
			for _, note := range d.Notes {
				fmt.Fprintf(&b, "  %s %s: %s\n", p.note.Sprint("note:"), location(fs, note.Span, opts.PathMode), note.Msg)
				writeSnippet(&b, fs, note.Span, 0, p, p.note)
			}
		}
		if opts.ShowFixes {
			writeFixes(&b, fs, d.Fixes, p)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func location(fs *source.FileSet, sp source.Span, mode PathMode) string {
	f := fs.Get(sp.File)
	if f == nil {
		return "<unknown>"
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(f, fs, mode), start.Line, start.Col)
}

func writeSnippet(b *strings.Builder, fs *source.FileSet, sp source.Span, context int, p palette, caret *color.Color) {
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	ctx := uint32(max(context, 0)) //nolint:gosec // non-negative
	first := max(start.Line, ctx+1) - ctx
	last := min(start.Line+ctx, max(lineCount(f), start.Line))
	width := len(fmt.Sprint(last))

	for n := first; n <= last; n++ {
		line := f.GetLine(n)
		fmt.Fprintf(b, "  %s %s\n", p.gutter.Sprintf("%*d |", width, n), line)
		if n != start.Line {
			continue
		}
		prefix, marked := splitAtColumns(line, start.Col, end, start.Line)
		fmt.Fprintf(b, "  %s %s%s\n",
			p.gutter.Sprintf("%*s |", width, ""),
			padFor(prefix),
			caret.Sprint(underline(runewidth.StringWidth(marked))))
	}
}

func lineCount(f *source.File) uint32 {
	n := uint32(len(f.LineIdx)) + 1 //nolint:gosec // LineIdx is built from a uint32-sized file
	if len(f.Content) > 0 && f.Content[len(f.Content)-1] == '\n' {
		n--
	}
	return n
}

// splitAtColumns returns the text before the span and the marked part on the
// span's first line. Columns are 1-based byte columns.
func splitAtColumns(line string, startCol uint32, end source.LineCol, startLine uint32) (prefix, marked string) {
	from := min(int(startCol)-1, len(line))
	from = max(from, 0)
	to := len(line)
	if end.Line == startLine {
		to = min(max(int(end.Col)-1, from), len(line))
	}
	return line[:from], line[from:to]
}

// padFor keeps tabs so the caret lines up with the source in any tab width.
func padFor(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

func underline(width int) string {
	if width <= 1 {
		return "^"
	}
	return "^" + strings.Repeat("~", width-1)
}

func writeFixes(b *strings.Builder, fs *source.FileSet, fixes []diag.Fix, p palette) {
	for _, fix := range fixes {
		fmt.Fprintf(b, "  %s %s\n", p.fix.Sprint("fix:"), fix.Title)
		for _, edit := range fix.Edits {
			preview, err := buildFixEditPreview(fs, edit)
			if err != nil {
				continue
			}
			for _, l := range preview.before {
				fmt.Fprintf(b, "    %s %s\n", p.err.Sprint("-"), l)
			}
			for _, l := range preview.after {
				fmt.Fprintf(b, "    %s %s\n", p.fix.Sprint("+"), l)
			}
		}
	}
}

// Short writes diags one per line in emission order.
func Short(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, includeNotes bool) error {
	out := diag.FormatShortDiagnostics(diags, fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
