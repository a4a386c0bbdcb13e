package main

import (
	"io"

	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/diagfmt"
	"github.com/elk-cloner/proc-macro-workshop/internal/source"
)

// printDiagnostics renders diags in the configured format. Nothing is
// written when diags is empty, except an empty JSON document.
func (s *settings) printDiagnostics(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet) error {
	switch s.cfg.Diagnostics.Format {
	case "json":
		return diagfmt.JSON(w, diags, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			Max:              s.cfg.Diagnostics.Max,
			IncludeNotes:     true,
			IncludeFixes:     true,
			IncludePreviews:  true,
		})
	case "short":
		if limit := s.cfg.Diagnostics.Max; limit > 0 && len(diags) > limit {
			diags = diags[:limit]
		}
		return diagfmt.Short(w, diags, fs, true)
	default:
		if len(diags) == 0 {
			return nil
		}
		return diagfmt.Pretty(w, diags, fs, diagfmt.PrettyOpts{
			Color:     s.color,
			Context:   1,
			PathMode:  diagfmt.PathModeRelative,
			ShowNotes: true,
			ShowFixes: true,
			Max:       s.cfg.Diagnostics.Max,
		})
	}
}

// collect concatenates bags in order.
func collect(bags ...*diag.Bag) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, b := range bags {
		if b != nil {
			out = append(out, b.Items()...)
		}
	}
	return out
}
