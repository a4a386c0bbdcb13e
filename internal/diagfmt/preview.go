package diagfmt

import (
	"fmt"
	"strings"

	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/source"
)

type fixEditPreview struct {
	before []string
	after  []string
}

// buildFixEditPreview applies edit to the lines it touches.
func buildFixEditPreview(fs *source.FileSet, edit diag.FixEdit) (fixEditPreview, error) {
	file := fs.Get(edit.Span.File)
	if file == nil {
		return fixEditPreview{}, fmt.Errorf("file %d not found in FileSet", edit.Span.File)
	}
	startPos, endPos := fs.Resolve(edit.Span)
	blockStart := lineStart(file, startPos.Line)
	blockEnd := max(lineEnd(file, max(endPos.Line, startPos.Line)), blockStart)

	if edit.Span.Start < blockStart || edit.Span.End > blockEnd || edit.Span.End < edit.Span.Start {
		return fixEditPreview{}, fmt.Errorf("edit span %v outside lines %d-%d", edit.Span, startPos.Line, endPos.Line)
	}
	original := string(file.Content[blockStart:blockEnd])
	relStart, relEnd := edit.Span.Start-blockStart, edit.Span.End-blockStart
	after := original[:relStart] + edit.NewText + original[relEnd:]
	return fixEditPreview{before: splitLines(original), after: splitLines(after)}, nil
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

// lineStart is the offset of the first byte of line (1-based).
func lineStart(f *source.File, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	if idx := int(line) - 2; idx < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return contentLen(f)
}

// lineEnd is the offset just past the newline ending line, or the end of file.
func lineEnd(f *source.File, line uint32) uint32 {
	if line == 0 {
		return 0
	}
	if idx := int(line) - 1; idx < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return contentLen(f)
}
