package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/elk-cloner/proc-macro-workshop/internal/source"
	"github.com/elk-cloner/proc-macro-workshop/internal/tt"
)

// CheckSpanInvariants runs a minimal set of span invariants on a tree built
// from sf:
// 1) every span is non-empty, points into sf and lies within its content
// 2) siblings appear in source order and do not overlap
// 3) a group's span contains the spans of all of its children
func CheckSpanInvariants(stream tt.Stream, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	return checkStream(stream, sf.ID, lenContent, nil)
}

func checkStream(stream tt.Stream, file source.FileID, limit uint32, parent *tt.Tree) error {
	var prevEnd uint32
	for i := range stream {
		t := &stream[i]
		sp := t.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty %s span: %v", t.Kind, sp)
		}
		if sp.File != file {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", t.Kind, sp.File, file)
		}
		if sp.End > limit {
			return fmt.Errorf("%s span end beyond content: %d > %d", t.Kind, sp.End, limit)
		}
		if i > 0 && sp.Start < prevEnd {
			return fmt.Errorf("%s span %v overlaps its predecessor ending at %d", t.Kind, sp, prevEnd)
		}
		if parent != nil && !parent.Span.Contains(sp) {
			return fmt.Errorf("%s span %v escapes group span %v", t.Kind, sp, parent.Span)
		}
		if t.Kind == tt.KindGroup {
			if err := checkStream(t.Stream, file, limit, t); err != nil {
				return err
			}
		}
		prevEnd = sp.End
	}
	return nil
}
