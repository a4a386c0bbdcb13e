package diag

import (
	"testing"

	"github.com/elk-cloner/proc-macro-workshop/internal/source"
)

func TestDedupReporterByCodeAndSpan(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	at := source.Span{File: 1, Start: 4, End: 9}

	ReportError(r, DrvUnsupportedShape, at, "Builder cannot be derived").Emit()
	ReportError(r, DrvUnsupportedShape, at, "CustomDebug cannot be derived").Emit()
	ReportError(r, DrvEachNotSlice, at, "other code").Emit()
	ReportError(r, DrvUnsupportedShape, source.Span{File: 1, Start: 10, End: 12}, "other span").Emit()

	if bag.Len() != 3 {
		t.Fatalf("Len = %d, want 3", bag.Len())
	}
	if r.Suppressed() != 1 {
		t.Fatalf("Suppressed = %d, want 1", r.Suppressed())
	}
	if got := bag.Items()[0].Message; got != "Builder cannot be derived" {
		t.Fatalf("first kept message = %q", got)
	}
}

func TestReplayKeepsNotesAndFixes(t *testing.T) {
	d := New(SevWarning, SeqIncompleteSplice, source.Span{Start: 1, End: 2}, "splice").
		WithNote(source.Span{Start: 0, End: 1}, "here").
		WithFix("splice `N`", FixEdit{Span: source.Span{Start: 2, End: 2}, NewText: "N"})
	bag := NewBag(0)
	d.Replay(BagReporter{Bag: bag})
	d.Replay(nil)

	if bag.Len() != 1 {
		t.Fatalf("Len = %d", bag.Len())
	}
	got := bag.Items()[0]
	if len(got.Notes) != 1 || len(got.Fixes) != 1 || got.Fixes[0].Edits[0].NewText != "N" {
		t.Fatalf("replayed diagnostic lost detail: %+v", got)
	}
}

func TestSeverityNames(t *testing.T) {
	cases := []struct {
		sev          Severity
		upper, lower string
	}{
		{SevInfo, "INFO", "info"},
		{SevWarning, "WARNING", "warning"},
		{SevError, "ERROR", "error"},
		{Severity(9), "UNKNOWN", "info"},
	}
	for _, c := range cases {
		if c.sev.String() != c.upper || c.sev.Label() != c.lower {
			t.Fatalf("%d: got %s/%s", c.sev, c.sev.String(), c.sev.Label())
		}
	}
}

func TestIntLiteralTitleCoversSuffixes(t *testing.T) {
	if got := SynBadIntLit.Title(); got != "Invalid integer literal" {
		t.Fatalf("SynBadIntLit.Title() = %q", got)
	}
}
