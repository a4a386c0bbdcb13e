package observ

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	outer := tm.Begin("expand")
	inner := tm.Begin("lex")
	time.Sleep(2 * time.Millisecond)
	tm.End(inner, "3 files")
	tm.End(outer, "")
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %d", len(r.Phases))
	}
	if r.Phases[1].Note != "3 files" {
		t.Fatalf("note = %q", r.Phases[1].Note)
	}
	if r.TotalMS < r.Phases[0].DurationMS || r.Phases[0].DurationMS < r.Phases[1].DurationMS {
		t.Fatalf("nested phases not accounted for: %+v", r)
	}
	if !strings.Contains(tm.Summary(), "// 3 files") {
		t.Fatalf("summary:\n%s", tm.Summary())
	}
}

func TestMeasure(t *testing.T) {
	tm := NewTimer()
	err := tm.Measure("write", func() (string, error) { return "", errors.New("disk full") })
	if err == nil || tm.Report().Phases[0].Note != "failed" {
		t.Fatalf("err = %v, report = %+v", err, tm.Report())
	}
	if (&Timer{}).Report().Phases != nil {
		t.Fatal("empty timer should report no phases")
	}
}
