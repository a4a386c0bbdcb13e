package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		l, err := ParseLevel(strings.ToUpper(s))
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if l.String() != s {
			t.Fatalf("ParseLevel(%q) = %v", s, l)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeCall, false},
		{LevelDebug, ScopeCall, true},
		{LevelError, ScopeCall, true},
	}
	for _, tc := range tests {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON, "run-1")

	root := Begin(tr, ScopeDriver, "expand", 0)
	file := Begin(tr, ScopeFile, "file:a.seq", root.ID())
	Begin(tr, ScopeCall, "seq!", file.ID()).End("")
	file.WithExtra("calls", "1").End("ok")
	root.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d events, want 4:\n%s", len(lines), buf.String())
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "end" || ev.Name != "file:a.seq" || ev.Detail != "ok" || ev.Extra["calls"] != "1" {
		t.Fatalf("unexpected event %+v", ev)
	}
	if ev.Run != "run-1" || ev.ParentID != root.ID() {
		t.Fatalf("run/parent not recorded: %+v", ev)
	}
}

func TestFormatText(t *testing.T) {
	start := time.Unix(100, 0)
	ev := &Event{
		Time:     start.Add(1500 * time.Microsecond),
		Kind:     KindSpanEnd,
		ParentID: 1,
		Name:     "print",
		Detail:   "done",
		Extra:    map[string]string{"b": "2", "a": "1"},
	}
	got := string(FormatEvent(ev, FormatText, start))
	want := "[   1.500ms]   ← print (done) {a=1, b=2}\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(3, LevelDebug, "r")
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(tr, ScopePass, name, "", 0)
	}
	snap := tr.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Fatalf("snap[%d] = %q, want %q", i, snap[i].Name, want)
		}
	}

	var buf bytes.Buffer
	multi := NewMultiTracer(LevelDebug, Nop, tr)
	found, err := DumpRing(multi, &buf, FormatText)
	if !found || err != nil {
		t.Fatalf("DumpRing = %v, %v", found, err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump:\n%s", buf.String())
	}
}

func TestInertSpans(t *testing.T) {
	s := Begin(Nop, ScopeDriver, "x", 0)
	if s.ID() != 0 || s.End("") != 0 {
		t.Fatal("span on Nop tracer should be inert")
	}
	var nilSpan *Span
	if nilSpan.WithExtra("k", "v") != nil || nilSpan.ID() != 0 {
		t.Fatal("nil span should be inert")
	}

	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText, "")
	Begin(tr, ScopeFile, "file", 0).End("")
	if buf.Len() != 0 {
		t.Fatalf("file span recorded at phase level: %q", buf.String())
	}
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context should yield Nop")
	}
	tr := NewRingTracer(4, LevelDebug, "")
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatal("tracer not propagated")
	}
	span := Begin(tr, ScopeDriver, "d", 0)
	if ParentFromContext(WithParent(ctx, span)) != span.ID() {
		t.Fatal("parent not propagated")
	}
}

func TestNewConfig(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("off level: %v, %v", tr, err)
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Point(tr, ScopeDriver, "hello", "", 0)
	if !strings.Contains(buf.String(), "• hello") {
		t.Fatalf("stream output %q", buf.String())
	}
	if _, err := ParseMode("tape"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if len(NewRunID()) != 36 {
		t.Fatal("run id is not a UUID")
	}
}
