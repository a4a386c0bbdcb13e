package trace

import (
	"io"
	"sync"
	"time"
)

// RingTracer keeps the most recent events in memory so a failing run can
// dump what led up to the failure.
type RingTracer struct {
	mu     sync.RWMutex
	events []Event
	head   int  // next write position
	full   bool // the buffer has wrapped
	level  Level
	run    string
	start  time.Time
}

func NewRingTracer(capacity int, level Level, run string) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{events: make([]Event, capacity), level: level, run: run, start: time.Now()}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	stored := *ev
	stored.Seq = NextSeq()
	stored.Run = t.run
	t.events[t.head] = stored
	t.head = (t.head + 1) % len(t.events)
	if t.head == 0 {
		t.full = true
	}
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.full {
		return append([]Event(nil), t.events[:t.head]...)
	}
	out := make([]Event, 0, len(t.events))
	out = append(out, t.events[t.head:]...)
	return append(out, t.events[:t.head]...)
}

// Dump writes the stored events to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format, t.start)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }

func (t *RingTracer) Close() error { return nil }

func (t *RingTracer) Level() Level { return t.level }

func (t *RingTracer) Enabled() bool { return t.level > LevelOff }

// DumpRing writes the ring buffer held by t, directly or inside a
// MultiTracer. It reports whether a ring was found.
func DumpRing(t Tracer, w io.Writer, format Format) (bool, error) {
	switch x := t.(type) {
	case *RingTracer:
		return true, x.Dump(w, format)
	case *MultiTracer:
		for _, inner := range x.tracers {
			if found, err := DumpRing(inner, w, format); found {
				return true, err
			}
		}
	}
	return false, nil
}
