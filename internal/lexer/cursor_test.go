package lexer

import (
	"testing"

	"github.com/elk-cloner/proc-macro-workshop/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.seq", []byte(content))
	return fs.Get(id)
}

// "a\nb" reads as a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Peek = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() {
		t.Fatal("expected EOF at end")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatal("Peek/Bump at EOF must return 0")
	}
}

func TestPeek2Peek3(t *testing.T) {
	cursor := NewCursor(createFile("abc"))

	if b0, b1, b2, ok := cursor.Peek3(); !ok || b0 != 'a' || b1 != 'b' || b2 != 'c' {
		t.Fatalf("Peek3 at start = %q %q %q %v", b0, b1, b2, ok)
	}
	cursor.Bump()
	if _, _, _, ok := cursor.Peek3(); ok {
		t.Fatal("Peek3 must fail with two bytes left")
	}
	if b0, b1, ok := cursor.Peek2(); !ok || b0 != 'b' || b1 != 'c' {
		t.Fatalf("Peek2 in middle = %q %q %v", b0, b1, ok)
	}
	cursor.Bump()
	if b0, b1, ok := cursor.Peek2(); ok || b0 != 0 || b1 != 0 {
		t.Fatalf("Peek2 at end = %q %q %v", b0, b1, ok)
	}
}

func TestSpanFromResolve(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("utf.seq", []byte("α\nβ")))
	cursor := NewCursor(file)

	mark := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	span := cursor.SpanFrom(mark)
	if span.Start != 0 || span.End != 2 || span.File != file.ID {
		t.Fatalf("span = %v", span)
	}

	start, end := fs.Resolve(span)
	if start != (source.LineCol{Line: 1, Col: 1}) || end != (source.LineCol{Line: 1, Col: 3}) {
		t.Fatalf("Resolve = %+v %+v", start, end)
	}

	mark = cursor.Mark()
	cursor.Bump() // '\n'
	start, end = fs.Resolve(cursor.SpanFrom(mark))
	if start != (source.LineCol{Line: 1, Col: 3}) || end != (source.LineCol{Line: 2, Col: 1}) {
		t.Fatalf("newline Resolve = %+v %+v", start, end)
	}
}

func TestEatAndReset(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	if !cursor.Eat('a') || !cursor.Eat('\n') || !cursor.Eat('b') {
		t.Fatal("expected Eat to consume a, \\n, b")
	}
	if cursor.Eat('x') {
		t.Fatal("Eat at EOF must fail")
	}

	cursor.Reset(Mark(0))
	if cursor.Eat('x') {
		t.Fatal("Eat of a mismatching byte must fail")
	}
	if cursor.Peek() != 'a' {
		t.Fatalf("failed Eat moved the cursor to %q", cursor.Peek())
	}

	cursor.SkipToEnd()
	if !cursor.EOF() {
		t.Fatal("SkipToEnd must reach EOF")
	}
}

func TestCursorLimit(t *testing.T) {
	cursor := NewCursor(createFile("abcdef"))
	cursor.Limit = 2
	cursor.Bump()
	cursor.Bump()
	if !cursor.EOF() {
		t.Fatal("Limit must bound the cursor")
	}
}

func TestCursorHasPrefixAndAdvance(t *testing.T) {
	cursor := NewCursor(createFile("..=5"))
	if !cursor.HasPrefix("..=") || cursor.HasPrefix("...") {
		t.Fatal("HasPrefix must match `..=` only")
	}
	cursor.Advance(3)
	if got := cursor.Peek(); got != '5' {
		t.Fatalf("after Advance(3) Peek = %q", got)
	}
	cursor.Advance(10)
	if !cursor.EOF() || cursor.Off != 4 {
		t.Fatalf("Advance past the end must stop at the limit, Off = %d", cursor.Off)
	}
	if cursor.HasPrefix("5") {
		t.Fatal("HasPrefix at EOF must be false")
	}
}
