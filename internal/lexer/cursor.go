package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/elk-cloner/proc-macro-workshop/internal/source"
)

// Cursor walks the bytes of one file. Off never passes Limit, which is the
// file length unless a caller narrows it.
type Cursor struct {
	File  *source.File
	Off   uint32
	Limit uint32
}

func NewCursor(f *source.File) Cursor {
	return Cursor{File: f, Limit: contentLen(f)}
}

func contentLen(f *source.File) uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("source %s is larger than 4 GiB: %w", f.Path, err))
	}
	return n
}

// Rest is the unread input up to Limit.
func (c *Cursor) Rest() []byte {
	end := min(c.Limit, contentLen(c.File))
	if c.Off >= end {
		return nil
	}
	return c.File.Content[c.Off:end]
}

func (c *Cursor) EOF() bool { return len(c.Rest()) == 0 }

// Peek returns the byte under the cursor, 0 at EOF.
func (c *Cursor) Peek() byte {
	if rest := c.Rest(); len(rest) > 0 {
		return rest[0]
	}
	return 0
}

// Peek2 looks at two bytes; ok is false when fewer remain.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	rest := c.Rest()
	if len(rest) < 2 {
		return 0, 0, false
	}
	return rest[0], rest[1], true
}

// Peek3 looks at three bytes, enough to tell `..=` from `..` and `...`.
func (c *Cursor) Peek3() (b0, b1, b2 byte, ok bool) {
	rest := c.Rest()
	if len(rest) < 3 {
		return 0, 0, 0, false
	}
	return rest[0], rest[1], rest[2], true
}

// HasPrefix reports whether the unread input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	rest := c.Rest()
	return len(rest) >= len(s) && string(rest[:len(s)]) == s
}

// Advance skips n bytes, stopping at Limit.
func (c *Cursor) Advance(n int) {
	step, err := safecast.Conv[uint32](min(n, len(c.Rest())))
	if err != nil {
		panic(fmt.Errorf("cursor advance: %w", err))
	}
	c.Off += step
}

// Bump consumes one byte and returns it, 0 at EOF.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	c.Advance(1)
	return b
}

// Eat consumes b when it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.Peek() != b {
		return false
	}
	c.Off++
	return true
}

func (c *Cursor) SkipToEnd() { c.Advance(len(c.Rest())) }

// Mark remembers an offset for SpanFrom and Reset.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }
