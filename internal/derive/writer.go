package derive

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
)

// Writer accumulates generated Go source.
type Writer struct {
	bytes.Buffer
}

// Line emits a line of text.
func (w *Writer) Line(text string) {
	_, _ = io.WriteString(w, text+"\n")
}

// Linef emits a line of text via a fmt format string.
func (w *Writer) Linef(format string, a ...any) {
	_, _ = fmt.Fprintf(w, format+"\n", a...)
}

// Raw returns the source as written, useful when Fmt fails.
func (w *Writer) Raw() []byte {
	return w.Bytes()
}

// Fmt returns the gofmt-formatted source. It fails when the generated source
// does not parse.
func (w *Writer) Fmt() ([]byte, error) {
	return format.Source(w.Raw())
}
