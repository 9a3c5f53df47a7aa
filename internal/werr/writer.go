// Package werr provides a small io.Writer wrapper that remembers the
// first write error it saw, so a long chain of formatted writes (a
// serializer or a board printer) doesn't need a error check after
// every call.
package werr

import (
	"io"

	"github.com/pkg/errors"
)

// Writer wraps an io.Writer and latches the first error it encounters.
// Once Err is set, Write becomes a no-op that keeps returning it.
type Writer struct {
	w   io.Writer
	Err error
}

// New returns a new Writer wrapping w.
func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Write(p []byte) (int, error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err := w.w.Write(p)
	if err == nil {
		return n, nil
	}
	return n, w.latch(err)
}

// WriteString writes s, tracking errors the same way as Write.
func (w *Writer) WriteString(s string) {
	if w.Err != nil {
		return
	}
	if _, err := io.WriteString(w.w, s); err != nil {
		w.latch(err)
	}
}

// latch records err as the writer's sticky failure and returns it.
func (w *Writer) latch(err error) error {
	w.Err = errors.Wrap(err, "write failed")
	return w.Err
}
