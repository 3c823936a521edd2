// Package ioutil provides writer helpers for header value rendering.
package ioutil

//go:generate go tool errtrace -w .

import (
	"io"
	"sync"

	"braces.dev/errtrace"
)

// Renderer is a value that writes its wire form to w.
type Renderer interface {
	RenderTo(w io.Writer) (int, error)
}

// CountingWriter sums the bytes written to the wrapped writer and keeps the first write error.
// Once an error is kept, every write is a no-op returning it, so a render routine
// issues its writes unchecked and reads the outcome once from [CountingWriter.Result].
type CountingWriter struct {
	w   io.Writer
	num int
	err error
}

// NewCountingWriter creates a new CountingWriter wrapping the given writer.
func NewCountingWriter(w io.Writer) *CountingWriter {
	return &CountingWriter{w: w}
}

func (cw *CountingWriter) track(n int, err error) (int, error) {
	cw.num += n
	if err != nil {
		cw.err = err
		return n, errtrace.Wrap(err)
	}
	return n, nil
}

// Write implements io.Writer.
func (cw *CountingWriter) Write(p []byte) (n int, err error) {
	if cw.err != nil {
		return 0, errtrace.Wrap(cw.err)
	}
	return cw.track(cw.w.Write(p))
}

// WriteString implements io.StringWriter.
func (cw *CountingWriter) WriteString(s string) (n int, err error) {
	if cw.err != nil {
		return 0, errtrace.Wrap(cw.err)
	}
	return cw.track(io.WriteString(cw.w, s))
}

// WriteByte implements io.ByteWriter. Used for single separators like ';' and '='.
func (cw *CountingWriter) WriteByte(c byte) error {
	if cw.err != nil {
		return errtrace.Wrap(cw.err)
	}
	_, err := cw.track(cw.w.Write([]byte{c}))
	return err
}

// Call passes the wrapped writer to a RenderTo-style function and accounts its result.
func (cw *CountingWriter) Call(fn func(io.Writer) (int, error)) *CountingWriter {
	if cw.err == nil {
		cw.track(fn(cw.w)) //nolint:errcheck
	}
	return cw
}

// Result returns the total number of bytes written and the first error encountered.
func (cw *CountingWriter) Result() (num int, err error) {
	return cw.num, errtrace.Wrap(cw.err)
}

// JoinTo renders items to w separated by sep, stopping at the first error.
func JoinTo[S ~[]E, E Renderer](w io.Writer, items S, sep string) (num int, err error) {
	cw := GetCountingWriter(w)
	defer FreeCountingWriter(cw)
	for i := range items {
		if i > 0 {
			cw.WriteString(sep) //nolint:errcheck
		}
		cw.Call(items[i].RenderTo)
	}
	return errtrace.Wrap2(cw.Result())
}

var cntWrtPool = &sync.Pool{
	New: func() any { return &CountingWriter{} },
}

func GetCountingWriter(w io.Writer) *CountingWriter {
	cw := cntWrtPool.Get().(*CountingWriter) //nolint:forcetypeassert
	cw.w = w
	return cw
}

func FreeCountingWriter(cw *CountingWriter) {
	*cw = CountingWriter{}
	cntWrtPool.Put(cw)
}
