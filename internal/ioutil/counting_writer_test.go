package ioutil_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ghettovoice/httpval/internal/ioutil"
)

var errWrite = errors.New("write failed")

type limitWriter struct {
	limit   int
	written int
}

func (lw *limitWriter) Write(p []byte) (int, error) {
	n := min(len(p), lw.limit-lw.written)
	lw.written += n
	if n < len(p) {
		return n, errWrite
	}
	return n, nil
}

func TestCountingWriter_Write(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cw := ioutil.NewCountingWriter(&buf)

	if n, err := cw.Write([]byte("chunked")); err != nil || n != 7 {
		t.Fatalf("cw.Write() = (%d, %v), want (7, nil)", n, err)
	}
	if n, err := cw.WriteString(", "); err != nil || n != 2 {
		t.Fatalf("cw.WriteString() = (%d, %v), want (2, nil)", n, err)
	}
	if n, err := cw.WriteString("gzip"); err != nil || n != 4 {
		t.Fatalf("cw.WriteString() = (%d, %v), want (4, nil)", n, err)
	}
	if err := cw.WriteByte(';'); err != nil {
		t.Fatalf("cw.WriteByte() error = %v, want nil", err)
	}
	cw.WriteString("q=1") //nolint:errcheck

	num, err := cw.Result()
	if err != nil {
		t.Fatalf("cw.Result() error = %v, want nil", err)
	}
	if num != 17 {
		t.Errorf("cw.Result() = %d, want 17", num)
	}
	if got, want := buf.String(), "chunked, gzip;q=1"; got != want {
		t.Errorf("buf.String() = %q, want %q", got, want)
	}
}

func TestCountingWriter_Call(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cw := ioutil.NewCountingWriter(&buf)
	cw.Call(func(w io.Writer) (int, error) {
		return io.WriteString(w, "abc")
	}).Call(func(w io.Writer) (int, error) {
		return io.WriteString(w, "def")
	})

	num, err := cw.Result()
	if err != nil || num != 6 {
		t.Errorf("cw.Result() = (%d, %v), want (6, nil)", num, err)
	}
	if got := buf.String(); got != "abcdef" {
		t.Errorf("buf.String() = %q, want %q", got, "abcdef")
	}
}

func TestCountingWriter_StickyError(t *testing.T) {
	t.Parallel()

	lw := &limitWriter{limit: 4}
	cw := ioutil.NewCountingWriter(lw)

	cw.WriteString("abc")
	if _, err := cw.WriteString("def"); !errors.Is(err, errWrite) {
		t.Fatalf("cw.WriteString() error = %v, want %v", err, errWrite)
	}

	called := false
	cw.Call(func(io.Writer) (int, error) {
		called = true
		return 0, nil
	})
	if called {
		t.Error("cw.Call() invoked the function after a write error")
	}
	if n, err := cw.Write([]byte("x")); n != 0 || !errors.Is(err, errWrite) {
		t.Errorf("cw.Write() = (%d, %v), want (0, %v)", n, err, errWrite)
	}
	if err := cw.WriteByte(','); !errors.Is(err, errWrite) {
		t.Errorf("cw.WriteByte() error = %v, want %v", err, errWrite)
	}

	num, err := cw.Result()
	if !errors.Is(err, errWrite) {
		t.Errorf("cw.Result() error = %v, want %v", err, errWrite)
	}
	if num != 4 {
		t.Errorf("cw.Result() num = %d, want 4", num)
	}
	if lw.written != 4 {
		t.Errorf("lw.written = %d, want 4", lw.written)
	}
}

func TestCountingWriter_Pool(t *testing.T) {
	t.Parallel()

	lw := &limitWriter{}
	cw := ioutil.GetCountingWriter(lw)
	cw.WriteString("x")
	if _, err := cw.Result(); err == nil {
		t.Fatal("cw.Result() error = nil, want error")
	}
	ioutil.FreeCountingWriter(cw)

	var buf bytes.Buffer
	cw = ioutil.GetCountingWriter(&buf)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString("ok")
	if num, err := cw.Result(); err != nil || num != 2 {
		t.Errorf("cw.Result() = (%d, %v), want (2, nil)", num, err)
	}
}

type item string

func (it item) RenderTo(w io.Writer) (int, error) { return io.WriteString(w, string(it)) }

func TestJoinTo(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		items   []item
		limit   int
		want    string
		wantErr error
	}{
		{"nil", nil, 100, "", nil},
		{"single", []item{"chunked"}, 100, "chunked", nil},
		{"many", []item{"gzip", "x-foo;a=b", "chunked"}, 100, "gzip, x-foo;a=b, chunked", nil},
		{"write error", []item{"gzip", "chunked"}, 5, "gzip,", errWrite},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			lw := &limitWriter{limit: c.limit}
			num, err := ioutil.JoinTo(io.MultiWriter(lw, &buf), c.items, ", ")
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("ioutil.JoinTo() error = %v, want %v", err, c.wantErr)
			}
			if num != len(c.want) {
				t.Errorf("ioutil.JoinTo() = %d, want %d", num, len(c.want))
			}
			if c.wantErr == nil {
				if got := buf.String(); got != c.want {
					t.Errorf("ioutil.JoinTo() wrote %q, want %q", got, c.want)
				}
			}
		})
	}
}
