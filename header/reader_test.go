package header_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/httpval/header"
)

func TestReader_ReadToken(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    string
		wantPos int
		wantErr error
	}{
		{"token", "gzip", "gzip", 4, nil},
		{"token before params", "gzip;q=1", "gzip", 4, nil},
		{"token before space", "x-gzip rest", "x-gzip", 6, nil},
		{"empty", "", "", 0, header.ErrUnexpectedEnd},
		{"separator", ";q=1", "", 0, header.ErrMalformedInput},
		{"leading space", " gzip", "", 0, header.ErrMalformedInput},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			r := header.NewReader(c.in)
			got, err := r.ReadToken()
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("r.ReadToken() error = %v, want %v", err, c.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("r.ReadToken() error = %v, want nil", err)
			}
			if got != c.want {
				t.Errorf("r.ReadToken() = %q, want %q", got, c.want)
			}
			if r.Pos() != c.wantPos {
				t.Errorf("r.Pos() = %d, want %d", r.Pos(), c.wantPos)
			}
		})
	}
}

func TestReader_ReadQuotedString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    string
		wantPos int
		wantErr error
	}{
		{"empty string", `""`, "", 2, nil},
		{"plain", `"abc"`, "abc", 5, nil},
		{"separators", `"a, b; c=d" tail`, "a, b; c=d", 11, nil},
		{"escaped quote", `"a\"b"`, `a"b`, 6, nil},
		{"escaped backslash", `"a\\b"`, `a\b`, 6, nil},
		{"tab", "\"a\tb\"", "a\tb", 5, nil},
		{"not quoted", `abc`, "", 0, header.ErrMalformedInput},
		{"unterminated", `"abc`, "", 0, header.ErrUnexpectedEnd},
		{"dangling escape", `"abc\`, "", 0, header.ErrUnexpectedEnd},
		{"control", "\"a\x01b\"", "", 0, header.ErrMalformedInput},
		{"escaped non-char", "\"a\\\xffb\"", "", 0, header.ErrMalformedInput},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			r := header.NewReader(c.in)
			got, err := r.ReadQuotedString()
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("r.ReadQuotedString() error = %v, want %v", err, c.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("r.ReadQuotedString() error = %v, want nil", err)
			}
			if got != c.want {
				t.Errorf("r.ReadQuotedString() = %q, want %q", got, c.want)
			}
			if r.Pos() != c.wantPos {
				t.Errorf("r.Pos() = %d, want %d", r.Pos(), c.wantPos)
			}
		})
	}
}

func TestReader_ReadParams(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    header.Params
		wantPos int
		wantErr error
	}{
		{"none", "", nil, 0, nil},
		{"no separator", " , next", nil, 0, nil},
		{"single", ";q=1.0", header.Params{{Name: "q", Value: "1.0"}}, 6, nil},
		{"order kept", ";b=2;a=1", header.Params{{Name: "b", Value: "2"}, {Name: "a", Value: "1"}}, 8, nil},
		{"duplicates kept", ";a=1;a=2", header.Params{{Name: "a", Value: "1"}, {Name: "a", Value: "2"}}, 8, nil},
		{"white space", " ; q = 1.0 ;a=x", header.Params{{Name: "q", Value: "1.0"}, {Name: "a", Value: "x"}}, 15, nil},
		{"quoted", `;a="x, y;z"`, header.Params{{Name: "a", Value: "x, y;z"}}, 11, nil},
		{"trailing space left", ";a=1  ", header.Params{{Name: "a", Value: "1"}}, 4, nil},
		{"missing value", ";q=", nil, 0, header.ErrUnexpectedEnd},
		{"missing equals", ";q", nil, 0, header.ErrUnexpectedEnd},
		{"missing name", ";=1", nil, 0, header.ErrMalformedInput},
		{"dangling separator", ";", nil, 0, header.ErrUnexpectedEnd},
		{"bad value", ";q=,", nil, 0, header.ErrMalformedInput},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			r := header.NewReader(c.in)
			got, err := r.ReadParams()
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("r.ReadParams() error = %v, want %v", err, c.wantErr)
				}
				if got != nil {
					t.Errorf("r.ReadParams() = %v, want nil", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("r.ReadParams() error = %v, want nil", err)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("r.ReadParams() = %v, want %v\ndiff (-got +want):\n%v", got, c.want, diff)
			}
			if r.Pos() != c.wantPos {
				t.Errorf("r.Pos() = %d, want %d", r.Pos(), c.wantPos)
			}
		})
	}
}

func TestReader_StickyError(t *testing.T) {
	t.Parallel()

	r := header.NewReader([]byte(";gzip"))
	_, err1 := r.ReadToken()
	if !errors.Is(err1, header.ErrMalformedInput) {
		t.Fatalf("r.ReadToken() error = %v, want %v", err1, header.ErrMalformedInput)
	}

	if err := r.Expect(';'); !errors.Is(err, r.Err()) {
		t.Errorf("r.Expect(';') error = %v, want %v", err, r.Err())
	}
	if _, err := r.ReadToken(); !errors.Is(err, r.Err()) {
		t.Errorf("r.ReadToken() error = %v, want %v", err, r.Err())
	}
	if _, ok := r.Peek(); ok {
		t.Error("r.Peek() ok = true after failure, want false")
	}
	if n := r.SkipLWS(); n != 0 {
		t.Errorf("r.SkipLWS() = %d after failure, want 0", n)
	}

	var se *header.SyntaxError
	if !errors.As(r.Err(), &se) || se.Pos != 0 {
		t.Errorf("r.Err() = %v, want syntax error at offset 0", r.Err())
	}
}

func TestReader_SkipLWS(t *testing.T) {
	t.Parallel()

	r := header.NewReader(" \t gzip")
	if n := r.SkipLWS(); n != 3 {
		t.Errorf("r.SkipLWS() = %d, want 3", n)
	}
	if c, ok := r.Peek(); !ok || c != 'g' {
		t.Errorf("r.Peek() = (%q, %v), want ('g', true)", c, ok)
	}
	if r.Len() != 4 {
		t.Errorf("r.Len() = %d, want 4", r.Len())
	}
	if _, err := r.ReadWord(); err != nil {
		t.Fatalf("r.ReadWord() error = %v, want nil", err)
	}
	if !r.EOF() {
		t.Error("r.EOF() = false, want true")
	}
}

func TestNewReader_Source(t *testing.T) {
	t.Parallel()

	b := []byte("gzip")
	r := header.NewReader(b)
	b[0] = 'x'
	if tok, err := r.ReadToken(); err != nil || tok != "xzip" {
		t.Errorf("r.ReadToken() = (%q, %v), want (\"xzip\", nil)", tok, err)
	}

	s := "gzip"
	r = header.NewReader(s)
	s = "xzip"
	if tok, err := r.ReadToken(); err != nil || tok != "gzip" {
		t.Errorf("r.ReadToken() = (%q, %v), want (\"gzip\", nil) after reassigning source %q", tok, err, s)
	}
}
