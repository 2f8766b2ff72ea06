package bresp

import (
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
)

const (
	htmlContentType = "text/html; charset=utf-8"
	textContentType = "text/plain; charset=utf-8"
	jsonContentType = "application/json; charset=utf-8"
)

// Buffered holds its whole body in memory. Its content length is always the exact byte length of
// what was written.
type Buffered struct {
	base
	buf bytes.Buffer
}

var _ Response = (*Buffered)(nil)

// NewBuffered inits a buffered response with data as the initial body. Text is written as UTF-8.
// The content type defaults to "text/html; charset=utf-8" and the status to 200.
func NewBuffered[T string | []byte](data T, opts ...Option) (*Buffered, error) {
	b, _, err := newBase(htmlContentType, int(CodeOK), opts)
	if err != nil {
		return nil, err
	}

	r := &Buffered{base: b}
	r.buf.WriteString(string(data))

	return r, nil
}

// NewText inits a "text/plain; charset=utf-8" response.
func NewText(text string, opts ...Option) (*Buffered, error) {
	return NewBuffered(text, append([]Option{WithContentType(textContentType)}, opts...)...)
}

// NewJSON inits an "application/json; charset=utf-8" response with v encoded as the body.
func NewJSON(v any, opts ...Option) (*Buffered, error) {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(v)
	if err != nil {
		return nil, errors.Wrapf(ErrConstruction, "encode json body: %v", err)
	}

	return NewBuffered(data, append([]Option{WithContentType(jsonContentType)}, opts...)...)
}

// Write appends p to the body.
func (r *Buffered) Write(p []byte) (int, error) {
	if r.used {
		return 0, errors.Wrap(ErrUseAfterConsumed, "write to rendered response")
	}

	return r.buf.Write(p)
}

// WriteString appends s to the body, encoded as UTF-8.
func (r *Buffered) WriteString(s string) (int, error) {
	if r.used {
		return 0, errors.Wrap(ErrUseAfterConsumed, "write to rendered response")
	}

	return r.buf.WriteString(s)
}

// ContentLength returns the byte length of the body.
func (r *Buffered) ContentLength() int64 { return int64(r.buf.Len()) }

// Data returns a copy of the body.
func (r *Buffered) Data() ([]byte, error) { return append([]byte{}, r.buf.Bytes()...), nil }

// Render commits the response and returns a [*BufferBody] positioned at the start of the body.
func (r *Buffered) Render(begin BeginFunc) (io.Reader, error) {
	return r.commit(begin,
		func() []Field { return r.fields(r.ContentLength()) },
		func() (io.Reader, error) { return newBufferBody(r.buf.Bytes()), nil })
}
