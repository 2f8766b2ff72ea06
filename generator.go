package bresp

import (
	"io"
	"iter"
)

// Generator streams a lazily produced sequence of byte chunks. Its length is never known, so no
// Content-Length header is injected and the transport streams the body.
type Generator struct {
	base
	seq iter.Seq[[]byte]
}

var _ Response = (*Generator)(nil)

// NewGenerator inits a response that streams the chunks of seq. The sequence is traversed at most
// once.
func NewGenerator(seq iter.Seq[[]byte], opts ...Option) (*Generator, error) {
	b, _, err := newBase(htmlContentType, int(CodeOK), opts)
	if err != nil {
		return nil, err
	}

	if seq == nil {
		seq = func(func([]byte) bool) {}
	}

	return &Generator{base: b, seq: seq}, nil
}

// NewTextGenerator inits a response that streams text chunks, each encoded as UTF-8 when it is
// pulled.
func NewTextGenerator(seq iter.Seq[string], opts ...Option) (*Generator, error) {
	var enc iter.Seq[[]byte]
	if seq != nil {
		enc = func(yield func([]byte) bool) {
			for s := range seq {
				if !yield([]byte(s)) {
					return
				}
			}
		}
	}

	return NewGenerator(enc, opts...)
}

// Render commits the response and returns a [*SeqBody] over the sequence.
func (r *Generator) Render(begin BeginFunc) (io.Reader, error) {
	return r.commit(begin,
		func() []Field { return r.fields(0) },
		func() (io.Reader, error) { return newSeqBody(r.seq), nil })
}
