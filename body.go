package bresp

import (
	"bytes"
	"io"
	"iter"
	"net/http"
)

// ChunkSize is the size of the chunks yielded when iterating a buffered body.
const ChunkSize = 1024

// BufferBody is the payload of a [Buffered] response. It can be drained with a single read, by
// ranging over [BufferBody.Chunks] or through [io.WriterTo].
type BufferBody struct {
	rd *bytes.Reader
}

func newBufferBody(b []byte) *BufferBody {
	return &BufferBody{rd: bytes.NewReader(b)}
}

func (b *BufferBody) Read(p []byte) (int, error) { return b.rd.Read(p) }

func (b *BufferBody) WriteTo(w io.Writer) (int64, error) { return b.rd.WriteTo(w) }

// Len returns the number of unread bytes.
func (b *BufferBody) Len() int { return b.rd.Len() }

// Chunks yields the unread bytes in slices of at most [ChunkSize] bytes.
func (b *BufferBody) Chunks() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for b.rd.Len() > 0 {
			chunk := make([]byte, min(ChunkSize, b.rd.Len()))
			n, _ := b.rd.Read(chunk)
			if !yield(chunk[:n]) {
				return
			}
		}
	}
}

// SeqBody is the payload of generator responses. The underlying sequence is traversed at most
// once, whether by reading, ranging over [SeqBody.Chunks] or through [io.WriterTo]. Once
// traversal has started, a fresh [SeqBody.Chunks] call yields nothing.
type SeqBody struct {
	seq     iter.Seq[[]byte]
	started bool
	next    func() ([]byte, bool)
	stop    func()
	pending []byte
}

func newSeqBody(seq iter.Seq[[]byte]) *SeqBody {
	return &SeqBody{seq: seq}
}

// Chunks yields the chunks of the sequence as they are produced.
func (s *SeqBody) Chunks() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		if s.started {
			return
		}
		s.started = true

		for chunk := range s.seq {
			if !yield(chunk) {
				return
			}
		}
	}
}

func (s *SeqBody) Read(p []byte) (int, error) {
	if s.next == nil {
		if s.started {
			return 0, io.EOF
		}

		s.started = true
		s.next, s.stop = iter.Pull(s.seq)
	}

	for len(s.pending) == 0 {
		chunk, ok := s.next()
		if !ok {
			return 0, io.EOF
		}

		s.pending = chunk
	}

	n := copy(p, s.pending)
	s.pending = s.pending[n:]

	return n, nil
}

// WriteTo writes every remaining chunk to w, flushing after each one when w is an
// [http.Flusher].
func (s *SeqBody) WriteTo(w io.Writer) (int64, error) {
	var total int64

	flusher, _ := w.(http.Flusher)
	write := func(chunk []byte) error {
		n, err := w.Write(chunk)
		total += int64(n)
		if err != nil {
			return err
		}

		if flusher != nil {
			flusher.Flush()
		}

		return nil
	}

	if s.next != nil {
		if len(s.pending) > 0 {
			if err := write(s.pending); err != nil {
				return total, err
			}
			s.pending = nil
		}

		for chunk, ok := s.next(); ok; chunk, ok = s.next() {
			if err := write(chunk); err != nil {
				return total, err
			}
		}

		return total, nil
	}

	for chunk := range s.Chunks() {
		if err := write(chunk); err != nil {
			return total, err
		}
	}

	return total, nil
}

// Close releases the sequence if it is being pulled.
func (s *SeqBody) Close() error {
	if s.stop != nil {
		s.stop()
	}

	return nil
}
