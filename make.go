package bresp

import (
	"io"
	"iter"

	"github.com/cockroachdb/errors"
)

// MakeResponse builds a response from data based on its type: string and []byte become a
// [Buffered] response, iter.Seq[[]byte] and iter.Seq[string], or plain functions of
// the same shape, a [Generator] and an io.Reader a
// [FileStream]. A [Response] is returned unchanged and opts are ignored. Any other type fails with
// [ErrConstruction].
func MakeResponse(data any, opts ...Option) (Response, error) {
	switch v := data.(type) {
	case Response:
		return v, nil
	case string:
		return NewBuffered(v, opts...)
	case []byte:
		return NewBuffered(v, opts...)
	case iter.Seq[[]byte]:
		return NewGenerator(v, opts...)
	case func(func([]byte) bool):
		return NewGenerator(v, opts...)
	case iter.Seq[string]:
		return NewTextGenerator(v, opts...)
	case func(func(string) bool):
		return NewTextGenerator(v, opts...)
	case io.Reader:
		return NewFileStream(v, opts...)
	default:
		return nil, errors.Wrapf(ErrConstruction, "cannot make a response from %T", data)
	}
}
