package bresp

import (
	"iter"

	"github.com/cockroachdb/errors"
)

// jsonStreamer is set when the streaming JSON encoder is compiled in. Building with the
// bresp_nojsonstream tag leaves it nil.
var jsonStreamer func(fields map[string]any) iter.Seq[[]byte]

// JSONStreamSupported reports whether [NewJSONGenerator] is available in this build.
func JSONStreamSupported() bool { return jsonStreamer != nil }

// NewJSONGenerator inits a generator response that encodes fields as a JSON object while the body
// is drained. Values of type iter.Seq[any] are encoded as arrays element by element. It fails
// with [ErrUnsupportedFeature] when the encoder is compiled out.
func NewJSONGenerator(fields map[string]any, opts ...Option) (*Generator, error) {
	if jsonStreamer == nil {
		return nil, errors.Wrap(ErrUnsupportedFeature, "streaming json encoder is not compiled in")
	}

	return NewGenerator(jsonStreamer(fields), append([]Option{WithContentType(jsonContentType)}, opts...)...)
}
