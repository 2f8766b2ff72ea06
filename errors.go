package bresp

import "github.com/cockroachdb/errors"

var (
	// ErrConstruction is returned when a response cannot be built from the given arguments.
	ErrConstruction = errors.New("bresp: invalid response")
	// ErrUseAfterConsumed is returned when a response is rendered more than once.
	ErrUseAfterConsumed = errors.New("bresp: response can be used only once")
	// ErrAccess is returned when the file behind a file response cannot be read.
	ErrAccess = errors.New("bresp: file is not readable")
	// ErrUnsupportedFeature is returned by constructors whose feature is compiled out.
	ErrUnsupportedFeature = errors.New("bresp: unsupported feature")
)
