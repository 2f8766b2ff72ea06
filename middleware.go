package bresp

import "slices"

// Middleware wraps a bare handler. It sees the response or error of the handler it wraps and may
// replace either before the dispatcher resolves them.
type Middleware func(BareHandler) BareHandler

// Wrap applies m to h. The first middleware is the outermost and runs first, the last one runs
// right before h.
func Wrap(h Handler, m ...Middleware) BareHandler {
	return wrapBare(ToBare(h), m...)
}

func wrapBare(h BareHandler, m ...Middleware) BareHandler {
	for _, mw := range slices.Backward(m) {
		h = mw(h)
	}

	return h
}
