package bresp

import (
	"log"
	"net/http"
)

// ServeMux routes requests to handlers that return a [Response]. Routes can be named and reversed
// into paths with [ServeMux.Reverse].
type ServeMux struct {
	logs     Logger
	page     ErrorPageFunc
	reverser *Reverser
	mux      *http.ServeMux

	mws    []Middleware
	sealed bool // set by the first registration, Use panics afterwards
}

// NewServeMux creates a ServeMux that logs through the standard logger and renders signals with
// [DefaultErrorPage].
func NewServeMux() *ServeMux {
	return NewServeMuxWith(NewStdLogger(log.Default()), http.NewServeMux(), NewReverser(), nil)
}

// NewServeMuxWith creates a ServeMux from its parts. A nil page means [DefaultErrorPage].
func NewServeMuxWith(logger Logger, baseMux *http.ServeMux, reverser *Reverser, page ErrorPageFunc) *ServeMux {
	if page == nil {
		page = DefaultErrorPage
	}

	return &ServeMux{logs: logger, page: page, reverser: reverser, mux: baseMux}
}

// Reverse builds the path of the route registered under name.
func (m *ServeMux) Reverse(name string, vals ...string) (string, error) {
	return m.reverser.Reverse(name, vals...)
}

// RedirectTo returns a redirect signal to the named route. Handlers return it as their error.
func (m *ServeMux) RedirectTo(name string, vals []string, opts ...Option) error {
	loc, err := m.Reverse(name, vals...)
	if err != nil {
		return err
	}

	return Redirect(loc, opts...)
}

// Use appends middleware for every route registered afterwards. It panics once a route has been
// registered.
func (m *ServeMux) Use(mw ...Middleware) {
	if m.sealed {
		panic("bresp: cannot call Use() after calling Handle")
	}

	m.mws = append(m.mws, mw...)
}

// HandleFunc is [ServeMux.Handle] for a plain function.
func (m *ServeMux) HandleFunc(pattern string, handler HandlerFunc, name ...string) {
	m.Handle(pattern, handler, name...)
}

// HandleStd registers a standard library handler. Its output is buffered, see [FromStd], so
// middleware can still inspect and replace it.
func (m *ServeMux) HandleStd(pattern string, handler http.Handler, name ...string) {
	m.Handle(pattern, FromStd(handler), name...)
}

// Handle registers handler for pattern, optionally under a route name.
func (m *ServeMux) Handle(pattern string, handler Handler, name ...string) {
	m.handle(pattern, ToStd(Wrap(handler, m.mws...), m.logs, m.page), name...)
}

// ServeHTTP dispatches to the underlying [http.ServeMux].
func (m *ServeMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mux.ServeHTTP(w, r)
}

func (m *ServeMux) handle(pattern string, handler http.Handler, name ...string) {
	m.sealed = true
	if len(name) > 0 {
		pattern = m.reverser.Named(name[0], pattern)
	}

	m.mux.Handle(pattern, handler)
}
