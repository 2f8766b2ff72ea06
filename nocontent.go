package bresp

import (
	"fmt"
	"io"
	"net/http"
	"runtime"
)

// NoContent carries only a status. Render hands an empty header list to begin, without any of
// the Content-Type or Content-Length injection, and returns an empty body.
type NoContent struct {
	base
}

var _ Response = (*NoContent)(nil)

// NewNoContent inits a response with status 204 unless [WithStatus] says otherwise.
func NewNoContent(opts ...Option) (*NoContent, error) {
	b, _, err := newBase("", int(CodeNoContent), opts)
	if err != nil {
		return nil, err
	}

	return &NoContent{base: b}, nil
}

// NewEmpty inits a 204 response.
//
// Deprecated: use [NewNoContent].
func NewEmpty(opts ...Option) (*NoContent, error) { return NewNoContent(opts...) }

// Render commits the status line with no headers.
func (r *NoContent) Render(begin BeginFunc) (io.Reader, error) {
	return r.commit(begin,
		func() []Field { return []Field{} },
		func() (io.Reader, error) { return http.NoBody, nil })
}

// Declined means that no response was produced for the request. It never calls begin, so the
// dispatcher has nothing to send downstream. Declined has no headers.
type Declined struct {
	base
}

var _ Response = (*Declined)(nil)

// NewDeclined inits the declined sentinel response.
func NewDeclined(opts ...Option) *Declined {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Declined{base: base{status: int(CodeOK), headers: &Headers{}, logs: cfg.logs}}
}

// Headers always returns an empty header set.
func (r *Declined) Headers() *Headers { return &Headers{} }

// SetHeaders is ignored, the call site is logged.
func (r *Declined) SetHeaders(*Headers) { r.logger().LogDeclinedHeaders(callSite(2)) }

// AddHeader is ignored, the call site is logged.
func (r *Declined) AddHeader(string, string) { r.logger().LogDeclinedHeaders(callSite(2)) }

// Render returns an empty body without calling begin.
func (r *Declined) Render(BeginFunc) (io.Reader, error) {
	return r.commit(func(string, []Field) error { return nil },
		func() []Field { return nil },
		func() (io.Reader, error) { return http.NoBody, nil })
}

func callSite(skip int) string {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}

	name := "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = fn.Name()
	}

	return fmt.Sprintf("%s:%d in %s", file, line, name)
}
