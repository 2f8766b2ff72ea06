package bresp

import "github.com/cockroachdb/errors"

// WithMessage sets the plain-text body of a redirect, shown by clients that do not follow the
// Location header.
func WithMessage(msg string) Option {
	return func(c *config) { c.message = []byte(msg) }
}

// WithPermanent forces the permanent redirect status when p is true.
//
// Deprecated: use [NewPermanentRedirect] or [WithStatus] instead.
func WithPermanent(p bool) Option {
	return func(c *config) { c.permanent = p }
}

// NewRedirect inits a "text/plain" [Buffered] response with a Location header. The status
// defaults to 302 Found.
func NewRedirect(location string, opts ...Option) (*Buffered, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.permanent {
		logs := cfg.logs
		if logs == nil {
			logs = DefaultLogger()
		}

		logs.LogDeprecatedPermanent()
		opts = append(opts, WithStatus(int(CodeMovedPermanently)))
	}

	return newRedirect(location, int(CodeFound), cfg.message, opts)
}

// NewPermanentRedirect inits a redirect with status 301 Moved Permanently.
func NewPermanentRedirect(location string, opts ...Option) (*Buffered, error) {
	return NewRedirect(location, append([]Option{WithStatus(int(CodeMovedPermanently))}, opts...)...)
}

func newRedirect(location string, status int, msg []byte, opts []Option) (*Buffered, error) {
	if location == "" {
		return nil, errors.Wrap(ErrConstruction, "redirect location is empty")
	}

	b, _, err := newBase("text/plain", status, opts)
	if err != nil {
		return nil, err
	}

	r := &Buffered{base: b}
	r.buf.Write(msg)
	r.headers.Add("Location", location)

	return r, nil
}
