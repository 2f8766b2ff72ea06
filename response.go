package bresp

import (
	"fmt"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
)

// BeginFunc commits the status line and the header list of a response to the underlying server.
// The status line is formatted as "<code> <reason>". It is called at most once per response.
type BeginFunc func(statusLine string, headers []Field) error

// Response is implemented by every response variant of this package. A response is rendered
// exactly once: [Response.Render] hands the status line and headers to a [BeginFunc] and returns
// the body for the caller to drain. The set of implementations is closed.
type Response interface {
	// StatusCode returns the numeric status code.
	StatusCode() int
	// SetStatusCode changes the status code, failing with [ErrConstruction] for unknown codes.
	SetStatusCode(code int) error
	// Reason returns the reason phrase that matches the current status code.
	Reason() string
	// ContentType returns the content type injected at render time.
	ContentType() string
	// Headers returns the header set that is sent with the response.
	Headers() *Headers
	// SetHeaders replaces the whole header set.
	SetHeaders(h *Headers)
	// AddHeader appends a single header field.
	AddHeader(name, value string)
	// ContentLength returns the body length in bytes, zero when unknown.
	ContentLength() int64
	// Data materializes the whole body.
	Data() ([]byte, error)
	// Render commits status and headers through begin and returns the body.
	Render(begin BeginFunc) (io.Reader, error)

	core() *base
}

// Option configures a response at construction time.
type Option func(*config)

type config struct {
	contentType *string
	headers     *Headers
	status      *int
	logs        Logger
	length      *int64
	message     []byte
	permanent   bool
	notModified []Field
}

// WithStatus sets the status code of the response.
func WithStatus(code int) Option {
	return func(c *config) { c.status = &code }
}

// WithContentType overrides the default content type of the variant.
func WithContentType(ct string) Option {
	return func(c *config) { c.contentType = &ct }
}

// WithHeaders uses h as the header set. The identification header is not added in that case.
func WithHeaders(h *Headers) Option {
	return func(c *config) { c.headers = h }
}

// WithHeaderFields builds a fresh header set from the fields. The identification header is not
// added in that case.
func WithHeaderFields(fields ...Field) Option {
	return func(c *config) { c.headers = NewHeaders(fields...) }
}

// WithLogger sets the logger that receives the diagnostics of this response.
func WithLogger(l Logger) Option {
	return func(c *config) { c.logs = l }
}

// base holds state that is shared by all variants.
type base struct {
	contentType string
	headers     *Headers
	status      int
	used        bool
	logs        Logger
}

func newBase(contentType string, status int, opts []Option) (base, *config, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.status != nil {
		status = *cfg.status
	}

	if cfg.contentType != nil {
		contentType = *cfg.contentType
	}

	if !Registered(status) {
		return base{}, nil, errors.Wrapf(ErrConstruction, "bad response status %d", status)
	}

	b := base{contentType: contentType, status: status, logs: cfg.logs}
	if cfg.headers != nil {
		b.headers = cfg.headers
	} else {
		b.headers = defaultHeaders()
	}

	return b, cfg, nil
}

func (b *base) core() *base { return b }

func (b *base) StatusCode() int { return b.status }

func (b *base) SetStatusCode(code int) error {
	if !Registered(code) {
		return errors.Wrapf(ErrConstruction, "bad response status %d", code)
	}

	b.status = code

	return nil
}

func (b *base) Reason() string {
	text, _ := StatusText(b.status)
	return text
}

func (b *base) ContentType() string { return b.contentType }

func (b *base) Headers() *Headers { return b.headers }

func (b *base) SetHeaders(h *Headers) {
	if h == nil {
		h = &Headers{}
	}

	b.headers = h
}

func (b *base) AddHeader(name, value string) { b.headers.Add(name, value) }

func (b *base) ContentLength() int64 { return 0 }

func (b *base) Data() ([]byte, error) { return []byte{}, nil }

// Used reports whether the response was rendered already.
func (b *base) Used() bool { return b.used }

func (b *base) logger() Logger {
	if b.logs == nil {
		return DefaultLogger()
	}

	return b.logs
}

// useLogger sets the logger if the response was constructed without one.
func (b *base) useLogger(l Logger) {
	if b.logs == nil {
		b.logs = l
	}
}

func (b *base) statusLine() string {
	return fmt.Sprintf("%d %s", b.status, b.Reason())
}

// fields returns the header list for begin, injecting Content-Type and Content-Length when
// missing. Not Modified responses are validated instead and never get representation headers.
func (b *base) fields(length int64) []Field {
	if b.status == int(CodeNotModified) {
		checkNotModified(b.headers, b.logger())
		return b.headers.Fields()
	}

	if b.contentType != "" && b.headers.Get("Content-Type") == "" {
		b.headers.Add("Content-Type", b.contentType)
	}

	if length > 0 && b.headers.Get("Content-Length") == "" {
		b.headers.Add("Content-Length", strconv.FormatInt(length, 10))
	}

	return b.headers.Fields()
}

// releaser is implemented by responses that borrow a resource from the caller.
type releaser interface{ release() }

// release frees the borrowed resource of a response that will not be drained.
func release(res Response) {
	if r, ok := res.(releaser); ok {
		r.release()
	}
}

// commit runs the render protocol shared by all variants. The response is marked as used even
// when begin fails or panics.
func (b *base) commit(begin BeginFunc, fields func() []Field, body func() (io.Reader, error)) (io.Reader, error) {
	if b.used {
		return nil, errors.Wrapf(ErrUseAfterConsumed, "render %s", b.statusLine())
	}
	defer func() { b.used = true }()

	if begin == nil {
		return nil, errors.New("bresp: begin function is nil")
	}

	if err := begin(b.statusLine(), fields()); err != nil {
		return nil, errors.Wrap(err, "begin response")
	}

	return body()
}
