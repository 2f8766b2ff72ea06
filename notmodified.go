package bresp

import (
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
)

var (
	// notModifiedDeny lists representation headers a 304 response should not carry.
	notModifiedDeny = []string{
		"Content-Encoding", "Content-Language", "Content-Length", "Content-MD5",
		"Content-Range", "Content-Type",
	}

	// notModifiedOneOf lists headers of which a 304 response should carry at least one.
	notModifiedOneOf = []string{"Content-Location", "Date", "ETag", "Vary"}
)

// checkNotModified logs, but never rejects, header sets that break the rules for 304 responses
// of RFC 9110, 15.4.5.
func checkNotModified(h *Headers, logs Logger) {
	present := lo.Map(h.Keys(), func(k string, _ int) string { return strings.ToLower(k) })
	has := func(name string) bool { return slices.Contains(present, strings.ToLower(name)) }

	if denied := lo.Filter(notModifiedDeny, func(n string, _ int) bool { return has(n) }); len(denied) > 0 {
		logs.LogNotModifiedRepresentation(denied)
	}

	if !lo.SomeBy(notModifiedOneOf, has) {
		logs.LogNotModifiedMissingValidator()
	}
}

// NotModified is a 304 response. Its headers are sent as they are and validated at render time.
type NotModified struct {
	base
}

var _ Response = (*NotModified)(nil)

// WithETag sets the ETag header of a [NotModified] response.
func WithETag(etag string) Option {
	return notModifiedField("ETag", etag)
}

// WithContentLocation sets the Content-Location header of a [NotModified] response.
func WithContentLocation(loc string) Option {
	return notModifiedField("Content-Location", loc)
}

// WithVary sets the Vary header of a [NotModified] response.
func WithVary(vary string) Option {
	return notModifiedField("Vary", vary)
}

// WithDate sets the Date header of a [NotModified] response.
func WithDate(t time.Time) Option {
	return notModifiedField("Date", HTTPDate(t))
}

// WithDateUnix sets the Date header of a [NotModified] response from seconds since the epoch.
func WithDateUnix(sec int64) Option {
	return WithDate(time.Unix(sec, 0))
}

// WithDateString sets the Date header of a [NotModified] response to an already formatted date.
func WithDateString(date string) Option {
	return notModifiedField("Date", date)
}

func notModifiedField(name, value string) Option {
	return func(c *config) {
		if value != "" {
			c.notModified = append(c.notModified, Field{name, value})
		}
	}
}

// NewNotModified inits a 304 response. The status cannot be changed through options.
func NewNotModified(opts ...Option) (*NotModified, error) {
	b, cfg, err := newBase("", int(CodeNotModified), append(opts, WithStatus(int(CodeNotModified))))
	if err != nil {
		return nil, err
	}

	r := &NotModified{base: b}
	for _, f := range cfg.notModified {
		r.headers.Add(f.Name, f.Value)
	}

	return r, nil
}

// Render commits the status line and headers and returns an empty body.
func (r *NotModified) Render(begin BeginFunc) (io.Reader, error) {
	return r.commit(begin,
		func() []Field { return r.fields(0) },
		func() (io.Reader, error) { return http.NoBody, nil })
}
