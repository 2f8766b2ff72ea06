package bresp

import (
	"context"
	"net/http"
	"slices"

	"github.com/samber/lo"
)

// FromStd converts a standard library handler into a [Handler]. Whatever the handler writes is
// buffered and becomes a [Buffered] response, so middleware can still inspect or replace it.
func FromStd(h http.Handler) Handler {
	return HandlerFunc(func(_ context.Context, r *http.Request) (Response, error) {
		rec := &stdRecorder{header: http.Header{}}
		h.ServeHTTP(rec, r)

		return rec.response()
	})
}

// stdRecorder captures what a standard library handler writes.
type stdRecorder struct {
	header http.Header
	status int
	body   []byte
}

func (w *stdRecorder) Header() http.Header { return w.header }

func (w *stdRecorder) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
}

func (w *stdRecorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	w.body = append(w.body, p...)

	return len(p), nil
}

func (w *stdRecorder) response() (Response, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	names := lo.Keys(w.header)
	slices.Sort(names)

	fields := lo.FlatMap(names, func(name string, _ int) []Field {
		return lo.Map(w.header[name], func(v string, _ int) Field { return Field{name, v} })
	})

	ct := w.header.Get("Content-Type")
	if ct == "" && len(w.body) > 0 {
		ct = http.DetectContentType(w.body)
	}

	return NewBuffered(w.body, WithStatus(w.status), WithContentType(ct), WithHeaderFields(fields...))
}
