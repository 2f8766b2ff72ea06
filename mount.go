package bresp

import (
	"net/http"
	"net/url"
	"strings"
)

// Mount registers handler for the path of pattern and everything below it. The handler sees the
// request path with that prefix removed, "/" when nothing remains. Middleware registered with
// [ServeMux.Use] runs first and sees the full path.
func (m *ServeMux) Mount(pattern string, handler Handler) {
	m.MountBare(pattern, ToBare(handler))
}

// MountFunc is [ServeMux.Mount] for a plain function.
func (m *ServeMux) MountFunc(pattern string, handler HandlerFunc) {
	m.Mount(pattern, handler)
}

// MountStd mounts a standard library handler. Its output is buffered, see [FromStd].
func (m *ServeMux) MountStd(pattern string, handler http.Handler) {
	m.Mount(pattern, FromStd(handler))
}

// MountBare mounts a bare handler, see [ServeMux.Mount].
func (m *ServeMux) MountBare(pattern string, handler BareHandler) {
	method, prefix := "", pattern
	if before, after, ok := strings.Cut(pattern, " "); ok {
		method, prefix = before+" ", strings.TrimLeft(after, " ")
	}

	prefix = strings.TrimSuffix(prefix, "/")
	std := ToStd(wrapBare(BareHandlerFunc(func(r *http.Request) (Response, error) {
		return handler.ServeBareBHTTP(trimPathPrefix(r, prefix))
	}), m.mws...), m.logs, m.page)

	m.handle(method+prefix, std)
	m.handle(method+prefix+"/", std)
}

// trimPathPrefix returns a shallow copy of r whose URL no longer starts with prefix.
func trimPathPrefix(r *http.Request, prefix string) *http.Request {
	trim := func(p string) string {
		if p == "" {
			return ""
		}

		if rest := strings.TrimPrefix(p, prefix); rest != "" {
			return rest
		}

		return "/"
	}

	u := new(url.URL)
	*u = *r.URL
	u.Path, u.RawPath = trim(u.Path), trim(u.RawPath)

	sub := *r
	sub.URL = u

	return &sub
}
