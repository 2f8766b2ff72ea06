package bserve

import (
	"net/http"

	"github.com/carlmjohnson/requests"
)

// Runtime provides access to app-scoped dependencies.
// Inject this into handler constructors via fx instead of pulling from context.
//
// Example:
//
//	type Handlers struct {
//	    rt *bserve.Runtime[Env]
//	}
//
//	func (h *Handlers) GetItem(ctx context.Context, r *http.Request) (bresp.Response, error) {
//	    url, _ := h.rt.Reverse("get-item", r.PathValue("id"))
//	    return bresp.NewJSON(map[string]string{"self": url})
//	}
type Runtime[E Environment] struct {
	env       E
	mux       *Mux
	transport http.RoundTripper
}

// NewRuntime creates a new Runtime with the given dependencies. A nil transport means
// http.DefaultTransport.
func NewRuntime[E Environment](env E, mux *Mux, transport http.RoundTripper) *Runtime[E] {
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Runtime[E]{env: env, mux: mux, transport: transport}
}

// Env returns the environment configuration.
func (r *Runtime[E]) Env() E {
	return r.env
}

// Reverse returns the URL for a named route with the given parameters.
func (r *Runtime[E]) Reverse(name string, params ...string) (string, error) {
	return r.mux.Reverse(name, params...)
}

// NewRequest starts a request builder for url whose transport traces outbound calls.
func (r *Runtime[E]) NewRequest(url string) *requests.Builder {
	return newRequestBuilder(r.transport).BaseURL(url)
}
