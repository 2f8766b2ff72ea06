package bresp

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Handler mirrors http.Handler but returns the response to send, or an error. Errors that are or
// wrap a [*Signal] short-circuit into the signal's response.
type Handler interface {
	ServeBHTTP(ctx context.Context, r *http.Request) (Response, error)
}

// HandlerFunc allow casting a function to imple [Handler].
type HandlerFunc func(context.Context, *http.Request) (Response, error)

// ServeBHTTP implements the [Handler] interface.
func (f HandlerFunc) ServeBHTTP(ctx context.Context, r *http.Request) (Response, error) {
	return f(ctx, r)
}

// BareHandler describes how middleware servers HTTP requests. In this library the signature for
// handling middleware [BareHandler] is different from the signature of "leaf" handlers: [Handler].
type BareHandler interface {
	ServeBareBHTTP(r *http.Request) (Response, error)
}

// BareHandlerFunc allow casting a function to an implementation of [BareHandler].
type BareHandlerFunc func(*http.Request) (Response, error)

// ServeBareBHTTP implements the [BareHandler] interface.
func (f BareHandlerFunc) ServeBareBHTTP(r *http.Request) (Response, error) {
	return f(r)
}

// ToBare converts a handler 'h' into a bare handler that passes the request context.
func ToBare(h Handler) BareHandler {
	return BareHandlerFunc(func(r *http.Request) (Response, error) {
		return h.ServeBHTTP(r.Context(), r)
	})
}

// ErrorPageFunc builds the response for a signal that carries only a status code and attributes.
type ErrorPageFunc func(code Code, attrs map[string]any) (Response, error)

// DefaultErrorPage renders the status as a short plain-text body. Attributes are not rendered.
func DefaultErrorPage(code Code, _ map[string]any) (Response, error) {
	return NewText(fmt.Sprintf("%d %s\n", int(code), code), WithStatus(int(code)))
}

// ToStd converts a bare handler into a standard library http.Handler. The outcome of the handler is
// resolved into one response, which is rendered and drained into the writer.
func ToStd(h BareHandler, logs Logger, page ErrorPageFunc) http.Handler {
	if page == nil {
		page = DefaultErrorPage
	}

	return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
		res, err := h.ServeBareBHTTP(req)
		if err != nil {
			resolved, ok := resolve(err, logs, page)
			if res != nil && res != resolved {
				release(res)
			}

			res = resolved
			if !ok {
				// if all fails we don't want the client to end up with a white screen so
				// we render a 500 error with the standard text.
				internalError(resp)
				return
			}
		}

		if res == nil {
			res = NewDeclined()
		}

		Serve(resp, res, logs)
	})
}

func resolve(err error, logs Logger, page ErrorPageFunc) (Response, bool) {
	sig, ok := SignalOf(err)
	if !ok {
		logs.LogUnhandledServeError(err)
		return nil, false
	}

	if res := sig.ResolvedResponse(); res != nil {
		return res, true
	}

	res, err := page(sig.Code(), sig.Attrs())
	if err != nil {
		logs.LogUnhandledServeError(errors.Wrapf(err, "render error page for %d", int(sig.Code())))
		return nil, false
	}

	return res, true
}

// Serve renders res into w and drains the body. A borrowed file resource is closed when rendering
// fails. Diagnostics of res go to logs unless the response
// was constructed with its own logger.
func Serve(w http.ResponseWriter, res Response, logs Logger) {
	res.core().useLogger(logs)

	var began bool
	begin := BeginHTTP(w)
	body, err := res.Render(func(status string, fields []Field) error {
		began = true
		return begin(status, fields)
	})
	if err != nil {
		logs.LogUnhandledServeError(err)
		if !errors.Is(err, ErrUseAfterConsumed) {
			release(res)
		}

		if !began {
			internalError(w)
		}

		return
	}

	if _, err := Drain(w, body); err != nil {
		logs.LogDrainError(err)
	}
}

// BeginHTTP returns a [BeginFunc] that writes the status and headers to w.
func BeginHTTP(w http.ResponseWriter) BeginFunc {
	return func(status string, fields []Field) error {
		num, _, _ := strings.Cut(status, " ")
		code, err := strconv.Atoi(num)
		if err != nil {
			return errors.Wrapf(err, "parse status line %q", status)
		}

		for _, f := range fields {
			w.Header().Add(f.Name, f.Value)
		}

		w.WriteHeader(code)

		return nil
	}
}

func internalError(w http.ResponseWriter) {
	http.Error(w,
		http.StatusText(http.StatusInternalServerError),
		http.StatusInternalServerError)
}
