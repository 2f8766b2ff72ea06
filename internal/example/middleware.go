// Package example implements example middleware in an outside package.
package example

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/advdv/bresp"
)

// ctxKey type scopes middlware values.
type ctxKey string

// Middleware provides an example for middleware that adds a logger to the context and logs the
// status of whatever the inner handler produced.
func Middleware(logs *slog.Logger) bresp.Middleware {
	return func(n bresp.BareHandler) bresp.BareHandler {
		return bresp.BareHandlerFunc(func(r *http.Request) (bresp.Response, error) {
			logs := logs.With(slog.String("method", r.Method))
			r = r.WithContext(context.WithValue(r.Context(), ctxKey("slog"), logs))

			res, err := n.ServeBareBHTTP(r)
			switch {
			case err != nil:
				logs.Info("handled", slog.Int("code", int(bresp.CodeOf(err))))
			case res != nil:
				logs.Info("handled", slog.Int("code", res.StatusCode()))
			}

			return res, err
		})
	}
}

// Log returns the logger that [Middleware] stored in the context, if any.
func Log(ctx context.Context) *slog.Logger {
	v, _ := ctx.Value(ctxKey("slog")).(*slog.Logger)

	return v
}
