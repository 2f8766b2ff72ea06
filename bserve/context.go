package bserve

import (
	"context"
	"net/http"

	"github.com/advdv/bresp"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ctxKey is the key type for context values.
type ctxKey int

const ctxKeyRequestDep ctxKey = iota

// requestDep holds request-scoped dependencies available via context.
// App-scoped dependencies (env, mux) are accessed via Runtime instead.
type requestDep struct {
	logger *zap.Logger
}

// withRequestDep injects dependencies into the request context.
func withRequestDep(d *requestDep) bresp.Middleware {
	return func(next bresp.BareHandler) bresp.BareHandler {
		return bresp.BareHandlerFunc(func(r *http.Request) (bresp.Response, error) {
			ctx := context.WithValue(r.Context(), ctxKeyRequestDep, d)
			return next.ServeBareBHTTP(r.WithContext(ctx))
		})
	}
}

// withAccessLog logs the status code every request ends with.
func withAccessLog() bresp.Middleware {
	return func(next bresp.BareHandler) bresp.BareHandler {
		return bresp.BareHandlerFunc(func(r *http.Request) (bresp.Response, error) {
			res, err := next.ServeBareBHTTP(r)

			code := bresp.CodeOf(err)
			if err == nil && res != nil {
				code = bresp.Code(res.StatusCode())
			}

			Log(r.Context()).Debug("handled request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("code", int(code)))

			return res, err
		})
	}
}

func requestDepFromContext(ctx context.Context) *requestDep {
	d, ok := ctx.Value(ctxKeyRequestDep).(*requestDep)
	if !ok {
		panic("bserve: requestDep not found in context; is the middleware configured?")
	}

	return d
}

// Log returns a trace-correlated zap logger from the context.
func Log(ctx context.Context) *zap.Logger {
	d := requestDepFromContext(ctx)
	return d.logger.With(traceFields(ctx)...)
}

// Span returns the current trace span from the context.
func Span(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// traceFields extracts trace_id and span_id from the context for log correlation.
func traceFields(ctx context.Context) []zap.Field {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return nil
	}

	return []zap.Field{
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	}
}
