package bserve

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/propagators/aws/xray"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func TestNewExporter(t *testing.T) {
	for _, typ := range []string{"stdout", "", "xrayudp"} {
		exp, err := newExporter(t.Context(), typ)
		require.NoError(t, err)
		require.NotNil(t, exp)
		require.NoError(t, exp.Shutdown(context.Background()))
	}

	exp, err := newExporter(t.Context(), "none")
	require.NoError(t, err)
	require.Nil(t, exp)

	_, err = newExporter(t.Context(), "otlp")
	require.ErrorContains(t, err, `unsupported BR_OTEL_EXPORTER: "otlp"`)
}

func TestNewResource(t *testing.T) {
	res := newResource(t.Context(), "stdout", "orders")

	val, ok := res.Set().Value(semconv.ServiceNameKey)
	require.True(t, ok)
	require.Equal(t, "orders", val.AsString())
	require.Equal(t, semconv.SchemaURL, res.SchemaURL())

	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")
	res = newResource(t.Context(), "xrayudp", "orders")
	val, ok = res.Set().Value(semconv.ServiceNameKey)
	require.True(t, ok)
	require.Equal(t, "orders", val.AsString())
}

func TestNewPropagator(t *testing.T) {
	require.IsType(t, xray.Propagator{}, NewPropagator(testEnv{otelExp: "xrayudp"}))
	require.ElementsMatch(t,
		[]string{"traceparent", "tracestate", "baggage"},
		NewPropagator(testEnv{otelExp: "stdout"}).Fields())
}

func TestWithTracingExcludesPaths(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	var sawSpan []bool
	handler := withTracing(tp, NewPropagator(testEnv{}), "test", "/health")(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			sawSpan = append(sawSpan, Span(r.Context()).SpanContext().IsValid())
			w.WriteHeader(http.StatusNoContent)
		}))

	for _, target := range []string{"/health", "/items/1"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	require.Equal(t, []bool{false, true}, sawSpan)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "GET /items/1", spans[0].Name())
}

func TestNewTracerProviderNone(t *testing.T) {
	lc := &recordingLifecycle{}

	tp, err := NewTracerProvider(lc, testEnv{otelExp: "none"})
	require.NoError(t, err)
	require.NotNil(t, tp)
	require.Len(t, lc.hooks, 1)
	require.NoError(t, lc.hooks[0].OnStop(context.Background()))

	_, err = NewTracerProvider(lc, testEnv{otelExp: "jaeger"})
	require.Error(t, err)
}
