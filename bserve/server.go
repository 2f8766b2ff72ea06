package bserve

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/advdv/bresp"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ServerConfig holds optional configuration for the HTTP server.
type ServerConfig struct {
	ReadinessHandler bresp.HandlerFunc
}

// ServerParams holds the dependencies for creating an HTTP server.
type ServerParams struct {
	fx.In

	Env        Environment
	Mux        *Mux
	Logger     *zap.Logger
	TracerProv trace.TracerProvider
	Propagator propagation.TextMapPropagator
}

// NewServer creates an HTTP server with all middleware and routing configured.
func NewServer(params ServerParams, cfg ServerConfig) *http.Server {
	params.Mux.Use(withRequestDep(&requestDep{logger: params.Logger}))
	params.Mux.Use(withAccessLog())

	// The readiness endpoint is not traced to avoid noisy orphan traces from probes.
	readyPath := params.Env.readinessPath()
	ready := cfg.ReadinessHandler
	if ready == nil {
		ready = defaultReadinessHandler
	}
	params.Mux.HandleFunc("GET "+readyPath, ready)

	if dir := params.Env.staticDir(); dir != "" {
		params.Mux.MountFunc("GET "+StaticPrefix, staticHandler(dir))
	}

	handler := withTracing(params.TracerProv, params.Propagator, params.Env.serviceName(), readyPath)(params.Mux)

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", params.Env.port()),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}

// startServerHook registers lifecycle hooks for the HTTP server.
func startServerHook(lc fx.Lifecycle, server *http.Server, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting server", zap.String("addr", server.Addr))
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server error", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping server")
			return server.Shutdown(ctx)
		},
	})
}

func defaultReadinessHandler(context.Context, *http.Request) (bresp.Response, error) {
	return bresp.NewNoContent(bresp.WithStatus(http.StatusOK))
}
