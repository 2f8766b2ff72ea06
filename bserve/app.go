package bserve

import (
	"context"
	"net/http"

	"github.com/advdv/bresp"
	"github.com/advdv/bresp/s3resp"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ObjectsPrefix is the path below which the objects of BR_S3_BUCKET are served.
const ObjectsPrefix = "/objects"

// App wraps an fx.App for lifecycle management.
type App struct {
	app *fx.App
}

// AppConfig holds configuration for the app.
type AppConfig struct {
	ServerConfig
	FxOptions []fx.Option
}

// Option configures the App.
type Option func(*AppConfig)

// WithAWSClient registers an AWS SDK v2 client for dependency injection.
// Clients are injected directly into handler constructors via fx:
//
//	bserve.WithAWSClient(func(cfg aws.Config) *s3.Client {
//	    return s3.NewFromConfig(cfg)
//	})
func WithAWSClient[T any](factory func(aws.Config) T, opts ...ClientOption) Option {
	return func(c *AppConfig) {
		c.FxOptions = append(c.FxOptions, AWSClientProvider(factory, opts...))
	}
}

// WithS3Objects serves the objects of BR_S3_BUCKET below [ObjectsPrefix]. It registers an S3
// client, so it must not be combined with another WithAWSClient for *s3.Client.
func WithS3Objects() Option {
	return func(c *AppConfig) {
		c.FxOptions = append(c.FxOptions,
			AWSClientProvider(newS3Client),
			fx.Invoke(mountObjects))
	}
}

func mountObjects(env Environment, mux *Mux, client *s3.Client, logs *zap.Logger) {
	bucket := env.s3Bucket()
	if bucket == "" {
		logs.Warn("s3 objects requested but BR_S3_BUCKET is empty")
		return
	}

	mux.MountFunc("GET "+ObjectsPrefix, s3resp.Handler(client, bucket))
}

// WithFx adds fx options for dependency injection.
func WithFx(fxOpts ...fx.Option) Option {
	return func(c *AppConfig) {
		c.FxOptions = append(c.FxOptions, fxOpts...)
	}
}

// WithReadinessHandler sets a custom readiness handler.
// If not set, a default handler returning 200 OK is used.
func WithReadinessHandler(h bresp.HandlerFunc) Option {
	return func(c *AppConfig) {
		c.ReadinessHandler = h
	}
}

// FxOptions returns the fx options that make up the DI graph of [NewApp].
func FxOptions[E Environment](routing any, opts ...Option) []fx.Option {
	var cfg AppConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	baseOpts := make([]fx.Option, 0, 14+len(cfg.FxOptions))
	baseOpts = append(baseOpts, []fx.Option{
		fx.NopLogger,
		fx.Provide(ParseEnv[E]()),
		fx.Provide(func(e E) Environment { return e }),
		fx.Provide(func(e E) (*zap.Logger, error) { return NewLogger(e) }),
		fx.Provide(NewMux),
		fx.Provide(NewTracerProvider),
		fx.Provide(NewPropagator),
		fx.Provide(NewHTTPTransport),
		fx.Provide(provideAWSConfig),
		fx.Supply(cfg.ServerConfig),
		fx.Provide(NewServer),
		fx.Provide(func(e E, m *Mux, t http.RoundTripper) *Runtime[E] {
			return NewRuntime(e, m, t)
		}),
		fx.Invoke(startServerHook),
		fx.Invoke(routing),
	}...)

	return append(baseOpts, cfg.FxOptions...)
}

// NewApp creates a batteries-included app with dependency injection.
//
// The routing function can request any types that are provided via fx options.
// At minimum, it should accept *Mux for routing.
//
// Example:
//
//	bserve.NewApp[Env](func(m *bserve.Mux, h *Handlers) {
//	    m.HandleFunc("GET /items", h.ListItems, "list-items")
//	},
//	    bserve.WithS3Objects(),
//	    bserve.WithFx(fx.Provide(NewHandlers)),
//	).Run()
func NewApp[E Environment](routing any, opts ...Option) *App {
	return &App{app: fx.New(FxOptions[E](routing, opts...)...)}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() {
	a.app.Run()
}

// Start starts the application and blocks until ctx is done, then stops it.
func (a *App) Start(ctx context.Context) error {
	if err := a.app.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.app.StopTimeout())
	defer cancel()

	return a.app.Stop(stopCtx)
}
