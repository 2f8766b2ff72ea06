package bserve

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

const awsConfigTimeout = 10 * time.Second

// clientOptions holds configuration for AWS client registration.
type clientOptions struct {
	region string
}

// ClientOption configures AWS client registration.
type ClientOption func(*clientOptions)

// ForRegion configures the client to use a specific fixed region instead of AWS_REGION.
func ForRegion(region string) ClientOption {
	return func(o *clientOptions) {
		o.region = region
	}
}

// NewAWSConfig loads the default AWS SDK v2 configuration for region.
func NewAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return cfg, errors.Wrap(err, "load aws config")
	}

	return cfg, nil
}

// provideAWSConfig is an fx provider that loads AWS config with a timeout and instruments it
// with OpenTelemetry.
func provideAWSConfig(env Environment, tp trace.TracerProvider, prop propagation.TextMapPropagator) (aws.Config, error) {
	ctx, cancel := context.WithTimeout(context.Background(), awsConfigTimeout)
	defer cancel()

	cfg, err := NewAWSConfig(ctx, env.awsRegion())
	if err != nil {
		return cfg, err
	}

	otelaws.AppendMiddlewares(&cfg.APIOptions,
		otelaws.WithTracerProvider(tp),
		otelaws.WithTextMapPropagator(prop),
	)

	return cfg, nil
}

// AWSClientProvider creates an fx.Option that provides an AWS client for injection.
//
//	bserve.AWSClientProvider(func(cfg aws.Config) *s3.Client {
//	    return s3.NewFromConfig(cfg)
//	})
func AWSClientProvider[T any](factory func(aws.Config) T, opts ...ClientOption) fx.Option {
	var options clientOptions
	for _, opt := range opts {
		opt(&options)
	}

	return fx.Provide(func(cfg aws.Config) T {
		awsCfg := cfg.Copy()
		if options.region != "" {
			awsCfg.Region = options.region
		}

		return factory(awsCfg)
	})
}

// newS3Client is the factory used by [WithS3Objects].
func newS3Client(cfg aws.Config) *s3.Client {
	return s3.NewFromConfig(cfg)
}
