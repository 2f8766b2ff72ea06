package bserve

import (
	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap/zapcore"
)

// Environment defines the interface that all environment configurations must implement.
// Embed BaseEnvironment in your struct to satisfy this interface.
type Environment interface {
	port() int
	serviceName() string
	readinessPath() string
	logLevel() zapcore.Level
	otelExporter() string
	staticDir() string
	s3Bucket() string
	awsRegion() string
}

// BaseEnvironment contains the environment variables every server reads.
// Embed this in your custom environment struct.
type BaseEnvironment struct {
	Port          int           `env:"BR_PORT,required"`
	ServiceName   string        `env:"BR_SERVICE_NAME,required"`
	ReadinessPath string        `env:"BR_READINESS_PATH" envDefault:"/health"`
	LogLevel      zapcore.Level `env:"BR_LOG_LEVEL" envDefault:"info"`
	OtelExporter  string        `env:"BR_OTEL_EXPORTER" envDefault:"stdout"`
	// StaticDir is served below /static/ when set.
	StaticDir string `env:"BR_STATIC_DIR"`
	// S3Bucket is served below /objects/ when set, see [WithS3Objects].
	S3Bucket  string `env:"BR_S3_BUCKET"`
	AWSRegion string `env:"AWS_REGION" envDefault:"us-east-1"`
}

func (e BaseEnvironment) port() int               { return e.Port }
func (e BaseEnvironment) serviceName() string     { return e.ServiceName }
func (e BaseEnvironment) readinessPath() string   { return e.ReadinessPath }
func (e BaseEnvironment) logLevel() zapcore.Level { return e.LogLevel }
func (e BaseEnvironment) otelExporter() string    { return e.OtelExporter }
func (e BaseEnvironment) staticDir() string       { return e.StaticDir }
func (e BaseEnvironment) s3Bucket() string        { return e.S3Bucket }
func (e BaseEnvironment) awsRegion() string       { return e.AWSRegion }

var _ Environment = BaseEnvironment{}

// ParseEnv parses environment variables into the given Environment type.
func ParseEnv[E Environment]() func() (E, error) {
	return func() (e E, err error) {
		if err := env.Parse(&e); err != nil {
			return e, errors.Wrap(err, "failed to parse environment")
		}

		return e, nil
	}
}
