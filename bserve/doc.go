// Package bserve runs bresp handlers as a complete HTTP service.
//
// # Overview
//
// bserve handles the boilerplate around a [bresp.ServeMux]: environment parsing, structured
// logging, OpenTelemetry tracing, AWS SDK clients and graceful shutdown. A complete application
// is created in a single call:
//
//	bserve.NewApp[Env](func(m *bserve.Mux, h *Handlers) {
//	    m.HandleFunc("GET /items/{id}", h.GetItem, "get-item")
//	},
//	    bserve.WithS3Objects(),
//	    bserve.WithFx(fx.Provide(NewHandlers)),
//	).Run()
//
// # Environment Configuration
//
// Define your environment by embedding [BaseEnvironment]:
//
//	type Env struct {
//	    bserve.BaseEnvironment
//	    MainTableName string `env:"MAIN_TABLE_NAME,required"`
//	}
//
// BaseEnvironment provides the following environment variables:
//
//	| Variable           | Required | Default   | Description                                  |
//	|--------------------|----------|-----------|----------------------------------------------|
//	| BR_PORT            | Yes      | -         | Port the HTTP server listens on              |
//	| BR_SERVICE_NAME    | Yes      | -         | Service name for logging and tracing         |
//	| BR_READINESS_PATH  | No       | /health   | Readiness endpoint, excluded from tracing    |
//	| BR_LOG_LEVEL       | No       | info      | Log level (debug, info, warn, error)         |
//	| BR_OTEL_EXPORTER   | No       | stdout    | Trace exporter: stdout, xrayudp or none      |
//	| BR_STATIC_DIR      | No       | -         | Directory served below /static/              |
//	| BR_S3_BUCKET       | No       | -         | Bucket served below /objects/                |
//	| AWS_REGION         | No       | us-east-1 | Region of the AWS clients                    |
//
// # Logging
//
// [Log] returns a trace-correlated zap logger for the request. Response diagnostics of the mux
// are reported through the same logger, named "bresp.bserve".
//
// # Static files and objects
//
// Files below BR_STATIC_DIR are sent with [bresp.NewFile], so they reach the client through
// sendfile where the platform supports it. Objects of BR_S3_BUCKET are streamed with
// [s3resp.Handler] when the app is created with [WithS3Objects].
package bserve
