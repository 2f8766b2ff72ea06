package bservetest

import (
	"strconv"
	"testing"
)

// Env provides a chainable builder for setting [bserve.BaseEnvironment] env vars
// via t.Setenv. Create one with [SetBaseEnv].
type Env struct {
	t testing.TB
}

// SetBaseEnv sets all [bserve.BaseEnvironment] env vars to test defaults.
// Port is required because each test must use a unique port to avoid collisions.
//
// Defaults:
//   - BR_SERVICE_NAME: "test"
//   - BR_READINESS_PATH: "/health"
//   - BR_OTEL_EXPORTER: "none"
//   - BR_STATIC_DIR, BR_S3_BUCKET: empty
//   - AWS_REGION: "us-east-1"
//   - AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY: "test"
//
// Use the returned [Env] to override individual values:
//
//	bservetest.SetBaseEnv(t, 18085).StaticDir(t.TempDir())
func SetBaseEnv(t testing.TB, port int) *Env {
	t.Helper()
	t.Setenv("BR_PORT", strconv.Itoa(port))
	t.Setenv("BR_SERVICE_NAME", "test")
	t.Setenv("BR_READINESS_PATH", "/health")
	t.Setenv("BR_OTEL_EXPORTER", "none")
	t.Setenv("BR_LOG_LEVEL", "info")
	t.Setenv("BR_STATIC_DIR", "")
	t.Setenv("BR_S3_BUCKET", "")
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")

	return &Env{t: t}
}

// ServiceName overrides BR_SERVICE_NAME.
func (e *Env) ServiceName(name string) *Env {
	e.t.Helper()
	e.t.Setenv("BR_SERVICE_NAME", name)

	return e
}

// ReadinessPath overrides BR_READINESS_PATH.
func (e *Env) ReadinessPath(path string) *Env {
	e.t.Helper()
	e.t.Setenv("BR_READINESS_PATH", path)

	return e
}

// StaticDir overrides BR_STATIC_DIR.
func (e *Env) StaticDir(dir string) *Env {
	e.t.Helper()
	e.t.Setenv("BR_STATIC_DIR", dir)

	return e
}

// S3Bucket overrides BR_S3_BUCKET.
func (e *Env) S3Bucket(bucket string) *Env {
	e.t.Helper()
	e.t.Setenv("BR_S3_BUCKET", bucket)

	return e
}

// AWSRegion overrides AWS_REGION.
func (e *Env) AWSRegion(region string) *Env {
	e.t.Helper()
	e.t.Setenv("AWS_REGION", region)

	return e
}
