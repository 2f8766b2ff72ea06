package bresp

import (
	"log"
	"strings"
	"sync/atomic"
	"testing"
)

// Logger can be implemented to get informed about important states. None of these states stop a
// response from being sent.
type Logger interface {
	LogUnhandledServeError(err error)
	LogDrainError(err error)
	LogNotModifiedRepresentation(names []string)
	LogNotModifiedMissingValidator()
	LogUnknownContentLength()
	LogDeclinedHeaders(callSite string)
	LogDeprecatedPermanent()
}

type stdLogger struct{ *log.Logger }

func (l stdLogger) LogUnhandledServeError(err error) {
	l.Logger.Printf("bresp: unhandled server error: %s", err)
}

func (l stdLogger) LogDrainError(err error) {
	l.Logger.Printf("bresp: error while draining response body: %s", err)
}

func (l stdLogger) LogNotModifiedRepresentation(names []string) {
	l.Logger.Printf("bresp: representation headers in Not Modified response: %s", strings.Join(names, ", "))
}

func (l stdLogger) LogNotModifiedMissingValidator() {
	l.Logger.Printf("bresp: missing any required header in Not Modified response")
}

func (l stdLogger) LogUnknownContentLength() {
	l.Logger.Printf("bresp: file object has unknown size")
}

func (l stdLogger) LogDeclinedHeaders(callSite string) {
	l.Logger.Printf("bresp: declined response doesn't use headers, called from %s", callSite)
}

func (l stdLogger) LogDeprecatedPermanent() {
	l.Logger.Printf("bresp: option permanent is deprecated, use a real status code instead")
}

// NewStdLogger adapts a standard library logger. A nil logger means log.Default().
func NewStdLogger(l *log.Logger) Logger {
	if l == nil {
		l = log.Default()
	}

	return stdLogger{l}
}

var defaultLogger atomic.Pointer[Logger]

func init() { SetDefaultLogger(NewStdLogger(nil)) }

// SetDefaultLogger replaces the logger used by responses that were not given one with
// [WithLogger]. It is meant to be called once during program setup.
func SetDefaultLogger(l Logger) { defaultLogger.Store(&l) }

// DefaultLogger returns the logger used by responses that were not given one.
func DefaultLogger() Logger { return *defaultLogger.Load() }

// TestLogger counts every diagnostic and forwards it to the test log.
type TestLogger struct {
	tb testing.TB

	NumLogUnhandledServeError         int64
	NumLogDrainError                  int64
	NumLogNotModifiedRepresentation   int64
	NumLogNotModifiedMissingValidator int64
	NumLogUnknownContentLength        int64
	NumLogDeclinedHeaders             int64
	NumLogDeprecatedPermanent         int64
}

func NewTestLogger(tb testing.TB) *TestLogger {
	return &TestLogger{tb: tb}
}

func (l *TestLogger) LogUnhandledServeError(err error) {
	atomic.AddInt64(&l.NumLogUnhandledServeError, 1)
	l.tb.Logf("bresp: unhandled server error: %s", err)
}

func (l *TestLogger) LogDrainError(err error) {
	atomic.AddInt64(&l.NumLogDrainError, 1)
	l.tb.Logf("bresp: error while draining response body: %s", err)
}

func (l *TestLogger) LogNotModifiedRepresentation(names []string) {
	atomic.AddInt64(&l.NumLogNotModifiedRepresentation, 1)
	l.tb.Logf("bresp: representation headers in Not Modified response: %v", names)
}

func (l *TestLogger) LogNotModifiedMissingValidator() {
	atomic.AddInt64(&l.NumLogNotModifiedMissingValidator, 1)
	l.tb.Logf("bresp: missing any required header in Not Modified response")
}

func (l *TestLogger) LogUnknownContentLength() {
	atomic.AddInt64(&l.NumLogUnknownContentLength, 1)
	l.tb.Logf("bresp: file object has unknown size")
}

func (l *TestLogger) LogDeclinedHeaders(callSite string) {
	atomic.AddInt64(&l.NumLogDeclinedHeaders, 1)
	l.tb.Logf("bresp: declined response doesn't use headers, called from %s", callSite)
}

func (l *TestLogger) LogDeprecatedPermanent() {
	atomic.AddInt64(&l.NumLogDeprecatedPermanent, 1)
	l.tb.Logf("bresp: option permanent is deprecated")
}

var _ Logger = &TestLogger{}
