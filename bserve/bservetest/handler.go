package bservetest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/advdv/bresp"
)

// CallHandler invokes a [bresp.HandlerFunc] the way the mux does and returns the recorded
// response. Signals are resolved with [bresp.DefaultErrorPage], response diagnostics are logged
// to the test.
func CallHandler(t testing.TB, handler bresp.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	bresp.ToStd(bresp.ToBare(handler), bresp.NewTestLogger(t), nil).ServeHTTP(rec, req)

	return rec
}
