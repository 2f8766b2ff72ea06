package bservetest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/advdv/bresp"
	"github.com/advdv/bresp/bserve/bservetest"
	"github.com/stretchr/testify/require"
)

func TestCallHandler(t *testing.T) {
	handler := func(_ context.Context, r *http.Request) (bresp.Response, error) {
		if r.URL.Query().Get("name") == "" {
			return nil, bresp.Abort(bresp.CodeBadRequest)
		}

		return bresp.NewText("hello " + r.URL.Query().Get("name"))
	}

	rec := bservetest.CallHandler(t, handler, httptest.NewRequest(http.MethodGet, "/?name=ann", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "hello ann", rec.Body.String())

	rec = bservetest.CallHandler(t, handler, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "400 Bad Request\n", rec.Body.String())
}
