package bresp_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/advdv/bresp"
	"github.com/advdv/bresp/internal/example"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapWithoutMiddleware(t *testing.T) {
	hdlr := bresp.HandlerFunc(func(context.Context, *http.Request) (bresp.Response, error) {
		return nil, nil
	})

	bare := bresp.Wrap(hdlr)
	res, err := bare.ServeBareBHTTP(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Nil(t, res)
}

func TestWrapOrder(t *testing.T) {
	var res string

	hdlr := bresp.HandlerFunc(func(ctx context.Context, r *http.Request) (bresp.Response, error) {
		res += fmt.Sprintf("inner %v", ctx.Value(ctxKey("foo")))

		require.Equal(t, r.Context().Value(ctxKey("foo")), ctx.Value(ctxKey("foo")))

		dl1, ok1 := ctx.Deadline()
		dl2, ok2 := r.Context().Deadline()
		require.Equal(t, dl1, dl2)
		require.Equal(t, ok1, ok2)
		require.NotNil(t, example.Log(ctx))

		return nil, errors.New("inner error")
	})

	mw := func(name string) bresp.Middleware {
		return func(n bresp.BareHandler) bresp.BareHandler {
			return bresp.BareHandlerFunc(func(r *http.Request) (bresp.Response, error) {
				res += name + "("
				resp, err := n.ServeBareBHTTP(r)
				res += ")" + name

				return resp, fmt.Errorf("%s(%w)", name, err)
			})
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)

	var logbuf bytes.Buffer
	logs := slog.New(slog.NewTextHandler(&logbuf, nil))

	_, err := bresp.Wrap(hdlr, example.Middleware(logs), mw("3"), withCtxValue("foo", "bar"), mw("2"), mw("1")).
		ServeBareBHTTP(req)
	require.Equal(t, "3(2(1(inner bar)1)2)3", res)
	require.EqualError(t, err, `3(2(1(inner error)))`)
	require.Contains(t, logbuf.String(), "code=500")
	require.Contains(t, logbuf.String(), "method=GET")
}

func TestRecoverMiddleware(t *testing.T) {
	hdlr := bresp.Wrap(
		bresp.HandlerFunc(func(context.Context, *http.Request) (bresp.Response, error) {
			panic("some panic")
		}),
		errorer(),
		recoverer(),
	)

	rec := httptest.NewRecorder()
	bresp.ToStd(hdlr, bresp.NewTestLogger(t), nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Equal(t, "recovered: some panic\n", rec.Body.String())
}

// errorer turns any error into a plain-text server error response.
func errorer() bresp.Middleware {
	return func(next bresp.BareHandler) bresp.BareHandler {
		return bresp.BareHandlerFunc(func(r *http.Request) (bresp.Response, error) {
			res, err := next.ServeBareBHTTP(r)
			if err != nil {
				return bresp.NewText(err.Error()+"\n", bresp.WithStatus(http.StatusInternalServerError))
			}

			return res, nil
		})
	}
}

// recoverer turns panics into errors.
func recoverer() bresp.Middleware {
	return func(next bresp.BareHandler) bresp.BareHandler {
		return bresp.BareHandlerFunc(func(r *http.Request) (res bresp.Response, err error) {
			defer func() {
				if e := recover(); e != nil {
					err = fmt.Errorf("recovered: %v", e)
				}
			}()

			return next.ServeBareBHTTP(r)
		})
	}
}
