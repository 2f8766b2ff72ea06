package bserve

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/advdv/bresp"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

type recordingLifecycle struct{ hooks []fx.Hook }

func (l *recordingLifecycle) Append(h fx.Hook) { l.hooks = append(l.hooks, h) }

func serveStatic(t *testing.T, dir, target string) *httptest.ResponseRecorder {
	t.Helper()

	// the mux strips the mount prefix, so requests arrive with the remaining path.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.URL.Path = target

	rec := httptest.NewRecorder()
	bresp.ToStd(bresp.ToBare(staticHandler(dir)), bresp.NewTestLogger(t), nil).ServeHTTP(rec, req)

	return rec
}

func TestStaticHandler(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "site.txt"), []byte("body{}"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(dir), "secret.txt"), []byte("x"), 0o600))

	t.Run("file", func(t *testing.T) {
		rec := serveStatic(t, dir, "/css/site.txt")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "body{}", rec.Body.String())
		require.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
		require.Equal(t, "6", rec.Header().Get("Content-Length"))
		require.NotEmpty(t, rec.Header().Get("Last-Modified"))
	})

	for name, target := range map[string]string{
		"missing":   "/css/other.txt",
		"directory": "/css",
		"slash":     "/css/",
		"root":      "/",
		"traversal": "/../secret.txt",
	} {
		t.Run(name, func(t *testing.T) {
			rec := serveStatic(t, dir, target)
			require.Equal(t, http.StatusNotFound, rec.Code)
			require.Equal(t, "404 Not Found\n", rec.Body.String())
		})
	}
}
