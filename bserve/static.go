package bserve

import (
	"context"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/advdv/bresp"
	"github.com/cockroachdb/errors"
)

// StaticPrefix is the path below which BR_STATIC_DIR is served.
const StaticPrefix = "/static"

// staticHandler serves the regular files below dir. Directories and files that cannot be read are
// answered with Not Found.
func staticHandler(dir string) bresp.HandlerFunc {
	return func(_ context.Context, r *http.Request) (bresp.Response, error) {
		name := path.Clean("/" + r.URL.Path)
		if name == "/" || strings.HasSuffix(r.URL.Path, "/") {
			return nil, bresp.Abort(bresp.CodeNotFound)
		}

		resp, err := bresp.NewFile(filepath.Join(dir, filepath.FromSlash(name)))
		if errors.Is(err, bresp.ErrAccess) {
			return nil, bresp.AbortErr(bresp.CodeNotFound, err)
		} else if err != nil {
			return nil, err
		}

		return resp, nil
	}
}
