package bresp_test

import (
	"io"
	"strings"
	"testing"

	"github.com/advdv/bresp"
	"github.com/stretchr/testify/require"
)

type rendered struct {
	calls  int
	status string
	fields []bresp.Field
	body   []byte
}

func (r rendered) header(name string) string {
	for _, f := range r.fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value
		}
	}

	return ""
}

func render(t *testing.T, resp bresp.Response) rendered {
	t.Helper()

	var res rendered
	body, err := resp.Render(func(status string, fields []bresp.Field) error {
		res.calls++
		res.status, res.fields = status, fields
		return nil
	})
	require.NoError(t, err)

	res.body, err = io.ReadAll(body)
	require.NoError(t, err)

	return res
}
