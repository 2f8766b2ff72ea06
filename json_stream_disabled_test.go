//go:build bresp_nojsonstream

package bresp_test

import (
	"testing"

	"github.com/advdv/bresp"
	"github.com/stretchr/testify/require"
)

func TestJSONGeneratorDisabled(t *testing.T) {
	require.False(t, bresp.JSONStreamSupported())

	_, err := bresp.NewJSONGenerator(map[string]any{"a": 1})
	require.ErrorIs(t, err, bresp.ErrUnsupportedFeature)
}
