package bserve

import (
	"net/http"

	"github.com/advdv/bresp"
	"go.uber.org/zap"
)

// Mux is an alias for bresp.ServeMux.
type Mux = bresp.ServeMux

// NewMux creates a new Mux that reports response diagnostics to the zap logger. Responses that
// are rendered elsewhere use the same logger by default.
func NewMux(logs *zap.Logger) *Mux {
	rl := NewResponseLogger(logs)
	bresp.SetDefaultLogger(rl)

	return bresp.NewServeMuxWith(rl, http.NewServeMux(), bresp.NewReverser(), nil)
}
