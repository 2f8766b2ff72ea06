package bresp

import (
	"slices"
	"sync"

	"github.com/advdv/bresp/internal/httppattern"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// Reverser keeps track of named route patterns and builds paths from them.
// It is safe for concurrent use.
type Reverser struct {
	mu   sync.RWMutex
	pats map[string]*httppattern.Pattern
}

// NewReverser inits the reverser.
func NewReverser() *Reverser {
	return &Reverser{pats: map[string]*httppattern.Pattern{}}
}

// Names returns the names of all patterns in sorted order.
func (r *Reverser) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := lo.Keys(r.pats)
	slices.Sort(names)

	return names
}

// Reverse builds the path of the named pattern, with vals substituted for its wildcards in order.
func (r *Reverser) Reverse(name string, vals ...string) (string, error) {
	r.mu.RLock()
	pat, ok := r.pats[name]
	r.mu.RUnlock()

	if !ok {
		return "", errors.Newf("no pattern named: %q, got: %v", name, r.Names())
	}

	res, err := httppattern.Build(pat, vals...)
	if err != nil {
		return "", errors.Wrapf(err, "build %q", name)
	}

	return res, nil
}

// Named is like [Reverser.NamedPattern] but panics when the pattern cannot be named.
func (r *Reverser) Named(name, str string) string {
	str, err := r.NamedPattern(name, str)
	if err != nil {
		panic("bresp: " + err.Error())
	}

	return str
}

// NamedPattern parses str as a route pattern, stores it under name and returns it unchanged.
func (r *Reverser) NamedPattern(name, str string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.pats[name]; exists {
		return str, errors.Newf("pattern with name %q already exists", name)
	}

	pat, err := httppattern.ParsePattern(str)
	if err != nil {
		return str, errors.Wrap(err, "failed to parse pattern")
	}

	r.pats[name] = pat

	return str, nil
}
