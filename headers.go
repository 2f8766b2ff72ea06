package bresp

import (
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"
)

// PoweredBy is the value of the identification header added to responses that are constructed
// without an explicit header set.
const PoweredBy = "bresp"

// Field is a single header line.
type Field struct {
	Name  string
	Value string
}

// Headers is an ordered multimap of header fields. Lookups are case-insensitive, iteration
// follows insertion order. The zero value is an empty set ready to use.
type Headers struct {
	fields []Field
}

// NewHeaders inits a header set holding the given fields in order.
func NewHeaders(fields ...Field) *Headers {
	return &Headers{fields: append([]Field(nil), fields...)}
}

func defaultHeaders() *Headers {
	return NewHeaders(Field{"X-Powered-By", PoweredBy})
}

// Add appends a field, keeping any existing fields with the same name.
func (h *Headers) Add(name, value string) {
	h.fields = append(h.fields, Field{name, value})
}

// Set replaces all fields named name with a single field. The new field takes the position of
// the first replaced one.
func (h *Headers) Set(name, value string) {
	idx := h.index(name)
	if idx < 0 {
		h.Add(name, value)
		return
	}

	h.fields[idx] = Field{name, value}
	h.fields = append(h.fields[:idx+1], lo.Reject(h.fields[idx+1:], func(f Field, _ int) bool {
		return strings.EqualFold(f.Name, name)
	})...)
}

// Get returns the first value for name, or the empty string.
func (h *Headers) Get(name string) string {
	if idx := h.index(name); idx >= 0 {
		return h.fields[idx].Value
	}

	return ""
}

// Values returns all values for name in insertion order.
func (h *Headers) Values(name string) []string {
	return lo.FilterMap(h.fields, func(f Field, _ int) (string, bool) {
		return f.Value, strings.EqualFold(f.Name, name)
	})
}

// Contains reports whether at least one field is named name.
func (h *Headers) Contains(name string) bool {
	return h.index(name) >= 0
}

// Del removes all fields named name.
func (h *Headers) Del(name string) {
	h.fields = lo.Reject(h.fields, func(f Field, _ int) bool {
		return strings.EqualFold(f.Name, name)
	})
}

// Keys returns the distinct field names, in the spelling and order they were first added.
func (h *Headers) Keys() []string {
	return lo.UniqBy(lo.Map(h.fields, func(f Field, _ int) string {
		return f.Name
	}), strings.ToLower)
}

// Fields returns a copy of all fields in insertion order.
func (h *Headers) Fields() []Field {
	return append([]Field{}, h.fields...)
}

// Len returns the number of fields.
func (h *Headers) Len() int { return len(h.fields) }

// Clone returns an independent copy of the set.
func (h *Headers) Clone() *Headers { return NewHeaders(h.fields...) }

func (h *Headers) index(name string) int {
	_, idx, ok := lo.FindIndexOf(h.fields, func(f Field) bool {
		return strings.EqualFold(f.Name, name)
	})
	if !ok {
		return -1
	}

	return idx
}

// HTTPDate formats t in the IMF-fixdate form used by HTTP date headers.
func HTTPDate(t time.Time) string { return t.UTC().Format(http.TimeFormat) }
