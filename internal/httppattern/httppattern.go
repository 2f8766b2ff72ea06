// Package httppattern parses the route patterns of net/http's ServeMux and builds paths from them.
package httppattern

import (
	"fmt"
	"net/url"
	"strings"
)

// Segment is one slash-separated part of a pattern path.
type Segment struct {
	Name     string // wildcard name, empty for literal segments
	Literal  string // literal text, unescaped
	Multi    bool   // {name...} matches the rest of the path
	EndSlash bool   // {$} only matches a trailing slash
}

// Pattern is a parsed "[METHOD ][HOST]/[PATH]" route pattern.
type Pattern struct {
	Method   string
	Host     string
	Segments []Segment
	raw      string
}

func (p *Pattern) String() string { return p.raw }

// Wildcards returns the names of all wildcards in order.
func (p *Pattern) Wildcards() []string {
	var names []string
	for _, s := range p.Segments {
		if s.Name != "" {
			names = append(names, s.Name)
		}
	}

	return names
}

// ParsePattern parses s the way net/http's ServeMux does.
func ParsePattern(s string) (*Pattern, error) {
	if s == "" {
		return nil, fmt.Errorf("empty pattern") //nolint:goerr113
	}

	p := &Pattern{raw: s}
	rest := s
	if method, after, found := strings.Cut(strings.TrimLeft(s, " \t"), " "); found {
		p.Method, rest = method, strings.TrimLeft(after, " \t")
	}

	idx := strings.IndexByte(rest, '/')
	if idx < 0 {
		return nil, fmt.Errorf("pattern %q: host/path missing /", s) //nolint:goerr113
	}

	p.Host, rest = rest[:idx], rest[idx+1:]

	seen := map[string]bool{}
	for i := 0; rest != "" || i == 0; i++ {
		var seg string
		seg, rest, _ = strings.Cut(rest, "/")

		parsed, err := parseSegment(seg)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", s, err)
		}

		if parsed.Name != "" {
			if seen[parsed.Name] {
				return nil, fmt.Errorf("pattern %q: duplicate wildcard name %q", s, parsed.Name) //nolint:goerr113
			}
			seen[parsed.Name] = true
		}

		if (parsed.Multi || parsed.EndSlash) && rest != "" {
			return nil, fmt.Errorf("pattern %q: %q not at end", s, seg) //nolint:goerr113
		}

		p.Segments = append(p.Segments, parsed)
		if rest == "" && strings.HasSuffix(s, "/") && seg != "" && !parsed.Multi && !parsed.EndSlash {
			p.Segments = append(p.Segments, Segment{})
		}
	}

	return p, nil
}

func parseSegment(seg string) (Segment, error) {
	if !strings.HasPrefix(seg, "{") {
		if strings.ContainsAny(seg, "{}") {
			return Segment{}, fmt.Errorf("bad wildcard segment %q", seg) //nolint:goerr113
		}

		lit, err := url.PathUnescape(seg)
		if err != nil {
			return Segment{}, fmt.Errorf("bad literal segment %q: %w", seg, err)
		}

		return Segment{Literal: lit}, nil
	}

	if !strings.HasSuffix(seg, "}") {
		return Segment{}, fmt.Errorf("bad wildcard segment %q", seg) //nolint:goerr113
	}

	name := seg[1 : len(seg)-1]
	if name == "$" {
		return Segment{EndSlash: true}, nil
	}

	multi := strings.HasSuffix(name, "...")
	name = strings.TrimSuffix(name, "...")
	if name == "" {
		return Segment{}, fmt.Errorf("empty wildcard in %q", seg) //nolint:goerr113
	}

	return Segment{Name: name, Multi: multi}, nil
}

// Build substitutes vals for the wildcards of p in order and returns the path.
func Build(p *Pattern, vals ...string) (string, error) {
	switch want := len(p.Wildcards()); {
	case len(vals) < want:
		return "", fmt.Errorf("not enough values for pattern %q: need %d, got %d", p, want, len(vals)) //nolint:goerr113
	case len(vals) > want:
		return "", fmt.Errorf("too many values for pattern %q: need %d, got %d", p, want, len(vals)) //nolint:goerr113
	}

	var sb strings.Builder
	for _, seg := range p.Segments {
		sb.WriteByte('/')

		switch {
		case seg.EndSlash:
		case seg.Multi:
			sb.WriteString(escapeMulti(vals[0]))
			vals = vals[1:]
		case seg.Name != "":
			sb.WriteString(url.PathEscape(vals[0]))
			vals = vals[1:]
		default:
			sb.WriteString(url.PathEscape(seg.Literal))
		}
	}

	return sb.String(), nil
}

func escapeMulti(v string) string {
	parts := strings.Split(v, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}

	return strings.Join(parts, "/")
}
