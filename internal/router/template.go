package router

import (
	"fmt"
	"net/url"
	"strings"
)

// pattern is a compiled path template such as /products/:id.
type pattern struct {
	raw      string
	segments []segment
}

type segment struct {
	literal string
	param   string
}

func compilePattern(raw string) (pattern, error) {
	if !strings.HasPrefix(raw, "/") {
		return pattern{}, fmt.Errorf("pattern %q must start with /", raw)
	}
	p := pattern{raw: raw}
	if raw == "/" {
		return p, nil
	}
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw[1:], "/") {
		switch {
		case part == "":
			return pattern{}, fmt.Errorf("pattern %q has an empty segment", raw)
		case strings.HasPrefix(part, ":"):
			name := part[1:]
			if name == "" {
				return pattern{}, fmt.Errorf("pattern %q has an unnamed placeholder", raw)
			}
			if seen[name] {
				return pattern{}, fmt.Errorf("pattern %q repeats placeholder %q", raw, name)
			}
			seen[name] = true
			p.segments = append(p.segments, segment{param: name})
		default:
			p.segments = append(p.segments, segment{literal: part})
		}
	}
	return p, nil
}

// match reports whether path fits the template and returns the placeholder
// values. Literal segments compare case-sensitively and the segment count must
// be equal.
func (p pattern) match(path string) (map[string]string, bool) {
	if path == "/" || path == "" {
		return nil, len(p.segments) == 0
	}
	if !strings.HasPrefix(path, "/") {
		return nil, false
	}
	parts := strings.Split(path[1:], "/")
	if len(parts) != len(p.segments) {
		return nil, false
	}
	var params map[string]string
	for i, seg := range p.segments {
		part := parts[i]
		if seg.param == "" {
			if part != seg.literal {
				return nil, false
			}
			continue
		}
		if part == "" {
			return nil, false
		}
		value, err := url.PathUnescape(part)
		if err != nil {
			return nil, false
		}
		if params == nil {
			params = make(map[string]string, len(p.segments))
		}
		params[seg.param] = value
	}
	return params, true
}

// splitTarget separates the path from its query string.
func splitTarget(target string) (string, url.Values) {
	target = strings.TrimSpace(target)
	path, rawQuery, _ := strings.Cut(target, "?")
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	return path, query
}
