package router

import (
	"bytes"
	"strings"
	"testing"
)

func TestPattern_Match(t *testing.T) {
	tests := []struct {
		name     string
		template string
		path     string
		ok       bool
		params   map[string]string
	}{
		{"root", "/", "/", true, nil},
		{"root vs literal", "/", "/products", false, nil},
		{"literal", "/products", "/products", true, nil},
		{"case sensitive", "/products", "/PRODUCTS", false, nil},
		{"prefix is not a match", "/products", "/products/1", false, nil},
		{"trailing slash", "/products", "/products/", false, nil},
		{"placeholder", "/products/:id", "/products/42", true, map[string]string{"id": "42"}},
		{"empty placeholder", "/products/:id", "/products/", false, nil},
		{"escaped placeholder", "/tags/:name", "/tags/a%20b", true, map[string]string{"name": "a b"}},
		{"two placeholders", "/u/:user/o/:order", "/u/7/o/9", true, map[string]string{"user": "7", "order": "9"}},
		{"relative path", "/products", "products", false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := compilePattern(tt.template)
			if err != nil {
				t.Fatalf("compilePattern(%q) returned error: %v", tt.template, err)
			}
			params, ok := p.match(tt.path)
			if ok != tt.ok {
				t.Fatalf("match(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			}
			if len(params) != len(tt.params) {
				t.Fatalf("match(%q) params = %v, want %v", tt.path, params, tt.params)
			}
			for k, v := range tt.params {
				if params[k] != v {
					t.Fatalf("param %q = %q, want %q", k, params[k], v)
				}
			}
		})
	}
}

func TestSplitTarget(t *testing.T) {
	path, query := splitTarget(" /products/search?q=red+shoes&page=2 ")
	if path != "/products/search" {
		t.Fatalf("path = %q, want /products/search", path)
	}
	if query.Get("q") != "red shoes" || query.Get("page") != "2" {
		t.Fatalf("query = %v, want q and page", query)
	}

	path, query = splitTarget("")
	if path != "/" || len(query) != 0 {
		t.Fatalf("splitTarget(\"\") = %q %v, want / and empty query", path, query)
	}
}

func TestStack_BrowserSemantics(t *testing.T) {
	s := NewStack()
	if s.Location() != "" || s.Len() != 0 {
		t.Fatalf("new stack not empty")
	}
	if _, ok := s.Back(); ok {
		t.Fatalf("Back on empty stack returned ok")
	}

	s.Replace(Entry{Path: "/"})
	s.Push(Entry{Path: "/a"})
	s.Push(Entry{Path: "/b"})

	if e, ok := s.Back(); !ok || e.Path != "/a" {
		t.Fatalf("Back = %v %v, want /a", e, ok)
	}
	s.Push(Entry{Path: "/c"})
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3 after push truncated forward entries", s.Len())
	}
	if _, ok := s.Forward(); ok {
		t.Fatalf("Forward after push returned ok")
	}
	s.Replace(Entry{Path: "/d"})
	if s.Location() != "/d" {
		t.Fatalf("Location = %q, want /d", s.Location())
	}
}

func TestWriterSurface(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSurface(&buf)
	s.Replace("/about", View{Title: "About", Markup: "hello"})
	s.Replace("/x", View{Markup: "bare"})

	out := buf.String()
	if !strings.Contains(out, "About (/about)\nhello") {
		t.Fatalf("output = %q, want titled block", out)
	}
	if !strings.Contains(out, "/x (/x)\nbare") {
		t.Fatalf("output = %q, want path used as title", out)
	}
}
