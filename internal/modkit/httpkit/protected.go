package httpkit

import (
	"net/http"
	"strings"

	"bulkdate/internal/platform/net/middleware"

	phttp "bulkdate/internal/platform/net/http"
)

// Protected groups routes under bearer auth and returns what Record would
func Protected(r Router, p middleware.AuthPort, fn func(Router)) []string {
	var out []string
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		out = Record(gr, fn)
	})
	return out
}

// Record runs fn against r and returns the method and path of every route it registers,
// e.g. "POST /redistribute/{tab}"; Handle routes are reported with method "*"
func Record(r Router, fn func(Router)) []string {
	var out []string
	fn(&recorder{Router: r, seen: &out})
	return out
}

type recorder struct {
	Router
	base string
	seen *[]string
}

func joinPath(a, b string) string {
	if a == "" {
		if strings.HasPrefix(b, "/") {
			return b
		}
		return "/" + b
	}
	return strings.TrimSuffix(a, "/") + "/" + strings.TrimPrefix(b, "/")
}

func (s *recorder) mark(method, path string) {
	*s.seen = append(*s.seen, method+" "+joinPath(s.base, path))
}

func (s *recorder) Route(prefix string, fn func(Router)) {
	s.Router.Route(prefix, func(sub Router) {
		fn(&recorder{Router: sub, base: joinPath(s.base, prefix), seen: s.seen})
	})
}

func (s *recorder) Group(fn func(Router)) {
	s.Router.Group(func(sub Router) {
		fn(&recorder{Router: sub, base: s.base, seen: s.seen})
	})
}

func (s *recorder) Handle(path string, h http.Handler) {
	s.mark("*", path)
	s.Router.Handle(path, h)
}

// HEAD and OPTIONS pass through unrecorded

func (s *recorder) Get(path string, h phttp.Handler) {
	s.mark(http.MethodGet, path)
	s.Router.Get(path, h)
}

func (s *recorder) Post(path string, h phttp.Handler) {
	s.mark(http.MethodPost, path)
	s.Router.Post(path, h)
}

func (s *recorder) Put(path string, h phttp.Handler) {
	s.mark(http.MethodPut, path)
	s.Router.Put(path, h)
}

func (s *recorder) Patch(path string, h phttp.Handler) {
	s.mark(http.MethodPatch, path)
	s.Router.Patch(path, h)
}

func (s *recorder) Delete(path string, h phttp.Handler) {
	s.mark(http.MethodDelete, path)
	s.Router.Delete(path, h)
}
