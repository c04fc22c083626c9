package httpkit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perrs "bulkdate/internal/platform/errors"
	phttp "bulkdate/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

type verbCall struct {
	verb, path string
}

// fakeRouter records registrations and runs Route/Group bodies inline
type fakeRouter struct {
	prefixes  []string
	useCalls  int
	verbCalls []verbCall
}

func (f *fakeRouter) rec(verb, path string) { f.verbCalls = append(f.verbCalls, verbCall{verb, path}) }

func (f *fakeRouter) Get(p string, _ phttp.Handler)     { f.rec("GET", p) }
func (f *fakeRouter) Post(p string, _ phttp.Handler)    { f.rec("POST", p) }
func (f *fakeRouter) Put(p string, _ phttp.Handler)     { f.rec("PUT", p) }
func (f *fakeRouter) Patch(p string, _ phttp.Handler)   { f.rec("PATCH", p) }
func (f *fakeRouter) Delete(p string, _ phttp.Handler)  { f.rec("DELETE", p) }
func (f *fakeRouter) Head(p string, _ phttp.Handler)    { f.rec("HEAD", p) }
func (f *fakeRouter) Options(p string, _ phttp.Handler) { f.rec("OPTIONS", p) }
func (f *fakeRouter) Handle(p string, _ http.Handler)   { f.rec("HANDLE", p) }

func (f *fakeRouter) Use(...func(http.Handler) http.Handler) { f.useCalls++ }
func (f *fakeRouter) Group(fn func(Router))                  { fn(f) }
func (f *fakeRouter) Mux() http.Handler                      { return http.NewServeMux() }

func (f *fakeRouter) Route(prefix string, fn func(Router)) {
	f.prefixes = append(f.prefixes, prefix)
	fn(f)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return env
}

func withParam(r *http.Request, k, v string) *http.Request {
	rc := chi.NewRouteContext()
	rc.URLParams.Add(k, v)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rc))
}

func TestParamID(t *testing.T) {
	for _, tc := range []struct {
		raw  string
		want int64
		ok   bool
	}{
		{"42", 42, true},
		{" 7 ", 7, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
	} {
		r := withParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", tc.raw)
		got, err := ParamID(r, "id")
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParamID(%q) = %d, %v", tc.raw, got, err)
		}
		if !tc.ok {
			if !perrs.IsCode(err, perrs.ErrorCodeInvalidArgument) {
				t.Fatalf("ParamID(%q) err = %v, want invalid argument", tc.raw, err)
			}
			if e, _ := perrs.As(err); e == nil || e.Field() != "id" {
				t.Fatalf("ParamID(%q) missing field", tc.raw)
			}
		}
	}
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?limit=25&bad=x&sp=%203%20", nil)
	if got := QueryInt(r, "limit", 10); got != 25 {
		t.Fatalf("limit = %d", got)
	}
	if got := QueryInt(r, "bad", 10); got != 10 {
		t.Fatalf("bad = %d", got)
	}
	if got := QueryInt(r, "sp", 0); got != 3 {
		t.Fatalf("sp = %d", got)
	}
	if got := QueryInt(r, "missing", -1); got != -1 {
		t.Fatalf("missing = %d", got)
	}
}

type shiftBody struct {
	Days int `json:"days" validate:"min=1"`
}

func TestHandlers_EnvelopeOverChi(t *testing.T) {
	mux := chi.NewRouter()
	MountAPIV1(phttp.AdaptChi(mux), nil, func(api Router) {
		Get(api, "/items/{id}", func(r *http.Request) (any, error) {
			id, err := ParamID(r, "id")
			if err != nil {
				return nil, err
			}
			return map[string]int64{"id": id}, nil
		})
		PostJSON(api, "/shift", func(_ *http.Request, in shiftBody) (any, error) {
			return phttp.Created(in), nil
		})
		Delete(api, "/items/{id}", func(*http.Request) (any, error) { return phttp.NoContent(), nil })
	})

	cases := []struct {
		method, path, body string
		status             int
	}{
		{http.MethodGet, "/api/v1/items/9", "", http.StatusOK},
		{http.MethodGet, "/api/v1/items/zero", "", http.StatusUnprocessableEntity},
		{http.MethodPost, "/api/v1/shift", `{"days":3}`, http.StatusCreated},
		{http.MethodPost, "/api/v1/shift", `{"days":0}`, http.StatusBadRequest},
		{http.MethodPost, "/api/v1/shift", `{"days":3,"extra":1}`, http.StatusBadRequest},
		{http.MethodDelete, "/api/v1/items/9", "", http.StatusNoContent},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body)))
		if rec.Code != tc.status {
			t.Fatalf("%s %s = %d, want %d (%s)", tc.method, tc.path, rec.Code, tc.status, rec.Body.String())
		}
		if rec.Code == http.StatusNoContent {
			continue
		}
		if env := decode(t, rec); env.StatusCode != tc.status {
			t.Fatalf("%s %s envelope status %d", tc.method, tc.path, env.StatusCode)
		}
	}
}

func TestMountAPIV1_ScopesMiddleware(t *testing.T) {
	f := &fakeRouter{}
	mw := func(h http.Handler) http.Handler { return h }
	MountAPIV1(f, []func(http.Handler) http.Handler{mw}, func(api Router) { api.Get("/x", nil) })

	if len(f.prefixes) != 1 || f.prefixes[0] != "/api/v1" {
		t.Fatalf("prefixes = %v", f.prefixes)
	}
	if f.useCalls != 1 || len(f.verbCalls) != 1 {
		t.Fatalf("use=%d calls=%v", f.useCalls, f.verbCalls)
	}
}
