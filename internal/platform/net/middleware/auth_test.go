package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bulkdate/internal/platform/net"
	"bulkdate/internal/platform/net/middleware"
)

type fakeAuthPort struct {
	op  int64
	err error
}

func (f fakeAuthPort) Parse(*http.Request) (int64, error) {
	return f.op, f.err
}

func writeStub(w http.ResponseWriter, status int, _ any) {
	w.WriteHeader(status)
}

func TestAuth_NilPortPassesThrough(t *testing.T) {
	var nextCalled bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		if op := net.Operator(r.Context()); op != 0 {
			t.Errorf("operator = %d, want 0", op)
		}
		w.WriteHeader(200)
	})

	rr := httptest.NewRecorder()
	middleware.Auth(nil, writeStub)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if !nextCalled {
		t.Fatal("expected next to be called")
	}
	if rr.Code != 200 {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
}

func TestAuth_ErrorFromPortWritesMappedError(t *testing.T) {
	mw := middleware.Auth(fakeAuthPort{err: errors.New("nope")}, writeStub)

	var nextCalled bool
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { nextCalled = true })

	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if nextCalled {
		t.Fatal("did not expect next to be called on auth error")
	}
	if rr.Code < 400 {
		t.Fatalf("expected error status got %d", rr.Code)
	}
}

func TestAuth_SetsOperatorOnContext(t *testing.T) {
	mw := middleware.Auth(fakeAuthPort{op: 7}, writeStub)

	var seen int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = net.Operator(r.Context())
		w.WriteHeader(200)
	})

	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != 200 || seen != 7 {
		t.Fatalf("code=%d operator=%d, want 200/7", rr.Code, seen)
	}
}

func TestParseTokens(t *testing.T) {
	toks, err := middleware.ParseTokens([]string{" alpha:1 ", "beta:22", ""})
	if err != nil {
		t.Fatalf("ParseTokens: %v", err)
	}
	if toks["alpha"] != 1 || toks["beta"] != 22 || len(toks) != 2 {
		t.Fatalf("tokens = %v", toks)
	}

	for _, bad := range []string{"noColon", ":5", "x:abc", "x:-1"} {
		if _, err := middleware.ParseTokens([]string{bad}); err == nil {
			t.Fatalf("ParseTokens(%q) should fail", bad)
		}
	}
}

func TestTokens_Parse(t *testing.T) {
	toks := middleware.Tokens{"alpha": 1, "beta": 22}

	cases := []struct {
		name    string
		header  string
		want    int64
		wantErr bool
	}{
		{"known token", "Bearer beta", 22, false},
		{"case insensitive prefix", "bearer alpha", 1, false},
		{"missing header", "", 0, true},
		{"wrong scheme", "Basic alpha", 0, true},
		{"empty token", "Bearer   ", 0, true},
		{"unknown token", "Bearer gamma", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			got, err := toks.Parse(r)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("operator = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestTokens_EmptyTableIsAnonymous(t *testing.T) {
	got, err := middleware.Tokens{}.Parse(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil || got != 0 {
		t.Fatalf("Parse = %d, %v; want 0, nil", got, err)
	}
}
