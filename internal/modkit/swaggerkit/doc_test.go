package swaggerkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "bulkdate/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

func TestMount_ServesRenderedDocument(t *testing.T) {
	mux := chi.NewRouter()
	err := Mount(phttp.AdaptChi(mux), Document{
		Title:    "bulkdate",
		Version:  "1.2.3",
		BasePath: "/api/v1",
		Public:   []string{"GET /meta/version"},
		Secured:  []string{"POST /redistribute/{tab}", "DELETE /history/{id}", "* /raw"},
	})
	if err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("doc.json = %d", rec.Code)
	}

	var doc struct {
		Info    map[string]string `json:"info"`
		Servers []map[string]string
		Paths   map[string]map[string]struct {
			Tags       []string         `json:"tags"`
			Parameters []map[string]any `json:"parameters"`
			Security   []map[string]any `json:"security"`
		} `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v\n%s", err, rec.Body.String())
	}
	if doc.Info["title"] != "bulkdate" || doc.Info["version"] != "1.2.3" || doc.Servers[0]["url"] != "/api/v1" {
		t.Fatalf("info = %v servers = %v", doc.Info, doc.Servers)
	}
	if len(doc.Paths) != 3 {
		t.Fatalf("paths = %v", doc.Paths)
	}
	if op := doc.Paths["/meta/version"]["get"]; len(op.Security) != 0 || op.Tags[0] != "meta" {
		t.Fatalf("public op = %+v", op)
	}
	op := doc.Paths["/redistribute/{tab}"]["post"]
	if len(op.Security) != 1 || len(op.Parameters) != 1 || op.Parameters[0]["name"] != "tab" {
		t.Fatalf("secured op = %+v", op)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	if rec.Code != http.StatusPermanentRedirect {
		t.Fatalf("redirect = %d", rec.Code)
	}
}
