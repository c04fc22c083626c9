package modkit

import (
	"net/http"
	"testing"

	"bulkdate/internal/modkit/httpkit"
	kit "bulkdate/internal/platform/testkit"
)

type routeRec struct {
	httpkit.Router
	prefixes []string
	gets     []string
}

func (r *routeRec) Route(p string, fn func(httpkit.Router)) {
	r.prefixes = append(r.prefixes, p)
	fn(r)
}

func (r *routeRec) Get(p string, _ func(http.ResponseWriter, *http.Request)) {
	r.gets = append(r.gets, p)
}

type requires struct{ n int }

func TestBuild_LaterOptionsWin(t *testing.T) {
	b := Build(WithName("history"), WithPrefix("/history"), WithPrefix("/ledger"), WithPorts(requires{n: 2}))
	if b.Name != "history" || b.Prefix != "/ledger" {
		t.Fatalf("built = %+v", b)
	}
	if p, ok := b.Ports.(requires); !ok || p.n != 2 {
		t.Fatalf("ports = %#v", b.Ports)
	}
}

func TestBase_MountsUnderPrefix(t *testing.T) {
	base := Build(WithName("settings"), WithPrefix("/settings")).Base(func(r httpkit.Router) {
		r.Get("/", nil)
		r.Get("/tabs", nil)
	})
	rec := &routeRec{}
	base.MountRoutes(rec)

	if base.Name() != "settings" || len(rec.prefixes) != 1 || rec.prefixes[0] != "/settings" {
		t.Fatalf("name=%q prefixes=%v", base.Name(), rec.prefixes)
	}
	if len(rec.gets) != 2 {
		t.Fatalf("gets = %v", rec.gets)
	}
}

func (r *routeRec) Group(fn func(httpkit.Router)) { fn(r) }

func TestBase_RootPrefixMountsInGroup(t *testing.T) {
	rec := &routeRec{}
	Build(WithName("entities"), WithPrefix("/")).Base(func(r httpkit.Router) { r.Get("/posts", nil) }).MountRoutes(rec)
	if len(rec.prefixes) != 0 || len(rec.gets) != 1 {
		t.Fatalf("prefixes=%v gets=%v", rec.prefixes, rec.gets)
	}
}

func TestBase_PanicsWithoutNameOrPrefix(t *testing.T) {
	kit.MustPanic(t, func() { Build(WithPrefix("/x")).Base(nil).Name() })
	kit.MustPanic(t, func() { Build(WithName("x")).Base(nil).MountRoutes(&routeRec{}) })
}
