package cache

import (
	"testing"
	"time"

	"bulkdate/internal/platform/bus"

	"github.com/rs/zerolog"
)

type snap struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func newFree(t *testing.T) Cache {
	t.Helper()
	c := New(Config{Enabled: true, SizeMB: 1, TTL: time.Minute}, zerolog.Nop())
	if _, ok := c.(*Free); !ok {
		t.Fatalf("want *Free, got %T", c)
	}
	return c
}

func TestNew_DisabledIsNoop(t *testing.T) {
	t.Parallel()

	for _, cfg := range []Config{{}, {Enabled: true, SizeMB: 0}} {
		c := New(cfg, zerolog.Nop())
		if _, ok := c.(Noop); !ok {
			t.Fatalf("cfg %+v: want Noop, got %T", cfg, c)
		}
		c.Set("k", []byte("v"))
		if _, ok := c.Get("k"); ok {
			t.Fatalf("Noop stored a value")
		}
		c.Invalidate("k")
		c.Flush()
	}
}

func TestFree_SetGetInvalidateFlush(t *testing.T) {
	t.Parallel()

	c := newFree(t)
	c.Set("post:1", []byte("a"))
	c.Set("post:2", []byte("b"))

	if v, ok := c.Get("post:1"); !ok || string(v) != "a" {
		t.Fatalf("Get = %q, %v", v, ok)
	}
	c.Invalidate("post:1")
	if _, ok := c.Get("post:1"); ok {
		t.Fatalf("post:1 survived Invalidate")
	}
	if c.(*Free).Len() != 1 {
		t.Fatalf("Len = %d", c.(*Free).Len())
	}
	c.Flush()
	if _, ok := c.Get("post:2"); ok {
		t.Fatalf("post:2 survived Flush")
	}
}

func TestJSONHelpers(t *testing.T) {
	t.Parallel()

	c := newFree(t)
	SetJSON(c, "post:7", snap{ID: 7, Title: "Hello"})

	got, ok := GetJSON[snap](c, "post:7")
	if !ok || got.ID != 7 || got.Title != "Hello" {
		t.Fatalf("GetJSON = %+v, %v", got, ok)
	}

	c.Set("post:8", []byte("{not json"))
	if _, ok := GetJSON[snap](c, "post:8"); ok {
		t.Fatalf("corrupt entry should miss")
	}
	if _, ok := c.Get("post:8"); ok {
		t.Fatalf("corrupt entry should be evicted")
	}
	if _, ok := GetJSON[snap](c, "post:9"); ok {
		t.Fatalf("missing key should miss")
	}
}

func TestBroadcast_FansOutToOtherReplicas(t *testing.T) {
	t.Parallel()

	shared := bus.NewLocal()
	a := NewBroadcast(newFree(t), shared, "bulkdate.cache", zerolog.Nop())
	b := NewBroadcast(newFree(t), shared, "bulkdate.cache", zerolog.Nop())
	stopA, _ := a.Listen()
	stopB, _ := b.Listen()
	t.Cleanup(func() { _ = stopA(); _ = stopB() })

	a.Set("post:1", []byte("a1"))
	b.Set("post:1", []byte("b1"))
	b.Set("post:2", []byte("b2"))

	a.Invalidate("post:1")
	if _, ok := a.Get("post:1"); ok {
		t.Fatalf("local invalidate missed")
	}
	if _, ok := b.Get("post:1"); ok {
		t.Fatalf("remote invalidate missed")
	}
	if _, ok := b.Get("post:2"); !ok {
		t.Fatalf("unrelated key dropped")
	}

	a.Flush()
	if _, ok := b.Get("post:2"); ok {
		t.Fatalf("remote flush missed")
	}
}
