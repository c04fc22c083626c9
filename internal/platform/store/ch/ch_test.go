package ch

import (
	"context"
	"runtime"
	"testing"
)

func TestOpen_EmptyURL(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error for empty url")
	}
}

func TestOpen_BadDSN(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{URL: "::not a dsn"}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestOpen_LazyDial(t *testing.T) {
	t.Parallel()

	c, err := Open(context.Background(), Config{URL: "clickhouse://127.0.0.1:1/default", ClientName: "bulkdate-api"})
	if err != nil {
		t.Fatalf("Open should not dial: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	if c.conn == nil {
		t.Fatalf("conn not set")
	}
}

func TestInsert_Guards(t *testing.T) {
	t.Parallel()

	var c *CH
	if err := c.Insert(context.Background(), "", nil); err == nil {
		t.Fatalf("empty table should fail")
	}
	if err := c.Insert(context.Background(), "bd_date_history_log", nil); err != nil {
		t.Fatalf("no rows is a no-op, got %v", err)
	}
	if err := c.Insert(context.Background(), "bd_date_history_log", [][]any{{1}}); err == nil {
		t.Fatalf("nil client should fail")
	}
}

func TestNilClient(t *testing.T) {
	t.Parallel()

	var c *CH
	if err := c.Ping(context.Background()); err == nil {
		t.Fatalf("Ping on nil should fail")
	}
	if err := c.Exec(context.Background(), "SELECT 1"); err == nil {
		t.Fatalf("Exec on nil should fail")
	}
	if _, err := c.Query(context.Background(), "SELECT 1"); err == nil {
		t.Fatalf("Query on nil should fail")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close on nil: %v", err)
	}
}

func TestBuildClientInfo(t *testing.T) {
	t.Parallel()

	ci := BuildClientInfo("  ", "v1")
	if len(ci.Products) != 4 {
		t.Fatalf("products = %d", len(ci.Products))
	}
	if ci.Products[0].Name != "bulkdate" || ci.Products[0].Version != "v1" {
		t.Fatalf("first product = %+v", ci.Products[0])
	}
	if ci.Products[1].Version != runtime.Version() {
		t.Fatalf("go product = %+v", ci.Products[1])
	}
}
