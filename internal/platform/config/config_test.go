package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	kit "bulkdate/internal/platform/testkit"
)

func TestConf_Values(t *testing.T) {
	c := New().Prefix("BD_").Prefix("SWEEP_")
	t.Setenv("BD_SWEEP_NAME", "  nightly ")
	t.Setenv("BD_SWEEP_WORKERS", " 8 ")
	t.Setenv("BD_SWEEP_BADINT", "eight")
	t.Setenv("BD_SWEEP_ON", "true")
	t.Setenv("BD_SWEEP_EVERY", "90s")
	t.Setenv("BD_SWEEP_OFFSET", "5.5")
	t.Setenv("BD_SWEEP_TOKENS", " a:1, ,b:2 ")
	t.Setenv("BD_SWEEP_BLANKS", " , ")
	t.Setenv("BD_SWEEP_DRIVER", "SQLite")

	if got := c.MustString("NAME"); got != "nightly" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { c.MustString("MISSING") })

	if got := c.MayString("MISSING", "def"); got != "def" {
		t.Fatalf("MayString default = %q", got)
	}
	if c.MayInt("WORKERS", 1) != 8 || c.MayInt("BADINT", 3) != 3 || c.MayInt("MISSING", 4) != 4 {
		t.Fatal("MayInt")
	}
	if !c.MayBool("ON", false) || c.MayBool("NAME", false) {
		t.Fatal("MayBool")
	}
	if c.MayDuration("EVERY", time.Second) != 90*time.Second || c.MayDuration("NAME", time.Second) != time.Second {
		t.Fatal("MayDuration")
	}
	if c.MayFloat64("OFFSET", 0) != 5.5 {
		t.Fatal("MayFloat64")
	}

	if got := c.MayCSV("TOKENS", nil); len(got) != 2 || got[0] != "a:1" || got[1] != "b:2" {
		t.Fatalf("MayCSV = %q", got)
	}
	if got := c.MayCSV("BLANKS", []string{"x"}); len(got) != 1 || got[0] != "x" {
		t.Fatalf("MayCSV blanks = %q", got)
	}

	if got := c.MayEnum("DRIVER", "postgres", "postgres", "sqlite"); got != "sqlite" {
		t.Fatalf("MayEnum = %q", got)
	}
	if got := c.MayEnum("MISSING", "postgres", "postgres", "sqlite"); got != "postgres" {
		t.Fatalf("MayEnum default = %q", got)
	}
	kit.MustPanic(t, func() { c.MayEnum("NAME", "", "postgres", "sqlite") })
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "bulkdate.yaml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return p
}

func TestLoad_FileLayerUnderEnv(t *testing.T) {
	kit.Serial(t)
	t.Cleanup(Reset)

	p := writeYAML(t, `
service:
  pgsql:
    dburl: postgres://file/db
    max_conns: 9
site:
  timezone: Europe/Berlin
`)
	if err := Load(p); err != nil {
		t.Fatalf("Load: %v", err)
	}

	pg := New().Prefix("SERVICE_PGSQL_")
	if got := pg.MustString("DBURL"); got != "postgres://file/db" {
		t.Fatalf("file DBURL = %q", got)
	}
	if got := pg.MayInt("MAX_CONNS", 1); got != 9 {
		t.Fatalf("file MAX_CONNS = %d, want 9", got)
	}

	// env wins over the file
	t.Setenv("SERVICE_PGSQL_MAX_CONNS", "3")
	if got := pg.MayInt("MAX_CONNS", 1); got != 3 {
		t.Fatalf("env MAX_CONNS = %d, want 3", got)
	}

	if got := New().Prefix("SITE_").MayString("TIMEZONE", "UTC"); got != "Europe/Berlin" {
		t.Fatalf("SITE_TIMEZONE = %q", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	kit.Serial(t)
	t.Cleanup(Reset)
	if err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadFromEnv_NoopWhenUnset(t *testing.T) {
	kit.Serial(t)
	t.Cleanup(Reset)
	t.Setenv("CONFIG_FILE", "")
	if err := LoadFromEnv(); err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if file.Load() != nil {
		t.Fatalf("file layer should stay empty")
	}
}

func TestPath(t *testing.T) {
	c := New().Prefix("CORE_").Prefix("HISTORY_")
	if got := c.path("PAGE_SIZE"); got != "core.history.page_size" {
		t.Fatalf("path = %q", got)
	}
	if got := New().path("CONFIG_FILE"); got != "config_file" {
		t.Fatalf("root path = %q", got)
	}
}
