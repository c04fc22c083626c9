package ch

import (
	"cmp"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// BuildClientInfo describes this process to the server so its queries are attributable in system.query_log
func BuildClientInfo(name, tag string) clickhouse.ClientInfo {
	host, _ := os.Hostname()
	info := clickhouse.ClientInfo{}
	add := func(k, v string) {
		info.Products = append(info.Products, struct{ Name, Version string }{k, strings.TrimSpace(v)})
	}
	add(cmp.Or(strings.TrimSpace(name), "bulkdate"), tag)
	add("go", runtime.Version())
	add("commit", revision())
	add("host", host)
	return info
}

func revision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return "unknown"
}
