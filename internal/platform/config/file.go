package config

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/spf13/viper"
)

// file holds the optional YAML layer; env always takes precedence over it
var file atomic.Pointer[viper.Viper]

// Load reads a YAML (or any viper supported) config file into the file layer
// prefixes map to nested keys: SERVICE_PGSQL_DBURL is read from service.pgsql.dburl
func Load(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	file.Store(v)
	return nil
}

// LoadFromEnv loads the file named by CONFIG_FILE when set
func LoadFromEnv() error {
	p := strings.TrimSpace(os.Getenv("CONFIG_FILE"))
	if p == "" {
		return nil
	}
	return Load(p)
}

// Reset drops the file layer
func Reset() { file.Store(nil) }

// lookup returns the trimmed env value, falling back to the file layer
func (c Conf) lookup(key string) string {
	if v := strings.TrimSpace(os.Getenv(c.key(key))); v != "" {
		return v
	}
	v := file.Load()
	if v == nil {
		return ""
	}
	return strings.TrimSpace(v.GetString(c.path(key)))
}

// path maps the prefix chain onto a dotted viper key
func (c Conf) path(key string) string {
	var b strings.Builder
	for _, seg := range strings.Split(strings.Trim(c.prefix, "_"), "_") {
		if seg == "" {
			continue
		}
		b.WriteString(strings.ToLower(seg))
		b.WriteByte('.')
	}
	b.WriteString(strings.ToLower(key))
	return b.String()
}
