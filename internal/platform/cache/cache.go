// Package cache holds entity snapshots between reads and exposes the
// invalidate and flush hooks the batch mutator drives
package cache

import (
	"time"
	"unsafe"

	"bulkdate/internal/platform/logger"

	"github.com/coocood/freecache"
	json "github.com/goccy/go-json"
)

// Cache is a byte cache keyed by string
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Invalidate(key string)
	Flush()
}

// Config sizes the in-process cache
type Config struct {
	Enabled bool
	SizeMB  int
	TTL     time.Duration
}

// New returns a freecache backed cache, or a no-op cache when disabled
func New(cfg Config, log logger.Logger) Cache {
	if !cfg.Enabled || cfg.SizeMB <= 0 {
		log.Info().Msg("entity cache disabled")
		return Noop{}
	}
	ttl := int(cfg.TTL / time.Second)
	if ttl < 0 {
		ttl = 0
	}
	log.Info().Int("size_mb", cfg.SizeMB).Int("ttl_s", ttl).Msg("entity cache initialized")
	return &Free{cache: freecache.NewCache(cfg.SizeMB * 1024 * 1024), ttl: ttl}
}

// Free is the freecache implementation; zero ttl means no expiry
type Free struct {
	cache *freecache.Cache
	ttl   int
}

// keyBytes views s as bytes without copying; freecache copies keys itself
func keyBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func (c *Free) Get(key string) ([]byte, bool) {
	v, err := c.cache.Get(keyBytes(key))
	if err != nil {
		return nil, false
	}
	return v, true
}

func (c *Free) Set(key string, value []byte) {
	_ = c.cache.Set(keyBytes(key), value, c.ttl)
}

func (c *Free) Invalidate(key string) { c.cache.Del(keyBytes(key)) }

func (c *Free) Flush() { c.cache.Clear() }

// Len reports the number of live entries
func (c *Free) Len() int64 { return c.cache.EntryCount() }

// Noop never stores anything
type Noop struct{}

func (Noop) Get(string) ([]byte, bool) { return nil, false }
func (Noop) Set(string, []byte)        {}
func (Noop) Invalidate(string)         {}
func (Noop) Flush()                    {}

// GetJSON decodes a cached JSON value into T
func GetJSON[T any](c Cache, key string) (T, bool) {
	var v T
	b, ok := c.Get(key)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(b, &v); err != nil {
		c.Invalidate(key)
		return v, false
	}
	return v, true
}

// SetJSON stores v as JSON; encoding failures are dropped
func SetJSON(c Cache, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.Set(key, b)
}
