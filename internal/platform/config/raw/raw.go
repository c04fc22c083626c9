// Package raw reads environment variables for bootstrap code that cannot use config,
// which logs through the logger that itself is configured here
package raw

import (
	"os"
	"strings"
)

// Conf is a prefixed view over the environment
type Conf struct{ prefix string }

func New() Conf { return Conf{} }

// Prefix returns a child view whose keys are prefixed by p
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) env(key string) string { return strings.TrimSpace(os.Getenv(c.prefix + key)) }

// Get returns the trimmed value of key or def
func (c Conf) Get(key, def string) string {
	if v := c.env(key); v != "" {
		return v
	}
	return def
}

// GetBool treats 1, true and yes as true; unset yields def
func (c Conf) GetBool(key string, def bool) bool {
	switch strings.ToLower(c.env(key)) {
	case "":
		return def
	case "1", "true", "yes":
		return true
	}
	return false
}
