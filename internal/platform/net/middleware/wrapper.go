// Package middleware is the http middleware the API stack composes: chi and go-chi/cors adapters plus our own
package middleware

import (
	"net/http"
	"time"

	pstrings "bulkdate/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

type mw = func(http.Handler) http.Handler

// RequestID propagates X-Request-ID or assigns one
func RequestID() mw { return chimw.RequestID }

// RealIP trusts X-Forwarded-For and X-Real-IP
func RealIP() mw { return chimw.RealIP }

// NoCache marks every response uncacheable
func NoCache() mw { return chimw.NoCache }

func Timeout(d time.Duration) mw { return chimw.Timeout(d) }

// Compress gzips/deflates responses at level
func Compress(level int) mw { return chimw.Compress(level) }

func RedirectSlashes() mw { return chimw.RedirectSlashes }

func StripSlashes() mw { return chimw.StripSlashes }

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) mw { return chimw.Heartbeat(path) }

// CORSOptions are the knobs of go-chi/cors we expose; empty lists take defaults
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS applies go-chi/cors; no origins configured means any origin
func CORS(o CORSOptions) mw {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"}),
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
