package middleware

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"

	perr "bulkdate/internal/platform/errors"
	"bulkdate/internal/platform/logger"
	pnet "bulkdate/internal/platform/net"
)

// AuthPort resolves the acting operator from a request
type AuthPort interface {
	Parse(r *http.Request) (operator int64, err error)
}

// Auth stores the operator on the request context. A nil port passes
// requests through as the anonymous operator
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			op, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithOperator(r.Context(), op)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), strconv.FormatInt(op, 10))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Bearer returns the raw bearer token from the Authorization header
func Bearer(r *http.Request) (string, error) {
	authz := r.Header.Get("Authorization")
	const prefix = "bearer "
	if len(authz) < len(prefix) || strings.ToLower(authz[:len(prefix)]) != prefix {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(authz[len(prefix):])
	if raw == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	return raw, nil
}

// Tokens maps static bearer tokens to operator ids
type Tokens map[string]int64

// ParseTokens reads "token:userID" pairs
func ParseTokens(pairs []string) (Tokens, error) {
	out := Tokens{}
	for _, p := range pairs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		tok, id, ok := strings.Cut(p, ":")
		tok = strings.TrimSpace(tok)
		if !ok || tok == "" {
			return nil, perr.InvalidArgf("auth token entry %q: want token:userID", p)
		}
		uid, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil || uid < 0 {
			return nil, perr.InvalidArgf("auth token entry %q: bad user id", p)
		}
		out[tok] = uid
	}
	return out, nil
}

// Parse implements AuthPort; an empty table makes everyone operator 0
func (t Tokens) Parse(r *http.Request) (int64, error) {
	if len(t) == 0 {
		return 0, nil
	}
	raw, err := Bearer(r)
	if err != nil {
		return 0, err
	}
	for tok, uid := range t {
		if subtle.ConstantTimeCompare([]byte(tok), []byte(raw)) == 1 {
			return uid, nil
		}
	}
	return 0, perr.Unauthorizedf("unknown bearer token")
}
