// Package httpkit is what modules use to mount handlers; it keeps them off the platform http package
package httpkit

import (
	"net/http"
	"strconv"
	"strings"

	perrs "bulkdate/internal/platform/errors"
	pnet "bulkdate/internal/platform/net"
	phttp "bulkdate/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type (
	Envelope = phttp.Envelope
	Response = phttp.Response
	Handler  = phttp.Handler
	Router   = phttp.Router
)

// Call wraps a body-less handler in the envelope adapter
func Call(fn func(*http.Request) (any, error)) Handler { return phttp.NoBodyHandler(fn) }

// Get mounts a body-less handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) { r.Get(path, Call(h)) }

// Post mounts a body-less handler under POST
func Post(r Router, path string, h func(*http.Request) (any, error)) { r.Post(path, Call(h)) }

// Delete mounts a body-less handler under DELETE
func Delete(r Router, path string, h func(*http.Request) (any, error)) { r.Delete(path, Call(h)) }

// PostJSON binds and validates T from the body before calling h
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// PutJSON is PostJSON for PUT
func PutJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Put(path, phttp.JSONHandler(h))
}

// Param returns a trimmed chi path parameter
func Param(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}

// ParamID parses a positive integer path parameter
func ParamID(r *http.Request, name string) (int64, error) {
	raw := Param(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, perrs.WithField(perrs.InvalidArgf("invalid %s %q", name, raw), name)
	}
	return id, nil
}

// Query returns a trimmed query value
func Query(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

// QueryInt parses an integer query value, def when missing or malformed
func QueryInt(r *http.Request, name string, def int) int {
	n, err := strconv.Atoi(Query(r, name))
	if err != nil {
		return def
	}
	return n
}

// Operator returns the operator id the auth middleware stored, 0 when unauthenticated
func Operator(r *http.Request) int64 { return pnet.Operator(r.Context()) }
