// Package swaggerkit serves Swagger UI over an OpenAPI document built from the mounted routes
package swaggerkit

import (
	"net/http"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/swaggo/swag/v2"
)

// Document describes the mounted API; routes are "METHOD /path" relative to BasePath
type Document struct {
	Title    string
	Version  string
	BasePath string
	Public   []string
	Secured  []string
}

type operation struct {
	Tags       []string         `json:"tags"`
	Summary    string           `json:"summary"`
	Parameters []map[string]any `json:"parameters,omitempty"`
	Security   []map[string]any `json:"security,omitempty"`
	Responses  map[string]any   `json:"responses"`
}

func errorResponse(desc string) map[string]any {
	return map[string]any{
		"description": desc,
		"content": map[string]any{"application/json": map[string]any{
			"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
		}},
	}
}

func newOperation(method, path string, secured bool) operation {
	op := operation{
		Summary: method + " " + path,
		Responses: map[string]any{
			"200": map[string]any{
				"description": "OK",
				"content": map[string]any{"application/json": map[string]any{
					"schema": map[string]any{"$ref": "#/components/schemas/Envelope"},
				}},
			},
			"400": errorResponse("Bad Request"),
			"422": errorResponse("Unprocessable Entity"),
			"500": errorResponse("Internal Server Error"),
		},
	}
	if seg, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/"); seg != "" {
		op.Tags = []string{seg}
	}
	for _, part := range strings.Split(path, "/") {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			op.Parameters = append(op.Parameters, map[string]any{
				"name": strings.Trim(part, "{}"), "in": "path", "required": true,
				"schema": map[string]any{"type": "string"},
			})
		}
	}
	if secured {
		op.Responses["401"] = errorResponse("Unauthorized")
		op.Security = []map[string]any{{"bearer": []string{}}}
	}
	return op
}

func (d Document) paths() map[string]map[string]operation {
	out := map[string]map[string]operation{}
	add := func(routes []string, secured bool) {
		for _, rt := range routes {
			method, path, ok := strings.Cut(rt, " ")
			if !ok || method == "*" {
				continue
			}
			if out[path] == nil {
				out[path] = map[string]operation{}
			}
			out[path][strings.ToLower(method)] = newOperation(method, path, secured)
		}
	}
	add(d.Public, false)
	add(d.Secured, true)
	return out
}

// template renders the OpenAPI skeleton; swag fills title, version and base path
func (d Document) template() (string, error) {
	tags := map[string]bool{}
	for _, ops := range d.paths() {
		for _, op := range ops {
			for _, t := range op.Tags {
				tags[t] = true
			}
		}
	}
	names := make([]string, 0, len(tags))
	for t := range tags {
		names = append(names, t)
	}
	sort.Strings(names)
	tagList := make([]map[string]string, len(names))
	for i, n := range names {
		tagList[i] = map[string]string{"name": n}
	}

	raw, err := json.Marshal(map[string]any{
		"openapi": "3.0.3",
		"info":    map[string]string{"title": "{{.Title}}", "version": "{{.Version}}"},
		"servers": []map[string]string{{"url": "{{.BasePath}}"}},
		"tags":    tagList,
		"paths":   d.paths(),
		"components": map[string]any{
			"securitySchemes": map[string]any{
				"bearer": map[string]string{"type": "http", "scheme": "bearer"},
			},
			"schemas": map[string]any{
				"Envelope": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"status_code": map[string]string{"type": "integer"},
						"status":      map[string]string{"type": "string"},
						"request_id":  map[string]string{"type": "string"},
						"data":        map[string]string{"type": "object"},
					},
				},
				"ErrorResponse": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"status_code": map[string]string{"type": "integer"},
						"status":      map[string]string{"type": "string"},
						"code":        map[string]string{"type": "integer"},
						"error":       map[string]string{"type": "string"},
						"request_id":  map[string]string{"type": "string"},
					},
					"required": []string{"status_code", "status"},
				},
			},
		},
	})
	return string(raw), err
}

// Spec renders d into a swag spec for the "api" instance
func (d Document) Spec() (*swag.Spec, error) {
	tmpl, err := d.template()
	if err != nil {
		return nil, err
	}
	return &swag.Spec{
		Version:          d.Version,
		BasePath:         d.BasePath,
		Title:            d.Title,
		InfoInstanceName: "api",
		SwaggerTemplate:  tmpl,
		LeftDelim:        "{{",
		RightDelim:       "}}",
	}, nil
}

func serveDoc(spec *swag.Spec) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write([]byte(spec.ReadDoc()))
	}
}
