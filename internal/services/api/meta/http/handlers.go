// Package http serves the public meta endpoints
package http

import (
	"context"
	"net/http"
	"time"

	"bulkdate/internal/core/version"
	"bulkdate/internal/modkit/httpkit"
	ptime "bulkdate/internal/platform/time"
)

// Deps are what the meta endpoints report on. DB and CH are probed when they implement
// Ping(ctx) error; a nil CH means the mirror is not configured
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	DB          any
	DBName      string
	CH          any
	Clock       ptime.Clock
	Loc         *time.Location
}

// ReadyTimeout bounds every dependency probe of /ready
const ReadyTimeout = 2 * time.Second

type pinger interface{ Ping(context.Context) error }

type handlers struct{ Deps }

// Register mounts health, ready, version, service and site
func Register(r httpkit.Router, d Deps) {
	if d.Clock == nil {
		d.Clock = ptime.System{}
	}
	if d.Loc == nil {
		d.Loc = time.UTC
	}
	if d.DBName == "" {
		d.DBName = "db"
	}
	h := handlers{d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/site", h.site)
}

// HealthResponse answers liveness; it never touches a dependency
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"bulkdate-api"`
	Now     string `json:"now"     example:"2024-07-01T12:00:00Z"`
}

// Probe is the outcome of one dependency check: ok, fail, skipped or unknown
type Probe struct {
	Name   string `json:"name"            example:"sqlite"`
	Status string `json:"status"          example:"ok"`
	Error  string `json:"error,omitempty" example:"database is locked"`
}

// ReadyResponse is ok, degraded (mirror down or db unprobeable) or fail (db down)
type ReadyResponse struct {
	Status string  `json:"status" example:"ok"`
	Checks []Probe `json:"checks"`
}

// ServiceResponse reports process uptime in seconds
type ServiceResponse struct {
	Name    string `json:"name"    example:"bulkdate-api"`
	Started string `json:"started" example:"2024-07-01T11:55:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// SiteResponse reports the site clock every local date is written in
type SiteResponse struct {
	Timezone string `json:"timezone"   example:"America/New_York"`
	Offset   int    `json:"gmt_offset" example:"-14400"`
	Local    string `json:"local"      example:"2024-07-01 08:00:00"`
	GMT      string `json:"gmt"        example:"2024-07-01 12:00:00"`
}

func (h handlers) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.ServiceName, Now: h.Clock.Now().UTC().Format(time.RFC3339)}, nil
}

func probe(ctx context.Context, name string, dep any) Probe {
	if dep == nil {
		return Probe{Name: name, Status: "skipped"}
	}
	p, ok := dep.(pinger)
	if !ok {
		return Probe{Name: name, Status: "unknown"}
	}
	if err := p.Ping(ctx); err != nil {
		return Probe{Name: name, Status: "fail", Error: err.Error()}
	}
	return Probe{Name: name, Status: "ok"}
}

// @Summary Readiness with dependency probes
// @Tags Meta
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), ReadyTimeout)
	defer cancel()

	db := probe(ctx, h.DBName, h.DB)
	ch := probe(ctx, "clickhouse", h.CH)

	status := "ok"
	if db.Status == "fail" {
		status = "fail"
	} else if db.Status != "ok" || ch.Status == "fail" {
		status = "degraded"
	}
	return ReadyResponse{Status: status, Checks: []Probe{db, ch}}, nil
}

func (h handlers) version(*http.Request) (any, error) {
	return version.Info(h.ServiceName), nil
}

func (h handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.ServiceName,
		Started: h.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(h.Clock.Now().Sub(h.StartedAt) / time.Second),
	}, nil
}

// @Summary Site timezone and the current local and GMT time
// @Tags Meta
// @Success 200 {object} SiteResponse
// @Router /meta/site [get]
func (h handlers) site(*http.Request) (any, error) {
	now := h.Clock.Now()
	_, off := now.In(h.Loc).Zone()
	return SiteResponse{
		Timezone: h.Loc.String(),
		Offset:   off,
		Local:    ptime.Format(now, h.Loc),
		GMT:      ptime.FormatGMT(now),
	}, nil
}
