// Package http provides http transport for date redistribution runs
package http

import (
	stdhttp "net/http"

	"bulkdate/internal/modkit/httpkit"
	ptime "bulkdate/internal/platform/time"
	"bulkdate/internal/services/redistribute/domain"
)

// Register mounts redistribution endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort, clock ptime.Clock) {
	if clock == nil {
		clock = ptime.System{}
	}
	h := &handlers{svc: s, clock: clock}
	httpkit.Get(r, "/presets", h.presets)
	httpkit.PostJSON[domain.RunInput](r, "/{tab}", h.run)
}

type handlers struct {
	svc   domain.ServicePort
	clock ptime.Clock
}

// swagger:route POST /redistribute/{tab} Redistribute redistributeRun
// @Summary Assign random dates to every entity of a tab
// @Description tab is posts, pages, comments or a custom post type key
// @Tags Redistribute
// @Accept json
// @Produce json
// @Param tab path string true "posts, pages, comments or a post type"
// @Param body body domain.RunInput true "range, time window and selectors"
// @Success 200 {object} domain.Report "ok"
// @Failure 400 {object} httpkit.Envelope "invalid input"
// @Failure 403 {object} httpkit.Envelope "tab disabled"
// @Router /redistribute/{tab} [post]
func (h *handlers) run(r *stdhttp.Request, in domain.RunInput) (any, error) {
	in.Tab = httpkit.Param(r, "tab")
	in.Operator = httpkit.Operator(r)
	return h.svc.Run(r.Context(), in)
}

// swagger:route GET /redistribute/presets Redistribute redistributePresets
// @Summary Quick ranges and distribute offsets around now
// @Tags Redistribute
// @Produce json
// @Success 200 {object} domain.Presets "ok"
// @Router /redistribute/presets [get]
func (h *handlers) presets(r *stdhttp.Request) (any, error) {
	return h.svc.Presets(h.clock.Now()), nil
}
