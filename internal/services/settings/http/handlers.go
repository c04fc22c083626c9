// Package http provides http transport for the plugin settings
package http

import (
	stdhttp "net/http"

	"bulkdate/internal/modkit/httpkit"
	"bulkdate/internal/services/settings/domain"
)

// Register mounts settings endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.get)
	httpkit.PutJSON[domain.UpdateInput](r, "/", h.update)
	httpkit.PostJSON[domain.ToggleInput](r, "/tabs", h.toggle)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route GET /settings Settings settingsGet
// @Summary Current plugin settings
// @Tags Settings
// @Produce json
// @Success 200 {object} domain.Settings "ok"
// @Router /settings [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context())
}

// swagger:route PUT /settings Settings settingsUpdate
// @Summary Update history settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param body body domain.UpdateInput true "history toggle and retention"
// @Success 200 {object} domain.Settings "ok"
// @Failure 400 {object} httpkit.Envelope "invalid retention"
// @Router /settings [put]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	return h.svc.Update(r.Context(), in)
}

// swagger:route POST /settings/tabs Settings settingsToggleTab
// @Summary Enable or disable a tab
// @Tags Settings
// @Accept json
// @Produce json
// @Param body body domain.ToggleInput true "tab and state"
// @Success 200 {object} domain.ToggleResult "ok"
// @Router /settings/tabs [post]
func (h *handlers) toggle(r *stdhttp.Request, in domain.ToggleInput) (any, error) {
	return h.svc.ToggleTab(r.Context(), in)
}
