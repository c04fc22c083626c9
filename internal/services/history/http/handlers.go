// Package http provides http transport for the date history ledger
package http

import (
	stdhttp "net/http"

	"bulkdate/internal/modkit/httpkit"
	"bulkdate/internal/services/history/domain"
)

// Register mounts ledger endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/types", h.types)
	httpkit.Post(r, "/sweep", h.sweep)
	httpkit.Post(r, "/{id}/restore", h.restore)
	httpkit.Delete(r, "/{id}", h.remove)
	httpkit.Delete(r, "/", h.clear)
}

type handlers struct{ svc domain.ServicePort }

// ClearResponse reports how many rows were removed
type ClearResponse struct {
	Deleted int64 `json:"deleted" example:"42"`
}

// RemoveResponse confirms a single row removal
type RemoveResponse struct {
	ID      int64 `json:"id"      example:"41"`
	Removed bool  `json:"removed" example:"true"`
}

// swagger:route GET /history History historyList
// @Summary Page through the date history
// @Tags History
// @Produce json
// @Param entity_type query string false "post type"
// @Param date_field query string false "post_date or post_modified"
// @Param date_from query string false "YYYY-MM-DD, inclusive"
// @Param date_to query string false "YYYY-MM-DD, inclusive"
// @Param sort_by query string false "modified_at, previous_date or new_date"
// @Param sort_order query string false "ASC or DESC"
// @Param page query int false "1 based page"
// @Success 200 {object} domain.Page "ok"
// @Router /history [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context(), domain.ListQuery{
		EntityType: httpkit.Query(r, "entity_type"),
		DateField:  httpkit.Query(r, "date_field"),
		DateFrom:   httpkit.Query(r, "date_from"),
		DateTo:     httpkit.Query(r, "date_to"),
		SortBy:     httpkit.Query(r, "sort_by"),
		SortOrder:  httpkit.Query(r, "sort_order"),
		Page:       httpkit.QueryInt(r, "page", 1),
	})
}

// swagger:route GET /history/types History historyTypes
// @Summary Entity types present in the history
// @Tags History
// @Produce json
// @Success 200 {array} string "ok"
// @Router /history/types [get]
func (h *handlers) types(r *stdhttp.Request) (any, error) {
	return h.svc.Types(r.Context())
}

// swagger:route POST /history/{id}/restore History historyRestore
// @Summary Write the previous date back and drop the row
// @Tags History
// @Produce json
// @Param id path int true "History row id"
// @Success 200 {object} domain.RestoreResult "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /history/{id}/restore [post]
func (h *handlers) restore(r *stdhttp.Request) (any, error) {
	id, err := httpkit.ParamID(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Restore(r.Context(), id)
}

// swagger:route DELETE /history/{id} History historyRemove
// @Summary Remove one row without restoring
// @Tags History
// @Produce json
// @Param id path int true "History row id"
// @Success 200 {object} RemoveResponse "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /history/{id} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	id, err := httpkit.ParamID(r, "id")
	if err != nil {
		return nil, err
	}
	if err := h.svc.Remove(r.Context(), id); err != nil {
		return nil, err
	}
	return RemoveResponse{ID: id, Removed: true}, nil
}

// swagger:route DELETE /history History historyClear
// @Summary Remove every row
// @Tags History
// @Produce json
// @Success 200 {object} ClearResponse "ok"
// @Router /history [delete]
func (h *handlers) clear(r *stdhttp.Request) (any, error) {
	n, err := h.svc.Clear(r.Context())
	if err != nil {
		return nil, err
	}
	return ClearResponse{Deleted: n}, nil
}

// swagger:route POST /history/sweep History historySweep
// @Summary Apply the retention policy now
// @Tags History
// @Produce json
// @Success 200 {object} domain.SweepResult "ok"
// @Router /history/sweep [post]
func (h *handlers) sweep(r *stdhttp.Request) (any, error) {
	return h.svc.Sweep(r.Context())
}
