// Package http provides http transport for entities
package http

import (
	stdhttp "net/http"

	"bulkdate/internal/modkit/httpkit"
	svc "bulkdate/internal/services/entities/service"
)

// Register mounts entity endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/posts/{id}", h.post)
	httpkit.Get(r, "/types", h.types)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /posts/{id} Entities entitiesPost
// @Summary Post snapshot read through the entity cache
// @Tags Entities
// @Produce json
// @Param id path int true "Post id"
// @Success 200 {object} domain.Post "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /posts/{id} [get]
func (h *handlers) post(r *stdhttp.Request) (any, error) {
	id, err := httpkit.ParamID(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Post(r.Context(), id)
}

// swagger:route GET /types Entities entitiesTypes
// @Summary Custom post types present in the store
// @Tags Entities
// @Produce json
// @Success 200 {array} string "ok"
// @Router /types [get]
func (h *handlers) types(r *stdhttp.Request) (any, error) {
	return h.svc.KnownTypes(r.Context())
}
