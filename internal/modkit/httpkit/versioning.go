package httpkit

import "net/http"

// MountAPIV1 scopes mount under /api/v1 with mw applied to that scope only
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/v1", func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}
