package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "bulkdate/internal/platform/net/http"
	"bulkdate/internal/platform/net/middleware"
)

// CommonStack is the middleware every /api/v1 request passes through
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 2 * time.Second}),
		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		// batch runs are request scoped, keep room for large selections
		middleware.Timeout(5 * time.Minute),
	}
}

// Auth rejects requests without a valid bearer token, answering with the envelope writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}
