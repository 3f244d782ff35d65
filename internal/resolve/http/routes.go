package resolvehttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/odyssey-erp/flextime/internal/platform/httpx"
)

const batchRateLimit = 10
const batchRateWindow = time.Minute

// MountRoutes registers the resolution endpoints under /v1.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(batchRateLimit, batchRateWindow,
		httprate.WithKeyFuncs(rateLimitKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			httpx.Problem(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests), "")
		}),
	)
	r.Route("/v1", func(v1 chi.Router) {
		v1.Get("/start", h.handleStart)
		v1.Get("/range", h.handleRange)
		v1.Group(func(gr chi.Router) {
			gr.Use(limiter)
			gr.Post("/start/batch", h.handleBatch)
		})
	})
}

func rateLimitKey(r *http.Request) (string, error) {
	key, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + key, nil
}
