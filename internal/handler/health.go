package handler

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"appforge/internal/httputil"
)

// HealthHandler answers liveness probes.
type HealthHandler struct {
	pool      *pgxpool.Pool
	responder *httputil.Responder
}

func NewHealthHandler(pool *pgxpool.Pool, responder *httputil.Responder) *HealthHandler {
	return &HealthHandler{pool: pool, responder: responder}
}

// Check verifies database connectivity
// GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.pool.Ping(r.Context()); err != nil {
		h.responder.Err(w, r, err)
		return
	}
	h.responder.OK(w, r, map[string]string{"status": "ok"})
}
