package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/starwars-blog/api/internal/api/types"
	appErr "github.com/starwars-blog/api/pkg/errors"
)

type HealthHandler struct {
	ping func(ctx context.Context) error
}

// NewHealthHandler builds the probes; ping checks the database for readiness.
func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeMsg(w, http.StatusOK, "ok")
}

func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			writeError(w, r, appErr.Wrap(err, appErr.CodeUnavailable, "database unavailable"))
			return
		}
	}
	writeJSON(w, http.StatusOK, types.MessageResponse{Msg: "ready"})
}
