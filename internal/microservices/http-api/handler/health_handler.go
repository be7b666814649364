package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vibelink/internal/microservices/http-api/dto"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db         Pinger
	cacheState func() string
}

// NewHealthHandler reports store reachability and, when cacheState is set, the cache breaker state.
func NewHealthHandler(db Pinger, cacheState func() string) *HealthHandler {
	return &HealthHandler{db: db, cacheState: cacheState}
}

// Check GET /healthz. Cache trouble degrades nothing; only the store decides the status code.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Database: "up", Cache: "disabled", Time: time.Now().UTC()}
	if h.cacheState != nil {
		resp.Cache = h.cacheState()
	}

	status := http.StatusOK
	if err := h.db.PingContext(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = "down"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
