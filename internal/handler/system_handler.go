package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// SystemHandler serves liveness and readiness probes.
type SystemHandler struct {
	pool      *pgxpool.Pool
	rdb       *redis.Client
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(pool *pgxpool.Pool, rdb *redis.Client) *SystemHandler {
	return &SystemHandler{
		pool:      pool,
		rdb:       rdb,
		startTime: time.Now(),
	}
}

// Health godoc
// GET /health
// Reports process uptime and the state of both backing stores. Returns 503
// when either store is unreachable.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	status := http.StatusOK

	dbStatus := "ok"
	if err := h.pool.Ping(ctx); err != nil {
		dbStatus = "down"
		status = http.StatusServiceUnavailable
	}

	redisStatus := "ok"
	if h.rdb != nil {
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			redisStatus = "down"
			status = http.StatusServiceUnavailable
		}
	} else {
		redisStatus = "disabled"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}

	c.JSON(status, gin.H{
		"status": overall,
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
		"checks": gin.H{
			"postgres": dbStatus,
			"redis":    redisStatus,
		},
	})
}
