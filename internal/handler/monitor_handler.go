package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dnc-edu/conduct-backend/internal/config"
	"github.com/dnc-edu/conduct-backend/internal/middleware"
	"github.com/dnc-edu/conduct-backend/internal/response"
	"github.com/dnc-edu/conduct-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	refreshInterval   = 30 * time.Second
	keepAliveInterval = 25 * time.Second
	refreshTimeout    = 5 * time.Second // prevent slow queries from blocking the SSE loop
)

// MonitorHandler streams live class submission activity over SSE.
type MonitorHandler struct {
	rdb               *redis.Client
	evaluationService *service.EvaluationService
	log               zerolog.Logger
}

// NewMonitorHandler creates a new MonitorHandler.
func NewMonitorHandler(rdb *redis.Client, evaluationService *service.EvaluationService, log zerolog.Logger) *MonitorHandler {
	return &MonitorHandler{
		rdb:               rdb,
		evaluationService: evaluationService,
		log:               log.With().Str("component", "monitor_handler").Logger(),
	}
}

// ClassStreamSSE godoc
// GET /api/v1/evaluations/class/:class_id/stream?semester_id=...
// Pushes an initial class summary, then every submission event of the class
// as it happens. EventSource clients authenticate via ?token=.
func (h *MonitorHandler) ClassStreamSSE(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	classID, ok := paramInt(c, "class_id")
	if !ok {
		return
	}
	semesterID, ok := queryInt(c, "semester_id")
	if !ok {
		return
	}

	actor := middleware.ActorFromClaims(claims)
	if err := h.evaluationService.CheckClassAccess(c.Request.Context(), actor, classID); err != nil {
		fail(c, err)
		return
	}

	reqCtx := c.Request.Context()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	h.sendSummary(c, reqCtx, classID, semesterID)

	pubsub := h.rdb.Subscribe(reqCtx, config.CacheKey.ClassSubmissionChannel(classID))
	defer pubsub.Close()
	ch := pubsub.Channel()

	keepAliveTicker := time.NewTicker(keepAliveInterval)
	defer keepAliveTicker.Stop()

	refreshTicker := time.NewTicker(refreshInterval)
	defer refreshTicker.Stop()

	h.log.Info().
		Int("class_id", classID).
		Int("semester_id", semesterID).
		Int("user_id", claims.UserID).
		Msg("client attached to class stream")

	pingPayload, _ := json.Marshal(gin.H{"type": "ping"})

	for {
		select {
		case <-reqCtx.Done():
			return
		case msg, open := <-ch:
			if !open {
				return
			}
			c.SSEvent("submission", msg.Payload)
			c.Writer.Flush()
		case <-refreshTicker.C:
			h.sendSummary(c, reqCtx, classID, semesterID)
		case <-keepAliveTicker.C:
			c.SSEvent("ping", string(pingPayload))
			c.Writer.Flush()
		}
	}
}

func (h *MonitorHandler) sendSummary(c *gin.Context, ctx context.Context, classID, semesterID int) {
	queryCtx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	summary, err := h.evaluationService.RefreshClassSummary(queryCtx, classID, semesterID)
	if err != nil {
		h.log.Warn().Err(err).Int("class_id", classID).Msg("failed to build stream summary")
		return
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		return
	}
	c.SSEvent("summary", string(payload))
	c.Writer.Flush()
}
