package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/dnc-edu/conduct-backend/internal/config"
	"github.com/dnc-edu/conduct-backend/internal/middleware"
	"github.com/dnc-edu/conduct-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 30 * time.Second
)

// buildUpgrader creates a WebSocket upgrader with origin validation. An
// empty allow-list permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler pushes class submission events over WebSocket.
type WSHandler struct {
	rdb               *redis.Client
	evaluationService *service.EvaluationService
	log               zerolog.Logger
	upgrader          websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, evaluationService *service.EvaluationService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:               rdb,
		evaluationService: evaluationService,
		log:               log.With().Str("component", "ws_handler").Logger(),
		upgrader:          buildUpgrader(allowedOrigins),
	}
}

// ClassSubmissionStream godoc
// WS /ws/v1/classes/:class_id/submissions
// Upgrades to WebSocket and forwards each submission event of the class.
// The feed is push-only; client frames are read solely to detect close.
func (h *WSHandler) ClassSubmissionStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	classID, ok := paramInt(c, "class_id")
	if !ok {
		return
	}

	actor := middleware.ActorFromClaims(claims)
	if err := h.evaluationService.CheckClassAccess(c.Request.Context(), actor, classID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().
		Int("class_id", classID).
		Int("user_id", claims.UserID).
		Logger()
	wsLog.Info().Msg("client connected to submission feed")

	ctx := c.Request.Context()
	pubsub := h.rdb.Subscribe(ctx, config.CacheKey.ClassSubmissionChannel(classID))
	defer pubsub.Close()
	events := pubsub.Channel()

	// Reader goroutine: drain client frames so close/ping handling works.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	pingTicker := time.NewTicker(wsPingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			wsLog.Debug().Msg("client disconnected")
			return
		case msg, open := <-events:
			if !open {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				wsLog.Warn().Err(err).Msg("write failed")
				return
			}
		case <-pingTicker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
