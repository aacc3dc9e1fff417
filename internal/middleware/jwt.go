package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dnc-edu/conduct-backend/internal/response"
	"github.com/dnc-edu/conduct-backend/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	// ContextKeyClaims is the Gin context key for JWT claims.
	ContextKeyClaims = "claims"
	// AuthCookieName mirrors the bearer token for browser clients.
	AuthCookieName = "conduct_token"
)

// RequireAuth validates the JWT of any role and stores its claims on the
// context.
func RequireAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := extractAndValidateClaims(c, authService)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims retrieves the JWT claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

// ActorFromClaims converts validated claims into the service-layer actor.
func ActorFromClaims(claims *service.Claims) service.Actor {
	return service.Actor{
		Role:    claims.Role,
		UserID:  claims.UserID,
		ClassID: claims.ClassID,
	}
}

func extractAndValidateClaims(c *gin.Context, authService *service.AuthService) (*service.Claims, error) {
	tokenStr := ""

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			tokenStr = parts[1]
		}
	}

	// Browser clients carry the token in an HTTP-only cookie instead.
	if tokenStr == "" {
		if cookie, err := c.Cookie(AuthCookieName); err == nil {
			tokenStr = cookie
		}
	}

	// Fallback for EventSource (SSE) and WebSocket upgrades, which cannot
	// send headers.
	if tokenStr == "" {
		tokenStr = c.Query("token")
	}

	if tokenStr == "" {
		return nil, fmt.Errorf("authorization header, cookie or token query required")
	}

	return authService.ValidateToken(tokenStr)
}
