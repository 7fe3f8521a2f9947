// Package middleware carries the authentication and permission gates
// applied in front of the controllers.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/bako110/Sonaby/internal/error/response"
	"github.com/bako110/Sonaby/services"
)

// Context keys set by Authenticate
const (
	CtxUserID = "userID"
	CtxEmail  = "email"
	CtxRole   = "role"
)

// extractToken strips the optional "Bearer " prefix
func extractToken(authHeader string) string {
	if strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// Authenticate verifies the access token and stores the caller's
// identity in the request context. Every protected route passes
// through here before any permission check.
func Authenticate(jwtService services.InterfaceJWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Fail(c, code.Unauthenticated("authorization header is required"))
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateAccessToken(extractToken(authHeader))
		if err != nil {
			response.Fail(c, code.Unauthenticated("invalid token"))
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id
func CurrentUserID(c *gin.Context) uint {
	if id, ok := c.Get(CtxUserID); ok {
		if uid, ok := id.(uint); ok {
			return uid
		}
	}
	return 0
}

// CurrentRole returns the authenticated user's role
func CurrentRole(c *gin.Context) string {
	if role, ok := c.Get(CtxRole); ok {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}
