package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wims/backend/internal/infrastructure/auth"
	"github.com/wims/backend/internal/interfaces/http/dto"
)

// Context keys set by the JWT middleware
const (
	ContextKeyUserID   = "jwt_user_id"
	ContextKeyUsername = "jwt_username"
	ContextKeyRole     = "jwt_role"
)

// JWTConfig configures the JWT authentication middleware
type JWTConfig struct {
	Service   *auth.JWTService
	Logger    *zap.Logger
	SkipPaths []string
}

// JWTAuth returns a middleware that validates Bearer tokens and stores
// the authenticated identity in the request context.
func JWTAuth(cfg JWTConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, path := range cfg.SkipPaths {
		skip[path] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.FullPath()]; ok {
			c.Next()
			return
		}
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortUnauthorized(c, "Authorization header must be a Bearer token")
			return
		}

		claims, err := cfg.Service.ValidateToken(token)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Debug("token validation failed",
					zap.String("path", c.Request.URL.Path),
					zap.Error(err))
			}
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		userID, err := claims.GetUserUUID()
		if err != nil {
			abortUnauthorized(c, "Invalid token subject")
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyUsername, claims.Username)
		c.Set(ContextKeyRole, claims.Role)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("UNAUTHORIZED", message))
}

// GetUserID returns the authenticated user ID from the request context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(ContextKeyUserID)
	if !ok {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

// GetUserRole returns the authenticated user's role from the request context
func GetUserRole(c *gin.Context) (string, bool) {
	value, ok := c.Get(ContextKeyRole)
	if !ok {
		return "", false
	}
	role, ok := value.(string)
	return role, ok
}

// RequireRole returns a middleware that rejects requests whose
// authenticated role is not in the allowed set. It must run after JWTAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			abortUnauthorized(c, "Missing authentication")
			return
		}
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse("FORBIDDEN", "Insufficient permissions"))
			return
		}
		c.Next()
	}
}
