package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wms/backend/internal/infrastructure/auth"
	"github.com/wms/backend/internal/interfaces/http/dto"
)

// Context keys for values extracted from the JWT
const (
	ContextKeyClaims   = "jwt_claims"
	ContextKeyUserID   = "jwt_user_id"
	ContextKeyUsername = "jwt_username"
	ContextKeyRole     = "jwt_role"
)

// JWTConfig configures the JWT authentication middleware
type JWTConfig struct {
	// SkipPaths are exact request paths that bypass authentication
	SkipPaths []string

	// SkipPathPrefixes are path prefixes that bypass authentication
	SkipPathPrefixes []string
}

// JWT returns a middleware that validates the Bearer token on every
// request and stores the parsed claims in the gin context
func JWT(jwtService *auth.JWTService, cfg JWTConfig) gin.HandlerFunc {
	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, path := range cfg.SkipPaths {
		skip[path] = true
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skip[path] {
			c.Next()
			return
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortUnauthorized(c, "authorization header must be a Bearer token")
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUsername, claims.Username)
		c.Set(ContextKeyRole, claims.Role)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, GetRequestID(c)))
}

// GetJWTClaims returns the validated claims from the gin context
func GetJWTClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

// GetJWTUserID returns the authenticated user's ID from the gin context
func GetJWTUserID(c *gin.Context) (uuid.UUID, bool) {
	claims, ok := GetJWTClaims(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := claims.ParsedUserID()
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
