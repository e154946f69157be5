package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wms/backend/internal/domain/identity"
	"github.com/wms/backend/internal/interfaces/http/dto"
)

// RequireRole allows the request through only when the authenticated
// user's role covers the required role
func RequireRole(required identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetJWTClaims(c)
		if !ok {
			abortUnauthorized(c, "authentication required")
			return
		}

		role, err := claims.ParsedRole()
		if err != nil {
			abortUnauthorized(c, "invalid role in token")
			return
		}

		if !role.Covers(required) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden,
					"requires "+required.String()+" role", GetRequestID(c)))
			return
		}

		c.Next()
	}
}
