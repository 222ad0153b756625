package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/refdata/backend/internal/interfaces/http/dto"
)

// RequirePermission guards a mutating route with a named permission.
// Superadmins pass implicitly. Must run after JWTAuth.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := GetCaller(c)
		if !caller.HasPermission(permission) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Missing permission: "+permission))
			return
		}
		c.Next()
	}
}
