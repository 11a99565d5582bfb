package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, exists := ctx.Get(ContextUser); !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
			return
		}

		if !IsAdmin(ctx) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
			return
		}

		ctx.Next()
	}
}
