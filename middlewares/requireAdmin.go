package middlewares

import (
	"net/http"

	"github.com/Kariqs/maxtech-api/models"
	"github.com/gin-gonic/gin"
)

// RequireAdmin must run after RequireAuth. ADMIN and SUPER_ADMIN pass.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, exists := CurrentUser(ctx)
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
			return
		}

		if !claims.IsAdmin() {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
			return
		}

		ctx.Next()
	}
}

func RequireSuperAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, exists := CurrentUser(ctx)
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
			return
		}

		if claims.Role != models.RoleSuperAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Super admin access required"})
			return
		}

		ctx.Next()
	}
}
