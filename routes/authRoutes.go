package routes

import (
	"time"

	"github.com/Kariqs/maxtech-api/controllers"
	"github.com/Kariqs/maxtech-api/middlewares"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine) {
	limiter := middlewares.NewRateLimiter(6*time.Second, 10)

	auth := server.Group("/auth")
	{
		auth.POST("/signup", limiter.Middleware(), controllers.Signup)
		auth.POST("/login", limiter.Middleware(), controllers.Login)
		auth.POST("/logout", controllers.Logout)
		auth.GET("/me", middlewares.RequireAuth(), controllers.Me)
		auth.POST("/verify-email/:activationToken", controllers.ActivateAccount)
		auth.POST("/forgot-password", limiter.Middleware(), controllers.SendPasswordResetLink)
		auth.POST("/reset-password/:resetToken", controllers.ResetPassword)
	}
}
