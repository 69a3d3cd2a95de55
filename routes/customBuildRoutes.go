package routes

import (
	"github.com/Kariqs/maxtech-api/controllers"
	"github.com/Kariqs/maxtech-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CustomBuildRoutes(server *gin.Engine) {
	builds := server.Group("/custom-builds", middlewares.RequireAuth())
	{
		builds.POST("", controllers.CreateCustomBuild)
		builds.POST("/mail", controllers.SendBuildConfirmation)
		builds.GET("/user/:userId", controllers.GetBuildsByUser)
		builds.GET("/:id", controllers.GetCustomBuild)
	}
}
