package routes

import (
	"github.com/Kariqs/maxtech-api/controllers"
	"github.com/Kariqs/maxtech-api/middlewares"
	"github.com/gin-gonic/gin"
)

func AccessoryRoutes(server *gin.Engine) {
	server.GET("/accessories", controllers.GetAccessories)
	server.GET("/accessories/:id", controllers.GetAccessory)

	admin := server.Group("/accessories", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("", controllers.CreateAccessory)
		admin.POST("/images", controllers.UploadAccessoryImages)
		admin.PATCH("/:id", controllers.UpdateAccessory)
		admin.DELETE("/:id", controllers.DeleteAccessory)
	}
}
