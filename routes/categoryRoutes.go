package routes

import (
	"github.com/Kariqs/maxtech-api/controllers"
	"github.com/Kariqs/maxtech-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CategoryRoutes(server *gin.Engine) {
	server.GET("/categories", controllers.GetCategories)
	server.GET("/categories/:id", controllers.GetCategory)

	admin := server.Group("/categories", middlewares.RequireAuth(), middlewares.RequireSuperAdmin())
	{
		admin.POST("", controllers.CreateCategories)
		admin.PUT("/:id", controllers.UpdateCategory)
		admin.DELETE("/:id", controllers.DeleteCategory)
	}
}
