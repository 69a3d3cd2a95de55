package routes

import (
	"github.com/Kariqs/maxtech-api/controllers"
	"github.com/Kariqs/maxtech-api/middlewares"
	"github.com/gin-gonic/gin"
)

func PartRoutes(server *gin.Engine) {
	server.GET("/parts", controllers.GetParts)
	server.GET("/parts/search", controllers.SearchParts)
	server.GET("/parts/:id", controllers.GetPart)

	admin := server.Group("/parts", middlewares.RequireAuth(), middlewares.RequireSuperAdmin())
	{
		admin.POST("", controllers.CreatePart)
		admin.POST("/bulk", controllers.CreateParts)
		admin.PUT("/:id", controllers.UpdatePart)
		admin.DELETE("/:id", controllers.DeletePart)
	}
}
