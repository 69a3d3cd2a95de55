package routes

import (
	"github.com/Kariqs/maxtech-api/controllers"
	"github.com/Kariqs/maxtech-api/middlewares"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine) {
	server.GET("/products", controllers.GetProducts)
	server.GET("/products/:id", controllers.GetProduct)

	admin := server.Group("/products", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("", controllers.CreateProduct)
		admin.POST("/bulk", controllers.CreateProducts)
		admin.POST("/images", controllers.UploadProductImages)
		admin.PATCH("/:id", controllers.UpdateProduct)
		admin.DELETE("/:id", controllers.DeleteProduct)
	}
}
