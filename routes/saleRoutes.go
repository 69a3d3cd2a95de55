package routes

import (
	"github.com/Kariqs/maxtech-api/controllers"
	"github.com/Kariqs/maxtech-api/middlewares"
	"github.com/gin-gonic/gin"
)

func SaleRoutes(server *gin.Engine) {
	server.GET("/sales/active", controllers.GetActiveSale)

	admin := server.Group("/sales", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("", controllers.CreateSale)
		admin.GET("", controllers.GetSales)
		admin.DELETE("/:id", controllers.DeleteSale)
	}
}
