package routes

import (
	"time"

	"github.com/Kariqs/maxtech-api/controllers"
	"github.com/Kariqs/maxtech-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine) {
	contact := middlewares.NewRateLimiter(time.Minute, 5)
	server.POST("/orders/contact-us", contact.Middleware(), controllers.ContactUs)
	server.POST("/orders/contact-us-form", contact.Middleware(), controllers.ContactUsForm)

	orders := server.Group("/orders", middlewares.RequireAuth())
	{
		orders.POST("/send-confirmation", controllers.SendOrderConfirmation)
		orders.GET("", controllers.GetOrders)
		orders.GET("/export", middlewares.RequireAdmin(), controllers.ExportOrders)
		orders.GET("/undelivered-count", middlewares.RequireAdmin(), controllers.GetUndeliveredCount)
		orders.GET("/feed", middlewares.RequireAdmin(), controllers.OrderFeed)
		orders.PUT("/:id", middlewares.RequireSuperAdmin(), controllers.UpdateOrderStatus)
		orders.DELETE("/:id", middlewares.RequireSuperAdmin(), controllers.DeleteOrder)
	}
}
