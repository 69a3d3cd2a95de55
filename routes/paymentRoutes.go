package routes

import (
	"github.com/Kariqs/maxtech-api/controllers"
	"github.com/Kariqs/maxtech-api/middlewares"
	"github.com/gin-gonic/gin"
)

func PaymentRoutes(server *gin.Engine) {
	payment := server.Group("/payment")
	{
		payment.POST("/create-order", middlewares.RequireAuth(), controllers.CreatePaymentOrder)
		payment.POST("/webhook", controllers.PaymentWebhook)
		payment.GET("/check-status/:orderId", middlewares.RequireAuth(), controllers.CheckPaymentStatus)
	}
}
