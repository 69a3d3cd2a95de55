package routes

import (
	"github.com/Kariqs/maxtech-api/controllers"
	"github.com/Kariqs/maxtech-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CouponRoutes(server *gin.Engine) {
	server.POST("/coupons/apply", controllers.ApplyCoupon)

	admin := server.Group("/coupons", middlewares.RequireAuth(), middlewares.RequireSuperAdmin())
	{
		admin.POST("", controllers.CreateCoupon)
		admin.GET("", controllers.GetCoupons)
		admin.DELETE("/:id", controllers.DeleteCoupon)
	}
}
