package routes

import (
	"github.com/Kariqs/maxtech-api/controllers"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
}

// Register mounts every route group on server.
func Register(server *gin.Engine) {
	DefaultRoutes(server)
	AuthRoutes(server)
	UserRoutes(server)
	ProductRoutes(server)
	AccessoryRoutes(server)
	PartRoutes(server)
	CategoryRoutes(server)
	SearchRoutes(server)
	CartRoutes(server)
	OrderRoutes(server)
	PaymentRoutes(server)
	CouponRoutes(server)
	SaleRoutes(server)
	ReviewRoutes(server)
	CustomBuildRoutes(server)
}
