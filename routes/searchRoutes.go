package routes

import (
	"github.com/Kariqs/maxtech-api/controllers"
	"github.com/gin-gonic/gin"
)

func SearchRoutes(server *gin.Engine) {
	server.GET("/search", controllers.Search)
}
