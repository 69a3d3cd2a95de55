package routes

import (
	"github.com/Kariqs/maxtech-api/controllers"
	"github.com/Kariqs/maxtech-api/middlewares"
	"github.com/gin-gonic/gin"
)

func UserRoutes(server *gin.Engine) {
	users := server.Group("/users", middlewares.RequireAuth())
	{
		users.GET("", middlewares.RequireSuperAdmin(), controllers.GetUsers)
		users.GET("/:id", middlewares.RequireSuperAdmin(), controllers.GetUser)
		users.PUT("/:id", controllers.UpdateUser)
		users.DELETE("/:id", middlewares.RequireSuperAdmin(), controllers.DeleteUser)
	}
}
