package routes

import (
	"github.com/Kariqs/maxtech-api/controllers"
	"github.com/Kariqs/maxtech-api/middlewares"
	"github.com/gin-gonic/gin"
)

func ReviewRoutes(server *gin.Engine) {
	reviews := server.Group("/reviews")
	{
		reviews.GET("", controllers.GetReviews)
		reviews.GET("/:id", controllers.GetReview)
		reviews.POST("", controllers.CreateReview)
		reviews.PUT("/:id", middlewares.RequireAuth(), middlewares.RequireSuperAdmin(), controllers.UpdateReview)
		reviews.DELETE("/:id", middlewares.RequireAuth(), middlewares.RequireSuperAdmin(), controllers.DeleteReview)
	}

	accessoryReviews := server.Group("/accessory-reviews")
	{
		accessoryReviews.GET("", controllers.GetAccessoryReviews)
		accessoryReviews.GET("/:id", controllers.GetAccessoryReview)
		accessoryReviews.POST("", middlewares.RequireAuth(), controllers.CreateAccessoryReview)
		accessoryReviews.PUT("/:id", middlewares.RequireAuth(), middlewares.RequireSuperAdmin(), controllers.UpdateAccessoryReview)
		accessoryReviews.DELETE("/:id", middlewares.RequireAuth(), middlewares.RequireSuperAdmin(), controllers.DeleteAccessoryReview)
	}
}
