package routes

import (
	"backend/controllers"
	"backend/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		user := api.Group("/user")
		{
			user.GET("/profile", controllers.GetProfile)
			user.PUT("/profile", controllers.UpdateProfile)
			user.GET("/goals", controllers.GetGoals)
			user.PUT("/goals", controllers.UpsertGoals)
		}

		api.POST("/logs", controllers.CreateLog)
		api.GET("/logs", controllers.ListLogs)

		api.POST("/meals", controllers.LogMeal)
		api.GET("/meals", controllers.ListMeals)

		api.GET("/suggestions", controllers.ListSuggestions)
		api.POST("/suggestions/:id/complete", controllers.CompleteSuggestion)
		api.POST("/suggestions/:id/dismiss", controllers.DismissSuggestion)

		api.GET("/summaries/daily", controllers.GetDailySummary)
		api.GET("/summaries", controllers.ListDailySummaries)

		api.POST("/assistant/chat", controllers.AssistantChat)

		api.GET("/ws", controllers.Connect)
		api.POST("/devices", controllers.RegisterDevice)

		admin := api.Group("/admin/jobs")
		{
			admin.POST("/aggregate", controllers.TriggerAggregation)
			admin.POST("/suggestions", controllers.TriggerSuggestions)
			admin.POST("/expire", controllers.TriggerExpiry)
		}
	}

	return r
}
