package http

import (
	"github.com/gin-gonic/gin"

	"taskpulse/internal/adapter/http/handlers"
	"taskpulse/internal/adapter/http/middleware"
)

func RegisterRoutes(
	r *gin.Engine,
	healthHandler *handlers.HealthHandler,
	sessionHandler *handlers.SessionHandler,
	taskHandler *handlers.TaskHandler,
	reviewHandler *handlers.ReviewHandler,
) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)
	}

	authed := api.Group("")
	authed.Use(middleware.IdentityMiddleware())
	{
		authed.POST("/sessions", sessionHandler.StartSession)
		authed.POST("/sessions/:id/stop", sessionHandler.StopSession)
		authed.GET("/sessions/open", sessionHandler.ListOpenSessions)

		authed.GET("/tasks", taskHandler.ListTasks)
		authed.GET("/tasks/:id", taskHandler.GetTask)
		authed.GET("/tasks/:id/subtasks", taskHandler.ListSubtasks)
		authed.GET("/tasks/:id/hours", sessionHandler.GetTaskHours)
		authed.GET("/subtasks/:id/hours", sessionHandler.GetSubtaskHours)
		authed.PATCH("/subtasks/:id/status", taskHandler.UpdateSubtaskStatus)

		authed.POST("/tasks/:id/reviews", reviewHandler.SubmitReview)
	}
}
