// Package server assembles the HTTP router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "finfacil/internal/docs" // Import swagger docs
	"finfacil/internal/events"
	"finfacil/internal/handlers"
	"finfacil/internal/middleware"
	"finfacil/internal/services"
	"finfacil/internal/validator"
)

// Deps are the services the router exposes.
type Deps struct {
	Goals         services.GoalServicer
	Notifications services.NotificationServicer
	Events        events.Subscriber
	EventBuffer   int
	// APIKey, when set, is required on every state-changing /api/v1 request.
	APIKey        string
}

// NewRouter builds the gin engine with middleware, docs, health check and
// the /api/v1 routes.
func NewRouter(deps Deps) *gin.Engine {
	validator.Register()

	goalHandler := handlers.NewGoalHandler(deps.Goals)
	notificationHandler := handlers.NewNotificationHandler(deps.Notifications)
	eventHandler := handlers.NewEventHandler(deps.Events, deps.EventBuffer)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.APIKeyAuth(deps.APIKey))

	// Goal routes
	goals := v1.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.GET("/:id/summary", goalHandler.GetSummary)
	goals.GET("/:id/progress", goalHandler.GetProgress)
	goals.GET("/:id/entries", goalHandler.GetEntries)
	goals.POST("/:id/entries", goalHandler.AddEntry)

	// Entry routes
	v1.DELETE("/entries/:id", goalHandler.RemoveEntry)

	// Notification routes
	notifications := v1.Group("/notifications")
	notifications.POST("", notificationHandler.CreateNotification)
	notifications.GET("", notificationHandler.GetNotifications)
	notifications.DELETE("", notificationHandler.DeleteAll)
	notifications.GET("/stats", notificationHandler.GetStats)
	notifications.PUT("/read-all", notificationHandler.MarkAllAsRead)
	notifications.DELETE("/read", notificationHandler.DeleteRead)
	notifications.GET("/:id", notificationHandler.GetNotification)
	notifications.PUT("/:id/read", notificationHandler.MarkAsRead)
	notifications.DELETE("/:id", notificationHandler.DeleteNotification)

	// Event stream
	v1.GET("/events", eventHandler.Stream)

	return router
}
