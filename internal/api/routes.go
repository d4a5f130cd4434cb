package api

import (
	"github.com/concave-dev/batchd/internal/api/handlers"
	"github.com/gin-gonic/gin"
)

// endpointIndex is served at GET / and kept in step with setupRoutes.
var endpointIndex = []handlers.Endpoint{
	{Method: "POST", Path: "/api/v1/tasks", Description: "Submit a task"},
	{Method: "GET", Path: "/api/v1/tasks/:id", Description: "Task status and result (?wait=5s to long-poll)"},
	{Method: "POST", Path: "/api/v1/batches/flush", Description: "Seal pending tasks into batches now"},
	{Method: "GET", Path: "/api/v1/stats", Description: "Queue and batch statistics"},
	{Method: "GET", Path: "/api/v1/health", Description: "Health check"},
}

// Configures all API routes
func (s *Server) setupRoutes(router *gin.Engine) {
	router.GET("/", s.getHandlerIndex())

	// API version prefix
	v1 := router.Group("/api/v1")

	v1.GET("/health", s.getHandlerHealth())
	v1.GET("/stats", s.getHandlerStats())

	tasks := v1.Group("/tasks")
	{
		tasks.POST("", s.getHandlerSubmitTask())
		tasks.GET("/:id", s.getHandlerGetTask())
	}

	batches := v1.Group("/batches")
	{
		batches.POST("/flush", s.getHandlerFlush())
	}
}
