package routes

import (
	"github.com/ZiroWagner/TaskManager/internal/handlers"
	"github.com/ZiroWagner/TaskManager/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(uploadsDir string) *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task board API is running",
		})
	})

	// Stored files are served at the same public prefix their URLs carry
	ginRouter.Static("/uploads", uploadsDir)

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/auth/register", handlers.Register)
		api.POST("/auth/login", handlers.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Task endpoints
		protectedRoutes.GET("/tasks", handlers.GetTasks)
		protectedRoutes.GET("/tasks/:id", handlers.GetTaskByID)
		protectedRoutes.POST("/tasks", handlers.CreateTask)
		protectedRoutes.PATCH("/tasks/:id", handlers.UpdateTask)
		protectedRoutes.PATCH("/tasks/:id/move", handlers.MoveTask)
		protectedRoutes.DELETE("/tasks/:id", handlers.DeleteTask)
		// Attachment endpoints
		protectedRoutes.POST("/tasks/:id/attachments", handlers.UploadAttachment)
		protectedRoutes.DELETE("/tasks/:id/attachments/:attachmentId", handlers.RemoveAttachment)
		// Project endpoints
		protectedRoutes.GET("/projects", handlers.GetProjects)
		protectedRoutes.GET("/projects/:id", handlers.GetProjectByID)
		protectedRoutes.POST("/projects", handlers.CreateProject)
		protectedRoutes.PATCH("/projects/:id", handlers.UpdateProject)
		protectedRoutes.DELETE("/projects/:id", handlers.DeleteProject)
		// User endpoints
		protectedRoutes.GET("/users/profile", handlers.GetProfile)
		protectedRoutes.PATCH("/users/profile", handlers.UpdateProfile)
		protectedRoutes.POST("/users/avatar", handlers.UploadAvatar)
		// Stats endpoint
		protectedRoutes.GET("/stats", handlers.GetStats)
		// WebSocket endpoint for board events
		protectedRoutes.GET("/ws", handlers.WebSocketHandler)
	}

	return ginRouter
}
