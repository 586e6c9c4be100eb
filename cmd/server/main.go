package main

import (
	"log"
	"os"

	"github.com/ZiroWagner/TaskManager/internal/config"
	"github.com/ZiroWagner/TaskManager/internal/database"
	"github.com/ZiroWagner/TaskManager/internal/handlers"
	"github.com/ZiroWagner/TaskManager/internal/routes"
	"github.com/ZiroWagner/TaskManager/internal/storage"
	"github.com/ZiroWagner/TaskManager/internal/sweep"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Println("Warning: could not load .env file:", err)
	}

	cfg := config.Load()

	// Init database
	database.InitDB(cfg.DatabasePath)

	// Init file storage
	store, err := storage.New(cfg.UploadsDir)
	if err != nil {
		log.Fatal("Failed to init uploads storage: ", err)
	}
	handlers.SetUploads(store)

	// Background reconciliation of orphaned attachment files
	sweeper := sweep.New(database.GetDB(), cfg.UploadsDir)
	if err := sweeper.Start(cfg.SweepInterval); err != nil {
		log.Fatal("Failed to start storage sweeper: ", err)
	}
	defer sweeper.Stop()

	// Setup the routes (public and protected routes)
	ginRoutes := routes.SetupRoutes(cfg.UploadsDir)

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server starting on %s", addr)
	log.Println("API endpoints:")
	log.Println("  POST   /api/auth/register")
	log.Println("  POST   /api/auth/login")
	log.Println("  GET    /api/tasks")
	log.Println("  POST   /api/tasks")
	log.Println("  PATCH  /api/tasks/:id/move")
	log.Println("  POST   /api/tasks/:id/attachments")
	log.Println("  GET    /api/projects")
	log.Println("  POST   /api/users/avatar")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(addr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
