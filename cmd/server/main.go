package main

import (
	"fmt"
	"log"
	"time"

	"sitecms/internal/api/routes"
	"sitecms/internal/config"
	"sitecms/internal/models"
	"sitecms/internal/services"
	"sitecms/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found")
	}

	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	if err := models.InitDB(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Create default admin if the user table is empty
	authService := services.NewAuthService(cfg, session.NewGormStore(models.DB))
	if err := authService.CreateDefaultUser(); err != nil {
		log.Printf("Warning: Failed to create default user: %v", err)
	}

	// Purge expired sessions in the background; the gates never hand out an
	// expired session, this just keeps the table from growing.
	go func() {
		ticker := time.NewTicker(cfg.SessionCleanupInterval())
		defer ticker.Stop()
		for range ticker.C {
			if err := authService.DestroyExpiredSessions(); err != nil {
				log.Printf("Failed to purge expired sessions: %v", err)
			}
		}
	}()

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	r := gin.Default()

	// Setup routes
	routes.SetupRoutes(r, cfg)

	// Run server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting sitecms server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
