package main

import (
	"log"
	"os"

	"github.com/foodie-app/foodie-backend/internal/api/routes"
	"github.com/foodie-app/foodie-backend/internal/cache"
	"github.com/foodie-app/foodie-backend/internal/config"
	"github.com/foodie-app/foodie-backend/internal/database"
	"github.com/foodie-app/foodie-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize logger
	logger.Init()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Init(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to initialize database", err)
	}

	// Stats cache is optional. The service degrades to direct reads without it.
	var statsCache *cache.StatsCache
	if cfg.RedisAddr != "" {
		statsCache, err = cache.NewStatsCache(cfg.RedisAddr)
		if err != nil {
			logger.Warn("Failed to connect to Redis, continuing without stats cache: ", err)
			statsCache = nil
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := gin.New()

	// Setup routes
	routes.SetupRoutes(router, db, statsCache, cfg)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("Server starting on port " + port)
	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server", err)
	}
}
