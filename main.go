package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"restaurant-orders-api/config"
	"restaurant-orders-api/routes"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize logger, database, lifecycle policy and notification hub
	config.Init()
	defer config.Log.Sync()

	// Consume notification events for the lifetime of the process
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go config.Hub.Run(ctx, config.Events)

	// Optional Kafka source for externally produced events
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		startKafkaSource(ctx, brokers)
	}

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Restaurant Orders API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Restaurant Orders API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"customer", "chef", "manager", "admin"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	config.Log.Info("server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		config.Log.Fatal("failed to start server", zap.Error(err))
	}
}
