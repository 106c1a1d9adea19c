package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"services-api-server/config"
	"services-api-server/database"
	"services-api-server/middleware"
	"services-api-server/routes"
	"services-api-server/services"
	"services-api-server/store"
	ws "services-api-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	st := store.NewGormStore(database.DB)

	// Seed reference tables when enabled
	if config.AppConfig.Lifecycle.SeedReferences {
		if err := seedReferences(st); err != nil {
			log.Fatalf("❌ Failed to seed reference data: %v", err)
		}
	}

	// Domain services
	authService := services.NewAuthService(st)
	lifecycleService := services.NewLifecycleService(st, config.AppConfig.Lifecycle.PermissiveTransitions)
	ratingService := services.NewRatingService(st)

	// Chat hub
	hub := ws.NewHub(st)
	go hub.Run()

	// Set Gin mode
	gin.SetMode(config.AppConfig.Server.GinMode)

	router := gin.Default()

	// Security middleware
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.InputValidationMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	routes.Register(router, &routes.Handlers{
		Store:     st,
		Auth:      authService,
		Lifecycle: lifecycleService,
		Rating:    ratingService,
		Chat:      ws.NewChatHandler(hub, st),
	})

	port := config.AppConfig.Server.Port
	log.Printf("🚀 Server starting on port %s", port)
	log.Printf("📊 Health check available at http://localhost:%s/health", port)
	log.Printf("💬 Chat endpoint available at ws://localhost:%s/api/v1/ws/services/:id/chat", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
