package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"easyhome/internal/config"
	"easyhome/internal/handler"
	"easyhome/internal/repository"
	"easyhome/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.Printf("Easy Home Assistant")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection
	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	log.Println("✅ Connected to PostgreSQL database")

	// Initialize Groq client
	groqClient := service.NewGroqClient(&cfg.Groq)
	if groqClient.IsEnabled() {
		log.Printf("✅ Groq client initialized")
		log.Printf("   - API Base: %s", cfg.Groq.APIBase)
		log.Printf("   - Chat model: %s", cfg.Groq.ChatModel)
		log.Printf("   - Temperature: %.2f", cfg.Groq.Temperature)
		log.Printf("   - MaxTokens: %d", cfg.Groq.MaxTokens)
	} else {
		log.Println("⚠️  GROQ_API_KEY is not set - chat requests will fail until it is configured")
	}

	// Initialize services
	retriever := service.NewRetriever(repo)
	chatService := service.NewChatService(
		groqClient,
		retriever,
		repo,
		cfg.Search.ChatMaxResults,
		cfg.Search.ChatHistorySize,
	)
	ranker := service.NewRanker(cfg.Ranking.WeightPrice, cfg.Ranking.WeightRecency)
	searchService := service.NewSearchService(repo, ranker)
	listingService := service.NewListingService(repo)

	log.Println("✅ Services initialized")

	// Initialize handlers
	chatHandler := handler.NewChatHandler(chatService)
	searchHandler := handler.NewSearchHandler(searchService, cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	listingHandler := handler.NewListingHandler(listingService)
	feedbackHandler := handler.NewFeedbackHandler(searchService)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "easyhome-assistant",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		// Chat assistant endpoint
		apiV1.POST("/chat", chatHandler.Chat)

		// Search endpoints
		apiV1.POST("/search", searchHandler.Search)

		// Listing endpoints
		apiV1.GET("/listings", listingHandler.List)
		apiV1.GET("/listings/:id", listingHandler.Get)
		apiV1.POST("/listings", listingHandler.Create)
		apiV1.PUT("/listings/:id", listingHandler.Update)
		apiV1.DELETE("/listings/:id", listingHandler.Delete)

		// Feedback endpoint
		apiV1.POST("/feedback", feedbackHandler.Submit)
	}

	// Serve static files (frontend)
	// This function is implemented in embed.go (production) or static_dev.go (development)
	setupStaticFiles(router)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API Documentation: http://localhost:%d/api/v1", cfg.Server.Port)
	log.Printf("🌐 Web UI: http://localhost:%d", cfg.Server.Port)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
