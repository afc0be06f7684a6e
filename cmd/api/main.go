package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/formpilot/autofill-backend/internal/config"
	"github.com/formpilot/autofill-backend/internal/database"
	"github.com/formpilot/autofill-backend/internal/handlers"
	"github.com/formpilot/autofill-backend/internal/middleware"
	"github.com/formpilot/autofill-backend/internal/services"
)

func main() {
	// 1. Load Environment Variables (.env is optional outside dev)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 2. Database Connection (runs migrations)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// 3. Initialize Core Services (Dependencies)
	llmService, err := services.NewLLMService(context.Background(), cfg.Gemini)
	if err != nil {
		log.Fatal("Failed to create Gemini client: ", err)
	}
	identityService := services.NewIdentityService(db)
	profileService := services.NewProfileService(db)
	autofillService := services.NewAutofillService(db, identityService, profileService,
		llmService, logger, cfg.Gemini.Timeout(), cfg.Autofill.DefaultVariant)

	// 4. Initialize Handlers
	authHandler := handlers.NewAuthHandler(identityService)
	fillHandler := handlers.NewFillHandler(autofillService)

	// 5. Setup Router & CORS
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // For development only
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 6. Define Routes
	r.GET("/health", handlers.HealthCheck)
	r.POST("/auth/google", authHandler.GoogleAuth)
	r.POST("/fill", fillHandler.Fill)

	addr := fmt.Sprintf(":%d", cfg.API.Port)
	logger.Info("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Server failed to start: ", err)
	}
}
