package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"career_advisor/internal/api"
	"career_advisor/internal/app/service"
	"career_advisor/internal/common/security"
	"career_advisor/internal/domain/repository"
	"career_advisor/internal/platform/cache"
	"career_advisor/internal/platform/config"
	"career_advisor/internal/platform/database"
	"career_advisor/internal/platform/vertex"

	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Could not create logger: %v", err)
	}
	defer logger.Sync()

	// 2. Initialize JWT. A missing secret does not kill the process;
	// requests that need tokens fail closed with a configuration error.
	security.InitJWT()
	if security.TokenAuth == nil {
		logger.Warn("JWT_SECRET is not set; authenticated routes will be rejected")
	} else {
		fmt.Println("JWT initialized.")
	}

	// 3. Initialize Database
	database.Connect()
	defer database.Close()

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()

	// 5. Initialize Repositories
	userRepo := repository.NewMongoUserRepository(database.DB)
	roadmapRepo := repository.NewMongoRoadmapRepository(database.DB)

	// 6. Initialize AI Gateway & Services
	aiClient := vertex.NewClient(config.AppConfig, logger)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	roadmapService := service.NewRoadmapService(userRepo, roadmapRepo, aiClient, logger)
	chatbotService := service.NewChatbotService(userRepo, aiClient, logger)
	careerService := service.NewCareerService(userRepo, aiClient, cache.RDB, config.AppConfig.CareerCacheTTL, logger)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, userService, roadmapService, chatbotService, careerService, database.Ping)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
