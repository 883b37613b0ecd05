package api

import (
	"context"
	"net/http"
	"time"

	"career_advisor/internal/api/handler"
	"career_advisor/internal/api/middleware"
	"career_advisor/internal/app/service"
	"career_advisor/internal/common"
	"career_advisor/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires the HTTP surface. storePing is the bounded readiness
// probe reported by /health; pass nil to skip the check.
func NewRouter(
	authService *service.AuthService,
	userService *service.UserService,
	roadmapService *service.RoadmapService,
	chatbotService *service.ChatbotService,
	careerService *service.CareerService,
	storePing func(ctx context.Context) error,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.AppConfig.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		status := "ok"
		if storePing != nil {
			if err := storePing(req.Context()); err != nil {
				status = "degraded"
			}
		}
		common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roadmapHandler := handler.NewRoadmapHandler(roadmapService)
	chatbotHandler := handler.NewChatbotHandler(chatbotService)
	careerHandler := handler.NewCareerHandler(careerService)

	// Public auth routes
	r.Group(func(public chi.Router) {
		authHandler.RegisterRoutes(public)
	})

	// Protected routes
	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Verifier)
		protected.Use(middleware.Authenticator)

		authHandler.RegisterProtectedRoutes(protected)
		userHandler.RegisterRoutes(protected)
		roadmapHandler.RegisterRoutes(protected)
		chatbotHandler.RegisterRoutes(protected)
		careerHandler.RegisterRoutes(protected)
	})

	return r
}
