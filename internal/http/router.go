package http

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/ofir-cohen/fitlife-api/internal/auth"
	"github.com/ofir-cohen/fitlife-api/internal/chatbot"
	"github.com/ofir-cohen/fitlife-api/internal/config"
	"github.com/ofir-cohen/fitlife-api/internal/httputil"
	"github.com/ofir-cohen/fitlife-api/internal/logging"
	"github.com/ofir-cohen/fitlife-api/internal/nutrition"
	"github.com/ofir-cohen/fitlife-api/internal/recommend"
	"github.com/ofir-cohen/fitlife-api/internal/user"
	"github.com/ofir-cohen/fitlife-api/internal/weight"
	"github.com/ofir-cohen/fitlife-api/internal/workout"
)

// Handlers bundles the endpoint handlers wired into the router
type Handlers struct {
	Auth      *auth.Handler
	User      *user.Handler
	Workout   *workout.Handler
	Nutrition *nutrition.Handler
	Weight    *weight.Handler
	Recommend *recommend.Handler
	Chatbot   *chatbot.Handler
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, h Handlers, authMiddleware *auth.Middleware, logger *logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	// Global middleware
	r.Use(SecurityHeaders)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Compress(5))

	// Public routes
	r.Get("/health", handleHealth)

	// Swagger UI - only in development
	if cfg.Server.IsDevelopment() {
		log.Println("Swagger UI enabled at /swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	// Auth routes (public)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.Post("/password-reset-request", h.Auth.RequestPasswordReset)
		r.Post("/password-reset-confirm", h.Auth.ConfirmPasswordReset)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Get("/me", h.Auth.Me)
		})
	})

	r.Get("/users/{user_id}", h.User.GetUser)
	r.Get("/recommended-calories", h.Recommend.GetRecommendedCalories)
	r.Get("/training-programs", h.Recommend.ListTrainingPrograms)
	r.Get("/training-programs/{goal}", h.Recommend.DownloadTrainingProgram)

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Post("/workouts", h.Workout.CreateWorkout)
		r.Get("/workouts/{user_id}", h.Workout.ListWorkouts)

		r.Post("/nutrition", h.Nutrition.CreateLog)
		r.Get("/nutrition/{user_id}", h.Nutrition.ListLogs)

		r.Post("/weight", h.Weight.CreateLog)
		r.Get("/weight/{user_id}", h.Weight.ListLogs)

		r.Post("/chatbot", h.Chatbot.Ask)
	})

	return r
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "healthy"}, http.StatusOK)
}
