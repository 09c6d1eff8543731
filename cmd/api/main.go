package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	_ "github.com/ofir-cohen/fitlife-api/docs" // Swagger docs (generated)
	"github.com/ofir-cohen/fitlife-api/internal/auth"
	"github.com/ofir-cohen/fitlife-api/internal/chatbot"
	"github.com/ofir-cohen/fitlife-api/internal/config"
	"github.com/ofir-cohen/fitlife-api/internal/database"
	"github.com/ofir-cohen/fitlife-api/internal/email"
	httpServer "github.com/ofir-cohen/fitlife-api/internal/http"
	"github.com/ofir-cohen/fitlife-api/internal/logging"
	"github.com/ofir-cohen/fitlife-api/internal/nutrition"
	"github.com/ofir-cohen/fitlife-api/internal/recommend"
	"github.com/ofir-cohen/fitlife-api/internal/user"
	"github.com/ofir-cohen/fitlife-api/internal/weight"
	"github.com/ofir-cohen/fitlife-api/internal/workout"
)

// @title           FitLife API
// @version         1.0
// @description     Fitness tracking REST API with workouts, nutrition, weight logs, calorie recommendations and an AI chatbot.

// @contact.name   API Support
// @contact.email  support@fitlife.example

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	db, err := database.Connect(cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(context.Background(), db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis connection
	redisClient, err := initRedis(cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize Redis: %w", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	userRepo := user.NewRepository(db)
	resetRepo := auth.NewResetRepository(db)
	workoutRepo := workout.NewRepository(db)
	nutritionRepo := nutrition.NewRepository(db)
	weightRepo := weight.NewRepository(db)

	// Initialize token service
	tokenService, err := newTokenService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	// Initialize email service
	emailService := email.NewService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FrontendURL,
		logger,
	)

	// Initialize auth service
	authService := auth.NewService(
		userRepo,
		resetRepo,
		tokenService,
		emailService,
		logger,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.ResetTokenTTL,
	)

	// Initialize chatbot
	chatbotClient := chatbot.NewClient(cfg.Chatbot.APIKey, cfg.Chatbot.Model, cfg.Chatbot.BaseURL)
	replyCache := chatbot.NewReplyCache(redisClient, cfg.Chatbot.CacheTTL)

	// Initialize HTTP handlers
	handlers := httpServer.Handlers{
		Auth:      auth.NewHandler(authService, logger, cfg.Server.IsDevelopment()),
		User:      user.NewHandler(userRepo),
		Workout:   workout.NewHandler(workoutRepo),
		Nutrition: nutrition.NewHandler(nutritionRepo),
		Weight:    weight.NewHandler(weightRepo, userRepo),
		Recommend: recommend.NewHandler(recommend.NewProgramCatalog(cfg.Programs.Dir)),
		Chatbot:   chatbot.NewHandler(chatbotClient, replyCache),
	}
	authMiddleware := auth.NewMiddleware(tokenService)

	// Initialize router
	router := httpServer.NewRouter(cfg, handlers, authMiddleware, logger)

	// Initialize HTTP server
	serverAddr := ":" + cfg.Server.Port
	server := httpServer.NewServer(
		serverAddr,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("received shutdown signal", "signal", sig.String())

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// newTokenService builds the configured access token backend
func newTokenService(cfg config.AuthConfig) (auth.TokenService, error) {
	switch cfg.TokenBackend {
	case config.TokenBackendPaseto:
		return auth.NewPasetoService(cfg.Secret)
	default:
		return auth.NewJWTService(cfg.Secret)
	}
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Verify connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
