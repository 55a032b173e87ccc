package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clubhub/api/internal/config"
	"github.com/clubhub/api/internal/database"
	"github.com/clubhub/api/internal/handler"
	"github.com/clubhub/api/internal/middleware"
	"github.com/clubhub/api/internal/repository"
	"github.com/clubhub/api/internal/service"
	"github.com/clubhub/api/pkg/jwt"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Generate a development key pair if none exists yet
	if cfg.IsDevelopment() {
		if _, err := os.Stat(cfg.JWT.PrivateKeyPath); os.IsNotExist(err) {
			slog.Info("generating development JWT key pair",
				slog.String("private_key", cfg.JWT.PrivateKeyPath),
			)
			if err := jwt.GenerateKeyPair(cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath); err != nil {
				slog.Error("failed to generate JWT keys", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}
	}

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	clubRepo := repository.NewClubRepository(db)
	eventRepo := repository.NewEventRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	membershipService := service.NewMembershipService(clubRepo, userRepo)
	registrationService := service.NewRegistrationService(eventRepo, clubRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	clubHandler := handler.NewClubHandler(membershipService)
	eventHandler := handler.NewEventHandler(registrationService)
	healthHandler := handler.NewHealthHandler(db)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /v1/health", healthHandler.Check)

	// Auth endpoints (public)
	mux.HandleFunc("POST /v1/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /v1/auth/login", authHandler.Login)

	authMiddleware := middleware.Auth(authService)

	// Club endpoints
	mux.HandleFunc("GET /v1/clubs", clubHandler.List)
	mux.HandleFunc("GET /v1/clubs/{clubId}", clubHandler.Get)
	mux.Handle("POST /v1/clubs", authMiddleware(http.HandlerFunc(clubHandler.Create)))
	mux.Handle("PATCH /v1/clubs/{clubId}", authMiddleware(http.HandlerFunc(clubHandler.Update)))
	mux.Handle("DELETE /v1/clubs/{clubId}", authMiddleware(http.HandlerFunc(clubHandler.Delete)))
	mux.Handle("POST /v1/clubs/{clubId}/members", authMiddleware(http.HandlerFunc(clubHandler.AddMember)))
	mux.Handle("DELETE /v1/clubs/{clubId}/members/{userId}", authMiddleware(http.HandlerFunc(clubHandler.RemoveMember)))

	// Event endpoints
	mux.HandleFunc("GET /v1/events", eventHandler.List)
	mux.HandleFunc("GET /v1/events/{eventId}", eventHandler.Get)
	mux.Handle("POST /v1/events", authMiddleware(http.HandlerFunc(eventHandler.Create)))
	mux.Handle("PATCH /v1/events/{eventId}", authMiddleware(http.HandlerFunc(eventHandler.Update)))
	mux.Handle("DELETE /v1/events/{eventId}", authMiddleware(http.HandlerFunc(eventHandler.Delete)))
	mux.Handle("POST /v1/events/{eventId}/register", authMiddleware(http.HandlerFunc(eventHandler.Register)))
	mux.Handle("DELETE /v1/events/{eventId}/register", authMiddleware(http.HandlerFunc(eventHandler.CancelRegistration)))
	mux.Handle("POST /v1/events/{eventId}/attendance", authMiddleware(http.HandlerFunc(eventHandler.MarkAttended)))

	// Current-user projections
	mux.Handle("GET /v1/users/me/clubs", authMiddleware(http.HandlerFunc(clubHandler.MyClubs)))
	mux.Handle("GET /v1/users/me/events", authMiddleware(http.HandlerFunc(eventHandler.MyEvents)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
