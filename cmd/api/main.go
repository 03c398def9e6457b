package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/dev13-Vishnu/deep-learn-server/docs"
	"github.com/dev13-Vishnu/deep-learn-server/internal/auth/middleware"
	"github.com/dev13-Vishnu/deep-learn-server/internal/auth/service"
	"github.com/dev13-Vishnu/deep-learn-server/internal/config"
	"github.com/dev13-Vishnu/deep-learn-server/internal/handlers"
	"github.com/dev13-Vishnu/deep-learn-server/internal/logger"
	loggerMiddleware "github.com/dev13-Vishnu/deep-learn-server/internal/logger/middleware"
	sharedMiddleware "github.com/dev13-Vishnu/deep-learn-server/internal/middlewares"
	"github.com/dev13-Vishnu/deep-learn-server/internal/models"
	"github.com/dev13-Vishnu/deep-learn-server/internal/oauth"
	"github.com/dev13-Vishnu/deep-learn-server/internal/repositories"
	"github.com/dev13-Vishnu/deep-learn-server/internal/services"
	"github.com/dev13-Vishnu/deep-learn-server/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hibiken/asynq"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title DeepLearn API
// @version 1.0
// @description API for the DeepLearn e-learning platform

// @contact.name API Support
// @contact.email dev13.vishnu@gmail.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting DeepLearn Server")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to Redis (OTP codes, OAuth state, task queue)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
		os.Exit(1)
	}

	// Asynq client hands email tasks to the worker process
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()

	// Initialize JWT token generator
	tokenGenerator := service.NewTokenGenerator(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	userTokenRepo := repositories.NewUserTokenRepository(db, logger.Logger)
	courseRepo := repositories.NewCourseRepository(db, logger.Logger)
	applicationRepo := repositories.NewInstructorApplicationRepository(db, logger.Logger)
	connectionRepo := repositories.NewOAuthConnectionRepository(db, logger.Logger)

	// Initialize services
	otpService := services.NewOtpService(rdb, asynqClient, logger.Logger)
	authService := services.NewAuthService(userRepo, userTokenRepo, otpService, tokenGenerator, logger.Logger)
	courseService := services.NewCourseService(courseRepo, logger.Logger)
	instructorService := services.NewInstructorService(applicationRepo, userRepo, logger.Logger)
	oauthService := services.NewOAuthService(
		oauthProviders(cfg),
		connectionRepo,
		userRepo,
		userTokenRepo,
		rdb,
		tokenGenerator,
		logger.Logger,
	)
	mediaService := services.NewMediaService(storage.NewLocalStorage(cfg.MediaBase), logger.Logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, otpService, logger.Logger)
	oauthHandler := handlers.NewOAuthHandler(oauthService, cfg.FrontendURL, logger.Logger)
	courseHandler := handlers.NewCourseHandler(courseService, logger.Logger)
	instructorHandler := handlers.NewInstructorHandler(instructorService, logger.Logger)
	mediaHandler := handlers.NewMediaHandler(mediaService, logger.Logger)

	// Initialize auth middleware
	authMiddleware := middleware.AuthMiddleware(tokenGenerator)
	tutorMiddleware := middleware.RoleMiddleware(tokenGenerator, int(models.RoleTutor))
	adminMiddleware := middleware.RoleMiddleware(tokenGenerator, int(models.RoleAdmin))

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(sharedMiddleware.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(logger.Logger))
	r.Use(sharedMiddleware.RecoveryMiddleware(logger.Logger))
	r.Use(sharedMiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(sharedMiddleware.RequestSizeLimitMiddleware(200 * 1024 * 1024)) // room for video uploads

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		// Register auth routes (public plus the /me and /profile group)
		authHandler.RegisterRoutes(r, authMiddleware)
		// Register OAuth login routes
		oauthHandler.RegisterRoutes(r)
		// Register public media download route
		mediaHandler.RegisterRoutes(r)
		// Register instructor application routes for signed-in users
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			instructorHandler.RegisterRoutes(r)
		})
		// Register course authoring and media upload routes for tutors
		r.Group(func(r chi.Router) {
			r.Use(tutorMiddleware)
			courseHandler.RegisterRoutes(r)
			mediaHandler.RegisterTutorRoutes(r)
		})
		// Register application review routes for admins
		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)
			instructorHandler.RegisterAdminRoutes(r)
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// oauthProviders builds the provider list from configured credentials.
// A provider with no client ID is simply not offered.
func oauthProviders(cfg *config.Config) []oauth.Provider {
	var providers []oauth.Provider
	if cfg.OAuth.Google.ClientID != "" {
		providers = append(providers, oauth.NewGoogleProvider(
			cfg.OAuth.Google.ClientID, cfg.OAuth.Google.ClientSecret, cfg.OAuth.Google.RedirectURL))
	}
	if cfg.OAuth.Facebook.ClientID != "" {
		providers = append(providers, oauth.NewFacebookProvider(
			cfg.OAuth.Facebook.ClientID, cfg.OAuth.Facebook.ClientSecret, cfg.OAuth.Facebook.RedirectURL))
	}
	if cfg.OAuth.Microsoft.ClientID != "" {
		providers = append(providers, oauth.NewMicrosoftProvider(
			cfg.OAuth.Microsoft.ClientID, cfg.OAuth.Microsoft.ClientSecret, cfg.OAuth.Microsoft.RedirectURL))
	}
	return providers
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "deeplearn_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
