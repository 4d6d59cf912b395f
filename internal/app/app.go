package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"

	"savaan_backend/internal/auth"
	"savaan_backend/internal/config"
	"savaan_backend/internal/handlers"
	"savaan_backend/internal/logger"
	"savaan_backend/internal/middleware"
	"savaan_backend/internal/otp"
	"savaan_backend/internal/repositories"
	"savaan_backend/internal/routes"
	"savaan_backend/internal/services"
	"savaan_backend/internal/validator"
	"savaan_backend/pkg/apperrors"
)

const sweepInterval = 5 * time.Minute

// Run boots the server: config, logging, store, services, router, then
// serves until SIGINT/SIGTERM and drains in-flight requests.
func Run() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.SetDebug(cfg.IsDevelopment())

	userRepo, mongoClient := connectStore(cfg)
	if mongoClient != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongoClient.Disconnect(ctx); err != nil {
				logger.Error("Failed to disconnect store", "error", err)
			}
		}()
	}

	issuer := otp.NewIssuer(cfg.OTP.TTL, cfg.OTP.ResendCooldown)
	router, svcs := SetupRouter(cfg, userRepo, issuer)

	stop := make(chan struct{})
	go sweepLoop(stop, issuer, svcs.RegistrationService)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    address,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	close(stop)
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped")
}

// SetupRouter assembles the full gin engine over the given store. Tests call
// it directly with the in-memory repository.
func SetupRouter(cfg *config.Config, userRepo repositories.UserRepository, issuer *otp.Issuer) (*gin.Engine, *services.ServiceContainer) {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	v := validator.New()
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)

	// Config validation requires a SendGrid key outside development, so the
	// plaintext log sender only ever runs in development.
	var sender otp.Sender = &otp.LogSender{}
	if cfg.Sendgrid.APIKey != "" {
		sender = otp.NewSendgridSender(cfg.Sendgrid.APIKey, cfg.Sendgrid.FromEmail, cfg.Sendgrid.FromName)
	}

	svcs := services.NewServiceContainer(userRepo, v, tokens, issuer, sender, cfg.IsDevelopment())
	appHandlers := handlers.NewAppHandlers(v, svcs, userRepo, middleware.AuthMiddleware(tokens), cfg.IsDevelopment())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())

	routes.RegisterRoutes(router, appHandlers)
	return router, svcs
}

// connectStore opens Mongo when a URI is configured; in development an empty
// URI selects the in-memory store so the server runs with no database at all.
func connectStore(cfg *config.Config) (repositories.UserRepository, *mongo.Client) {
	if cfg.Database.URI == "" {
		logger.Warn("No database URI configured, using in-memory store")
		return repositories.NewMemoryUserRepository(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, mongooptions.Client().ApplyURI(cfg.Database.URI))
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	if err := repositories.EnsureUserIndexes(ctx, client, cfg.Database.Name); err != nil {
		logger.Fatal("Failed to ensure indexes", "error", err)
	}

	logger.Info("Database connected", "name", cfg.Database.Name)
	return repositories.NewMongoUserRepository(client, cfg.Database.Name), client
}

// sweepLoop periodically drops expired codes and idle wizard sessions.
func sweepLoop(stop <-chan struct{}, issuer *otp.Issuer, registration services.RegistrationService) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			issuer.Sweep()
			registration.Sweep()
		}
	}
}
