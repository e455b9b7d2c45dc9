package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"videogames-be/internal/cache"
	"videogames-be/internal/config"
	"videogames-be/internal/credentials"
	"videogames-be/internal/database"
	"videogames-be/internal/jwt"
	"videogames-be/internal/logger"
	"videogames-be/internal/middleware"
	"videogames-be/internal/repository"
	"videogames-be/internal/router"
	"videogames-be/internal/service"
	"videogames-be/internal/validation"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() (err error) {
	// Load configuration
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		return multierr.Append(err, db.Close())
	}

	// Redis is optional: fall back to an in-process cache when unreachable
	cacheClient, err := cache.NewRedisCache(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn("redis unavailable, using in-memory list cache", "error", err)
		cacheClient = cache.NewMemoryCache()
	} else {
		log.Info("connected to redis cache")
	}
	defer func() {
		err = multierr.Combine(err, db.Close(), cacheClient.Close())
	}()

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(db)
	editorRepo := repository.NewEditorRepository(db)
	videoGameRepo := repository.NewVideoGameRepository(db)
	userRepo := repository.NewUserRepository(db)

	hasher := credentials.NewBcryptHasher(bcrypt.DefaultCost)
	jwtService := jwt.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTTTL)*time.Hour)
	validator := validation.New()
	listTTL := time.Duration(cfg.ListCacheTTL) * time.Second

	// Initialize services
	userService := service.NewUserService(userRepo, hasher, validator)
	if cfg.AdminEmail != "" {
		if _, err := userService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return err
		}
		log.Info("admin account ready", "email", cfg.AdminEmail)
	}

	handler := router.New(router.Deps{
		Logger:       log,
		Tokens:       jwtService,
		Auth:         service.NewAuthService(userRepo, hasher, jwtService),
		Categories:   service.NewCategoryService(categoryRepo, cacheClient, validator, listTTL),
		Editors:      service.NewEditorService(editorRepo, cacheClient, validator, listTTL),
		VideoGames:   service.NewVideoGameService(videoGameRepo, categoryRepo, editorRepo, cacheClient, validator, listTTL),
		Users:        userService,
		PublicURL:    cfg.PublicURL,
		MaxPageLimit: cfg.MaxPageLimit,
		APILimiter:   middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		AuthLimiter:  middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		log.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server shutdown completed")
	return nil
}
