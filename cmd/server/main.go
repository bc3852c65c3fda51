package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bookswap/docs"
	"bookswap/internal/auth"
	"bookswap/internal/blob"
	"bookswap/internal/cache"
	"bookswap/internal/config"
	"bookswap/internal/handler"
	"bookswap/internal/logging"
	"bookswap/internal/router"
	"bookswap/internal/service"
	"bookswap/internal/store"
)

// @title Bookswap API
// @version 1.0
// @description Book-swapping marketplace: listings, swap requests, contact sharing and ratings.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer redisClient.Close()

	blobs, err := blob.Open(cfg, redisClient)
	if err != nil {
		return err
	}

	st := store.New(blobs, cfg.StoreKey, store.WithLogger(logger))
	if cfg.ResetStore {
		logger.Warn("RESET_STORE=true detected, replacing stored snapshot with seed data")
		if err := st.Reset(ctx); err != nil {
			return err
		}
	} else if err := st.Load(ctx); err != nil {
		return err
	}
	logger.Info("store ready", zap.String("backend", cfg.StoreBackend), zap.String("key", cfg.StoreKey))

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cache.New(redisClient))

	// Initialize services
	authService := service.NewAuthService(st, jwtService, tokenStore)
	profileService := service.NewProfileService(st)
	listingService := service.NewListingService(st)
	swapService := service.NewSwapService(st)
	ratingService := service.NewRatingService(st)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, logger, jwtService, tokenStore, router.Handlers{
		Auth:     handler.NewAuthHandler(authService, logger),
		Profile:  handler.NewProfileHandler(profileService, listingService, logger),
		Listings: handler.NewListingHandler(listingService, logger),
		Swaps:    handler.NewSwapHandler(swapService, logger),
		Ratings:  handler.NewRatingHandler(ratingService, logger),
	})

	if cfg.SwaggerHost != "" {
		// SwaggerHost may already include scheme (http:// or https://)
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
		docs.SwaggerInfo.Host = host
		if strings.HasPrefix(cfg.SwaggerHost, "https://") {
			docs.SwaggerInfo.Schemes = []string{"https"}
		}
	} else {
		docs.SwaggerInfo.Host = "localhost:" + cfg.ServerPort
	}
	logger.Info("swagger documentation available",
		zap.String("url", docs.SwaggerInfo.Schemes[0]+"://"+docs.SwaggerInfo.Host+"/swagger/index.html"))

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
