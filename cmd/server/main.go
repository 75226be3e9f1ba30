package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"shelfmate/backend/internal/config"
	"shelfmate/backend/internal/handler"
	"shelfmate/backend/internal/middleware"
	"shelfmate/backend/internal/recommend"
	"shelfmate/backend/internal/store"
)

func main() {
	cfg := config.Load()

	var logger *zap.Logger
	if cfg.IsProduction() {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("starting shelfmate", zap.String("env", cfg.Env))

	st := openStore(cfg, logger)

	client := recommend.NewClient(cfg.AI, nil, logger)
	recService := recommend.NewService(st, client, nil, logger)
	h := handler.New(st, recService, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.SecurityHeaders())

	allowedOrigins := []string{}
	if gin.Mode() != gin.ReleaseMode {
		allowedOrigins = append(allowedOrigins, "http://localhost:5173")
	}
	allowedOrigins = append(allowedOrigins, cfg.AllowedOrigins...)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-User-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Recommendation requests hit a paid model endpoint.
	ipLimiter := middleware.NewIPRateLimiter(rate.Every(5*time.Second), 1)
	dailyQuota := middleware.NewDailyQuota(500)

	r.GET("/health", h.HandleHealth)
	r.GET("/ready", h.HandleReadiness)

	api := r.Group("/api", middleware.Identity())
	{
		api.GET("/books", h.ListBooks)
		api.POST("/books", h.CreateBook)
		api.PUT("/books/:id", h.UpdateBook)
		api.DELETE("/books/:id", h.DeleteBook)

		api.GET("/wishlist", h.ListWishlist)
		api.POST("/wishlist", h.SaveWishlistItem)
		api.DELETE("/wishlist/:id", h.DeleteWishlistItem)
		api.POST("/wishlist/:id/promote", h.PromoteWishlistItem)

		api.POST("/recommendations",
			middleware.RateLimit(ipLimiter, dailyQuota),
			h.GetRecommendations)
	}

	logger.Info("server ready",
		zap.String("port", cfg.Port),
		zap.Strings("allowed_origins", allowedOrigins))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

// openStore connects to the configured document database, or falls back to
// the in-memory store when none is configured (local development).
func openStore(cfg config.Config, logger *zap.Logger) store.Store {
	if cfg.MongoURI == "" {
		logger.Warn("MONGO_URI not set, using in-memory store; data will not persist")
		return store.NewMemory()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := store.NewMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("failed to connect to document store", zap.Error(err))
	}
	logger.Info("connected to document store", zap.String("db", cfg.MongoDB))
	return st
}
