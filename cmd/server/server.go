package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/lbliii/milodocs/internal/config"
	"github.com/lbliii/milodocs/internal/logger"
	"github.com/lbliii/milodocs/internal/ratelimit"
	"github.com/lbliii/milodocs/internal/storage"
)

// creates and configures a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	store, err := storage.NewClient(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	services, err := InitializeServices(ctx, cfg, store)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	limiter, err := ratelimit.New(ctx, cfg.RateLimit, cfg.RedisURL)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize rate limiter: %w", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	server := &Server{
		config:   cfg,
		store:    store,
		limiter:  limiter,
		services: services,
		router:   router,
	}

	RegisterRoutes(router, services.Assistant, limiter.Middleware())

	logger.Info("server initialized",
		"environment", cfg.Environment,
		"rate_limit", cfg.RateLimit,
		"redis", cfg.RedisURL != "",
	)

	return server, nil
}

// releases the database pool and the limiter store
func (s *Server) Close() {
	if err := s.limiter.Close(); err != nil {
		logger.ErrorErr(err, "failed to close rate limiter store")
	}

	s.store.Close()
}
