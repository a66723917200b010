package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bistroboss/bistro-api/internal/config"
	"github.com/bistroboss/bistro-api/internal/handlers"
	"github.com/bistroboss/bistro-api/internal/logger"
	"github.com/bistroboss/bistro-api/internal/metrics"
	"github.com/bistroboss/bistro-api/internal/middleware"
	"github.com/bistroboss/bistro-api/internal/repositories"
	"github.com/bistroboss/bistro-api/internal/store"
	"github.com/bistroboss/bistro-api/internal/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

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

	logger.Logger.Info("Starting Bistro Boss API server")

	// Connect to the document store
	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	docStore, err := store.Connect(connectCtx, cfg.Store.URI, cfg.Store.Database)
	if err != nil {
		logger.Logger.Fatal("Failed to connect to document store", zap.Error(err))
	}
	defer docStore.Disconnect(context.Background())

	if err := docStore.Ping(connectCtx); err != nil {
		logger.Logger.Fatal("Failed to ping document store", zap.Error(err))
	}
	logger.Logger.Info("Connected to document store", zap.String("database", cfg.Store.Database))

	// Initialize the token service
	tokenService := token.NewService(cfg.Token.Secret, cfg.Token.Expiry)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(docStore, logger.Logger)
	menuRepo := repositories.NewMenuRepository(docStore, logger.Logger)
	reviewRepo := repositories.NewReviewRepository(docStore, logger.Logger)
	orderRepo := repositories.NewOrderRepository(docStore, logger.Logger)

	// Initialize handlers
	tokenHandler := handlers.NewTokenHandler(tokenService, logger.Logger)
	userHandler := handlers.NewUserHandler(userRepo, logger.Logger)
	menuHandler := handlers.NewMenuHandler(menuRepo, logger.Logger)
	reviewHandler := handlers.NewReviewHandler(reviewRepo, logger.Logger)
	orderHandler := handlers.NewOrderHandler(orderRepo, logger.Logger)

	// Initialize gates
	authenticate := middleware.Authenticate(tokenService, logger.Logger)
	requireAdmin := middleware.RequireAdmin(userRepo, logger.Logger)

	// Initialize metrics
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger.Logger))
	r.Use(middleware.Recovery(logger.Logger))
	r.Use(middleware.Metrics(collector))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           3600,
	}))
	r.Use(httprate.LimitByIP(100, time.Minute))

	// Liveness and metrics endpoints
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("Bistro Boss restaurant server is running"))
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"bistro-api"}`))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(registry))

	// Register resource routes
	tokenHandler.RegisterRoutes(r)
	userHandler.RegisterRoutes(r, authenticate, requireAdmin)
	menuHandler.RegisterRoutes(r, authenticate, requireAdmin)
	reviewHandler.RegisterRoutes(r)
	orderHandler.RegisterRoutes(r)

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
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}
