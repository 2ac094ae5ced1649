package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aokpower/ari-cart/internal/application/ari"
	"github.com/aokpower/ari-cart/internal/infrastructure/config"
	"github.com/aokpower/ari-cart/internal/infrastructure/idlookup"
	"github.com/aokpower/ari-cart/internal/infrastructure/logger"
	"github.com/aokpower/ari-cart/internal/infrastructure/shopify"
	"github.com/aokpower/ari-cart/internal/infrastructure/telemetry"
	"github.com/aokpower/ari-cart/internal/interfaces/http/handler"
	"github.com/aokpower/ari-cart/internal/interfaces/http/middleware"
	"github.com/aokpower/ari-cart/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultTimeFormat,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ARI cart service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("storefront", cfg.Storefront.BaseURL),
		zap.String("lookup", cfg.Lookup.BaseURL),
	)

	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	mp, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsExportInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mp.Shutdown(ctx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()
	metrics, err := telemetry.NewARIMetrics(mp.Meter(telemetry.MeterName))
	if err != nil {
		log.Fatal("Failed to create metrics", zap.Error(err))
	}

	lookup, err := idlookup.NewClient(&idlookup.Config{
		BaseURL:        cfg.Lookup.BaseURL,
		TimeoutSeconds: config.TimeoutSeconds(cfg.Lookup.Timeout),
	}, log)
	if err != nil {
		log.Fatal("Failed to create lookup client", zap.Error(err))
	}

	carts, err := shopify.NewClient(&shopify.Config{
		BaseURL:        cfg.Storefront.BaseURL,
		TimeoutSeconds: config.TimeoutSeconds(cfg.Storefront.Timeout),
	}, nil, log)
	if err != nil {
		log.Fatal("Failed to create storefront client", zap.Error(err))
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.NewEngine(log, cfg.HTTP.MaxBodySize, middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	})
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewARIHandler(lookup, carts, cfg.Storefront.CartCountSelector,
			ari.WithStepTimeout(cfg.ARI.StepTimeout),
			ari.WithMetrics(metrics),
		)).
		Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}
