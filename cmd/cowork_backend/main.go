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

	_ "github.com/SscSPs/cowork_membership_app/cmd/docs"
	"github.com/SscSPs/cowork_membership_app/internal/handlers"
	"github.com/SscSPs/cowork_membership_app/internal/middleware"
	"github.com/SscSPs/cowork_membership_app/internal/platform/bootstrap"
	"github.com/SscSPs/cowork_membership_app/internal/platform/config"
	"github.com/SscSPs/cowork_membership_app/internal/platform/messaging"
	"github.com/SscSPs/cowork_membership_app/internal/platform/scheduler"
	"github.com/SscSPs/cowork_membership_app/internal/platform/telemetry"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// @title Cowork Membership API
// @version 1.0
// @description Membership benefit ledger and access-request settlement for coworking and coliving spaces.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTELEnabled, cfg.OTELServiceName)
	if err != nil {
		logger.Error("Failed to set up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app, err := bootstrap.Build(ctx, cfg, nil, logger)
	if err != nil {
		logger.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("Error releasing resources", slog.String("error", err.Error()))
		}
	}()

	// Push the credit packages to billing so sales and confirmations resolve
	if err := app.Services.CreditPackage.SyncProducts(ctx); err != nil {
		logger.Error("Failed to sync credit package products", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, app.Services)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return shutdownTracing(shutdownCtx)
	})

	if cfg.SchedulerEnabled {
		sched, err := scheduler.New(app.Services.Sweep, cfg.CronExpirySpec, cfg.CronMonthlySpec, cfg.Location, logger)
		if err != nil {
			logger.Error("Failed to configure scheduler", slog.String("error", err.Error()))
			os.Exit(1)
		}
		g.Go(func() error { return sched.Run(gctx) })
	}

	if cfg.AMQPURL != "" {
		consumer, err := messaging.NewSaleOrderConsumer(cfg.AMQPURL, cfg.AMQPSaleOrderQueue, app.Services.CreditPackage, logger)
		if err != nil {
			logger.Error("Failed to connect sale-order consumer", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer consumer.Close()
		g.Go(func() error { return consumer.Run(gctx) })
	}

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
