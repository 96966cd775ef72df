package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"guardrails/internal/agent"
	"guardrails/internal/config"
	"guardrails/internal/database"
	"guardrails/internal/logger"
	"guardrails/internal/metrics"
	"guardrails/internal/server"
	"guardrails/internal/services"
	"guardrails/internal/telemetry"
	"guardrails/internal/validator"
)

// @title           Guardrails Console API
// @version         1.0
// @description     Administrative API for agent guardrail rules, the query audit log and the agent engine proxy.

// @host      localhost:3000
// @BasePath  /api

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName: server.ServiceName,
		Environment: appConfig.Env,
		Endpoint:    appConfig.OTLPEndpoint,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	dbManager, err := database.NewManager(appConfig.Database)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if appConfig.AutoMigrate {
		if err := dbManager.RunMigrations(appConfig.MigrationsPath); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	m := metrics.New()
	agentClient := agent.NewClient(appConfig.AgentEngineURL, agent.NewHTTPClient(appConfig.AgentTimeout))

	router := server.NewRouter(server.Services{
		Guardrails: services.NewGuardrailService(db),
		Audit:      services.NewAuditService(db),
		Users:      services.NewUserService(db),
		Stats:      services.NewStatsService(db),
		Chat:       services.NewChatService(agentClient, m),
		Engine:     agentClient,
	}, m)

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           server.NewHandler(router, appConfig.AllowedOrigins, tp.Enabled()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting guardrails API server on port %s", appConfig.Port)
		log.Infof("Agent engine at %s", appConfig.AgentEngineURL)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server shutdown error", "error", err)
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Errorw("tracer shutdown error", "error", err)
	}
	log.Info("Server stopped")
	return nil
}
