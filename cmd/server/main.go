package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/dermaclinic/dermaclinic-api/internal/config"
	v1 "github.com/dermaclinic/dermaclinic-api/internal/handler/v1"
	"github.com/dermaclinic/dermaclinic-api/internal/repository"
	"github.com/dermaclinic/dermaclinic-api/internal/service"
	"github.com/dermaclinic/dermaclinic-api/pkg/auth"
	"github.com/dermaclinic/dermaclinic-api/pkg/database"
	"github.com/dermaclinic/dermaclinic-api/pkg/logger"
	"github.com/dermaclinic/dermaclinic-api/pkg/metrics"
	"github.com/dermaclinic/dermaclinic-api/pkg/tracer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting dermaclinic-api",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracer: %w", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		return err
	}

	collector := metrics.NewCollector("dermaclinic")
	jwtManager := auth.NewJWTManager(cfg.JWT)

	patientRepo := repository.NewPatientRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	userRepo := repository.NewUserRepository(db)

	auditSvc := service.NewAuditService(auditRepo, collector, log)
	defer auditSvc.Shutdown()

	patientSvc := service.NewPatientService(patientRepo, auditSvc, collector, log)
	authSvc := service.NewAuthService(userRepo, jwtManager, log)

	router := v1.NewRouter(v1.RouterDeps{
		Config:     cfg,
		Log:        log,
		Metrics:    collector,
		JWTManager: jwtManager,
		Patients:   v1.NewPatientHandler(patientSvc),
		Auth:       v1.NewAuthHandler(authSvc),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}
