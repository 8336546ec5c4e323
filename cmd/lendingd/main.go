package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/application/usecase"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/infrastructure/config"
	infrakafka "github.com/wandysoluciones/wandy-soluciones-prestamos/internal/infrastructure/kafka"
	pgRepo "github.com/wandysoluciones/wandy-soluciones-prestamos/internal/infrastructure/postgres"
	grpcPresentation "github.com/wandysoluciones/wandy-soluciones-prestamos/internal/presentation/grpc"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/presentation/rest"
	pkgkafka "github.com/wandysoluciones/wandy-soluciones-prestamos/pkg/kafka"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/pkg/observability"
	pkgpostgres "github.com/wandysoluciones/wandy-soluciones-prestamos/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	logger.Info("starting lending-core",
		"grpc_port", cfg.GRPCPort,
		"http_port", cfg.HTTPPort,
	)

	// Metrics.
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	dbCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, dbCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := pkgpostgres.RunMigrations(dbCfg.DSN(), "file://"+cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Infrastructure adapters.
	loanRepo := pgRepo.NewLoanRepo(pool)
	cashRepo := pgRepo.NewCashBookRepo(pool)
	uow := pgRepo.NewUnitOfWork(pool)

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()
	publisher := infrakafka.NewKafkaEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)

	// Use cases. Mutating ones share a single per-loan lock table.
	locks := usecase.NewLoanLocks()
	createLoanUC := usecase.NewCreateLoanUseCase(uow, publisher)
	getLoanUC := usecase.NewGetLoanUseCase(loanRepo)
	listInstallmentsUC := usecase.NewListInstallmentsUseCase(loanRepo)
	applyPaymentUC := usecase.NewApplyPaymentUseCase(uow, publisher, locks)
	reversePaymentUC := usecase.NewReversePaymentUseCase(uow, publisher, locks)
	loanSummaryUC := usecase.NewLoanSummaryUseCase(loanRepo)
	changeStatusUC := usecase.NewChangeLoanStatusUseCase(loanRepo, publisher, locks)
	recordCashEntryUC := usecase.NewRecordCashEntryUseCase(uow, publisher)
	cashPositionUC := usecase.NewGetCashPositionUseCase(cashRepo)
	listCashEntriesUC := usecase.NewListCashEntriesUseCase(cashRepo)

	// gRPC server.
	handler := grpcPresentation.NewLendingHandler(
		createLoanUC,
		getLoanUC,
		listInstallmentsUC,
		applyPaymentUC,
		reversePaymentUC,
		loanSummaryUC,
		changeStatusUC,
		recordCashEntryUC,
		cashPositionUC,
		listCashEntriesUC,
		logger,
	)
	grpcServer := grpcPresentation.NewServer(handler, cfg, logger)

	// HTTP server (health probes and metrics).
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(logger, metricsHandler, map[string]rest.ReadyCheck{
		"postgres": func(ctx context.Context) error {
			return pkgpostgres.HealthCheck(ctx, pool)
		},
	})
	healthHandler.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "addr", cfg.HTTPAddr())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("lending-core stopped")
}
