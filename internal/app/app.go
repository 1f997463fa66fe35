package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/godilite/team-scoring/internal/config"
	"github.com/godilite/team-scoring/internal/events"
	handler "github.com/godilite/team-scoring/internal/grpc"
	"github.com/godilite/team-scoring/internal/metrics"
	"github.com/godilite/team-scoring/internal/repository"
	"github.com/godilite/team-scoring/internal/scoring"
	"github.com/godilite/team-scoring/internal/service"
	"github.com/godilite/team-scoring/pkg/cache"
	dbbuilder "github.com/godilite/team-scoring/pkg/database"
	grpcsrv "github.com/godilite/team-scoring/pkg/grpc/server"

	"go.uber.org/zap"
	"google.golang.org/grpc"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	logger        *zap.Logger
	dbPool        *sql.DB
	cache         *cache.Cache
	publisher     *events.NATSPublisher
	grpcServer    *grpcsrv.Server
	metricsServer *http.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{logger: logger}

	dbPool, err := dbbuilder.New(
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
		dbbuilder.WithSchema(repository.Schema),
	)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	a.dbPool = dbPool
	logger.Info("Database pool initialized", zap.String("path", cfg.DBPath))

	engine, err := scoring.NewEngine(cfg.Scoring, logger)
	if err != nil {
		a.closeResources()
		return nil, fmt.Errorf("scoring engine init failed: %w", err)
	}

	m := metrics.New()
	opts := []service.Option{service.WithRecorder(m)}

	if cfg.RedisAddr != "" {
		cacheClient, err := cache.New(ctx,
			cache.WithAddress(cfg.RedisAddr),
			cache.WithPassword(cfg.RedisPassword),
			cache.WithDB(cfg.RedisDB),
			cache.WithKeyPrefix(cfg.AppEnv+":"),
		)
		if err != nil {
			a.closeResources()
			return nil, fmt.Errorf("cache init failed: %w", err)
		}
		a.cache = cacheClient
		opts = append(opts, service.WithCache(cacheClient, cfg.CacheTTL))
		logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))
	} else {
		logger.Info("REDIS_ADDR not set, result caching disabled")
	}

	if cfg.NATSURL != "" {
		publisher, err := events.NewNATSPublisher(cfg.NATSURL, logger)
		if err != nil {
			a.closeResources()
			return nil, fmt.Errorf("nats init failed: %w", err)
		}
		a.publisher = publisher
		opts = append(opts, service.WithPublisher(publisher))
		logger.Info("Event publisher initialized", zap.String("url", cfg.NATSURL))
	}

	ticketRepo := repository.NewTicketRepository(dbPool)
	scoringService := service.NewTeamScoringService(ticketRepo, engine, logger, opts...)
	grpcHandlers := handler.NewGRPCHandlers(scoringService, logger, 0)

	grpcServer, err := grpcsrv.New(
		grpcsrv.WithPort(cfg.GRPCPort),
		grpcsrv.WithLogger(logger),
		grpcsrv.WithLogging(true),
		grpcsrv.WithMetrics(m),
		grpcsrv.WithReflection(cfg.GRPCReflectionEnabled),
	)
	if err != nil {
		a.closeResources()
		return nil, fmt.Errorf("failed to create gRPC server: %w", err)
	}
	a.grpcServer = grpcServer

	grpcServer.RegisterServiceWithHealth(handler.ServiceName, func(s *grpc.Server) {
		handler.RegisterTeamScoringServer(s, grpcHandlers)
	})

	a.metricsServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.MetricsPort),
		Handler:           metrics.NewRouter(m),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return a, nil
}

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run() error {
	a.logger.Info("application starting")

	a.grpcServer.Start()

	go func() {
		a.logger.Info("metrics server starting", zap.String("addr", a.metricsServer.Addr))
		if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case sig := <-quit:
		a.logger.Info("application shutting down", zap.String("signal", sig.String()))
	case serveErr = <-a.grpcServer.Errors():
		a.logger.Error("gRPC server stopped unexpectedly, shutting down", zap.Error(serveErr))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.grpcServer.Shutdown(ctx); err != nil {
		a.logger.Error("gRPC shutdown error", zap.Error(err))
	}
	if err := a.metricsServer.Shutdown(ctx); err != nil {
		a.logger.Error("metrics server shutdown error", zap.Error(err))
	}

	a.closeResources()

	select {
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			a.logger.Warn("shutdown completed but deadline exceeded")
		}
	default:
		a.logger.Info("graceful shutdown completed successfully")
	}

	_ = a.logger.Sync()
	if serveErr != nil {
		return fmt.Errorf("grpc serve: %w", serveErr)
	}
	return nil
}

// closeResources releases the outbound connections in reverse order of setup.
func (a *App) closeResources() {
	if a.publisher != nil {
		a.publisher.Close()
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("cache shutdown error", zap.Error(err))
		}
	}
	if a.dbPool != nil {
		if err := a.dbPool.Close(); err != nil {
			a.logger.Error("database shutdown error", zap.Error(err))
		}
	}
}
