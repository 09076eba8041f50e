package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/fieldops/atm-visit-service/internal/api/http"
	"github.com/fieldops/atm-visit-service/internal/api/http/handlers"
	"github.com/fieldops/atm-visit-service/internal/auth"
	"github.com/fieldops/atm-visit-service/internal/config"
	"github.com/fieldops/atm-visit-service/internal/events"
	"github.com/fieldops/atm-visit-service/internal/identity"
	"github.com/fieldops/atm-visit-service/internal/observability"
	"github.com/fieldops/atm-visit-service/internal/persistence"
	"github.com/fieldops/atm-visit-service/internal/repository"
	"github.com/fieldops/atm-visit-service/internal/service"
	"github.com/fieldops/atm-visit-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	verifier, err := identity.NewVerifier(ctx, cfg.Auth, logger)
	if err != nil {
		logger.Fatal("failed to init identity verifier", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	submissionRepo := repository.NewSubmissionRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	directoryService := service.NewDirectoryService(service.DirectoryDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	submissionService := service.NewSubmissionService(service.SubmissionDependencies{
		SubmissionRepo: submissionRepo,
		Dispatcher:     dispatcher,
	})
	statsService := service.NewStatsService(submissionRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authGate := auth.NewMiddleware(verifier, directoryService)
	rateLimiter := httptransport.NewRateLimiter(cfg.RateLimit, redis.ClientHandle())

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:       handlers.NewUsersHandler(),
		Submissions: handlers.NewSubmissionsHandler(submissionService),
		Stats:       handlers.NewStatsHandler(statsService),
		Admin:       handlers.NewAdminHandler(directoryService),
		AuthGate:    authGate,
		RateLimiter: rateLimiter,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
