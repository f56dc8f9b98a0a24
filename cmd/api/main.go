package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentry "github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/deckflow-admin/internal/api/http"
	"github.com/spec-kit/deckflow-admin/internal/api/http/handlers"
	"github.com/spec-kit/deckflow-admin/internal/auth"
	"github.com/spec-kit/deckflow-admin/internal/config"
	"github.com/spec-kit/deckflow-admin/internal/events"
	"github.com/spec-kit/deckflow-admin/internal/observability"
	"github.com/spec-kit/deckflow-admin/internal/persistence"
	"github.com/spec-kit/deckflow-admin/internal/repository"
	"github.com/spec-kit/deckflow-admin/internal/service"
	"github.com/spec-kit/deckflow-admin/internal/worker"
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

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.App.Env,
			Release:     cfg.App.Version,
		}); err != nil {
			logger.Fatal("sentry init", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

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

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	deckRepo := repository.NewDeckRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	packageRepo := repository.NewPackageRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	worker.RegisterEventLogging(dispatcher, logger)

	reviewService := service.NewReviewService(service.ReviewDependencies{
		RequestRepo: requestRepo,
		DeckRepo:    deckRepo,
		UserRepo:    userRepo,
		Dispatcher:  dispatcher,
	})
	queryService := service.NewRequestQueryService(requestRepo)
	notificationService := service.NewNotificationService(service.NotificationDependencies{
		Queries:     queryService,
		PaymentRepo: paymentRepo,
		Cache:       redis,
		CacheTTL:    cfg.Feeds.CacheTTL(),
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	paymentService := service.NewPaymentService(paymentRepo, redis, cfg.Feeds.CacheTTL(), logger)
	packageService := service.NewPackageService(packageRepo)
	authService := service.NewAuthService(*cfg, userRepo)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	refresher := worker.NewFeedRefresher(cfg.Feeds.RefreshInterval(), logger, notificationService, paymentService)
	go refresher.Run(ctx)

	app := fiber.New()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.CORSOrigin, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis),
		Requests:       handlers.NewRequestsHandler(reviewService, queryService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Payments:       handlers.NewPaymentsHandler(notificationService, paymentService),
		Packages:       handlers.NewPackagesHandler(packageService),
		Users:          handlers.NewUsersHandler(authService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	cancel()

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
