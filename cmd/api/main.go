package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/course-marketplace/internal/api/http"
	"github.com/spec-kit/course-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/course-marketplace/internal/auth"
	"github.com/spec-kit/course-marketplace/internal/config"
	"github.com/spec-kit/course-marketplace/internal/events"
	"github.com/spec-kit/course-marketplace/internal/media"
	"github.com/spec-kit/course-marketplace/internal/observability"
	"github.com/spec-kit/course-marketplace/internal/persistence"
	"github.com/spec-kit/course-marketplace/internal/repository"
	"github.com/spec-kit/course-marketplace/internal/service"
	"github.com/spec-kit/course-marketplace/internal/worker"
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

	pool := pg.PoolHandle()
	adminRepo := repository.NewAdminRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	purchaseRepo := repository.NewPurchaseRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notify)
	worker.StartNotificationWorker(notificationService)

	courseCache := persistence.NewCourseCache(redis, logger, time.Minute)
	uploader := media.NewCloudinaryUploader(cfg.Cloudinary)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		AdminRepo: adminRepo,
		UserRepo:  userRepo,
	})
	courseService := service.NewCourseService(courseRepo, uploader, courseCache, dispatcher, logger)
	purchaseService := service.NewPurchaseService(courseRepo, purchaseRepo, dispatcher, logger)

	adminGuard := auth.NewAdminGuard(authService.AdminTokens())
	userGuard := auth.NewUserGuard(authService.UserTokens())

	app := fiber.New()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	secureCookies := cfg.App.Env == "production"
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Admins:     handlers.NewAdminsHandler(authService, secureCookies),
		Users:      handlers.NewUsersHandler(authService, purchaseService, secureCookies),
		Courses:    handlers.NewCoursesHandler(courseService, purchaseService),
		AdminGuard: adminGuard,
		UserGuard:  userGuard,
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
