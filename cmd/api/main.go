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

	httptransport "github.com/biletfinder/ticketing-service/internal/api/http"
	"github.com/biletfinder/ticketing-service/internal/api/http/handlers"
	"github.com/biletfinder/ticketing-service/internal/auth"
	"github.com/biletfinder/ticketing-service/internal/config"
	"github.com/biletfinder/ticketing-service/internal/events"
	"github.com/biletfinder/ticketing-service/internal/observability"
	"github.com/biletfinder/ticketing-service/internal/persistence"
	"github.com/biletfinder/ticketing-service/internal/repository"
	"github.com/biletfinder/ticketing-service/internal/service"
	"github.com/biletfinder/ticketing-service/internal/worker"
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

	var (
		pg          *persistence.Postgres
		ticketRepo  repository.TicketRepository
		userRepo    repository.UserRepository
		reminderLog repository.ReminderLog
		redisConn   *persistence.Redis
	)

	if cfg.Postgres.DSN != "" {
		pg, err = persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		ticketRepo = repository.NewPostgresTicketRepository(pg.PoolHandle())
		userRepo = repository.NewPostgresUserRepository(pg.PoolHandle())
	} else {
		logger.Info("no POSTGRES_DSN configured, using in-memory stores")
		ticketRepo = repository.NewMemoryTicketRepository()
		userRepo = repository.NewMemoryUserRepository()
	}

	if cfg.Redis.Enabled {
		redisConn = persistence.NewRedis(cfg.Redis, logger)
		defer redisConn.Close()
		reminderLog = repository.NewRedisReminderLog(redisConn.Client)
	} else {
		reminderLog = repository.NewMemoryReminderLog()
	}

	// Trip catalog and seat inventory stand in for the carrier backend.
	trips := repository.SeedTrips(time.Now())
	tripCatalog := repository.NewMemoryTripCatalog(trips)
	seatInventory := repository.NewMemorySeatInventory(repository.SeedSeats(trips))

	dispatcher := events.NewInMemoryDispatcher()
	feed := repository.NewMemoryNotificationFeed()

	notificationService := service.NewNotificationService(feed, logger)
	worker.StartNotificationWorker(notificationService, dispatcher)

	reminderService := service.NewReminderService(service.ReminderDependencies{
		ReminderLog: reminderLog,
		TripCatalog: tripCatalog,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:    ticketRepo,
		TripCatalog:   tripCatalog,
		SeatInventory: seatInventory,
		Reminders:     reminderService,
		Dispatcher:    dispatcher,
		Logger:        logger,
	})
	tripService := service.NewTripService(tripCatalog, seatInventory)
	authService := service.NewAuthService(cfg.Auth, userRepo)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	worker.StartReminderWorker(ctx, ticketService, cfg.Reminder.ScanInterval(), logger)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{DisableStartupMessage: cfg.App.Env == "production"})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redisConn),
		Users:          handlers.NewUsersHandler(authService),
		Trips:          handlers.NewTripsHandler(tripService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		AuthMiddleware: authMiddleware,
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
