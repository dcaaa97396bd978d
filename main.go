package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	calendar "google.golang.org/api/calendar/v3"

	"slotwise/config"
	"slotwise/cron"
	"slotwise/database"
	blockedRepo "slotwise/database/repository/blockedtime"
	bookingRepo "slotwise/database/repository/booking"
	calendarConnRepo "slotwise/database/repository/calendarconn"
	listingRepo "slotwise/database/repository/listing"
	"slotwise/handlers"
	"slotwise/routes"
	"slotwise/services/calendarsync"
	"slotwise/services/notification"
	"slotwise/services/scheduling"
	"slotwise/services/tasks"
	"slotwise/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := utils.NewLogger(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongoClient, err := database.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())
	db := mongoClient.Database(cfg.DatabaseName)

	// Repositories.
	listings := listingRepo.NewMongoListingRepo(db)
	bookings := bookingRepo.NewMongoBookingRepo(db)
	blocked := blockedRepo.NewMongoBlockedRepo(db)
	calendarConns := calendarConnRepo.NewMongoCalendarConnRepo(db)

	idxCtx, idxCancel := context.WithTimeout(ctx, 30*time.Second)
	defer idxCancel()
	for _, ensure := range []func(context.Context) error{
		listings.EnsureIndexes, bookings.EnsureIndexes,
		blocked.EnsureIndexes, calendarConns.EnsureIndexes,
	} {
		if err := ensure(idxCtx); err != nil {
			logger.Fatal("failed to ensure indexes", zap.Error(err))
		}
	}

	cacheClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisCacheDB,
	})
	defer cacheClient.Close()

	// External calendar sync.
	adapters := []calendarsync.Adapter{calendarsync.NoopAdapter{}}
	var writeback calendarsync.Writeback = calendarsync.NoopWriteback{}
	if cfg.GoogleSyncEnabled {
		googleAdapter := &calendarsync.GoogleAdapter{
			Connections: calendarConns,
			OAuth: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     google.Endpoint,
				Scopes:       []string{calendar.CalendarEventsScope},
			},
			Logger: logger,
		}
		adapters = append(adapters, googleAdapter)
		if cfg.GoogleWritebackFlag {
			writeback = &calendarsync.GoogleWriteback{
				Connections: calendarConns,
				Adapter:     googleAdapter,
				Logger:      logger,
			}
		}
	}

	policy := calendarsync.DefaultRetryPolicy()
	policy.MaxAttempts = cfg.SyncMaxAttempts
	policy.Timeout = cfg.SyncFetchTimeout

	aggregator := &calendarsync.Aggregator{
		Adapters: adapters,
		Policy:   policy,
		Limiter:  rate.NewLimiter(rate.Limit(cfg.SyncRatePerSecond), cfg.SyncRatePerSecond),
		Cache:    calendarsync.NewBusyCache(cacheClient, cfg.SyncBusyCacheTTL, logger),
		Logger:   logger,
	}

	// Pending-booking expiry queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	})
	defer asynqClient.Close()

	// Scheduling engine.
	resolver := &scheduling.Resolver{
		Bookings:   bookings,
		Blocked:    blocked,
		External:   aggregator,
		FailClosed: cfg.SyncFailClosed,
		Logger:     logger,
	}
	engine := &scheduling.Engine{
		Listings:   listings,
		Bookings:   bookings,
		Blocked:    blocked,
		Resolver:   resolver,
		Slots:      scheduling.NewSlotGenerator(time.Duration(cfg.SlotGranularityMinutes) * time.Minute),
		Conflicts:  scheduling.ConflictDetector{Resolver: resolver},
		Expiry:     &tasks.AsynqExpiry{Client: asynqClient},
		Writeback:  writeback,
		Notifier:   notification.LogNotifier{Logger: logger},
		Logger:     logger,
		PendingTTL: cfg.PendingBookingTTL,
		Now:        time.Now,
	}

	expirySrv := cron.InitExpiryWorker(ctx, &cfg, engine, logger)
	defer expirySrv.Shutdown()

	healthMonitor := utils.NewHealthMonitor(mongoClient, cacheClient)
	healthMonitor.Start(ctx, 60*time.Second)

	// HTTP surface.
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	handlerBundle := &handlers.HandlerBundle{
		Availability: &handlers.AvailabilityHandler{Service: engine, Logger: logger},
		Bookings:     &handlers.BookingHandler{Service: engine, Logger: logger},
		BlockedTimes: &handlers.BlockedTimeHandler{Service: engine, Logger: logger},
		Calendars:    &handlers.CalendarConnectionHandler{Connections: calendarConns, Logger: logger},
		Health:       &handlers.HealthHandler{Monitor: healthMonitor},
	}
	routes.RegisterRoutes(router, &cfg, handlerBundle, logger)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
