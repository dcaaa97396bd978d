package cron

import (
	"context"
	"encoding/json"
	"time"

	"slotwise/config"
	"slotwise/services/scheduling"
	"slotwise/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitExpiryWorker runs the async worker in background. It consumes
// booking:expire tasks and cancels bookings still pending past their
// confirmation deadline. Cancelling ctx stops the redis connection monitor;
// the asynq server itself is stopped through the returned handle.
func InitExpiryWorker(ctx context.Context, cfg *config.Config, engine *scheduling.Engine, logger *zap.Logger) *asynq.Server {
	redisOpts := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingExpire, handleExpireTask(engine, logger))

	go monitorRedisConnection(ctx, cfg, logger)

	go func() {
		logger.Info("starting booking expiry worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("expiry worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("expiry worker exhausted start attempts")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	return srv
}

func handleExpireTask(engine *scheduling.Engine, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.ExpirePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid expire payload", zap.Error(err))
			return err
		}

		logger.Info("expiring pending booking", zap.String("bookingID", p.BookingID))

		if err := engine.ExpirePendingBooking(ctx, p.BookingID); err != nil {
			logger.Error("failed to expire booking",
				zap.String("bookingID", p.BookingID), zap.Error(err))
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at
// runtime. Returns and closes its client when ctx is cancelled.
func monitorRedisConnection(ctx context.Context, cfg *config.Config, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("expiry queue redis connection lost", zap.Error(err))
			}
		}
	}
}
