package cron

import (
	"context"
	"log"
	"time"

	"agendly/config"
	appointmentRepo "agendly/database/repository/appointment"
	"agendly/services/scheduling"
	"agendly/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeExpirePending = "appointments:expire_pending"

// expirySweepInterval controls how often stale pending appointments are swept.
const expirySweepInterval = 5 * time.Minute

// slotCacheBumper invalidates a tenant's cached slot listings.
type slotCacheBumper interface {
	Bump(ctx context.Context, owner string)
}

// InitExpiryWorker runs the async worker and scheduler in the background.
// The periodic sweep cancels pending appointments older than the configured
// TTL so abandoned holds stop consuming capacity.
func InitExpiryWorker(appts appointmentRepo.AppointmentRepository, cache *scheduling.SlotCache) {
	var bumper slotCacheBumper
	if cache != nil {
		bumper = cache
	}
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeExpirePending, handleExpirePendingTask(appts, bumper))

	go monitorRedisConnection()

	go func() {
		log.Println("[ExpiryWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[ExpiryWorker] worker stopped: %v", err)
		}
	}()

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	if _, err := scheduler.Register(
		"@every "+expirySweepInterval.String(),
		asynq.NewTask(TypeExpirePending, nil),
	); err != nil {
		log.Printf("[ExpiryWorker] failed to register sweep task: %v", err)
		return
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[ExpiryWorker] scheduler stopped: %v", err)
		}
	}()
}

// monitorRedisConnection pings the queue Redis periodically to detect
// failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ExpiryWorker] Redis (queue) unreachable: %v", err)
		}
		cancel()
	}
}

// handleExpirePendingTask cancels pending appointments whose creation is older
// than the pending TTL and invalidates the affected tenants' slot caches so
// the freed capacity is visible on the next listing, not after the cache TTL.
func handleExpirePendingTask(appts appointmentRepo.AppointmentRepository, bumper slotCacheBumper) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, _ *asynq.Task) error {
		cutoff := time.Now().UTC().Add(-time.Duration(config.AppConfig.PendingTTLMinutes) * time.Minute)
		owners, err := appts.ExpireStalePending(ctx, cutoff)
		if err != nil {
			utils.GetLogger().Error("pending expiry sweep failed", zap.Error(err))
			return err
		}
		if len(owners) == 0 {
			return nil
		}
		if bumper != nil {
			for _, owner := range owners {
				bumper.Bump(ctx, owner)
			}
		}
		utils.GetLogger().Info("expired stale pending appointments",
			zap.Strings("owners", owners), zap.Time("cutoff", cutoff))
		return nil
	}
}
