package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"bukubesar-api/internal/config"
	"bukubesar-api/internal/database"
	"bukubesar-api/internal/utils"
	"bukubesar-api/internal/worker"

	"github.com/hibiken/asynq"
)

func main() {
	log := utils.GetLogger()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := database.NewMySQL(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient, err := database.NewRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	redisOpt := database.AsynqRedisOpt(cfg)

	// Create Asynq server
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: cfg.WorkerConcurrency,
			Queues: map[string]int{
				worker.QueueMaintenance: 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.WithError(err).Errorf("Error processing task %s", task.Type())
			}),
		},
	)

	// Periodic maintenance
	scheduler := asynq.NewScheduler(redisOpt, nil)
	entryID, err := scheduler.Register(cfg.TokenPurgeCron, worker.NewPurgeRevokedTokensTask())
	if err != nil {
		log.Fatalf("Failed to schedule token purge %q: %v", cfg.TokenPurgeCron, err)
	}
	log.Infof("Token purge scheduled (%s) as %s", cfg.TokenPurgeCron, entryID)

	// Register task handlers
	mux := asynq.NewServeMux()
	worker.RegisterHandlers(mux, db, redisClient, cfg)

	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Gracefully shutting down worker...")
		scheduler.Shutdown()
		srv.Shutdown()
	}()

	// Start worker
	log.Infof("Worker starting with concurrency: %d", cfg.WorkerConcurrency)
	if err := srv.Run(mux); err != nil {
		log.Fatalf("Failed to start worker: %v", err)
	}

	log.Info("Worker exited")
}
