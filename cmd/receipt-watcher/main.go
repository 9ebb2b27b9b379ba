package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/estate-agency/frontend/internal/chain"
	"github.com/estate-agency/frontend/internal/config"
	"github.com/estate-agency/frontend/internal/db"
	"github.com/estate-agency/frontend/internal/events"
	"github.com/estate-agency/frontend/internal/repositories"
	"github.com/estate-agency/frontend/internal/services"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	if !cfg.JournalEnabled() {
		log.Fatal("POSTGRES_DSN is required for the receipt watcher")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	node, err := chain.Dial(ctx, cfg.NodeRPCURL, log)
	if err != nil {
		log.Fatal("failed to connect to node", zap.Error(err))
	}
	defer node.Close()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, cfg.PostgresMaxConns, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, db.MigrationsFS(cfg.MigrationsDir), log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	var publisher events.Publisher
	if cfg.EventsEnabled() {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()
		publisher = events.NewRedisPublisher(rdb, log)
	}

	watcher := services.NewReceiptService(node, repositories.NewTxRepo(pool), publisher, cfg.ReceiptBatchSize, log)

	log.Info("receipt watcher started", zap.Duration("interval", cfg.ReceiptPollInterval))
	watcher.Run(ctx, cfg.ReceiptPollInterval)
	log.Info("shutting down receipt watcher")
}
