package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/estate-agency/frontend/internal/chain"
	"github.com/estate-agency/frontend/internal/config"
	"github.com/estate-agency/frontend/internal/db"
	"github.com/estate-agency/frontend/internal/events"
	apphttp "github.com/estate-agency/frontend/internal/http"
	"github.com/estate-agency/frontend/internal/http/handlers"
	"github.com/estate-agency/frontend/internal/repositories"
	"github.com/estate-agency/frontend/internal/services"
	"github.com/ethereum/go-ethereum/common"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Node
	node, err := chain.Dial(ctx, cfg.NodeRPCURL, log)
	if err != nil {
		log.Fatal("failed to connect to node", zap.Error(err))
	}
	defer node.Close()

	abiJSON, err := chain.LoadABI(cfg.ContractABIPath)
	if err != nil {
		log.Fatal("failed to load contract ABI", zap.Error(err))
	}
	contract, err := chain.NewContract(common.HexToAddress(cfg.ContractAddress), abiJSON, node)
	if err != nil {
		log.Fatal("failed to bind contract", zap.Error(err))
	}

	// Journal (optional)
	var (
		journal services.TxJournal
		audit   services.AuditLogger
	)
	if cfg.JournalEnabled() {
		pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, cfg.PostgresMaxConns, log)
		if err != nil {
			log.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer pool.Close()

		if err := db.RunMigrations(ctx, pool, db.MigrationsFS(cfg.MigrationsDir), log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
		journal = repositories.NewTxRepo(pool)
		audit = repositories.NewAuditRepo(pool)
	}

	// Redis (optional)
	var (
		rdb       *redis.Client
		publisher events.Publisher
		wsHub     *handlers.WSHub
	)
	if cfg.EventsEnabled() {
		rdb, err = db.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()

		publisher = events.NewRedisPublisher(rdb, log)
		wsHub = handlers.NewWSHub(events.NewRedisSubscriber(rdb, log), log)
		if err := wsHub.Start(ctx); err != nil {
			log.Fatal("failed to start ws hub", zap.Error(err))
		}
	}

	// Services
	txService := services.NewTxService(journal, publisher, log)
	accountService := services.NewAccountService(node, audit, log)
	estateService := services.NewEstateService(contract, txService, log)
	paymentService := services.NewPaymentService(contract, node, estateService, txService, cfg.PriceUnitDecimals, log)

	// Handlers
	accountHandler := handlers.NewAccountHandler(accountService, cfg, log)
	estateHandler := handlers.NewEstateHandler(estateService, cfg, log)
	paymentHandler := handlers.NewPaymentHandler(paymentService, txService, cfg, log)

	app := apphttp.NewApp(log)
	apphttp.SetupRouter(app, cfg, log, rdb, accountHandler, estateHandler, paymentHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.HTTPPort)
	log.Info("starting web server",
		zap.String("addr", addr),
		zap.String("contract", contract.Address().Hex()),
		zap.Bool("journal", cfg.JournalEnabled()),
		zap.Bool("events", cfg.EventsEnabled()),
	)
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
