package http

import (
	"time"

	"github.com/estate-agency/frontend/internal/config"
	"github.com/estate-agency/frontend/internal/http/handlers"
	"github.com/estate-agency/frontend/internal/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SetupRouter registers every page. rdb and wsHub may be nil.
func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	accountHandler *handlers.AccountHandler,
	estateHandler *handlers.EstateHandler,
	paymentHandler *handlers.PaymentHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))
	if rdb != nil {
		app.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))
	}

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	session := middleware.SessionMiddleware(cfg, log)
	form := func(path string, h fiber.Handler) {
		app.Get(path, session, h)
		app.Post(path, session, h)
	}

	// Accounts
	form("/", accountHandler.Login)
	form("/register", accountHandler.Register)
	app.Get("/dashboard/:account", session, accountHandler.Dashboard)
	app.Get("/get_account_balance/:account", session, accountHandler.AccountBalance)

	// Estates and ads
	form("/create_estate/:account", estateHandler.CreateEstate)
	form("/create_ad/:account", estateHandler.CreateAd)
	form("/update_estate_status/:account", estateHandler.UpdateEstateStatus)
	form("/update_ad_status/:account", estateHandler.UpdateAdStatus)
	form("/view_estate_by_id", estateHandler.ViewEstate)
	form("/view_ad_by_id", estateHandler.ViewAd)

	// Payments
	app.Get("/get_balance/:account", session, paymentHandler.ContractBalance)
	form("/purchase_estate/:account", paymentHandler.PurchaseEstate)
	form("/withdraw_funds/:account", paymentHandler.WithdrawFunds)
	app.Get("/transactions/:account", session, paymentHandler.Transactions)

	// WebSocket
	if wsHub != nil {
		app.Use("/ws", handlers.WSUpgradeMiddleware())
		app.Get("/ws/:account", session, websocket.New(wsHub.HandleWS))
	}
}
