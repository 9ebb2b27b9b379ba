package handlers

import (
	"github.com/estate-agency/frontend/internal/chain"
	"github.com/estate-agency/frontend/internal/config"
	"github.com/estate-agency/frontend/internal/http/dto"
	"github.com/estate-agency/frontend/internal/middleware"
	"github.com/estate-agency/frontend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AccountHandler struct {
	accountService *services.AccountService
	cfg            *config.Config
	log            *zap.Logger
}

func NewAccountHandler(accountService *services.AccountService, cfg *config.Config, log *zap.Logger) *AccountHandler {
	return &AccountHandler{accountService: accountService, cfg: cfg, log: log}
}

// Login разблокирует аккаунт и перенаправляет в личный кабинет.
// GET/POST /
func (h *AccountHandler) Login(c *fiber.Ctx) error {
	data := fiber.Map{"Title": "Вход", "Error": false, "PublicKey": ""}
	if !isSubmit(c) {
		return render(c, "login", data)
	}

	var form dto.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return renderFailure(c, "login", data, err)
	}
	data["PublicKey"] = form.PublicKey

	account, err := dto.ParseAccount(form.PublicKey)
	if err != nil {
		return renderFailure(c, "login", data, err)
	}

	ctx, cancel := requestContext(c, h.cfg.RPCTimeout)
	defer cancel()

	if err := h.accountService.Login(ctx, account, form.Password); err != nil {
		return renderFailure(c, "login", data, err)
	}

	if err := middleware.SetSession(c, h.cfg, account.Hex()); err != nil {
		h.log.Error("failed to issue session", zap.Error(err))
		return renderFailure(c, "login", data, err)
	}

	return c.Redirect("/dashboard/" + account.Hex())
}

// Register создаёт новый аккаунт на ноде.
// GET/POST /register
func (h *AccountHandler) Register(c *fiber.Ctx) error {
	data := fiber.Map{"Title": "Регистрация", "Success": false}
	if !isSubmit(c) {
		return render(c, "register", data)
	}

	var form dto.RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return renderFailure(c, "register", data, err)
	}

	ctx, cancel := requestContext(c, h.cfg.RPCTimeout)
	defer cancel()

	addr, err := h.accountService.Register(ctx, form.Password)
	if err != nil {
		return renderFailure(c, "register", data, err)
	}

	data["Success"] = true
	data["Address"] = addr.Hex()
	return render(c, "register", data)
}

// GET /dashboard/:account
func (h *AccountHandler) Dashboard(c *fiber.Ctx) error {
	return render(c, "dashboard", fiber.Map{
		"Title":      "Личный кабинет",
		"Account":    c.Params("account"),
		"LiveEvents": h.cfg.EventsEnabled(),
	})
}

// AccountBalance показывает нативный баланс аккаунта.
// GET /get_account_balance/:account
func (h *AccountHandler) AccountBalance(c *fiber.Ctx) error {
	data := fiber.Map{"Title": "Баланс аккаунта", "Account": c.Params("account")}

	account, err := dto.ParseAccount(c.Params("account"))
	if err != nil {
		return renderFailure(c, "get_account_balance", data, err)
	}

	ctx, cancel := requestContext(c, h.cfg.RPCTimeout)
	defer cancel()

	balance, err := h.accountService.NativeBalance(ctx, account)
	if err != nil {
		return renderFailure(c, "get_account_balance", data, err)
	}

	data["Balance"] = balance.String()
	data["BalanceUnits"] = chain.FormatUnits(balance, h.cfg.PriceUnitDecimals)
	return render(c, "get_account_balance", data)
}
