package handlers

import (
	"strconv"
	"time"

	"github.com/estate-agency/frontend/internal/chain"
	"github.com/estate-agency/frontend/internal/config"
	"github.com/estate-agency/frontend/internal/http/dto"
	"github.com/estate-agency/frontend/internal/models"
	"github.com/estate-agency/frontend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
	txService      *services.TxService
	cfg            *config.Config
	log            *zap.Logger
}

func NewPaymentHandler(paymentService *services.PaymentService, txService *services.TxService, cfg *config.Config, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, txService: txService, cfg: cfg, log: log}
}

// ContractBalance показывает баланс аккаунта внутри контракта.
// GET /get_balance/:account
func (h *PaymentHandler) ContractBalance(c *fiber.Ctx) error {
	const view = "get_balance"
	data := fiber.Map{"Title": "Баланс в контракте", "Account": c.Params("account")}

	account, err := dto.ParseAccount(c.Params("account"))
	if err != nil {
		return renderFailure(c, view, data, err)
	}

	ctx, cancel := requestContext(c, h.cfg.RPCTimeout)
	defer cancel()

	balance, err := h.paymentService.ContractBalance(ctx, account)
	if err != nil {
		return renderFailure(c, view, data, err)
	}

	data["Balance"] = balance.String()
	data["BalanceUnits"] = chain.FormatUnits(balance, h.paymentService.PriceDecimals())
	return render(c, view, data)
}

// GET/POST /purchase_estate/:account
func (h *PaymentHandler) PurchaseEstate(c *fiber.Ctx) error {
	const view = "purchase_estate"
	data := fiber.Map{"Title": "Покупка", "Account": c.Params("account"), "Success": false}
	if !isSubmit(c) {
		return render(c, view, data)
	}

	var form dto.AdIDForm
	if err := c.BodyParser(&form); err != nil {
		return renderFailure(c, view, data, err)
	}
	buyer, err := dto.ParseAccount(c.Params("account"))
	if err != nil {
		return renderFailure(c, view, data, err)
	}
	adID, err := dto.ParseUint("ad_id", form.AdID)
	if err != nil {
		return renderFailure(c, view, data, err)
	}

	ctx, cancel := requestContext(c, h.cfg.RPCTimeout)
	defer cancel()

	hash, err := h.paymentService.PurchaseEstate(ctx, buyer, adID)
	if err != nil {
		h.log.Debug("purchase failed", zap.String("account", buyer.Hex()), zap.Error(err))
		return renderFailure(c, view, data, err)
	}
	return renderTx(c, view, data, hash)
}

// GET/POST /withdraw_funds/:account
func (h *PaymentHandler) WithdrawFunds(c *fiber.Ctx) error {
	const view = "withdraw_funds"
	data := fiber.Map{"Title": "Вывод средств", "Account": c.Params("account"), "Success": false}
	if !isSubmit(c) {
		return render(c, view, data)
	}

	account, err := dto.ParseAccount(c.Params("account"))
	if err != nil {
		return renderFailure(c, view, data, err)
	}

	ctx, cancel := requestContext(c, h.cfg.RPCTimeout)
	defer cancel()

	hash, err := h.paymentService.WithdrawFunds(ctx, account)
	if err != nil {
		return renderFailure(c, view, data, err)
	}
	return renderTx(c, view, data, hash)
}

// Transactions показывает журнал отправленных транзакций аккаунта.
// GET /transactions/:account
func (h *PaymentHandler) Transactions(c *fiber.Ctx) error {
	const view = "transactions"
	data := fiber.Map{"Title": "История транзакций", "Account": c.Params("account")}

	account, err := dto.ParseAccount(c.Params("account"))
	if err != nil {
		return renderFailure(c, view, data, err)
	}

	txs, err := h.txService.History(c.UserContext(), account)
	if err != nil {
		return renderFailure(c, view, data, err)
	}

	data["Transactions"] = toTxViews(txs)
	return render(c, view, data)
}

func toTxViews(txs []models.TxRecord) []dto.TxView {
	views := make([]dto.TxView, 0, len(txs))
	for _, tx := range txs {
		v := dto.TxView{
			Hash:      tx.Hash,
			Action:    tx.Action,
			ValueWei:  tx.ValueWei,
			Status:    tx.Status,
			CreatedAt: tx.CreatedAt.Format(time.RFC3339),
		}
		if tx.BlockNumber != nil {
			v.Block = strconv.FormatInt(*tx.BlockNumber, 10)
		}
		views = append(views, v)
	}
	return views
}
