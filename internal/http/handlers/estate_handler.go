package handlers

import (
	"github.com/estate-agency/frontend/internal/config"
	"github.com/estate-agency/frontend/internal/http/dto"
	"github.com/estate-agency/frontend/internal/middleware"
	"github.com/estate-agency/frontend/internal/models"
	"github.com/estate-agency/frontend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type EstateHandler struct {
	estateService *services.EstateService
	cfg           *config.Config
	log           *zap.Logger
}

func NewEstateHandler(estateService *services.EstateService, cfg *config.Config, log *zap.Logger) *EstateHandler {
	return &EstateHandler{estateService: estateService, cfg: cfg, log: log}
}

// GET/POST /create_estate/:account
func (h *EstateHandler) CreateEstate(c *fiber.Ctx) error {
	const view = "create_estate"
	data := fiber.Map{
		"Title":       "Создать недвижимость",
		"Account":     c.Params("account"),
		"EstateTypes": models.EstateTypeNames(),
		"Success":     false,
	}
	if !isSubmit(c) {
		return render(c, view, data)
	}

	var form dto.CreateEstateForm
	if err := c.BodyParser(&form); err != nil {
		return renderFailure(c, view, data, err)
	}
	from, err := dto.ParseAccount(c.Params("account"))
	if err != nil {
		return renderFailure(c, view, data, err)
	}
	draft, err := form.Draft()
	if err != nil {
		return renderFailure(c, view, data, err)
	}

	ctx, cancel := requestContext(c, h.cfg.RPCTimeout)
	defer cancel()

	hash, err := h.estateService.CreateEstate(ctx, from, draft)
	if err != nil {
		h.log.Debug("create estate failed", zap.Error(err))
		return renderFailure(c, view, data, err)
	}
	return renderTx(c, view, data, hash)
}

// GET/POST /create_ad/:account
func (h *EstateHandler) CreateAd(c *fiber.Ctx) error {
	const view = "create_ad"
	data := fiber.Map{"Title": "Создать объявление", "Account": c.Params("account"), "Success": false}
	if !isSubmit(c) {
		return render(c, view, data)
	}

	var form dto.CreateAdForm
	if err := c.BodyParser(&form); err != nil {
		return renderFailure(c, view, data, err)
	}
	from, err := dto.ParseAccount(c.Params("account"))
	if err != nil {
		return renderFailure(c, view, data, err)
	}
	draft, err := form.Draft()
	if err != nil {
		return renderFailure(c, view, data, err)
	}

	ctx, cancel := requestContext(c, h.cfg.RPCTimeout)
	defer cancel()

	hash, err := h.estateService.CreateAd(ctx, from, draft)
	if err != nil {
		h.log.Debug("create ad failed", zap.Error(err))
		return renderFailure(c, view, data, err)
	}
	return renderTx(c, view, data, hash)
}

// GET/POST /update_estate_status/:account
func (h *EstateHandler) UpdateEstateStatus(c *fiber.Ctx) error {
	const view = "update_estate_status"
	data := fiber.Map{"Title": "Статус недвижимости", "Account": c.Params("account"), "Success": false}
	if !isSubmit(c) {
		return render(c, view, data)
	}

	var form dto.UpdateEstateStatusForm
	if err := c.BodyParser(&form); err != nil {
		return renderFailure(c, view, data, err)
	}
	from, err := dto.ParseAccount(c.Params("account"))
	if err != nil {
		return renderFailure(c, view, data, err)
	}
	estateID, err := dto.ParseUint("estate_id", form.EstateID)
	if err != nil {
		return renderFailure(c, view, data, err)
	}

	ctx, cancel := requestContext(c, h.cfg.RPCTimeout)
	defer cancel()

	hash, err := h.estateService.UpdateEstateStatus(ctx, from, estateID, form.NewStatus)
	if err != nil {
		return renderFailure(c, view, data, err)
	}
	return renderTx(c, view, data, hash)
}

// GET/POST /update_ad_status/:account
func (h *EstateHandler) UpdateAdStatus(c *fiber.Ctx) error {
	const view = "update_ad_status"
	data := fiber.Map{"Title": "Статус объявления", "Account": c.Params("account"), "Success": false}
	if !isSubmit(c) {
		return render(c, view, data)
	}

	var form dto.UpdateAdStatusForm
	if err := c.BodyParser(&form); err != nil {
		return renderFailure(c, view, data, err)
	}
	from, err := dto.ParseAccount(c.Params("account"))
	if err != nil {
		return renderFailure(c, view, data, err)
	}
	adID, err := dto.ParseUint("ad_id", form.AdID)
	if err != nil {
		return renderFailure(c, view, data, err)
	}

	ctx, cancel := requestContext(c, h.cfg.RPCTimeout)
	defer cancel()

	hash, err := h.estateService.UpdateAdStatus(ctx, from, adID, form.NewStatus)
	if err != nil {
		return renderFailure(c, view, data, err)
	}
	return renderTx(c, view, data, hash)
}

// GET/POST /view_estate_by_id
func (h *EstateHandler) ViewEstate(c *fiber.Ctx) error {
	const view = "view_estate_by_id"
	data := fiber.Map{"Title": "Недвижимость", "Account": middleware.GetSessionAccount(c)}
	if !isSubmit(c) {
		return render(c, view, data)
	}

	var form dto.EstateIDForm
	if err := c.BodyParser(&form); err != nil {
		return renderFailure(c, view, data, err)
	}
	id, err := dto.ParseUint("estate_id", form.EstateID)
	if err != nil {
		return renderFailure(c, view, data, err)
	}

	ctx, cancel := requestContext(c, h.cfg.RPCTimeout)
	defer cancel()

	estate, err := h.estateService.GetEstate(ctx, id)
	if err != nil {
		return renderFailure(c, view, data, err)
	}
	data["Estate"] = estate
	return render(c, view, data)
}

// GET/POST /view_ad_by_id
func (h *EstateHandler) ViewAd(c *fiber.Ctx) error {
	const view = "view_ad_by_id"
	data := fiber.Map{"Title": "Объявление", "Account": middleware.GetSessionAccount(c)}
	if !isSubmit(c) {
		return render(c, view, data)
	}

	var form dto.AdIDForm
	if err := c.BodyParser(&form); err != nil {
		return renderFailure(c, view, data, err)
	}
	id, err := dto.ParseUint("ad_id", form.AdID)
	if err != nil {
		return renderFailure(c, view, data, err)
	}

	ctx, cancel := requestContext(c, h.cfg.RPCTimeout)
	defer cancel()

	ad, err := h.estateService.GetAd(ctx, id)
	if err != nil {
		return renderFailure(c, view, data, err)
	}
	data["Ad"] = ad
	return render(c, view, data)
}
