package controller

import (
	"faq-assistant-be/internal/dto"
	"faq-assistant-be/internal/pkg/serverutils"
	"faq-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOpsController interface {
	RegisterRoutes(r fiber.Router)
	GetThresholds(ctx *fiber.Ctx) error
	UpdateThresholds(ctx *fiber.Ctx) error
	ReloadCorpus(ctx *fiber.Ctx) error
	EncodeCorpus(ctx *fiber.Ctx) error
	ListUnanswered(ctx *fiber.Ctx) error
}

type opsController struct {
	opsService service.IOpsService
	faqService service.IFaqService
}

func NewOpsController(opsService service.IOpsService, faqService service.IFaqService) IOpsController {
	return &opsController{
		opsService: opsService,
		faqService: faqService,
	}
}

func (c *opsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ops/v1")
	h.Get("thresholds", c.GetThresholds)
	h.Put("thresholds", c.UpdateThresholds)
	h.Post("corpus/reload", c.ReloadCorpus)
	h.Post("corpus/encode", c.EncodeCorpus)
	h.Get("unanswered", c.ListUnanswered)
}

func (c *opsController) GetThresholds(ctx *fiber.Ctx) error {
	res := c.opsService.GetThresholds(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success get thresholds", res))
}

func (c *opsController) UpdateThresholds(ctx *fiber.Ctx) error {
	var req dto.UpdateThresholdsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.opsService.UpdateThresholds(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update thresholds", res))
}

func (c *opsController) ReloadCorpus(ctx *fiber.Ctx) error {
	res, err := c.faqService.ReloadCorpus(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reload corpus", res))
}

func (c *opsController) EncodeCorpus(ctx *fiber.Ctx) error {
	res, err := c.faqService.EncodeCorpus(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success encode corpus", res))
}

func (c *opsController) ListUnanswered(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.opsService.ListUnanswered(ctx.Context(), limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list unanswered questions", res))
}
