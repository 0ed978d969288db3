package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pinpoint-be/internal/apperror"
	"pinpoint-be/internal/pkg/serverutils"
	"pinpoint-be/internal/service"
)

type IResultController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
}

type resultController struct {
	resultService service.IResultService
}

func NewResultController(resultService service.IResultService) IResultController {
	return &resultController{
		resultService: resultService,
	}
}

func (c *resultController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/result/v1")
	h.Get(":sessionId", c.Show)
}

func (c *resultController) Show(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return apperror.Validationf("sessionId must be a valid uuid")
	}

	// res is nil when no plan exists yet; the session itself was verified.
	res, err := c.resultService.Show(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show ai result", res))
}
