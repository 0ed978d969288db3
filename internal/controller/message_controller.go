package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pinpoint-be/internal/apperror"
	"pinpoint-be/internal/dto"
	"pinpoint-be/internal/pkg/serverutils"
	"pinpoint-be/internal/service"
)

type IMessageController interface {
	RegisterRoutes(r fiber.Router)
	Append(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type messageController struct {
	messageService service.IMessageService
}

func NewMessageController(messageService service.IMessageService) IMessageController {
	return &messageController{
		messageService: messageService,
	}
}

func (c *messageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/message/v1")
	h.Post("", c.Append)
	h.Get(":sessionId", c.List)
}

func (c *messageController) Append(ctx *fiber.Ctx) error {
	var req dto.AppendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.messageService.Append(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success append message", res))
}

func (c *messageController) List(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return apperror.Validationf("sessionId must be a valid uuid")
	}

	res, err := c.messageService.List(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list messages", res))
}
