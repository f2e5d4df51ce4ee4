package controller

import (
	"context"
	"errors"

	"client-retention-be/internal/dto"
	"client-retention-be/internal/pkg/logger"
	"client-retention-be/internal/pkg/serverutils"
	"client-retention-be/internal/service"
	"client-retention-be/pkg/events"
	pktNats "client-retention-be/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IClientController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	RecordCancellation(ctx *fiber.Ctx) error
}

type clientController struct {
	clientService service.IClientService
	publisher     *pktNats.Publisher
	logger        logger.ILogger
}

func NewClientController(clientService service.IClientService, publisher *pktNats.Publisher, log logger.ILogger) IClientController {
	return &clientController{
		clientService: clientService,
		publisher:     publisher,
		logger:        log,
	}
}

func (c *clientController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/clients")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)

	// Cancellation decisions are their own resource; the route name follows
	// the event-log nature of the data.
	cancel := r.Group("/cancellations")
	cancel.Use(serverutils.JwtMiddleware)
	cancel.Post("", c.RecordCancellation)
}

func (c *clientController) Create(ctx *fiber.Ctx) error {
	userId, err := ownerIDFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateClientRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateStruct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.clientService.CreateClient(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.APIResponse{
		Success: true,
		Code:    201,
		Message: "Client created",
		Data:    res,
	})
}

func (c *clientController) List(ctx *fiber.Ctx) error {
	userId, err := ownerIDFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.clientService.ListClients(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list clients", res))
}

func (c *clientController) RecordCancellation(ctx *fiber.Ctx) error {
	userId, err := ownerIDFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.RecordCancellationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateStruct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.clientService.RecordCancellationDecision(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
		if errors.Is(err, service.ErrClientNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	// Fanout runs only after the transaction committed. A dead bus degrades
	// notifications, never the ledger write.
	c.publishDecision(ctx.UserContext(), userId, res)

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.APIResponse{
		Success: true,
		Code:    201,
		Message: "Cancellation decision recorded",
		Data:    res,
	})
}

func (c *clientController) publishDecision(ctx context.Context, userId uuid.UUID, res *dto.CancellationDecisionResponse) {
	if c.publisher == nil {
		return
	}
	evt := events.NewCancellationRecorded(
		userId.String(),
		res.Client.Id.String(),
		res.Event.Id.String(),
		res.Client.Name,
		res.Event.Accepted,
		res.Event.DiscountOffered,
	)
	if err := c.publisher.Publish(ctx, evt); err != nil {
		c.logger.Warn("ClientController", "Failed to publish cancellation event", map[string]interface{}{"error": err.Error(), "client_id": res.Client.Id.String()})
	}
}
