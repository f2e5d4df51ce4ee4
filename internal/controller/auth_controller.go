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
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
}

type authController struct {
	service   service.IAuthService
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

func NewAuthController(service service.IAuthService, publisher *pktNats.Publisher, log logger.ILogger) IAuthController {
	return &authController{
		service:   service,
		publisher: publisher,
		logger:    log,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/register", c.Register)
	h.Post("/login", c.Login)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateStruct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Register(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	c.publishRegistered(ctx.UserContext(), res.Id.String(), res.Email, req.FullName)

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.APIResponse{
		Success: true,
		Code:    201,
		Message: "User registered successfully",
		Data:    res,
	})
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateStruct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrTooManyAttempts) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(serverutils.ErrorResponse(429, err.Error()))
		}
		if errors.Is(err, service.ErrInvalidLogin) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

// publishRegistered emits the signup event after the account exists. The bus
// being down is a log line, not a failed registration.
func (c *authController) publishRegistered(ctx context.Context, userId, email, fullName string) {
	if c.publisher == nil {
		return
	}
	evt := events.NewUserRegistered(userId, email, fullName)
	if err := c.publisher.Publish(ctx, evt); err != nil {
		c.logger.Warn("AuthController", "Failed to publish registration event", map[string]interface{}{"error": err.Error()})
	}
}
