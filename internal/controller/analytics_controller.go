package controller

import (
	"client-retention-be/internal/pkg/serverutils"
	"client-retention-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAnalyticsController interface {
	RegisterRoutes(r fiber.Router)
	RetentionSummary(ctx *fiber.Ctx) error
}

type analyticsController struct {
	analyticsService service.IAnalyticsService
}

func NewAnalyticsController(analyticsService service.IAnalyticsService) IAnalyticsController {
	return &analyticsController{
		analyticsService: analyticsService,
	}
}

func (c *analyticsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/analytics")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.RetentionSummary)
}

func (c *analyticsController) RetentionSummary(ctx *fiber.Ctx) error {
	userId, err := ownerIDFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.analyticsService.RetentionSummary(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success retention summary", res))
}
