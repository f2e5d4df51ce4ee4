package controller

import (
	"fmt"

	"client-retention-be/internal/config"
	"client-retention-be/internal/pkg/serverutils"
	"client-retention-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Callback(ctx *fiber.Ctx) error
}

type oauthController struct {
	service   service.IOAuthService
	clientURL string
}

func NewOAuthController(service service.IOAuthService, cfg *config.Config) IOAuthController {
	return &oauthController{
		service:   service,
		clientURL: cfg.App.ClientURL,
	}
}

func (c *oauthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Get("/:provider", c.Login)
	h.Get("/:provider/callback", c.Callback)
}

func (c *oauthController) Login(ctx *fiber.Ctx) error {
	url, err := c.service.GetLoginURL(ctx.Params("provider"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.Redirect(url)
}

func (c *oauthController) Callback(ctx *fiber.Ctx) error {
	code := ctx.Query("code")
	if code == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Missing code"))
	}

	res, err := c.service.HandleCallback(ctx.Context(), ctx.Params("provider"), code)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	// Hand the token back to the frontend via redirect; the SPA picks it up
	// from the fragment so it never hits server logs.
	return ctx.Redirect(fmt.Sprintf("%s/auth/callback#token=%s", c.clientURL, res.Token))
}
