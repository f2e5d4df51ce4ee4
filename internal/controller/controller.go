package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ownerIDFromLocals reads the owner id the JWT middleware stored on the
// request. A claim that is not a UUID is a bad token, not a missing resource.
func ownerIDFromLocals(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid user ID in token")
	}
	return userId, nil
}
