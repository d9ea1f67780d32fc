package casino

import (
	"toto/helpers"
	"toto/services"

	"github.com/gofiber/fiber/v2"
)

type VerifyRequest struct {
	RoundID string `json:"round_id"`
}

// Verify lets a player recheck a settled round's fairness commitment.
func Verify(c *fiber.Ctx) error {
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.RoundID == "" {
		return helpers.JSONError(c, "ROUND_ID_REQUIRED")
	}

	verification, err := services.VerifyRound(req.RoundID)
	if err != nil {
		return helpers.JSONError(c, services.ErrCode(err))
	}

	return helpers.JSONSuccess(c, "Round verification", verification)
}
