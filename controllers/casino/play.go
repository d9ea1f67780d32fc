package casino

import (
	"toto/database"
	"toto/helpers"
	"toto/models"
	"toto/services"

	"github.com/gofiber/fiber/v2"
)

// Play runs one instant round for one of the agent's users.
func Play(c *fiber.Ctx) error {
	var req services.InstantPlayRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	agent, ok := c.Locals("agent").(models.Agent)
	if !ok {
		return helpers.JSONError(c, "INVALID_AGENT_SESSION")
	}

	var user models.User
	if err := database.DB.Where("user_code = ? AND agent_code = ?",
		req.UserCode, agent.AgentCode).First(&user).Error; err != nil {
		return helpers.JSONError(c, "USER_NOT_FOUND_OR_UNAUTHORIZED")
	}

	result, err := services.PlayInstant(req)
	if err != nil {
		return helpers.JSONError(c, services.ErrCode(err))
	}

	return helpers.JSONSuccess(c, "Round settled", fiber.Map{
		"round_id":         result.Round.RoundID,
		"game_code":        result.Round.GameCode,
		"server_seed":      result.Round.ServerSeed,
		"server_seed_hash": result.Round.ServerSeedHash,
		"client_seed":      result.Round.ClientSeed,
		"nonce":            result.Round.Nonce,
		"outcome":          result.Outcome,
		"stake":            result.Bet.Stake,
		"payout":           result.Bet.Payout,
		"status":           result.Bet.Status,
	})
}
