package bets

import (
	"toto/database"
	"toto/helpers"
	"toto/models"
	"toto/services"

	"github.com/gofiber/fiber/v2"
)

// PlaceBet accepts a wager for one of the authenticated agent's users.
func PlaceBet(c *fiber.Ctx) error {
	var req services.PlaceBetRequest
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

	bet, err := services.PlaceBet(req)
	if err != nil {
		return helpers.JSONError(c, services.ErrCode(err))
	}

	return helpers.JSONSuccess(c, "Bet placed successfully", fiber.Map{
		"bet_id":        bet.ID,
		"ref_id":        bet.RefID,
		"match_code":    bet.MatchCode,
		"stake":         bet.Stake,
		"odds":          bet.Odds,
		"potential_win": bet.PotentialWin,
		"status":        bet.Status,
	})
}

type ListBetsRequest struct {
	UserCode string `json:"user_code"`
	Status   string `json:"status"`
}

func ListBets(c *fiber.Ctx) error {
	var req ListBetsRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.UserCode == "" {
		return helpers.JSONError(c, "USER_CODE_REQUIRED")
	}

	agent, ok := c.Locals("agent").(models.Agent)
	if !ok {
		return helpers.JSONError(c, "INVALID_AGENT_SESSION")
	}

	q := database.DB.Where("user_code = ? AND agent_code = ?", req.UserCode, agent.AgentCode)
	if req.Status != "" {
		q = q.Where("status = ?", req.Status)
	}

	var list []models.Bet
	if err := q.Order("id DESC").Limit(100).Find(&list).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_LIST_BETS")
	}

	return helpers.JSONSuccess(c, "Bets retrieved successfully", list)
}
