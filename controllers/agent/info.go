package agent

import (
	"toto/database"
	"toto/helpers"
	"toto/models"

	"github.com/gofiber/fiber/v2"
)

type AgentInfoRequest struct {
	AgentCode string `json:"agent_code"`
	SecretKey string `json:"secret_key"`
}

func AgentInfo(c *fiber.Ctx) error {
	var req AgentInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	if req.AgentCode == "" || req.SecretKey == "" {
		return helpers.JSONError(c, "AGENT_CODE_AND_SECRET_REQUIRED")
	}

	var agent models.Agent
	if err := database.DB.Where("agent_code = ? AND secret_key = ? AND is_active = true",
		req.AgentCode, req.SecretKey).First(&agent).Error; err != nil {
		return helpers.JSONError(c, "INVALID_AGENT_CREDENTIALS")
	}

	return helpers.JSONSuccess(c, "Agent info retrieved", fiber.Map{
		"username":           agent.Username,
		"agent_code":         agent.AgentCode,
		"parent_code":        agent.ParentCode,
		"balance":            agent.Balance,
		"commission_rate":    agent.CommissionRate,
		"total_commission":   agent.TotalCommission,
		"pending_settlement": agent.PendingSettlement,
		"currency":           agent.Currency,
	})
}
