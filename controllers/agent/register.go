package agent

import (
	"toto/database"
	"toto/helpers"
	"toto/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RegisterAgentRequest struct {
	Username       string          `json:"username"`
	Currency       string          `json:"currency"`
	ParentCode     string          `json:"parent_code"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

func RegisterAgent(c *fiber.Ctx) error {
	var req RegisterAgentRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	if req.CommissionRate.IsNegative() || req.CommissionRate.GreaterThan(decimal.NewFromInt(100)) {
		return helpers.JSONError(c, "INVALID_COMMISSION_RATE")
	}

	if req.ParentCode != "" {
		// The hierarchy is capped at three levels; a parent that already
		// has a grandparent cannot take children.
		depth := 1
		code := req.ParentCode
		for code != "" {
			var parent models.Agent
			if err := database.DB.Where("agent_code = ? AND is_active = true", code).First(&parent).Error; err != nil {
				return helpers.JSONError(c, "PARENT_AGENT_NOT_FOUND")
			}
			depth++
			code = parent.ParentCode
		}
		if depth > 3 {
			return helpers.JSONError(c, "HIERARCHY_DEPTH_EXCEEDED")
		}
	}

	agentCode := helpers.GenerateAgentCode()
	secretKey := uuid.New().String()

	var existing models.Agent
	if err := database.DB.Where("agent_code = ?", agentCode).First(&existing).Error; err == nil {
		return helpers.JSONError(c, "AGENT_CODE_ALREADY_EXISTS")
	}

	agent := models.Agent{
		Username:       req.Username,
		AgentCode:      agentCode,
		SecretKey:      secretKey,
		ParentCode:     req.ParentCode,
		Currency:       req.Currency,
		CommissionRate: req.CommissionRate,
		Balance:        decimal.Zero,
		IsActive:       true,
	}

	if err := database.DB.Create(&agent).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_REGISTER_AGENT")
	}

	return helpers.JSONSuccess(c, "Agent registered successfully", fiber.Map{
		"username":        agent.Username,
		"agent_code":      agent.AgentCode,
		"secret_key":      secretKey,
		"parent_code":     agent.ParentCode,
		"commission_rate": agent.CommissionRate,
		"currency":        agent.Currency,
	})
}
