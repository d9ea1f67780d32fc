package user

import (
	"toto/helpers"
	"toto/models"
	"toto/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	UserCode string          `json:"user_code"`
	Amount   decimal.Decimal `json:"amount"`
	Note     string          `json:"note"`
}

func TransferBalance(c *fiber.Ctx) error {
	var req TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	if req.UserCode == "" || req.Amount.IsZero() {
		return helpers.JSONError(c, "USER_CODE_AND_AMOUNT_REQUIRED")
	}

	agent, ok := c.Locals("agent").(models.Agent)
	if !ok {
		return helpers.JSONError(c, "INVALID_AGENT_SESSION")
	}

	result, err := services.Transfer(agent.AgentCode, req.UserCode, req.Amount, req.Note)
	if err != nil {
		return helpers.JSONError(c, services.ErrCode(err))
	}

	return helpers.JSONSuccess(c, "Balance updated successfully", fiber.Map{
		"user_code": result.UserCode,
		"trx_type":  result.TrxType,
		"balance":   result.Balance,
		"ref_id":    result.RefID,
	})
}
