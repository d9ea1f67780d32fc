package admin

import (
	"time"

	"toto/database"
	"toto/helpers"
	"toto/models"
	"toto/services"

	"github.com/gofiber/fiber/v2"
)

type GenerateSettlementRequest struct {
	AgentCode   string    `json:"agent_code"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}

func GenerateSettlement(c *fiber.Ctx) error {
	var req GenerateSettlementRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	if req.AgentCode == "" {
		batch, err := services.GenerateAllSettlements(req.PeriodStart, req.PeriodEnd)
		if err != nil {
			return helpers.JSONError(c, services.ErrCode(err))
		}
		return helpers.JSONSuccess(c, "Settlement batch completed", batch)
	}

	settlement, err := services.GenerateSettlement(req.AgentCode, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return helpers.JSONError(c, services.ErrCode(err))
	}
	return helpers.JSONSuccess(c, "Settlement generated", settlement)
}

type SettlementActionRequest struct {
	SettlementID uint   `json:"settlement_id"`
	Actor        string `json:"actor"`
	Reason       string `json:"reason"`
	PaymentRef   string `json:"payment_ref"`
}

func ApproveSettlement(c *fiber.Ctx) error {
	var req SettlementActionRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	settlement, err := services.ApproveSettlement(req.SettlementID, req.Actor)
	if err != nil {
		return helpers.JSONError(c, services.ErrCode(err))
	}
	return helpers.JSONSuccess(c, "Settlement approved", settlement)
}

func RejectSettlement(c *fiber.Ctx) error {
	var req SettlementActionRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	settlement, err := services.RejectSettlement(req.SettlementID, req.Actor, req.Reason)
	if err != nil {
		return helpers.JSONError(c, services.ErrCode(err))
	}
	return helpers.JSONSuccess(c, "Settlement rejected", settlement)
}

func PaySettlement(c *fiber.Ctx) error {
	var req SettlementActionRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	settlement, err := services.PaySettlement(req.SettlementID, req.Actor, req.PaymentRef)
	if err != nil {
		return helpers.JSONError(c, services.ErrCode(err))
	}
	return helpers.JSONSuccess(c, "Settlement paid", settlement)
}

type ListSettlementsRequest struct {
	AgentCode string `json:"agent_code"`
	Status    string `json:"status"`
}

func ListSettlements(c *fiber.Ctx) error {
	var req ListSettlementsRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	q := database.DB.Order("id DESC").Limit(100)
	if req.AgentCode != "" {
		q = q.Where("agent_code = ?", req.AgentCode)
	}
	if req.Status != "" {
		q = q.Where("status = ?", req.Status)
	}

	var list []models.Settlement
	if err := q.Find(&list).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_LIST_SETTLEMENTS")
	}
	return helpers.JSONSuccess(c, "Settlements retrieved", list)
}
