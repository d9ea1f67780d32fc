package services

import (
	"errors"

	"toto/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Agent commission walks at most three levels up from the bettor's agent.
const maxCommissionLevels = 3

var oneHundred = decimal.NewFromInt(100)

// CascadeCommission records one commission entry per configured level of
// the winning bettor's agent chain. Every level earns its own rate off the
// full win amount, so the levels are not a split of a single pool and can
// sum past the win amount; that is the agreed revenue model.
//
// Each agent reached is locked via locks before its row is read, and the
// caller releases them after commit.
func CascadeCommission(tx *gorm.DB, bet *models.Bet, winAmount decimal.Decimal, agentCode string, locks *chainLocks) error {
	code := agentCode
	for level := 1; level <= maxCommissionLevels && code != ""; level++ {
		locks.take(code)

		var agent models.Agent
		err := tx.Where("agent_code = ? AND is_active = true", code).First(&agent).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		amount := winAmount.Mul(agent.CommissionRate).Div(oneHundred).Round(2)
		if amount.IsPositive() {
			if err := tx.Create(&models.Commission{
				BetID:     bet.ID,
				BetRefID:  bet.RefID,
				UserCode:  bet.UserCode,
				AgentCode: agent.AgentCode,
				Level:     level,
				Rate:      agent.CommissionRate,
				WinAmount: winAmount,
				Amount:    amount,
			}).Error; err != nil {
				return err
			}

			if err := tx.Model(&agent).Updates(map[string]any{
				"total_commission":   agent.TotalCommission.Add(amount),
				"pending_settlement": agent.PendingSettlement.Add(amount),
			}).Error; err != nil {
				return err
			}
		}

		code = agent.ParentCode
	}
	return nil
}
