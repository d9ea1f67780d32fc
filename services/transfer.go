package services

import (
	"errors"

	"toto/database"
	"toto/events"
	"toto/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransferResult struct {
	UserCode string          `json:"user_code"`
	TrxType  string          `json:"trx_type"`
	Amount   decimal.Decimal `json:"amount"`
	Balance  decimal.Decimal `json:"balance"`
	RefID    string          `json:"ref_id"`
}

// Transfer moves funds between an agent and one of its users. A positive
// amount deposits to the user from the agent's balance, a negative amount
// withdraws back. Both sides' balance changes and transaction rows commit
// together.
func Transfer(agentCode, userCode string, amount decimal.Decimal, note string) (*TransferResult, error) {
	if amount.IsZero() {
		return nil, NewValidationError("AMOUNT_MUST_BE_NONZERO")
	}

	abs := amount.Abs()
	trxType := models.TrxDeposit
	if amount.IsNegative() {
		trxType = models.TrxWithdraw
	}
	if note == "" {
		note = "Balance transfer via API"
	}
	refID := uuid.New().String()

	var result *TransferResult
	unlock := lockAccount(userCode)
	defer unlock()
	unlockAgent := lockAgent(agentCode)
	defer unlockAgent()

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var agent models.Agent
		if err := tx.Where("agent_code = ? AND is_active = true", agentCode).First(&agent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var user models.User
		if err := tx.Where("user_code = ? AND agent_code = ? AND is_active = true",
			userCode, agentCode).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if trxType == models.TrxDeposit {
			if err := AgentDebit(tx, &agent, abs, trxType, note+" (user: "+user.UserCode+")", refID); err != nil {
				return err
			}
			if err := Credit(tx, &user, abs, trxType, note, refID); err != nil {
				return err
			}
		} else {
			if err := Debit(tx, &user, abs, trxType, note, refID); err != nil {
				return err
			}
			if err := AgentCredit(tx, &agent, abs, trxType, note+" (user: "+user.UserCode+")", refID); err != nil {
				return err
			}
		}

		result = &TransferResult{
			UserCode: user.UserCode,
			TrxType:  trxType,
			Amount:   abs,
			Balance:  user.Balance,
			RefID:    refID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	events.Emit(events.TransferStatus, map[string]any{
		"user_code": result.UserCode,
		"trx_type":  result.TrxType,
		"ref_id":    result.RefID,
	})
	events.Emit(events.BalanceChanged, map[string]any{
		"user_code": result.UserCode,
		"reason":    result.TrxType,
		"ref_id":    result.RefID,
	})
	return result, nil
}
