package services

import (
	"errors"
	"fmt"
	"time"

	"toto/database"
	"toto/events"
	"toto/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GenerateSettlement aggregates one agent's direct players' settled bets
// over the period into a PENDING settlement and attaches the agent's
// unpaid commission entries from that window. A non-rejected settlement
// overlapping the period blocks generation.
func GenerateSettlement(agentCode string, periodStart, periodEnd time.Time) (*models.Settlement, error) {
	if !periodEnd.After(periodStart) {
		return nil, NewValidationError("INVALID_PERIOD")
	}

	// The overlap check and the insert must not interleave with another
	// generation for the same agent.
	unlock := lockAgent(agentCode)
	defer unlock()

	var agent models.Agent
	if err := database.DB.Where("agent_code = ? AND is_active = true", agentCode).First(&agent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var overlapping int64
	if err := database.DB.Model(&models.Settlement{}).
		Where("agent_code = ? AND status <> ? AND period_start < ? AND period_end > ?",
			agentCode, models.SettlementRejected, periodEnd, periodStart).
		Count(&overlapping).Error; err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, ErrDuplicatePeriod
	}

	var bets []models.Bet
	if err := database.DB.
		Where("agent_code = ? AND status IN ? AND created_at >= ? AND created_at < ?",
			agentCode, []string{models.BetWon, models.BetLost}, periodStart, periodEnd).
		Find(&bets).Error; err != nil {
		return nil, err
	}

	totalStaked := decimal.Zero
	totalWinPayout := decimal.Zero
	totalLossStake := decimal.Zero
	for i := range bets {
		totalStaked = totalStaked.Add(bets[i].Stake)
		switch bets[i].Status {
		case models.BetWon:
			totalWinPayout = totalWinPayout.Add(bets[i].PotentialWin)
		case models.BetLost:
			totalLossStake = totalLossStake.Add(bets[i].Stake)
		}
	}

	// Positive profit means the platform gained over the period. Losing
	// stakes against winning payouts is the agreed book formula; voided
	// bets stay out of both sides.
	platformProfit := totalLossStake.Sub(totalWinPayout)

	commissionAmount := decimal.Zero
	if platformProfit.IsPositive() {
		commissionAmount = platformProfit.Mul(agent.CommissionRate).Div(oneHundred).Round(2)
	}

	carryOver := agent.PendingSettlement
	settlementAmount := commissionAmount.Add(carryOver)

	settlement := &models.Settlement{
		AgentCode:        agent.AgentCode,
		PeriodStart:      periodStart,
		PeriodEnd:        periodEnd,
		TotalBets:        int64(len(bets)),
		TotalStaked:      totalStaked,
		TotalWinPayout:   totalWinPayout,
		TotalLossStake:   totalLossStake,
		PlatformProfit:   platformProfit,
		CommissionRate:   agent.CommissionRate,
		CommissionAmount: commissionAmount,
		CarryOver:        carryOver,
		SettlementAmount: settlementAmount,
		Status:           models.SettlementPending,
		RefID:            uuid.New().String(),
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(settlement).Error; err != nil {
			return err
		}
		return tx.Model(&models.Commission{}).
			Where("agent_code = ? AND paid = false AND settlement_id = 0 AND created_at >= ? AND created_at < ?",
				agentCode, periodStart, periodEnd).
			Update("settlement_id", settlement.ID).Error
	})
	if err != nil {
		return nil, err
	}

	events.Emit(events.SettlementGenerated, map[string]any{
		"agent_code": settlement.AgentCode,
		"ref_id":     settlement.RefID,
		"amount":     settlement.SettlementAmount,
	})
	return settlement, nil
}

// ApproveSettlement moves PENDING -> APPROVED.
func ApproveSettlement(settlementID uint, approvedBy string) (*models.Settlement, error) {
	return transitionSettlement(settlementID, models.SettlementPending, map[string]any{
		"status":      models.SettlementApproved,
		"approved_by": approvedBy,
		"approved_at": time.Now(),
	}, "SETTLEMENT_NOT_PENDING")
}

// RejectSettlement moves PENDING -> REJECTED with no financial effect.
func RejectSettlement(settlementID uint, rejectedBy, reason string) (*models.Settlement, error) {
	return transitionSettlement(settlementID, models.SettlementPending, map[string]any{
		"status":      models.SettlementRejected,
		"rejected_by": rejectedBy,
		"reason":      reason,
	}, "SETTLEMENT_NOT_PENDING")
}

func transitionSettlement(id uint, fromStatus string, updates map[string]any, conflictCode string) (*models.Settlement, error) {
	var settlement models.Settlement
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&settlement, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		res := tx.Model(&models.Settlement{}).
			Where("id = ? AND status = ?", id, fromStatus).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return NewStateConflict(conflictCode)
		}
		return tx.First(&settlement, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &settlement, nil
}

// PaySettlement finalizes an APPROVED settlement: records the payment,
// marks attached commissions paid, credits the agent's balance with the
// settlement amount and resets the pending carry to zero. PAID is
// terminal.
func PaySettlement(settlementID uint, paidBy, paymentRef string) (*models.Settlement, error) {
	var probe models.Settlement
	if err := database.DB.First(&probe, settlementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	unlock := lockAgent(probe.AgentCode)
	defer unlock()

	var settlement models.Settlement
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&settlement, settlementID).Error; err != nil {
			return err
		}

		now := time.Now()
		res := tx.Model(&models.Settlement{}).
			Where("id = ? AND status = ?", settlementID, models.SettlementApproved).
			Updates(map[string]any{
				"status":      models.SettlementPaid,
				"paid_by":     paidBy,
				"paid_at":     now,
				"payment_ref": paymentRef,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return NewStateConflict("SETTLEMENT_NOT_APPROVED")
		}

		if err := tx.Model(&models.Commission{}).
			Where("settlement_id = ?", settlementID).
			Update("paid", true).Error; err != nil {
			return err
		}

		var agent models.Agent
		if err := tx.Where("agent_code = ?", settlement.AgentCode).First(&agent).Error; err != nil {
			return err
		}
		if settlement.SettlementAmount.IsPositive() {
			if err := AgentCredit(tx, &agent, settlement.SettlementAmount, models.TrxSettlement,
				fmt.Sprintf("Settlement %s", settlement.RefID), settlement.RefID); err != nil {
				return err
			}
		}
		if err := tx.Model(&agent).Update("pending_settlement", decimal.Zero).Error; err != nil {
			return err
		}

		return tx.First(&settlement, settlementID).Error
	})
	if err != nil {
		return nil, err
	}

	events.Emit(events.TransferStatus, map[string]any{
		"agent_code": settlement.AgentCode,
		"ref_id":     settlement.RefID,
		"status":     models.SettlementPaid,
	})
	return &settlement, nil
}

type AgentError struct {
	AgentCode string `json:"agent_code"`
	Code      string `json:"code"`
}

type SettlementBatchResult struct {
	Generated int          `json:"generated"`
	Skipped   int          `json:"skipped"`
	Failed    int          `json:"failed"`
	Errors    []AgentError `json:"errors,omitempty"`
}

// GenerateAllSettlements runs generation for every active agent. One
// agent's failure is recorded and does not stop the batch; an agent whose
// period is already covered counts as a skip.
func GenerateAllSettlements(periodStart, periodEnd time.Time) (*SettlementBatchResult, error) {
	var agents []models.Agent
	if err := database.DB.Where("is_active = true").Find(&agents).Error; err != nil {
		return nil, err
	}

	batch := &SettlementBatchResult{}
	for i := range agents {
		_, err := GenerateSettlement(agents[i].AgentCode, periodStart, periodEnd)
		switch {
		case err == nil:
			batch.Generated++
		case errors.Is(err, ErrDuplicatePeriod):
			batch.Skipped++
		default:
			batch.Failed++
			batch.Errors = append(batch.Errors, AgentError{AgentCode: agents[i].AgentCode, Code: ErrCode(err)})
		}
	}
	return batch, nil
}
