package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	SettlementPending  = "PENDING"
	SettlementApproved = "APPROVED"
	SettlementPaid     = "PAID"
	SettlementRejected = "REJECTED"
)

// Settlement aggregates one agent's bet activity over a period into a
// payable record. PENDING -> APPROVED -> PAID, or PENDING -> REJECTED;
// PAID and REJECTED are terminal.
type Settlement struct {
	gorm.Model

	AgentCode   string    `gorm:"size:32;index" json:"agent_code"`
	PeriodStart time.Time `gorm:"index" json:"period_start"`
	PeriodEnd   time.Time `gorm:"index" json:"period_end"`

	TotalBets      int64           `json:"total_bets"`
	TotalStaked    decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"total_staked"`
	TotalWinPayout decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"total_win_payout"`
	TotalLossStake decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"total_loss_stake"`

	PlatformProfit   decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"platform_profit"`
	CommissionRate   decimal.Decimal `gorm:"type:numeric(5,2);default:0" json:"commission_rate"`
	CommissionAmount decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"commission_amount"`
	CarryOver        decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"carry_over"`
	SettlementAmount decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"settlement_amount"`

	Status string `gorm:"size:16;index;default:PENDING" json:"status"`

	ApprovedBy string     `gorm:"size:64" json:"approved_by"`
	ApprovedAt *time.Time `json:"approved_at"`
	PaidBy     string     `gorm:"size:64" json:"paid_by"`
	PaidAt     *time.Time `json:"paid_at"`
	PaymentRef string     `gorm:"size:128" json:"payment_ref"`
	RejectedBy string     `gorm:"size:64" json:"rejected_by"`
	Reason     string     `gorm:"size:255" json:"reason"`

	RefID string `gorm:"size:64;index"`

	Commissions []Commission `gorm:"foreignKey:SettlementID"`
}
