package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const TrxSettlement = "SETTLEMENT"

type Agent struct {
	gorm.Model

	Username  string `gorm:"uniqueIndex;size:32" json:"username"`
	AgentCode string `gorm:"uniqueIndex;size:32" json:"agent_code"`
	SecretKey string `gorm:"size:128" json:"-"`

	// ParentCode points at the agent one level up. The hierarchy is at
	// most three levels deep: agent -> master -> super master.
	ParentCode string `gorm:"index;size:32" json:"parent_code"`

	Balance           decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"balance"`
	CommissionRate    decimal.Decimal `gorm:"type:numeric(5,2);default:0" json:"commission_rate"`
	TotalCommission   decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"total_commission"`
	PendingSettlement decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"pending_settlement"`

	Currency string `gorm:"size:8" json:"currency"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	Users        []User             `gorm:"foreignKey:AgentCode;references:AgentCode"`
	Transactions []AgentTransaction `gorm:"foreignKey:AgentID"`
}

type AgentTransaction struct {
	gorm.Model

	AgentID       uint            `gorm:"index"`
	AgentCode     string          `gorm:"index;size:32"`
	TrxType       string          `gorm:"size:16"`
	Amount        decimal.Decimal `gorm:"type:numeric(18,2)" json:"amount"`
	BalanceBefore decimal.Decimal `gorm:"type:numeric(18,2)" json:"balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"type:numeric(18,2)" json:"balance_after"`
	Currency      string          `gorm:"size:8"`
	Note          string          `gorm:"size:255"`
	RefID         string          `gorm:"size:64"`
}
