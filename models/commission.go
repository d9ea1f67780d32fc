package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Commission is one agent's cut of one winning bet. Each hierarchy level
// gets its own row, computed off the full win amount at that level's rate.
type Commission struct {
	gorm.Model

	BetID     uint   `gorm:"index"`
	BetRefID  string `gorm:"size:64;index"`
	UserCode  string `gorm:"size:32;index"`
	AgentCode string `gorm:"size:32;index"`

	// 1 = direct agent, 2 = master, 3 = super master.
	Level int `gorm:"index"`

	Rate      decimal.Decimal `gorm:"type:numeric(5,2)" json:"rate"`
	WinAmount decimal.Decimal `gorm:"type:numeric(18,2)" json:"win_amount"`
	Amount    decimal.Decimal `gorm:"type:numeric(18,2)" json:"amount"`

	// SettlementID is set when the commission is attached to a settlement;
	// Paid flips only when that settlement is paid.
	SettlementID uint `gorm:"index;default:0"`
	Paid         bool `gorm:"default:false;index"`
}
