package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	BetPending = "PENDING"
	BetWon     = "WON"
	BetLost    = "LOST"
	BetVoid    = "VOID"

	SideBack = "BACK"
	SideLay  = "LAY"
)

const (
	BetTypeMatchWinner = "MATCH_WINNER"
	BetTypeTopBatsman  = "TOP_BATSMAN"
	BetTypeTotalRuns   = "TOTAL_RUNS"
	BetTypeSessionRuns = "SESSION_RUNS"
	BetTypeFancy       = "FANCY"
	BetTypePlayerPerf  = "PLAYER_PERF"
)

// Bet is created PENDING and moved exactly once to WON, LOST or VOID.
type Bet struct {
	gorm.Model

	UserID    uint   `gorm:"index"`
	UserCode  string `gorm:"size:32;index"`
	AgentCode string `gorm:"size:32;index"`
	MatchID   uint   `gorm:"index"`
	MatchCode string `gorm:"size:64;index"`

	BetType   string `gorm:"size:32;index" json:"bet_type"`
	Selection string `gorm:"size:64" json:"selection"`
	Side      string `gorm:"size:8;default:BACK" json:"side"`

	Stake        decimal.Decimal `gorm:"type:numeric(18,2)" json:"stake"`
	Odds         decimal.Decimal `gorm:"type:numeric(10,3)" json:"odds"`
	PotentialWin decimal.Decimal `gorm:"type:numeric(18,2)" json:"potential_win"`

	Status     string     `gorm:"size:16;index;default:PENDING" json:"status"`
	SettledAt  *time.Time `json:"settled_at"`
	VoidReason string     `gorm:"size:255" json:"void_reason"`
	RefID      string     `gorm:"size:64;index"`
}
