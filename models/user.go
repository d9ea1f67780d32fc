package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TrxBetStake    = "BET_STAKE"
	TrxBetWin      = "BET_WIN"
	TrxBetRefund   = "BET_REFUND"
	TrxCasinoStake = "CASINO_STAKE"
	TrxCasinoWin   = "CASINO_WIN"
	TrxDeposit     = "DEPOSIT"
	TrxWithdraw    = "WITHDRAW"
)

type User struct {
	gorm.Model

	UserCode  string          `gorm:"uniqueIndex;size:32" json:"user_code"`
	AgentCode string          `gorm:"index;size:32" json:"agent_code"`
	Balance   decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"balance"`

	// CreditLimit extends the debit floor below zero. Zero means no credit.
	CreditLimit decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"credit_limit"`

	// Personal stake bounds; zero means only the global bounds apply.
	MinBet decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"min_bet"`
	MaxBet decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"max_bet"`

	// Cap on total pending stake on a single match. Zero = unlimited.
	MatchExposureLimit decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"match_exposure_limit"`

	Country   string `gorm:"size:64" json:"country"`
	Currency  string `gorm:"size:8" json:"currency"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`
	BetLocked bool   `gorm:"default:false" json:"bet_locked"`

	Transactions []UserTransaction `gorm:"foreignKey:UserID"`
}

// UserTransaction is append-only: a row is written once, alongside the
// balance change it describes, and never updated.
type UserTransaction struct {
	gorm.Model

	UserID        uint            `gorm:"index"`
	AgentCode     string          `gorm:"index;size:32"`
	UserCode      string          `gorm:"size:32;index"`
	TrxType       string          `gorm:"size:16;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(18,2)" json:"amount"`
	BalanceBefore decimal.Decimal `gorm:"type:numeric(18,2)" json:"balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"type:numeric(18,2)" json:"balance_after"`
	Currency      string          `gorm:"size:8" json:"currency"`
	Note          string          `gorm:"size:255"`
	RefID         string          `gorm:"size:64;index"`
}
