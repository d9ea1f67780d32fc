package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	GameCoinFlip  = "COINFLIP"
	GameDice      = "DICE"
	GameHiLo      = "HILO"
	GameTeenPatti = "TEEN_PATTI"
)

const (
	RoundOpen    = "OPEN"
	RoundClosed  = "CLOSED"
	RoundSettled = "SETTLED"
)

type CasinoGame struct {
	gorm.Model

	GameCode string          `gorm:"uniqueIndex;size:32" json:"game_code"`
	Name     string          `gorm:"size:64" json:"name"`
	MinStake decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"min_stake"`
	MaxStake decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"max_stake"`

	// Return-to-player percentage; payout multipliers scale by RTP/100.
	RTP     decimal.Decimal `gorm:"type:numeric(5,2);default:97" json:"rtp"`
	Enabled bool            `gorm:"default:true" json:"enabled"`
}

// CasinoRound is one play of a game. The server seed hash is the fairness
// commitment; the seed itself is only revealed once the round is settled.
type CasinoRound struct {
	gorm.Model

	RoundID  string `gorm:"uniqueIndex;size:36" json:"round_id"`
	GameCode string `gorm:"size:32;index" json:"game_code"`
	UserCode string `gorm:"size:32;index" json:"user_code"`

	ServerSeed     string `gorm:"size:128" json:"server_seed"`
	ServerSeedHash string `gorm:"size:64" json:"server_seed_hash"`
	ClientSeed     string `gorm:"size:128" json:"client_seed"`
	Nonce          uint64 `gorm:"default:0" json:"nonce"`

	Status    string         `gorm:"size:16;index;default:OPEN" json:"status"`
	Outcome   datatypes.JSON `json:"outcome"`
	SettledAt *time.Time     `json:"settled_at"`
}

type CasinoBet struct {
	gorm.Model

	RoundID   string `gorm:"size:36;index"`
	GameCode  string `gorm:"size:32;index"`
	UserID    uint   `gorm:"index"`
	UserCode  string `gorm:"size:32;index"`
	AgentCode string `gorm:"size:32;index"`

	Selection  string          `gorm:"size:64" json:"selection"`
	Stake      decimal.Decimal `gorm:"type:numeric(18,2)" json:"stake"`
	Multiplier decimal.Decimal `gorm:"type:numeric(10,4);default:0" json:"multiplier"`
	Payout     decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"payout"`

	Status    string     `gorm:"size:16;index;default:PENDING" json:"status"`
	SettledAt *time.Time `json:"settled_at"`
	RefID     string     `gorm:"size:64;index"`
}
