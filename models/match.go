package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MatchUpcoming  = "UPCOMING"
	MatchLive      = "LIVE"
	MatchFinished  = "FINISHED"
	MatchSettled   = "SETTLED"
	MatchCancelled = "CANCELLED"
)

type Match struct {
	gorm.Model

	MatchCode string    `gorm:"uniqueIndex;size:64" json:"match_code"`
	League    string    `gorm:"size:128" json:"league"`
	HomeTeam  string    `gorm:"size:64" json:"home_team"`
	AwayTeam  string    `gorm:"size:64" json:"away_team"`
	StartTime time.Time `json:"start_time"`

	Status        string `gorm:"size:16;index;default:UPCOMING" json:"status"`
	BettingLocked bool   `gorm:"default:false" json:"betting_locked"`

	// Per-match stake overrides; zero means the global bound applies.
	MinStake decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"min_stake"`
	MaxStake decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"max_stake"`

	TotalBets   int64           `gorm:"default:0" json:"total_bets"`
	TotalStaked decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"total_staked"`

	Result          datatypes.JSON `json:"result"`
	WinnerSelection string         `gorm:"size:64" json:"winner_selection"`
	CancelReason    string         `gorm:"size:255" json:"cancel_reason"`
	SettledAt       *time.Time     `json:"settled_at"`
}
