package services

import (
	"os"

	"github.com/shopspring/decimal"
)

var (
	defaultMinStake = decimal.NewFromInt(10)
	defaultMaxStake = decimal.NewFromInt(1000000)
)

// GlobalStakeBounds reads the platform-wide stake limits. Per-user and
// per-match bounds narrow these, never widen them.
func GlobalStakeBounds() (min, max decimal.Decimal) {
	min, max = defaultMinStake, defaultMaxStake
	if v := os.Getenv("BET_MIN_STAKE"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && d.IsPositive() {
			min = d
		}
	}
	if v := os.Getenv("BET_MAX_STAKE"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && d.IsPositive() {
			max = d
		}
	}
	return min, max
}
