package services

import (
	"encoding/json"
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

type PlaceBetRequest struct {
	UserCode  string          `json:"user_code"`
	MatchCode string          `json:"match_code"`
	BetType   string          `json:"bet_type"`
	Selection string          `json:"selection"`
	Side      string          `json:"side"`
	Stake     decimal.Decimal `json:"stake"`
	Odds      decimal.Decimal `json:"odds"`
}

// PlaceBet validates the request, then debits the stake, creates the
// PENDING bet and bumps the match totals as one transaction under the
// account lock.
func PlaceBet(req PlaceBetRequest) (*models.Bet, error) {
	if req.UserCode == "" || req.MatchCode == "" || req.BetType == "" || req.Selection == "" {
		return nil, NewValidationError("MISSING_REQUIRED_FIELD")
	}
	if !req.Stake.IsPositive() {
		return nil, NewValidationError("STAKE_MUST_BE_POSITIVE")
	}
	if req.Odds.LessThanOrEqual(decimal.NewFromInt(1)) {
		return nil, NewValidationError("ODDS_MUST_EXCEED_ONE")
	}

	side := req.Side
	if side == "" {
		side = models.SideBack
	}
	if side != models.SideBack && side != models.SideLay {
		return nil, NewValidationError("INVALID_SIDE")
	}

	var bet *models.Bet
	unlock := lockAccount(req.UserCode)
	defer unlock()

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("user_code = ?", req.UserCode).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !user.IsActive {
			return NewStateConflict("USER_INACTIVE")
		}
		if user.BetLocked {
			return NewStateConflict("USER_BET_LOCKED")
		}

		var match models.Match
		if err := tx.Where("match_code = ?", req.MatchCode).First(&match).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		switch match.Status {
		case models.MatchUpcoming, models.MatchLive:
		default:
			return NewStateConflict("MATCH_NOT_OPEN_FOR_BETTING")
		}
		if match.BettingLocked {
			return NewStateConflict("MATCH_BETTING_LOCKED")
		}

		if err := checkStakeBounds(req.Stake, &user, &match); err != nil {
			return err
		}
		if err := checkMatchExposure(tx, &user, &match, req.Stake); err != nil {
			return err
		}

		potentialWin := req.Stake.Mul(req.Odds).Round(2)
		refID := uuid.New().String()

		if err := Debit(tx, &user, req.Stake, models.TrxBetStake,
			fmt.Sprintf("Bet stake on %s", match.MatchCode), refID); err != nil {
			return err
		}

		bet = &models.Bet{
			UserID:       user.ID,
			UserCode:     user.UserCode,
			AgentCode:    user.AgentCode,
			MatchID:      match.ID,
			MatchCode:    match.MatchCode,
			BetType:      req.BetType,
			Selection:    req.Selection,
			Side:         side,
			Stake:        req.Stake,
			Odds:         req.Odds,
			PotentialWin: potentialWin,
			Status:       models.BetPending,
			RefID:        refID,
		}
		if err := tx.Create(bet).Error; err != nil {
			return err
		}

		return tx.Model(&match).Updates(map[string]any{
			"total_bets":   gorm.Expr("total_bets + 1"),
			"total_staked": gorm.Expr("total_staked + ?", req.Stake),
		}).Error
	})
	if err != nil {
		return nil, err
	}

	events.Emit(events.BalanceChanged, map[string]any{
		"user_code": req.UserCode,
		"reason":    models.TrxBetStake,
		"ref_id":    bet.RefID,
	})
	return bet, nil
}

func checkStakeBounds(stake decimal.Decimal, user *models.User, match *models.Match) error {
	min, max := GlobalStakeBounds()
	if stake.LessThan(min) {
		return NewValidationError("STAKE_BELOW_MINIMUM")
	}
	if stake.GreaterThan(max) {
		return NewValidationError("STAKE_ABOVE_MAXIMUM")
	}

	if user.MinBet.IsPositive() && stake.LessThan(user.MinBet) {
		return NewValidationError("STAKE_BELOW_USER_MINIMUM")
	}
	if user.MaxBet.IsPositive() && stake.GreaterThan(user.MaxBet) {
		return NewValidationError("STAKE_ABOVE_USER_MAXIMUM")
	}

	if match.MinStake.IsPositive() && stake.LessThan(match.MinStake) {
		return NewValidationError("STAKE_BELOW_MATCH_MINIMUM")
	}
	if match.MaxStake.IsPositive() && stake.GreaterThan(match.MaxStake) {
		return NewValidationError("STAKE_ABOVE_MATCH_MAXIMUM")
	}
	return nil
}

func checkMatchExposure(tx *gorm.DB, user *models.User, match *models.Match, stake decimal.Decimal) error {
	if !user.MatchExposureLimit.IsPositive() {
		return nil
	}

	var pending []models.Bet
	if err := tx.Where("user_id = ? AND match_id = ? AND status = ?",
		user.ID, match.ID, models.BetPending).Find(&pending).Error; err != nil {
		return err
	}

	exposure := stake
	for i := range pending {
		exposure = exposure.Add(pending[i].Stake)
	}
	if exposure.GreaterThan(user.MatchExposureLimit) {
		return NewValidationError("MATCH_EXPOSURE_LIMIT_EXCEEDED")
	}
	return nil
}

// SettleBet moves a PENDING bet to WON or LOST exactly once. A win credits
// the potential payout and cascades agent commission in the same
// transaction. LAY bets invert the resolved outcome here.
func SettleBet(betID uint, won bool) (*models.Bet, error) {
	var probe models.Bet
	if err := database.DB.First(&probe, betID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if probe.Status != models.BetPending {
		return nil, NewStateConflict("BET_ALREADY_SETTLED")
	}

	var bet models.Bet
	unlock := lockAccount(probe.UserCode)
	defer unlock()
	locks := &chainLocks{}
	defer locks.release()

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&bet, betID).Error; err != nil {
			return err
		}

		betWon := won
		if bet.Side == models.SideLay {
			betWon = !won
		}

		status := models.BetLost
		if betWon {
			status = models.BetWon
		}

		now := time.Now()
		res := tx.Model(&models.Bet{}).
			Where("id = ? AND status = ?", bet.ID, models.BetPending).
			Updates(map[string]any{"status": status, "settled_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return NewStateConflict("BET_ALREADY_SETTLED")
		}
		bet.Status = status
		bet.SettledAt = &now

		if !betWon {
			return nil
		}

		var user models.User
		if err := tx.Where("user_code = ?", bet.UserCode).First(&user).Error; err != nil {
			return err
		}
		if err := Credit(tx, &user, bet.PotentialWin, models.TrxBetWin,
			fmt.Sprintf("Bet win on %s", bet.MatchCode), bet.RefID); err != nil {
			return err
		}

		return CascadeCommission(tx, &bet, bet.PotentialWin, bet.AgentCode, locks)
	})
	if err != nil {
		return nil, err
	}

	// Best effort only: a failed notification never unwinds a settlement.
	events.Emit(events.BetSettled, map[string]any{
		"bet_id":    bet.ID,
		"user_code": bet.UserCode,
		"status":    bet.Status,
		"ref_id":    bet.RefID,
	})
	if bet.Status == models.BetWon {
		events.Emit(events.BalanceChanged, map[string]any{
			"user_code": bet.UserCode,
			"reason":    models.TrxBetWin,
			"ref_id":    bet.RefID,
		})
	}
	return &bet, nil
}

// VoidBet refunds a PENDING bet's full stake and marks it VOID, in one
// transaction.
func VoidBet(betID uint, reason string) (*models.Bet, error) {
	var probe models.Bet
	if err := database.DB.First(&probe, betID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if probe.Status != models.BetPending {
		return nil, NewStateConflict("BET_NOT_PENDING")
	}

	var bet models.Bet
	unlock := lockAccount(probe.UserCode)
	defer unlock()

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&bet, betID).Error; err != nil {
			return err
		}

		now := time.Now()
		res := tx.Model(&models.Bet{}).
			Where("id = ? AND status = ?", bet.ID, models.BetPending).
			Updates(map[string]any{"status": models.BetVoid, "settled_at": now, "void_reason": reason})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return NewStateConflict("BET_NOT_PENDING")
		}
		bet.Status = models.BetVoid
		bet.SettledAt = &now
		bet.VoidReason = reason

		var user models.User
		if err := tx.Where("user_code = ?", bet.UserCode).First(&user).Error; err != nil {
			return err
		}
		return Credit(tx, &user, bet.Stake, models.TrxBetRefund,
			fmt.Sprintf("Void refund on %s: %s", bet.MatchCode, reason), bet.RefID)
	})
	if err != nil {
		return nil, err
	}

	events.Emit(events.BalanceChanged, map[string]any{
		"user_code": bet.UserCode,
		"reason":    models.TrxBetRefund,
		"ref_id":    bet.RefID,
	})
	return &bet, nil
}

type BetError struct {
	BetID uint   `json:"bet_id"`
	Code  string `json:"code"`
}

type SweepResult struct {
	MatchCode string     `json:"match_code"`
	Total     int        `json:"total"`
	Won       int        `json:"won"`
	Lost      int        `json:"lost"`
	Voided    int        `json:"voided"`
	Failed    int        `json:"failed"`
	Errors    []BetError `json:"errors,omitempty"`
}

// SettleMatchBets stores the result, settles every pending bet on the
// match and finally marks the match settled. Each bet runs in its own
// transaction: one failing bet is recorded and the sweep continues.
func SettleMatchBets(matchCode string, result MatchResult) (*SweepResult, error) {
	var match models.Match
	if err := database.DB.Where("match_code = ?", matchCode).First(&match).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	switch match.Status {
	case models.MatchSettled:
		return nil, NewStateConflict("MATCH_ALREADY_SETTLED")
	case models.MatchCancelled:
		return nil, NewStateConflict("MATCH_CANCELLED")
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	if err := database.DB.Model(&match).Updates(map[string]any{
		"result": raw,
		"status": models.MatchFinished,
	}).Error; err != nil {
		return nil, err
	}

	return settlePendingBets(&match, result)
}

// SettleMatch settles from the result already stored on the match row;
// this is the sweep job's entry point and is safe to re-run.
func SettleMatch(matchCode string) (*SweepResult, error) {
	var match models.Match
	if err := database.DB.Where("match_code = ?", matchCode).First(&match).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	switch match.Status {
	case models.MatchSettled:
		return nil, NewStateConflict("MATCH_ALREADY_SETTLED")
	case models.MatchCancelled:
		return nil, NewStateConflict("MATCH_CANCELLED")
	}

	result, err := ParseMatchResult(match.Result)
	if err != nil {
		return nil, err
	}
	return settlePendingBets(&match, result)
}

func settlePendingBets(match *models.Match, result MatchResult) (*SweepResult, error) {
	var pending []models.Bet
	if err := database.DB.Where("match_id = ? AND status = ?",
		match.ID, models.BetPending).Find(&pending).Error; err != nil {
		return nil, err
	}

	sweep := &SweepResult{MatchCode: match.MatchCode, Total: len(pending)}
	for i := range pending {
		won := ResolveOutcome(pending[i].BetType, pending[i].Selection, result)
		settled, err := SettleBet(pending[i].ID, won)
		if err != nil {
			sweep.Failed++
			sweep.Errors = append(sweep.Errors, BetError{BetID: pending[i].ID, Code: ErrCode(err)})
			continue
		}
		if settled.Status == models.BetWon {
			sweep.Won++
		} else {
			sweep.Lost++
		}
	}

	now := time.Now()
	if err := database.DB.Model(&models.Match{}).
		Where("id = ? AND status NOT IN ?", match.ID, []string{models.MatchSettled, models.MatchCancelled}).
		Updates(map[string]any{
			"status":           models.MatchSettled,
			"winner_selection": result.Winner,
			"settled_at":       now,
		}).Error; err != nil {
		return sweep, err
	}

	events.Emit(events.MatchStatusChanged, map[string]any{
		"match_code": match.MatchCode,
		"status":     models.MatchSettled,
		"settled":    sweep.Total - sweep.Failed,
		"failed":     sweep.Failed,
	})
	return sweep, nil
}

// VoidMatchBets refunds every pending bet on the match and marks the match
// CANCELLED, with the same per-bet failure isolation as settlement. It may
// be re-run on an already cancelled match to void stragglers; only a
// settled match rejects it.
func VoidMatchBets(matchCode, reason string) (*SweepResult, error) {
	var match models.Match
	if err := database.DB.Where("match_code = ?", matchCode).First(&match).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if match.Status == models.MatchSettled {
		return nil, NewStateConflict("MATCH_ALREADY_SETTLED")
	}

	var pending []models.Bet
	if err := database.DB.Where("match_id = ? AND status = ?",
		match.ID, models.BetPending).Find(&pending).Error; err != nil {
		return nil, err
	}

	sweep := &SweepResult{MatchCode: match.MatchCode, Total: len(pending)}
	for i := range pending {
		if _, err := VoidBet(pending[i].ID, reason); err != nil {
			sweep.Failed++
			sweep.Errors = append(sweep.Errors, BetError{BetID: pending[i].ID, Code: ErrCode(err)})
			continue
		}
		sweep.Voided++
	}

	if err := database.DB.Model(&models.Match{}).
		Where("id = ? AND status <> ?", match.ID, models.MatchSettled).
		Updates(map[string]any{
			"status":         models.MatchCancelled,
			"cancel_reason":  reason,
			"betting_locked": true,
		}).Error; err != nil {
		return sweep, err
	}

	events.Emit(events.MatchStatusChanged, map[string]any{
		"match_code": match.MatchCode,
		"status":     models.MatchCancelled,
		"voided":     sweep.Voided,
		"failed":     sweep.Failed,
	})
	return sweep, nil
}
