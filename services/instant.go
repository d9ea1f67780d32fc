package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"toto/database"
	"toto/events"
	"toto/models"
	"toto/provablyfair"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InstantPlayRequest struct {
	UserCode   string          `json:"user_code"`
	GameCode   string          `json:"game_code"`
	Selection  string          `json:"selection"`
	Stake      decimal.Decimal `json:"stake"`
	ClientSeed string          `json:"client_seed"`
}

type InstantPlayResult struct {
	Round   *models.CasinoRound  `json:"round"`
	Bet     *models.CasinoBet    `json:"bet"`
	Outcome *provablyfair.Result `json:"outcome"`
}

// PlayInstant runs one single-shot round: validate against the game
// catalog, derive the outcome from a fresh seed pair, then create the
// settled round, debit the stake, record the bet and credit any win as one
// transaction. The server seed is revealed immediately since the round is
// over the moment it is played.
func PlayInstant(req InstantPlayRequest) (*InstantPlayResult, error) {
	if req.UserCode == "" || req.GameCode == "" || req.Selection == "" {
		return nil, NewValidationError("MISSING_REQUIRED_FIELD")
	}
	if !req.Stake.IsPositive() {
		return nil, NewValidationError("STAKE_MUST_BE_POSITIVE")
	}

	var game models.CasinoGame
	if err := database.DB.Where("game_code = ?", req.GameCode).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !game.Enabled {
		return nil, NewStateConflict("GAME_DISABLED")
	}
	if game.MinStake.IsPositive() && req.Stake.LessThan(game.MinStake) {
		return nil, NewValidationError("STAKE_BELOW_GAME_MINIMUM")
	}
	if game.MaxStake.IsPositive() && req.Stake.GreaterThan(game.MaxStake) {
		return nil, NewValidationError("STAKE_ABOVE_GAME_MAXIMUM")
	}

	clientSeed := req.ClientSeed
	if clientSeed == "" {
		clientSeed = provablyfair.NewClientSeed()
	}

	serverSeed, seedHash, err := provablyfair.NewServerSeed()
	if err != nil {
		return nil, err
	}

	roll := provablyfair.NewRoll(serverSeed, clientSeed, 0)
	outcome, err := provablyfair.Play(game.GameCode, roll, req.Selection)
	if err != nil {
		if errors.Is(err, provablyfair.ErrUnknownSelection) {
			return nil, NewValidationError("INVALID_SELECTION")
		}
		return nil, err
	}

	// House edge: scale the base multiplier by the game's RTP.
	multiplier := decimal.NewFromFloat(outcome.Multiplier).
		Mul(game.RTP).Div(oneHundred).Round(4)
	payout := decimal.Zero
	if outcome.Won {
		payout = req.Stake.Mul(multiplier).Round(2)
	}

	outcomeJSON, err := json.Marshal(outcome)
	if err != nil {
		return nil, err
	}

	var round *models.CasinoRound
	var bet *models.CasinoBet

	unlock := lockAccount(req.UserCode)
	defer unlock()

	err = database.DB.Transaction(func(tx *gorm.DB) error {
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

		now := time.Now()
		round = &models.CasinoRound{
			RoundID:        uuid.New().String(),
			GameCode:       game.GameCode,
			UserCode:       user.UserCode,
			ServerSeed:     serverSeed,
			ServerSeedHash: seedHash,
			ClientSeed:     clientSeed,
			Nonce:          0,
			Status:         models.RoundSettled,
			Outcome:        outcomeJSON,
			SettledAt:      &now,
		}
		if err := tx.Create(round).Error; err != nil {
			return err
		}

		if err := Debit(tx, &user, req.Stake, models.TrxCasinoStake,
			fmt.Sprintf("%s round %s", game.GameCode, round.RoundID), round.RoundID); err != nil {
			return err
		}

		status := models.BetLost
		if outcome.Won {
			status = models.BetWon
		}
		bet = &models.CasinoBet{
			RoundID:    round.RoundID,
			GameCode:   game.GameCode,
			UserID:     user.ID,
			UserCode:   user.UserCode,
			AgentCode:  user.AgentCode,
			Selection:  req.Selection,
			Stake:      req.Stake,
			Multiplier: multiplier,
			Payout:     payout,
			Status:     status,
			SettledAt:  &now,
			RefID:      round.RoundID,
		}
		if err := tx.Create(bet).Error; err != nil {
			return err
		}

		if outcome.Won {
			return Credit(tx, &user, payout, models.TrxCasinoWin,
				fmt.Sprintf("%s win round %s", game.GameCode, round.RoundID), round.RoundID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	events.Emit(events.CasinoRoundSettled, map[string]any{
		"round_id":  round.RoundID,
		"game_code": round.GameCode,
		"user_code": round.UserCode,
		"won":       outcome.Won,
	})
	events.Emit(events.BalanceChanged, map[string]any{
		"user_code": req.UserCode,
		"reason":    models.TrxCasinoStake,
		"ref_id":    round.RoundID,
	})
	if outcome.Won {
		events.Emit(events.BalanceChanged, map[string]any{
			"user_code": req.UserCode,
			"reason":    models.TrxCasinoWin,
			"ref_id":    round.RoundID,
		})
	}

	return &InstantPlayResult{Round: round, Bet: bet, Outcome: outcome}, nil
}

type RoundVerification struct {
	RoundID        string `json:"round_id"`
	ServerSeed     string `json:"server_seed"`
	ServerSeedHash string `json:"server_seed_hash"`
	ClientSeed     string `json:"client_seed"`
	Nonce          uint64 `json:"nonce"`
	Fair           bool   `json:"fair"`
}

// VerifyRound rechecks a settled round's commitment: the revealed server
// seed must hash to what was published before play.
func VerifyRound(roundID string) (*RoundVerification, error) {
	var round models.CasinoRound
	if err := database.DB.Where("round_id = ?", roundID).First(&round).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if round.Status != models.RoundSettled {
		return nil, NewStateConflict("ROUND_NOT_SETTLED")
	}

	return &RoundVerification{
		RoundID:        round.RoundID,
		ServerSeed:     round.ServerSeed,
		ServerSeedHash: round.ServerSeedHash,
		ClientSeed:     round.ClientSeed,
		Nonce:          round.Nonce,
		Fair:           provablyfair.Verify(round.ServerSeed, round.ServerSeedHash),
	}, nil
}
