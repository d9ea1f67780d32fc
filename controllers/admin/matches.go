package admin

import (
	"time"

	"toto/database"
	"toto/helpers"
	"toto/models"
	"toto/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateMatchRequest struct {
	MatchCode string          `json:"match_code"`
	League    string          `json:"league"`
	HomeTeam  string          `json:"home_team"`
	AwayTeam  string          `json:"away_team"`
	StartTime time.Time       `json:"start_time"`
	MinStake  decimal.Decimal `json:"min_stake"`
	MaxStake  decimal.Decimal `json:"max_stake"`
}

func CreateMatch(c *fiber.Ctx) error {
	var req CreateMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.MatchCode == "" || req.HomeTeam == "" || req.AwayTeam == "" {
		return helpers.JSONError(c, "MATCH_CODE_AND_TEAMS_REQUIRED")
	}

	var existing models.Match
	if err := database.DB.Where("match_code = ?", req.MatchCode).First(&existing).Error; err == nil {
		return helpers.JSONError(c, "MATCH_ALREADY_EXISTS")
	}

	match := models.Match{
		MatchCode: req.MatchCode,
		League:    req.League,
		HomeTeam:  req.HomeTeam,
		AwayTeam:  req.AwayTeam,
		StartTime: req.StartTime,
		MinStake:  req.MinStake,
		MaxStake:  req.MaxStake,
		Status:    models.MatchUpcoming,
	}
	if err := database.DB.Create(&match).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_CREATE_MATCH")
	}

	return helpers.JSONSuccess(c, "Match created successfully", match)
}

type LockMatchRequest struct {
	MatchCode string `json:"match_code"`
	Locked    bool   `json:"locked"`
}

func LockMatchBetting(c *fiber.Ctx) error {
	var req LockMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	res := database.DB.Model(&models.Match{}).
		Where("match_code = ? AND status NOT IN ?", req.MatchCode,
			[]string{models.MatchSettled, models.MatchCancelled}).
		Update("betting_locked", req.Locked)
	if res.Error != nil {
		return helpers.JSONError(c, "FAILED_TO_UPDATE_MATCH")
	}
	if res.RowsAffected == 0 {
		return helpers.JSONError(c, "MATCH_NOT_FOUND_OR_FINALIZED")
	}

	return helpers.JSONSuccess(c, "Match betting lock updated", fiber.Map{
		"match_code": req.MatchCode,
		"locked":     req.Locked,
	})
}

type MatchResultRequest struct {
	MatchCode string               `json:"match_code"`
	Result    services.MatchResult `json:"result"`
}

// SubmitMatchResult stores the result and settles every pending bet on
// the match. Per-bet failures come back in the sweep report instead of
// failing the request.
func SubmitMatchResult(c *fiber.Ctx) error {
	var req MatchResultRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.MatchCode == "" {
		return helpers.JSONError(c, "MATCH_CODE_REQUIRED")
	}

	sweep, err := services.SettleMatchBets(req.MatchCode, req.Result)
	if err != nil {
		return helpers.JSONError(c, services.ErrCode(err))
	}

	return helpers.JSONSuccess(c, "Match settled", sweep)
}

type CancelMatchRequest struct {
	MatchCode string `json:"match_code"`
	Reason    string `json:"reason"`
}

func CancelMatch(c *fiber.Ctx) error {
	var req CancelMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.MatchCode == "" {
		return helpers.JSONError(c, "MATCH_CODE_REQUIRED")
	}
	if req.Reason == "" {
		req.Reason = "Match cancelled"
	}

	sweep, err := services.VoidMatchBets(req.MatchCode, req.Reason)
	if err != nil {
		return helpers.JSONError(c, services.ErrCode(err))
	}

	return helpers.JSONSuccess(c, "Match cancelled, pending bets refunded", sweep)
}
