package services

import (
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"toto/models"

	"gorm.io/datatypes"
)

// MatchResult is the decoded shape of Match.Result.
type MatchResult struct {
	Winner      string          `json:"winner"`
	TopBatsman  string          `json:"top_batsman"`
	TotalRuns   int             `json:"total_runs"`
	SessionRuns int             `json:"session_runs"`
	Fancy       map[string]bool `json:"fancy"`
	PlayerPerf  map[string]bool `json:"player_perf"`
}

func ParseMatchResult(raw datatypes.JSON) (MatchResult, error) {
	var r MatchResult
	if len(raw) == 0 {
		return r, NewValidationError("MATCH_RESULT_MISSING")
	}
	if err := json.Unmarshal(raw, &r); err != nil {
		return r, NewValidationError("MATCH_RESULT_INVALID")
	}
	return r, nil
}

// ResolveOutcome decides whether a back selection won. It is pure: same
// inputs, same answer, no side effects beyond a warning log for unknown
// bet types.
func ResolveOutcome(betType, selection string, result MatchResult) bool {
	switch betType {
	case models.BetTypeMatchWinner:
		return selection == result.Winner
	case models.BetTypeTopBatsman:
		return selection == result.TopBatsman
	case models.BetTypeTotalRuns:
		return resolveThreshold(selection, result.TotalRuns)
	case models.BetTypeSessionRuns:
		return resolveThreshold(selection, result.SessionRuns)
	case models.BetTypeFancy:
		return result.Fancy[selection]
	case models.BetTypePlayerPerf:
		return result.PlayerPerf[selection]
	}
	log.Printf("⚠️ unknown bet type %q, resolving as lost", betType)
	return false
}

// resolveThreshold parses OVER_<n> / UNDER_<n> and compares strictly.
// Landing exactly on the line loses both sides.
func resolveThreshold(selection string, actual int) bool {
	switch {
	case strings.HasPrefix(selection, "OVER_"):
		n, err := strconv.Atoi(strings.TrimPrefix(selection, "OVER_"))
		return err == nil && actual > n
	case strings.HasPrefix(selection, "UNDER_"):
		n, err := strconv.Atoi(strings.TrimPrefix(selection, "UNDER_"))
		return err == nil && actual < n
	}
	log.Printf("⚠️ malformed threshold selection %q, resolving as lost", selection)
	return false
}
