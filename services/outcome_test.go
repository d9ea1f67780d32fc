package services

import (
	"testing"

	"toto/models"

	"gorm.io/datatypes"
)

func TestResolveOutcome(t *testing.T) {
	result := MatchResult{
		Winner:      "TEAM_A",
		TopBatsman:  "PLAYER_7",
		TotalRuns:   312,
		SessionRuns: 45,
		Fancy:       map[string]bool{"ODD_LAST_DIGIT": true, "FIFTY_PARTNERSHIP": false},
		PlayerPerf:  map[string]bool{"PLAYER_7_FIFTY": true},
	}

	cases := []struct {
		betType   string
		selection string
		want      bool
	}{
		{models.BetTypeMatchWinner, "TEAM_A", true},
		{models.BetTypeMatchWinner, "TEAM_B", false},
		{models.BetTypeTopBatsman, "PLAYER_7", true},
		{models.BetTypeTopBatsman, "PLAYER_3", false},
		{models.BetTypeTotalRuns, "OVER_300", true},
		{models.BetTypeTotalRuns, "OVER_312", false}, // landing on the line loses
		{models.BetTypeTotalRuns, "UNDER_312", false},
		{models.BetTypeTotalRuns, "UNDER_313", true},
		{models.BetTypeSessionRuns, "OVER_40", true},
		{models.BetTypeSessionRuns, "UNDER_40", false},
		{models.BetTypeFancy, "ODD_LAST_DIGIT", true},
		{models.BetTypeFancy, "FIFTY_PARTNERSHIP", false},
		{models.BetTypeFancy, "NEVER_QUOTED", false},
		{models.BetTypePlayerPerf, "PLAYER_7_FIFTY", true},
		{models.BetTypePlayerPerf, "PLAYER_9_FIFTY", false},
		{models.BetTypeTotalRuns, "OVER_abc", false},
		{models.BetTypeTotalRuns, "EXACTLY_312", false},
		{"LUCKY_NUMBER", "13", false},
	}
	for _, tc := range cases {
		if got := ResolveOutcome(tc.betType, tc.selection, result); got != tc.want {
			t.Errorf("ResolveOutcome(%s, %s) = %v, want %v", tc.betType, tc.selection, got, tc.want)
		}
	}
}

func TestResolveOutcomeIsPure(t *testing.T) {
	result := MatchResult{Winner: "TEAM_B", TotalRuns: 200}
	for i := 0; i < 5; i++ {
		if !ResolveOutcome(models.BetTypeMatchWinner, "TEAM_B", result) {
			t.Fatal("same inputs must resolve the same way every time")
		}
		if ResolveOutcome(models.BetTypeTotalRuns, "OVER_200", result) {
			t.Fatal("same inputs must resolve the same way every time")
		}
	}
}

func TestParseMatchResult(t *testing.T) {
	r, err := ParseMatchResult(datatypes.JSON(`{"winner":"TEAM_A","total_runs":250}`))
	if err != nil {
		t.Fatalf("ParseMatchResult: %v", err)
	}
	if r.Winner != "TEAM_A" || r.TotalRuns != 250 {
		t.Fatalf("parsed %+v", r)
	}

	if _, err := ParseMatchResult(nil); err == nil {
		t.Fatal("empty result must not parse")
	}
	if _, err := ParseMatchResult(datatypes.JSON(`{broken`)); err == nil {
		t.Fatal("malformed result must not parse")
	}
}
