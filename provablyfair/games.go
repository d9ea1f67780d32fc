package provablyfair

import (
	"errors"
	"strconv"
	"strings"
)

const (
	GameCoinFlip  = "COINFLIP"
	GameDice      = "DICE"
	GameHiLo      = "HILO"
	GameTeenPatti = "TEEN_PATTI"
)

var (
	ErrUnknownGame      = errors.New("unknown game")
	ErrUnknownSelection = errors.New("unknown selection")
)

// Result is the resolved outcome of one round. Multiplier is the base
// payout multiple before any house-edge scaling.
type Result struct {
	Game       string         `json:"game"`
	Selection  string         `json:"selection"`
	Won        bool           `json:"won"`
	Multiplier float64        `json:"multiplier"`
	Detail     map[string]any `json:"detail"`
}

// Play resolves one round of the named game against the roll.
func Play(gameCode string, roll *Roll, selection string) (*Result, error) {
	switch gameCode {
	case GameCoinFlip:
		return playCoinFlip(roll, selection)
	case GameDice:
		return playDice(roll, selection)
	case GameHiLo:
		return playHiLo(roll, selection)
	case GameTeenPatti:
		return playTeenPatti(roll, selection)
	}
	return nil, ErrUnknownGame
}

func playCoinFlip(roll *Roll, selection string) (*Result, error) {
	if selection != "HEADS" && selection != "TAILS" {
		return nil, ErrUnknownSelection
	}

	side := "TAILS"
	if roll.Float(0) < 0.5 {
		side = "HEADS"
	}

	return &Result{
		Game:       GameCoinFlip,
		Selection:  selection,
		Won:        side == selection,
		Multiplier: 2,
		Detail:     map[string]any{"side": side},
	}, nil
}

// playDice rolls two dice and compares the sum against a target, default
// 7. Selections: OVER, UNDER, EXACT, optionally suffixed _<target>.
func playDice(roll *Roll, selection string) (*Result, error) {
	kind, target, err := parseDiceSelection(selection)
	if err != nil {
		return nil, err
	}

	d1 := roll.Int(0, 1, 6)
	d2 := roll.Int(1, 1, 6)
	sum := d1 + d2

	var won bool
	multiplier := 2.0
	switch kind {
	case "OVER":
		won = sum > target
	case "UNDER":
		won = sum < target
	case "EXACT":
		won = sum == target
		multiplier = 5
	}

	return &Result{
		Game:       GameDice,
		Selection:  selection,
		Won:        won,
		Multiplier: multiplier,
		Detail:     map[string]any{"dice": []int{d1, d2}, "sum": sum, "target": target},
	}, nil
}

func parseDiceSelection(selection string) (kind string, target int, err error) {
	kind = selection
	target = 7
	if idx := strings.IndexByte(selection, '_'); idx >= 0 {
		kind = selection[:idx]
		target, err = strconv.Atoi(selection[idx+1:])
		if err != nil || target < 2 || target > 12 {
			return "", 0, ErrUnknownSelection
		}
	}
	switch kind {
	case "OVER", "UNDER", "EXACT":
		return kind, target, nil
	}
	return "", 0, ErrUnknownSelection
}

// playHiLo draws a card value 1..13. HIGH wins above 7, LOW below, EXACT
// on 7 at 13x.
func playHiLo(roll *Roll, selection string) (*Result, error) {
	card := roll.Int(0, 1, 13)

	var won bool
	multiplier := 2.0
	switch selection {
	case "HIGH":
		won = card > 7
	case "LOW":
		won = card < 7
	case "EXACT":
		won = card == 7
		multiplier = 13
	default:
		return nil, ErrUnknownSelection
	}

	return &Result{
		Game:       GameHiLo,
		Selection:  selection,
		Won:        won,
		Multiplier: multiplier,
		Detail:     map[string]any{"card": card},
	}, nil
}
