package provablyfair

import "sort"

const (
	deckSize     = 52
	handSize     = 3
	drawAttempts = 64
)

const (
	handHighCard = iota
	handPair
	handColour
	handSequence
	handPureSequence
	handTrail
)

var rankNames = "23456789TJQKA"
var suitNames = "SHDC"

// DrawUniqueCards deals n distinct card indices in [0, 51] from the roll.
// Duplicates are skipped within a bounded attempt budget; if uniqueness is
// not reached in time, the remaining slots are filled deterministically
// with the lowest unused indices so the deal stays reproducible.
func DrawUniqueCards(roll *Roll, n int) []int {
	cards := make([]int, 0, n)
	seen := make(map[int]bool, n)

	for i := 0; i < drawAttempts && len(cards) < n; i++ {
		c := roll.Int(i, 0, deckSize-1)
		if seen[c] {
			continue
		}
		seen[c] = true
		cards = append(cards, c)
	}

	for c := 0; c < deckSize && len(cards) < n; c++ {
		if !seen[c] {
			seen[c] = true
			cards = append(cards, c)
		}
	}
	return cards
}

// CardName renders a card index as rank+suit, e.g. "AS" or "7H".
func CardName(card int) string {
	return string(rankNames[card%13]) + string(suitNames[card/13])
}

func cardValue(card int) int { return card%13 + 2 } // 2..14, ace high

// HandStrength scores a 3-card hand so that a higher score always beats a
// lower one: trail > pure sequence > sequence > colour > pair > high card,
// with in-category ties broken on card values. Q-K-A is the top sequence;
// aces never play low.
func HandStrength(cards []int) int {
	v := []int{cardValue(cards[0]), cardValue(cards[1]), cardValue(cards[2])}
	sort.Sort(sort.Reverse(sort.IntSlice(v)))

	flush := cards[0]/13 == cards[1]/13 && cards[2]/13 == cards[0]/13
	straight := v[0] == v[1]+1 && v[1] == v[2]+1

	category := handHighCard
	tiebreak := v[0]*225 + v[1]*15 + v[2]

	switch {
	case v[0] == v[1] && v[1] == v[2]:
		category = handTrail
		tiebreak = v[0]
	case straight && flush:
		category = handPureSequence
		tiebreak = v[0]
	case straight:
		category = handSequence
		tiebreak = v[0]
	case flush:
		category = handColour
	case v[0] == v[1]:
		category = handPair
		tiebreak = v[0]*15 + v[2]
	case v[1] == v[2]:
		category = handPair
		tiebreak = v[1]*15 + v[0]
	}

	return category*100000 + tiebreak
}

// playTeenPatti deals two 3-card hands and backs PLAYER_A or PLAYER_B.
// Hand A takes ties.
func playTeenPatti(roll *Roll, selection string) (*Result, error) {
	if selection != "PLAYER_A" && selection != "PLAYER_B" {
		return nil, ErrUnknownSelection
	}

	cards := DrawUniqueCards(roll, handSize*2)
	handA := cards[:handSize]
	handB := cards[handSize:]

	strengthA := HandStrength(handA)
	strengthB := HandStrength(handB)

	winner := "PLAYER_B"
	if strengthA >= strengthB {
		winner = "PLAYER_A"
	}

	return &Result{
		Game:       GameTeenPatti,
		Selection:  selection,
		Won:        winner == selection,
		Multiplier: 2,
		Detail: map[string]any{
			"hand_a":     names(handA),
			"hand_b":     names(handB),
			"strength_a": strengthA,
			"strength_b": strengthB,
			"winner":     winner,
		},
	}, nil
}

func names(cards []int) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = CardName(c)
	}
	return out
}
