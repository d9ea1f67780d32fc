package provablyfair

import "testing"

// card builds a deck index from suit (0=S 1=H 2=D 3=C) and value (2..14).
func card(suit, value int) int { return suit*13 + value - 2 }

func TestHandRankingOrder(t *testing.T) {
	hands := []struct {
		name  string
		cards []int
	}{
		{"trail", []int{card(0, 14), card(1, 14), card(2, 14)}},
		{"pure sequence", []int{card(0, 12), card(0, 13), card(0, 14)}},
		{"sequence", []int{card(0, 4), card(1, 5), card(2, 6)}},
		{"colour", []int{card(0, 2), card(0, 5), card(0, 9)}},
		{"pair", []int{card(0, 13), card(1, 13), card(0, 5)}},
		{"high card", []int{card(0, 2), card(1, 7), card(2, 11)}},
	}

	for i := 0; i < len(hands)-1; i++ {
		hi := HandStrength(hands[i].cards)
		lo := HandStrength(hands[i+1].cards)
		if hi <= lo {
			t.Errorf("%s (%d) should outrank %s (%d)", hands[i].name, hi, hands[i+1].name, lo)
		}
	}
}

func TestQueenKingAceIsPureSequence(t *testing.T) {
	qka := HandStrength([]int{card(1, 12), card(1, 13), card(1, 14)})
	trail := HandStrength([]int{card(0, 2), card(1, 2), card(2, 2)})
	colour := HandStrength([]int{card(2, 3), card(2, 9), card(2, 14)})

	if qka >= trail {
		t.Fatal("Q-K-A suited must rank below a trail")
	}
	if qka <= colour {
		t.Fatal("Q-K-A suited must rank above a colour")
	}

	lowerRun := HandStrength([]int{card(1, 11), card(1, 12), card(1, 13)})
	if qka <= lowerRun {
		t.Fatal("Q-K-A is the top pure sequence")
	}
}

func TestHandTiebreaks(t *testing.T) {
	pairKings := HandStrength([]int{card(0, 13), card(1, 13), card(0, 5)})
	pairKingsBetterKicker := HandStrength([]int{card(2, 13), card(3, 13), card(0, 9)})
	if pairKingsBetterKicker <= pairKings {
		t.Fatal("kicker must break pair ties")
	}

	pairQueens := HandStrength([]int{card(0, 12), card(1, 12), card(0, 14)})
	if pairQueens >= pairKings {
		t.Fatal("pair rank must dominate the kicker")
	}

	// Same values in different suits score identically when no flush is on.
	a := HandStrength([]int{card(0, 4), card(1, 5), card(2, 6)})
	b := HandStrength([]int{card(1, 4), card(2, 5), card(3, 6)})
	if a != b {
		t.Fatalf("equal-value hands score differently: %d vs %d", a, b)
	}
}

func TestDrawUniqueCards(t *testing.T) {
	roll := NewRoll("deal-seed", "client", 0)
	cards := DrawUniqueCards(roll, 6)

	if len(cards) != 6 {
		t.Fatalf("dealt %d cards, want 6", len(cards))
	}
	seen := make(map[int]bool)
	for _, c := range cards {
		if c < 0 || c > 51 {
			t.Fatalf("card index %d out of range", c)
		}
		if seen[c] {
			t.Fatalf("duplicate card %d in deal", c)
		}
		seen[c] = true
	}

	again := DrawUniqueCards(NewRoll("deal-seed", "client", 0), 6)
	for i := range cards {
		if cards[i] != again[i] {
			t.Fatal("deal is not reproducible from the same roll")
		}
	}
}

// Even when the retry budget cannot provide uniqueness (a full-deck draw
// forces collisions), the fallback must complete the deal
// deterministically.
func TestDrawUniqueCardsFallback(t *testing.T) {
	roll := NewRoll("fallback-seed", "client", 1)
	cards := DrawUniqueCards(roll, 52)

	if len(cards) != 52 {
		t.Fatalf("dealt %d cards, want full deck", len(cards))
	}
	seen := make(map[int]bool)
	for _, c := range cards {
		if seen[c] {
			t.Fatalf("duplicate card %d in full-deck deal", c)
		}
		seen[c] = true
	}
}

func TestTeenPattiResolution(t *testing.T) {
	res, err := Play(GameTeenPatti, NewRoll("tp-seed", "client", 0), "PLAYER_A")
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	handA := res.Detail["hand_a"].([]string)
	handB := res.Detail["hand_b"].([]string)
	if len(handA) != 3 || len(handB) != 3 {
		t.Fatalf("hands = %v / %v, want 3 cards each", handA, handB)
	}

	strengthA := res.Detail["strength_a"].(int)
	strengthB := res.Detail["strength_b"].(int)
	winner := res.Detail["winner"].(string)

	wantWinner := "PLAYER_B"
	if strengthA >= strengthB {
		wantWinner = "PLAYER_A"
	}
	if winner != wantWinner {
		t.Fatalf("winner = %s with strengths %d vs %d", winner, strengthA, strengthB)
	}
	if res.Won != (winner == "PLAYER_A") {
		t.Fatalf("won = %v backing PLAYER_A, winner %s", res.Won, winner)
	}

	again, err := Play(GameTeenPatti, NewRoll("tp-seed", "client", 0), "PLAYER_A")
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if again.Detail["winner"] != winner {
		t.Fatal("teen patti outcome changed between recomputations")
	}

	if _, err := Play(GameTeenPatti, NewRoll("tp-seed", "client", 0), "DEALER"); err != ErrUnknownSelection {
		t.Fatalf("unknown selection error = %v", err)
	}
}
