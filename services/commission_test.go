package services

import (
	"sync"
	"testing"

	"toto/database"
	"toto/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func cascadeForWin(t *testing.T, bet *models.Bet, win int64) {
	t.Helper()
	locks := &chainLocks{}
	defer locks.release()
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		return CascadeCommission(tx, bet, decimal.NewFromInt(win), bet.AgentCode, locks)
	})
	if err != nil {
		t.Fatalf("cascade: %v", err)
	}
}

func loadCommissions(t *testing.T, betID uint) []models.Commission {
	t.Helper()
	var rows []models.Commission
	if err := database.DB.Where("bet_id = ?", betID).Order("level").Find(&rows).Error; err != nil {
		t.Fatalf("load commissions: %v", err)
	}
	return rows
}

func TestCascadeCommissionThreeLevels(t *testing.T) {
	setupTestDB(t)
	createTestAgent(t, "0top", "", 5)
	createTestAgent(t, "0mid", "0top", 3)
	createTestAgent(t, "0abc", "0mid", 2)
	createTestUser(t, "u1", "0abc", 1000)
	createTestMatch(t, "m1")

	bet := placeBet(t, "u1", "m1", 100, 2)
	cascadeForWin(t, bet, 1000)

	rows := loadCommissions(t, bet.ID)
	if len(rows) != 3 {
		t.Fatalf("commission rows = %d, want 3", len(rows))
	}

	// Each level earns its own rate off the full win, not a split.
	want := []struct {
		agent  string
		level  int
		amount string
	}{
		{"0abc", 1, "20"},
		{"0mid", 2, "30"},
		{"0top", 3, "50"},
	}
	for i, w := range want {
		if rows[i].AgentCode != w.agent || rows[i].Level != w.level {
			t.Fatalf("row %d = %s level %d, want %s level %d",
				i, rows[i].AgentCode, rows[i].Level, w.agent, w.level)
		}
		wantDecimal(t, rows[i].Amount, w.amount, rows[i].AgentCode+" amount")
		wantDecimal(t, rows[i].WinAmount, "1000", "win amount")
		if rows[i].Paid {
			t.Fatalf("fresh commission for %s already paid", rows[i].AgentCode)
		}
		if rows[i].SettlementID != 0 {
			t.Fatalf("fresh commission for %s already attached", rows[i].AgentCode)
		}
	}

	for _, w := range want {
		agent := reloadAgent(t, w.agent)
		wantDecimal(t, agent.TotalCommission, w.amount, w.agent+" total")
		wantDecimal(t, agent.PendingSettlement, w.amount, w.agent+" pending")
	}
}

func TestCascadeCommissionStopsAtChainEnd(t *testing.T) {
	setupTestDB(t)
	createTestAgent(t, "0mid", "", 3)
	createTestAgent(t, "0abc", "0mid", 2)
	createTestUser(t, "u1", "0abc", 1000)
	createTestMatch(t, "m1")

	bet := placeBet(t, "u1", "m1", 100, 2)
	cascadeForWin(t, bet, 500)

	rows := loadCommissions(t, bet.ID)
	if len(rows) != 2 {
		t.Fatalf("commission rows = %d, want 2 for a two-deep chain", len(rows))
	}
	wantDecimal(t, rows[0].Amount, "10", "level 1")
	wantDecimal(t, rows[1].Amount, "15", "level 2")
}

func TestCascadeCommissionCapsAtThreeLevels(t *testing.T) {
	setupTestDB(t)
	createTestAgent(t, "0anc", "", 10)
	createTestAgent(t, "0top", "0anc", 5)
	createTestAgent(t, "0mid", "0top", 3)
	createTestAgent(t, "0abc", "0mid", 2)
	createTestUser(t, "u1", "0abc", 1000)
	createTestMatch(t, "m1")

	bet := placeBet(t, "u1", "m1", 100, 2)
	cascadeForWin(t, bet, 1000)

	rows := loadCommissions(t, bet.ID)
	if len(rows) != 3 {
		t.Fatalf("commission rows = %d, want 3 even with a deeper chain", len(rows))
	}
	for _, row := range rows {
		if row.AgentCode == "0anc" {
			t.Fatal("level 4 ancestor must not earn commission")
		}
	}
	wantDecimal(t, reloadAgent(t, "0anc").TotalCommission, "0", "level 4 total")
}

func TestCascadeCommissionSkipsZeroRate(t *testing.T) {
	setupTestDB(t)
	createTestAgent(t, "0top", "", 5)
	createTestAgent(t, "0abc", "0top", 0)
	createTestUser(t, "u1", "0abc", 1000)
	createTestMatch(t, "m1")

	bet := placeBet(t, "u1", "m1", 100, 2)
	cascadeForWin(t, bet, 1000)

	rows := loadCommissions(t, bet.ID)
	if len(rows) != 1 {
		t.Fatalf("commission rows = %d, want only the parent's", len(rows))
	}
	if rows[0].AgentCode != "0top" || rows[0].Level != 2 {
		t.Fatalf("row = %s level %d", rows[0].AgentCode, rows[0].Level)
	}
	wantDecimal(t, rows[0].Amount, "50", "parent amount")
}

func TestCascadeCommissionInactiveAgentStopsWalk(t *testing.T) {
	setupTestDB(t)
	createTestAgent(t, "0top", "", 5)
	mid := createTestAgent(t, "0mid", "0top", 3)
	createTestAgent(t, "0abc", "0mid", 2)
	createTestUser(t, "u1", "0abc", 1000)
	createTestMatch(t, "m1")

	if err := database.DB.Model(&mid).Update("is_active", false).Error; err != nil {
		t.Fatal(err)
	}

	bet := placeBet(t, "u1", "m1", 100, 2)
	cascadeForWin(t, bet, 1000)

	rows := loadCommissions(t, bet.ID)
	if len(rows) != 1 {
		t.Fatalf("commission rows = %d, want 1 when the chain breaks", len(rows))
	}
	if rows[0].AgentCode != "0abc" {
		t.Fatalf("row agent = %s", rows[0].AgentCode)
	}
}

func TestSettleBetCascadesCommission(t *testing.T) {
	setupTestDB(t)
	createTestAgent(t, "0abc", "", 2)
	createTestUser(t, "u1", "0abc", 1000)
	createTestMatch(t, "m1")

	bet := placeBet(t, "u1", "m1", 100, 2)
	if _, err := SettleBet(bet.ID, true); err != nil {
		t.Fatalf("SettleBet: %v", err)
	}

	rows := loadCommissions(t, bet.ID)
	if len(rows) != 1 {
		t.Fatalf("commission rows = %d, want 1", len(rows))
	}
	// 2% of the 200 payout.
	wantDecimal(t, rows[0].Amount, "4", "commission amount")
	wantDecimal(t, reloadAgent(t, "0abc").PendingSettlement, "4", "pending settlement")
}

// Two users under the same agent win at the same time; both cascades
// increment the shared agent counters and neither increment may be lost.
func TestCascadeCommissionConcurrentWins(t *testing.T) {
	setupTestDB(t)
	createTestAgent(t, "0abc", "", 10)
	createTestUser(t, "u1", "0abc", 1000)
	createTestUser(t, "u2", "0abc", 1000)
	createTestMatch(t, "m1")

	a := placeBet(t, "u1", "m1", 100, 2) // pays 200
	b := placeBet(t, "u2", "m1", 200, 2) // pays 400

	var wg sync.WaitGroup
	for _, id := range []uint{a.ID, b.ID} {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			if _, err := SettleBet(id, true); err != nil {
				t.Errorf("settle %d: %v", id, err)
			}
		}(id)
	}
	wg.Wait()

	// 10% of 200 plus 10% of 400.
	agent := reloadAgent(t, "0abc")
	wantDecimal(t, agent.TotalCommission, "60", "total commission")
	wantDecimal(t, agent.PendingSettlement, "60", "pending settlement")
}

func TestLostBetEarnsNoCommission(t *testing.T) {
	setupTestDB(t)
	createTestAgent(t, "0abc", "", 2)
	createTestUser(t, "u1", "0abc", 1000)
	createTestMatch(t, "m1")

	bet := placeBet(t, "u1", "m1", 100, 2)
	if _, err := SettleBet(bet.ID, false); err != nil {
		t.Fatalf("SettleBet: %v", err)
	}

	var n int64
	database.DB.Model(&models.Commission{}).Count(&n)
	if n != 0 {
		t.Fatalf("commission rows = %d, want 0 for a lost bet", n)
	}
}
