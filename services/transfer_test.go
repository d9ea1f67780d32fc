package services

import (
	"errors"
	"sync"
	"testing"

	"toto/database"
	"toto/models"

	"github.com/shopspring/decimal"
)

func TestTransferDeposit(t *testing.T) {
	setupTestDB(t)
	agent := createTestAgent(t, "0abc", "", 0)
	createTestUser(t, "u1", "0abc", 100)
	if err := database.DB.Model(&agent).Update("balance", decimal.NewFromInt(1000)).Error; err != nil {
		t.Fatal(err)
	}

	res, err := Transfer("0abc", "u1", decimal.NewFromInt(300), "")
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if res.TrxType != models.TrxDeposit {
		t.Fatalf("trx type = %s, want DEPOSIT", res.TrxType)
	}
	wantDecimal(t, res.Amount, "300", "amount")
	wantDecimal(t, res.Balance, "400", "reported user balance")

	wantDecimal(t, reloadUser(t, "u1").Balance, "400", "user balance")
	wantDecimal(t, reloadAgent(t, "0abc").Balance, "700", "agent balance")

	// One paired row on each side.
	if n := countUserTransactions(t, "u1"); n != 1 {
		t.Fatalf("user transaction rows = %d, want 1", n)
	}
	var agentRows int64
	database.DB.Model(&models.AgentTransaction{}).
		Where("agent_code = ?", "0abc").Count(&agentRows)
	if agentRows != 1 {
		t.Fatalf("agent transaction rows = %d, want 1", agentRows)
	}
}

func TestTransferWithdraw(t *testing.T) {
	setupTestDB(t)
	createTestAgent(t, "0abc", "", 0)
	createTestUser(t, "u1", "0abc", 500)

	res, err := Transfer("0abc", "u1", decimal.NewFromInt(-200), "cash out")
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if res.TrxType != models.TrxWithdraw {
		t.Fatalf("trx type = %s, want WITHDRAW", res.TrxType)
	}

	wantDecimal(t, reloadUser(t, "u1").Balance, "300", "user balance")
	wantDecimal(t, reloadAgent(t, "0abc").Balance, "200", "agent balance")
}

// Two simultaneous deposits to different users drain the same agent
// balance; only one fits and the agent ledger must show exactly one
// debit with a consistent before/after pair.
func TestTransferConcurrentAgentDebits(t *testing.T) {
	setupTestDB(t)
	agent := createTestAgent(t, "0abc", "", 0)
	createTestUser(t, "u1", "0abc", 0)
	createTestUser(t, "u2", "0abc", 0)
	if err := database.DB.Model(&agent).Update("balance", decimal.NewFromInt(300)).Error; err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, user := range []string{"u1", "u2"} {
		wg.Add(1)
		go func(i int, user string) {
			defer wg.Done()
			_, errs[i] = Transfer("0abc", user, decimal.NewFromInt(250), "")
		}(i, user)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrInsufficientFunds):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("succeeded = %d, want exactly 1", succeeded)
	}

	wantDecimal(t, reloadAgent(t, "0abc").Balance, "50", "agent balance")

	var rows []models.AgentTransaction
	if err := database.DB.Where("agent_code = ?", "0abc").Find(&rows).Error; err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("agent transaction rows = %d, want 1", len(rows))
	}
	wantDecimal(t, rows[0].BalanceBefore, "300", "before")
	wantDecimal(t, rows[0].BalanceAfter, "50", "after")
}

func TestTransferFailuresMoveNothing(t *testing.T) {
	setupTestDB(t)
	createTestAgent(t, "0abc", "", 0)
	createTestUser(t, "u1", "0abc", 100)

	// Agent has no balance to fund a deposit.
	if _, err := Transfer("0abc", "u1", decimal.NewFromInt(300), ""); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("deposit err = %v, want ErrInsufficientFunds", err)
	}
	// User cannot cover the withdrawal.
	if _, err := Transfer("0abc", "u1", decimal.NewFromInt(-300), ""); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("withdraw err = %v, want ErrInsufficientFunds", err)
	}
	if _, err := Transfer("0abc", "u1", decimal.Zero, ""); err == nil {
		t.Fatal("zero amount must be rejected")
	}
	// The user must belong to the calling agent.
	if _, err := Transfer("0abc", "stranger", decimal.NewFromInt(50), ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign user err = %v, want ErrNotFound", err)
	}

	wantDecimal(t, reloadUser(t, "u1").Balance, "100", "user balance")
	wantDecimal(t, reloadAgent(t, "0abc").Balance, "0", "agent balance")
	if n := countUserTransactions(t, "u1"); n != 0 {
		t.Fatalf("user transaction rows = %d, want 0", n)
	}
}
