package services

import (
	"sync"

	"toto/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// accountLocks serializes ledger mutations per user. Two concurrent
// placements both read the balance before writing; without the lock both
// could pass a check only one can afford.
var accountLocks sync.Map

func lockAccount(userCode string) func() {
	v, _ := accountLocks.LoadOrStore(userCode, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// lockAgent serializes agent balance and counter mutations the same way.
// Agent codes live in their own key space of the registry. Lock order is
// always user first, then agents walking up the hierarchy, so the
// commission walk cannot deadlock against transfers or payouts.
func lockAgent(agentCode string) func() {
	return lockAccount("agent/" + agentCode)
}

// chainLocks collects the agent locks taken while walking a commission
// chain so they stay held until the surrounding transaction finishes.
type chainLocks struct {
	unlocks []func()
}

func (c *chainLocks) take(agentCode string) {
	c.unlocks = append(c.unlocks, lockAgent(agentCode))
}

func (c *chainLocks) release() {
	for i := len(c.unlocks) - 1; i >= 0; i-- {
		c.unlocks[i]()
	}
	c.unlocks = nil
}

// Debit subtracts amount from the user's balance and appends the paired
// transaction row, inside the caller's transaction. Both writes happen or
// neither. The balance may not drop below the negative credit limit.
func Debit(tx *gorm.DB, user *models.User, amount decimal.Decimal, trxType, note, refID string) error {
	if !amount.IsPositive() {
		return NewValidationError("AMOUNT_MUST_BE_POSITIVE")
	}

	floor := user.CreditLimit.Neg()
	newBalance := user.Balance.Sub(amount)
	if newBalance.LessThan(floor) {
		return ErrInsufficientFunds
	}

	before := user.Balance
	if err := tx.Model(user).Update("balance", newBalance).Error; err != nil {
		return err
	}
	user.Balance = newBalance

	return tx.Create(&models.UserTransaction{
		UserID:        user.ID,
		AgentCode:     user.AgentCode,
		UserCode:      user.UserCode,
		TrxType:       trxType,
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  newBalance,
		Currency:      user.Currency,
		Note:          note,
		RefID:         refID,
	}).Error
}

// Credit adds amount to the user's balance with the same pairing rules.
func Credit(tx *gorm.DB, user *models.User, amount decimal.Decimal, trxType, note, refID string) error {
	if !amount.IsPositive() {
		return NewValidationError("AMOUNT_MUST_BE_POSITIVE")
	}

	before := user.Balance
	newBalance := user.Balance.Add(amount)
	if err := tx.Model(user).Update("balance", newBalance).Error; err != nil {
		return err
	}
	user.Balance = newBalance

	return tx.Create(&models.UserTransaction{
		UserID:        user.ID,
		AgentCode:     user.AgentCode,
		UserCode:      user.UserCode,
		TrxType:       trxType,
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  newBalance,
		Currency:      user.Currency,
		Note:          note,
		RefID:         refID,
	}).Error
}

// AgentCredit applies the same balance-plus-row discipline to an agent.
func AgentCredit(tx *gorm.DB, agent *models.Agent, amount decimal.Decimal, trxType, note, refID string) error {
	if !amount.IsPositive() {
		return NewValidationError("AMOUNT_MUST_BE_POSITIVE")
	}

	before := agent.Balance
	newBalance := agent.Balance.Add(amount)
	if err := tx.Model(agent).Update("balance", newBalance).Error; err != nil {
		return err
	}
	agent.Balance = newBalance

	return tx.Create(&models.AgentTransaction{
		AgentID:       agent.ID,
		AgentCode:     agent.AgentCode,
		TrxType:       trxType,
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  newBalance,
		Currency:      agent.Currency,
		Note:          note,
		RefID:         refID,
	}).Error
}

// AgentDebit is the agent-side counterpart of Debit. Agents carry no
// credit line; the floor is zero.
func AgentDebit(tx *gorm.DB, agent *models.Agent, amount decimal.Decimal, trxType, note, refID string) error {
	if !amount.IsPositive() {
		return NewValidationError("AMOUNT_MUST_BE_POSITIVE")
	}

	newBalance := agent.Balance.Sub(amount)
	if newBalance.IsNegative() {
		return ErrInsufficientFunds
	}

	before := agent.Balance
	if err := tx.Model(agent).Update("balance", newBalance).Error; err != nil {
		return err
	}
	agent.Balance = newBalance

	return tx.Create(&models.AgentTransaction{
		AgentID:       agent.ID,
		AgentCode:     agent.AgentCode,
		TrxType:       trxType,
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  newBalance,
		Currency:      agent.Currency,
		Note:          note,
		RefID:         refID,
	}).Error
}
