package credits

import (
	"sync"
	"time"
)

// Ledger is an in-memory Gate implementation. Suitable for single-instance
// deployments; a shared relational store would replace it behind the same
// interface.
type Ledger struct {
	mu           sync.Mutex
	accounts     map[string]*Account
	transactions []Transaction
	dailyCredits int
	now          func() time.Time
}

// NewLedger creates a ledger that grants dailyCredits to new free-plan users.
func NewLedger(dailyCredits int) *Ledger {
	return &Ledger{
		accounts:     make(map[string]*Account),
		dailyCredits: dailyCredits,
		now:          time.Now,
	}
}

// Balance returns the account for userID, creating it on first use and
// applying the daily reset for free-plan accounts.
func (l *Ledger) Balance(userID string) (Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct := l.getOrCreateLocked(userID)
	return *acct, nil
}

// Spend performs the balance check and the decrement under one lock hold.
func (l *Ledger) Spend(userID string, amount int, description string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct := l.getOrCreateLocked(userID)
	if acct.IsUnlimited {
		l.logLocked(userID, -amount, description)
		return nil
	}
	if acct.CreditsRemaining < amount {
		return ErrInsufficientCredits
	}

	acct.CreditsRemaining -= amount
	l.logLocked(userID, -amount, description)
	return nil
}

// Transactions returns a copy of the ledger entries for userID, newest last.
func (l *Ledger) Transactions(userID string) []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []Transaction
	for _, tx := range l.transactions {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out
}

// SetPlan switches a user's plan. Used by the (external) billing callback.
func (l *Ledger) SetPlan(userID, plan string, monthlyCredits int, unlimited bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct := l.getOrCreateLocked(userID)
	acct.Plan = plan
	acct.IsUnlimited = unlimited
	if monthlyCredits > 0 {
		acct.CreditsRemaining = monthlyCredits
	}
}

func (l *Ledger) getOrCreateLocked(userID string) *Account {
	acct, ok := l.accounts[userID]
	if !ok {
		acct = &Account{
			UserID:           userID,
			Plan:             PlanFree,
			CreditsRemaining: l.dailyCredits,
			DailyCredits:     l.dailyCredits,
			LastDailyReset:   l.now(),
		}
		l.accounts[userID] = acct
		return acct
	}

	// Free-plan balances reset 24h after the last reset.
	if acct.Plan == PlanFree && l.now().Sub(acct.LastDailyReset) >= 24*time.Hour {
		acct.CreditsRemaining = acct.DailyCredits
		acct.LastDailyReset = l.now()
	}
	return acct
}

func (l *Ledger) logLocked(userID string, amount int, description string) {
	l.transactions = append(l.transactions, Transaction{
		UserID:      userID,
		Amount:      amount,
		Type:        "usage",
		Description: description,
		CreatedAt:   l.now(),
	})
}
