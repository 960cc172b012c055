// Package credits tracks per-user generation quota. The gate is consulted
// before a generation starts; the check and the decrement happen in one call
// so rapid double-submission cannot double-spend.
package credits

import (
	"errors"
	"time"
)

// ErrInsufficientCredits is returned by Spend when the balance cannot cover
// the requested amount.
var ErrInsufficientCredits = errors.New("insufficient credits")

// Plan identifiers. Free-plan balances reset daily; paid plans are topped up
// monthly by the billing system, which lives outside this service.
const (
	PlanFree     = "free"
	PlanWater    = "water"
	PlanGlacicer = "glacicer"
)

// Account is one user's credit state.
type Account struct {
	UserID           string    `json:"userId"`
	Plan             string    `json:"plan"`
	CreditsRemaining int       `json:"creditsRemaining"`
	DailyCredits     int       `json:"dailyCredits"`
	IsUnlimited      bool      `json:"isUnlimited"`
	LastDailyReset   time.Time `json:"lastDailyReset"`
}

// Transaction is one ledger entry.
type Transaction struct {
	UserID      string    `json:"userId"`
	Amount      int       `json:"amount"`
	Type        string    `json:"transactionType"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Gate is the quota collaborator the generation orchestrator consults.
type Gate interface {
	// Balance returns the account for userID, creating it on first use.
	Balance(userID string) (Account, error)

	// Spend atomically checks and decrements the balance. It returns
	// ErrInsufficientCredits when the account cannot cover amount.
	Spend(userID string, amount int, description string) error
}
