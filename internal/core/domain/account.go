package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccountStatus represents whether an account may transact.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusSuspended AccountStatus = "suspended"
)

// Account holds a user's balance and betting-limit configuration.
// Balance is in fixed-point minor units and is mutated only by the ledger;
// it must never be negative after a committed operation. Accounts are never
// deleted, only suspended.
type Account struct {
	ID                 uuid.UUID     `json:"id"`
	Balance            int64         `json:"balance"`
	DailyBetLimit      *int64        `json:"daily_bet_limit,omitempty"`      // nil = global default
	DailyWithdrawLimit *int64        `json:"daily_withdraw_limit,omitempty"` // nil = global default
	Status             AccountStatus `json:"status"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// IsActive returns true if the account may place bets and move money.
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}
