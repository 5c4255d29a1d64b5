package domain

import (
	"math"
	"time"

	"esports-wagering-platform/pkg/apperror"

	"github.com/google/uuid"
)

// BetStatus represents the lifecycle state of a bet. `pending` is the only
// non-terminal status; a bet reaches a terminal status exactly once.
type BetStatus string

const (
	BetStatusPending   BetStatus = "pending"
	BetStatusWon       BetStatus = "won"
	BetStatusLost      BetStatus = "lost"
	BetStatusCancelled BetStatus = "cancelled"
	BetStatusRefunded  BetStatus = "refunded"
)

// BetClass distinguishes bets taken before a match starts from in-play bets.
type BetClass string

const (
	BetClassPreMatch BetClass = "pre-match"
	BetClassLive     BetClass = "live"
)

// MarketType identifies the bettable proposition on a match.
type MarketType string

const (
	MarketMatchWinner MarketType = "match-winner"
	MarketTotalKills  MarketType = "total-kills"
	MarketFirstBlood  MarketType = "first-blood"
	MarketFirstTower  MarketType = "first-tower"
)

// KnownMarketTypes lists every market the platform accepts bets on.
var KnownMarketTypes = map[MarketType]struct{}{
	MarketMatchWinner: {},
	MarketTotalKills:  {},
	MarketFirstBlood:  {},
	MarketFirstTower:  {},
}

// Bet represents a single wager. It is created only through the ledger's
// placement operation and is immutable afterwards except for its
// status/settlement fields, which change only out of `pending`.
type Bet struct {
	ID               uuid.UUID  `json:"id"`
	AccountID        uuid.UUID  `json:"account_id"`
	MatchID          string     `json:"match_id"`
	Amount           int64      `json:"amount"`
	Odds             float64    `json:"odds"`
	Prediction       string     `json:"prediction"`
	PotentialWinning int64      `json:"potential_winning"`
	WinningAmount    int64      `json:"winning_amount"`
	Status           BetStatus  `json:"status"`
	BetClass         BetClass   `json:"bet_type"`
	MarketType       MarketType `json:"market_type"`
	SettledAt        *time.Time `json:"settled_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// PotentialWinning computes the fixed payout for a stake at the given decimal
// odds, in minor units. Computed once at placement and never recomputed.
func PotentialWinning(amount int64, odds float64) int64 {
	return int64(math.Round(float64(amount) * odds))
}

// IsTerminal returns true once the bet has been settled, cancelled or refunded.
func (b *Bet) IsTerminal() bool {
	return b.Status != BetStatusPending
}

// ProfitLoss returns the account's net result on this bet.
func (b *Bet) ProfitLoss() int64 {
	switch b.Status {
	case BetStatusWon:
		return b.WinningAmount - b.Amount
	case BetStatusLost:
		return -b.Amount
	default:
		return 0
	}
}

// SettleBet transitions a pending bet to won or lost depending on whether the
// prediction matches the resolved outcome. A won bet requires the ledger to
// credit WinningAmount; a lost bet credits nothing.
func SettleBet(b *Bet, outcome string, now time.Time) error {
	if b.IsTerminal() {
		return apperror.ErrAlreadySettled()
	}
	if b.Prediction == outcome {
		b.Status = BetStatusWon
		b.WinningAmount = b.PotentialWinning
	} else {
		b.Status = BetStatusLost
		b.WinningAmount = 0
	}
	b.SettledAt = &now
	return nil
}

// CancelBet transitions a pending bet to cancelled. The ledger must refund
// the original stake in the same atomic unit.
func CancelBet(b *Bet, now time.Time) error {
	if b.IsTerminal() {
		return apperror.ErrNotCancellable()
	}
	b.Status = BetStatusCancelled
	b.SettledAt = &now
	return nil
}

// RefundBet transitions a pending bet to refunded, used when a match is
// voided systemically. Same refund behaviour as cancellation, distinct
// status for reporting.
func RefundBet(b *Bet, now time.Time) error {
	if b.IsTerminal() {
		return apperror.ErrAlreadySettled()
	}
	b.Status = BetStatusRefunded
	b.SettledAt = &now
	return nil
}

// BetCancellation records why a pending bet was cancelled and how much was
// refunded.
type BetCancellation struct {
	ID           uuid.UUID `json:"id"`
	BetID        uuid.UUID `json:"bet_id"`
	Reason       string    `json:"reason"`
	RefundAmount int64     `json:"refund_amount"`
	CreatedAt    time.Time `json:"created_at"`
}
