package events

// BetEventType identifies a bet lifecycle event consumed by the notification
// collaborator.
type BetEventType string

const (
	BetPlaced    BetEventType = "bet_placed"
	BetWon       BetEventType = "bet_won"
	BetLost      BetEventType = "bet_lost"
	BetCancelled BetEventType = "bet_cancelled"
	BetRefunded  BetEventType = "bet_refunded"
)

// BetEvent is the message published for every bet lifecycle transition.
// Delivery is fire-and-forget: a failed publish never fails the ledger
// operation that produced it.
type BetEvent struct {
	Type          BetEventType `json:"type"`
	BetID         string       `json:"bet_id"`
	AccountID     string       `json:"account_id"`
	MatchID       string       `json:"match_id"`
	StakeCents    int64        `json:"stake_cents"`
	OddValue      float64      `json:"odd_value"`
	Prediction    string       `json:"prediction"`
	WinningsCents int64        `json:"winnings_cents"`
	TsUnixMs      int64        `json:"ts_unix_ms"`
}
