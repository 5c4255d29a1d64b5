package domain

import (
	"github.com/google/uuid"
)

// SettlementFailure records a single bet that could not be settled during a
// match settlement run. Failures are isolated per bet and never abort the
// batch; the bet is picked up again on the next run if still pending.
type SettlementFailure struct {
	BetID  uuid.UUID `json:"bet_id"`
	Reason string    `json:"reason"`
}

// SettlementReport summarises one settlement (or void) run over a match.
type SettlementReport struct {
	MatchID            string              `json:"match_id"`
	Outcome            string              `json:"outcome"`
	WonCount           int                 `json:"won_count"`
	LostCount          int                 `json:"lost_count"`
	RefundedCount      int                 `json:"refunded_count"`
	SkippedCount       int                 `json:"skipped_count"` // raced to terminal by another writer
	TotalPayout        int64               `json:"total_payout"`
	LargestPayoutBetID *uuid.UUID          `json:"largest_payout_bet_id,omitempty"`
	LargestPayout      int64               `json:"largest_payout"`
	Failures           []SettlementFailure `json:"failures,omitempty"`
}

// RecordPayout accumulates a winning payout and tracks the largest single
// payout. Ties break to the lexicographically smallest bet id so re-running
// settlement yields a deterministic report.
func (r *SettlementReport) RecordPayout(betID uuid.UUID, amount int64) {
	r.TotalPayout += amount
	if r.LargestPayoutBetID == nil ||
		amount > r.LargestPayout ||
		(amount == r.LargestPayout && betID.String() < r.LargestPayoutBetID.String()) {
		id := betID
		r.LargestPayoutBetID = &id
		r.LargestPayout = amount
	}
}

// RecordFailure notes a bet whose settlement failed without aborting the run.
func (r *SettlementReport) RecordFailure(betID uuid.UUID, reason string) {
	r.Failures = append(r.Failures, SettlementFailure{BetID: betID, Reason: reason})
}
