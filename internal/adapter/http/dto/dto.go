package dto

// PlaceBetRequest is the request body for placing a bet.
type PlaceBetRequest struct {
	MatchID    string `json:"match_id" binding:"required,safe_id,max=100"`
	Amount     int64  `json:"amount" binding:"required,gt=0"`
	Prediction string `json:"prediction" binding:"required,max=100"`
	BetClass   string `json:"bet_class" binding:"omitempty,oneof=pre-match live"`
	MarketType string `json:"market_type" binding:"omitempty,max=50"`
}

// CancelBetRequest is the request body for cancelling a bet.
type CancelBetRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=255"`
}

// BetResponse is the response body for a single bet.
type BetResponse struct {
	ID               string  `json:"id"`
	MatchID          string  `json:"match_id"`
	Amount           int64   `json:"amount"`
	Odds             float64 `json:"odds"`
	Prediction       string  `json:"prediction"`
	PotentialWinning int64   `json:"potential_winning"`
	WinningAmount    int64   `json:"winning_amount"`
	Status           string  `json:"status"`
	BetClass         string  `json:"bet_class"`
	MarketType       string  `json:"market_type"`
	CreatedAt        string  `json:"created_at"`
	SettledAt        *string `json:"settled_at,omitempty"`
}

// BetListResponse wraps a paginated bet list.
type BetListResponse struct {
	Items      []BetResponse `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

// BetStatsResponse is the response for account betting statistics.
type BetStatsResponse struct {
	TotalBets     int64   `json:"total_bets"`
	TotalStaked   int64   `json:"total_staked"`
	TotalWinnings int64   `json:"total_winnings"`
	WonBets       int64   `json:"won_bets"`
	WinRate       float64 `json:"win_rate"`
	ProfitLoss    int64   `json:"profit_loss"`
}

// BalanceResponse is the response for a balance query.
type BalanceResponse struct {
	Balance int64 `json:"balance"`
}

// DepositRequest is the request body for initiating a deposit.
type DepositRequest struct {
	Amount     int64  `json:"amount" binding:"required,gt=0"`
	PaymentRef string `json:"payment_ref" binding:"required,max=100"`
}

// WithdrawRequest is the request body for initiating a withdrawal.
type WithdrawRequest struct {
	Amount     int64  `json:"amount" binding:"required,gt=0"`
	PaymentRef string `json:"payment_ref" binding:"required,max=100"`
}

// SettleTransactionRequest is the gateway callback body completing or
// failing a pending deposit or withdrawal.
type SettleTransactionRequest struct {
	Success *bool `json:"success" binding:"required"`
}

// TransactionResponse is the response body for a wallet transaction.
type TransactionResponse struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Amount      int64   `json:"amount"`
	Status      string  `json:"status"`
	Reference   string  `json:"reference,omitempty"`
	CreatedAt   string  `json:"created_at"`
	ProcessedAt *string `json:"processed_at,omitempty"`
}

// TransactionListResponse wraps a paginated transaction list.
type TransactionListResponse struct {
	Items      []TransactionResponse `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// SettleMatchRequest is the admin request body for settling a match. An
// empty outcome defers to the match feed's resolved result.
type SettleMatchRequest struct {
	Outcome string `json:"outcome" binding:"omitempty,max=100"`
}

// VoidMatchRequest is the admin request body for voiding a match.
type VoidMatchRequest struct {
	Reason string `json:"reason" binding:"required,max=255"`
}

// SettlementReportResponse summarises a settlement or void run.
type SettlementReportResponse struct {
	MatchID            string              `json:"match_id"`
	Outcome            string              `json:"outcome,omitempty"`
	WonCount           int                 `json:"won_count"`
	LostCount          int                 `json:"lost_count"`
	RefundedCount      int                 `json:"refunded_count"`
	SkippedCount       int                 `json:"skipped_count"`
	TotalPayout        int64               `json:"total_payout"`
	LargestPayoutBetID *string             `json:"largest_payout_bet_id,omitempty"`
	Failures           []SettlementFailure `json:"failures,omitempty"`
}

// SettlementFailure is one bet that failed to settle during a run.
type SettlementFailure struct {
	BetID  string `json:"bet_id"`
	Reason string `json:"reason"`
}
