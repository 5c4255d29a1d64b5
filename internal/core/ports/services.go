package ports

import (
	"context"

	"esports-wagering-platform/internal/core/domain"
	"esports-wagering-platform/pkg/contracts/events"

	"github.com/google/uuid"
)

//go:generate mockgen -source=services.go -destination=mocks/services.go -package=mocks

// QuotaGuard is the stateless pre-commit policy check for bet placement and
// withdrawals. It is advisory: a pass does not reserve anything, and the
// ledger re-verifies every precondition inside its atomic region. Checks run
// in a fixed order and short-circuit on the first failure; a store error
// fails closed as DependencyUnavailable.
type QuotaGuard interface {
	EvaluateBet(ctx context.Context, accountID uuid.UUID, amount int64) error
	EvaluateWithdrawal(ctx context.Context, accountID uuid.UUID, amount int64) error
}

// PlaceBetRequest holds validated input for bet placement. Odds are looked
// up from the open market at placement time, never supplied by the caller.
type PlaceBetRequest struct {
	AccountID  uuid.UUID
	MatchID    string
	Amount     int64
	Prediction string
	BetClass   domain.BetClass
	MarketType domain.MarketType
}

// Ledger is the only component allowed to mutate account balances. Every
// operation commits the balance change together with its causing record, or
// not at all.
type Ledger interface {
	PlaceBet(ctx context.Context, req PlaceBetRequest) (*domain.Bet, error)
	CancelBet(ctx context.Context, betID, requesterID uuid.UUID, admin bool, reason string) (*domain.Bet, error)
	Deposit(ctx context.Context, accountID uuid.UUID, amount int64, paymentRef string) (*domain.Transaction, error)
	Withdraw(ctx context.Context, accountID uuid.UUID, amount int64, paymentRef string) (*domain.Transaction, error)
	// SettleTransaction completes or fails a pending deposit/withdrawal on
	// the payment gateway's callback. A completed deposit credits the
	// balance; a failed withdrawal refunds the debit.
	SettleTransaction(ctx context.Context, txnID uuid.UUID, success bool) (*domain.Transaction, error)
}

// Settlement resolves pending bets once a match outcome is known. Re-running
// settlement is safe: only bets still pending are touched.
type Settlement interface {
	// SettleMatch resolves all pending bets on the match. If outcome is
	// empty, the match feed's resolved outcome is used.
	SettleMatch(ctx context.Context, matchID string, outcome string) (*domain.SettlementReport, error)
	// VoidMatch refunds every pending bet on an abandoned match.
	VoidMatch(ctx context.Context, matchID string, reason string) (*domain.SettlementReport, error)
}

// Reporting exposes read-side account queries.
type Reporting interface {
	Balance(ctx context.Context, accountID uuid.UUID) (int64, error)
	BetStats(ctx context.Context, accountID uuid.UUID) (*BetStats, error)
	ListBets(ctx context.Context, params BetListParams) ([]domain.Bet, int64, error)
	GetBet(ctx context.Context, betID, requesterID uuid.UUID, admin bool) (*domain.Bet, error)
	ListTransactions(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]domain.Transaction, int64, error)
}

// MatchProvider is the boundary to the match/market collaborator. The ledger
// consults IsBettable and OpenMarket before placement; the settlement engine
// consults ResolvedOutcome.
type MatchProvider interface {
	IsBettable(ctx context.Context, matchID string, class domain.BetClass) (bool, error)
	OpenMarket(ctx context.Context, matchID string, market domain.MarketType) (*domain.Market, error)
	// ResolvedOutcome returns the final outcome, or "" while unresolved.
	ResolvedOutcome(ctx context.Context, matchID string) (string, error)
}

// Notifier publishes bet lifecycle events to the notification collaborator.
// Callers treat publishing as fire-and-forget.
type Notifier interface {
	Publish(ctx context.Context, event events.BetEvent) error
}

// CacheInvalidator tells the read-side cache collaborator to drop entries
// matching resource-scoped key patterns after a committed state change.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, patterns ...string) error
}

// TokenClaims holds the identity the auth collaborator put into a token.
type TokenClaims struct {
	AccountID uuid.UUID
	Role      string
}

// TokenService validates tokens issued by the auth collaborator. The core
// trusts the resulting identity and performs no credential verification.
type TokenService interface {
	Generate(accountID uuid.UUID, role string) (string, error)
	Validate(tokenString string) (*TokenClaims, error)
}
