package ports

import (
	"context"
	"time"

	"esports-wagering-platform/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

//go:generate mockgen -source=repositories.go -destination=mocks/repositories.go -package=mocks

// AccountRepository defines persistence operations for accounts. Methods
// accepting pgx.Tx run inside the ledger's atomic region with pessimistic
// locking; only the ledger may mutate balances.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, newBalance int64) error
	SetStatus(ctx context.Context, id uuid.UUID, status domain.AccountStatus) error
}

// BetListParams holds filter + pagination for listing an account's bets.
type BetListParams struct {
	AccountID    uuid.UUID
	Status       *domain.BetStatus
	TerminalOnly bool
	Page         int
	PageSize     int
}

// BetStats aggregates an account's betting history.
type BetStats struct {
	TotalBets     int64
	TotalStaked   int64
	TotalWinnings int64
	WonBets       int64
	WinRate       float64 // percentage, 0 when no bets
	ProfitLoss    int64
}

// BetRepository defines persistence operations for bets.
type BetRepository interface {
	Create(ctx context.Context, tx pgx.Tx, bet *domain.Bet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bet, error)
	ListPendingByMatch(ctx context.Context, matchID string) ([]domain.Bet, error)
	// SettleFromPending conditionally moves a bet out of `pending`, setting
	// winning amount and settlement time. Returns false when the bet was
	// already terminal, so a raced settlement or cancellation loses cleanly.
	SettleFromPending(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.BetStatus, winningAmount int64, settledAt time.Time) (bool, error)
	// DailyStakeTotal sums stakes of pending/won/lost bets created at or
	// after `since` (local midnight for the daily limit window).
	DailyStakeTotal(ctx context.Context, accountID uuid.UUID, since time.Time) (int64, error)
	CountPending(ctx context.Context, accountID uuid.UUID) (int, error)
	List(ctx context.Context, params BetListParams) ([]domain.Bet, int64, error)
	Stats(ctx context.Context, accountID uuid.UUID) (*BetStats, error)
}

// TransactionRepository defines persistence for the append-only transaction
// ledger.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	// SettleFromPending conditionally moves a pending deposit/withdrawal to
	// completed or failed. Returns false when the transaction was already
	// terminal.
	SettleFromPending(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.TransactionStatus, processedAt time.Time) (bool, error)
	// DailyTotalByType sums pending+completed transaction amounts of one
	// type created at or after `since` (daily withdrawal limit window).
	DailyTotalByType(ctx context.Context, accountID uuid.UUID, txType domain.TransactionType, since time.Time) (int64, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]domain.Transaction, int64, error)
}

// CancellationRepository persists bet cancellation records.
type CancellationRepository interface {
	Create(ctx context.Context, tx pgx.Tx, c *domain.BetCancellation) error
	GetByBetID(ctx context.Context, betID uuid.UUID) (*domain.BetCancellation, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
