package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"esports-wagering-platform/internal/core/domain"
	"esports-wagering-platform/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const betColumns = `id, account_id, match_id, amount, odds, prediction, potential_winning,
		winning_amount, status, bet_class, market_type, settled_at, created_at`

// BetRepo implements ports.BetRepository.
type BetRepo struct {
	pool Pool
}

// NewBetRepo creates a new BetRepo.
func NewBetRepo(pool Pool) *BetRepo {
	return &BetRepo{pool: pool}
}

// Create inserts a new bet within a database transaction, so the bet record
// commits together with the stake debit.
func (r *BetRepo) Create(ctx context.Context, tx pgx.Tx, b *domain.Bet) error {
	query := `INSERT INTO bets (id, account_id, match_id, amount, odds, prediction, potential_winning,
		winning_amount, status, bet_class, market_type, settled_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := tx.Exec(ctx, query,
		b.ID, b.AccountID, b.MatchID, b.Amount, b.Odds, b.Prediction,
		b.PotentialWinning, b.WinningAmount, b.Status, b.BetClass,
		b.MarketType, b.SettledAt, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bet: %w", err)
	}
	return nil
}

// GetByID fetches a bet by UUID.
func (r *BetRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bet, error) {
	query := fmt.Sprintf(`SELECT %s FROM bets WHERE id = $1`, betColumns)

	b, err := scanBet(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bet by id: %w", err)
	}
	return b, nil
}

// ListPendingByMatch fetches every pending bet on a match, oldest first.
func (r *BetRepo) ListPendingByMatch(ctx context.Context, matchID string) ([]domain.Bet, error) {
	query := fmt.Sprintf(`SELECT %s FROM bets WHERE match_id = $1 AND status = 'pending'
		ORDER BY created_at, id`, betColumns)

	rows, err := r.pool.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("list pending bets: %w", err)
	}
	defer rows.Close()

	return collectBets(rows)
}

// SettleFromPending conditionally moves a bet out of `pending`. The status
// guard in the WHERE clause makes concurrent settlement and cancellation
// race safely: exactly one writer sees RowsAffected == 1.
func (r *BetRepo) SettleFromPending(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.BetStatus, winningAmount int64, settledAt time.Time) (bool, error) {
	query := `UPDATE bets SET status = $1, winning_amount = $2, settled_at = $3
		WHERE id = $4 AND status = 'pending'`

	tag, err := tx.Exec(ctx, query, status, winningAmount, settledAt, id)
	if err != nil {
		return false, fmt.Errorf("settle bet: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// DailyStakeTotal sums stakes committed since the window start. Cancelled and
// refunded bets returned the stake, so they no longer count against the
// daily limit.
func (r *BetRepo) DailyStakeTotal(ctx context.Context, accountID uuid.UUID, since time.Time) (int64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM bets
		WHERE account_id = $1 AND created_at >= $2 AND status IN ('pending', 'won', 'lost')`

	var total int64
	if err := r.pool.QueryRow(ctx, query, accountID, since).Scan(&total); err != nil {
		return 0, fmt.Errorf("daily stake total: %w", err)
	}
	return total, nil
}

// CountPending counts an account's unsettled bets.
func (r *BetRepo) CountPending(ctx context.Context, accountID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM bets WHERE account_id = $1 AND status = 'pending'`

	var count int
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count pending bets: %w", err)
	}
	return count, nil
}

// List fetches an account's bets with filtering and pagination, newest first.
func (r *BetRepo) List(ctx context.Context, params ports.BetListParams) ([]domain.Bet, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, fmt.Sprintf("account_id = $%d", argIdx))
	args = append(args, params.AccountID)
	argIdx++

	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *params.Status)
		argIdx++
	}
	if params.TerminalOnly {
		conditions = append(conditions, "status != 'pending'")
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM bets %s", where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bets: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT %s FROM bets %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		betColumns, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bets: %w", err)
	}
	defer rows.Close()

	bets, err := collectBets(rows)
	if err != nil {
		return nil, 0, err
	}
	return bets, total, nil
}

// Stats aggregates an account's betting history. Win rate and profit/loss
// are computed over settled (won/lost) bets only.
func (r *BetRepo) Stats(ctx context.Context, accountID uuid.UUID) (*ports.BetStats, error) {
	query := `SELECT
		COUNT(*) FILTER (WHERE status NOT IN ('cancelled', 'refunded')),
		COALESCE(SUM(amount) FILTER (WHERE status NOT IN ('cancelled', 'refunded')), 0),
		COALESCE(SUM(amount) FILTER (WHERE status IN ('won', 'lost')), 0),
		COALESCE(SUM(winning_amount) FILTER (WHERE status = 'won'), 0),
		COUNT(*) FILTER (WHERE status = 'won'),
		COUNT(*) FILTER (WHERE status = 'lost')
		FROM bets WHERE account_id = $1`

	var totalBets, totalStaked, settledStaked, totalWinnings, wonBets, lostBets int64
	err := r.pool.QueryRow(ctx, query, accountID).Scan(
		&totalBets, &totalStaked, &settledStaked, &totalWinnings, &wonBets, &lostBets,
	)
	if err != nil {
		return nil, fmt.Errorf("bet stats: %w", err)
	}

	stats := &ports.BetStats{
		TotalBets:     totalBets,
		TotalStaked:   totalStaked,
		TotalWinnings: totalWinnings,
		WonBets:       wonBets,
		ProfitLoss:    totalWinnings - settledStaked,
	}
	if settled := wonBets + lostBets; settled > 0 {
		stats.WinRate = float64(wonBets) / float64(settled) * 100
	}
	return stats, nil
}

func scanBet(row pgx.Row) (*domain.Bet, error) {
	b := &domain.Bet{}
	err := row.Scan(
		&b.ID, &b.AccountID, &b.MatchID, &b.Amount, &b.Odds, &b.Prediction,
		&b.PotentialWinning, &b.WinningAmount, &b.Status, &b.BetClass,
		&b.MarketType, &b.SettledAt, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func collectBets(rows pgx.Rows) ([]domain.Bet, error) {
	var bets []domain.Bet
	for rows.Next() {
		b, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bet: %w", err)
		}
		bets = append(bets, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bets: %w", err)
	}
	return bets, nil
}
