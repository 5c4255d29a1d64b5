package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"esports-wagering-platform/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, account_id, type, amount, status, reference, created_at, processed_at`

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create appends a transaction record within a database transaction, so the
// record commits together with the balance change it describes.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (id, account_id, type, amount, status, reference, created_at, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.AccountID, t.Type, t.Amount, t.Status,
		t.Reference, t.CreatedAt, t.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID fetches a transaction by UUID.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE id = $1`, transactionColumns)

	t := &domain.Transaction{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.AccountID, &t.Type, &t.Amount, &t.Status,
		&t.Reference, &t.CreatedAt, &t.ProcessedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction by id: %w", err)
	}
	return t, nil
}

// SettleFromPending conditionally moves a pending transaction to a terminal
// status. The status guard makes concurrent gateway callbacks race safely:
// exactly one sees RowsAffected == 1.
func (r *TransactionRepo) SettleFromPending(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.TransactionStatus, processedAt time.Time) (bool, error) {
	query := `UPDATE transactions SET status = $1, processed_at = $2
		WHERE id = $3 AND status = 'pending'`

	tag, err := tx.Exec(ctx, query, status, processedAt, id)
	if err != nil {
		return false, fmt.Errorf("settle transaction: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// DailyTotalByType sums one transaction type's amounts since the window
// start. Pending transactions count: a withdrawal awaiting the gateway has
// already consumed quota.
func (r *TransactionRepo) DailyTotalByType(ctx context.Context, accountID uuid.UUID, txType domain.TransactionType, since time.Time) (int64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions
		WHERE account_id = $1 AND type = $2 AND created_at >= $3 AND status IN ('pending', 'completed')`

	var total int64
	if err := r.pool.QueryRow(ctx, query, accountID, txType, since).Scan(&total); err != nil {
		return 0, fmt.Errorf("daily transaction total: %w", err)
	}
	return total, nil
}

// ListByAccount fetches an account's transaction history with pagination,
// newest first.
func (r *TransactionRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]domain.Transaction, int64, error) {
	countQuery := `SELECT COUNT(*) FROM transactions WHERE account_id = $1`
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, accountID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	offset := (page - 1) * pageSize
	dataQuery := fmt.Sprintf(`SELECT %s FROM transactions WHERE account_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, transactionColumns)

	rows, err := r.pool.Query(ctx, dataQuery, accountID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		t := domain.Transaction{}
		err := rows.Scan(
			&t.ID, &t.AccountID, &t.Type, &t.Amount, &t.Status,
			&t.Reference, &t.CreatedAt, &t.ProcessedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transactions: %w", err)
	}
	return txns, total, nil
}
