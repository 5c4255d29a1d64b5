package postgres

import (
	"context"
	"errors"
	"fmt"

	"esports-wagering-platform/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CancellationRepo implements ports.CancellationRepository.
type CancellationRepo struct {
	pool Pool
}

// NewCancellationRepo creates a new CancellationRepo.
func NewCancellationRepo(pool Pool) *CancellationRepo {
	return &CancellationRepo{pool: pool}
}

// Create inserts a cancellation record within a database transaction, so it
// commits together with the bet's status change and the refund.
func (r *CancellationRepo) Create(ctx context.Context, tx pgx.Tx, c *domain.BetCancellation) error {
	query := `INSERT INTO bet_cancellations (id, bet_id, reason, refund_amount, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := tx.Exec(ctx, query, c.ID, c.BetID, c.Reason, c.RefundAmount, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert cancellation: %w", err)
	}
	return nil
}

// GetByBetID fetches the cancellation record for a bet, nil if none exists.
func (r *CancellationRepo) GetByBetID(ctx context.Context, betID uuid.UUID) (*domain.BetCancellation, error) {
	query := `SELECT id, bet_id, reason, refund_amount, created_at
		FROM bet_cancellations WHERE bet_id = $1`

	c := &domain.BetCancellation{}
	err := r.pool.QueryRow(ctx, query, betID).Scan(
		&c.ID, &c.BetID, &c.Reason, &c.RefundAmount, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cancellation by bet id: %w", err)
	}
	return c, nil
}
