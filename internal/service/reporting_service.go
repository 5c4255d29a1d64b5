package service

import (
	"context"

	"esports-wagering-platform/internal/core/domain"
	"esports-wagering-platform/internal/core/ports"
	"esports-wagering-platform/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ReportingService implements ports.Reporting, the read side of the ledger.
type ReportingService struct {
	accountRepo ports.AccountRepository
	betRepo     ports.BetRepository
	txRepo      ports.TransactionRepository
	log         zerolog.Logger
}

// NewReportingService creates a new ReportingService.
func NewReportingService(
	accountRepo ports.AccountRepository,
	betRepo ports.BetRepository,
	txRepo ports.TransactionRepository,
	log zerolog.Logger,
) *ReportingService {
	return &ReportingService{
		accountRepo: accountRepo,
		betRepo:     betRepo,
		txRepo:      txRepo,
		log:         log,
	}
}

// Balance returns the account's current balance.
func (s *ReportingService) Balance(ctx context.Context, accountID uuid.UUID) (int64, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return 0, apperror.ErrDependencyUnavailable("account store", err)
	}
	if account == nil {
		return 0, apperror.ErrNotFound("account")
	}
	return account.Balance, nil
}

// BetStats returns the account's aggregated betting history.
func (s *ReportingService) BetStats(ctx context.Context, accountID uuid.UUID) (*ports.BetStats, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, apperror.ErrDependencyUnavailable("account store", err)
	}
	if account == nil {
		return nil, apperror.ErrNotFound("account")
	}
	stats, err := s.betRepo.Stats(ctx, accountID)
	if err != nil {
		return nil, apperror.ErrDependencyUnavailable("bet store", err)
	}
	return stats, nil
}

// ListBets returns a page of the account's bets.
func (s *ReportingService) ListBets(ctx context.Context, params ports.BetListParams) ([]domain.Bet, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}
	bets, total, err := s.betRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.ErrDependencyUnavailable("bet store", err)
	}
	return bets, total, nil
}

// GetBet fetches one bet. Non-admin requesters may only see their own.
func (s *ReportingService) GetBet(ctx context.Context, betID, requesterID uuid.UUID, admin bool) (*domain.Bet, error) {
	bet, err := s.betRepo.GetByID(ctx, betID)
	if err != nil {
		return nil, apperror.ErrDependencyUnavailable("bet store", err)
	}
	if bet == nil {
		return nil, apperror.ErrNotFound("bet")
	}
	if !admin && bet.AccountID != requesterID {
		return nil, apperror.ErrForbidden()
	}
	return bet, nil
}

// ListTransactions returns a page of the account's transaction history.
func (s *ReportingService) ListTransactions(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]domain.Transaction, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	txns, total, err := s.txRepo.ListByAccount(ctx, accountID, page, pageSize)
	if err != nil {
		return nil, 0, apperror.ErrDependencyUnavailable("transaction store", err)
	}
	return txns, total, nil
}
