package service

import (
	"context"
	"time"

	"esports-wagering-platform/config"
	"esports-wagering-platform/internal/core/domain"
	"esports-wagering-platform/internal/core/ports"
	"esports-wagering-platform/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// GuardService implements ports.QuotaGuard. Checks run in a fixed order and
// short-circuit on the first failure; the returned error names the violated
// limit and the shortfall. A store error rejects the request rather than
// letting an unverifiable bet through.
//
// The guard is advisory only: it holds no locks and reserves nothing, so a
// pass can go stale before the ledger commits. The ledger re-verifies the
// account and balance inside its atomic region.
type GuardService struct {
	accountRepo ports.AccountRepository
	betRepo     ports.BetRepository
	txRepo      ports.TransactionRepository
	cfg         config.BettingConfig
	log         zerolog.Logger
}

// NewGuardService creates a new GuardService.
func NewGuardService(
	accountRepo ports.AccountRepository,
	betRepo ports.BetRepository,
	txRepo ports.TransactionRepository,
	cfg config.BettingConfig,
	log zerolog.Logger,
) *GuardService {
	return &GuardService{
		accountRepo: accountRepo,
		betRepo:     betRepo,
		txRepo:      txRepo,
		cfg:         cfg,
		log:         log,
	}
}

// windowStart returns local midnight in the configured timezone; daily
// limits reset there, not on a rolling 24h window.
func (s *GuardService) windowStart(now time.Time) time.Time {
	loc := s.cfg.Location()
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// EvaluateBet runs the placement policy checks in order: account active,
// stake bounds, balance, daily stake limit, pending-bet cap.
func (s *GuardService) EvaluateBet(ctx context.Context, accountID uuid.UUID, amount int64) error {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return apperror.ErrDependencyUnavailable("account store", err)
	}
	if account == nil {
		return apperror.ErrNotFound("account")
	}
	if !account.IsActive() {
		return apperror.ErrAccountInactive()
	}

	if amount < s.cfg.MinStake {
		return apperror.ErrStakeBelowMinimum(s.cfg.MinStake)
	}
	if amount > s.cfg.MaxStake {
		return apperror.ErrStakeAboveMaximum(s.cfg.MaxStake)
	}

	if account.Balance < amount {
		return apperror.ErrInsufficientBalance(amount, account.Balance)
	}

	limit := s.cfg.DailyBetLimit
	if account.DailyBetLimit != nil {
		limit = *account.DailyBetLimit
	}
	used, err := s.betRepo.DailyStakeTotal(ctx, accountID, s.windowStart(time.Now()))
	if err != nil {
		return apperror.ErrDependencyUnavailable("bet store", err)
	}
	if used+amount > limit {
		return apperror.ErrDailyBetLimitExceeded(limit, used)
	}

	pending, err := s.betRepo.CountPending(ctx, accountID)
	if err != nil {
		return apperror.ErrDependencyUnavailable("bet store", err)
	}
	if pending >= s.cfg.MaxPendingBets {
		return apperror.ErrTooManyPendingBets(s.cfg.MaxPendingBets, pending)
	}

	return nil
}

// EvaluateWithdrawal runs the withdrawal policy checks: account active,
// amount bounds, balance, daily withdrawal limit. Stakes on pending bets are
// already debited from the balance, so no extra hold is subtracted here.
func (s *GuardService) EvaluateWithdrawal(ctx context.Context, accountID uuid.UUID, amount int64) error {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return apperror.ErrDependencyUnavailable("account store", err)
	}
	if account == nil {
		return apperror.ErrNotFound("account")
	}
	if !account.IsActive() {
		return apperror.ErrAccountInactive()
	}

	if amount < s.cfg.MinWithdraw {
		return apperror.ErrStakeBelowMinimum(s.cfg.MinWithdraw)
	}
	if amount > s.cfg.MaxWithdraw {
		return apperror.ErrStakeAboveMaximum(s.cfg.MaxWithdraw)
	}

	if account.Balance < amount {
		return apperror.ErrInsufficientBalance(amount, account.Balance)
	}

	limit := s.cfg.DailyWithdrawal
	if account.DailyWithdrawLimit != nil {
		limit = *account.DailyWithdrawLimit
	}
	used, err := s.txRepo.DailyTotalByType(ctx, accountID, domain.TransactionTypeWithdrawal, s.windowStart(time.Now()))
	if err != nil {
		return apperror.ErrDependencyUnavailable("transaction store", err)
	}
	if used+amount > limit {
		return apperror.ErrDailyWithdrawLimitExceeded(limit, used)
	}

	return nil
}
