package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"esports-wagering-platform/config"
	"esports-wagering-platform/internal/adapter/metrics"
	"esports-wagering-platform/internal/core/domain"
	"esports-wagering-platform/internal/core/ports"
	"esports-wagering-platform/pkg/apperror"
	"esports-wagering-platform/pkg/contracts/events"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// LedgerService implements ports.Ledger. It is the only writer of account
// balances. Every money movement locks the account row, re-checks its
// preconditions under the lock, and commits the balance change together with
// the record that explains it.
type LedgerService struct {
	accountRepo ports.AccountRepository
	betRepo     ports.BetRepository
	txRepo      ports.TransactionRepository
	cancelRepo  ports.CancellationRepository
	transactor  ports.DBTransactor
	guard       ports.QuotaGuard
	matches     ports.MatchProvider
	notifier    ports.Notifier
	invalidator ports.CacheInvalidator
	cfg         config.BettingConfig
	log         zerolog.Logger
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(
	accountRepo ports.AccountRepository,
	betRepo ports.BetRepository,
	txRepo ports.TransactionRepository,
	cancelRepo ports.CancellationRepository,
	transactor ports.DBTransactor,
	guard ports.QuotaGuard,
	matches ports.MatchProvider,
	notifier ports.Notifier,
	invalidator ports.CacheInvalidator,
	cfg config.BettingConfig,
	log zerolog.Logger,
) *LedgerService {
	return &LedgerService{
		accountRepo: accountRepo,
		betRepo:     betRepo,
		txRepo:      txRepo,
		cancelRepo:  cancelRepo,
		transactor:  transactor,
		guard:       guard,
		matches:     matches,
		notifier:    notifier,
		invalidator: invalidator,
		cfg:         cfg,
		log:         log,
	}
}

// isSerializationFailure reports whether a commit lost to a concurrent
// writer (serialization failure or deadlock) and is worth retrying.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// PlaceBet validates, authorizes and atomically records a new bet: the stake
// debit, the bet record and the bet_debit transaction commit together or not
// at all. The payout is fixed from the market odds at this moment and never
// recomputed.
func (s *LedgerService) PlaceBet(ctx context.Context, req ports.PlaceBetRequest) (*domain.Bet, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.Prediction == "" {
		return nil, apperror.Validation("prediction is required")
	}
	if _, ok := domain.KnownMarketTypes[req.MarketType]; !ok {
		return nil, apperror.ErrUnsupportedMarket(string(req.MarketType))
	}

	if err := s.guard.EvaluateBet(ctx, req.AccountID, req.Amount); err != nil {
		s.recordRejection(err)
		return nil, err
	}

	bettable, err := s.matches.IsBettable(ctx, req.MatchID, req.BetClass)
	if err != nil {
		return nil, err
	}
	if !bettable {
		return nil, apperror.ErrMarketClosed()
	}

	market, err := s.matches.OpenMarket(ctx, req.MatchID, req.MarketType)
	if err != nil {
		return nil, err
	}
	if market == nil || !market.IsOpen() {
		return nil, apperror.ErrMarketClosed()
	}
	odds, ok := market.OddsFor(req.Prediction)
	if !ok {
		return nil, apperror.ErrUnknownPrediction(req.Prediction)
	}

	var bet *domain.Bet
	err = s.withRetries(ctx, func() error {
		b, err := s.placeBetTx(ctx, req, odds)
		if err != nil {
			return err
		}
		bet = b
		return nil
	})
	if err != nil {
		s.recordRejection(err)
		return nil, err
	}

	metrics.BetsPlaced.Inc()
	metrics.StakeVolume.Add(float64(bet.Amount))

	s.publish(ctx, events.BetEvent{
		Type:       events.BetPlaced,
		BetID:      bet.ID.String(),
		AccountID:  bet.AccountID.String(),
		MatchID:    bet.MatchID,
		StakeCents: bet.Amount,
		OddValue:   bet.Odds,
		Prediction: bet.Prediction,
	})
	s.invalidate(ctx, accountPatterns(bet.AccountID)...)

	s.log.Info().
		Str("bet_id", bet.ID.String()).
		Str("account_id", bet.AccountID.String()).
		Str("match_id", bet.MatchID).
		Int64("amount", bet.Amount).
		Float64("odds", bet.Odds).
		Msg("bet placed")

	return bet, nil
}

// placeBetTx is one attempt at the atomic placement step.
func (s *LedgerService) placeBetTx(ctx context.Context, req ports.PlaceBetRequest, odds float64) (*domain.Bet, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Re-check under the row lock: the guard's view may be stale.
	account, err := s.accountRepo.GetByIDForUpdate(ctx, dbTx, req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("lock account: %w", err)
	}
	if account == nil {
		return nil, apperror.ErrNotFound("account")
	}
	if !account.IsActive() {
		return nil, apperror.ErrAccountInactive()
	}
	if account.Balance < req.Amount {
		return nil, apperror.ErrInsufficientBalance(req.Amount, account.Balance)
	}

	if err := s.accountRepo.UpdateBalance(ctx, dbTx, account.ID, account.Balance-req.Amount); err != nil {
		return nil, fmt.Errorf("debit stake: %w", err)
	}

	now := time.Now().UTC()
	bet := &domain.Bet{
		ID:               uuid.New(),
		AccountID:        req.AccountID,
		MatchID:          req.MatchID,
		Amount:           req.Amount,
		Odds:             odds,
		Prediction:       req.Prediction,
		PotentialWinning: domain.PotentialWinning(req.Amount, odds),
		Status:           domain.BetStatusPending,
		BetClass:         req.BetClass,
		MarketType:       req.MarketType,
		CreatedAt:        now,
	}
	if err := s.betRepo.Create(ctx, dbTx, bet); err != nil {
		return nil, fmt.Errorf("create bet: %w", err)
	}

	txn := &domain.Transaction{
		ID:          uuid.New(),
		AccountID:   req.AccountID,
		Type:        domain.TransactionTypeBetDebit,
		Amount:      req.Amount,
		Status:      domain.TransactionStatusCompleted,
		Reference:   "bet:" + bet.ID.String(),
		CreatedAt:   now,
		ProcessedAt: &now,
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, fmt.Errorf("create bet debit: %w", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return bet, nil
}

// CancelBet cancels a pending bet and refunds the stake atomically. Only the
// bet's owner or an admin may cancel; the conditional status transition
// loses cleanly to a concurrent settlement.
func (s *LedgerService) CancelBet(ctx context.Context, betID, requesterID uuid.UUID, admin bool, reason string) (*domain.Bet, error) {
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
	if bet.IsTerminal() {
		return nil, apperror.ErrNotCancellable()
	}

	now := time.Now().UTC()
	err = s.withRetries(ctx, func() error {
		return s.cancelBetTx(ctx, bet, reason, now)
	})
	if err != nil {
		return nil, err
	}

	bet.Status = domain.BetStatusCancelled
	bet.SettledAt = &now

	metrics.BetsSettled.WithLabelValues(string(domain.BetStatusCancelled)).Inc()

	s.publish(ctx, events.BetEvent{
		Type:       events.BetCancelled,
		BetID:      bet.ID.String(),
		AccountID:  bet.AccountID.String(),
		MatchID:    bet.MatchID,
		StakeCents: bet.Amount,
		OddValue:   bet.Odds,
		Prediction: bet.Prediction,
	})
	s.invalidate(ctx, accountPatterns(bet.AccountID)...)

	s.log.Info().
		Str("bet_id", bet.ID.String()).
		Str("reason", reason).
		Bool("admin", admin).
		Msg("bet cancelled")

	return bet, nil
}

func (s *LedgerService) cancelBetTx(ctx context.Context, bet *domain.Bet, reason string, now time.Time) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	account, err := s.accountRepo.GetByIDForUpdate(ctx, dbTx, bet.AccountID)
	if err != nil {
		return fmt.Errorf("lock account: %w", err)
	}
	if account == nil {
		return apperror.ErrNotFound("account")
	}

	moved, err := s.betRepo.SettleFromPending(ctx, dbTx, bet.ID, domain.BetStatusCancelled, 0, now)
	if err != nil {
		return fmt.Errorf("cancel bet: %w", err)
	}
	if !moved {
		// Settled or cancelled by another writer since we read it.
		return apperror.ErrNotCancellable()
	}

	if err := s.accountRepo.UpdateBalance(ctx, dbTx, account.ID, account.Balance+bet.Amount); err != nil {
		return fmt.Errorf("refund stake: %w", err)
	}

	txn := &domain.Transaction{
		ID:          uuid.New(),
		AccountID:   bet.AccountID,
		Type:        domain.TransactionTypeRefund,
		Amount:      bet.Amount,
		Status:      domain.TransactionStatusCompleted,
		Reference:   "bet:" + bet.ID.String(),
		CreatedAt:   now,
		ProcessedAt: &now,
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return fmt.Errorf("create refund: %w", err)
	}

	cancellation := &domain.BetCancellation{
		ID:           uuid.New(),
		BetID:        bet.ID,
		Reason:       reason,
		RefundAmount: bet.Amount,
		CreatedAt:    now,
	}
	if err := s.cancelRepo.Create(ctx, dbTx, cancellation); err != nil {
		return fmt.Errorf("create cancellation: %w", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Deposit records a pending deposit. The balance is credited only when the
// payment gateway confirms via SettleTransaction.
func (s *LedgerService) Deposit(ctx context.Context, accountID uuid.UUID, amount int64, paymentRef string) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, apperror.ErrDependencyUnavailable("account store", err)
	}
	if account == nil {
		return nil, apperror.ErrNotFound("account")
	}
	if !account.IsActive() {
		return nil, apperror.ErrAccountInactive()
	}

	txn := &domain.Transaction{
		ID:        uuid.New(),
		AccountID: accountID,
		Type:      domain.TransactionTypeDeposit,
		Amount:    amount,
		Status:    domain.TransactionStatusPending,
		Reference: paymentRef,
		CreatedAt: time.Now().UTC(),
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create deposit: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("txn_id", txn.ID.String()).
		Str("account_id", accountID.String()).
		Int64("amount", amount).
		Msg("deposit initiated")

	return txn, nil
}

// Withdraw debits the balance immediately and records a pending withdrawal.
// A failed gateway callback refunds the debit via SettleTransaction.
func (s *LedgerService) Withdraw(ctx context.Context, accountID uuid.UUID, amount int64, paymentRef string) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	if err := s.guard.EvaluateWithdrawal(ctx, accountID, amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID:        uuid.New(),
		AccountID: accountID,
		Type:      domain.TransactionTypeWithdrawal,
		Amount:    amount,
		Status:    domain.TransactionStatusPending,
		Reference: paymentRef,
		CreatedAt: now,
	}

	err := s.withRetries(ctx, func() error {
		dbTx, err := s.transactor.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer dbTx.Rollback(ctx) //nolint:errcheck

		account, err := s.accountRepo.GetByIDForUpdate(ctx, dbTx, accountID)
		if err != nil {
			return fmt.Errorf("lock account: %w", err)
		}
		if account == nil {
			return apperror.ErrNotFound("account")
		}
		if !account.IsActive() {
			return apperror.ErrAccountInactive()
		}
		if account.Balance < amount {
			return apperror.ErrInsufficientBalance(amount, account.Balance)
		}

		if err := s.accountRepo.UpdateBalance(ctx, dbTx, accountID, account.Balance-amount); err != nil {
			return fmt.Errorf("debit withdrawal: %w", err)
		}
		if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
			return fmt.Errorf("create withdrawal: %w", err)
		}
		if err := dbTx.Commit(ctx); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, accountPatterns(accountID)...)

	s.log.Info().
		Str("txn_id", txn.ID.String()).
		Str("account_id", accountID.String()).
		Int64("amount", amount).
		Msg("withdrawal initiated")

	return txn, nil
}

// SettleTransaction completes or fails a pending deposit/withdrawal on the
// gateway callback. The conditional transition makes duplicate callbacks
// harmless: the second one gets LIF_001 and changes nothing.
func (s *LedgerService) SettleTransaction(ctx context.Context, txnID uuid.UUID, success bool) (*domain.Transaction, error) {
	txn, err := s.txRepo.GetByID(ctx, txnID)
	if err != nil {
		return nil, apperror.ErrDependencyUnavailable("transaction store", err)
	}
	if txn == nil {
		return nil, apperror.ErrNotFound("transaction")
	}
	if txn.Type != domain.TransactionTypeDeposit && txn.Type != domain.TransactionTypeWithdrawal {
		return nil, apperror.Validation("only deposits and withdrawals can be settled")
	}
	if txn.IsTerminal() {
		return nil, apperror.ErrAlreadySettled()
	}

	status := domain.TransactionStatusCompleted
	if !success {
		status = domain.TransactionStatusFailed
	}
	now := time.Now().UTC()

	err = s.withRetries(ctx, func() error {
		dbTx, err := s.transactor.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer dbTx.Rollback(ctx) //nolint:errcheck

		account, err := s.accountRepo.GetByIDForUpdate(ctx, dbTx, txn.AccountID)
		if err != nil {
			return fmt.Errorf("lock account: %w", err)
		}
		if account == nil {
			return apperror.ErrNotFound("account")
		}

		moved, err := s.txRepo.SettleFromPending(ctx, dbTx, txn.ID, status, now)
		if err != nil {
			return fmt.Errorf("settle transaction: %w", err)
		}
		if !moved {
			return apperror.ErrAlreadySettled()
		}

		// Completed deposit credits the balance; failed withdrawal refunds
		// the debit taken at initiation. The other two cases move no money.
		switch {
		case txn.Type == domain.TransactionTypeDeposit && success:
			err = s.accountRepo.UpdateBalance(ctx, dbTx, account.ID, account.Balance+txn.Amount)
		case txn.Type == domain.TransactionTypeWithdrawal && !success:
			err = s.accountRepo.UpdateBalance(ctx, dbTx, account.ID, account.Balance+txn.Amount)
		}
		if err != nil {
			return fmt.Errorf("apply settlement: %w", err)
		}

		return dbTx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	txn.Status = status
	txn.ProcessedAt = &now

	s.invalidate(ctx, accountPatterns(txn.AccountID)...)

	s.log.Info().
		Str("txn_id", txn.ID.String()).
		Str("type", string(txn.Type)).
		Str("status", string(status)).
		Msg("transaction settled")

	return txn, nil
}

// withRetries runs fn, retrying a bounded number of times on serialization
// failures. Domain errors pass through untouched; exhausted retries surface
// as a conflict the caller may retry.
func (s *LedgerService) withRetries(ctx context.Context, fn func() error) error {
	attempts := s.cfg.ConflictRetries
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil {
			return nil
		}
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		if !isSerializationFailure(err) {
			return apperror.InternalError(err)
		}
		metrics.ConflictRetries.Inc()
		s.log.Warn().Err(err).Int("attempt", i+1).Msg("serialization conflict, retrying")
	}
	return apperror.ErrConflict(err)
}

func (s *LedgerService) publish(ctx context.Context, event events.BetEvent) {
	if err := s.notifier.Publish(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("type", string(event.Type)).Msg("failed to publish bet event")
	}
}

func (s *LedgerService) invalidate(ctx context.Context, patterns ...string) {
	if err := s.invalidator.Invalidate(ctx, patterns...); err != nil {
		s.log.Warn().Err(err).Msg("cache invalidation failed")
	}
}

func (s *LedgerService) recordRejection(err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		metrics.BetsRejected.WithLabelValues(appErr.Code).Inc()
	}
}

// accountPatterns lists the cache key patterns touched by any balance change
// on the account.
func accountPatterns(accountID uuid.UUID) []string {
	return []string{
		"account:" + accountID.String() + ":*",
	}
}
