package service

import (
	"context"
	"fmt"
	"time"

	"esports-wagering-platform/internal/adapter/metrics"
	"esports-wagering-platform/internal/core/domain"
	"esports-wagering-platform/internal/core/ports"
	"esports-wagering-platform/pkg/apperror"
	"esports-wagering-platform/pkg/contracts/events"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SettlementService implements ports.Settlement. Each bet settles in its own
// database transaction: a failure on one bet never rolls back another, and a
// re-run only touches bets still pending, so settlement is idempotent.
type SettlementService struct {
	accountRepo ports.AccountRepository
	betRepo     ports.BetRepository
	txRepo      ports.TransactionRepository
	transactor  ports.DBTransactor
	matches     ports.MatchProvider
	notifier    ports.Notifier
	invalidator ports.CacheInvalidator
	log         zerolog.Logger
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(
	accountRepo ports.AccountRepository,
	betRepo ports.BetRepository,
	txRepo ports.TransactionRepository,
	transactor ports.DBTransactor,
	matches ports.MatchProvider,
	notifier ports.Notifier,
	invalidator ports.CacheInvalidator,
	log zerolog.Logger,
) *SettlementService {
	return &SettlementService{
		accountRepo: accountRepo,
		betRepo:     betRepo,
		txRepo:      txRepo,
		transactor:  transactor,
		matches:     matches,
		notifier:    notifier,
		invalidator: invalidator,
		log:         log,
	}
}

// SettleMatch resolves every pending bet on the match against the outcome.
// If outcome is empty it is fetched from the match feed; an unresolved match
// cannot be settled.
func (s *SettlementService) SettleMatch(ctx context.Context, matchID string, outcome string) (*domain.SettlementReport, error) {
	start := time.Now()

	if outcome == "" {
		resolved, err := s.matches.ResolvedOutcome(ctx, matchID)
		if err != nil {
			return nil, err
		}
		if resolved == "" {
			return nil, apperror.Validation("match outcome is not resolved yet")
		}
		outcome = resolved
	}

	bets, err := s.betRepo.ListPendingByMatch(ctx, matchID)
	if err != nil {
		return nil, apperror.ErrDependencyUnavailable("bet store", err)
	}

	report := &domain.SettlementReport{MatchID: matchID, Outcome: outcome}
	touched := make(map[string]struct{})

	for i := range bets {
		bet := &bets[i]
		won := bet.Prediction == outcome

		moved, err := s.settleBetTx(ctx, bet, won)
		if err != nil {
			report.RecordFailure(bet.ID, err.Error())
			s.log.Error().Err(err).Str("bet_id", bet.ID.String()).Msg("bet settlement failed")
			continue
		}
		if !moved {
			report.SkippedCount++
			continue
		}

		touched[bet.AccountID.String()] = struct{}{}

		if won {
			report.WonCount++
			report.RecordPayout(bet.ID, bet.PotentialWinning)
			metrics.BetsSettled.WithLabelValues(string(domain.BetStatusWon)).Inc()
			metrics.PayoutVolume.Add(float64(bet.PotentialWinning))
			s.publish(ctx, bet, events.BetWon, bet.PotentialWinning)
		} else {
			report.LostCount++
			metrics.BetsSettled.WithLabelValues(string(domain.BetStatusLost)).Inc()
			s.publish(ctx, bet, events.BetLost, 0)
		}
	}

	s.invalidateTouched(ctx, matchID, touched)

	metrics.SettlementDuration.Observe(time.Since(start).Seconds())

	s.log.Info().
		Str("match_id", matchID).
		Str("outcome", outcome).
		Int("won", report.WonCount).
		Int("lost", report.LostCount).
		Int("skipped", report.SkippedCount).
		Int("failed", len(report.Failures)).
		Int64("total_payout", report.TotalPayout).
		Msg("match settled")

	return report, nil
}

// settleBetTx settles one bet atomically: status transition, payout credit
// and bet_credit record commit together. Returns false when the bet raced
// to a terminal status first.
func (s *SettlementService) settleBetTx(ctx context.Context, bet *domain.Bet, won bool) (bool, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	account, err := s.accountRepo.GetByIDForUpdate(ctx, dbTx, bet.AccountID)
	if err != nil {
		return false, fmt.Errorf("lock account: %w", err)
	}
	if account == nil {
		return false, fmt.Errorf("account %s not found", bet.AccountID)
	}

	status := domain.BetStatusLost
	var winning int64
	if won {
		status = domain.BetStatusWon
		winning = bet.PotentialWinning
	}

	now := time.Now().UTC()
	moved, err := s.betRepo.SettleFromPending(ctx, dbTx, bet.ID, status, winning, now)
	if err != nil {
		return false, fmt.Errorf("settle bet: %w", err)
	}
	if !moved {
		return false, nil
	}

	if won {
		if err := s.accountRepo.UpdateBalance(ctx, dbTx, account.ID, account.Balance+winning); err != nil {
			return false, fmt.Errorf("credit winnings: %w", err)
		}
		txn := &domain.Transaction{
			ID:          uuid.New(),
			AccountID:   bet.AccountID,
			Type:        domain.TransactionTypeBetCredit,
			Amount:      winning,
			Status:      domain.TransactionStatusCompleted,
			Reference:   "bet:" + bet.ID.String(),
			CreatedAt:   now,
			ProcessedAt: &now,
		}
		if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
			return false, fmt.Errorf("create bet credit: %w", err)
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit tx: %w", err)
	}
	return true, nil
}

// VoidMatch refunds every pending bet on an abandoned match. Stakes return
// to their accounts; bets end refunded, not cancelled, so reporting can
// tell the cases apart.
func (s *SettlementService) VoidMatch(ctx context.Context, matchID string, reason string) (*domain.SettlementReport, error) {
	bets, err := s.betRepo.ListPendingByMatch(ctx, matchID)
	if err != nil {
		return nil, apperror.ErrDependencyUnavailable("bet store", err)
	}

	report := &domain.SettlementReport{MatchID: matchID}
	touched := make(map[string]struct{})

	for i := range bets {
		bet := &bets[i]

		moved, err := s.refundBetTx(ctx, bet)
		if err != nil {
			report.RecordFailure(bet.ID, err.Error())
			s.log.Error().Err(err).Str("bet_id", bet.ID.String()).Msg("bet refund failed")
			continue
		}
		if !moved {
			report.SkippedCount++
			continue
		}

		report.RefundedCount++
		touched[bet.AccountID.String()] = struct{}{}
		metrics.BetsSettled.WithLabelValues(string(domain.BetStatusRefunded)).Inc()
		s.publish(ctx, bet, events.BetRefunded, 0)
	}

	s.invalidateTouched(ctx, matchID, touched)

	s.log.Info().
		Str("match_id", matchID).
		Str("reason", reason).
		Int("refunded", report.RefundedCount).
		Int("skipped", report.SkippedCount).
		Msg("match voided")

	return report, nil
}

func (s *SettlementService) refundBetTx(ctx context.Context, bet *domain.Bet) (bool, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	account, err := s.accountRepo.GetByIDForUpdate(ctx, dbTx, bet.AccountID)
	if err != nil {
		return false, fmt.Errorf("lock account: %w", err)
	}
	if account == nil {
		return false, fmt.Errorf("account %s not found", bet.AccountID)
	}

	now := time.Now().UTC()
	moved, err := s.betRepo.SettleFromPending(ctx, dbTx, bet.ID, domain.BetStatusRefunded, 0, now)
	if err != nil {
		return false, fmt.Errorf("refund bet: %w", err)
	}
	if !moved {
		return false, nil
	}

	if err := s.accountRepo.UpdateBalance(ctx, dbTx, account.ID, account.Balance+bet.Amount); err != nil {
		return false, fmt.Errorf("refund stake: %w", err)
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
		return false, fmt.Errorf("create refund: %w", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit tx: %w", err)
	}
	return true, nil
}

func (s *SettlementService) publish(ctx context.Context, bet *domain.Bet, eventType events.BetEventType, winnings int64) {
	err := s.notifier.Publish(ctx, events.BetEvent{
		Type:          eventType,
		BetID:         bet.ID.String(),
		AccountID:     bet.AccountID.String(),
		MatchID:       bet.MatchID,
		StakeCents:    bet.Amount,
		OddValue:      bet.Odds,
		Prediction:    bet.Prediction,
		WinningsCents: winnings,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("type", string(eventType)).Msg("failed to publish bet event")
	}
}

func (s *SettlementService) invalidateTouched(ctx context.Context, matchID string, accountIDs map[string]struct{}) {
	patterns := []string{"match:" + matchID + ":*"}
	for id := range accountIDs {
		patterns = append(patterns, "account:"+id+":*")
	}
	if err := s.invalidator.Invalidate(ctx, patterns...); err != nil {
		s.log.Warn().Err(err).Msg("cache invalidation failed")
	}
}
