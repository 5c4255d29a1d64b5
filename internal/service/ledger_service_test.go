package service

import (
	"context"
	"testing"
	"time"

	"esports-wagering-platform/internal/core/domain"
	"esports-wagering-platform/internal/core/ports"
	"esports-wagering-platform/internal/core/ports/mocks"
	"esports-wagering-platform/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

type ledgerDeps struct {
	accountRepo *mocks.MockAccountRepository
	betRepo     *mocks.MockBetRepository
	txRepo      *mocks.MockTransactionRepository
	cancelRepo  *mocks.MockCancellationRepository
	transactor  *mocks.MockDBTransactor
	guard       *mocks.MockQuotaGuard
	matches     *mocks.MockMatchProvider
	notifier    *mocks.MockNotifier
	invalidator *mocks.MockCacheInvalidator
	svc         *LedgerService
	ctrl        *gomock.Controller
}

func setupLedger(t *testing.T) *ledgerDeps {
	ctrl := gomock.NewController(t)
	d := &ledgerDeps{
		accountRepo: mocks.NewMockAccountRepository(ctrl),
		betRepo:     mocks.NewMockBetRepository(ctrl),
		txRepo:      mocks.NewMockTransactionRepository(ctrl),
		cancelRepo:  mocks.NewMockCancellationRepository(ctrl),
		transactor:  mocks.NewMockDBTransactor(ctrl),
		guard:       mocks.NewMockQuotaGuard(ctrl),
		matches:     mocks.NewMockMatchProvider(ctrl),
		notifier:    mocks.NewMockNotifier(ctrl),
		invalidator: mocks.NewMockCacheInvalidator(ctrl),
		ctrl:        ctrl,
	}
	d.svc = NewLedgerService(
		d.accountRepo, d.betRepo, d.txRepo, d.cancelRepo, d.transactor,
		d.guard, d.matches, d.notifier, d.invalidator,
		testBettingConfig(), zerolog.Nop(),
	)
	return d
}

func openMatchWinnerMarket(matchID string) *domain.Market {
	return &domain.Market{
		MatchID: matchID,
		Type:    domain.MarketMatchWinner,
		Status:  domain.MarketStatusOpen,
		Odds:    map[string]float64{"team1": 2.0, "team2": 1.8},
	}
}

func placeBetRequest(accountID uuid.UUID) ports.PlaceBetRequest {
	return ports.PlaceBetRequest{
		AccountID:  accountID,
		MatchID:    "match-100",
		Amount:     50_00,
		Prediction: "team1",
		BetClass:   domain.BetClassPreMatch,
		MarketType: domain.MarketMatchWinner,
	}
}

func TestLedger_PlaceBet_Success(t *testing.T) {
	d := setupLedger(t)
	ctx := context.Background()
	account := activeAccount(100_00)
	req := placeBetRequest(account.ID)
	tx := &mockTx{}

	d.guard.EXPECT().EvaluateBet(ctx, account.ID, int64(50_00)).Return(nil)
	d.matches.EXPECT().IsBettable(ctx, "match-100", domain.BetClassPreMatch).Return(true, nil)
	d.matches.EXPECT().OpenMarket(ctx, "match-100", domain.MarketMatchWinner).
		Return(openMatchWinnerMarket("match-100"), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, account.ID).Return(account, nil)
	d.accountRepo.EXPECT().UpdateBalance(ctx, tx, account.ID, int64(50_00)).Return(nil)
	d.betRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.notifier.EXPECT().Publish(ctx, gomock.Any()).Return(nil)
	d.invalidator.EXPECT().Invalidate(ctx, gomock.Any()).Return(nil)

	bet, err := d.svc.PlaceBet(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, bet)
	assert.Equal(t, domain.BetStatusPending, bet.Status)
	assert.Equal(t, 2.0, bet.Odds)
	// 50.00 at odds 2.0 fixes the payout at 100.00, never recomputed.
	assert.Equal(t, int64(100_00), bet.PotentialWinning)
	assert.Zero(t, bet.WinningAmount)
}

func TestLedger_PlaceBet_InvalidAmount(t *testing.T) {
	d := setupLedger(t)
	req := placeBetRequest(uuid.New())
	req.Amount = 0

	_, err := d.svc.PlaceBet(context.Background(), req)
	assertCode(t, err, "VAL_002")
}

func TestLedger_PlaceBet_UnsupportedMarket(t *testing.T) {
	d := setupLedger(t)
	req := placeBetRequest(uuid.New())
	req.MarketType = "coin-flip"

	_, err := d.svc.PlaceBet(context.Background(), req)
	assertCode(t, err, "VAL_004")
}

func TestLedger_PlaceBet_GuardRejection(t *testing.T) {
	d := setupLedger(t)
	ctx := context.Background()
	req := placeBetRequest(uuid.New())

	d.guard.EXPECT().EvaluateBet(ctx, req.AccountID, int64(50_00)).
		Return(apperror.ErrInsufficientBalance(50_00, 10_00))

	_, err := d.svc.PlaceBet(ctx, req)
	assertCode(t, err, "POL_004")
}

func TestLedger_PlaceBet_MatchNotBettable(t *testing.T) {
	d := setupLedger(t)
	ctx := context.Background()
	req := placeBetRequest(uuid.New())

	d.guard.EXPECT().EvaluateBet(ctx, req.AccountID, int64(50_00)).Return(nil)
	d.matches.EXPECT().IsBettable(ctx, "match-100", domain.BetClassPreMatch).Return(false, nil)

	_, err := d.svc.PlaceBet(ctx, req)
	assertCode(t, err, "POL_007")
}

func TestLedger_PlaceBet_UnknownPrediction(t *testing.T) {
	d := setupLedger(t)
	ctx := context.Background()
	req := placeBetRequest(uuid.New())
	req.Prediction = "draw"

	d.guard.EXPECT().EvaluateBet(ctx, req.AccountID, int64(50_00)).Return(nil)
	d.matches.EXPECT().IsBettable(ctx, "match-100", domain.BetClassPreMatch).Return(true, nil)
	d.matches.EXPECT().OpenMarket(ctx, "match-100", domain.MarketMatchWinner).
		Return(openMatchWinnerMarket("match-100"), nil)

	_, err := d.svc.PlaceBet(ctx, req)
	assertCode(t, err, "VAL_003")
}

func TestLedger_PlaceBet_BalanceChangedUnderLock(t *testing.T) {
	d := setupLedger(t)
	ctx := context.Background()
	// The guard saw a sufficient balance, but by the time the row lock is
	// held a concurrent debit has drained it.
	account := activeAccount(20_00)
	req := placeBetRequest(account.ID)
	tx := &mockTx{}

	d.guard.EXPECT().EvaluateBet(ctx, account.ID, int64(50_00)).Return(nil)
	d.matches.EXPECT().IsBettable(ctx, "match-100", domain.BetClassPreMatch).Return(true, nil)
	d.matches.EXPECT().OpenMarket(ctx, "match-100", domain.MarketMatchWinner).
		Return(openMatchWinnerMarket("match-100"), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, account.ID).Return(account, nil)

	_, err := d.svc.PlaceBet(ctx, req)
	assertCode(t, err, "POL_004")
}

func TestLedger_CancelBet_Success(t *testing.T) {
	d := setupLedger(t)
	ctx := context.Background()
	account := activeAccount(50_00)
	bet := &domain.Bet{
		ID:               uuid.New(),
		AccountID:        account.ID,
		MatchID:          "match-100",
		Amount:           30_00,
		Odds:             1.5,
		Prediction:       "team2",
		PotentialWinning: 45_00,
		Status:           domain.BetStatusPending,
	}
	tx := &mockTx{}

	d.betRepo.EXPECT().GetByID(ctx, bet.ID).Return(bet, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, account.ID).Return(account, nil)
	d.betRepo.EXPECT().
		SettleFromPending(ctx, tx, bet.ID, domain.BetStatusCancelled, int64(0), gomock.Any()).
		Return(true, nil)
	d.accountRepo.EXPECT().UpdateBalance(ctx, tx, account.ID, int64(80_00)).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.cancelRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.notifier.EXPECT().Publish(ctx, gomock.Any()).Return(nil)
	d.invalidator.EXPECT().Invalidate(ctx, gomock.Any()).Return(nil)

	result, err := d.svc.CancelBet(ctx, bet.ID, account.ID, false, "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, domain.BetStatusCancelled, result.Status)
	assert.NotNil(t, result.SettledAt)
}

func TestLedger_CancelBet_NotOwner(t *testing.T) {
	d := setupLedger(t)
	ctx := context.Background()
	bet := &domain.Bet{ID: uuid.New(), AccountID: uuid.New(), Status: domain.BetStatusPending}

	d.betRepo.EXPECT().GetByID(ctx, bet.ID).Return(bet, nil)

	_, err := d.svc.CancelBet(ctx, bet.ID, uuid.New(), false, "")
	assertCode(t, err, "SYS_003")
}

func TestLedger_CancelBet_AdminMayCancelAnyBet(t *testing.T) {
	d := setupLedger(t)
	ctx := context.Background()
	account := activeAccount(0)
	bet := &domain.Bet{
		ID:        uuid.New(),
		AccountID: account.ID,
		Amount:    30_00,
		Status:    domain.BetStatusPending,
	}
	tx := &mockTx{}

	d.betRepo.EXPECT().GetByID(ctx, bet.ID).Return(bet, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, account.ID).Return(account, nil)
	d.betRepo.EXPECT().
		SettleFromPending(ctx, tx, bet.ID, domain.BetStatusCancelled, int64(0), gomock.Any()).
		Return(true, nil)
	d.accountRepo.EXPECT().UpdateBalance(ctx, tx, account.ID, int64(30_00)).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.cancelRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.notifier.EXPECT().Publish(ctx, gomock.Any()).Return(nil)
	d.invalidator.EXPECT().Invalidate(ctx, gomock.Any()).Return(nil)

	_, err := d.svc.CancelBet(ctx, bet.ID, uuid.New(), true, "suspicious activity")
	assert.NoError(t, err)
}

func TestLedger_CancelBet_AlreadySettled(t *testing.T) {
	d := setupLedger(t)
	ctx := context.Background()
	bet := &domain.Bet{ID: uuid.New(), AccountID: uuid.New(), Status: domain.BetStatusWon}

	d.betRepo.EXPECT().GetByID(ctx, bet.ID).Return(bet, nil)

	_, err := d.svc.CancelBet(ctx, bet.ID, bet.AccountID, false, "")
	assertCode(t, err, "LIF_002")
}

func TestLedger_CancelBet_RacedWithSettlement(t *testing.T) {
	d := setupLedger(t)
	ctx := context.Background()
	account := activeAccount(50_00)
	bet := &domain.Bet{
		ID:        uuid.New(),
		AccountID: account.ID,
		Amount:    30_00,
		Status:    domain.BetStatusPending,
	}
	tx := &mockTx{}

	d.betRepo.EXPECT().GetByID(ctx, bet.ID).Return(bet, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, account.ID).Return(account, nil)
	// Settlement won the race: the conditional transition matches no row.
	d.betRepo.EXPECT().
		SettleFromPending(ctx, tx, bet.ID, domain.BetStatusCancelled, int64(0), gomock.Any()).
		Return(false, nil)

	_, err := d.svc.CancelBet(ctx, bet.ID, account.ID, false, "")
	assertCode(t, err, "LIF_002")
}

func TestLedger_Deposit_CreatesPending(t *testing.T) {
	d := setupLedger(t)
	ctx := context.Background()
	account := activeAccount(0)
	tx := &mockTx{}

	d.accountRepo.EXPECT().GetByID(ctx, account.ID).Return(account, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, txn *domain.Transaction) error {
			assert.Equal(t, domain.TransactionTypeDeposit, txn.Type)
			assert.Equal(t, domain.TransactionStatusPending, txn.Status)
			return nil
		})

	txn, err := d.svc.Deposit(ctx, account.ID, 200_00, "pay-abc")
	require.NoError(t, err)
	// The balance is untouched until the gateway confirms.
	assert.Equal(t, domain.TransactionStatusPending, txn.Status)
	assert.Equal(t, "pay-abc", txn.Reference)
}

func TestLedger_SettleTransaction_DepositCompleted(t *testing.T) {
	d := setupLedger(t)
	ctx := context.Background()
	account := activeAccount(100_00)
	txn := &domain.Transaction{
		ID:        uuid.New(),
		AccountID: account.ID,
		Type:      domain.TransactionTypeDeposit,
		Amount:    200_00,
		Status:    domain.TransactionStatusPending,
	}
	tx := &mockTx{}

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, account.ID).Return(account, nil)
	d.txRepo.EXPECT().
		SettleFromPending(ctx, tx, txn.ID, domain.TransactionStatusCompleted, gomock.Any()).
		Return(true, nil)
	d.accountRepo.EXPECT().UpdateBalance(ctx, tx, account.ID, int64(300_00)).Return(nil)
	d.invalidator.EXPECT().Invalidate(ctx, gomock.Any()).Return(nil)

	result, err := d.svc.SettleTransaction(ctx, txn.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusCompleted, result.Status)
	assert.NotNil(t, result.ProcessedAt)
}

func TestLedger_SettleTransaction_WithdrawalFailedRefunds(t *testing.T) {
	d := setupLedger(t)
	ctx := context.Background()
	account := activeAccount(100_00)
	txn := &domain.Transaction{
		ID:        uuid.New(),
		AccountID: account.ID,
		Type:      domain.TransactionTypeWithdrawal,
		Amount:    50_00,
		Status:    domain.TransactionStatusPending,
	}
	tx := &mockTx{}

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, account.ID).Return(account, nil)
	d.txRepo.EXPECT().
		SettleFromPending(ctx, tx, txn.ID, domain.TransactionStatusFailed, gomock.Any()).
		Return(true, nil)
	// The debit taken at initiation comes back.
	d.accountRepo.EXPECT().UpdateBalance(ctx, tx, account.ID, int64(150_00)).Return(nil)
	d.invalidator.EXPECT().Invalidate(ctx, gomock.Any()).Return(nil)

	result, err := d.svc.SettleTransaction(ctx, txn.ID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusFailed, result.Status)
}

func TestLedger_SettleTransaction_DuplicateCallback(t *testing.T) {
	d := setupLedger(t)
	ctx := context.Background()
	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID:          uuid.New(),
		AccountID:   uuid.New(),
		Type:        domain.TransactionTypeDeposit,
		Amount:      200_00,
		Status:      domain.TransactionStatusCompleted,
		ProcessedAt: &now,
	}

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)

	_, err := d.svc.SettleTransaction(ctx, txn.ID, true)
	assertCode(t, err, "LIF_001")
}

func TestLedger_Withdraw_Success(t *testing.T) {
	d := setupLedger(t)
	ctx := context.Background()
	account := activeAccount(1_000_00)
	tx := &mockTx{}

	d.guard.EXPECT().EvaluateWithdrawal(ctx, account.ID, int64(500_00)).Return(nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, account.ID).Return(account, nil)
	d.accountRepo.EXPECT().UpdateBalance(ctx, tx, account.ID, int64(500_00)).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.invalidator.EXPECT().Invalidate(ctx, gomock.Any()).Return(nil)

	txn, err := d.svc.Withdraw(ctx, account.ID, 500_00, "payout-xyz")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionTypeWithdrawal, txn.Type)
	assert.Equal(t, domain.TransactionStatusPending, txn.Status)
}
