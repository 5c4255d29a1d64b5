package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"esports-wagering-platform/internal/core/domain"
	"esports-wagering-platform/internal/core/ports"
	"esports-wagering-platform/pkg/contracts/events"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// The in-memory transactor hands out transactions that carry the row locks
// taken by GetByIDForUpdate, released on Commit or Rollback. This preserves
// the per-account atomic region, so the concurrency tests exercise the same
// exact-spend semantics the postgres adapter provides with SELECT FOR UPDATE.

type memTx struct {
	pgx.Tx
	mu     sync.Mutex
	done   bool
	onDone []func()
}

func (t *memTx) finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return
	}
	t.done = true
	for i := len(t.onDone) - 1; i >= 0; i-- {
		t.onDone[i]()
	}
}

func (t *memTx) release(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onDone = append(t.onDone, fn)
}

func (t *memTx) Commit(context.Context) error   { t.finish(); return nil }
func (t *memTx) Rollback(context.Context) error { t.finish(); return nil }

type inMemoryTransactor struct{}

func (inMemoryTransactor) Begin(context.Context) (pgx.Tx, error) {
	return &memTx{}, nil
}

// --- In-Memory Account Repo ---

type inMemoryAccountRepo struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*domain.Account
	rowLocks sync.Map // uuid.UUID -> *sync.Mutex
}

func newInMemoryAccountRepo() *inMemoryAccountRepo {
	return &inMemoryAccountRepo{accounts: make(map[uuid.UUID]*domain.Account)}
}

func (r *inMemoryAccountRepo) rowLock(id uuid.UUID) *sync.Mutex {
	lock, _ := r.rowLocks.LoadOrStore(id, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (r *inMemoryAccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *account
	r.accounts[account.ID] = &cp
	return nil
}

func (r *inMemoryAccountRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *inMemoryAccountRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error) {
	if mt, ok := tx.(*memTx); ok {
		lock := r.rowLock(id)
		lock.Lock()
		mt.release(lock.Unlock)
	}
	return r.GetByID(ctx, id)
}

func (r *inMemoryAccountRepo) UpdateBalance(_ context.Context, _ pgx.Tx, id uuid.UUID, newBalance int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return fmt.Errorf("account %s not found", id)
	}
	a.Balance = newBalance
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *inMemoryAccountRepo) SetStatus(_ context.Context, id uuid.UUID, status domain.AccountStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return fmt.Errorf("account %s not found", id)
	}
	a.Status = status
	return nil
}

// --- In-Memory Bet Repo ---

type inMemoryBetRepo struct {
	mu   sync.RWMutex
	bets map[uuid.UUID]*domain.Bet
}

func newInMemoryBetRepo() *inMemoryBetRepo {
	return &inMemoryBetRepo{bets: make(map[uuid.UUID]*domain.Bet)}
}

func (r *inMemoryBetRepo) Create(_ context.Context, _ pgx.Tx, bet *domain.Bet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *bet
	r.bets[bet.ID] = &cp
	return nil
}

func (r *inMemoryBetRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Bet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bets[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *inMemoryBetRepo) ListPendingByMatch(_ context.Context, matchID string) ([]domain.Bet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Bet
	for _, b := range r.bets {
		if b.MatchID == matchID && b.Status == domain.BetStatusPending {
			result = append(result, *b)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID.String() < result[j].ID.String()
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *inMemoryBetRepo) SettleFromPending(_ context.Context, _ pgx.Tx, id uuid.UUID, status domain.BetStatus, winningAmount int64, settledAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bets[id]
	if !ok || b.Status != domain.BetStatusPending {
		return false, nil
	}
	b.Status = status
	b.WinningAmount = winningAmount
	t := settledAt
	b.SettledAt = &t
	return true, nil
}

func (r *inMemoryBetRepo) DailyStakeTotal(_ context.Context, accountID uuid.UUID, since time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total int64
	for _, b := range r.bets {
		if b.AccountID != accountID || b.CreatedAt.Before(since) {
			continue
		}
		switch b.Status {
		case domain.BetStatusPending, domain.BetStatusWon, domain.BetStatusLost:
			total += b.Amount
		}
	}
	return total, nil
}

func (r *inMemoryBetRepo) CountPending(_ context.Context, accountID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, b := range r.bets {
		if b.AccountID == accountID && b.Status == domain.BetStatusPending {
			count++
		}
	}
	return count, nil
}

func (r *inMemoryBetRepo) List(_ context.Context, params ports.BetListParams) ([]domain.Bet, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Bet
	for _, b := range r.bets {
		if b.AccountID != params.AccountID {
			continue
		}
		if params.Status != nil && b.Status != *params.Status {
			continue
		}
		if params.TerminalOnly && b.Status == domain.BetStatusPending {
			continue
		}
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	total := int64(len(result))

	start := (params.Page - 1) * params.PageSize
	if start >= len(result) {
		return []domain.Bet{}, total, nil
	}
	end := start + params.PageSize
	if end > len(result) {
		end = len(result)
	}
	return result[start:end], total, nil
}

func (r *inMemoryBetRepo) Stats(_ context.Context, accountID uuid.UUID) (*ports.BetStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := &ports.BetStats{}
	var settledStaked, lost int64
	for _, b := range r.bets {
		if b.AccountID != accountID {
			continue
		}
		switch b.Status {
		case domain.BetStatusCancelled, domain.BetStatusRefunded:
			continue
		}
		stats.TotalBets++
		stats.TotalStaked += b.Amount
		switch b.Status {
		case domain.BetStatusWon:
			stats.WonBets++
			stats.TotalWinnings += b.WinningAmount
			settledStaked += b.Amount
		case domain.BetStatusLost:
			lost++
			settledStaked += b.Amount
		}
	}
	if stats.WonBets+lost > 0 {
		stats.WinRate = float64(stats.WonBets) / float64(stats.WonBets+lost) * 100
	}
	stats.ProfitLoss = stats.TotalWinnings - settledStaked
	return stats, nil
}

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu   sync.RWMutex
	txns map[uuid.UUID]*domain.Transaction
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{txns: make(map[uuid.UUID]*domain.Transaction)}
}

func (r *inMemoryTransactionRepo) Create(_ context.Context, _ pgx.Tx, txn *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *txn
	r.txns[txn.ID] = &cp
	return nil
}

func (r *inMemoryTransactionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.txns[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *inMemoryTransactionRepo) SettleFromPending(_ context.Context, _ pgx.Tx, id uuid.UUID, status domain.TransactionStatus, processedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.txns[id]
	if !ok || t.Status != domain.TransactionStatusPending {
		return false, nil
	}
	t.Status = status
	pt := processedAt
	t.ProcessedAt = &pt
	return true, nil
}

func (r *inMemoryTransactionRepo) DailyTotalByType(_ context.Context, accountID uuid.UUID, txType domain.TransactionType, since time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total int64
	for _, t := range r.txns {
		if t.AccountID != accountID || t.Type != txType || t.CreatedAt.Before(since) {
			continue
		}
		if t.Status == domain.TransactionStatusPending || t.Status == domain.TransactionStatusCompleted {
			total += t.Amount
		}
	}
	return total, nil
}

func (r *inMemoryTransactionRepo) ListByAccount(_ context.Context, accountID uuid.UUID, page, pageSize int) ([]domain.Transaction, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Transaction
	for _, t := range r.txns {
		if t.AccountID == accountID {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	total := int64(len(result))

	start := (page - 1) * pageSize
	if start >= len(result) {
		return []domain.Transaction{}, total, nil
	}
	end := start + pageSize
	if end > len(result) {
		end = len(result)
	}
	return result[start:end], total, nil
}

// snapshotByAccount returns every transaction of the account, for
// reconciliation assertions.
func (r *inMemoryTransactionRepo) snapshotByAccount(accountID uuid.UUID) []domain.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Transaction
	for _, t := range r.txns {
		if t.AccountID == accountID {
			result = append(result, *t)
		}
	}
	return result
}

// --- In-Memory Cancellation Repo ---

type inMemoryCancellationRepo struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*domain.BetCancellation
}

func newInMemoryCancellationRepo() *inMemoryCancellationRepo {
	return &inMemoryCancellationRepo{records: make(map[uuid.UUID]*domain.BetCancellation)}
}

func (r *inMemoryCancellationRepo) Create(_ context.Context, _ pgx.Tx, c *domain.BetCancellation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.records[c.ID] = &cp
	return nil
}

func (r *inMemoryCancellationRepo) GetByBetID(_ context.Context, betID uuid.UUID) (*domain.BetCancellation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.records {
		if c.BetID == betID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

// --- Stub match feed ---

type feedMatch struct {
	status  string // scheduled, live, finished, abandoned
	outcome string
	markets map[domain.MarketType]*domain.Market
}

type stubMatchFeed struct {
	mu      sync.RWMutex
	matches map[string]*feedMatch
}

func newStubMatchFeed() *stubMatchFeed {
	return &stubMatchFeed{matches: make(map[string]*feedMatch)}
}

func (f *stubMatchFeed) addMatch(matchID, status string, odds map[string]float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matches[matchID] = &feedMatch{
		status: status,
		markets: map[domain.MarketType]*domain.Market{
			domain.MarketMatchWinner: {
				MatchID: matchID,
				Type:    domain.MarketMatchWinner,
				Status:  domain.MarketStatusOpen,
				Odds:    odds,
			},
		},
	}
}

func (f *stubMatchFeed) finish(matchID, outcome string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.matches[matchID]; ok {
		m.status = "finished"
		m.outcome = outcome
	}
}

func (f *stubMatchFeed) IsBettable(_ context.Context, matchID string, class domain.BetClass) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	m, ok := f.matches[matchID]
	if !ok {
		return false, nil
	}
	if class == domain.BetClassLive {
		return m.status == "live", nil
	}
	return m.status == "scheduled", nil
}

func (f *stubMatchFeed) OpenMarket(_ context.Context, matchID string, market domain.MarketType) (*domain.Market, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	m, ok := f.matches[matchID]
	if !ok {
		return nil, nil
	}
	return m.markets[market], nil
}

func (f *stubMatchFeed) ResolvedOutcome(_ context.Context, matchID string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	m, ok := f.matches[matchID]
	if !ok || m.status != "finished" {
		return "", nil
	}
	return m.outcome, nil
}

// --- Recording notifier ---

type recordingNotifier struct {
	mu     sync.Mutex
	events []events.BetEvent
}

func (n *recordingNotifier) Publish(_ context.Context, event events.BetEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *recordingNotifier) byType(eventType events.BetEventType) []events.BetEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var result []events.BetEvent
	for _, e := range n.events {
		if e.Type == eventType {
			result = append(result, e)
		}
	}
	return result
}
