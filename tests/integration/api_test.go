package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"esports-wagering-platform/config"
	"esports-wagering-platform/internal/adapter/http/handler"
	redisStorage "esports-wagering-platform/internal/adapter/storage/redis"
	"esports-wagering-platform/internal/core/domain"
	"esports-wagering-platform/internal/service"
	"esports-wagering-platform/pkg/contracts/events"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires the real services and HTTP stack against in-memory
// repositories and a miniredis-backed cache invalidator. Only postgres and
// kafka are substituted; everything from the router down runs for real.
type testApp struct {
	server   *httptest.Server
	accounts *inMemoryAccountRepo
	bets     *inMemoryBetRepo
	txns     *inMemoryTransactionRepo
	cancels  *inMemoryCancellationRepo
	feed     *stubMatchFeed
	notifier *recordingNotifier
	tokens   *service.JWTTokenService
}

func integrationBettingConfig() config.BettingConfig {
	return config.BettingConfig{
		MinStake:        10_00,
		MaxStake:        100_000_00,
		DailyBetLimit:   100_000_00,
		MaxPendingBets:  50,
		MinWithdraw:     100_00,
		MaxWithdraw:     1_000_000_00,
		DailyWithdrawal: 1_000_000_00,
		Timezone:        "UTC",
		ConflictRetries: 3,
	}
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	log := zerolog.Nop()
	app := &testApp{
		accounts: newInMemoryAccountRepo(),
		bets:     newInMemoryBetRepo(),
		txns:     newInMemoryTransactionRepo(),
		cancels:  newInMemoryCancellationRepo(),
		feed:     newStubMatchFeed(),
		notifier: &recordingNotifier{},
		tokens:   service.NewJWTTokenService("integration-test-secret", time.Hour, "esports-wagering-platform"),
	}

	cfg := integrationBettingConfig()
	transactor := inMemoryTransactor{}
	invalidator := redisStorage.NewInvalidator(rdb, log)

	guardSvc := service.NewGuardService(app.accounts, app.bets, app.txns, cfg, log)
	ledgerSvc := service.NewLedgerService(
		app.accounts, app.bets, app.txns, app.cancels,
		transactor, guardSvc, app.feed, app.notifier, invalidator, cfg, log,
	)
	settlementSvc := service.NewSettlementService(
		app.accounts, app.bets, app.txns,
		transactor, app.feed, app.notifier, invalidator, log,
	)
	reportingSvc := service.NewReportingService(app.accounts, app.bets, app.txns, log)

	router := handler.SetupRouter(handler.RouterDeps{
		LedgerSvc:     ledgerSvc,
		SettlementSvc: settlementSvc,
		ReportingSvc:  reportingSvc,
		TokenSvc:      app.tokens,
		Logger:        log,
	})

	app.server = httptest.NewServer(router)
	t.Cleanup(app.server.Close)
	return app
}

// newAccount seeds an active account with the given balance and returns its
// ID with a player bearer token.
func (app *testApp) newAccount(t *testing.T, balance int64) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	require.NoError(t, app.accounts.Create(t.Context(), &domain.Account{
		ID:        id,
		Balance:   balance,
		Status:    domain.AccountStatusActive,
		CreatedAt: time.Now().UTC(),
	}))
	token, err := app.tokens.Generate(id, "player")
	require.NoError(t, err)
	return id, token
}

func (app *testApp) adminToken(t *testing.T) string {
	t.Helper()
	token, err := app.tokens.Generate(uuid.New(), "admin")
	require.NoError(t, err)
	return token
}

// do issues an authenticated JSON request and returns the status code plus
// the decoded body.
func (app *testApp) do(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, app.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

func data(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	d, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "expected data envelope, got %v", body)
	return d
}

func (app *testApp) balance(t *testing.T, token string) int64 {
	t.Helper()
	status, body := app.do(t, http.MethodGet, "/api/v1/wallet/balance", token, nil)
	require.Equal(t, http.StatusOK, status)
	return int64(data(t, body)["balance"].(float64))
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)

	status, body := app.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
}

func TestDepositLifecycle(t *testing.T) {
	app := newTestApp(t)
	_, token := app.newAccount(t, 0)
	admin := app.adminToken(t)

	status, body := app.do(t, http.MethodPost, "/api/v1/wallet/deposits", token, map[string]interface{}{
		"amount":      500_00,
		"payment_ref": "pay-dep-001",
	})
	require.Equal(t, http.StatusCreated, status)
	txn := data(t, body)
	assert.Equal(t, "deposit", txn["type"])
	assert.Equal(t, "pending", txn["status"])

	// Balance is untouched until the gateway confirms.
	assert.Equal(t, int64(0), app.balance(t, token))

	txnID := txn["id"].(string)
	status, body = app.do(t, http.MethodPost, "/api/v1/wallet/deposits/"+txnID+"/confirm", admin, map[string]interface{}{
		"success": true,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "completed", data(t, body)["status"])

	assert.Equal(t, int64(500_00), app.balance(t, token))

	// A second callback for the same transaction is rejected.
	status, body = app.do(t, http.MethodPost, "/api/v1/wallet/deposits/"+txnID+"/confirm", admin, map[string]interface{}{
		"success": true,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "LIF_001", body["error_code"])
	assert.Equal(t, int64(500_00), app.balance(t, token))
}

func TestBetLifecycle_PlaceAndSettleWin(t *testing.T) {
	app := newTestApp(t)
	accountID, token := app.newAccount(t, 500_00)
	admin := app.adminToken(t)
	app.feed.addMatch("match-101", "scheduled", map[string]float64{"team1": 2.0, "team2": 1.8})

	status, body := app.do(t, http.MethodPost, "/api/v1/bets", token, map[string]interface{}{
		"match_id":   "match-101",
		"amount":     50_00,
		"prediction": "team1",
	})
	require.Equal(t, http.StatusCreated, status)
	bet := data(t, body)
	assert.Equal(t, "pending", bet["status"])
	assert.Equal(t, float64(100_00), bet["potential_winning"])
	assert.Equal(t, int64(450_00), app.balance(t, token))

	app.feed.finish("match-101", "team1")

	status, body = app.do(t, http.MethodPost, "/api/v1/admin/matches/match-101/settle", admin, map[string]interface{}{})
	require.Equal(t, http.StatusOK, status)
	report := data(t, body)
	assert.Equal(t, float64(1), report["won_count"])
	assert.Equal(t, float64(0), report["lost_count"])
	assert.Equal(t, float64(100_00), report["total_payout"])
	assert.Equal(t, bet["id"], *jsonString(t, report, "largest_payout_bet_id"))

	assert.Equal(t, int64(550_00), app.balance(t, token))

	status, body = app.do(t, http.MethodGet, "/api/v1/bets/"+bet["id"].(string), token, nil)
	require.Equal(t, http.StatusOK, status)
	settled := data(t, body)
	assert.Equal(t, "won", settled["status"])
	assert.Equal(t, float64(100_00), settled["winning_amount"])
	assert.NotNil(t, settled["settled_at"])

	placed := app.notifier.byType(events.BetPlaced)
	require.Len(t, placed, 1)
	assert.Equal(t, accountID.String(), placed[0].AccountID)
	won := app.notifier.byType(events.BetWon)
	require.Len(t, won, 1)
	assert.Equal(t, int64(100_00), won[0].WinningsCents)

	status, body = app.do(t, http.MethodGet, "/api/v1/bets/stats", token, nil)
	require.Equal(t, http.StatusOK, status)
	stats := data(t, body)
	assert.Equal(t, float64(1), stats["won_bets"])
	assert.Equal(t, float64(50_00), stats["profit_loss"])
}

func jsonString(t *testing.T, m map[string]interface{}, key string) *string {
	t.Helper()
	v, ok := m[key]
	require.True(t, ok, "missing key %q", key)
	s, ok := v.(string)
	require.True(t, ok, "key %q is not a string: %v", key, v)
	return &s
}

func TestBetLifecycle_Loss(t *testing.T) {
	app := newTestApp(t)
	_, token := app.newAccount(t, 200_00)
	admin := app.adminToken(t)
	app.feed.addMatch("match-102", "scheduled", map[string]float64{"team1": 2.0, "team2": 1.8})

	status, _ := app.do(t, http.MethodPost, "/api/v1/bets", token, map[string]interface{}{
		"match_id":   "match-102",
		"amount":     80_00,
		"prediction": "team2",
	})
	require.Equal(t, http.StatusCreated, status)

	app.feed.finish("match-102", "team1")
	status, body := app.do(t, http.MethodPost, "/api/v1/admin/matches/match-102/settle", admin, map[string]interface{}{})
	require.Equal(t, http.StatusOK, status)
	report := data(t, body)
	assert.Equal(t, float64(0), report["won_count"])
	assert.Equal(t, float64(1), report["lost_count"])

	// Stake stays debited, no credit.
	assert.Equal(t, int64(120_00), app.balance(t, token))
	assert.Len(t, app.notifier.byType(events.BetLost), 1)
}

func TestCancelBet_RefundsStake(t *testing.T) {
	app := newTestApp(t)
	_, token := app.newAccount(t, 300_00)
	app.feed.addMatch("match-103", "scheduled", map[string]float64{"team1": 1.5, "team2": 2.5})

	status, body := app.do(t, http.MethodPost, "/api/v1/bets", token, map[string]interface{}{
		"match_id":   "match-103",
		"amount":     100_00,
		"prediction": "team2",
	})
	require.Equal(t, http.StatusCreated, status)
	betID := data(t, body)["id"].(string)
	require.Equal(t, int64(200_00), app.balance(t, token))

	status, body = app.do(t, http.MethodPost, "/api/v1/bets/"+betID+"/cancel", token, map[string]interface{}{
		"reason": "changed my mind",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "cancelled", data(t, body)["status"])
	assert.Equal(t, int64(300_00), app.balance(t, token))

	record, err := app.cancels.GetByBetID(t.Context(), uuid.MustParse(betID))
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "changed my mind", record.Reason)
	assert.Equal(t, int64(100_00), record.RefundAmount)

	// A second cancel hits a terminal bet.
	status, body = app.do(t, http.MethodPost, "/api/v1/bets/"+betID+"/cancel", token, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "LIF_002", body["error_code"])
	assert.Equal(t, int64(300_00), app.balance(t, token))
}

func TestWithdrawalFailed_RefundsDebit(t *testing.T) {
	app := newTestApp(t)
	_, token := app.newAccount(t, 500_00)
	admin := app.adminToken(t)

	status, body := app.do(t, http.MethodPost, "/api/v1/wallet/withdrawals", token, map[string]interface{}{
		"amount":      200_00,
		"payment_ref": "pay-wd-001",
	})
	require.Equal(t, http.StatusCreated, status)
	txnID := data(t, body)["id"].(string)

	// Debited immediately while pending.
	assert.Equal(t, int64(300_00), app.balance(t, token))

	status, body = app.do(t, http.MethodPost, "/api/v1/wallet/withdrawals/"+txnID+"/settle", admin, map[string]interface{}{
		"success": false,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "failed", data(t, body)["status"])

	assert.Equal(t, int64(500_00), app.balance(t, token))
}

func TestVoidMatch_RefundsAllPendingBets(t *testing.T) {
	app := newTestApp(t)
	_, tokenA := app.newAccount(t, 100_00)
	_, tokenB := app.newAccount(t, 100_00)
	admin := app.adminToken(t)
	app.feed.addMatch("match-104", "scheduled", map[string]float64{"team1": 2.0, "team2": 1.8})

	for _, token := range []string{tokenA, tokenB} {
		status, _ := app.do(t, http.MethodPost, "/api/v1/bets", token, map[string]interface{}{
			"match_id":   "match-104",
			"amount":     40_00,
			"prediction": "team1",
		})
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := app.do(t, http.MethodPost, "/api/v1/admin/matches/match-104/void", admin, map[string]interface{}{
		"reason": "match abandoned",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), data(t, body)["refunded_count"])

	assert.Equal(t, int64(100_00), app.balance(t, tokenA))
	assert.Equal(t, int64(100_00), app.balance(t, tokenB))
	assert.Len(t, app.notifier.byType(events.BetRefunded), 2)
}

func TestPlaceBet_MatchNotBettable(t *testing.T) {
	app := newTestApp(t)
	_, token := app.newAccount(t, 500_00)
	app.feed.addMatch("match-105", "live", map[string]float64{"team1": 2.0})

	status, body := app.do(t, http.MethodPost, "/api/v1/bets", token, map[string]interface{}{
		"match_id":   "match-105",
		"amount":     50_00,
		"prediction": "team1",
		"bet_class":  "pre-match",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "POL_007", body["error_code"])
	assert.Equal(t, int64(500_00), app.balance(t, token))
}

func TestPlaceBet_InsufficientBalance(t *testing.T) {
	app := newTestApp(t)
	_, token := app.newAccount(t, 20_00)
	app.feed.addMatch("match-106", "scheduled", map[string]float64{"team1": 2.0})

	status, body := app.do(t, http.MethodPost, "/api/v1/bets", token, map[string]interface{}{
		"match_id":   "match-106",
		"amount":     50_00,
		"prediction": "team1",
	})
	assert.Equal(t, http.StatusPaymentRequired, status)
	assert.Equal(t, "POL_004", body["error_code"])
}

func TestAuth_MissingToken(t *testing.T) {
	app := newTestApp(t)

	status, body := app.do(t, http.MethodGet, "/api/v1/wallet/balance", "", nil)

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "SYS_004", body["error_code"])
}

func TestAuth_PlayerCannotSettleMatch(t *testing.T) {
	app := newTestApp(t)
	_, token := app.newAccount(t, 0)

	status, body := app.do(t, http.MethodPost, "/api/v1/admin/matches/match-107/settle", token, map[string]interface{}{})

	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "SYS_003", body["error_code"])
}

func TestGetBet_OtherAccountIsForbidden(t *testing.T) {
	app := newTestApp(t)
	_, owner := app.newAccount(t, 100_00)
	_, stranger := app.newAccount(t, 100_00)
	app.feed.addMatch("match-108", "scheduled", map[string]float64{"team1": 2.0})

	status, body := app.do(t, http.MethodPost, "/api/v1/bets", owner, map[string]interface{}{
		"match_id":   "match-108",
		"amount":     30_00,
		"prediction": "team1",
	})
	require.Equal(t, http.StatusCreated, status)
	betID := data(t, body)["id"].(string)

	status, body = app.do(t, http.MethodGet, "/api/v1/bets/"+betID, stranger, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "SYS_003", body["error_code"])
}

func TestTransactionHistory_ConservesBalance(t *testing.T) {
	app := newTestApp(t)
	accountID, token := app.newAccount(t, 0)
	admin := app.adminToken(t)
	app.feed.addMatch("match-109", "scheduled", map[string]float64{"team1": 2.0, "team2": 1.8})

	// Deposit 500, bet 50 and win 100, withdraw 200.
	status, body := app.do(t, http.MethodPost, "/api/v1/wallet/deposits", token, map[string]interface{}{
		"amount": 500_00, "payment_ref": "pay-1",
	})
	require.Equal(t, http.StatusCreated, status)
	depID := data(t, body)["id"].(string)
	status, _ = app.do(t, http.MethodPost, "/api/v1/wallet/deposits/"+depID+"/confirm", admin, map[string]interface{}{"success": true})
	require.Equal(t, http.StatusOK, status)

	status, _ = app.do(t, http.MethodPost, "/api/v1/bets", token, map[string]interface{}{
		"match_id": "match-109", "amount": 50_00, "prediction": "team1",
	})
	require.Equal(t, http.StatusCreated, status)

	app.feed.finish("match-109", "team1")
	status, _ = app.do(t, http.MethodPost, "/api/v1/admin/matches/match-109/settle", admin, map[string]interface{}{})
	require.Equal(t, http.StatusOK, status)

	status, body = app.do(t, http.MethodPost, "/api/v1/wallet/withdrawals", token, map[string]interface{}{
		"amount": 200_00, "payment_ref": "pay-2",
	})
	require.Equal(t, http.StatusCreated, status)
	wdID := data(t, body)["id"].(string)
	status, _ = app.do(t, http.MethodPost, "/api/v1/wallet/withdrawals/"+wdID+"/settle", admin, map[string]interface{}{"success": true})
	require.Equal(t, http.StatusOK, status)

	// 500 - 50 + 100 - 200
	finalBalance := app.balance(t, token)
	assert.Equal(t, int64(350_00), finalBalance)

	// The transaction ledger reconciles to the balance.
	var sum int64
	for _, txn := range app.txns.snapshotByAccount(accountID) {
		sum += txn.AppliedDelta()
	}
	assert.Equal(t, finalBalance, sum)

	status, body = app.do(t, http.MethodGet, "/api/v1/wallet/transactions", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(4), data(t, body)["total"])
}
