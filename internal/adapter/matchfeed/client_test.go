package matchfeed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"esports-wagering-platform/config"
	"esports-wagering-platform/internal/core/domain"
	"esports-wagering-platform/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.MatchFeedConfig{BaseURL: srv.URL, Timeout: time.Second}, zerolog.Nop())
}

func TestClient_IsBettable(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/matches/match-100", r.URL.Path)
		json.NewEncoder(w).Encode(Match{ID: "match-100", Status: "scheduled"})
	}))

	ok, err := c.IsBettable(context.Background(), "match-100", domain.BetClassPreMatch)
	require.NoError(t, err)
	assert.True(t, ok)

	// A scheduled match does not accept live bets.
	ok, err = c.IsBettable(context.Background(), "match-100", domain.BetClassLive)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClient_IsBettable_LiveMatch(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Match{ID: "match-100", Status: "live"})
	}))

	ok, err := c.IsBettable(context.Background(), "match-100", domain.BetClassLive)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.IsBettable(context.Background(), "match-100", domain.BetClassPreMatch)
	require.NoError(t, err)
	assert.False(t, ok, "pre-match window closed once live")
}

func TestClient_IsBettable_UnknownMatch(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	ok, err := c.IsBettable(context.Background(), "nope", domain.BetClassPreMatch)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClient_OpenMarket(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/matches/match-100/markets/match-winner", r.URL.Path)
		json.NewEncoder(w).Encode(domain.Market{
			MatchID: "match-100",
			Type:    domain.MarketMatchWinner,
			Status:  domain.MarketStatusOpen,
			Odds:    map[string]float64{"team1": 1.8, "team2": 2.1},
		})
	}))

	m, err := c.OpenMarket(context.Background(), "match-100", domain.MarketMatchWinner)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.True(t, m.IsOpen())

	odds, ok := m.OddsFor("team2")
	assert.True(t, ok)
	assert.Equal(t, 2.1, odds)
}

func TestClient_ResolvedOutcome(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Match{ID: "match-100", Status: "finished", Outcome: "team1"})
	}))

	outcome, err := c.ResolvedOutcome(context.Background(), "match-100")
	require.NoError(t, err)
	assert.Equal(t, "team1", outcome)
}

func TestClient_ResolvedOutcome_Unresolved(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Match{ID: "match-100", Status: "live"})
	}))

	outcome, err := c.ResolvedOutcome(context.Background(), "match-100")
	require.NoError(t, err)
	assert.Empty(t, outcome)
}

func TestClient_FeedDown(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.IsBettable(context.Background(), "match-100", domain.BetClassPreMatch)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DEP_001", appErr.Code)
}

func TestClient_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	for i := 0; i < 6; i++ {
		_, err := c.ResolvedOutcome(context.Background(), "match-100")
		require.Error(t, err)
	}

	// Breaker is now open: the error is still DEP_001 and no request is made.
	_, err := c.ResolvedOutcome(context.Background(), "match-100")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DEP_001", appErr.Code)
}
