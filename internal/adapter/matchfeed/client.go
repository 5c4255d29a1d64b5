package matchfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"esports-wagering-platform/config"
	"esports-wagering-platform/internal/core/domain"
	"esports-wagering-platform/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// Match is the feed's view of a match.
type Match struct {
	ID      string `json:"id"`
	Status  string `json:"status"` // scheduled, live, finished, abandoned
	Outcome string `json:"outcome,omitempty"`
}

// Client implements ports.MatchProvider against the match feed's HTTP API.
// Calls go through a circuit breaker; when the feed is down or the breaker
// is open, callers get a DependencyUnavailable error and the wagering
// operation is rejected rather than left in doubt.
type Client struct {
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker
	log     zerolog.Logger
}

// NewClient creates a match feed client.
func NewClient(cfg config.MatchFeedConfig, log zerolog.Logger) *Client {
	settings := gobreaker.Settings{
		Name: "matchfeed",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		cb:      gobreaker.NewCircuitBreaker(settings),
		log:     log,
	}
}

// IsBettable reports whether the match accepts the given class of bet.
// Pre-match bets close at match start; live bets close at match end.
func (c *Client) IsBettable(ctx context.Context, matchID string, class domain.BetClass) (bool, error) {
	m, err := c.getMatch(ctx, matchID)
	if err != nil {
		return false, err
	}
	if m == nil {
		return false, nil
	}
	switch class {
	case domain.BetClassLive:
		return m.Status == "live", nil
	default:
		return m.Status == "scheduled", nil
	}
}

// OpenMarket fetches a market, nil if the feed does not offer it for this
// match.
func (c *Client) OpenMarket(ctx context.Context, matchID string, market domain.MarketType) (*domain.Market, error) {
	url := fmt.Sprintf("%s/matches/%s/markets/%s", c.baseURL, matchID, market)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, nil
	}
	var m domain.Market
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("decode market: %w", err)
	}
	return &m, nil
}

// ResolvedOutcome returns the match's final outcome, "" while unresolved.
func (c *Client) ResolvedOutcome(ctx context.Context, matchID string) (string, error) {
	m, err := c.getMatch(ctx, matchID)
	if err != nil {
		return "", err
	}
	if m == nil || m.Status != "finished" {
		return "", nil
	}
	return m.Outcome, nil
}

func (c *Client) getMatch(ctx context.Context, matchID string) (*Match, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/matches/%s", c.baseURL, matchID))
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, nil
	}
	var m Match
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("decode match: %w", err)
	}
	return &m, nil
}

// get performs a GET through the circuit breaker. Returns nil body on 404.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	result, err := c.cb.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return []byte(nil), nil
		case resp.StatusCode >= 500:
			return nil, fmt.Errorf("match feed returned %d", resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			// Client errors do not count against the breaker.
			return []byte(nil), nil
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.log.Warn().Str("url", url).Msg("match feed circuit open")
		}
		return nil, apperror.ErrDependencyUnavailable("match feed", err)
	}
	body, _ := result.([]byte)
	return body, nil
}
