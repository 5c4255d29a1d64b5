package domain

// MarketStatus is the open/closed state of a bettable market, owned by the
// match/market collaborator.
type MarketStatus string

const (
	MarketStatusOpen      MarketStatus = "open"
	MarketStatusSuspended MarketStatus = "suspended"
	MarketStatusClosed    MarketStatus = "closed"
)

// Market is a bettable proposition on a match with fixed odds per outcome.
// The core consumes it read-only from the match feed.
type Market struct {
	MatchID string             `json:"match_id"`
	Type    MarketType         `json:"type"`
	Status  MarketStatus       `json:"status"`
	Odds    map[string]float64 `json:"odds"` // outcome -> decimal odds (>= 1)
}

// IsOpen returns true if the market accepts new bets.
func (m *Market) IsOpen() bool {
	return m.Status == MarketStatusOpen
}

// OddsFor returns the decimal odds for a prediction, false if the prediction
// is not one of the market's outcomes.
func (m *Market) OddsFor(prediction string) (float64, bool) {
	odds, ok := m.Odds[prediction]
	return odds, ok
}
