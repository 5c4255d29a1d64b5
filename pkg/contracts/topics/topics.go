package topics

const (
	// BetLifecycle carries every bet lifecycle event (placed, won, lost,
	// cancelled, refunded).
	BetLifecycle = "bet_lifecycle"

	// BetLifecycleDLQ receives events that could not be consumed downstream.
	BetLifecycleDLQ = "bet_lifecycle_dlq"
)
