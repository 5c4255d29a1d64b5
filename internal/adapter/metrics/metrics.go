package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters and histograms for the wagering core. Registered on the default
// registry and exposed by the metrics server.
var (
	BetsPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wagering_bets_placed_total",
		Help: "Bets accepted by the ledger.",
	})

	BetsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wagering_bets_rejected_total",
		Help: "Bet placements rejected, by error code.",
	}, []string{"code"})

	BetsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wagering_bets_settled_total",
		Help: "Bets moved to a terminal status, by outcome status.",
	}, []string{"status"})

	StakeVolume = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wagering_stake_volume_minor_units_total",
		Help: "Total stake accepted, in minor units.",
	})

	PayoutVolume = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wagering_payout_volume_minor_units_total",
		Help: "Total winnings credited, in minor units.",
	})

	ConflictRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wagering_conflict_retries_total",
		Help: "Ledger transactions retried after a serialization conflict.",
	})

	SettlementDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wagering_settlement_duration_seconds",
		Help:    "Wall time of one match settlement run.",
		Buckets: prometheus.DefBuckets,
	})
)
