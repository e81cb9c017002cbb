package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "slotypi"

	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelResult = "result"
	LabelReason = "reason"
)

// HTTP
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests being served",
		},
	)
)

// Игра
var (
	SpinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spins_total",
			Help:      "Spins by outcome (ok, rejected)",
		},
		[]string{LabelResult},
	)

	BetCreditsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bet_credits_total",
			Help:      "Credits debited by spins",
		},
	)

	WinCreditsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "win_credits_total",
			Help:      "Credits paid out by spins and bonus picks",
		},
	)

	CascadeSteps = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cascade_steps",
			Help:      "Cascade steps per spin",
			Buckets:   prometheus.LinearBuckets(0, 1, 11),
		},
	)

	CascadeCapReached = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cascade_cap_reached_total",
			Help:      "Spins whose cascade stopped at the iteration cap",
		},
	)

	BonusTriggered = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bonus_triggered_total",
			Help:      "Spins that generated a bonus board",
		},
	)

	BonusPicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bonus_picks_total",
			Help:      "Bonus picks by outcome (win, no_win, rejected)",
		},
		[]string{LabelResult},
	)
)

// Платежи
var (
	DepositsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deposits_total",
			Help:      "Deposit credit attempts by reason",
		},
		[]string{LabelReason},
	)

	PiAPIErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pi_api_errors_total",
			Help:      "Failed calls to the Pi Platform API",
		},
		[]string{LabelPath},
	)
)
