package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		redemptionsTotal,
		codesGeneratedTotal,
	)
}

var (
	redemptionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redemptions_total",
			Help: "Code redemption attempts, labeled by outcome.",
		},
		[]string{"outcome"}, // 'success', 'not_found', 'already_used', 'invalid', 'error'
	)

	codesGeneratedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "codes_generated_total",
			Help: "Total number of activation codes generated by superadmin.",
		},
	)
)

func IncRedemption(outcome string) {
	redemptionsTotal.WithLabelValues(norm(outcome)).Inc()
}

func AddCodesGenerated(count int) {
	codesGeneratedTotal.Add(float64(count))
}
