package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(accountsTotal)
}

var accountsTotal = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "accounts_total",
		Help: "Current number of vendor accounts by activity state.",
	},
	[]string{"state"}, // 'active', 'inactive'
)

func SetAccountsTotal(active, inactive int) {
	accountsTotal.WithLabelValues("active").Set(float64(active))
	accountsTotal.WithLabelValues("inactive").Set(float64(inactive))
}
