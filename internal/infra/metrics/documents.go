package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(documentsCreatedTotal)
}

var documentsCreatedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "documents_created_total",
		Help: "Documents created, labeled by kind.",
	},
	[]string{"kind"}, // 'deal', 'invoice', 'receipt', 'mou'
)

func IncDocument(kind string) {
	documentsCreatedTotal.WithLabelValues(norm(kind)).Inc()
}
