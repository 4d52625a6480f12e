package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	accountsDesc = prometheus.NewDesc(
		"scorecard_accounts",
		"Canonical accounts by data presence",
		[]string{"state"},
		nil,
	)
	unresolvedDesc = prometheus.NewDesc(
		"scorecard_unresolved_names",
		"Raw account names that matched nothing in the last reconciliation",
		nil,
		nil,
	)
	rowsDesc = prometheus.NewDesc(
		"scorecard_rows_processed",
		"Raw rows processed in the last reconciliation",
		nil,
		nil,
	)
	averageScoreDesc = prometheus.NewDesc(
		"scorecard_average_score",
		"Mean parsed score across accounts with data",
		nil,
		nil,
	)
)

// resultCollector is a custom Prometheus collector that reads the
// current reconciliation snapshot on each scrape. It never loads from
// disk; before the first request it emits nothing.
type resultCollector struct {
	cache *cache
}

// Describe sends the metric descriptors to the channel.
func (rc *resultCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- accountsDesc
	ch <- unresolvedDesc
	ch <- rowsDesc
	ch <- averageScoreDesc
}

// Collect emits gauges over the cached snapshot.
func (rc *resultCollector) Collect(ch chan<- prometheus.Metric) {
	snap := rc.cache.peek()
	if snap == nil {
		return
	}
	result := snap.Result

	ch <- prometheus.MustNewConstMetric(accountsDesc, prometheus.GaugeValue,
		float64(len(result.WithData())), "with_data")
	ch <- prometheus.MustNewConstMetric(accountsDesc, prometheus.GaugeValue,
		float64(len(result.Missing())), "missing")
	ch <- prometheus.MustNewConstMetric(unresolvedDesc, prometheus.GaugeValue,
		float64(len(result.Unresolved)))
	ch <- prometheus.MustNewConstMetric(rowsDesc, prometheus.GaugeValue,
		float64(result.Metadata.Stats.RowsProcessed))
	if avg, ok := result.AverageScore(); ok {
		ch <- prometheus.MustNewConstMetric(averageScoreDesc, prometheus.GaugeValue, avg)
	}
}
