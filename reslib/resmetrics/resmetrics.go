// Package resmetrics exports a reslib.Table's occupancy statistics as
// Prometheus gauges. It is a separate package from reslib itself so that
// the core data structure never forces a metrics dependency on callers who
// don't want one.
package resmetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/epics-go/reslib/reslib"
)

// StatsSource is the subset of reslib.Table's API Collector needs. Any
// *reslib.Table[T, R] satisfies it, since Stats is defined on every
// instantiation regardless of T and R.
type StatsSource interface {
	Stats() reslib.Stats
}

// Collector is a prometheus.Collector that reports a table's bucket count,
// entry count, and chain-length mean/stddev/max on every scrape. It holds
// no state of its own beyond the source and label values; Collect
// recomputes Stats() fresh on each call, matching the way
// prometheus.NewGaugeFunc-style collectors are meant to be used for
// values that are cheap to recompute but expensive to keep continuously
// up to date.
type Collector struct {
	source StatsSource

	buckets        *prometheus.Desc
	entries        *prometheus.Desc
	meanChainLen   *prometheus.Desc
	stddevChainLen *prometheus.Desc
	maxChainLen    *prometheus.Desc
}

// NewCollector returns a Collector for source, labeling every metric with
// the given table name (e.g. "records", "events").
func NewCollector(name string, source StatsSource) *Collector {
	labels := prometheus.Labels{"table": name}
	return &Collector{
		source: source,
		buckets: prometheus.NewDesc(
			"reslib_table_buckets", "Current bucket count.", nil, labels),
		entries: prometheus.NewDesc(
			"reslib_table_entries", "Current installed record count.", nil, labels),
		meanChainLen: prometheus.NewDesc(
			"reslib_table_chain_length_mean", "Mean bucket chain length.", nil, labels),
		stddevChainLen: prometheus.NewDesc(
			"reslib_table_chain_length_stddev", "Standard deviation of bucket chain length.", nil, labels),
		maxChainLen: prometheus.NewDesc(
			"reslib_table_chain_length_max", "Longest bucket chain.", nil, labels),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.buckets
	ch <- c.entries
	ch <- c.meanChainLen
	ch <- c.stddevChainLen
	ch <- c.maxChainLen
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.source.Stats()
	ch <- prometheus.MustNewConstMetric(c.buckets, prometheus.GaugeValue, float64(st.Buckets))
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(st.Entries))
	ch <- prometheus.MustNewConstMetric(c.meanChainLen, prometheus.GaugeValue, st.MeanChainLen)
	ch <- prometheus.MustNewConstMetric(c.stddevChainLen, prometheus.GaugeValue, st.StdDevChainLen)
	ch <- prometheus.MustNewConstMetric(c.maxChainLen, prometheus.GaugeValue, float64(st.MaxChainLen))
}
