package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/trading"
)

// SeriesCollector reads a bar series at scrape time. The caller must
// not mutate the series concurrently with scrapes.
type SeriesCollector struct {
	series *bars.Series

	barCount  *prometheus.Desc
	removed   *prometheus.Desc
	endIndex  *prometheus.Desc
	lastClose *prometheus.Desc
}

// NewSeriesCollector builds a collector labeled with the series name.
func NewSeriesCollector(s *bars.Series) *SeriesCollector {
	labels := prometheus.Labels{"series": s.Name()}
	return &SeriesCollector{
		series: s,
		barCount: prometheus.NewDesc(
			"strake_series_bars", "Number of resident bars", nil, labels),
		removed: prometheus.NewDesc(
			"strake_series_removed_bars", "Number of bars evicted from the front", nil, labels),
		endIndex: prometheus.NewDesc(
			"strake_series_end_index", "Logical index of the last bar", nil, labels),
		lastClose: prometheus.NewDesc(
			"strake_series_last_close", "Close price of the last bar", nil, labels),
	}
}

func (c *SeriesCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.barCount
	ch <- c.removed
	ch <- c.endIndex
	ch <- c.lastClose
}

func (c *SeriesCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.barCount, prometheus.GaugeValue, float64(c.series.BarCount()))
	ch <- prometheus.MustNewConstMetric(c.removed, prometheus.GaugeValue, float64(c.series.RemovedBarsCount()))
	ch <- prometheus.MustNewConstMetric(c.endIndex, prometheus.GaugeValue, float64(c.series.EndIndex()))
	if c.series.IsEmpty() {
		return
	}
	if close := c.series.LastBar().Close; !close.IsUndefined() {
		ch <- prometheus.MustNewConstMetric(c.lastClose, prometheus.GaugeValue, close.Float64())
	}
}

// RecordCollector reads a trading record at scrape time.
type RecordCollector struct {
	record *trading.Record

	positions *prometheus.Desc
	open      *prometheus.Desc
}

// NewRecordCollector builds a collector labeled with the record name.
func NewRecordCollector(rec *trading.Record) *RecordCollector {
	labels := prometheus.Labels{"record": rec.Name()}
	return &RecordCollector{
		record: rec,
		positions: prometheus.NewDesc(
			"strake_record_positions", "Number of closed positions", nil, labels),
		open: prometheus.NewDesc(
			"strake_record_open", "1 while a position is open", nil, labels),
	}
}

func (c *RecordCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.positions
	ch <- c.open
}

func (c *RecordCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.positions, prometheus.GaugeValue, float64(c.record.PositionCount()))
	open := 0.0
	if !c.record.IsClosed() {
		open = 1
	}
	ch <- prometheus.MustNewConstMetric(c.open, prometheus.GaugeValue, open)
}
