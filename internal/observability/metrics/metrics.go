package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "warehouse_"

	resultSuccess = "success"
	resultError   = "error"

	allocationResultNoLocation  = "no_location"
	allocationResultUnknownTier = "unknown_tier"
)

var (
	registerOnce sync.Once

	allocationRequests *prometheus.CounterVec
	allocationLatency  *prometheus.HistogramVec

	placementConflicts prometheus.Counter

	goodsInTotal   *prometheus.CounterVec
	goodsInLatency *prometheus.HistogramVec

	pickEventsTotal *prometheus.CounterVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		allocationRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "allocation_requests_total",
				Help: "Total slot allocation requests by result",
			},
			[]string{"result"},
		)
		allocationLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "allocation_latency_seconds",
				Help:    "Slot allocation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		placementConflicts = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "placement_conflicts_total",
				Help: "Conditional weight commits lost to a concurrent placement",
			},
		)

		goodsInTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "goods_in_total",
				Help: "Total goods-in store operations by result",
			},
			[]string{"result"},
		)
		goodsInLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "goods_in_latency_seconds",
				Help:    "Goods-in store latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		pickEventsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "pick_events_total",
				Help: "Total pick order lifecycle events by type",
			},
			[]string{"event"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total dashboard export operations by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Dashboard export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			allocationRequests,
			allocationLatency,
			placementConflicts,
			goodsInTotal,
			goodsInLatency,
			pickEventsTotal,
			exportTotal,
			exportLatency,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObserveAllocation records allocation request duration and result.
func ObserveAllocation(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if allocationRequests != nil {
		allocationRequests.WithLabelValues(result).Inc()
	}
	if allocationLatency != nil {
		allocationLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncPlacementConflict counts a lost conditional weight commit.
func IncPlacementConflict() {
	if placementConflicts != nil {
		placementConflicts.Inc()
	}
}

// ObserveGoodsIn records goods-in store duration and result.
func ObserveGoodsIn(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if goodsInTotal != nil {
		goodsInTotal.WithLabelValues(result).Inc()
	}
	if goodsInLatency != nil {
		goodsInLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncPickEvent increments pick lifecycle counters.
func IncPickEvent(event string) {
	if event == "" {
		event = "unknown"
	}
	if pickEventsTotal != nil {
		pickEventsTotal.WithLabelValues(event).Inc()
	}
}

// ObserveExport records export latency and result.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError

	AllocationResultNoLocation  = allocationResultNoLocation
	AllocationResultUnknownTier = allocationResultUnknownTier
)
