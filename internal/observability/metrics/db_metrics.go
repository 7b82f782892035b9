package metrics

import (
	"database/sql"
	"log"

	"github.com/prometheus/client_golang/prometheus"
)

func registerDBMetrics(db *sql.DB, logger *log.Logger) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "locations_total",
			Help: "Registered storage slots",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM locations")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "locations_occupied",
			Help: "Storage slots currently holding stock",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM locations WHERE current_weight_kg > 0")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "goods_receipts_pending",
			Help: "Goods receipts awaiting a storage slot",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM goods_receipts WHERE status = 'pending'")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "pick_orders_open",
			Help: "Open pick orders",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM pick_orders WHERE status = 'open'")
		},
	))
}

func queryCount(db *sql.DB, logger *log.Logger, query string) float64 {
	if db == nil {
		return 0
	}
	var count int64
	if err := db.QueryRow(query).Scan(&count); err != nil {
		if logger != nil {
			logger.Printf("metrics query failed: %v", err)
		}
		return 0
	}
	if count < 0 {
		return 0
	}
	return float64(count)
}
