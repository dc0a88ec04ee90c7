package redisx

import "time"

const (
	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"

	// Ringkasan penjualan harian: hash summary:{YYYY-MM-DD}
	KeyDailySummary = "summary:%s"

	// Jumlah terjual per produk per hari: hash summary:{YYYY-MM-DD}:products
	// field = product name, value = qty
	KeyDailyProducts = "summary:%s:products"
)

var (
	TTLDedup = 48 * time.Hour

	// Summaries keep a rolling window; old days expire on their own.
	TTLSummary = 40 * 24 * time.Hour
)
