package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FilesCompressed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "csv_compression_files_compressed_total",
		Help: "Number of CSV files successfully compressed.",
	})

	FilesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "csv_compression_files_failed_total",
		Help: "Number of CSV files that failed to compress.",
	})

	OriginalsRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "csv_compression_originals_removed_total",
		Help: "Number of original CSV files removed after compression.",
	})

	CompressionSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "csv_compression_duration_seconds",
		Help:    "Wall-clock duration of single-file compressions.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})
)

// Serve exposes the default registry on the given port. Blocks until the
// listener fails.
func Serve(port string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(":"+port, mux)
}
