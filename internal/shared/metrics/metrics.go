package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoice_uploads_total",
		Help: "Invoice uploads labelled by outcome",
	}, []string{"outcome"})

	batchSubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "batch_submissions_total",
		Help: "analyzeBatch submissions labelled by outcome",
	}, []string{"outcome"})

	exportRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "export_runs_total",
		Help: "Spreadsheet exports labelled by outcome",
	}, []string{"outcome"})

	resultFilesSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "export_result_files_skipped_total",
		Help: "Result files skipped during export because they could not be read or parsed",
	})

	exportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "export_duration_seconds",
		Help:    "Time spent building a spreadsheet export.",
		Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30},
	}, []string{"mode"})
)

// IncUpload counts an upload attempt with the given outcome.
func IncUpload(outcome string) {
	uploadsTotal.WithLabelValues(outcome).Inc()
}

// IncBatchSubmission counts a batch submission with the given outcome.
func IncBatchSubmission(outcome string) {
	batchSubmissionsTotal.WithLabelValues(outcome).Inc()
}

// IncExport counts an export run with the given outcome.
func IncExport(outcome string) {
	exportRunsTotal.WithLabelValues(outcome).Inc()
}

// IncResultFileSkipped counts a result file dropped from an export.
func IncResultFileSkipped() {
	resultFilesSkippedTotal.Inc()
}

// ObserveExportDuration records how long an export in mode took.
func ObserveExportDuration(mode string, elapsed time.Duration) {
	exportDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
}

// Handler exposes the default registry in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
