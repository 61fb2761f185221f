package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	PullCount       prometheus.Counter
	MessagesSeen    prometheus.Counter
	ClassifyRejects prometheus.Counter
	ExtractFailures prometheus.Counter
	RecordsAppended prometheus.Counter
	DuplicateSkips  prometheus.Counter
	SinkFailures    prometheus.Counter
	ProcessingTime  prometheus.Histogram
}

// NewMetrics creates new Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		PullCount: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prep_checkin_pull_count",
			Help: "Total number of mailbox fetch cycles",
		}),
		MessagesSeen: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prep_checkin_messages_seen",
			Help: "Total number of messages fetched for processing",
		}),
		ClassifyRejects: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prep_checkin_classify_rejects",
			Help: "Total number of messages rejected by the sender classifier",
		}),
		ExtractFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prep_checkin_extract_failures",
			Help: "Total number of messages dropped with no identifier or no items",
		}),
		RecordsAppended: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prep_checkin_records_appended",
			Help: "Total number of check-in rows appended to the sheet",
		}),
		DuplicateSkips: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prep_checkin_duplicate_skips",
			Help: "Total number of records skipped as duplicates",
		}),
		SinkFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prep_checkin_sink_failures",
			Help: "Total number of failed sheet appends",
		}),
		ProcessingTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "prep_checkin_processing_duration_seconds",
			Help:    "Time spent processing a fetch cycle",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
