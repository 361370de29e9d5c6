package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric names accepted by PrometheusMetrics
const (
	MetricReportGenerated       = "report_generated"
	MetricReportSkippedRecords  = "report_skipped_records"
	MetricReportBuild           = "report_build"
	MetricDonationSubmitted     = "donation_submitted"
	MetricDonationStatusChanged = "donation_status_changed"
	MetricExpenseRecorded       = "expense_recorded"
	MetricEventPublishFailed    = "event_publish_failed"
	MetricAuthenticationEvent   = "authentication_event"
)

type PrometheusMetrics struct {
	reportsGenerated          *prometheus.CounterVec
	reportSkippedRecords      *prometheus.CounterVec
	reportBuildDuration       prometheus.Histogram
	donationsSubmitted        *prometheus.CounterVec
	donationStatusChanges     *prometheus.CounterVec
	expensesRecorded          *prometheus.CounterVec
	eventPublishFailures      prometheus.Counter
	authenticationEventsTotal *prometheus.CounterVec
}

// NewPrometheusMetrics registers the service metrics on reg
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		reportsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "financial_reports_generated_total",
				Help: "Total number of financial reports generated",
			},
			[]string{"view"},
		),
		reportSkippedRecords: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "financial_report_skipped_records_total",
				Help: "Total number of malformed records skipped while building reports",
			},
			[]string{"view"},
		),
		reportBuildDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "financial_report_build_duration_seconds",
				Help:    "Time spent fetching records and building a report",
				Buckets: prometheus.DefBuckets,
			},
		),
		donationsSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "donations_submitted_total",
				Help: "Total number of donations submitted through the public form",
			},
			[]string{"kind"},
		),
		donationStatusChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "donation_status_changes_total",
				Help: "Total number of donation confirmations and rejections",
			},
			[]string{"status"},
		),
		expensesRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "expenses_recorded_total",
				Help: "Total number of expense writes by operation",
			},
			[]string{"operation"},
		),
		eventPublishFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "donation_event_publish_failures_total",
				Help: "Total number of donation events that could not be published",
			},
		),
		authenticationEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case MetricReportGenerated:
		m.reportsGenerated.WithLabelValues(tags["view"]).Inc()
	case MetricDonationSubmitted:
		m.donationsSubmitted.WithLabelValues(tags["kind"]).Inc()
	case MetricDonationStatusChanged:
		if status := tags["status"]; status != "" {
			m.donationStatusChanges.WithLabelValues(status).Inc()
		}
	case MetricExpenseRecorded:
		if operation := tags["operation"]; operation != "" {
			m.expensesRecorded.WithLabelValues(operation).Inc()
		}
	case MetricEventPublishFailed:
		m.eventPublishFailures.Inc()
	case MetricAuthenticationEvent:
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEventsTotal.WithLabelValues(eventType).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	if name == MetricReportBuild {
		m.reportBuildDuration.Observe(duration.Seconds())
	}
}

// RecordGauge adds value to the skipped records counter; other names are ignored
func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	if name == MetricReportSkippedRecords && value > 0 {
		m.reportSkippedRecords.WithLabelValues(tags["view"]).Add(value)
	}
}
