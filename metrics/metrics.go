package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/xrpscan/explorer/search"
	"github.com/xrpscan/explorer/summary"
)

// Metrics holds the explorer's collectors. It is passed to the components
// that record into it. All methods are no-ops on a nil *Metrics.
type Metrics struct {
	ledgersSummarizedTotal      *prometheus.CounterVec
	ledgerSummaryDuration       *prometheus.HistogramVec
	transactionsSummarizedTotal *prometheus.CounterVec
	searchRoutesTotal           *prometheus.CounterVec
	kafkaMessagesPublished      *prometheus.CounterVec
	httpRequestDuration         *prometheus.HistogramVec
	httpRequestsTotal           *prometheus.CounterVec
}

// NewMetrics registers all collectors with registry, or with
// prometheus.DefaultRegisterer when registry is nil.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		ledgersSummarizedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_ledgers_summarized_total",
				Help: "Total number of ledgers summarized by source",
			},
			[]string{"source"},
		),
		ledgerSummaryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "explorer_ledger_summary_duration_seconds",
				Help:    "Time spent fetching and summarizing a ledger",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"source"},
		),
		transactionsSummarizedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_transactions_summarized_total",
				Help: "Total number of transactions summarized by category and completeness",
			},
			[]string{"category", "partial"},
		),
		searchRoutesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_search_routes_total",
				Help: "Total number of search queries by resolved route type",
			},
			[]string{"type"},
		),
		kafkaMessagesPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_kafka_messages_published_total",
				Help: "Total number of summaries published to Kafka",
			},
			[]string{"topic", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "explorer_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"handler", "method", "status"},
		),
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"handler", "method", "status"},
		),
	}
}

// RecordLedger counts a summarized ledger and each of its transactions.
func (m *Metrics) RecordLedger(source string, ledger summary.Ledger, duration float64) {
	if m == nil {
		return
	}
	m.ledgersSummarizedTotal.WithLabelValues(source).Inc()
	m.ledgerSummaryDuration.WithLabelValues(source).Observe(duration)
	for _, tx := range ledger.Transactions {
		m.RecordTransaction(tx)
	}
}

func (m *Metrics) RecordTransaction(tx summary.Transaction) {
	if m == nil {
		return
	}
	m.transactionsSummarizedTotal.WithLabelValues(string(tx.Category), strconv.FormatBool(tx.Partial)).Inc()
}

// RecordSearch counts a routed query. Unmatched queries count as "none".
func (m *Metrics) RecordSearch(route *search.Route) {
	if m == nil {
		return
	}
	routeType := "none"
	if route != nil {
		routeType = route.Type
	}
	m.searchRoutesTotal.WithLabelValues(routeType).Inc()
}

func (m *Metrics) RecordPublish(topic string, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.kafkaMessagesPublished.WithLabelValues(topic, status).Inc()
}

func (m *Metrics) RecordHTTPRequest(handler, method string, statusCode int, duration float64) {
	if m == nil {
		return
	}
	status := statusCodeToString(statusCode)
	m.httpRequestDuration.WithLabelValues(handler, method, status).Observe(duration)
	m.httpRequestsTotal.WithLabelValues(handler, method, status).Inc()
}

func statusCodeToString(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500 && code < 600:
		return "5xx"
	default:
		return "unknown"
	}
}
