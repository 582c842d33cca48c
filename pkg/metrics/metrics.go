// Package metrics holds the gateway's Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	repliesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cybersource_replies_total",
		Help: "Gateway replies logged, by channel, transaction type and decision",
	}, []string{
		"reply_type",       // SA, SOAP
		"transaction_type", // create_payment_token, authorization, capture
		"decision",
	})

	capturesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cybersource_captures_total",
		Help: "Capture requests by decision",
	}, []string{"decision"})

	signatureFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cybersource_signature_failures_total",
		Help: "Inbound replies rejected for a bad or missing signature",
	})

	decisionUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "decision_manager_updates_total",
		Help: "Decision Manager updates applied, by new decision (empty for note-only updates)",
	}, []string{"new_decision"})

	auditDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_audit_entries_dropped_total",
		Help: "Audit entries discarded because the write queue was full or closed",
	})

	soapDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cybersource_soap_duration_seconds",
		Help:    "SOAP round trip latency",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"service"})
)

func RecordReply(replyType, transactionType, decision string) {
	repliesTotal.WithLabelValues(replyType, transactionType, decision).Inc()
}

func RecordCapture(decision string) {
	capturesTotal.WithLabelValues(decision).Inc()
}

func RecordSignatureFailure() {
	signatureFailuresTotal.Inc()
}

func RecordDecisionUpdate(newDecision string) {
	decisionUpdatesTotal.WithLabelValues(newDecision).Inc()
}

func RecordAuditDropped() {
	auditDroppedTotal.Inc()
}

// ObserveSOAP records the latency of one SOAP service call started at start.
func ObserveSOAP(service string, start time.Time) {
	soapDuration.WithLabelValues(service).Observe(time.Since(start).Seconds())
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
