package counters

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var apiCallCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "oioi",
	Name:      "api_call_count",
	Help:      "Total number of partner API calls by operation and result code.",
}, []string{"operation", "result"})

var retryCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "oioi",
	Name:      "api_retry_count",
	Help:      "Total number of retried API attempts by operation.",
}, []string{"operation"})

var serverRequestCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "server",
	Name:      "request_count",
	Help:      "Total number of received partner requests by operation and result code.",
}, []string{"operation", "result"})

var connectorStatusGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "server",
	Name:      "connectors_by_status",
	Help:      "Number of known connectors in each status.",
}, []string{"status"})

var observersGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "server",
	Name:      "observers_active",
	Help:      "Number of active ws event feed connections.",
}, []string{"endpoint"})

func CountApiCall(operation, result string) {
	if len(operation) == 0 || len(result) == 0 {
		return
	}
	apiCallCounter.With(prometheus.Labels{"operation": operation, "result": result}).Inc()
}

func CountRetry(operation string) {
	if len(operation) == 0 {
		return
	}
	retryCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

func CountServerRequest(operation, result string) {
	if len(operation) == 0 || len(result) == 0 {
		return
	}
	serverRequestCounter.With(prometheus.Labels{"operation": operation, "result": result}).Inc()
}

func ObserveConnectorStatus(status string, count int) {
	if len(status) == 0 {
		return
	}
	connectorStatusGauge.With(prometheus.Labels{"status": status}).Set(float64(count))
}

func ObserveObservers(endpoint string, count int) {
	if len(endpoint) == 0 {
		return
	}
	observersGauge.With(prometheus.Labels{"endpoint": endpoint}).Set(float64(count))
}
