// Package observability holds the Prometheus metrics recorded by the auth services.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values shared by the counters below.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics groups the service counters. A nil *Metrics is valid and records
// nothing, so services and tests can run without a registry.
type Metrics struct {
	Logins            *prometheus.CounterVec
	Refreshes         *prometheus.CounterVec
	ResetRequests     *prometheus.CounterVec
	ResetConsumptions *prometheus.CounterVec
	Swept             *prometheus.CounterVec
}

// NewMetrics creates and registers the auth metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_logins_total",
				Help: "Login attempts by outcome",
			},
			[]string{"outcome"},
		),
		Refreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_access_refreshes_total",
				Help: "Access tokens reissued from a refresh token, by outcome",
			},
			[]string{"outcome"},
		),
		ResetRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_reset_requests_total",
				Help: "Password reset requests by outcome",
			},
			[]string{"outcome"},
		),
		ResetConsumptions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_reset_consumptions_total",
				Help: "Reset token verifications by outcome",
			},
			[]string{"outcome"},
		),
		Swept: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_housekeeping_deleted_total",
				Help: "Expired rows removed by housekeeping, by table",
			},
			[]string{"table"},
		),
	}

	reg.MustRegister(m.Logins, m.Refreshes, m.ResetRequests, m.ResetConsumptions, m.Swept)
	return m
}

// NewRegistry returns a registry carrying the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// Handler exposes reg in the Prometheus text format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

func (m *Metrics) Login(outcome string) {
	if m != nil {
		m.Logins.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) Refresh(outcome string) {
	if m != nil {
		m.Refreshes.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) ResetRequest(outcome string) {
	if m != nil {
		m.ResetRequests.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) ResetConsume(outcome string) {
	if m != nil {
		m.ResetConsumptions.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) Sweep(table string, n int64) {
	if m != nil && n > 0 {
		m.Swept.WithLabelValues(table).Add(float64(n))
	}
}
