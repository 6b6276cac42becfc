// Package metrics holds the Prometheus collectors exported by the server.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "messbook"

// Result labels.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

type Metrics struct {
	LedgerWrites       *prometheus.CounterVec
	SettlementDuration prometheus.Histogram
	SettlementErrors   prometheus.Counter
	MessesCreated      prometheus.Counter
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LedgerWrites: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_writes_total",
			Help:      "Ledger writes by ledger and result.",
		}, []string{"ledger", "result"}),
		SettlementDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_compute_seconds",
			Help:      "Time spent computing a settlement, ledger reads included.",
			Buckets:   prometheus.DefBuckets,
		}),
		SettlementErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlement_errors_total",
			Help:      "Settlement computations that failed.",
		}),
		MessesCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messes_created_total",
			Help:      "Messes created.",
		}),
	}
}

// LedgerWrite counts one write to ledger.
func (m *Metrics) LedgerWrite(ledger string, err error) {
	if m == nil {
		return
	}
	m.LedgerWrites.WithLabelValues(ledger, result(err)).Inc()
}

// Settlement records one settlement computation that started at start.
func (m *Metrics) Settlement(start time.Time, err error) {
	if m == nil {
		return
	}
	m.SettlementDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.SettlementErrors.Inc()
	}
}

// MessCreated counts a new mess.
func (m *Metrics) MessCreated() {
	if m == nil {
		return
	}
	m.MessesCreated.Inc()
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
