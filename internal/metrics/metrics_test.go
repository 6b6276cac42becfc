package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.LedgerWrite("meal", nil)
	m.LedgerWrite("meal", nil)
	m.LedgerWrite("deposit", errors.New("boom"))
	m.Settlement(time.Now(), nil)
	m.Settlement(time.Now(), errors.New("boom"))
	m.MessCreated()

	require.Equal(t, 2.0, testutil.ToFloat64(m.LedgerWrites.WithLabelValues("meal", ResultOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.LedgerWrites.WithLabelValues("deposit", ResultError)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.SettlementErrors))
	require.Equal(t, 1.0, testutil.ToFloat64(m.MessesCreated))
	require.Equal(t, 1, testutil.CollectAndCount(m.SettlementDuration))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.LedgerWrite("meal", nil)
		m.Settlement(time.Now(), nil)
		m.MessCreated()
	})
}
