package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/x", 200, time.Millisecond)
		m.ObserveDBQuery("select", time.Millisecond, nil)
		m.SetDBPoolStats(1, 1, 0, 0)
		m.IncReservationWrite("create", "ok")
		m.IncAvailabilityConflict()
		m.IncSlotSearch("best", true)
		m.IncTableStatusChange("free")
	})
}

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("test", reg)

	m.IncReservationWrite("create", "ok")
	m.IncReservationWrite("create", "ok")
	m.IncReservationWrite("create", "conflict")
	m.IncAvailabilityConflict()
	m.IncSlotSearch("nearest", false)
	m.ObserveDBQuery("exec", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 3.0, counterSum(t, reg, "reservation_writes_total"))
	assert.Equal(t, 1.0, counterSum(t, reg, "availability_conflicts_total"))
	assert.Equal(t, 1.0, counterSum(t, reg, "slot_searches_total"))
	assert.Equal(t, 1.0, counterSum(t, reg, "db_query_errors_total"))
}

func counterSum(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		total := 0.0
		for _, metric := range mf.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
		return total
	}
	return 0
}
