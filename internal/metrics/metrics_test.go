package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.ObserveRPC("/settleup.v1.BalanceService/GetGroupBalances", "ok", 15*time.Millisecond)
	m.ObserveRPC("/settleup.v1.BalanceService/GetGroupBalances", "ok", 5*time.Millisecond)
	m.ObserveRPC("/settleup.v1.BalanceService/GetGroupBalances", "not_found", time.Millisecond)
	m.SettlementRecorded()
	m.PartialAggregate()
	m.PartialAggregate()
	m.ObserveSuggestions(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(
		m.rpcRequests.WithLabelValues("/settleup.v1.BalanceService/GetGroupBalances", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.rpcRequests.WithLabelValues("/settleup.v1.BalanceService/GetGroupBalances", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.settlementsRecorded))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.partialAggregates))
	assert.Equal(t, 1, testutil.CollectAndCount(m.suggestedPayments))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.SettlementRecorded()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "settleup_settlements_recorded_total 1"), body)
	assert.True(t, strings.Contains(body, "go_goroutines"))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveRPC("p", "ok", time.Second)
		m.ObserveSuggestions(3)
		m.SettlementRecorded()
		m.PartialAggregate()
	})
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
