package telemetry

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/industry-overview/internal/events"
)

func TestRecorder_Reloads(t *testing.T) {
	r := NewRecorder()

	r.ObserveReload(nil, 10, 4, 2)
	r.ObserveReload(errors.New("boom"), 0, 0, 0)
	r.ObserveReload(nil, 12, 4, 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.reloads.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.reloads.WithLabelValues("failure")))
	assert.Equal(t, 12.0, testutil.ToFloat64(r.datasetRows.WithLabelValues("metrics")))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.ObserveAggregation("performance", "ok", 3*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `industry_overview_aggregation_duration_seconds_count{status="ok",view="performance"} 1`)
}

func TestRecorder_Attach(t *testing.T) {
	r := NewRecorder()
	bus := events.NewBus(zerolog.Nop())
	r.Attach(bus)

	bus.Publish(&events.Event{Type: events.DatasetReloaded, Data: &events.DatasetReloadedData{MetricRows: 7, TopicRows: 3, LeaderRows: 1}})
	bus.Publish(&events.Event{Type: events.DatasetReloadFailed, Data: &events.ReloadFailedData{Error: "boom"}})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.reloads.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.reloads.WithLabelValues("failure")))
	assert.Equal(t, 7.0, testutil.ToFloat64(r.datasetRows.WithLabelValues("metrics")))
}
