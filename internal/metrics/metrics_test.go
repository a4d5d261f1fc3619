package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-pos-terminal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestObserveStats(t *testing.T) {
	m := New()

	m.ObserveStats(models.SyncStats{Pending: 4, Error: 1})

	body := scrape(t, m)
	assert.Contains(t, body, "pos_terminal_sync_queue_pending 4")
	assert.Contains(t, body, "pos_terminal_sync_queue_error 1")
}

func TestObserveDrain(t *testing.T) {
	m := New()

	m.ObserveDrain(OutcomeCompleted, models.DrainReport{Submitted: 3, Synced: 2, Retrying: 1}, time.Second)
	m.ObserveDrain(OutcomeSkipped, models.DrainReport{Skipped: true}, 0)

	body := scrape(t, m)
	assert.Contains(t, body, `pos_terminal_drain_cycles_total{outcome="completed"} 1`)
	assert.Contains(t, body, `pos_terminal_drain_cycles_total{outcome="skipped"} 1`)
	assert.Contains(t, body, "pos_terminal_drain_sales_synced_total 2")
	assert.Contains(t, body, "pos_terminal_drain_sales_retried_total 1")
	assert.Contains(t, body, "pos_terminal_drain_sales_failed_total 0")
	assert.Contains(t, body, "pos_terminal_drain_duration_seconds_count 1")
}

func TestSetOnline(t *testing.T) {
	m := New()

	m.SetOnline(true)
	assert.Contains(t, scrape(t, m), "pos_terminal_online 1")

	m.SetOnline(false)
	assert.Contains(t, scrape(t, m), "pos_terminal_online 0")
}

func TestRegistry_Gather(t *testing.T) {
	m := New()

	families, err := m.Registry().Gather()

	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
