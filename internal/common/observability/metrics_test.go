package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterTotal(t *testing.T, reg *prometheus.Registry, prefix string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	var total float64
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), prefix) {
			continue
		}
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				total += c.GetValue()
			}
		}
	}
	return total
}

func TestMiddleware_RecordsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := New("activity-server-test", reg)
	require.NoError(t, err)
	defer obs.Shutdown(context.Background())

	e := echo.New()
	e.Use(obs.Middleware())
	e.GET("/activities", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{})
	})

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/activities", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 3.0, counterTotal(t, reg, "http_server_requests"))
}

func TestRecordRequest_WithoutExporterIsNoop(t *testing.T) {
	obs := &Observability{}
	assert.NotPanics(t, func() {
		obs.RecordRequest(context.Background(), http.MethodGet, "/activities", http.StatusOK, 0)
	})
	assert.NotNil(t, obs.Tracer())
	assert.NoError(t, obs.Shutdown(context.Background()))
}
