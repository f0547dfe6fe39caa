package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/regatta/internal/app"
	"github.com/limaJavier/regatta/internal/cache"
	"github.com/limaJavier/regatta/internal/config"
	"github.com/limaJavier/regatta/internal/metrics"
)

// mapCache is a ScheduleCache kept in a map
type mapCache map[string][]byte

func (c mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := c[key]
	return value, ok, nil
}

func (c mapCache) Set(_ context.Context, key string, value []byte) error {
	c[key] = value
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *prometheus.Registry) {
	t.Helper()
	return newRouterWith(t, config.Default(), mapCache{})
}

func newRouterWith(t *testing.T, cfg *config.Config, responses cache.ScheduleCache) (*gin.Engine, *prometheus.Registry) {
	t.Helper()
	registry := prometheus.NewRegistry()
	sink, err := metrics.NewSink(metrics.Config{Prometheus: true}, registry)
	require.NoError(t, err)
	service, err := app.New(cfg, sink, nil)
	require.NoError(t, err)

	handler := NewScheduleHandler(service, responses, cfg.Solver.Strategy, cfg.Solver.Backend)
	return NewRouter(gin.TestMode, handler, registry), registry
}

func post(router http.Handler, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/v1/schedules", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestScheduleEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	body := `{"races": [{"name": "1x_Open_Womens", "heats": [[1, 2, 3, 4, 5]]}]}`

	//** First request solves
	first := post(router, body)
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	assert.Empty(t, first.Header().Get("X-Cache"))

	var response ScheduleResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &response))
	assert.Equal(t, "optimal", response.Status)
	assert.NotEmpty(t, response.RunID)
	require.NotNil(t, response.Schedule)
	assert.Equal(t, 480, response.Schedule.Races[0].Heats[0].Start)
	require.Len(t, response.RunningOrder, 1)
	assert.Equal(t, "08:00", response.RunningOrder[0].Time)

	//** Identical request is served from the cache
	second := post(router, body)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "hit", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestScheduleEndpointWithoutCache(t *testing.T) {
	router, _ := newRouterWith(t, config.Default(), nil)
	body := `{"races": [{"name": "1x_Open_Womens", "heats": [[1, 2, 3, 4, 5]]}]}`

	for range 3 {
		recorder := post(router, body)
		require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
		assert.Empty(t, recorder.Header().Get("X-Cache"))
	}
}

func TestScheduleEndpointCacheKeyedBySettings(t *testing.T) {
	responses := mapCache{}
	fiveLanes := config.Default()
	sixLanes := config.Default()
	sixLanes.Regatta.Lanes = 6
	fiveRouter, _ := newRouterWith(t, fiveLanes, responses)
	sixRouter, _ := newRouterWith(t, sixLanes, responses)
	body := `{"races": [{"name": "2x_Open_Mens", "heats": [[1, 2]]}]}`

	first := post(fiveRouter, body)
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())

	//** Same body on a server with other regatta defaults solves again
	second := post(sixRouter, body)
	require.Equal(t, http.StatusOK, second.Code, second.Body.String())
	assert.Empty(t, second.Header().Get("X-Cache"))

	var response ScheduleResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &response))
	require.NotNil(t, response.Schedule)
	assert.Equal(t, 6, response.Schedule.Lanes)
	assert.Len(t, responses, 2)

	//** Each server still hits its own entry
	assert.Equal(t, "hit", post(fiveRouter, body).Header().Get("X-Cache"))
	assert.Equal(t, "hit", post(sixRouter, body).Header().Get("X-Cache"))
}

func TestScheduleEndpointInfeasible(t *testing.T) {
	router, _ := newTestRouter(t)
	body := `{
		"settings": {"lanes": 1, "start": "08:00", "end": "08:10"},
		"races": [{"name": "4+_Open_Mens", "heats": [[1], [2], [3]]}]
	}`

	recorder := post(router, body)

	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	var response ScheduleResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "infeasible", response.Status)
	assert.Contains(t, response.Diagnostic, "relax the inputs")
	assert.Nil(t, response.Schedule)
}

func TestScheduleEndpointMalformed(t *testing.T) {
	router, _ := newTestRouter(t)
	tests := []struct {
		name string
		body string
	}{
		{"Not JSON", `{"races": `},
		{"Unknown field", `{"races": [], "venue": "lake"}`},
		{"Empty race name", `{"races": [{"name": "", "heats": [[1]]}]}`},
		{"Bad clock", `{"settings": {"start": "8am"}, "races": [{"name": "4+_Open_Mens", "heats": [[1]]}]}`},
		{"Heat larger than the course", `{"races": [{"name": "8+_Open_Mens", "heats": [[1, 2, 3, 4, 5, 6]]}]}`},
		{"No heats", `{"races": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := post(router, tt.body)

			assert.Equal(t, http.StatusBadRequest, recorder.Code, recorder.Body.String())
			var response ErrorResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
			assert.Equal(t, "malformed_input", response.Error)
		})
	}
}

func TestHealthAndMetrics(t *testing.T) {
	router, _ := newTestRouter(t)
	post(router, `{"races": [{"name": "2x_Open_Mens", "heats": [[1, 2]]}]}`)

	health := httptest.NewRecorder()
	router.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, health.Code)

	metricsRecorder := httptest.NewRecorder()
	router.ServeHTTP(metricsRecorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, metricsRecorder.Code)
	assert.Contains(t, metricsRecorder.Body.String(), `regatta_solves_total{backend="gini",status="optimal",strategy="embedded"} 1`)
}
