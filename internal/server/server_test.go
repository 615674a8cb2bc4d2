package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/config"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/geo"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/server/handlers"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/pkg/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const (
	currentBody = `{
		"name": "Maricá", "sys": {"country": "BR"}, "dt": 1704888000, "timezone": -10800,
		"weather": [{"main": "Clouds", "description": "nuvens dispersas"}],
		"main": {"temp": 27.6, "temp_min": 24.2, "temp_max": 29.5, "humidity": 78},
		"wind": {"speed": 10}
	}`
	forecastBody = `{"list": [
		{"dt_txt": "2024-01-10 12:00:00", "main": {"temp": 30}, "weather": [{"main": "Clear"}], "pop": 0.1},
		{"dt_txt": "2024-01-10 15:00:00", "main": {"temp": 25}, "weather": [{"main": "Clear"}]},
		{"dt_txt": "2024-01-11 12:00:00", "main": {"temp": 20}, "weather": [{"main": "Rain"}]}
	]}`
	geocodeBody = `[
		{"name": "Maricá", "country": "BR", "lat": -22.9, "lon": -42.8},
		{"name": "maricá", "country": "BR", "lat": -22.9, "lon": -42.8},
		{"name": "Paris", "country": "FR", "lat": 48.8, "lon": 2.3}
	]`
)

func newUpstream(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/data/2.5/weather", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(currentBody))
	})
	mux.HandleFunc("/data/2.5/forecast", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(forecastBody))
	})
	mux.HandleFunc("/geo/1.0/direct", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Query().Get("q"), "Par") {
			_, _ = w.Write([]byte(`[{"name": "Paris", "country": "FR", "lat": 48.8, "lon": 2.3}]`))
			return
		}
		_, _ = w.Write([]byte(geocodeBody))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T, apiKey string) *Server {
	upstream := newUpstream(t)

	cfg := config.NewDefaultConfig()
	cfg.OpenWeather.BaseURL = upstream.URL + "/data/2.5"
	cfg.OpenWeather.GeoBaseURL = upstream.URL + "/geo/1.0"
	cfg.OpenWeather.APIKey = apiKey

	s := NewServer(cfg, zaptest.NewLogger(t), &telemetry.Telemetry{})
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s
}

func get(s *Server, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestServer_SearchEndToEnd(t *testing.T) {
	s := newTestServer(t, "key")

	w := get(s, "/weather/search?q=Maric%C3%A1")

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var resp handlers.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Maricá, BR", resp.City.Label)
	assert.Equal(t, "Maricá, BR", resp.Weather.CityName)
	assert.Equal(t, "Nuvens dispersas", resp.Weather.Description)
	assert.Equal(t, "quarta-feira, 09:00", resp.Weather.DateTimeLabel)
	assert.Equal(t, "Chuva: 10%", resp.Weather.PrecipitationLabel)
	assert.Equal(t, "Vento: 36 km/h", resp.Weather.WindLabel)
	assert.Len(t, resp.Weather.Daily, 2)
}

func TestServer_SuggestDeduplicates(t *testing.T) {
	s := newTestServer(t, "key")

	w := get(s, "/cities/suggest?q=Mari")

	require.Equal(t, http.StatusOK, w.Code)
	var got []geo.CitySuggestion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Maricá, BR", got[0].Label)
}

func TestServer_ResolveNoMatchIsCounted(t *testing.T) {
	s := newTestServer(t, "key")

	w := get(s, "/cities/resolve?q=Paris")
	assert.Equal(t, http.StatusNotFound, w.Code)

	metrics := get(s, "/metrics").Body.String()
	assert.Contains(t, metrics, `city_lookups_total{result="no_match"} 1`)
	assert.Contains(t, metrics, `weather_service_calls_total{service="openweather.geocode"} 1`)
	assert.Contains(t, metrics, `http_requests_total{route_status="GET /cities/resolve_404"} 1`)
}

func TestServer_ReadinessWithoutAPIKey(t *testing.T) {
	s := newTestServer(t, "")

	assert.Equal(t, http.StatusServiceUnavailable, get(s, "/health/ready").Code)
	assert.Equal(t, http.StatusOK, get(s, "/health/live").Code)
	assert.Equal(t, http.StatusBadGateway, get(s, "/weather?lat=1&lon=1").Code)
}
