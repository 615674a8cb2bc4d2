package aggregator

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/weather"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/pkg/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeService struct {
	current     *weather.CurrentConditions
	forecast    *weather.ForecastResponse
	currentErr  error
	forecastErr error
	delay       time.Duration
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (f *fakeService) enter() {
	n := f.inFlight.Add(1)
	for {
		peak := f.maxInFlight.Load()
		if n <= peak || f.maxInFlight.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(f.delay)
	f.inFlight.Add(-1)
}

func (f *fakeService) CurrentConditions(ctx context.Context, lat, lon float64) (*weather.CurrentConditions, error) {
	f.enter()
	return f.current, f.currentErr
}

func (f *fakeService) Forecast(ctx context.Context, lat, lon float64) (*weather.ForecastResponse, error) {
	f.enter()
	return f.forecast, f.forecastErr
}

func (f *fakeService) Name() string {
	return "fake"
}

func float(v float64) *float64 { return &v }

func newFakeService() *fakeService {
	return &fakeService{
		current: &weather.CurrentConditions{
			Name:     "Maricá",
			Sys:      weather.CurrentSys{Country: "BR"},
			Dt:       1704888000,
			Timezone: -10800,
			Weather:  []weather.Condition{{Main: "Clear"}},
			Main:     weather.CurrentMain{Temp: 30.2, Humidity: float(60)},
			Wind:     weather.CurrentWind{Speed: float(10)},
		},
		forecast: &weather.ForecastResponse{List: []weather.ForecastSample{
			{DtTxt: "2024-01-10 12:00:00", Main: weather.ForecastMain{Temp: 30}, Weather: []weather.Condition{{Main: "Clear"}}, Pop: float(0.1)},
			{DtTxt: "2024-01-10 15:00:00", Main: weather.ForecastMain{Temp: 25}, Weather: []weather.Condition{{Main: "Clear"}}},
			{DtTxt: "2024-01-11 12:00:00", Main: weather.ForecastMain{Temp: 20}, Weather: []weather.Condition{{Main: "Rain"}}},
		}},
	}
}

func newTestAggregator(t *testing.T, svc *fakeService) *Aggregator {
	return NewAggregator(svc, zaptest.NewLogger(t), &telemetry.Telemetry{})
}

func TestAggregator_GetCityWeather(t *testing.T) {
	agg := newTestAggregator(t, newFakeService())

	got, err := agg.GetCityWeather(context.Background(), -22.9, -42.8)

	require.NoError(t, err)
	assert.Equal(t, "Maricá, BR", got.CityName)
	assert.Equal(t, "Clear", got.Description)
	assert.Equal(t, 30, got.CurrentTemp)
	assert.Equal(t, "Chuva: 10%", got.PrecipitationLabel)
	assert.Equal(t, "Vento: 36 km/h", got.WindLabel)
	assert.Equal(t, []weather.WeatherDay{
		{WeekDayLabel: "qua.", Min: 25, Max: 30, Icon: weather.IconSun},
		{WeekDayLabel: "qui.", Min: 20, Max: 20, Icon: weather.IconRain},
	}, got.Daily)
}

func TestAggregator_FetchesConcurrently(t *testing.T) {
	svc := newFakeService()
	svc.delay = 50 * time.Millisecond
	agg := newTestAggregator(t, svc)

	_, err := agg.GetCityWeather(context.Background(), 0, 0)

	require.NoError(t, err)
	assert.Equal(t, int32(2), svc.maxInFlight.Load())
}

func TestAggregator_CurrentFailureFailsWhole(t *testing.T) {
	svc := newFakeService()
	svc.currentErr = errors.New("current down")
	agg := newTestAggregator(t, svc)

	got, err := agg.GetCityWeather(context.Background(), 0, 0)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, svc.currentErr)
}

func TestAggregator_ForecastFailureFailsWhole(t *testing.T) {
	svc := newFakeService()
	svc.forecastErr = errors.New("forecast down")
	agg := newTestAggregator(t, svc)

	got, err := agg.GetCityWeather(context.Background(), 0, 0)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, svc.forecastErr)
}

func TestAggregator_BothFailuresAreReported(t *testing.T) {
	svc := newFakeService()
	svc.currentErr = errors.New("current down")
	svc.forecastErr = errors.New("forecast down")
	agg := newTestAggregator(t, svc)

	_, err := agg.GetCityWeather(context.Background(), 0, 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, svc.currentErr)
	assert.ErrorIs(t, err, svc.forecastErr)
}

func TestAggregator_EmptyForecast(t *testing.T) {
	svc := newFakeService()
	svc.forecast = &weather.ForecastResponse{}
	agg := newTestAggregator(t, svc)

	got, err := agg.GetCityWeather(context.Background(), 0, 0)

	require.NoError(t, err)
	assert.Empty(t, got.Daily)
	assert.Equal(t, "Chuva: --%", got.PrecipitationLabel)
}
