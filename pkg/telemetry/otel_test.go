package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Disabled(t *testing.T) {
	tele, err := New(context.Background(), config.TelemetryConfig{Enabled: false}, "test")
	require.NoError(t, err)

	assert.False(t, tele.IsEnabled())
	assert.NotNil(t, tele.GetTracer())
	assert.NoError(t, tele.Shutdown(context.Background()))
}

func TestNilTelemetryIsUsable(t *testing.T) {
	var tele *Telemetry

	assert.False(t, tele.IsEnabled())

	_, span := tele.GetTracer().Start(context.Background(), "noop")
	span.End()
	assert.False(t, span.SpanContext().IsValid())

	tele.RecordError(context.Background(), errors.New("ignored"), nil)
	assert.NoError(t, tele.Shutdown(context.Background()))
}
