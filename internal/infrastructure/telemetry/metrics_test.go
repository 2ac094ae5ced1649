package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aokpower/ari-cart/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func TestNewMeterProvider_Disabled(t *testing.T) {
	mp, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:     false,
		ServiceName: "test-service",
	}, zap.NewNop())
	require.NoError(t, err)

	assert.NotNil(t, mp.Meter(telemetry.MeterName))
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestNewARIMetrics_NilMeter(t *testing.T) {
	_, err := telemetry.NewARIMetrics(nil)
	assert.ErrorIs(t, err, telemetry.ErrMeterNil)
}

func TestARIMetrics_NilReceiver(t *testing.T) {
	var m *telemetry.ARIMetrics
	assert.NotPanics(t, func() {
		m.RecordInvocation(context.Background(), "DONE", "")
		m.RecordItemsAdded(context.Background(), 1)
		m.RecordStep(context.Background(), "lookup", time.Second, nil)
	})
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestARIMetrics_Record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := telemetry.NewARIMetrics(provider.Meter(telemetry.MeterName))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordInvocation(ctx, "DONE", "")
	m.RecordInvocation(ctx, "FAILED", "LOOKING_UP")
	m.RecordInvocation(ctx, "DONE", "")
	m.RecordItemsAdded(ctx, 3)
	m.RecordItemsAdded(ctx, 0)
	m.RecordStep(ctx, "lookup", 120*time.Millisecond, nil)
	m.RecordStep(ctx, "lookup", 80*time.Millisecond, errors.New("down"))

	metrics := collect(t, reader)

	invocations, ok := metrics["ari_invocations_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	byState := map[string]int64{}
	for _, dp := range invocations.DataPoints {
		state, _ := dp.Attributes.Value(attribute.Key("state"))
		byState[state.AsString()] += dp.Value
	}
	assert.Equal(t, map[string]int64{"DONE": 2, "FAILED": 1}, byState)

	items, ok := metrics["ari_items_added_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, items.DataPoints, 1)
	assert.Equal(t, int64(3), items.DataPoints[0].Value)

	steps, ok := metrics["ari_step_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.Len(t, steps.DataPoints, 2)
}
