package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// MeterName is the meter used for add-to-cart instruments
const MeterName = "ari-cart"

// ErrMeterNil is returned when an instrument set is built without a meter
var ErrMeterNil = errors.New("telemetry: meter is nil")

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled           bool
	CollectorEndpoint string
	ExportInterval    time.Duration // Default: 60s
	ServiceName       string
	Insecure          bool
}

// MeterProvider wraps the OpenTelemetry MeterProvider with lifecycle management.
type MeterProvider struct {
	provider *sdkmetric.MeterProvider
}

// NewMeterProvider creates a MeterProvider exporting over OTLP gRPC and
// installs it globally. When disabled the global no-op provider stays.
func NewMeterProvider(ctx context.Context, cfg MetricsConfig, logger *zap.Logger) (*MeterProvider, error) {
	mp := &MeterProvider{}

	if !cfg.Enabled {
		logger.Info("Metrics disabled, using no-op meter provider")
		return mp, nil
	}

	exportInterval := cfg.ExportInterval
	if exportInterval == 0 {
		exportInterval = 60 * time.Second
	}

	exporterOpts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint),
	}
	if cfg.Insecure {
		exporterOpts = append(exporterOpts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}

	res, err := serviceResource(cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	mp.provider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(exportInterval))),
	)
	otel.SetMeterProvider(mp.provider)

	logger.Info("OpenTelemetry MeterProvider initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.Duration("export_interval", exportInterval),
	)
	return mp, nil
}

// Shutdown flushes pending metrics and stops the exporter
func (mp *MeterProvider) Shutdown(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}
	if err := mp.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}
	return nil
}

// Meter returns a named meter from the provider, or from the global one
// when metrics are disabled
func (mp *MeterProvider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if mp.provider == nil {
		return otel.GetMeterProvider().Meter(name, opts...)
	}
	return mp.provider.Meter(name, opts...)
}

// Metric attribute keys
var (
	AttrState    = attribute.Key("state")
	AttrFailedAt = attribute.Key("failed_at")
	AttrStep     = attribute.Key("step")
	AttrOutcome  = attribute.Key("outcome")
)

// ARIMetrics holds the add-to-cart instruments
type ARIMetrics struct {
	invocations  metric.Int64Counter
	itemsAdded   metric.Int64Counter
	stepDuration metric.Float64Histogram
}

// NewARIMetrics creates the add-to-cart instruments on meter
func NewARIMetrics(meter metric.Meter) (*ARIMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	invocations, err := meter.Int64Counter("ari_invocations_total",
		metric.WithDescription("Add-to-cart invocations by final state"),
		metric.WithUnit("{invocations}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create invocations counter: %w", err)
	}

	itemsAdded, err := meter.Int64Counter("ari_items_added_total",
		metric.WithDescription("Units added to carts"),
		metric.WithUnit("{units}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create items counter: %w", err)
	}

	stepDuration, err := meter.Float64Histogram("ari_step_duration_seconds",
		metric.WithDescription("Duration of each network step"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create step histogram: %w", err)
	}

	return &ARIMetrics{
		invocations:  invocations,
		itemsAdded:   itemsAdded,
		stepDuration: stepDuration,
	}, nil
}

// RecordInvocation counts a finished invocation. failedAt is empty on success.
func (m *ARIMetrics) RecordInvocation(ctx context.Context, state, failedAt string) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{AttrState.String(state)}
	if failedAt != "" {
		attrs = append(attrs, AttrFailedAt.String(failedAt))
	}
	m.invocations.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordItemsAdded counts units accepted by the cart
func (m *ARIMetrics) RecordItemsAdded(ctx context.Context, quantity int) {
	if m == nil || quantity <= 0 {
		return
	}
	m.itemsAdded.Add(ctx, int64(quantity))
}

// RecordStep records how long a step took and whether it returned an error
func (m *ARIMetrics) RecordStep(ctx context.Context, step string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.stepDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		AttrStep.String(step),
		AttrOutcome.String(outcome),
	))
}
