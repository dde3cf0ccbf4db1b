package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics holds the service counters. A nil *Metrics records nothing.
type Metrics struct {
	chatIntents   metric.Int64Counter
	bookings      metric.Int64Counter
	externalCalls metric.Int64Counter
}

// InitMetrics wires an OpenTelemetry meter provider to the default Prometheus
// registry, which promhttp.Handler serves.
func InitMetrics(serviceName string) (*Metrics, func(context.Context) error, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	m, err := NewMetrics(mp.Meter(serviceName))
	if err != nil {
		return nil, nil, err
	}
	return m, mp.Shutdown, nil
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)
	if m.chatIntents, err = meter.Int64Counter("chat_intents_total",
		metric.WithDescription("Chat messages by matched intent")); err != nil {
		return nil, fmt.Errorf("chat_intents_total: %w", err)
	}
	if m.bookings, err = meter.Int64Counter("bookings_total",
		metric.WithDescription("Booking operations by outcome")); err != nil {
		return nil, fmt.Errorf("bookings_total: %w", err)
	}
	if m.externalCalls, err = meter.Int64Counter("external_calls_total",
		metric.WithDescription("Calls to third-party services by outcome")); err != nil {
		return nil, fmt.Errorf("external_calls_total: %w", err)
	}
	return &m, nil
}

func (m *Metrics) ChatIntent(ctx context.Context, intent string) {
	if m == nil {
		return
	}
	m.chatIntents.Add(ctx, 1, metric.WithAttributes(attribute.String("intent", intent)))
}

func (m *Metrics) Booking(ctx context.Context, op, outcome string) {
	if m == nil {
		return
	}
	m.bookings.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op), attribute.String("outcome", outcome)))
}

func (m *Metrics) ExternalCall(ctx context.Context, service string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.externalCalls.Add(ctx, 1, metric.WithAttributes(attribute.String("service", service), attribute.String("outcome", outcome)))
}
