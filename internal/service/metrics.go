package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

const meterName = "github.com/prperemyshlev/task-manager/internal/service"

type authMetrics struct {
	logins        metric.Int64Counter
	registrations metric.Int64Counter
	refreshes     metric.Int64Counter
}

// newAuthMetrics registers auth counters on the global meter provider
func newAuthMetrics(logger *zap.Logger) *authMetrics {
	meter := otel.Meter(meterName)

	counter := func(name, description string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(description))
		if err != nil {
			logger.Warn("Failed to create counter", zap.String("name", name), zap.Error(err))
			return noop.Int64Counter{}
		}
		return c
	}

	return &authMetrics{
		logins:        counter("auth.login.attempts", "Login attempts by outcome"),
		registrations: counter("auth.registrations", "Completed registrations"),
		refreshes:     counter("auth.refresh", "Token refreshes by outcome"),
	}
}

func (m *authMetrics) login(ctx context.Context, outcome string) {
	m.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *authMetrics) registered(ctx context.Context) {
	m.registrations.Add(ctx, 1)
}

func (m *authMetrics) refresh(ctx context.Context, outcome string) {
	m.refreshes.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
