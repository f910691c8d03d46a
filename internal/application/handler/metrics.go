package handler

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metric names and attribute keys.
const (
	MeterName           = "fauna/dispatcher"
	CommandsCounterName = "fauna.commands"
	LoadDurationName    = "fauna.load.duration"
	AttrAction          = "action"
	AttrOutcome         = "outcome"
)

// Command outcomes recorded on the commands counter.
const (
	OutcomeOK           = "ok"
	OutcomeSaved        = "saved"
	OutcomeNotFound     = "not_found"
	OutcomeUnknownName  = "unknown_name"
	OutcomeInvalidName  = "invalid_name"
	OutcomeUnrecognized = "unrecognized"
	OutcomeError        = "error"
)

type dispatcherMetrics struct {
	commands     metric.Int64Counter
	loadDuration metric.Float64Histogram
}

func newDispatcherMetrics(meter metric.Meter) (*dispatcherMetrics, error) {
	if meter == nil {
		meter = otel.Meter(MeterName)
	}

	commands, err := meter.Int64Counter(
		CommandsCounterName,
		metric.WithDescription("Dispatched commands by action and outcome"),
		metric.WithUnit("{command}"),
	)
	if err != nil {
		return nil, err
	}

	loadDuration, err := meter.Float64Histogram(
		LoadDurationName,
		metric.WithDescription("Time spent loading the point table and the collection"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &dispatcherMetrics{commands: commands, loadDuration: loadDuration}, nil
}

// noopDispatcherMetrics is used when instrument creation fails; metrics never block a command.
func noopDispatcherMetrics() *dispatcherMetrics {
	m, _ := newDispatcherMetrics(noop.NewMeterProvider().Meter(MeterName))
	return m
}

func (m *dispatcherMetrics) recordCommand(ctx context.Context, action Action, outcome string) {
	m.commands.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrAction, string(action)),
		attribute.String(AttrOutcome, outcome),
	))
}

func (m *dispatcherMetrics) recordLoad(ctx context.Context, duration time.Duration) {
	m.loadDuration.Record(ctx, duration.Seconds())
}
