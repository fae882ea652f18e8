package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	// DatasetMetricsMeterName is the name used for the dataset metrics meter
	DatasetMetricsMeterName = "github.com/VanshTheJudged/mcp-server/dataset"
)

// DatasetMetrics holds the OpenTelemetry instruments for dataset metrics
type DatasetMetrics struct {
	companiesTotal metric.Int64Gauge
	fieldsTotal    metric.Int64Gauge
}

// NewDatasetMetrics creates a new DatasetMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewDatasetMetrics(provider metric.MeterProvider) (*DatasetMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(DatasetMetricsMeterName)

	companiesTotal, err := meter.Int64Gauge(
		"companyd_dataset_companies_total",
		metric.WithDescription("Number of companies in the loaded dataset"),
		metric.WithUnit("{company}"),
	)
	if err != nil {
		return nil, err
	}

	fieldsTotal, err := meter.Int64Gauge(
		"companyd_dataset_fields_total",
		metric.WithDescription("Number of fields in the loaded dataset"),
		metric.WithUnit("{field}"),
	)
	if err != nil {
		return nil, err
	}

	return &DatasetMetrics{
		companiesTotal: companiesTotal,
		fieldsTotal:    fieldsTotal,
	}, nil
}

// RecordDataset records the size of the loaded dataset
func (m *DatasetMetrics) RecordDataset(ctx context.Context, source string, companies, fields int64) {
	if m == nil || m.companiesTotal == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("source", source),
	}

	m.companiesTotal.Record(ctx, companies, metric.WithAttributes(attrs...))
	m.fieldsTotal.Record(ctx, fields, metric.WithAttributes(attrs...))
}
