// Package telemetry provides OpenTelemetry metrics for the collection engine.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const meterName = "github.com/hotelstock/backend/collection"

// CollectionMetrics counts collection outcomes. It records against whatever
// meter provider the host process wired up; with none installed the
// counters are no-ops, so the engine can always call through.
type CollectionMetrics struct {
	collectionsTotal metric.Int64Counter
	quantityTotal    metric.Float64Counter
	batchesTotal     metric.Int64Counter
	rejectionsTotal  metric.Int64Counter
	logger           *zap.Logger
}

// NewCollectionMetrics creates metrics on the global meter provider
func NewCollectionMetrics(logger *zap.Logger) (*CollectionMetrics, error) {
	return NewCollectionMetricsWithMeter(otel.Meter(meterName), logger)
}

// NewCollectionMetricsWithMeter creates metrics on a specific meter
func NewCollectionMetricsWithMeter(meter metric.Meter, logger *zap.Logger) (*CollectionMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	collections, err := meter.Int64Counter(
		"hotelstock_collections_total",
		metric.WithDescription("Total number of committed FIFO collections"),
		metric.WithUnit("{collections}"),
	)
	if err != nil {
		return nil, err
	}

	quantity, err := meter.Float64Counter(
		"hotelstock_collected_quantity_total",
		metric.WithDescription("Total quantity of stock collected"),
		metric.WithUnit("{units}"),
	)
	if err != nil {
		return nil, err
	}

	batches, err := meter.Int64Counter(
		"hotelstock_collected_batches_total",
		metric.WithDescription("Total number of batches touched by collections"),
		metric.WithUnit("{batches}"),
	)
	if err != nil {
		return nil, err
	}

	rejections, err := meter.Int64Counter(
		"hotelstock_collection_rejections_total",
		metric.WithDescription("Collection requests rejected with a business error"),
		metric.WithUnit("{rejections}"),
	)
	if err != nil {
		return nil, err
	}

	return &CollectionMetrics{
		collectionsTotal: collections,
		quantityTotal:    quantity,
		batchesTotal:     batches,
		rejectionsTotal:  rejections,
		logger:           logger.Named("telemetry"),
	}, nil
}

// RecordCollection counts one committed collection
func (m *CollectionMetrics) RecordCollection(ctx context.Context, reason string, quantity float64, batchCount int) {
	attrs := metric.WithAttributes(attribute.String("reason", reason))
	m.collectionsTotal.Add(ctx, 1, attrs)
	m.quantityTotal.Add(ctx, quantity, attrs)
	m.batchesTotal.Add(ctx, int64(batchCount), attrs)
}

// RecordRejection counts one business rejection by error code
func (m *CollectionMetrics) RecordRejection(ctx context.Context, code string) {
	m.rejectionsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("code", code)))
}
