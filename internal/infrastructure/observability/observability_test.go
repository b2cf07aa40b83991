package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/carecompass/backend/pkg/config"
)

func TestSetup_DisabledIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.OTELConfig{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitMetrics_RecordsWithoutProvider(t *testing.T) {
	metrics, err := InitMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	assert.NotPanics(t, func() {
		RecordRequestMetric(ctx, metrics, "GET", "/api/doctors", 200, 12*time.Millisecond)
		RecordStoreMetric(ctx, metrics, "redis", "lrange", time.Millisecond)
		RecordCacheHit(ctx, metrics, "/api/doctors")
		RecordCacheMiss(ctx, metrics, "/api/doctors")
	})
}

func TestInitMetrics_ExportsThroughMeterProvider(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	previous := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)
	t.Cleanup(func() { otel.SetMeterProvider(previous) })

	metrics, err := InitMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	RecordCacheHit(ctx, metrics, "/api/doctors")
	RecordCacheHit(ctx, metrics, "/api/doctors")
	RecordCacheMiss(ctx, metrics, "/api/symptoms")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	totals := map[string]int64{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					totals[m.Name] += dp.Value
				}
			}
		}
	}
	assert.Equal(t, int64(2), totals["cache.hit.count"])
	assert.Equal(t, int64(1), totals["cache.miss.count"])
}

func TestRecorders_NilMetrics(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordRequestMetric(context.Background(), nil, "GET", "/health", 200, 0)
		RecordCacheHit(context.Background(), nil, "/health")
	})
}

func TestLoggerFromContext_NoSpan(t *testing.T) {
	InitLogger("carecompass-test", "test")
	logger := LoggerFromContext(context.Background())
	require.NotNil(t, logger)
}
