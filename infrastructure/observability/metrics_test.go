package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"bonusbot/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newReaderBackedProvider(t *testing.T) (*MetricsProvider, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	mp := NewMetricsProvider(config.NewTestConfig())
	require.NoError(t, mp.createInstruments(provider.Meter("test")))
	mp.initialized = true
	mp.exporting = true
	return mp, reader
}

func collectSums(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	sums := make(map[string]int64)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					sums[m.Name] += dp.Value
				}
			}
		}
	}
	return sums
}

func TestMetricsProvider_Records(t *testing.T) {
	t.Parallel()

	mp, reader := newReaderBackedProvider(t)

	mp.RecordResolution("ARTIST", 2, 1)
	mp.RecordResolution("ARTIST", 0, 0)
	mp.RecordRosterRefresh(25*time.Millisecond, nil)
	mp.RecordNATSMessagePublished("birthday_bonus_transition")
	mp.RecordAnnouncement(errors.New("boom"))
	mp.RecordDatabaseQuery("bonus_records.list_all", time.Millisecond, nil)

	sums := collectSums(t, reader)
	assert.Equal(t, int64(2), sums[ResolutionsTotal])
	assert.Equal(t, int64(3), sums[TransitionsTotal])
	assert.Equal(t, int64(1), sums[RosterRefreshTotal])
	assert.Equal(t, int64(1), sums[NATSMessagesPublishedTotal])
	assert.Equal(t, int64(1), sums[AnnouncementsSentTotal])
	assert.Equal(t, int64(1), sums[DatabaseQueriesTotal])
}

func TestMetricsProvider_DisabledIsNoop(t *testing.T) {
	t.Parallel()

	var nilProvider *MetricsProvider
	assert.NotPanics(t, func() {
		nilProvider.RecordResolution("ARTIST", 1, 1)
		nilProvider.RecordAnnouncement(nil)
	})

	cfg := config.NewTestConfig()
	cfg.OTelEnabled = false
	mp := NewMetricsProvider(cfg)
	require.NoError(t, mp.Initialize(context.Background()))
	assert.False(t, mp.isEnabled())
	assert.NotPanics(t, func() {
		mp.RecordRosterRefresh(time.Second, nil)
	})
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestMeasureDatabaseQuery(t *testing.T) {
	t.Parallel()

	calls := 0
	err := MeasureDatabaseQuery(context.Background(), "op", func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	sentinel := errors.New("query failed")
	err = MeasureDatabaseQuery(context.Background(), "op", func() error { return sentinel })
	assert.ErrorIs(t, err, sentinel)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = MeasureDatabaseQuery(ctx, "op", func() error {
		calls++
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
