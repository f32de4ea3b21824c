package xroute

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/omeyang/logkit/pkg/xlevel"
)

func newTestMeterProvider() (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	return mp, reader
}

// sumOf 汇总指定名称指标的全部数据点。指标不存在时返回 (0, false)。
func sumOf(rm metricdata.ResourceMetrics, name string) (int64, bool) {
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				return 0, false
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total, true
		}
	}
	return 0, false
}

func TestNewMetrics_NilProvider(t *testing.T) {
	m, err := NewMetrics(nil)
	require.NoError(t, err)
	assert.Nil(t, m, "nil provider should disable metrics")
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	// nil 收集器的全部记录方法都是空操作，不 panic
	m.recordDispatch(xlevel.Info)
	m.recordDrop(xlevel.Debug, dropReasonLevel)
	m.recordEvict()
	m.recordFanout(3)
}

func TestMetrics_Record(t *testing.T) {
	mp, reader := newTestMeterProvider()
	defer func() { _ = mp.Shutdown(context.Background()) }()

	m, err := NewMetrics(mp)
	require.NoError(t, err)
	require.NotNil(t, m)

	m.recordDispatch(xlevel.Info)
	m.recordDispatch(xlevel.Error)
	m.recordDrop(xlevel.Debug, dropReasonLevel)
	m.recordDrop(xlevel.Debug, dropReasonCategory)
	m.recordDrop(xlevel.Debug, dropReasonSampler)
	m.recordEvict()
	m.recordFanout(2)
	m.recordFanout(3)
	m.recordFanout(0) // 零投递不计数

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	dispatch, ok := sumOf(rm, metricNameDispatchTotal)
	require.True(t, ok, "dispatch counter should exist")
	assert.Equal(t, int64(2), dispatch)

	drop, ok := sumOf(rm, metricNameDropTotal)
	require.True(t, ok, "drop counter should exist")
	assert.Equal(t, int64(3), drop)

	evict, ok := sumOf(rm, metricNameEvictTotal)
	require.True(t, ok, "evict counter should exist")
	assert.Equal(t, int64(1), evict)

	fanout, ok := sumOf(rm, metricNameFanoutTotal)
	require.True(t, ok, "fanout counter should exist")
	assert.Equal(t, int64(5), fanout)
}

func TestMetrics_RouterIntegration(t *testing.T) {
	mp, reader := newTestMeterProvider()
	defer func() { _ = mp.Shutdown(context.Background()) }()

	r, err := New(
		WithOutput(io.Discard),
		WithMinLevel(xlevel.Info),
		WithMeterProvider(mp),
	)
	require.NoError(t, err)
	defer r.Close()

	received := make(chan string, 8)
	r.AddSink(func(line string, _ Category) { received <- line })

	cat := NewCategory("App")
	r.Log("dropped by level", xlevel.Debug, cat, "", "", 0)
	r.Log("delivered", xlevel.Error, cat, "", "", 0)
	<-received
	// 阻塞式读操作作为屏障：返回即说明在它之前入队的处理已全部完成
	_ = r.SinkCount()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	dispatch, ok := sumOf(rm, metricNameDispatchTotal)
	require.True(t, ok)
	assert.Equal(t, int64(1), dispatch)

	drop, ok := sumOf(rm, metricNameDropTotal)
	require.True(t, ok)
	assert.Equal(t, int64(1), drop)

	fanout, ok := sumOf(rm, metricNameFanoutTotal)
	require.True(t, ok)
	assert.Equal(t, int64(1), fanout)
}
