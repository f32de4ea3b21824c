package xroute

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/omeyang/logkit/pkg/xlevel"
)

// 设计决策: 指标前缀使用 "logkit.*"，与 OTel Meter scope name 保持一致
// （Meter("logkit")），各包自治命名，避免与 scope 名称产生冗余嵌套。
const (
	// metricNameDispatchTotal 成功分发（写入平台 sink 并扇出）的日志条数
	metricNameDispatchTotal = "logkit.dispatch.total"
	// metricNameDropTotal 被静默丢弃的日志条数（按 reason 维度区分）
	metricNameDropTotal = "logkit.drop.total"
	// metricNameEvictTotal 自动句柄缓存的 LRU 淘汰次数
	metricNameEvictTotal = "logkit.cache.evict.total"
	// metricNameFanoutTotal 扇出到订阅的投递次数
	metricNameFanoutTotal = "logkit.fanout.total"
)

// 丢弃原因标签值。
const (
	dropReasonLevel    = "level"
	dropReasonCategory = "category"
	dropReasonSampler  = "sampler"
)

// Metrics 路由引擎指标收集器。
// 所有记录方法对 nil 接收者安全（不收集指标时为空操作）。
type Metrics struct {
	dispatchTotal metric.Int64Counter
	dropTotal     metric.Int64Counter
	evictTotal    metric.Int64Counter
	fanoutTotal   metric.Int64Counter
}

// NewMetrics 创建指标收集器。
// meterProvider 为 nil 时返回 (nil, nil)，表示不收集指标。
func NewMetrics(meterProvider metric.MeterProvider) (*Metrics, error) {
	if meterProvider == nil {
		return nil, nil
	}

	meter := meterProvider.Meter("logkit")
	m := &Metrics{}

	var err error
	if m.dispatchTotal, err = meter.Int64Counter(metricNameDispatchTotal,
		metric.WithDescription("成功分发的日志条数"), metric.WithUnit("{log}")); err != nil {
		return nil, fmt.Errorf("xroute: create counter failed: %w", err)
	}
	if m.dropTotal, err = meter.Int64Counter(metricNameDropTotal,
		metric.WithDescription("被静默丢弃的日志条数"), metric.WithUnit("{log}")); err != nil {
		return nil, fmt.Errorf("xroute: create counter failed: %w", err)
	}
	if m.evictTotal, err = meter.Int64Counter(metricNameEvictTotal,
		metric.WithDescription("自动句柄缓存的 LRU 淘汰次数"), metric.WithUnit("{eviction}")); err != nil {
		return nil, fmt.Errorf("xroute: create counter failed: %w", err)
	}
	if m.fanoutTotal, err = meter.Int64Counter(metricNameFanoutTotal,
		metric.WithDescription("扇出到订阅的投递次数"), metric.WithUnit("{delivery}")); err != nil {
		return nil, fmt.Errorf("xroute: create counter failed: %w", err)
	}

	return m, nil
}

// recordDispatch 记录一次成功分发。
func (m *Metrics) recordDispatch(level xlevel.Level) {
	if m == nil {
		return
	}
	m.dispatchTotal.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("level", level.String())))
}

// recordDrop 记录一次静默丢弃。
func (m *Metrics) recordDrop(level xlevel.Level, reason string) {
	if m == nil {
		return
	}
	m.dropTotal.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String("level", level.String()),
			attribute.String("reason", reason),
		))
}

// recordEvict 记录一次自动句柄缓存淘汰。
func (m *Metrics) recordEvict() {
	if m == nil {
		return
	}
	m.evictTotal.Add(context.Background(), 1)
}

// recordFanout 记录扇出投递次数。
func (m *Metrics) recordFanout(delivered int) {
	if m == nil || delivered == 0 {
		return
	}
	m.fanoutTotal.Add(context.Background(), int64(delivered))
}
