package xroute

import (
	"log/slog"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// maxAutoEntries 自动分区的硬上限。
// 无界模式在内部以该值作为 LRU 容量，使插入与配置更新共用同一条淘汰路径。
const maxAutoEntries = 1 << 24 // 16,777,216

// loggerCache 按类别缓存平台日志句柄，分为两个分区：
//
//   - named: 显式类别常驻分区，进程生命周期内不淘汰（除非整体 clear）
//   - auto: 自动类别有界分区，超限时按 LRU 淘汰；命中与插入都刷新新近度
//
// 非并发安全：仅由 Router 的调度 goroutine 访问，
// 因此选用无锁的 simplelru 而非带锁的 lru.Cache。
type loggerCache struct {
	handler slog.Handler
	named   map[string]*slog.Logger
	auto    *simplelru.LRU[string, *slog.Logger]
	limit   int
	onEvict func(name string)
	// suppressEvict 抑制淘汰回调：simplelru 的 Remove/Purge 也会触发
	// 回调，但分区提升与整体清空在语义上不是淘汰，不应计数。
	suppressEvict bool
}

// newLoggerCache 创建句柄缓存。limit <= 0 表示自动分区不设上限。
// onEvict 在自动分区条目被淘汰时回调（可为 nil），用于指标计数。
func newLoggerCache(handler slog.Handler, limit int, onEvict func(name string)) *loggerCache {
	c := &loggerCache{
		handler: handler,
		named:   make(map[string]*slog.Logger),
		limit:   limit,
		onEvict: onEvict,
	}
	// simplelru 构造仅在容量非正时报错，effectiveLimit 恒为正，忽略错误。
	c.auto, _ = simplelru.NewLRU(effectiveLimit(limit), func(name string, _ *slog.Logger) {
		if c.onEvict != nil && !c.suppressEvict {
			c.onEvict(name)
		}
	})
	return c
}

// effectiveLimit 把配置上限换算为 LRU 容量：非正值视为无界（硬上限兜底）。
func effectiveLimit(limit int) int {
	if limit <= 0 || limit > maxAutoEntries {
		return maxAutoEntries
	}
	return limit
}

// get 返回类别对应的平台日志句柄，首次使用时创建。
// 句柄创建永不失败（从共享 handler 派生 *slog.Logger 没有错误路径）。
//
// 同名优先常驻分区：显式类别若发现同名句柄滞留在自动分区，会把它
// 提升为常驻条目，保证"同名 ⇒ 同一句柄"。
func (c *loggerCache) get(cat Category) *slog.Logger {
	name := cat.Name()
	if h, ok := c.named[name]; ok {
		return h
	}

	if cat.IsAutoGenerated() {
		if h, ok := c.auto.Get(name); ok {
			return h
		}
		h := c.newHandle(name)
		c.auto.Add(name, h)
		return h
	}

	// 显式类别：如句柄已存在于自动分区，提升为常驻。
	if h, ok := c.auto.Peek(name); ok {
		c.suppressEvict = true
		c.auto.Remove(name)
		c.suppressEvict = false
		c.named[name] = h
		return h
	}
	h := c.newHandle(name)
	c.named[name] = h
	return h
}

// setLimit 更新自动分区容量上限并立即收紧（可能批量淘汰）。
// 非正值解除上限，直到下一次设置正值。
func (c *loggerCache) setLimit(limit int) {
	c.limit = limit
	c.auto.Resize(effectiveLimit(limit))
}

// clear 清空两个分区及全部新近度信息。整体清空不计入淘汰。
func (c *loggerCache) clear() {
	c.named = make(map[string]*slog.Logger)
	c.suppressEvict = true
	c.auto.Purge()
	c.suppressEvict = false
}

// count 返回两个分区的条目总数。
func (c *loggerCache) count() int {
	return len(c.named) + c.auto.Len()
}

// newHandle 为类别创建平台日志句柄：
// 绑定共享 handler 并附加 category 固定属性的 *slog.Logger。
func (c *loggerCache) newHandle(name string) *slog.Logger {
	return slog.New(c.handler).With(slog.String("category", name))
}
