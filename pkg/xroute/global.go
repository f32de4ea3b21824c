package xroute

import (
	"sync"
	"sync/atomic"
)

// =============================================================================
// 全局默认 Router
//
// 定位：脚手架/小工具等简单场景。
// 在服务端推荐依赖注入（显式持有 Router）。
// =============================================================================

// globalRouter 全局 Router 实例（并发安全）
var globalRouter atomic.Pointer[Router]

// globalMu 保护 globalOnce 及其 Do 执行（也用于 ResetDefault）
var globalMu sync.Mutex

// globalOnce 确保默认 Router 只初始化一次
var globalOnce sync.Once

// defaultRouter 创建默认 Router（惰性初始化）
//
// 设计决策: 在持锁状态下执行 once.Do，确保 ResetDefault（重置 globalOnce）
// 与 once.Do 之间不会发生并发竞争。初始化后 Default() 走 atomic.Load
// 快速路径，不进入此函数。
func defaultRouter() *Router {
	globalMu.Lock()
	defer globalMu.Unlock()

	globalOnce.Do(func() {
		// 默认配置下 New 没有失败路径（不启用指标收集器）。
		r, _ := New()
		globalRouter.Store(r)
	})
	return globalRouter.Load()
}

// Default 返回全局默认 Router。
//
// 懒初始化：首次调用时以默认配置创建（平台 sink 输出到 stderr，
// 最小级别 Trace）。并发安全。
func Default() *Router {
	if r := globalRouter.Load(); r != nil {
		return r
	}
	return defaultRouter()
}

// SetDefault 替换全局默认 Router。
//
// 用于测试或自定义配置场景。传入 nil 会被忽略。
// 被替换的旧实例不会被自动关闭，由调用方负责 Close。
func SetDefault(r *Router) {
	if r == nil {
		return
	}
	globalRouter.Store(r)
}

// ResetDefault 重置全局 Router 为未初始化状态（仅用于测试）。
//
// 调用后，下次 Default() 会重新初始化默认 Router。
// 当前实例不会被自动关闭，由调用方负责 Close。
func ResetDefault() {
	globalMu.Lock()
	globalRouter.Store(nil)
	globalOnce = sync.Once{}
	globalMu.Unlock()
}
