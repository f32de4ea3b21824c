// Package xroute 是进程级的日志路由与分发引擎。
//
// # 核心功能
//
//   - 单一入口 [Router.Log]：级别过滤 → 类别过滤 → 采样 → 格式化 →
//     平台 sink 写入 → 订阅扇出
//   - 按类别缓存平台日志句柄：显式类别常驻，自动类别走有界 LRU 淘汰
//   - 订阅注册表：回调式 sink 与拉取式 Stream，均支持可选类别过滤
//   - 全局默认 Router 与逐级别静态辅助函数（自动从调用点推导类别）
//   - 可选 OTel 指标（分发/丢弃/淘汰计数）与采样策略（随机、按 key 一致性）
//
// # 串行执行上下文
//
// Router 的全部可变状态（最小级别、配置、两个缓存分区、订阅注册表）由
// 一个专用调度 goroutine 独占，所有读写通过操作通道串行化：并发的 Log
// 调用之间、Log 与配置变更之间，永远不会观察到撕裂状态。
//
// 写操作（SetMinLevel、SetConfig、ClearLoggerCache 等）对调用方是
// fire-and-forget 的：调用返回不代表变更已生效，跨 goroutine 的生效
// 顺序仅由操作通道的 FIFO 准入顺序决定。读操作（MinLevel、Config、
// LoggerCacheCount、SinkCount）阻塞等待调度 goroutine 应答。
//
// 调用方义务：
//   - sink 回调在调度 goroutine 内同步执行，不得长时间阻塞，
//     否则会阻塞后续所有日志处理
//   - 严禁在 sink 回调内调用任何阻塞式读操作（会自死锁）
//   - Stream 消费方必须持续消费或调用 Close，停止消费而不关闭
//     会对分发形成背压
//
// # 失败语义
//
// 日志路径没有可恢复错误面：每个操作要么成功，要么静默空操作
// （低于最小级别、类别被过滤、移除不存在的订阅）。平台 sink 写入与
// sink 回调均做 panic 隔离，失败不会传播到业务调用链。
//
// # 类别相等性
//
// 两个类别同名即视为同一逻辑类别；IsAutoGenerated 标志只决定缓存分区，
// 不参与相等性判断。比较类别请使用 [Category.Equal]，不要用 ==。
package xroute
