package xroute

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"github.com/omeyang/logkit/pkg/xlevel"
)

// defaultOpsBuffer 操作通道的默认容量。
const defaultOpsBuffer = 256

// Router 日志路由与分发引擎。
//
// 必须通过 [New] 创建，零值不可用。全部可变状态由一个专用调度
// goroutine 独占：每个公开方法要么把操作提交到该 goroutine 的 FIFO
// 队列（写操作，fire-and-forget），要么阻塞等待其应答（读操作）。
// 并发调用安全。使用完毕必须调用 Close 释放调度 goroutine。
type Router struct {
	ops       chan func()
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once

	// admit 保护 closed 与 ops 入队。Close 取写锁后不可能再有新操作
	// 入队，调度 goroutine 的排空阶段才能以队列见空为终止条件。
	admit  sync.RWMutex
	closed bool

	streamBuffer int

	// 以下字段仅由调度 goroutine 访问。
	minLevel xlevel.Level
	cfg      Config
	allow    map[string]struct{} // 由 cfg.EnabledCategories 预构建，nil = 放行全部
	cache    *loggerCache
	subs     *registry
	metrics  *Metrics
}

// options Router 可选配置。
type options struct {
	cfg           Config
	minLevel      xlevel.Level
	handler       slog.Handler
	meterProvider metric.MeterProvider
	opsBuffer     int
	streamBuffer  int
}

// Option 定义 Router 的配置选项。
type Option func(*options)

// WithConfig 设置初始路由配置。默认为 DefaultConfig()。
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithMinLevel 设置初始最小级别。默认为 xlevel.Trace（全量放行）。
func WithMinLevel(level xlevel.Level) Option {
	return func(o *options) {
		o.minLevel = level
	}
}

// WithHandler 设置平台 sink 的底层 slog.Handler。
// 默认为输出到 os.Stderr 的 TextHandler。
func WithHandler(h slog.Handler) Option {
	return func(o *options) {
		if h != nil {
			o.handler = h
		}
	}
}

// WithOutput 设置平台 sink 的输出目标（构建默认 TextHandler）。
// 与 WithHandler 互斥，后设置者生效。
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.handler = slog.NewTextHandler(w, nil)
		}
	}
}

// WithMeterProvider 启用 OTel 指标收集。默认不收集。
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = provider
	}
}

// WithStreamBuffer 设置 Stream 队列容量。默认为 64。
func WithStreamBuffer(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.streamBuffer = n
		}
	}
}

// New 创建路由引擎并启动其调度 goroutine。
// 仅在指标收集器初始化失败时返回错误；默认参数不会失败。
func New(opts ...Option) (*Router, error) {
	o := &options{
		cfg:          DefaultConfig(),
		minLevel:     xlevel.Trace,
		handler:      slog.NewTextHandler(os.Stderr, nil),
		opsBuffer:    defaultOpsBuffer,
		streamBuffer: defaultStreamBuffer,
	}
	for _, opt := range opts {
		opt(o)
	}

	metrics, err := NewMetrics(o.meterProvider)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	r := &Router{
		ops:          make(chan func(), o.opsBuffer),
		done:         done,
		stopped:      make(chan struct{}),
		streamBuffer: o.streamBuffer,
		minLevel:     o.minLevel,
		cfg:          o.cfg,
		allow:        o.cfg.allowSet(),
		subs:         newRegistry(done),
		metrics:      metrics,
	}
	r.cache = newLoggerCache(o.handler, o.cfg.AutoCacheLimit, func(string) {
		r.metrics.recordEvict()
	})

	go r.run()
	return r, nil
}

// run 调度循环：FIFO 消费操作队列，直到 Close。
// 退出前排空已入队的操作（Close 已隔离全部发送方，队列只减不增），
// 再终止全部订阅（在途 Stream 观察到通道关闭）。
func (r *Router) run() {
	defer close(r.stopped)
	for {
		select {
		case op := <-r.ops:
			op()
		case <-r.done:
			for {
				select {
				case op := <-r.ops:
					op()
				default:
					r.subs.removeAll()
					return
				}
			}
		}
	}
}

// submit 把操作提交到串行上下文。Router 已关闭时返回 false（空操作）。
//
// 入队在读锁内完成：与 Close 的写锁互斥，通过 closed 检查的发送保证
// 发生在 done 关闭之前，必然被调度 goroutine 接收；关闭开始后的提交
// 则必然观察到 closed，确定性地返回 false。
func (r *Router) submit(op func()) bool {
	r.admit.RLock()
	defer r.admit.RUnlock()
	if r.closed {
		return false
	}
	r.ops <- op
	return true
}

// logRequest 一次入站日志请求。
type logRequest struct {
	time     time.Time
	level    xlevel.Level
	category Category
	message  string
	file     string
	function string
	line     int
}

// Log 日志请求的单一入口。
//
// 无返回值，永不向调用方抛出失败：被过滤的请求静默丢弃，平台 sink
// 写入是 best-effort 的。同一 goroutine 依次发出的 Log 调用按序处理；
// 不同 goroutine 之间只保证操作队列 FIFO 准入形成的某个全序。
func (r *Router) Log(message string, level xlevel.Level, category Category, file, function string, line int) {
	req := logRequest{
		time:     time.Now(),
		level:    level,
		category: category,
		message:  message,
		file:     file,
		function: function,
		line:     line,
	}
	r.submit(func() { r.process(req) })
}

// process 在调度 goroutine 内处理一次日志请求。
// 最小级别与配置在此读取，天然是一致的快照。
func (r *Router) process(req logRequest) {
	if req.level < r.minLevel {
		r.metrics.recordDrop(req.level, dropReasonLevel)
		return
	}
	if r.allow != nil {
		if _, ok := r.allow[req.category.Name()]; !ok {
			r.metrics.recordDrop(req.level, dropReasonCategory)
			return
		}
	}
	if r.cfg.Sampler != nil && !r.cfg.Sampler.ShouldSample(req.level, req.category) {
		r.metrics.recordDrop(req.level, dropReasonSampler)
		return
	}

	handle := r.cache.get(req.category)
	line := renderLine(r.cfg, FormatContext{
		Time:     req.time,
		Level:    req.level,
		Category: req.category,
		Message:  req.message,
		File:     req.file,
		Function: req.function,
		Line:     req.line,
	})

	emitLine(handle, req.level, line)
	delivered := r.subs.dispatch(line, req.category)

	r.metrics.recordDispatch(req.level)
	r.metrics.recordFanout(delivered)
}

// emitLine 把格式化日志行写入平台 sink，按级别映射的严重度类别落盘。
// best-effort：sink 侧的任何失败（含 panic）都不得影响后续的订阅扇出。
func emitLine(handle *slog.Logger, level xlevel.Level, line string) {
	defer func() {
		_ = recover()
	}()
	handle.Log(context.Background(), level.Class().SlogLevel(), line)
}

// MinLevel 返回当前最小级别。
//
// 阻塞等待串行上下文应答；严禁在 sink 回调内调用（自死锁）。
// Router 已关闭时返回零值（xlevel.Trace）。
func (r *Router) MinLevel() xlevel.Level {
	reply := make(chan xlevel.Level, 1)
	if !r.submit(func() { reply <- r.minLevel }) {
		return xlevel.Trace
	}
	return <-reply
}

// SetMinLevel 更新最小级别。fire-and-forget：调用返回不代表已生效，
// 生效顺序由操作队列的 FIFO 准入顺序决定。
func (r *Router) SetMinLevel(level xlevel.Level) {
	r.submit(func() { r.minLevel = level })
}

// Config 返回当前路由配置快照。阻塞语义同 MinLevel。
// Router 已关闭时返回零值 Config。
func (r *Router) Config() Config {
	reply := make(chan Config, 1)
	if !r.submit(func() { reply <- r.cfg }) {
		return Config{}
	}
	return <-reply
}

// SetConfig 整体替换路由配置。fire-and-forget。
// 生效时立即按新的 AutoCacheLimit 收紧自动句柄缓存（可能触发淘汰）。
func (r *Router) SetConfig(cfg Config) {
	r.submit(func() {
		r.cfg = cfg
		r.allow = cfg.allowSet()
		r.cache.setLimit(cfg.AutoCacheLimit)
	})
}

// AddSink 注册回调式 sink，可选类别过滤（不传 = 接收全部类别）。
//
// 立即返回句柄；注册本身相对调用方异步，但句柄在注册可见前即可用于
// 移除（移除幂等且同样经由串行上下文路由）。fn 为 nil 时不注册，
// 返回空句柄。
func (r *Router) AddSink(fn SinkFunc, categories ...Category) Handle {
	if fn == nil {
		return ""
	}
	h := Handle(uuid.NewString())
	filter := filterSet(categories)
	r.submit(func() { r.subs.addCallback(h, filter, fn) })
	return h
}

// RemoveSink 注销任一种类的订阅。幂等：句柄未知或已移除时为空操作。
func (r *Router) RemoveSink(h Handle) {
	r.submit(func() { r.subs.remove(h) })
}

// RemoveAllSinks 清空全部订阅（回调与 Stream）；
// 在途的 Stream 消费者观察到终止。
func (r *Router) RemoveAllSinks() {
	r.submit(func() { r.subs.removeAll() })
}

// SinkCount 返回当前回调式 sink 数量。阻塞语义同 MinLevel。
func (r *Router) SinkCount() int {
	reply := make(chan int, 1)
	if !r.submit(func() { reply <- r.subs.callbackCount() }) {
		return 0
	}
	return <-reply
}

// StreamCount 返回当前拉取式订阅数量。阻塞语义同 MinLevel。
func (r *Router) StreamCount() int {
	reply := make(chan int, 1)
	if !r.submit(func() { reply <- r.subs.streamCount() }) {
		return 0
	}
	return <-reply
}

// Stream 注册拉取式日志订阅，可选类别过滤（不传 = 接收全部类别）。
// Router 已关闭时返回的 Stream 立即处于终止状态。
func (r *Router) Stream(categories ...Category) *Stream {
	h := Handle(uuid.NewString())
	lines := make(chan string, r.streamBuffer)
	done := make(chan struct{})
	s := &Stream{handle: h, lines: lines, done: done, router: r}

	filter := filterSet(categories)
	if !r.submit(func() { r.subs.addStream(h, filter, lines, done) }) {
		close(lines)
	}
	return s
}

// LoggerCacheCount 返回两个句柄缓存分区的条目总数。阻塞语义同 MinLevel。
func (r *Router) LoggerCacheCount() int {
	reply := make(chan int, 1)
	if !r.submit(func() { reply <- r.cache.count() }) {
		return 0
	}
	return <-reply
}

// ClearLoggerCache 清空全部句柄缓存。onComplete 非 nil 时在清空生效后
// 于调度 goroutine 内调用一次（不得阻塞，不得调用阻塞式读操作）。
// Router 已关闭时不执行清空，也不调用 onComplete。
func (r *Router) ClearLoggerCache(onComplete func()) {
	r.submit(func() {
		r.cache.clear()
		if onComplete != nil {
			onComplete()
		}
	})
}

// Close 停止调度 goroutine 并终止全部订阅，阻塞直到调度循环退出。
// 幂等。关闭后：Log 与各写操作静默空操作，读操作返回零值，
// 新建 Stream 立即终止。
func (r *Router) Close() {
	r.closeOnce.Do(func() {
		// 先取写锁隔离全部发送方，再通知调度 goroutine。
		// 写锁等待在途入队完成，释放后 submit 必然观察到 closed，
		// 排空阶段的队列只减不增。
		r.admit.Lock()
		r.closed = true
		r.admit.Unlock()
		close(r.done)
	})
	<-r.stopped
}

// filterSet 把类别列表转换为名称查找表。空列表返回 nil（接收全部）。
func filterSet(categories []Category) map[string]struct{} {
	if len(categories) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(categories))
	for _, cat := range categories {
		set[cat.Name()] = struct{}{}
	}
	return set
}
