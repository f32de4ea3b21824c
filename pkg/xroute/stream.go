package xroute

import "sync"

// defaultStreamBuffer Stream 队列的默认容量。
const defaultStreamBuffer = 64

// Stream 拉取式日志订阅：一个惰性的、可能无限的格式化日志行序列。
//
// 序列不可重放，只在消费方调用 Close 或 Router 关闭（注册表整体清空）
// 时终止，终止表现为 Lines 通道关闭。队列满时分发端阻塞（背压），
// 因此消费方必须持续消费或及时 Close。
type Stream struct {
	handle Handle
	lines  chan string
	done   chan struct{}
	router *Router
	once   sync.Once
}

// Handle 返回订阅句柄。
func (s *Stream) Handle() Handle {
	return s.handle
}

// Lines 返回格式化日志行通道。通道关闭即流终止，此后不再有任何投递。
func (s *Stream) Lines() <-chan string {
	return s.lines
}

// Close 终止消费并自动从注册表注销（经由串行上下文路由）。
// 幂等。Close 返回后可能仍能从 Lines 读到已入队的残留行，
// 随后通道关闭。
func (s *Stream) Close() {
	s.once.Do(func() {
		close(s.done)
		s.router.RemoveSink(s.handle)
	})
}
