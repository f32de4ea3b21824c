package xroute

// Handle 订阅句柄：注册时立即返回的不透明唯一标识，用于后续移除。
// 回调 sink 与拉取 Stream 共享同一句柄空间。
type Handle string

// SinkFunc 回调式 sink：每条匹配的格式化日志行同步回调一次。
//
// 回调在调度 goroutine 内执行，不得长时间阻塞，也不得调用 Router 的
// 阻塞式读操作。回调 panic 会被隔离，不影响其它订阅与后续日志。
type SinkFunc func(line string, category Category)

// subscription 一条订阅记录。callback 与 lines 二者恰有其一非 nil。
type subscription struct {
	id       Handle
	filter   map[string]struct{} // nil = 接收全部类别
	callback SinkFunc
	lines    chan string         // 拉取式：已格式化日志行队列
	done     <-chan struct{}     // 拉取式：消费方关闭信号，解除背压阻塞
}

// matches 报告订阅是否接收指定类别。
func (s *subscription) matches(category string) bool {
	if s.filter == nil {
		return true
	}
	_, ok := s.filter[category]
	return ok
}

// registry 订阅注册表。
// 非并发安全：仅由 Router 的调度 goroutine 访问。
type registry struct {
	subs map[Handle]*subscription
	// shutdown Router 的关闭信号：关闭排空阶段放弃拉取式背压阻塞，
	// 避免消费者已消失的满队列卡死 Close。
	shutdown <-chan struct{}
}

func newRegistry(shutdown <-chan struct{}) *registry {
	return &registry{
		subs:     make(map[Handle]*subscription),
		shutdown: shutdown,
	}
}

// addCallback 注册回调式 sink。
func (g *registry) addCallback(id Handle, filter map[string]struct{}, fn SinkFunc) {
	g.subs[id] = &subscription{id: id, filter: filter, callback: fn}
}

// addStream 注册拉取式消费者。lines 通道的关闭权归注册表所有。
func (g *registry) addStream(id Handle, filter map[string]struct{}, lines chan string, done <-chan struct{}) {
	g.subs[id] = &subscription{id: id, filter: filter, lines: lines, done: done}
}

// remove 注销任一种类的订阅。幂等：句柄不存在时为空操作，永不失败。
// 拉取式订阅被移除时关闭其 lines 通道，消费方据此观察到终止。
func (g *registry) remove(id Handle) {
	sub, ok := g.subs[id]
	if !ok {
		return
	}
	delete(g.subs, id)
	if sub.lines != nil {
		close(sub.lines)
	}
}

// removeAll 清空全部订阅；所有在途的拉取式消费者观察到终止。
func (g *registry) removeAll() {
	for id := range g.subs {
		g.remove(id)
	}
}

// callbackCount 返回回调式 sink 的数量。
func (g *registry) callbackCount() int {
	n := 0
	for _, sub := range g.subs {
		if sub.callback != nil {
			n++
		}
	}
	return n
}

// streamCount 返回拉取式订阅的数量。
func (g *registry) streamCount() int {
	return len(g.subs) - g.callbackCount()
}

// dispatch 把格式化日志行投递给所有类别匹配的订阅。
//
// 不同订阅之间的投递顺序不作保证（map 迭代序）。回调 panic 被隔离；
// 拉取式投递在队列满时阻塞（背压），消费方 Close 会解除阻塞。
// 返回实际投递的订阅数。
func (g *registry) dispatch(line string, category Category) int {
	delivered := 0
	name := category.Name()
	for _, sub := range g.subs {
		if !sub.matches(name) {
			continue
		}
		if sub.callback != nil {
			safeCallback(sub.callback, line, category)
			delivered++
			continue
		}
		select {
		case sub.lines <- line:
			delivered++
		case <-sub.done:
			// 消费方已主动关闭，放弃投递；注销操作已在队列中。
		case <-g.shutdown:
			// Router 正在关闭，放弃背压等待。
		}
	}
	return delivered
}

// safeCallback 隔离 sink 回调的 panic，防止扩散到调度 goroutine。
func safeCallback(fn SinkFunc, line string, category Category) {
	defer func() {
		_ = recover()
	}()
	fn(line, category)
}
