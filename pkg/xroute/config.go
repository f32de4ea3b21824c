package xroute

import (
	"time"

	"github.com/omeyang/logkit/pkg/xlevel"
)

const (
	// DefaultDateFormat 默认时间戳格式（Go 布局）。
	DefaultDateFormat = "2006-01-02 15:04:05.000-0700"

	// DefaultAutoCacheLimit 自动类别句柄缓存的默认容量上限。
	DefaultAutoCacheLimit = 100
)

// FormatContext 自定义格式化函数收到的上下文包。
type FormatContext struct {
	// Time 日志请求提交时刻。
	Time time.Time
	// Level 日志级别。
	Level xlevel.Level
	// Category 日志类别。
	Category Category
	// Message 原始消息文本。
	Message string
	// File 调用点源文件路径（可能为空）。
	File string
	// Function 调用点函数名（可能为空）。
	Function string
	// Line 调用点行号。
	Line int
}

// FormatterFunc 自定义格式化函数。
// 返回值被原样用作格式化结果，内置的时间戳/emoji/短码开关全部失效。
type FormatterFunc func(FormatContext) string

// Config 路由策略快照。
//
// 值类型：引擎每次处理日志请求时读取一份完整一致的快照，
// 不会观察到新旧字段混合的状态。通过 [Router.SetConfig] 整体替换，
// 替换时会立即按 AutoCacheLimit 重新收紧自动句柄缓存（可能触发淘汰）。
type Config struct {
	// EnabledCategories 类别允许集。nil 表示放行全部类别。
	EnabledCategories []Category

	// Formatter 自定义格式化函数。nil 时使用默认行文法。
	Formatter FormatterFunc

	// Sampler 采样策略。nil 表示不采样（全量通过）。
	// 采样在级别过滤与类别过滤之后执行。
	Sampler Sampler

	// IncludeTimestamp 默认格式是否包含时间戳。
	IncludeTimestamp bool

	// IncludeEmoji 默认格式是否包含级别 emoji。
	IncludeEmoji bool

	// IncludeShortCode 默认格式是否包含级别短码（如 "[INF]"）。
	IncludeShortCode bool

	// IncludeFileLine 默认格式是否包含尾部的 "— 文件名:行号" 段。
	IncludeFileLine bool

	// DateFormat 时间戳的 Go 时间布局。空值回落到 DefaultDateFormat。
	DateFormat string

	// AutoCacheLimit 自动类别句柄缓存容量上限。
	// 小于等于 0 表示不设上限（禁用淘汰，直到下次设置正值）。
	AutoCacheLimit int
}

// DefaultConfig 返回默认路由配置：
// 时间戳、emoji、文件行号开启，短码关闭，自动缓存上限 100。
func DefaultConfig() Config {
	return Config{
		IncludeTimestamp: true,
		IncludeEmoji:     true,
		IncludeShortCode: false,
		IncludeFileLine:  true,
		DateFormat:       DefaultDateFormat,
		AutoCacheLimit:   DefaultAutoCacheLimit,
	}
}

// dateFormat 返回生效的时间布局。
func (c Config) dateFormat() string {
	if c.DateFormat == "" {
		return DefaultDateFormat
	}
	return c.DateFormat
}

// allowSet 由允许集构建名称查找表。nil 允许集返回 nil（放行全部）。
func (c Config) allowSet() map[string]struct{} {
	if c.EnabledCategories == nil {
		return nil
	}
	set := make(map[string]struct{}, len(c.EnabledCategories))
	for _, cat := range c.EnabledCategories {
		set[cat.Name()] = struct{}{}
	}
	return set
}
