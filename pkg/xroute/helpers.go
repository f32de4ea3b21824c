package xroute

import (
	"runtime"

	"github.com/omeyang/logkit/pkg/xlevel"
)

// 静态调用点辅助函数：每个级别一个，走全局默认 Router。
// 类别缺省时从调用点源文件名自动推导（自动类别，落入有界 LRU 缓存分区）。
// 显式传入的类别只取第一个。

// callerInfo 捕获调用点信息。skip 为需要跳过的栈帧数
// （从 callerInfo 自身算起）。
func callerInfo(skip int) (file, function string, line int) {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "", "", 0
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		function = fn.Name()
	}
	return file, function, line
}

// logDefault 把一次静态辅助调用提交给全局默认 Router。
// skip=3: Caller(0)=callerInfo → logDefault → 级别函数 → 业务代码。
//
//go:noinline
func logDefault(level xlevel.Level, message string, categories []Category) {
	file, function, line := callerInfo(3)
	category := pickCategory(categories, file)
	Default().Log(message, level, category, file, function, line)
}

// pickCategory 取显式类别的第一个，缺省时从调用点文件推导自动类别。
func pickCategory(categories []Category, file string) Category {
	if len(categories) > 0 {
		return categories[0]
	}
	return autoCategoryFromFile(file)
}

// Trace 以 Trace 级别记录日志。
func Trace(message string, category ...Category) {
	logDefault(xlevel.Trace, message, category)
}

// Debug 以 Debug 级别记录日志。
func Debug(message string, category ...Category) {
	logDefault(xlevel.Debug, message, category)
}

// Print 以 Print 级别记录日志。
func Print(message string, category ...Category) {
	logDefault(xlevel.Print, message, category)
}

// Info 以 Info 级别记录日志。
func Info(message string, category ...Category) {
	logDefault(xlevel.Info, message, category)
}

// Notice 以 Notice 级别记录日志。
func Notice(message string, category ...Category) {
	logDefault(xlevel.Notice, message, category)
}

// Warning 以 Warning 级别记录日志。
func Warning(message string, category ...Category) {
	logDefault(xlevel.Warning, message, category)
}

// Error 以 Error 级别记录日志。
func Error(message string, category ...Category) {
	logDefault(xlevel.Error, message, category)
}

// Fatal 以 Fatal 级别记录日志。仅记录，不终止进程。
func Fatal(message string, category ...Category) {
	logDefault(xlevel.Fatal, message, category)
}

// Success 以 Success 级别记录日志。
func Success(message string, category ...Category) {
	logDefault(xlevel.Success, message, category)
}

// Done 以 Done 级别记录日志。
func Done(message string, category ...Category) {
	logDefault(xlevel.Done, message, category)
}

// Network 以 Network 级别记录日志。
func Network(message string, category ...Category) {
	logDefault(xlevel.Network, message, category)
}

// API 以 API 级别记录日志。
func API(message string, category ...Category) {
	logDefault(xlevel.API, message, category)
}

// Security 以 Security 级别记录日志。
func Security(message string, category ...Category) {
	logDefault(xlevel.Security, message, category)
}

// Auth 以 Auth 级别记录日志。
func Auth(message string, category ...Category) {
	logDefault(xlevel.Auth, message, category)
}

// Metric 以 Metric 级别记录日志。
func Metric(message string, category ...Category) {
	logDefault(xlevel.Metric, message, category)
}

// Analytics 以 Analytics 级别记录日志。
func Analytics(message string, category ...Category) {
	logDefault(xlevel.Analytics, message, category)
}

// UI 以 UI 级别记录日志。
func UI(message string, category ...Category) {
	logDefault(xlevel.UI, message, category)
}

// User 以 User 级别记录日志。
func User(message string, category ...Category) {
	logDefault(xlevel.User, message, category)
}

// Database 以 Database 级别记录日志。
func Database(message string, category ...Category) {
	logDefault(xlevel.Database, message, category)
}

// Storage 以 Storage 级别记录日志。
func Storage(message string, category ...Category) {
	logDefault(xlevel.Storage, message, category)
}
