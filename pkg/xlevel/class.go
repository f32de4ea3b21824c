package xlevel

import (
	"log/slog"
	"strconv"
)

// PlatformClass 平台严重度类别。
// 日志行写入平台 sink（log/slog）时按此类别选择 slog 级别。
type PlatformClass int

const (
	// ClassDebug 调试类。
	ClassDebug PlatformClass = iota
	// ClassInfo 信息类。
	ClassInfo
	// ClassDefault 默认类。
	ClassDefault
	// ClassError 错误类。
	ClassError
	// ClassCritical 致命类。
	ClassCritical
)

// SlogLevel 返回类别对应的 slog 级别。
//
// ClassDefault 与 ClassInfo 同映射到 slog.LevelInfo；
// ClassCritical 映射到 slog.LevelError+4（slog 支持自定义级别偏移）。
func (c PlatformClass) SlogLevel() slog.Level {
	switch c {
	case ClassDebug:
		return slog.LevelDebug
	case ClassInfo, ClassDefault:
		return slog.LevelInfo
	case ClassError:
		return slog.LevelError
	case ClassCritical:
		return slog.LevelError + 4
	default:
		return slog.LevelInfo
	}
}

// String 返回类别的可读字符串表示。
func (c PlatformClass) String() string {
	switch c {
	case ClassDebug:
		return "debug"
	case ClassInfo:
		return "info"
	case ClassDefault:
		return "default"
	case ClassError:
		return "error"
	case ClassCritical:
		return "critical"
	default:
		return "PlatformClass(" + strconv.Itoa(int(c)) + ")"
	}
}
