package xlevel

import "errors"

var (
	// ErrUnknownLevel 表示字符串无法解析为任何已定义的级别。
	ErrUnknownLevel = errors.New("xlevel: unknown level")
)
