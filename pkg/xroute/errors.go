package xroute

import "errors"

var (
	// ErrInvalidRate 表示采样比率越界或为 NaN。
	ErrInvalidRate = errors.New("xroute: sample rate must be within [0.0, 1.0]")
)
