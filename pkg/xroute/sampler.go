package xroute

import (
	"math"
	"math/rand"

	"github.com/cespare/xxhash/v2"

	"github.com/omeyang/logkit/pkg/xlevel"
)

// Sampler 采样策略接口。
//
// 引擎在级别过滤与类别过滤之后调用采样器，返回 false 的请求被静默丢弃。
// 采样器在调度 goroutine 内执行，必须轻量且无阻塞。
type Sampler interface {
	// ShouldSample 判断是否放行该条日志。
	ShouldSample(level xlevel.Level, category Category) bool
}

// validateRate 校验采样比率在 [0.0, 1.0] 且非 NaN。
func validateRate(rate float64) error {
	if math.IsNaN(rate) || rate < 0 || rate > 1 {
		return ErrInvalidRate
	}
	return nil
}

// RateSampler 随机采样策略：每条日志独立按比率随机放行。
type RateSampler struct {
	rate float64
}

// NewRateSampler 创建随机采样器。
// rate 为采样比率，范围 [0.0, 1.0]，越界或 NaN 返回 ErrInvalidRate。
func NewRateSampler(rate float64) (*RateSampler, error) {
	if err := validateRate(rate); err != nil {
		return nil, err
	}
	return &RateSampler{rate: rate}, nil
}

// ShouldSample 实现 Sampler 接口。
func (s *RateSampler) ShouldSample(_ xlevel.Level, _ Category) bool {
	if s.rate <= 0 {
		return false
	}
	if s.rate >= 1 {
		return true
	}
	return rand.Float64() < s.rate
}

// Rate 返回当前采样比率。
func (s *RateSampler) Rate() float64 {
	return s.rate
}

// KeyFunc 从日志请求中提取采样 key 的函数。
// 相同的 key 在相同比率下总是产生相同的采样决策。
type KeyFunc func(level xlevel.Level, category Category) string

// KeySampler 基于 key 的一致性采样策略。
//
// 对相同的 key 总是产生相同的决策，适合按类别整组采样：
// 同一类别的日志要么全部放行、要么全部丢弃，避免输出支离破碎。
//
// 设计决策: 工厂函数返回具体类型而非 Sampler 接口，
// Rate() 自省能力无法通过接口获得。
type KeySampler struct {
	rate    float64
	keyFunc KeyFunc
}

// NewKeySampler 创建基于 key 的一致性采样器。
//
// rate 为采样比率，范围 [0.0, 1.0]，越界或 NaN 返回 ErrInvalidRate。
// keyFunc 为 nil 时默认按类别名采样。key 为空字符串时回退到随机采样：
// 保持近似的采样率语义，只是失去了决策一致性。
func NewKeySampler(rate float64, keyFunc KeyFunc) (*KeySampler, error) {
	if err := validateRate(rate); err != nil {
		return nil, err
	}
	if keyFunc == nil {
		keyFunc = func(_ xlevel.Level, category Category) string {
			return category.Name()
		}
	}
	return &KeySampler{rate: rate, keyFunc: keyFunc}, nil
}

// ShouldSample 实现 Sampler 接口。
func (s *KeySampler) ShouldSample(level xlevel.Level, category Category) bool {
	if s.rate <= 0 {
		return false
	}
	if s.rate >= 1 {
		return true
	}

	key := s.keyFunc(level, category)
	if key == "" {
		return rand.Float64() < s.rate
	}

	// xxhash 是零分配的确定性哈希：同一 key 在任何进程中产生相同哈希值。
	// 归一化到 [0, 1]：rate < 1 时即便 normalized == 1.0 也不会误放行。
	hashValue := xxhash.Sum64String(key)
	normalized := float64(hashValue) / float64(math.MaxUint64)
	return normalized < s.rate
}

// Rate 返回当前采样比率。
func (s *KeySampler) Rate() float64 {
	return s.rate
}

// 确保实现了接口
var (
	_ Sampler = (*RateSampler)(nil)
	_ Sampler = (*KeySampler)(nil)
)
