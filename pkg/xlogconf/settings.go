package xlogconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/omeyang/logkit/pkg/xlevel"
	"github.com/omeyang/logkit/pkg/xroute"
)

// Format 配置格式。
type Format string

const (
	// FormatYAML YAML 格式。
	FormatYAML Format = "yaml"
	// FormatJSON JSON 格式。
	FormatJSON Format = "json"
)

// koanfDelim 配置键分隔符。
const koanfDelim = "."

// Settings 日志路由的文件配置。
//
// 指针字段区分"未设置"（保持 xroute 默认值）与显式的零值设置。
type Settings struct {
	// Level 最小级别，接受 xlevel.Parse 支持的任意形式。空值保持默认。
	Level string `koanf:"level"`

	// Categories 类别允许集。nil 表示放行全部类别。
	Categories []string `koanf:"categories"`

	IncludeTimestamp *bool  `koanf:"include_timestamp"`
	IncludeEmoji     *bool  `koanf:"include_emoji"`
	IncludeShortCode *bool  `koanf:"include_short_code"`
	IncludeFileLine  *bool  `koanf:"include_file_line"`
	DateFormat       string `koanf:"date_format"`
	AutoCacheLimit   *int   `koanf:"auto_cache_limit"`

	// SampleRate 采样比率。未设置表示不采样。
	SampleRate *float64 `koanf:"sample_rate"`
	// SampleKeyed 为 true 时使用按类别名的一致性采样，否则随机采样。
	SampleKeyed bool `koanf:"sample_keyed"`
}

// Load 从文件路径加载配置。根据扩展名自动检测格式（.yaml/.yml 或 .json）。
func Load(path string) (*Settings, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return LoadBytes(data, format)
}

// LoadBytes 从字节数据加载配置。需要显式指定格式。
// 空数据返回全部字段未设置的 Settings（应用时保持默认值）。
func LoadBytes(data []byte, format Format) (*Settings, error) {
	parser, err := parserFor(format)
	if err != nil {
		return nil, err
	}

	k := koanf.New(koanfDelim)
	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), parser); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
		}
	}

	var s Settings
	if err := k.UnmarshalWithConf("", &s, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}
	return &s, nil
}

// Build 把 Settings 换算为路由配置与最小级别。
// 未设置的字段保持 xroute.DefaultConfig 与 xlevel.Trace 的默认值。
func (s *Settings) Build() (xroute.Config, xlevel.Level, error) {
	cfg := xroute.DefaultConfig()
	minLevel := xlevel.Trace

	if s.Level != "" {
		parsed, err := xlevel.Parse(s.Level)
		if err != nil {
			return xroute.Config{}, minLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, s.Level)
		}
		minLevel = parsed
	}
	if s.Categories != nil {
		cats := make([]xroute.Category, 0, len(s.Categories))
		for _, name := range s.Categories {
			cats = append(cats, xroute.NewCategory(name))
		}
		cfg.EnabledCategories = cats
	}
	if s.IncludeTimestamp != nil {
		cfg.IncludeTimestamp = *s.IncludeTimestamp
	}
	if s.IncludeEmoji != nil {
		cfg.IncludeEmoji = *s.IncludeEmoji
	}
	if s.IncludeShortCode != nil {
		cfg.IncludeShortCode = *s.IncludeShortCode
	}
	if s.IncludeFileLine != nil {
		cfg.IncludeFileLine = *s.IncludeFileLine
	}
	if s.DateFormat != "" {
		cfg.DateFormat = s.DateFormat
	}
	if s.AutoCacheLimit != nil {
		cfg.AutoCacheLimit = *s.AutoCacheLimit
	}
	if s.SampleRate != nil {
		sampler, err := buildSampler(*s.SampleRate, s.SampleKeyed)
		if err != nil {
			return xroute.Config{}, minLevel, err
		}
		cfg.Sampler = sampler
	}
	return cfg, minLevel, nil
}

// Apply 把 Settings 应用到 Router（SetConfig + SetMinLevel，
// fire-and-forget 语义与 Router 写操作一致）。
func Apply(r *xroute.Router, s *Settings) error {
	if r == nil {
		return ErrNilRouter
	}
	cfg, minLevel, err := s.Build()
	if err != nil {
		return err
	}
	r.SetConfig(cfg)
	r.SetMinLevel(minLevel)
	return nil
}

// buildSampler 按配置构造采样器。
func buildSampler(rate float64, keyed bool) (xroute.Sampler, error) {
	if keyed {
		return xroute.NewKeySampler(rate, nil)
	}
	return xroute.NewRateSampler(rate)
}

// formatByExt 文件扩展名到配置格式的映射（扩展名先转小写再查表）。
var formatByExt = map[string]Format{
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".json": FormatJSON,
}

// detectFormat 根据文件扩展名检测配置格式。
func detectFormat(path string) (Format, error) {
	if f, ok := formatByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: cannot detect format of %q", ErrUnsupportedFormat, path)
}

// parserFor 返回格式对应的 koanf 解析器。
func parserFor(format Format) (koanf.Parser, error) {
	switch format {
	case FormatYAML:
		return yaml.Parser(), nil
	case FormatJSON:
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
