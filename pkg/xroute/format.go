package xroute

import (
	"path/filepath"
	"strconv"
	"strings"
)

// fileLineSeparator 尾部文件行号段的分隔记号。
const fileLineSeparator = " — "

// formatLine 按默认行文法拼装日志行。
//
// 固定顺序：时间戳、emoji、短码（方括号）、类别（方括号）、消息，
// 各组件仅在启用时出现，以单个空格连接；文件行号段使用独立的
// " — " 分隔记号追加在末尾。对固定输入是确定性的。
func formatLine(cfg Config, fc FormatContext) string {
	parts := make([]string, 0, 5)
	if cfg.IncludeTimestamp {
		parts = append(parts, fc.Time.Format(cfg.dateFormat()))
	}
	if cfg.IncludeEmoji {
		if emoji := fc.Level.Emoji(); emoji != "" {
			parts = append(parts, emoji)
		}
	}
	if cfg.IncludeShortCode {
		if code := fc.Level.ShortCode(); code != "" {
			parts = append(parts, "["+code+"]")
		}
	}
	parts = append(parts, "["+fc.Category.Name()+"]", fc.Message)

	line := strings.Join(parts, " ")
	if cfg.IncludeFileLine && fc.File != "" {
		line += fileLineSeparator + filepath.Base(fc.File) + ":" + strconv.Itoa(fc.Line)
	}
	return line
}

// renderLine 生成最终日志行：配置了自定义格式化函数时原样采用其返回值，
// 否则走默认行文法。自定义函数 panic 时隔离并回落到默认文法，
// 保证日志路径永不向调用方扩散失败。
func renderLine(cfg Config, fc FormatContext) (line string) {
	if cfg.Formatter == nil {
		return formatLine(cfg, fc)
	}
	defer func() {
		if r := recover(); r != nil {
			line = formatLine(cfg, fc)
		}
	}()
	return cfg.Formatter(fc)
}
