// Package xlogconf 从配置文件/字节数据加载日志路由配置并应用到 Router。
//
// # 核心功能
//
//   - Load/LoadBytes：从 YAML/JSON 加载 Settings（基于 koanf）
//   - Settings.Build：换算为 xroute.Config 与最小级别（未设置的字段
//     保持 xroute 默认值）
//   - Apply：一次性应用到 Router（SetConfig + SetMinLevel）
//   - Watch：监控配置文件变更并自动重载应用（基于 fsnotify，带防抖）
//
// # 配置示例（YAML）
//
//	level: info
//	categories: [Auth, Network]
//	include_timestamp: true
//	include_emoji: true
//	include_short_code: false
//	include_file_line: true
//	date_format: "2006-01-02 15:04:05.000-0700"
//	auto_cache_limit: 100
//	sample_rate: 0.5
//	sample_keyed: true
//
// 级别字段接受 xlevel.Parse 支持的任意形式（名称/短码/emoji）。
// categories 缺省（nil）表示放行全部类别；auto_cache_limit 为 0 或负数
// 表示自动句柄缓存不设上限。
package xlogconf
