// Package xlevel 定义日志级别与级别族模型。
//
// # 核心功能
//
//   - 20 个有序日志级别（Trace 到 Storage），序数是唯一的比较依据
//   - 每个级别携带显示名、短码、emoji 图标、平台严重度类别与所属级别族
//   - 级别族（Family）用于批量选择（如一次性启用所有"问题类"级别）
//   - 字符串解析（Parse）：依次尝试名称、短码、emoji 精确匹配
//   - 实现 encoding.TextMarshaler/TextUnmarshaler，支持配置文件直接序列化
//
// # 级别与级别族
//
// 级别按序数升序排列，序数决定最小级别过滤：
//
//	Trace < Debug < Print < Info < Notice < Warning < Error < Fatal <
//	Success < Done < Network < API < Security < Auth < Metric <
//	Analytics < UI < User < Database < Storage
//
// 级别族是静态查找表，与序数无派生关系：
//
//	Development{Trace, Debug, Print}、General{Info, Notice}、
//	Problems{Warning, Error, Fatal}、Success{Success, Done}、
//	Networking{Network, API}、Security{Security, Auth}、
//	Performance{Metric, Analytics}、UI{UI, User}、Data{Database, Storage}
//
// # 平台严重度
//
// 每个级别映射到一个平台严重度类别（PlatformClass），用于把格式化后的
// 日志行落到平台日志 sink（log/slog）时选择 slog 级别。
//
// 本包为纯数据模型：无可变状态，所有查询均无副作用。
package xlevel
