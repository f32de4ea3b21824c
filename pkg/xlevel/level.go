package xlevel

import (
	"strconv"
	"strings"
)

// Level 日志级别。序数（底层整数值）是唯一的比较依据。
type Level int

// 级别常量，按序数升序排列。
const (
	Trace Level = iota
	Debug
	Print
	Info
	Notice
	Warning
	Error
	Fatal
	Success
	Done
	Network
	API
	Security
	Auth
	Metric
	Analytics
	UI
	User
	Database
	Storage

	levelCount // 仅用于表长度校验
)

// levelInfo 级别的静态元数据。
type levelInfo struct {
	name   string
	code   string
	emoji  string
	class  PlatformClass
	family Family
}

// levelTable 级别元数据静态表。
// 级别族是独立的查找维度，不由序数派生。
var levelTable = [levelCount]levelInfo{
	Trace:     {"trace", "TRC", "🔬", ClassDebug, FamilyDevelopment},
	Debug:     {"debug", "DBG", "🔍", ClassDebug, FamilyDevelopment},
	Print:     {"print", "PRT", "📝", ClassInfo, FamilyDevelopment},
	Info:      {"info", "INF", "ℹ️", ClassInfo, FamilyGeneral},
	Notice:    {"notice", "NTC", "📢", ClassInfo, FamilyGeneral},
	Warning:   {"warning", "WRN", "⚠️", ClassDefault, FamilyProblems},
	Error:     {"error", "ERR", "❌", ClassError, FamilyProblems},
	Fatal:     {"fatal", "FTL", "💀", ClassCritical, FamilyProblems},
	Success:   {"success", "SUC", "✅", ClassInfo, FamilySuccess},
	Done:      {"done", "DON", "🏁", ClassInfo, FamilySuccess},
	Network:   {"network", "NET", "🌐", ClassDefault, FamilyNetworking},
	API:       {"api", "API", "🔗", ClassDefault, FamilyNetworking},
	Security:  {"security", "SEC", "🔒", ClassDefault, FamilySecurity},
	Auth:      {"auth", "AUT", "🔑", ClassDefault, FamilySecurity},
	Metric:    {"metric", "MET", "📊", ClassInfo, FamilyPerformance},
	Analytics: {"analytics", "ANL", "📈", ClassInfo, FamilyPerformance},
	UI:        {"ui", "UI", "🖥️", ClassDefault, FamilyUI},
	User:      {"user", "USR", "👤", ClassDefault, FamilyUI},
	Database:  {"database", "DB", "🗄️", ClassDefault, FamilyData},
	Storage:   {"storage", "STO", "💾", ClassDefault, FamilyData},
}

// Valid 报告级别是否为已定义的级别值。
func (l Level) Valid() bool {
	return l >= Trace && l < levelCount
}

// String 返回级别的显示名（小写）。
// 未定义的级别返回 "Level(n)" 形式。
func (l Level) String() string {
	if !l.Valid() {
		return "Level(" + strconv.Itoa(int(l)) + ")"
	}
	return levelTable[l].name
}

// ShortCode 返回级别的短码（如 "INF"）。未定义的级别返回空字符串。
func (l Level) ShortCode() string {
	if !l.Valid() {
		return ""
	}
	return levelTable[l].code
}

// Emoji 返回级别的 emoji 图标。未定义的级别返回空字符串。
func (l Level) Emoji() string {
	if !l.Valid() {
		return ""
	}
	return levelTable[l].emoji
}

// Class 返回级别映射到的平台严重度类别。
// 未定义的级别归入 ClassDefault。
func (l Level) Class() PlatformClass {
	if !l.Valid() {
		return ClassDefault
	}
	return levelTable[l].class
}

// Family 返回级别所属的级别族。未定义的级别归入 FamilyGeneral。
func (l Level) Family() Family {
	if !l.Valid() {
		return FamilyGeneral
	}
	return levelTable[l].family
}

// Compare 按序数比较两个级别，返回 -1、0 或 1。
func Compare(a, b Level) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// All 返回所有级别，按序数升序排列。
func All() []Level {
	levels := make([]Level, 0, levelCount)
	for l := Trace; l < levelCount; l++ {
		levels = append(levels, l)
	}
	return levels
}

// LevelsAtOrAbove 返回序数不低于 minimum 的所有级别，按序数升序排列。
func LevelsAtOrAbove(minimum Level) []Level {
	levels := make([]Level, 0, levelCount)
	for l := Trace; l < levelCount; l++ {
		if l >= minimum {
			levels = append(levels, l)
		}
	}
	return levels
}

// LevelsInFamily 返回属于指定级别族的所有级别，按序数升序排列。
func LevelsInFamily(f Family) []Level {
	levels := make([]Level, 0, 4)
	for l := Trace; l < levelCount; l++ {
		if levelTable[l].family == f {
			levels = append(levels, l)
		}
	}
	return levels
}

// Parse 解析字符串为日志级别。
//
// 依次尝试：名称精确匹配（大小写不敏感）→ 短码精确匹配（大小写不敏感）
// → emoji 精确匹配（大小写敏感）。输入会自动 TrimSpace。
// 均不匹配时返回 ErrUnknownLevel，不会 panic。
func Parse(s string) (Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Info, ErrUnknownLevel
	}

	lower := strings.ToLower(s)
	for l := Trace; l < levelCount; l++ {
		if levelTable[l].name == lower {
			return l, nil
		}
	}
	upper := strings.ToUpper(s)
	for l := Trace; l < levelCount; l++ {
		if levelTable[l].code == upper {
			return l, nil
		}
	}
	for l := Trace; l < levelCount; l++ {
		if levelTable[l].emoji == s {
			return l, nil
		}
	}
	return Info, ErrUnknownLevel
}

// MarshalText 实现 encoding.TextMarshaler 接口，
// 支持配置序列化场景（YAML/JSON）。
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, ErrUnknownLevel
	}
	return []byte(l.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler 接口，
// 支持从配置文件直接反序列化日志级别。
func (l *Level) UnmarshalText(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
