package xlevel

import "strconv"

// Family 级别族，用于批量选择相关级别。
// 级别族成员关系是静态查找表，与级别序数无派生关系。
type Family int

const (
	// FamilyDevelopment 开发调试类（Trace、Debug、Print）。
	FamilyDevelopment Family = iota
	// FamilyGeneral 常规信息类（Info、Notice）。
	FamilyGeneral
	// FamilyProblems 问题类（Warning、Error、Fatal）。
	FamilyProblems
	// FamilySuccess 成功类（Success、Done）。
	FamilySuccess
	// FamilyNetworking 网络类（Network、API）。
	FamilyNetworking
	// FamilySecurity 安全类（Security、Auth）。
	FamilySecurity
	// FamilyPerformance 性能类（Metric、Analytics）。
	FamilyPerformance
	// FamilyUI 界面交互类（UI、User）。
	FamilyUI
	// FamilyData 数据类（Database、Storage）。
	FamilyData
)

// String 返回级别族的可读字符串表示，用于调试和日志输出。
func (f Family) String() string {
	switch f {
	case FamilyDevelopment:
		return "development"
	case FamilyGeneral:
		return "general"
	case FamilyProblems:
		return "problems"
	case FamilySuccess:
		return "success"
	case FamilyNetworking:
		return "networking"
	case FamilySecurity:
		return "security"
	case FamilyPerformance:
		return "performance"
	case FamilyUI:
		return "ui"
	case FamilyData:
		return "data"
	default:
		return "Family(" + strconv.Itoa(int(f)) + ")"
	}
}
