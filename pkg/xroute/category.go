package xroute

import (
	"path/filepath"
	"strings"
)

// unknownCategoryName 调用点信息不可用时的兜底类别名。
const unknownCategoryName = "unknown"

// Category 日志类别：消息的命名分组标签。
//
// 类别要么由调用方显式声明（NewCategory），要么由静态辅助函数从调用点
// 源文件名自动推导（自动类别）。相等性只看名称：同名的显式类别与自动
// 类别是同一逻辑类别，共享同一个平台日志句柄。auto 标志仅决定句柄落在
// 常驻分区还是有界 LRU 分区。
type Category struct {
	name string
	auto bool
}

// NewCategory 创建显式声明的类别。
// 通常声明为包级常量风格的可复用变量。
func NewCategory(name string) Category {
	return Category{name: name}
}

// NewAutoCategory 创建标记为自动推导的类别。
// 一般无需直接调用：静态辅助函数会在类别缺省时自动推导。
func NewAutoCategory(name string) Category {
	return Category{name: name, auto: true}
}

// autoCategoryFromFile 从调用点源文件路径推导自动类别。
// 类别名为去掉 .go 后缀的文件基名（#fileID 的 Go 对应物）。
func autoCategoryFromFile(file string) Category {
	name := strings.TrimSuffix(filepath.Base(file), ".go")
	if name == "" || name == "." {
		name = unknownCategoryName
	}
	return Category{name: name, auto: true}
}

// Name 返回类别名。
func (c Category) Name() string {
	return c.name
}

// IsAutoGenerated 报告类别是否由调用点自动推导。
func (c Category) IsAutoGenerated() bool {
	return c.auto
}

// Equal 报告两个类别是否为同一逻辑类别（仅比较名称）。
func (c Category) Equal(other Category) bool {
	return c.name == other.name
}

// String 实现 fmt.Stringer。
func (c Category) String() string {
	return c.name
}
