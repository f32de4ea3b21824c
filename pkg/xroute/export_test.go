package xroute

// 导出内部函数供黑盒测试使用。
var (
	FormatLine           = formatLine
	RenderLine           = renderLine
	AutoCategoryFromFile = autoCategoryFromFile
)
