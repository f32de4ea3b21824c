// logkitctl 是 logkit 日志路由库的命令行工具。
//
// 用法:
//
//	logkitctl <命令> [命令参数]
//
// 命令:
//
//	levels         列出所有日志级别及其属性
//	parse <文本>   解析文本为日志级别（名称、短码或 emoji）
//	emit           按配置文件发送示例日志，用于验证配置效果
//	help           显示帮助信息
//
// 退出码:
//
//	0: 命令执行成功
//	1: 命令执行失败（parse 命令: 无法识别输入）
//	2: 参数错误（缺少必需参数、未知命令等）
//
// 示例:
//
//	logkitctl levels                           # 列出全部 20 个级别
//	logkitctl levels --family security         # 只列出安全相关级别
//	logkitctl parse WRN                        # 解析短码
//	logkitctl parse 🌐                         # 解析 emoji
//	logkitctl emit --config logging.yaml       # 按配置发送示例日志
//	logkitctl emit --count 5 --category App    # 发送 5 条指定分类的日志
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "logkitctl",
		Usage:   "logkit 日志路由库命令行工具",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Commands:       createCommands(),
		DefaultCommand: "help",
		Authors: []any{
			"LogKit Team",
		},
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
		Description: `logkitctl 用于检查 logkit 的级别体系和验证日志配置文件。

主要命令:
  levels              列出级别名称、短码、emoji、家族、平台严重度与序号
    --family, -f      按家族过滤（development/general/problems/success/
                      networking/security/performance/ui/data）
  parse <文本>        将名称、短码或 emoji 解析为级别并打印其属性
  emit                构建一个路由器，按配置文件发送示例日志到标准输出
    --config, -c      配置文件路径（YAML 或 JSON）
    --count, -n       每个级别发送的日志条数（默认 1）
    --message, -m     日志消息内容
    --category        日志分类名称`,
	}
}

func run() int {
	app := createApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupSignalHandler(cancel)

	if err := app.Run(ctx, os.Args); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		// CLI 框架产生的参数错误（如未知 flag、未知命令）返回退出码 2，
		// 与文档契约"参数错误 → 退出码 2"保持一致。
		if _, ok := err.(cli.ExitCoder); ok {
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}

	return 0
}
