package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/logkit/pkg/xlevel"
	"github.com/omeyang/logkit/pkg/xlogconf"
	"github.com/omeyang/logkit/pkg/xroute"
)

// exitError 表示需要非零退出码但已完成输出的场景。
// 命令内部已完成所有输出，main 只需设置退出码。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

// 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createLevelsCommand(),
		createParseCommand(),
		createEmitCommand(),
	}
}

// createLevelsCommand 创建 levels 子命令（列出级别表）。
func createLevelsCommand() *cli.Command {
	return &cli.Command{
		Name:    "levels",
		Aliases: []string{"l"},
		Usage:   "列出所有日志级别及其属性",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "family",
				Aliases: []string{"f"},
				Usage:   "按家族过滤级别",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cmdLevels(cmd.String("family"))
		},
	}
}

// createParseCommand 创建 parse 子命令。
func createParseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Aliases:   []string{"p"},
		Usage:     "解析文本为日志级别（名称、短码或 emoji）",
		ArgsUsage: "<文本>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) == 0 {
				return fmt.Errorf("parse 命令需要指定要解析的文本")
			}
			return cmdParse(args[0])
		},
	}
}

// createEmitCommand 创建 emit 子命令。
func createEmitCommand() *cli.Command {
	return &cli.Command{
		Name:    "emit",
		Aliases: []string{"e"},
		Usage:   "按配置文件发送示例日志到标准输出",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径（YAML 或 JSON）",
			},
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "每个级别发送的日志条数",
				Value:   1,
			},
			&cli.StringFlag{
				Name:    "message",
				Aliases: []string{"m"},
				Usage:   "日志消息内容",
				Value:   "sample log line",
			},
			&cli.StringFlag{
				Name:  "category",
				Usage: "日志分类名称",
				Value: "Demo",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cmdEmit(ctx, emitOptions{
				configPath: cmd.String("config"),
				count:      int(cmd.Int("count")),
				message:    cmd.String("message"),
				category:   cmd.String("category"),
			})
		},
	}
}

// cmdLevels 列出级别表。familyFilter 为空时列出全部级别。
func cmdLevels(familyFilter string) error {
	levels := xlevel.All()

	if familyFilter != "" {
		family, err := parseFamily(familyFilter)
		if err != nil {
			return err
		}
		levels = xlevel.LevelsInFamily(family)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "序号\t名称\t短码\tEMOJI\t家族\t平台严重度")
	for _, lv := range levels {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			int(lv), lv.String(), lv.ShortCode(), lv.Emoji(), lv.Family(), lv.Class())
	}
	return w.Flush()
}

// cmdParse 解析文本为级别并打印其属性。
// 设计决策: 无法识别时返回非零退出码（通过 exitError），
// 使脚本能正确检测解析结果。
func cmdParse(text string) error {
	lv, err := xlevel.Parse(text)
	if err != nil {
		fmt.Printf("无法识别: %q\n", text)
		return &exitError{code: 1}
	}

	fmt.Printf("名称:       %s\n", lv.String())
	fmt.Printf("短码:       %s\n", lv.ShortCode())
	fmt.Printf("Emoji:      %s\n", lv.Emoji())
	fmt.Printf("家族:       %s\n", lv.Family())
	fmt.Printf("平台严重度: %s\n", lv.Class())
	fmt.Printf("序号:       %d\n", int(lv))
	return nil
}

// emitOptions emit 命令参数。
type emitOptions struct {
	configPath string
	count      int
	message    string
	category   string
}

// cmdEmit 构建路由器并发送示例日志。收到信号取消时在轮次之间中止。
// 输出通过回调接收器写到标准输出，而非平台日志句柄，
// 以便用户直接观察格式化结果。
func cmdEmit(ctx context.Context, opts emitOptions) error {
	if opts.count <= 0 {
		return fmt.Errorf("count 必须为正数: %d", opts.count)
	}

	r, err := xroute.New(xroute.WithOutput(os.Stderr))
	if err != nil {
		return fmt.Errorf("创建路由器失败: %w", err)
	}
	defer r.Close()

	if opts.configPath != "" {
		s, loadErr := xlogconf.Load(opts.configPath)
		if loadErr != nil {
			return loadErr
		}
		if applyErr := xlogconf.Apply(r, s); applyErr != nil {
			return applyErr
		}
	}

	r.AddSink(func(line string, _ xroute.Category) {
		fmt.Println(line)
	})

	category := xroute.NewCategory(opts.category)
	bound := r.Bind(category)
	for i := 0; i < opts.count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		bound.Trace(opts.message)
		bound.Debug(opts.message)
		bound.Info(opts.message)
		bound.Notice(opts.message)
		bound.Warning(opts.message)
		bound.Error(opts.message)
		bound.Success(opts.message)
		bound.Network(opts.message)
		bound.Security(opts.message)
		bound.Metric(opts.message)
	}

	// 写入是异步的，Close 会排空队列中剩余的日志请求
	r.Close()
	return nil
}

// parseFamily 解析家族名称（大小写不敏感）。
func parseFamily(text string) (xlevel.Family, error) {
	families := []xlevel.Family{
		xlevel.FamilyDevelopment,
		xlevel.FamilyGeneral,
		xlevel.FamilyProblems,
		xlevel.FamilySuccess,
		xlevel.FamilyNetworking,
		xlevel.FamilySecurity,
		xlevel.FamilyPerformance,
		xlevel.FamilyUI,
		xlevel.FamilyData,
	}
	for _, f := range families {
		if strings.EqualFold(f.String(), text) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("未知家族: %q", text)
}

// setupSignalHandler 设置信号处理。
// 设计决策: 第一次信号优雅取消，第二次信号强制退出（退出码 130 = 128 + SIGINT）。
func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel() // 第一次信号: 优雅取消

		<-sigCh
		signal.Stop(sigCh)
		os.Exit(130) // 第二次信号: 强制退出
	}()
}
