// xsortbench 对比三种归并排序策略的耗时，并校验每个结果与参考排序一致。
//
// 用法:
//
//	xsortbench [选项]
//
// 数据集为 1..size 的确定性随机排列（由 --seed 决定），每一轮依次以
// sequential、concurrent、pooled 策略排序同一份数据的独立副本。
// 配置文件（YAML/JSON）中的 bench 段提供默认值，显式传入的 flag 优先。
//
// 退出码:
//
//	0: 所有轮次完成且结果正确
//	1: 排序失败或结果与参考不一致
//	2: 参数或配置错误
//	130: 被信号中断
//
// 示例:
//
//	xsortbench                                   # 50000 个元素，三种策略各一轮
//	xsortbench --size 1000000 --rounds 5         # 更大的数据集，多轮取平均
//	xsortbench --policy pooled --workers 4 --pin # 只测 pooled，4 个绑核 worker
//	xsortbench --config bench.yaml --metrics     # 从配置文件加载并输出指标
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xsortpool/pkg/lifecycle/xrun"
	"github.com/omeyang/xsortpool/pkg/observability/xlog"
	"github.com/omeyang/xsortpool/pkg/observability/xrotate"
	"github.com/omeyang/xsortpool/pkg/util/xsort"
)

// 版本信息（可通过 -ldflags 注入）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// createApp 创建 CLI 应用，输出写入 stdout，日志与错误写入 stderr。
func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "xsortbench",
		Usage:     "归并排序策略对比基准",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "配置文件路径（YAML/JSON，读取 bench 段）"},
			&cli.IntFlag{Name: "size", Aliases: []string{"n"}, Usage: "元素个数", Value: defaultSize},
			&cli.Uint64Flag{Name: "seed", Usage: "随机排列种子", Value: defaultSeed},
			&cli.IntFlag{Name: "rounds", Aliases: []string{"r"}, Usage: "轮次", Value: 1},
			&cli.IntFlag{Name: "threshold", Aliases: []string{"t"}, Usage: "并行阈值，区间长度超过该值才拆分", Value: xsort.DefaultThreshold},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "worker 数，0 表示硬件线程数"},
			&cli.IntFlag{Name: "max-fanout", Usage: "concurrent 策略的最大并发 goroutine 数，0 表示不限"},
			&cli.StringSliceFlag{Name: "policy", Aliases: []string{"p"}, Usage: "要运行的策略，可重复（sequential/concurrent/pooled）"},
			&cli.BoolFlag{Name: "pin", Usage: "将 worker 绑定到允许的 CPU（仅 Linux）"},
			&cli.StringFlag{Name: "log-level", Usage: "日志级别（debug/info/warn/error）", Value: "info"},
			&cli.StringFlag{Name: "log-format", Usage: "日志格式（text/json）", Value: "text"},
			&cli.StringFlag{Name: "log-file", Usage: "日志文件路径，按大小轮转；为空时写 stderr"},
			&cli.BoolFlag{Name: "metrics", Usage: "运行结束后输出收集到的指标"},
		},
		OnUsageError: func(_ context.Context, _ *cli.Command, err error, _ bool) error {
			return &usageError{err: err}
		},
		// 禁止 urfave/cli 直接调用 os.Exit，由 run() 统一映射退出码
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(stderr, err)
			}
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd.String("config"))
			if err != nil {
				return &usageError{err: err}
			}
			if err := applyFlags(cmd, &cfg); err != nil {
				return &usageError{err: err}
			}
			if err := cfg.validate(); err != nil {
				return &usageError{err: err}
			}

			logger, cleanup, err := xlog.New().
				SetOutput(stderr).
				SetLevel(cfg.Log.Level).
				SetFormat(cfg.Log.Format).
				SetRotation(cfg.Log.File, xrotate.WithMaxSize(64), xrotate.WithMaxBackups(3)).
				Build()
			if err != nil {
				return &usageError{err: err}
			}
			defer func() { _ = cleanup() }()

			return runBench(ctx, cfg, logger, stdout)
		},
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	err := createApp(stdout, stderr).Run(ctx, args)
	if err == nil {
		return exitOK
	}

	var usageErr *usageError
	switch {
	case errors.As(err, &usageErr):
		fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
		return exitUsage
	case errors.Is(err, xrun.ErrSignal):
		fmt.Fprintf(stderr, "已中断: %v\n", err)
		return exitInterrupted
	default:
		fmt.Fprintf(stderr, "错误: %v\n", err)
		return exitFailure
	}
}
