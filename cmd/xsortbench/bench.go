package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/omeyang/xsortpool/pkg/lifecycle/xrun"
	"github.com/omeyang/xsortpool/pkg/observability/xlog"
	"github.com/omeyang/xsortpool/pkg/observability/xmetrics"
	"github.com/omeyang/xsortpool/pkg/util/xpool"
	"github.com/omeyang/xsortpool/pkg/util/xsort"
)

type result struct {
	policy  xsort.Policy
	round   int
	elapsed time.Duration
}

type bench struct {
	cfg      benchConfig
	logger   *slog.Logger
	out      io.Writer
	exec     *xpool.Executor
	observer xmetrics.Observer

	base    []int
	want    []int
	results []result
}

// newDataset 生成 1..size 的确定性随机排列。
func newDataset(size int, seed uint64) []int {
	data := make([]int, size)
	for i := range data {
		data[i] = i + 1
	}
	r := rand.New(rand.NewPCG(seed, seed))
	r.Shuffle(len(data), func(i, j int) {
		data[i], data[j] = data[j], data[i]
	})
	return data
}

// runBench 按配置执行全部轮次，所有策略的结果都与参考排序比对。
func runBench(ctx context.Context, cfg benchConfig, logger *slog.Logger, out io.Writer) (err error) {
	var tel *telemetry
	if cfg.Metrics {
		if tel, err = newTelemetry(); err != nil {
			return err
		}
		defer func() {
			if serr := tel.shutdown(context.Background()); serr != nil {
				logger.Warn("telemetry shutdown failed", xlog.Err(serr))
			}
		}()
	}

	poolOpts := []xpool.Option{
		xpool.WithLogger(logger),
		xpool.WithName("xsortbench"),
		xpool.WithPinning(cfg.PinWorkers),
	}
	if cfg.Workers > 0 {
		poolOpts = append(poolOpts, xpool.WithWorkers(cfg.Workers))
	}
	if tel != nil {
		poolOpts = append(poolOpts, xpool.WithObserver(tel.observer))
	}
	exec, err := xpool.New(poolOpts...)
	if err != nil {
		return &usageError{err: err}
	}
	defer exec.Close()

	b := &bench{
		cfg:    cfg,
		logger: logger,
		out:    out,
		exec:   exec,
		base:   newDataset(cfg.Size, cfg.Seed),
	}
	if tel != nil {
		b.observer = tel.observer
	}
	b.want = slices.Clone(b.base)
	slices.Sort(b.want)

	fmt.Fprintf(out, "xsortbench: size=%d seed=%d threshold=%d workers=%d policies=%v\n",
		cfg.Size, cfg.Seed, cfg.Threshold, exec.Workers(), cfg.Policies)

	err = xrun.RunWithOptions(ctx,
		[]xrun.Option{xrun.WithLogger(logger), xrun.WithName("xsortbench")},
		xrun.Rounds(cfg.Rounds, b.round),
	)

	// 先关闭 pool，确保所有任务 span 已结束再汇总
	_ = exec.Close()
	b.summary()
	if tel != nil {
		if derr := tel.dump(context.Background(), out); derr != nil && err == nil {
			err = derr
		}
	}
	return err
}

// round 对每个策略排序一份独立的副本并校验结果。
func (b *bench) round(ctx context.Context, round int) error {
	for _, policy := range b.cfg.Policies {
		if err := ctx.Err(); err != nil {
			return context.Cause(ctx)
		}

		data := slices.Clone(b.base)
		start := time.Now()
		err := xsort.Sort(ctx, data, b.sortOptions(policy)...)
		elapsed := time.Since(start)
		if err != nil {
			return fmt.Errorf("round %d: %s: %w", round+1, policy, err)
		}
		if !slices.Equal(data, b.want) {
			return fmt.Errorf("%w: round %d policy %s", errMismatch, round+1, policy)
		}

		b.results = append(b.results, result{policy: policy, round: round, elapsed: elapsed})
		b.logger.Debug("sort finished",
			slog.Int("round", round+1),
			slog.String("policy", policy.String()),
			xlog.Duration(elapsed),
		)
		fmt.Fprintf(b.out, "round %d  %-10s  %10.3f ms  sorted correctly\n",
			round+1, policy, float64(elapsed.Microseconds())/1000)
	}
	return nil
}

func (b *bench) sortOptions(policy xsort.Policy) []xsort.Option {
	opts := []xsort.Option{
		xsort.WithPolicy(policy),
		xsort.WithThreshold(b.cfg.Threshold),
		xsort.WithMaxFanout(b.cfg.MaxFanout),
	}
	if policy == xsort.PolicyPooled {
		opts = append(opts, xsort.WithExecutor(b.exec))
	}
	if b.observer != nil {
		opts = append(opts, xsort.WithObserver(b.observer))
	}
	return opts
}

// summary 输出每个策略的最小、平均、最大耗时以及 pool 计数器。
func (b *bench) summary() {
	if len(b.results) == 0 {
		return
	}
	w := tabwriter.NewWriter(b.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POLICY\tROUNDS\tMIN(ms)\tAVG(ms)\tMAX(ms)")
	for _, policy := range b.cfg.Policies {
		var (
			n             int
			total, lo, hi time.Duration
		)
		for _, r := range b.results {
			if r.policy != policy {
				continue
			}
			if n == 0 || r.elapsed < lo {
				lo = r.elapsed
			}
			if r.elapsed > hi {
				hi = r.elapsed
			}
			total += r.elapsed
			n++
		}
		if n == 0 {
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%.3f\t%.3f\n",
			policy, n, millis(lo), millis(total/time.Duration(n)), millis(hi))
	}
	_ = w.Flush()

	s := b.exec.Stats()
	fmt.Fprintf(b.out, "pool: submitted=%d executed=%d stolen=%d helped=%d panicked=%d\n",
		s.Submitted, s.Executed, s.Stolen, s.Helped, s.Panicked)
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
