package xrun

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xsortpool/pkg/observability/xlog"
)

// Group 基于 errgroup + context 管理多个函数的并发运行和协调关闭。
//
// 任一函数返回错误或 Group 被取消时，所有函数都会收到取消信号。
// Go、GoWithName、Cancel 可并发调用；Wait 只应调用一次。
type Group struct {
	eg       *errgroup.Group
	ctx      context.Context
	causeCtx context.Context
	cancel   context.CancelCauseFunc
	opts     *groupOptions
}

// NewGroup 创建 Group，返回派生的 context。
// nil ctx 视为 context.Background()。
func NewGroup(ctx context.Context, opts ...Option) (*Group, context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	options := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	causeCtx, cancel := context.WithCancelCause(ctx)
	eg, egCtx := errgroup.WithContext(causeCtx)

	return &Group{
		eg:       eg,
		ctx:      egCtx,
		causeCtx: causeCtx,
		cancel:   cancel,
		opts:     options,
	}, egCtx
}

// Go 启动一个 goroutine 执行 fn。fn 应监听 ctx.Done()。
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		return fn(g.ctx)
	})
}

// GoWithName 与 Go 相同，但会在日志中记录函数的启动与退出。
func (g *Group) GoWithName(name string, fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		logger := g.opts.logger.With(slog.String("group", g.opts.name), slog.String("service", name))
		logger.Debug("service starting")
		err := fn(g.ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("service exited with error", xlog.Err(err))
		} else {
			logger.Debug("service stopped")
		}
		return err
	})
}

// Wait 等待所有 goroutine 完成，返回第一个非 nil 错误。
//
// 由 Group 取消（Cancel 或信号）引起的 context.Canceled 会被替换为取消原因；
// 没有显式原因时返回 nil。即使所有函数都返回 nil，显式的取消原因也会被返回。
func (g *Group) Wait() error {
	defer g.cancel(nil)

	err := g.eg.Wait()

	if errors.Is(err, context.Canceled) {
		if g.causeCtx.Err() == nil {
			// 函数内部产生的 Canceled，原样返回
			return err
		}
		return g.explicitCause()
	}
	if err == nil && g.causeCtx.Err() != nil {
		return g.explicitCause()
	}
	return err
}

func (g *Group) explicitCause() error {
	if cause := context.Cause(g.causeCtx); cause != nil && !errors.Is(cause, context.Canceled) {
		return cause
	}
	return nil
}

// Cancel 取消所有 goroutine，cause 作为 Wait 的返回值。
// cause 不应包装 context.Canceled，否则会被当作普通取消过滤掉。
func (g *Group) Cancel(cause error) {
	g.cancel(cause)
}

// Context 返回 Group 的 context。
func (g *Group) Context() context.Context {
	return g.ctx
}

// runGroup 是 Run/RunWithOptions 的共享实现。
// 收到信号时以 &SignalError{Signal: sig} 取消 Group；
// services 全部返回后信号监听随之退出。
func runGroup(ctx context.Context, opts []Option, services []func(ctx context.Context) error) error {
	g, _ := NewGroup(ctx, opts...)

	servicesDone := make(chan struct{})
	var remaining atomic.Int64
	remaining.Store(int64(len(services)))
	if len(services) == 0 {
		close(servicesDone)
	}

	if !g.opts.noSignalHandler {
		signals := g.opts.signals
		if len(signals) == 0 {
			signals = DefaultSignals()
		}
		g.Go(func(ctx context.Context) error {
			return g.watchSignals(ctx, signals, servicesDone)
		})
	}

	for _, svc := range services {
		g.Go(func(ctx context.Context) error {
			defer func() {
				if remaining.Add(-1) == 0 {
					close(servicesDone)
				}
			}()
			if svc == nil {
				return ErrNilFunc
			}
			return svc(ctx)
		})
	}
	return g.Wait()
}

func (g *Group) watchSignals(ctx context.Context, signals []os.Signal, servicesDone <-chan struct{}) error {
	testc := testSigChan(ctx)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, signals...)
	defer signal.Stop(sigCh)

	var sig os.Signal
	select {
	case sig = <-testc:
	case sig = <-sigCh:
	case <-servicesDone:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}

	g.opts.logger.Info("received signal",
		slog.String("group", g.opts.name),
		slog.String("signal", sig.String()),
	)
	g.cancel(&SignalError{Signal: sig})
	return nil
}

// Run 监听默认信号并运行 services。
//
// services 全部返回后 Run 随之返回；收到信号时 ctx 被取消，Run 返回 *SignalError。
// 信号监听本身会在所有 services 退出后停止：
//
//	err := xrun.Run(ctx, func(ctx context.Context) error {
//	    return bench(ctx)
//	})
//	if errors.Is(err, xrun.ErrSignal) {
//	    // 被中断
//	}
func Run(ctx context.Context, services ...func(ctx context.Context) error) error {
	return runGroup(ctx, nil, services)
}

// RunWithOptions 与 Run 相同，但支持配置选项。
func RunWithOptions(ctx context.Context, opts []Option, services ...func(ctx context.Context) error) error {
	return runGroup(ctx, opts, services)
}
