package xpool

import (
	"log/slog"

	"github.com/omeyang/xsortpool/pkg/observability/xmetrics"
)

const maxWorkers = 4096

// Option 定义 pool 可选配置函数类型。
type Option func(*options)

type options struct {
	workers    int
	workersSet bool
	logger     *slog.Logger
	name       string
	observer   xmetrics.Observer
	pin        bool
}

func defaultOptions() options {
	return options{
		logger: slog.Default(),
	}
}

// WithWorkers 设置 worker 数量，有效范围 [1, 4096]。
// 未设置时使用 xsys.HardwareThreads()。
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
		o.workersSet = true
	}
}

// WithLogger 设置自定义日志记录器。
// 默认使用 slog.Default()。传入 nil 将被忽略，保持使用默认值。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName 设置 pool 名称，用于在多实例场景下区分日志来源。
// 默认为空字符串（日志中不包含名称）。
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithObserver 设置任务级观测器，每个执行的任务产生一个 xpool/task 跨度。
// 默认不观测。
func WithObserver(observer xmetrics.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithPinning 开启后，每个 worker 锁定自身 OS 线程并绑定到一个 CPU。
// 绑定失败只记录日志，不影响 worker 运行。
func WithPinning(enabled bool) Option {
	return func(o *options) {
		o.pin = enabled
	}
}
