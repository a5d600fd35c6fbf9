package xsort

import (
	"fmt"

	"github.com/omeyang/xsortpool/pkg/observability/xmetrics"
	"github.com/omeyang/xsortpool/pkg/util/xpool"
)

// DefaultThreshold 是默认并行阈值：区间长度超过该值才并行处理两半。
const DefaultThreshold = 10000

// Submitter 是 PolicyPooled 使用的任务执行器，*xpool.Executor 实现了该接口。
type Submitter interface {
	Submit(fn xpool.Task) *xpool.Handle
	Await(h *xpool.Handle) error
}

// Option 定义排序可选配置函数类型。
type Option func(*options)

type options struct {
	policy    Policy
	threshold int
	executor  Submitter
	maxFanout int
	observer  xmetrics.Observer
}

func defaultOptions() options {
	return options{
		policy:    PolicySequential,
		threshold: DefaultThreshold,
	}
}

func buildOptions(opts []Option) (options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if !o.policy.valid() {
		return o, fmt.Errorf("%w: %d", ErrUnknownPolicy, int(o.policy))
	}
	if o.threshold < 0 {
		return o, fmt.Errorf("%w: %d", ErrInvalidThreshold, o.threshold)
	}
	if o.maxFanout < 0 {
		return o, fmt.Errorf("%w: %d", ErrInvalidFanout, o.maxFanout)
	}
	if o.policy == PolicyPooled && o.executor == nil {
		return o, ErrNilExecutor
	}
	return o, nil
}

// WithPolicy 设置执行策略，默认 PolicySequential。
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithThreshold 设置并行阈值，默认 [DefaultThreshold]。
// 0 表示所有长度不小于 2 的区间都并行处理。
func WithThreshold(n int) Option {
	return func(o *options) {
		o.threshold = n
	}
}

// WithExecutor 设置 PolicyPooled 使用的执行器。
func WithExecutor(s Submitter) Option {
	return func(o *options) {
		o.executor = s
	}
}

// WithMaxFanout 限制 PolicyConcurrent 同时运行的 goroutine 数。
// 拿不到配额的一半在当前 goroutine 中执行。0 表示不限制（默认）。
func WithMaxFanout(n int) Option {
	return func(o *options) {
		o.maxFanout = n
	}
}

// WithObserver 设置观测器，每次顶层排序产生一个 xsort/sort 跨度。
func WithObserver(observer xmetrics.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}
