package xsort

import "errors"

var (
	// ErrNilExecutor 表示 PolicyPooled 未通过 WithExecutor 提供执行器。
	ErrNilExecutor = errors.New("xsort: pooled policy requires an executor")

	// ErrInvalidThreshold 表示并行阈值为负数。
	ErrInvalidThreshold = errors.New("xsort: threshold must be non-negative")

	// ErrInvalidFanout 表示并发上限为负数。
	ErrInvalidFanout = errors.New("xsort: max fanout must be non-negative")

	// ErrUnknownPolicy 表示无法识别的执行策略。
	ErrUnknownPolicy = errors.New("xsort: unknown policy")

	// ErrNilCompare 表示比较函数为 nil。
	ErrNilCompare = errors.New("xsort: compare function cannot be nil")
)
