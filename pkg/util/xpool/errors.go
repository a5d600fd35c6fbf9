package xpool

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWorkers 表示 worker 数量无效。
	ErrInvalidWorkers = errors.New("xpool: invalid worker count")

	// ErrPoolStopped 表示 pool 已关闭，无法提交任务。
	ErrPoolStopped = errors.New("xpool: pool is stopped")

	// ErrNilTask 表示提交的任务函数为 nil。
	ErrNilTask = errors.New("xpool: task cannot be nil")

	// ErrNilHandle 表示 Await 的 handle 参数为 nil。
	ErrNilHandle = errors.New("xpool: nil handle")

	// ErrInvalidRange 表示 SubmitRange 的区间 lo > hi。
	ErrInvalidRange = errors.New("xpool: invalid range")

	// ErrTaskPanicked 表示任务执行过程中发生 panic。
	// 具体的 panic 值与堆栈通过 [PanicError] 获取。
	ErrTaskPanicked = errors.New("xpool: task panicked")
)

// PanicError 记录任务 panic 时恢复的值与堆栈。
//
// errors.Is(err, ErrTaskPanicked) 恒为 true；
// 若 panic 值本身是 error，也可以通过 errors.Is/As 匹配到它。
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("xpool: task panicked: %v", e.Value)
}

// Unwrap 同时返回 ErrTaskPanicked 与 panic 值（若为 error）。
func (e *PanicError) Unwrap() []error {
	if err, ok := e.Value.(error); ok {
		return []error{ErrTaskPanicked, err}
	}
	return []error{ErrTaskPanicked}
}
