package xpool

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Executor 是 WorkerPool 的提交门面，持有 pool 的生命周期：
// New 时启动全部 worker，Close 时停止并等待它们退出。
type Executor struct {
	id        string
	pool      *WorkerPool
	closeOnce sync.Once
}

// 编译期断言：Executor 实现 io.Closer。
var _ io.Closer = (*Executor)(nil)

// New 创建并启动 Executor。
func New(opts ...Option) (*Executor, error) {
	pool, err := NewWorkerPool(opts...)
	if err != nil {
		return nil, err
	}
	e := &Executor{
		id:   uuid.NewString(),
		pool: pool,
	}
	pool.logger = pool.logger.With(slog.String("executor", e.id))
	pool.Start()
	pool.logger.Debug("xpool: executor started", slog.Int("workers", pool.Workers()))
	return e, nil
}

// Submit 提交任务并立即返回 handle，参见 [WorkerPool.Submit]。
func (e *Executor) Submit(fn Task) *Handle {
	return e.pool.Submit(fn)
}

// SubmitRange 提交对区间 [lo, hi) 执行 fn 的任务。
// fn 为 nil 或 lo > hi 时返回已失败的 handle。
func (e *Executor) SubmitRange(fn func(lo, hi int), lo, hi int) *Handle {
	if fn == nil {
		return e.pool.Submit(nil)
	}
	if lo > hi {
		e.pool.stats.rejected.Add(1)
		return failedHandle(fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, lo, hi))
	}
	return e.pool.Submit(func() { fn(lo, hi) })
}

// Await 等待 h 完成，等待期间代为执行排队任务，参见 [WorkerPool.Await]。
//
// 在 pool 之外调用时，调用方 goroutine 也会执行与 h 无关的排队任务，
// 这些任务的观测 span 带有 worker=-1。
func (e *Executor) Await(h *Handle) error {
	return e.pool.Await(h)
}

// Close 停止 pool 并等待所有 worker 退出。
// 已入队的任务会先执行完毕。多次调用安全。
// 不可在任务内部调用，否则死锁。
func (e *Executor) Close() error {
	e.closeOnce.Do(func() {
		e.pool.Stop()
	})
	return nil
}

// ID 返回 Executor 的唯一标识。
func (e *Executor) ID() string {
	return e.id
}

// Workers 返回 worker 数量。
func (e *Executor) Workers() int {
	return e.pool.Workers()
}

// Stats 返回计数器快照。
func (e *Executor) Stats() Stats {
	return e.pool.Stats()
}
