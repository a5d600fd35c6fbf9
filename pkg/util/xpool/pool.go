package xpool

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/omeyang/xsortpool/pkg/observability/xlog"
	"github.com/omeyang/xsortpool/pkg/observability/xmetrics"
	"github.com/omeyang/xsortpool/pkg/util/xqueue"
	"github.com/omeyang/xsortpool/pkg/util/xsys"
)

// Task 是提交给 pool 的任务函数。
type Task func()

// job 在队列中按值传递。fn 为 nil 的 job 是关闭哨兵。
type job struct {
	fn     Task
	handle *Handle
}

func (j job) isSentinel() bool {
	return j.fn == nil
}

// helperWorker 标识在 Await 中代为执行任务的非 worker goroutine。
const helperWorker = -1

// WorkerPool 是固定大小的工作窃取 pool。
//
// 每个 worker 拥有一个私有的无界队列，提交按轮询分配到各队列；
// 空闲 worker 从自己的队列开始依次扫描所有队列并窃取任务，
// 全部为空时阻塞在自己的队列上。
type WorkerPool struct {
	queues []*xqueue.BlockingQueue[job]
	opts   options
	logger *slog.Logger
	cpus   []int

	// submitMu 只串行化 next 计数与入队，不覆盖任务执行
	submitMu sync.Mutex
	next     int
	stopped  bool

	helpCursor atomic.Uint64
	wg         sync.WaitGroup
	stats      counters
}

// NewWorkerPool 创建 pool，但不启动 worker。
//
// 未指定 WithWorkers 时 worker 数取 xsys.HardwareThreads()。
// worker 数超出 [1, 4096] 时返回 ErrInvalidWorkers。
func NewWorkerPool(opts ...Option) (*WorkerPool, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if !o.workersSet {
		o.workers = min(xsys.HardwareThreads(), maxWorkers)
	}
	if o.workers < 1 || o.workers > maxWorkers {
		return nil, fmt.Errorf("%w: %d (valid range [1, %d])", ErrInvalidWorkers, o.workers, maxWorkers)
	}

	logger := o.logger.With(xlog.Component("xpool"))
	if o.name != "" {
		logger = logger.With(slog.String("pool", o.name))
	}

	queues := make([]*xqueue.BlockingQueue[job], o.workers)
	for i := range queues {
		queues[i] = xqueue.New[job]()
	}
	return &WorkerPool{
		queues: queues,
		opts:   o,
		logger: logger,
	}, nil
}

// Start 启动全部 worker，每个 worker 绑定一个队列下标。
// 只能调用一次。
func (p *WorkerPool) Start() {
	if p.opts.pin {
		cpus, err := xsys.AllowedCPUs()
		if err != nil {
			p.logger.Warn("xpool: cpu pinning disabled", xlog.Err(err))
		} else {
			p.cpus = cpus
		}
	}
	for i := range p.queues {
		p.wg.Add(1)
		p.stats.workersStarted.Add(1)
		go p.run(i)
	}
}

// Stop 标记 pool 为已停止，向每个队列推送一个哨兵并等待所有 worker 退出。
//
// 哨兵排在已入队任务之后，因此 Stop 返回前所有已接受的任务都会执行完毕。
// 只能调用一次，且不可在任务内部调用。
func (p *WorkerPool) Stop() {
	p.submitMu.Lock()
	p.stopped = true
	for _, q := range p.queues {
		q.Push(job{})
	}
	p.submitMu.Unlock()

	p.wg.Wait()
	p.logger.Debug("xpool: all workers stopped", xlog.Count(p.stats.executed.Load()))
}

// Submit 提交任务并立即返回其 handle。
//
// fn 为 nil 时返回以 ErrNilTask 兑现的 handle；
// pool 已停止时返回以 ErrPoolStopped 兑现的 handle。
func (p *WorkerPool) Submit(fn Task) *Handle {
	if fn == nil {
		p.stats.rejected.Add(1)
		return failedHandle(ErrNilTask)
	}

	h := newHandle()
	p.submitMu.Lock()
	if p.stopped {
		p.submitMu.Unlock()
		p.stats.rejected.Add(1)
		p.logger.Warn("xpool: submit after stop rejected")
		h.fulfil(ErrPoolStopped)
		return h
	}
	idx := p.next
	p.next = (p.next + 1) % len(p.queues)
	p.stats.submitted.Add(1)
	p.queues[idx].Push(job{fn: fn, handle: h})
	p.submitMu.Unlock()
	return h
}

// Await 等待 h 完成，等待期间代为执行队列中的任务。
//
// 每轮从轮转游标开始扫描全部队列：遇到哨兵放回原队列并继续扫描其余队列，
// 取到任务则在当前 goroutine 上执行；一轮扫描没有任何可执行任务时阻塞在 h 上。
// 调用方不必是 worker：pool 之外的 goroutine（例如顶层排序调用方）同样会代为
// 执行与 h 无关的排队任务，观测器中这类 span 的 worker 属性为 -1。
//
// worker 内部嵌套等待必须使用 Await，否则固定大小的 pool 可能因所有 worker
// 都在等待而死锁。
func (p *WorkerPool) Await(h *Handle) error {
	if h == nil {
		return ErrNilHandle
	}
	n := len(p.queues)
	for {
		select {
		case <-h.Done():
			return h.Wait()
		default:
		}

		start := int(p.helpCursor.Add(1) % uint64(n))
		j, _, ok := p.scan(start, helperWorker)
		if !ok {
			return h.Wait()
		}
		p.stats.helped.Add(1)
		p.execute(j, helperWorker, true)
	}
}

// Workers 返回 worker 数量。
func (p *WorkerPool) Workers() int {
	return len(p.queues)
}

// Stats 返回计数器快照。
func (p *WorkerPool) Stats() Stats {
	return p.stats.snapshot()
}

// run 是 worker i 的主循环。
func (p *WorkerPool) run(index int) {
	defer func() {
		p.stats.workersStopped.Add(1)
		p.wg.Done()
	}()
	if len(p.cpus) > 0 {
		p.pin(index)
	}
	p.logger.Debug("xpool: worker started", xlog.Worker(index))

	for {
		j, from := p.take(index)
		// 哨兵只会出现在其所属 worker 的队列上，scan 不会返回他人的哨兵
		if j.isSentinel() {
			p.logger.Debug("xpool: worker stopped", xlog.Worker(index))
			return
		}

		stolen := from != index
		if stolen {
			p.stats.stolen.Add(1)
		}
		p.execute(j, index, stolen)
	}
}

// take 从 index 开始扫描所有队列，一轮下来没有可执行的 job 时阻塞在自己的队列上。
// 返回 job 及其来源队列下标。
func (p *WorkerPool) take(index int) (job, int) {
	if j, from, ok := p.scan(index, index); ok {
		return j, from
	}
	return p.queues[index].Pop(), index
}

// scan 依次 TryPop 队列 start, start+1, ..., start+N-1 (mod N)，返回首个可执行的 job。
//
// 不属于 owner 的哨兵被放回原队列，扫描继续进行到下一个队列；本轮不会再访问
// 该队列，因此不会在他人的哨兵上空转。owner 为 helperWorker 时所有哨兵都被放回。
func (p *WorkerPool) scan(start, owner int) (job, int, bool) {
	n := len(p.queues)
	for k := range n {
		idx := (start + k) % n
		j, ok := p.queues[idx].TryPop()
		if !ok {
			continue
		}
		if j.isSentinel() && idx != owner {
			p.queues[idx].Push(j)
			p.stats.sentinelsRequeued.Add(1)
			continue
		}
		return j, idx, true
	}
	return job{}, 0, false
}

// execute 执行任务体恰好一次，然后兑现 handle。
func (p *WorkerPool) execute(j job, worker int, stolen bool) {
	span := xmetrics.Span(xmetrics.NoopSpan{})
	if p.opts.observer != nil {
		_, span = p.opts.observer.Start(context.Background(), xmetrics.SpanOptions{
			Component: "xpool",
			Operation: "task",
			Attrs: []xmetrics.Attr{
				xmetrics.Int("worker", worker),
				xmetrics.Bool("stolen", stolen),
			},
		})
	}

	err := p.safeRun(j.fn, worker)
	span.End(xmetrics.Result{Err: err})

	p.stats.executed.Add(1)
	j.handle.fulfil(err)
}

// safeRun 执行 fn，捕获 panic 并转换为 *PanicError。
func (p *WorkerPool) safeRun(fn Task, worker int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			p.stats.panicked.Add(1)
			p.logger.Error("xpool: task panic recovered",
				slog.Any("panic", r),
				xlog.Worker(worker),
				xlog.Stack(stack),
			)
			err = &PanicError{Value: r, Stack: stack}
		}
	}()
	fn()
	return nil
}

// pin 绑定成功后不解除线程锁定，worker 退出时该线程随之销毁。
func (p *WorkerPool) pin(index int) {
	cpu := p.cpus[index%len(p.cpus)]
	if err := xsys.PinCurrentThread(cpu); err != nil {
		runtime.UnlockOSThread()
		p.logger.Warn("xpool: pin worker failed", xlog.Worker(index), slog.Int("cpu", cpu), xlog.Err(err))
		return
	}
	p.logger.Debug("xpool: worker pinned", xlog.Worker(index), slog.Int("cpu", cpu))
}
