package xpool

import "sync/atomic"

// Stats 是 pool 计数器的快照。
type Stats struct {
	Submitted         int64 // 成功入队的任务数
	Rejected          int64 // nil 任务或停止后提交被拒绝的次数
	Executed          int64 // 已执行的任务数（含 panic）
	Stolen            int64 // worker 从其他队列窃取执行的任务数
	Helped            int64 // Await 调用方代为执行的任务数
	Panicked          int64
	SentinelsRequeued int64 // 被放回原队列的哨兵次数
	WorkersStarted    int64
	WorkersStopped    int64
}

type counters struct {
	submitted         atomic.Int64
	rejected          atomic.Int64
	executed          atomic.Int64
	stolen            atomic.Int64
	helped            atomic.Int64
	panicked          atomic.Int64
	sentinelsRequeued atomic.Int64
	workersStarted    atomic.Int64
	workersStopped    atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Submitted:         c.submitted.Load(),
		Rejected:          c.rejected.Load(),
		Executed:          c.executed.Load(),
		Stolen:            c.stolen.Load(),
		Helped:            c.helped.Load(),
		Panicked:          c.panicked.Load(),
		SentinelsRequeued: c.sentinelsRequeued.Load(),
		WorkersStarted:    c.workersStarted.Load(),
		WorkersStopped:    c.workersStopped.Load(),
	}
}
